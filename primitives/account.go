// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package primitives

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Bytecode is the raw code of a contract.
type Bytecode []byte

// Hash returns the keccak256 hash of the code.
func (c Bytecode) Hash() Bytes32 {
	if len(c) == 0 {
		return EmptyCodeHash
	}
	return Keccak256(c)
}

// AccountInfo is the account data the state layer tracks.
// Code is optional. A nil Code means the code is not carried along with the info.
type AccountInfo struct {
	Balance  uint256.Int
	Nonce    uint64
	CodeHash Bytes32
	Code     Bytecode
}

// DefaultAccountInfo returns an empty account with the empty code hash.
func DefaultAccountInfo() AccountInfo {
	return AccountInfo{CodeHash: EmptyCodeHash}
}

// NewAccountInfo creates an account info, attaching code and computing its hash.
func NewAccountInfo(balance *uint256.Int, nonce uint64, code Bytecode) AccountInfo {
	info := AccountInfo{Nonce: nonce, CodeHash: code.Hash(), Code: code}
	if balance != nil {
		info.Balance = *balance
	}
	return info
}

// IsEmpty returns if an account is empty per EIP-161.
// An empty account has zero balance, zero nonce and no code.
func (a *AccountInfo) IsEmpty() bool {
	codeEmpty := a.CodeHash == EmptyCodeHash || a.CodeHash.IsZero()
	return a.Balance.IsZero() && a.Nonce == 0 && codeEmpty
}

// HasNoCodeAndNonce returns true if the account has neither code nor nonce.
func (a *AccountInfo) HasNoCodeAndNonce() bool {
	return (a.CodeHash == EmptyCodeHash || a.CodeHash.IsZero()) && a.Nonce == 0
}

// Equal compares balance, nonce and code hash. Attached code is ignored.
func (a *AccountInfo) Equal(other *AccountInfo) bool {
	return a.Balance.Eq(&other.Balance) && a.Nonce == other.Nonce && a.CodeHash == other.CodeHash
}

// Copy returns a copy of the info. Code is immutable and shared.
func (a *AccountInfo) Copy() *AccountInfo {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

func (a *AccountInfo) String() string {
	if a == nil {
		return "<none>"
	}
	return fmt.Sprintf("{balance: %v, nonce: %v, codeHash: %v}", a.Balance.Dec(), a.Nonce, a.CodeHash.AbbrevString())
}

// InfoEqual compares two optional infos. Two absent infos are equal.
func InfoEqual(a, b *AccountInfo) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// InfoOrDefault returns a copy of info, or the default info if absent.
func InfoOrDefault(info *AccountInfo) AccountInfo {
	if info == nil {
		return DefaultAccountInfo()
	}
	return *info
}

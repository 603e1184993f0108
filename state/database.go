// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"

	"github.com/BrazilRaw/revm/primitives"
)

// Database is the persisted state accounts are loaded from.
type Database interface {
	// Basic returns the account info, nil if the account does not exist.
	Basic(addr primitives.Address) (*primitives.AccountInfo, error)
	// CodeByHash returns the code with the given hash.
	CodeByHash(hash primitives.Bytes32) (primitives.Bytecode, error)
	// Storage returns the value of a slot, zero if unset.
	Storage(addr primitives.Address, key uint256.Int) (uint256.Int, error)
}

// EmptyDB is a database without any account.
type EmptyDB struct{}

var _ Database = EmptyDB{}

func (EmptyDB) Basic(primitives.Address) (*primitives.AccountInfo, error) { return nil, nil }

func (EmptyDB) CodeByHash(primitives.Bytes32) (primitives.Bytecode, error) {
	return primitives.Bytecode{}, nil
}

func (EmptyDB) Storage(primitives.Address, uint256.Int) (uint256.Int, error) {
	return uint256.Int{}, nil
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"slices"

	"github.com/holiman/uint256"

	"github.com/BrazilRaw/revm/primitives"
)

// AccountChange is the new info of an account, nil if it was removed.
type AccountChange struct {
	Address primitives.Address
	Info    *primitives.AccountInfo
}

// StorageEntry is a slot key with a value.
type StorageEntry struct {
	Key   uint256.Int
	Value uint256.Int
}

// StorageChange is the storage change of one account.
// When WipeStorage is set, every persisted slot is removed before Storage is written.
type StorageChange struct {
	Address     primitives.Address
	WipeStorage bool
	Storage     []StorageEntry
}

// ContractChange is a new contract code.
type ContractChange struct {
	CodeHash primitives.Bytes32
	Code     primitives.Bytecode
}

// StateChangeset is the plain state diff to write into the database.
type StateChangeset struct {
	Accounts  []AccountChange
	Storage   []StorageChange
	Contracts []ContractChange
}

// StorageRevert restores the storage of one account.
// When Wiped is set, all current slots are removed before the listed ones are restored.
// A zero value means the slot did not exist.
type StorageRevert struct {
	Address primitives.Address
	Wiped   bool
	Storage []StorageEntry
}

// PlainStateReverts holds the plain reverts of each merged window, oldest first.
// An account revert with nil Info means the account has to be deleted.
type PlainStateReverts struct {
	Accounts [][]AccountChange
	Storage  [][]StorageRevert
}

func sortAccounts(changes []AccountChange) {
	slices.SortFunc(changes, func(a, b AccountChange) int { return a.Address.Compare(b.Address) })
}

func sortEntries(entries []StorageEntry) {
	slices.SortFunc(entries, func(a, b StorageEntry) int { return a.Key.Cmp(&b.Key) })
}

func (c *StateChangeset) sort() {
	sortAccounts(c.Accounts)
	slices.SortFunc(c.Storage, func(a, b StorageChange) int { return a.Address.Compare(b.Address) })
	for _, s := range c.Storage {
		sortEntries(s.Storage)
	}
	slices.SortFunc(c.Contracts, func(a, b ContractChange) int {
		return slices.Compare(a.CodeHash[:], b.CodeHash[:])
	})
}

func (r *PlainStateReverts) sort() {
	for _, accounts := range r.Accounts {
		sortAccounts(accounts)
	}
	for _, storage := range r.Storage {
		slices.SortFunc(storage, func(a, b StorageRevert) int { return a.Address.Compare(b.Address) })
		for _, s := range storage {
			sortEntries(s.Storage)
		}
	}
}

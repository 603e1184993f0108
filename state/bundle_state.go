// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"maps"
	"slices"

	"github.com/BrazilRaw/revm/primitives"
)

// BundleRetention selects what a merge keeps.
type BundleRetention uint8

const (
	// RetainPlainState keeps only the plain state.
	RetainPlainState BundleRetention = iota
	// RetainReverts keeps the plain state and the reverts.
	RetainReverts
)

// IncludesReverts returns true if reverts are kept.
func (r BundleRetention) IncludesReverts() bool {
	return r == RetainReverts
}

// AccountRevertEntry pairs an address with its revert.
type AccountRevertEntry struct {
	Address primitives.Address
	Revert  *AccountRevert
}

// BundleState is the accumulated change of many merged windows (typically blocks),
// with one list of reverts per window.
type BundleState struct {
	State     map[primitives.Address]*BundleAccount
	Contracts map[primitives.Bytes32]primitives.Bytecode
	// Reverts holds one entry per merged window, oldest first.
	Reverts [][]AccountRevertEntry
}

// NewBundleState creates an empty bundle.
func NewBundleState() *BundleState {
	return &BundleState{
		State:     make(map[primitives.Address]*BundleAccount),
		Contracts: make(map[primitives.Bytes32]primitives.Bytecode),
	}
}

// Account returns the bundle account of addr.
func (b *BundleState) Account(addr primitives.Address) (*BundleAccount, bool) {
	acc, ok := b.State[addr]
	return acc, ok
}

// Bytecode returns a contract known to the bundle.
func (b *BundleState) Bytecode(hash primitives.Bytes32) (primitives.Bytecode, bool) {
	code, ok := b.Contracts[hash]
	return code, ok
}

// Len returns the number of accounts in the bundle.
func (b *BundleState) Len() int {
	return len(b.State)
}

// RevertsLen returns the number of windows that can be reverted.
func (b *BundleState) RevertsLen() int {
	return len(b.Reverts)
}

func sortedAddresses[V any](m map[primitives.Address]V) []primitives.Address {
	keys := make([]primitives.Address, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, primitives.Address.Compare)
	return keys
}

// ApplyTransitionsAndCreateReverts folds one window of transitions into the bundle.
// With RetainReverts a revert list is appended, possibly empty, so every window stays
// revertible.
func (b *BundleState) ApplyTransitionsAndCreateReverts(transitions *TransitionState, retention BundleRetention) {
	includeReverts := retention.IncludesReverts()

	var reverts []AccountRevertEntry
	for _, addr := range sortedAddresses(transitions.Transitions) {
		transition := transitions.Transitions[addr]
		if hash, code, ok := transition.HasNewContract(); ok {
			b.Contracts[hash] = code
		}
		metricTransitions().AddWithLabel(1, map[string]string{"status": transition.Status.String()})

		revert := b.applyTransition(addr, transition)
		if revert != nil && includeReverts {
			reverts = append(reverts, AccountRevertEntry{Address: addr, Revert: revert})
		}
	}
	if includeReverts {
		b.Reverts = append(b.Reverts, reverts)
		metricReverts().AddWithLabel(int64(len(reverts)), map[string]string{"kind": "created"})
	}

	logger.Debug("merged transitions",
		"accounts", transitions.Len(),
		"reverts", len(reverts),
		"bundle", len(b.State))
	b.updateMetrics()
}

func (b *BundleState) applyTransition(addr primitives.Address, transition *TransitionAccount) *AccountRevert {
	defer withAddress(addr)

	if acc, ok := b.State[addr]; ok {
		return acc.UpdateAndCreateRevert(transition)
	}
	present := transition.PresentBundleAccount()
	revert := transition.CreateRevert()
	if revert != nil {
		b.State[addr] = present
	}
	return revert
}

// RevertLatest undoes the most recent window. It returns false if there is nothing to revert.
func (b *BundleState) RevertLatest() bool {
	if len(b.Reverts) == 0 {
		return false
	}
	reverts := b.Reverts[len(b.Reverts)-1]
	b.Reverts = b.Reverts[:len(b.Reverts)-1]

	for _, entry := range reverts {
		if acc, ok := b.State[entry.Address]; ok {
			if acc.Revert(entry.Revert) {
				delete(b.State, entry.Address)
			}
			continue
		}
		// only a deleted account can be missing, revert on an empty one
		acc := NewBundleAccount(nil, nil, nil, LoadedNotExisting)
		if !acc.Revert(entry.Revert) {
			b.State[entry.Address] = acc
		}
	}
	metricReverts().AddWithLabel(int64(len(reverts)), map[string]string{"kind": "applied"})
	b.updateMetrics()
	return true
}

// Revert undoes the n most recent windows.
func (b *BundleState) Revert(n int) {
	for ; n > 0; n-- {
		if !b.RevertLatest() {
			return
		}
	}
}

// Extend appends a bundle built on top of this one.
// Original values of this bundle are kept so the result reverts down to the same base.
func (b *BundleState) Extend(other *BundleState) {
	// a wipe in other has to restore slots only this bundle knows about
	for _, reverts := range other.Reverts {
		for _, entry := range reverts {
			if !entry.Revert.WipeStorage {
				continue
			}
			this, ok := b.State[entry.Address]
			if !ok {
				continue
			}
			for k, slot := range this.Storage {
				if _, ok := entry.Revert.Storage[k]; !ok {
					entry.Revert.Storage[k] = SlotValue(slot.PresentValue)
				}
			}
		}
	}

	for addr, otherAcc := range other.State {
		this, ok := b.State[addr]
		if !ok {
			b.State[addr] = otherAcc
			continue
		}
		status := this.Status.Transition(otherAcc.Status)
		if otherAcc.WasDestroyed() {
			this.Info = otherAcc.Info.Copy()
			this.Storage = otherAcc.Storage.Copy()
		} else {
			this.Extend(otherAcc)
		}
		this.Status = status
	}
	maps.Copy(b.Contracts, other.Contracts)
	b.Reverts = append(b.Reverts, other.Reverts...)
	b.updateMetrics()
}

// IntoPlainState converts the bundle into the plain changeset against the database
// and the plain reverts of every window. When sorted is set, all lists are ordered
// by address and slot key.
func (b *BundleState) IntoPlainState(sorted bool) (StateChangeset, PlainStateReverts) {
	var changeset StateChangeset
	for addr, acc := range b.State {
		wasDestroyed := acc.WasDestroyed()
		if acc.IsInfoChanged() {
			var info *primitives.AccountInfo
			if acc.Info != nil {
				info = acc.Info.Copy()
				info.Code = nil
			}
			changeset.Accounts = append(changeset.Accounts, AccountChange{Address: addr, Info: info})
		}

		var entries []StorageEntry
		for k, slot := range acc.Storage {
			// a wiped account is compared against zero, others against the original value
			if (wasDestroyed && !slot.PresentValue.IsZero()) || (!wasDestroyed && slot.IsChanged()) {
				entries = append(entries, StorageEntry{Key: k, Value: slot.PresentValue})
			}
		}
		if len(entries) > 0 || wasDestroyed {
			changeset.Storage = append(changeset.Storage, StorageChange{
				Address:     addr,
				WipeStorage: wasDestroyed,
				Storage:     entries,
			})
		}
	}
	for hash, code := range b.Contracts {
		if hash == primitives.EmptyCodeHash {
			continue
		}
		changeset.Contracts = append(changeset.Contracts, ContractChange{CodeHash: hash, Code: code})
	}

	reverts := PlainStateReverts{
		Accounts: make([][]AccountChange, 0, len(b.Reverts)),
		Storage:  make([][]StorageRevert, 0, len(b.Reverts)),
	}
	for _, window := range b.Reverts {
		accounts := []AccountChange{}
		storage := []StorageRevert{}
		for _, entry := range window {
			switch entry.Revert.Account.Kind {
			case RevertToInfo:
				info := entry.Revert.Account.Info
				info.Code = nil
				accounts = append(accounts, AccountChange{Address: entry.Address, Info: &info})
			case RevertDeleteIt:
				accounts = append(accounts, AccountChange{Address: entry.Address})
			}
			if entry.Revert.WipeStorage || len(entry.Revert.Storage) > 0 {
				entries := make([]StorageEntry, 0, len(entry.Revert.Storage))
				for k, slot := range entry.Revert.Storage {
					entries = append(entries, StorageEntry{Key: k, Value: slot.PreviousValue()})
				}
				storage = append(storage, StorageRevert{
					Address: entry.Address,
					Wiped:   entry.Revert.WipeStorage,
					Storage: entries,
				})
			}
		}
		reverts.Accounts = append(reverts.Accounts, accounts)
		reverts.Storage = append(reverts.Storage, storage)
	}

	if sorted {
		changeset.sort()
		reverts.sort()
	}
	return changeset, reverts
}

func (b *BundleState) updateMetrics() {
	metricBundleSize().SetWithLabel(int64(len(b.State)), map[string]string{"kind": "accounts"})
	metricBundleSize().SetWithLabel(int64(len(b.Reverts)), map[string]string{"kind": "reverts"})
}

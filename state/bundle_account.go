// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"

	"github.com/BrazilRaw/revm/primitives"
)

// BundleAccount is the net change of one address against its persisted state.
//
// OriginalInfo and the original slot values are what the database holds. Info, the
// present slot values and Status are the state after every folded transition.
// Once an account was destroyed, original slot values are meaningless and present
// values are compared against zero.
type BundleAccount struct {
	Info         *primitives.AccountInfo
	OriginalInfo *primitives.AccountInfo
	Storage      primitives.Storage
	Status       AccountStatus
}

// NewBundleAccount creates a bundle account.
func NewBundleAccount(original, present *primitives.AccountInfo, storage primitives.Storage, status AccountStatus) *BundleAccount {
	if storage == nil {
		storage = primitives.Storage{}
	}
	return &BundleAccount{
		Info:         present,
		OriginalInfo: original,
		Storage:      storage,
		Status:       status,
	}
}

// StorageSlot returns the present value of a slot.
// A missing slot reads as zero when the status implies storage is fully known;
// otherwise ok is false and the database has to be consulted.
func (b *BundleAccount) StorageSlot(key uint256.Int) (value uint256.Int, ok bool) {
	if slot, found := b.Storage[key]; found {
		return slot.PresentValue, true
	}
	if b.Status.IsStorageKnown() {
		return uint256.Int{}, true
	}
	return uint256.Int{}, false
}

// AccountInfo returns a copy of the present info.
func (b *BundleAccount) AccountInfo() *primitives.AccountInfo {
	return b.Info.Copy()
}

// WasDestroyed returns true if the persisted storage of the account has to be wiped.
func (b *BundleAccount) WasDestroyed() bool {
	return b.Status.WasDestroyed()
}

// IsInfoChanged returns true if the present info differs from the original.
func (b *BundleAccount) IsInfoChanged() bool {
	return !primitives.InfoEqual(b.Info, b.OriginalInfo)
}

// IsContractChanged returns true if the code hash differs from the original.
func (b *BundleAccount) IsContractChanged() bool {
	switch {
	case b.Info == nil && b.OriginalInfo == nil:
		return false
	case b.Info == nil || b.OriginalInfo == nil:
		return true
	}
	return b.Info.CodeHash != b.OriginalInfo.CodeHash
}

// Revert applies a revert created by UpdateAndCreateRevert.
// Reverts must be applied newest first. It returns true if the account can be
// removed from the bundle altogether.
func (b *BundleAccount) Revert(revert *AccountRevert) bool {
	b.Status = revert.PreviousStatus

	switch revert.Account.Kind {
	case RevertDeleteIt:
		b.Info = nil
		if b.OriginalInfo == nil {
			b.Storage = primitives.Storage{}
			return true
		}
		// the account exists in the database, its slots have to be written back as zero
		for k, slot := range b.Storage {
			slot.PresentValue.Clear()
			b.Storage[k] = slot
		}
		return false
	case RevertToInfo:
		info := revert.Account.Info
		b.Info = &info
	}

	for k, r := range revert.Storage {
		if r.Destroyed {
			delete(b.Storage, k)
			continue
		}
		slot, ok := b.Storage[k]
		if !ok {
			// the original was dropped by a wipe, the restored value has to be written back
			slot = primitives.NewChangedStorageSlot(uint256.Int{}, r.Value)
		}
		slot.PresentValue = r.Value
		b.Storage[k] = slot
	}
	return false
}

// Extend merges a later snapshot of the same account.
// Original info and original slot values of b are kept.
func (b *BundleAccount) Extend(other *BundleAccount) {
	b.Status = other.Status
	b.Info = other.Info.Copy()
	extendStorage(b.Storage, other.Storage)
}

// extendStorage inserts missing slots and overwrites present values of existing ones.
func extendStorage(this, update primitives.Storage) {
	for k, slot := range update {
		if cur, ok := this[k]; ok {
			cur.PresentValue = slot.PresentValue
			this[k] = cur
		} else {
			this[k] = slot
		}
	}
}

// infoRevert returns RevertTo(fallback) if the info changes, DoNothing otherwise.
func (b *BundleAccount) infoRevert(updated *primitives.AccountInfo, fallback primitives.AccountInfo) AccountInfoRevert {
	if primitives.InfoEqual(b.Info, updated) {
		return DoNothing
	}
	return RevertTo(fallback)
}

// UpdateAndCreateRevert folds a transition into the account and returns the revert that
// undoes it. A nil revert means the update was a no-op.
// It panics with a *TransitionError on a status change that cannot happen.
func (b *BundleAccount) UpdateAndCreateRevert(transition *TransitionAccount) *AccountRevert {
	revert := b.update(transition)
	if revert != nil && revert.isNoop(b.Status) {
		return nil
	}
	return revert
}

func (b *BundleAccount) update(transition *TransitionAccount) *AccountRevert {
	updatedInfo := transition.Info.Copy()
	updatedStorage := transition.Storage.Copy()
	updatedStatus := transition.Status

	// only slots that changed need to be restored
	previousStorage := make(map[uint256.Int]RevertToSlot)
	for k, slot := range updatedStorage {
		if slot.IsChanged() {
			previousStorage[k] = SlotValue(slot.OriginalValue)
		}
	}

	switch updatedStatus {
	case Changed:
		switch b.Status {
		case Changed, Loaded:
			revert := &AccountRevert{
				Account:        b.infoRevert(updatedInfo, primitives.InfoOrDefault(b.Info)),
				Storage:        previousStorage,
				PreviousStatus: b.Status,
			}
			b.Status = Changed
			b.Info = updatedInfo
			extendStorage(b.Storage, updatedStorage)
			return revert
		case LoadedEmptyEIP161:
			// an empty account can only be funded, it has no storage to restore
			revert := &AccountRevert{
				Account:        b.infoRevert(updatedInfo, primitives.InfoOrDefault(b.Info)),
				Storage:        map[uint256.Int]RevertToSlot{},
				PreviousStatus: Loaded,
			}
			b.Status = Changed
			b.Info = updatedInfo
			return revert
		}
	case InMemoryChange:
		switch b.Status {
		case LoadedEmptyEIP161, Loaded:
			revert := &AccountRevert{
				Account:        b.infoRevert(updatedInfo, primitives.DefaultAccountInfo()),
				Storage:        previousStorage,
				PreviousStatus: b.Status,
			}
			b.Status = InMemoryChange
			b.Info = updatedInfo
			extendStorage(b.Storage, updatedStorage)
			return revert
		case LoadedNotExisting:
			b.Status = InMemoryChange
			b.Info = updatedInfo
			b.Storage = updatedStorage
			return &AccountRevert{
				Account:        DeleteIt,
				Storage:        previousStorage,
				PreviousStatus: LoadedNotExisting,
			}
		case InMemoryChange:
			revert := &AccountRevert{
				Account:        b.infoRevert(updatedInfo, primitives.InfoOrDefault(b.Info)),
				Storage:        previousStorage,
				PreviousStatus: InMemoryChange,
			}
			b.Info = updatedInfo
			extendStorage(b.Storage, updatedStorage)
			return revert
		}
	case Loaded, LoadedNotExisting, LoadedEmptyEIP161:
		// read-only refresh, nothing to record
		return nil
	case Destroyed:
		switch b.Status {
		case InMemoryChange, Changed, Loaded, LoadedEmptyEIP161:
			info := primitives.InfoOrDefault(b.Info)
			storage := b.Storage
			b.Info = nil
			b.Storage = primitives.Storage{}
			revert := newSelfdestructedRevert(b.Status, info, storage)
			b.Status = Destroyed
			return revert
		case LoadedNotExisting:
			// destroying an account that never existed
			return nil
		}
	case DestroyedChanged:
		if revert := newSelfdestructedFromBundle(b, updatedStorage); revert != nil {
			b.Status = DestroyedChanged
			b.Info = updatedInfo
			b.Storage = updatedStorage
			return revert
		}

		var revert *AccountRevert
		switch b.Status {
		case Destroyed, LoadedNotExisting:
			revert = &AccountRevert{
				Account:        DeleteIt,
				Storage:        previousStorage,
				PreviousStatus: b.Status,
			}
		case DestroyedChanged:
			revert = &AccountRevert{
				Account:        b.infoRevert(updatedInfo, primitives.DefaultAccountInfo()),
				Storage:        previousStorage,
				PreviousStatus: DestroyedChanged,
			}
		case DestroyedAgain:
			revert = newSelfdestructedAgainRevert(
				DestroyedAgain,
				RevertTo(primitives.DefaultAccountInfo()),
				nil,
				updatedStorage,
			)
		default:
			invalidTransition(b.Status, updatedStatus)
		}
		b.Status = DestroyedChanged
		b.Info = updatedInfo
		b.Storage = updatedStorage
		return revert
	case DestroyedAgain:
		revert := newSelfdestructedFromBundle(b, nil)
		if revert == nil {
			switch b.Status {
			case Destroyed, DestroyedAgain, LoadedNotExisting:
				// already gone
			case DestroyedChanged:
				// TODO: confirm that keeping the pre-update slot diff here restores
				// the recreated storage correctly when the account is destroyed again.
				revert = &AccountRevert{
					Account:        RevertTo(primitives.InfoOrDefault(b.Info)),
					Storage:        previousStorage,
					PreviousStatus: DestroyedChanged,
				}
			default:
				invalidTransition(b.Status, updatedStatus)
			}
		}
		b.Status = DestroyedAgain
		b.Info = nil
		b.Storage = primitives.Storage{}
		return revert
	}
	invalidTransition(b.Status, updatedStatus)
	return nil
}

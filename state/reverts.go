// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"

	"github.com/BrazilRaw/revm/primitives"
)

// InfoRevertKind tells what a revert does to the account info.
type InfoRevertKind uint8

const (
	// RevertDoNothing leaves the info untouched.
	RevertDoNothing InfoRevertKind = iota
	// RevertDeleteIt removes the account.
	RevertDeleteIt
	// RevertToInfo restores a previous info.
	RevertToInfo
)

func (k InfoRevertKind) String() string {
	switch k {
	case RevertDoNothing:
		return "DoNothing"
	case RevertDeleteIt:
		return "DeleteIt"
	case RevertToInfo:
		return "RevertTo"
	}
	return "Unknown"
}

// AccountInfoRevert is the info part of an AccountRevert.
// Info is only meaningful for RevertToInfo.
type AccountInfoRevert struct {
	Kind InfoRevertKind
	Info primitives.AccountInfo
}

var (
	// DoNothing leaves the account info as is.
	DoNothing = AccountInfoRevert{Kind: RevertDoNothing}
	// DeleteIt removes the account.
	DeleteIt = AccountInfoRevert{Kind: RevertDeleteIt}
)

// RevertTo restores info.
func RevertTo(info primitives.AccountInfo) AccountInfoRevert {
	return AccountInfoRevert{Kind: RevertToInfo, Info: info}
}

// RevertToSlot is the value a storage slot is restored to.
// A destroyed slot did not exist before the update and is removed.
type RevertToSlot struct {
	Destroyed bool
	Value     uint256.Int
}

// SlotValue restores a slot to value.
func SlotValue(value uint256.Int) RevertToSlot {
	return RevertToSlot{Value: value}
}

// SlotDestroyed removes a slot.
func SlotDestroyed() RevertToSlot {
	return RevertToSlot{Destroyed: true}
}

// PreviousValue returns the value the slot had, zero if it did not exist.
func (r RevertToSlot) PreviousValue() uint256.Int {
	if r.Destroyed {
		return uint256.Int{}
	}
	return r.Value
}

// AccountRevert undoes exactly one bundle account update.
type AccountRevert struct {
	Account        AccountInfoRevert
	Storage        map[uint256.Int]RevertToSlot
	PreviousStatus AccountStatus
	WipeStorage    bool
}

// isNoop returns true if applying the revert on an account with status would change nothing.
func (r *AccountRevert) isNoop(status AccountStatus) bool {
	return r.Account.Kind == RevertDoNothing &&
		len(r.Storage) == 0 &&
		!r.WipeStorage &&
		r.PreviousStatus == status
}

// newSelfdestructedRevert reverts a destruction: the whole previous storage is restored.
func newSelfdestructedRevert(status AccountStatus, info primitives.AccountInfo, storage primitives.Storage) *AccountRevert {
	previous := make(map[uint256.Int]RevertToSlot, len(storage))
	for k, slot := range storage {
		previous[k] = SlotValue(slot.PresentValue)
	}
	return &AccountRevert{
		Account:        RevertTo(info),
		Storage:        previous,
		PreviousStatus: status,
		WipeStorage:    true,
	}
}

// newSelfdestructedAgainRevert restores previousStorage and removes the slots written by
// updatedStorage that did not exist before.
func newSelfdestructedAgainRevert(status AccountStatus, account AccountInfoRevert, previousStorage, updatedStorage primitives.Storage) *AccountRevert {
	previous := make(map[uint256.Int]RevertToSlot, len(previousStorage)+len(updatedStorage))
	for k, slot := range previousStorage {
		previous[k] = SlotValue(slot.PresentValue)
	}
	for k := range updatedStorage {
		if _, ok := previous[k]; !ok {
			previous[k] = SlotDestroyed()
		}
	}
	return &AccountRevert{
		Account:        account,
		Storage:        previous,
		PreviousStatus: status,
	}
}

// newSelfdestructedFromBundle captures a live bundle account that is being destroyed or
// recreated in a single fold. The bundle storage is moved into the revert.
// It returns nil if the account holds nothing to capture.
func newSelfdestructedFromBundle(bundle *BundleAccount, updatedStorage primitives.Storage) *AccountRevert {
	switch bundle.Status {
	case InMemoryChange, Changed, LoadedEmptyEIP161, Loaded:
		storage := bundle.Storage
		bundle.Storage = primitives.Storage{}
		revert := newSelfdestructedAgainRevert(
			bundle.Status,
			RevertTo(primitives.InfoOrDefault(bundle.Info)),
			storage,
			updatedStorage,
		)
		revert.WipeStorage = true
		return revert
	}
	return nil
}

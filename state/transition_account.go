// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/BrazilRaw/revm/primitives"
)

// TransitionAccount is the change of one address caused by one unit of execution.
type TransitionAccount struct {
	Info           *primitives.AccountInfo
	PreviousInfo   *primitives.AccountInfo
	Status         AccountStatus
	PreviousStatus AccountStatus
	// Storage holds the touched slots with their values before and after the change.
	Storage primitives.Storage
	// StorageWasDestroyed is set when the account storage was wiped within the transition.
	StorageWasDestroyed bool
}

// Update merges a later transition of the same address into this one.
// Previous info and status are kept, so the result spans both transitions.
func (t *TransitionAccount) Update(other *TransitionAccount) {
	t.Info = other.Info.Copy()
	t.Status = other.Status

	if other.Status == Destroyed || other.Status == DestroyedAgain {
		t.Storage = other.Storage.Copy()
		t.StorageWasDestroyed = true
		return
	}
	if t.Storage == nil {
		t.Storage = primitives.Storage{}
	}
	for k, slot := range other.Storage {
		if cur, ok := t.Storage[k]; ok {
			cur.PresentValue = slot.PresentValue
			t.Storage[k] = cur
		} else {
			t.Storage[k] = slot
		}
	}
}

// HasNewContract returns the code hash and code if the transition installed new code.
func (t *TransitionAccount) HasNewContract() (primitives.Bytes32, primitives.Bytecode, bool) {
	var present, previous *primitives.Bytes32
	if t.Info != nil {
		present = &t.Info.CodeHash
	}
	if t.PreviousInfo != nil {
		previous = &t.PreviousInfo.CodeHash
	}
	sameHash := present == nil && previous == nil ||
		present != nil && previous != nil && *present == *previous
	if sameHash || t.Info == nil || t.Info.Code == nil {
		return primitives.Bytes32{}, nil, false
	}
	return t.Info.CodeHash, t.Info.Code, true
}

// PresentBundleAccount returns the bundle account reflecting the state after the transition.
func (t *TransitionAccount) PresentBundleAccount() *BundleAccount {
	return &BundleAccount{
		Info:         t.Info.Copy(),
		OriginalInfo: t.PreviousInfo.Copy(),
		Storage:      t.Storage.Copy(),
		Status:       t.Status,
	}
}

// originalBundleAccount returns the bundle account as it was before the transition.
func (t *TransitionAccount) originalBundleAccount() *BundleAccount {
	return &BundleAccount{
		Info:         t.PreviousInfo.Copy(),
		OriginalInfo: t.PreviousInfo.Copy(),
		Storage:      primitives.Storage{},
		Status:       t.PreviousStatus,
	}
}

// CreateRevert returns the revert that undoes the transition applied on its previous state.
func (t *TransitionAccount) CreateRevert() *AccountRevert {
	return t.originalBundleAccount().UpdateAndCreateRevert(t)
}

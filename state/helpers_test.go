// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"

	"github.com/BrazilRaw/revm/primitives"
)

func addr(b byte) primitives.Address {
	return primitives.BytesToAddress([]byte{b})
}

func u256(v uint64) uint256.Int {
	return *uint256.NewInt(v)
}

func info(balance uint64) *primitives.AccountInfo {
	i := primitives.NewAccountInfo(uint256.NewInt(balance), 0, nil)
	return &i
}

func slot(original, present uint64) primitives.StorageSlot {
	return primitives.NewChangedStorageSlot(u256(original), u256(present))
}

// nonZero returns the non-zero present values of storage.
// A zero present value reads the same as a missing slot.
func nonZero(storage primitives.Storage) map[uint64]uint64 {
	out := make(map[uint64]uint64)
	for k, s := range storage {
		if !s.PresentValue.IsZero() {
			out[k.Uint64()] = s.PresentValue.Uint64()
		}
	}
	return out
}

type snapshot struct {
	status  AccountStatus
	info    *primitives.AccountInfo
	storage map[uint64]uint64
}

func snap(b *BundleAccount) snapshot {
	return snapshot{status: b.Status, info: b.Info.Copy(), storage: nonZero(b.Storage)}
}

// catchTransition runs f and returns the TransitionError it panicked with, if any.
func catchTransition(f func()) (err *TransitionError) {
	defer func() {
		if r := recover(); r != nil {
			err = r.(*TransitionError)
		}
	}()
	f()
	return nil
}

func changedTransition(previous, present *primitives.AccountInfo, prevStatus AccountStatus, storage primitives.Storage) *TransitionAccount {
	return &TransitionAccount{
		Info:           present,
		PreviousInfo:   previous,
		Status:         changedStatus(prevStatus),
		PreviousStatus: prevStatus,
		Storage:        storage,
	}
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package primitives

import "github.com/holiman/uint256"

// StorageSlot pairs the value a slot had when it was first seen with its current value.
// OriginalValue is fixed once the slot is created, only PresentValue moves.
type StorageSlot struct {
	OriginalValue uint256.Int
	PresentValue  uint256.Int
}

// NewStorageSlot creates an unchanged slot.
func NewStorageSlot(original uint256.Int) StorageSlot {
	return StorageSlot{OriginalValue: original, PresentValue: original}
}

// NewChangedStorageSlot creates a slot whose present value differs from its original.
func NewChangedStorageSlot(original, present uint256.Int) StorageSlot {
	return StorageSlot{OriginalValue: original, PresentValue: present}
}

// IsChanged returns true if the present value differs from the original value.
func (s StorageSlot) IsChanged() bool {
	return s.OriginalValue != s.PresentValue
}

// Storage maps slot keys to slots with original values.
type Storage map[uint256.Int]StorageSlot

// Copy returns a shallow copy of the storage. Slots are values.
func (s Storage) Copy() Storage {
	cpy := make(Storage, len(s))
	for k, v := range s {
		cpy[k] = v
	}
	return cpy
}

// PlainStorage maps slot keys to present values only.
type PlainStorage map[uint256.Int]uint256.Int

// Copy returns a copy of the storage.
func (s PlainStorage) Copy() PlainStorage {
	cpy := make(PlainStorage, len(s))
	for k, v := range s {
		cpy[k] = v
	}
	return cpy
}

// Present strips original values from the storage.
func (s Storage) Present() PlainStorage {
	plain := make(PlainStorage, len(s))
	for k, v := range s {
		plain[k] = v.PresentValue
	}
	return plain
}

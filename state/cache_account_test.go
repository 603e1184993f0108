// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrazilRaw/revm/primitives"
)

func newCacheAccount(status AccountStatus) *CacheAccount {
	switch status {
	case LoadedNotExisting:
		return NewLoadedNotExistingCacheAccount()
	case Destroyed:
		return NewDestroyedCacheAccount()
	case DestroyedAgain:
		return &CacheAccount{Status: status}
	}
	return &CacheAccount{Account: newPlainAccount(*info(10), primitives.PlainStorage{u256(1): u256(5)}), Status: status}
}

func TestCacheAccountSelfdestruct(t *testing.T) {
	tests := []struct {
		from       AccountStatus
		to         AccountStatus
		transition bool
	}{
		{LoadedNotExisting, LoadedNotExisting, false},
		{Loaded, Destroyed, true},
		{LoadedEmptyEIP161, Destroyed, true},
		{InMemoryChange, Destroyed, true},
		{Changed, Destroyed, true},
		{Destroyed, DestroyedAgain, true},
		{DestroyedChanged, DestroyedAgain, true},
		{DestroyedAgain, DestroyedAgain, true},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			acc := newCacheAccount(tt.from)
			previous := acc.AccountInfo()

			transition := acc.Selfdestruct()
			assert.Equal(t, tt.to, acc.Status)
			assert.Nil(t, acc.Account)
			if !tt.transition {
				assert.Nil(t, transition)
				return
			}
			require.NotNil(t, transition)
			assert.Nil(t, transition.Info)
			assert.Equal(t, previous, transition.PreviousInfo)
			assert.Equal(t, tt.from, transition.PreviousStatus)
			assert.Equal(t, tt.to, transition.Status)
			assert.Empty(t, transition.Storage)
			assert.True(t, transition.StorageWasDestroyed)
		})
	}
}

func TestCacheAccountTouchEmpty(t *testing.T) {
	tests := []struct {
		from       AccountStatus
		to         AccountStatus
		transition bool
	}{
		{LoadedNotExisting, LoadedNotExisting, false},
		{Loaded, Destroyed, true},
		{LoadedEmptyEIP161, Destroyed, true},
		{InMemoryChange, Destroyed, true},
		{Changed, Destroyed, true},
		{Destroyed, Destroyed, false},
		{DestroyedChanged, DestroyedAgain, true},
		{DestroyedAgain, DestroyedAgain, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			acc := newCacheAccount(tt.from)
			transition := acc.TouchEmpty()
			assert.Equal(t, tt.to, acc.Status)
			assert.Nil(t, acc.Account)
			if !tt.transition {
				assert.Nil(t, transition)
				return
			}
			require.NotNil(t, transition)
			assert.Equal(t, tt.to, transition.Status)
			assert.Equal(t, tt.from, transition.PreviousStatus)
		})
	}
}

func TestCacheAccountChangeAndCreate(t *testing.T) {
	tests := []struct {
		from    AccountStatus
		changed AccountStatus
		created AccountStatus
	}{
		{LoadedNotExisting, InMemoryChange, InMemoryChange},
		{Loaded, Changed, InMemoryChange},
		{LoadedEmptyEIP161, InMemoryChange, InMemoryChange},
		{InMemoryChange, InMemoryChange, InMemoryChange},
		{Changed, Changed, InMemoryChange},
		{Destroyed, DestroyedChanged, DestroyedChanged},
		{DestroyedChanged, DestroyedChanged, DestroyedChanged},
		{DestroyedAgain, DestroyedChanged, DestroyedChanged},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			acc := newCacheAccount(tt.from)
			transition := acc.Change(*info(20), primitives.Storage{u256(2): slot(0, 3)})
			assert.Equal(t, tt.changed, acc.Status)
			assert.Equal(t, tt.changed, transition.Status)
			assert.Equal(t, tt.from, transition.PreviousStatus)
			assert.Equal(t, info(20), transition.Info)

			acc = newCacheAccount(tt.from)
			transition = acc.NewlyCreated(*info(30), primitives.Storage{u256(2): slot(0, 3)})
			assert.Equal(t, tt.created, acc.Status)
			assert.Equal(t, tt.created, transition.Status)
			assert.Equal(t, primitives.PlainStorage{u256(2): u256(3)}, acc.Account.Storage, "created account drops old storage")
		})
	}
}

func TestCacheAccountChangeMergesStorage(t *testing.T) {
	acc := NewLoadedCacheAccount(*info(10), primitives.PlainStorage{u256(1): u256(5), u256(2): u256(6)})
	update := primitives.Storage{u256(2): slot(6, 7), u256(3): slot(0, 1)}

	transition := acc.Change(*info(11), update)
	assert.Equal(t, primitives.PlainStorage{
		u256(1): u256(5),
		u256(2): u256(7),
		u256(3): u256(1),
	}, acc.Account.Storage)
	assert.Equal(t, update, transition.Storage)
	assert.Equal(t, info(10), transition.PreviousInfo)

	v, ok := acc.StorageSlot(u256(3))
	assert.True(t, ok)
	assert.Equal(t, u256(1), v)
	_, ok = acc.StorageSlot(u256(9))
	assert.False(t, ok)
}

func TestCacheAccountBalance(t *testing.T) {
	acc := NewLoadedNotExistingCacheAccount()
	assert.False(t, acc.IsSome())
	assert.Nil(t, acc.IncrementBalance(uint256.NewInt(0)))

	transition := acc.IncrementBalance(uint256.NewInt(5))
	require.NotNil(t, transition)
	assert.Equal(t, InMemoryChange, acc.Status)
	assert.True(t, acc.IsSome())
	assert.Nil(t, transition.PreviousInfo)
	assert.Equal(t, u256(5), transition.Info.Balance)
	assert.Empty(t, transition.Storage)

	maxBalance := new(uint256.Int).SetAllOne()
	acc.IncrementBalance(maxBalance)
	assert.Equal(t, *maxBalance, acc.Account.Info.Balance, "balance saturates")

	acc = NewLoadedCacheAccount(*info(10), nil)
	drained, transition := acc.DrainBalance()
	assert.Equal(t, u256(10), drained)
	assert.Equal(t, Changed, acc.Status)
	assert.True(t, acc.Account.Info.Balance.IsZero())
	assert.Equal(t, info(10), transition.PreviousInfo)
}

func TestCacheAccountFromBundle(t *testing.T) {
	bundle := NewBundleAccount(info(1), info(2), primitives.Storage{u256(1): slot(3, 4)}, Changed)
	acc := cacheAccountFromBundle(bundle)
	assert.Equal(t, Changed, acc.Status)
	assert.Equal(t, info(2), acc.AccountInfo())
	assert.Equal(t, primitives.PlainStorage{u256(1): u256(4)}, acc.Account.Storage)

	acc = cacheAccountFromBundle(NewBundleAccount(info(1), nil, nil, Destroyed))
	assert.Nil(t, acc.Account)
	assert.Equal(t, Destroyed, acc.Status)
}

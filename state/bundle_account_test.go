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

func TestBundleAccountUpdateChanged(t *testing.T) {
	b := NewBundleAccount(info(100), info(100), nil, Loaded)

	revert := b.UpdateAndCreateRevert(changedTransition(info(100), info(150), Loaded, primitives.Storage{
		u256(1): slot(0, 5),
	}))
	require.NotNil(t, revert)
	assert.Equal(t, &AccountRevert{
		Account:        RevertTo(*info(100)),
		Storage:        map[uint256.Int]RevertToSlot{u256(1): SlotValue(u256(0))},
		PreviousStatus: Loaded,
	}, revert)
	assert.Equal(t, Changed, b.Status)
	assert.Equal(t, info(150), b.Info)
	assert.Equal(t, primitives.Storage{u256(1): slot(0, 5)}, b.Storage)
	assert.Equal(t, info(100), b.OriginalInfo)

	assert.False(t, b.Revert(revert))
	assert.Equal(t, Loaded, b.Status)
	assert.Equal(t, info(100), b.Info)
	assert.Equal(t, primitives.Storage{u256(1): slot(0, 0)}, b.Storage)
}

func TestBundleAccountRevertDestroyAndRecreate(t *testing.T) {
	b := NewBundleAccount(info(100), info(100), primitives.Storage{u256(1): slot(10, 10)}, Loaded)
	snapshots := []snapshot{snap(b)}
	var reverts []*AccountRevert

	revert := b.UpdateAndCreateRevert(changedTransition(info(100), info(150), Loaded, primitives.Storage{
		u256(1): slot(10, 20),
		u256(2): slot(0, 3),
	}))
	assert.Equal(t, &AccountRevert{
		Account:        RevertTo(*info(100)),
		Storage:        map[uint256.Int]RevertToSlot{u256(1): SlotValue(u256(10)), u256(2): SlotValue(u256(0))},
		PreviousStatus: Loaded,
	}, revert)
	reverts = append(reverts, revert)
	snapshots = append(snapshots, snap(b))

	revert = b.UpdateAndCreateRevert(&TransitionAccount{
		PreviousInfo:        info(150),
		Status:              Destroyed,
		PreviousStatus:      Changed,
		Storage:             primitives.Storage{},
		StorageWasDestroyed: true,
	})
	assert.Equal(t, &AccountRevert{
		Account:        RevertTo(*info(150)),
		Storage:        map[uint256.Int]RevertToSlot{u256(1): SlotValue(u256(20)), u256(2): SlotValue(u256(3))},
		PreviousStatus: Changed,
		WipeStorage:    true,
	}, revert)
	assert.Equal(t, Destroyed, b.Status)
	assert.Nil(t, b.Info)
	assert.Empty(t, b.Storage)
	reverts = append(reverts, revert)
	snapshots = append(snapshots, snap(b))

	revert = b.UpdateAndCreateRevert(&TransitionAccount{
		Info:           info(5),
		Status:         DestroyedChanged,
		PreviousStatus: Destroyed,
		Storage:        primitives.Storage{u256(3): slot(0, 9)},
	})
	assert.Equal(t, &AccountRevert{
		Account:        DeleteIt,
		Storage:        map[uint256.Int]RevertToSlot{u256(3): SlotValue(u256(0))},
		PreviousStatus: Destroyed,
	}, revert)
	reverts = append(reverts, revert)

	for i := len(reverts) - 1; i >= 0; i-- {
		assert.False(t, b.Revert(reverts[i]))
		assert.Equal(t, snapshots[i], snap(b), "after revert %d", i)
	}
	assert.Equal(t, info(100), b.OriginalInfo)
}

func TestBundleAccountRevertNewAccount(t *testing.T) {
	b := NewBundleAccount(nil, nil, nil, LoadedNotExisting)
	initial := snap(b)

	r1 := b.UpdateAndCreateRevert(&TransitionAccount{
		Info:           info(1),
		Status:         InMemoryChange,
		PreviousStatus: LoadedNotExisting,
		Storage:        primitives.Storage{u256(1): slot(0, 4)},
	})
	assert.Equal(t, DeleteIt, r1.Account)
	assert.Equal(t, LoadedNotExisting, r1.PreviousStatus)
	afterFirst := snap(b)

	r2 := b.UpdateAndCreateRevert(&TransitionAccount{
		Info:           info(2),
		PreviousInfo:   info(1),
		Status:         InMemoryChange,
		PreviousStatus: InMemoryChange,
		Storage:        primitives.Storage{u256(1): slot(4, 6), u256(2): slot(0, 1)},
	})
	assert.Equal(t, &AccountRevert{
		Account:        RevertTo(*info(1)),
		Storage:        map[uint256.Int]RevertToSlot{u256(1): SlotValue(u256(4)), u256(2): SlotValue(u256(0))},
		PreviousStatus: InMemoryChange,
	}, r2)
	assert.Equal(t, map[uint64]uint64{1: 6, 2: 1}, nonZero(b.Storage))

	assert.False(t, b.Revert(r2))
	assert.Equal(t, afterFirst, snap(b))
	assert.True(t, b.Revert(r1), "a deleted account without original can be dropped")
	assert.Equal(t, initial, snap(b))
}

func defaultInfo() *primitives.AccountInfo {
	i := primitives.DefaultAccountInfo()
	return &i
}

func TestBundleAccountTransitionMatrix(t *testing.T) {
	tests := []struct {
		name       string
		account    func() *BundleAccount
		transition *TransitionAccount
		revert     *AccountRevert
		updated    snapshot
		removed    bool
		reverted   snapshot
	}{
		{
			name:    "changed from empty eip161",
			account: func() *BundleAccount { return NewBundleAccount(defaultInfo(), defaultInfo(), nil, LoadedEmptyEIP161) },
			transition: &TransitionAccount{
				Info:           info(5),
				PreviousInfo:   defaultInfo(),
				Status:         Changed,
				PreviousStatus: LoadedEmptyEIP161,
				Storage:        primitives.Storage{u256(2): slot(0, 7)},
			},
			revert: &AccountRevert{
				Account:        RevertTo(primitives.DefaultAccountInfo()),
				Storage:        map[uint256.Int]RevertToSlot{},
				PreviousStatus: Loaded,
			},
			updated:  snapshot{status: Changed, info: info(5), storage: map[uint64]uint64{}},
			reverted: snapshot{status: Loaded, info: defaultInfo(), storage: map[uint64]uint64{}},
		},
		{
			name: "in memory change from loaded",
			account: func() *BundleAccount {
				return NewBundleAccount(info(10), info(10), primitives.Storage{u256(1): slot(3, 3)}, Loaded)
			},
			transition: &TransitionAccount{
				Info:           info(20),
				PreviousInfo:   info(10),
				Status:         InMemoryChange,
				PreviousStatus: Loaded,
				Storage:        primitives.Storage{u256(1): slot(3, 4)},
			},
			revert: &AccountRevert{
				Account:        RevertTo(primitives.DefaultAccountInfo()),
				Storage:        map[uint256.Int]RevertToSlot{u256(1): SlotValue(u256(3))},
				PreviousStatus: Loaded,
			},
			updated:  snapshot{status: InMemoryChange, info: info(20), storage: map[uint64]uint64{1: 4}},
			reverted: snapshot{status: Loaded, info: defaultInfo(), storage: map[uint64]uint64{1: 3}},
		},
		{
			name:    "in memory change from empty eip161",
			account: func() *BundleAccount { return NewBundleAccount(defaultInfo(), defaultInfo(), nil, LoadedEmptyEIP161) },
			transition: &TransitionAccount{
				Info:           info(1),
				PreviousInfo:   defaultInfo(),
				Status:         InMemoryChange,
				PreviousStatus: LoadedEmptyEIP161,
				Storage:        primitives.Storage{},
			},
			revert: &AccountRevert{
				Account:        RevertTo(primitives.DefaultAccountInfo()),
				Storage:        map[uint256.Int]RevertToSlot{},
				PreviousStatus: LoadedEmptyEIP161,
			},
			updated:  snapshot{status: InMemoryChange, info: info(1), storage: map[uint64]uint64{}},
			reverted: snapshot{status: LoadedEmptyEIP161, info: defaultInfo(), storage: map[uint64]uint64{}},
		},
		{
			name:    "destroyed changed from not existing",
			account: func() *BundleAccount { return NewBundleAccount(nil, nil, nil, LoadedNotExisting) },
			transition: &TransitionAccount{
				Info:                info(3),
				Status:              DestroyedChanged,
				PreviousStatus:      LoadedNotExisting,
				Storage:             primitives.Storage{u256(1): slot(0, 5)},
				StorageWasDestroyed: true,
			},
			revert: &AccountRevert{
				Account:        DeleteIt,
				Storage:        map[uint256.Int]RevertToSlot{u256(1): SlotValue(u256(0))},
				PreviousStatus: LoadedNotExisting,
			},
			updated:  snapshot{status: DestroyedChanged, info: info(3), storage: map[uint64]uint64{1: 5}},
			removed:  true,
			reverted: snapshot{status: LoadedNotExisting, storage: map[uint64]uint64{}},
		},
		{
			name: "destroyed changed again with new info",
			account: func() *BundleAccount {
				return NewBundleAccount(info(100), info(5), primitives.Storage{u256(3): slot(0, 9)}, DestroyedChanged)
			},
			transition: &TransitionAccount{
				Info:           info(6),
				PreviousInfo:   info(5),
				Status:         DestroyedChanged,
				PreviousStatus: DestroyedChanged,
				Storage:        primitives.Storage{u256(3): slot(9, 10), u256(4): slot(0, 1)},
			},
			revert: &AccountRevert{
				Account:        RevertTo(primitives.DefaultAccountInfo()),
				Storage:        map[uint256.Int]RevertToSlot{u256(3): SlotValue(u256(9)), u256(4): SlotValue(u256(0))},
				PreviousStatus: DestroyedChanged,
			},
			updated:  snapshot{status: DestroyedChanged, info: info(6), storage: map[uint64]uint64{3: 10, 4: 1}},
			reverted: snapshot{status: DestroyedChanged, info: defaultInfo(), storage: map[uint64]uint64{3: 9}},
		},
		{
			name: "destroyed changed again with same info",
			account: func() *BundleAccount {
				return NewBundleAccount(info(100), info(5), primitives.Storage{u256(3): slot(0, 9)}, DestroyedChanged)
			},
			transition: &TransitionAccount{
				Info:           info(5),
				PreviousInfo:   info(5),
				Status:         DestroyedChanged,
				PreviousStatus: DestroyedChanged,
				Storage:        primitives.Storage{u256(3): slot(9, 10)},
			},
			revert: &AccountRevert{
				Account:        DoNothing,
				Storage:        map[uint256.Int]RevertToSlot{u256(3): SlotValue(u256(9))},
				PreviousStatus: DestroyedChanged,
			},
			updated:  snapshot{status: DestroyedChanged, info: info(5), storage: map[uint64]uint64{3: 10}},
			reverted: snapshot{status: DestroyedChanged, info: info(5), storage: map[uint64]uint64{3: 9}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.account()
			revert := b.UpdateAndCreateRevert(tt.transition)
			assert.Equal(t, tt.revert, revert)
			assert.Equal(t, tt.updated, snap(b))

			assert.Equal(t, tt.removed, b.Revert(revert))
			assert.Equal(t, tt.reverted, snap(b))
		})
	}
}

func TestBundleAccountNoop(t *testing.T) {
	b := NewBundleAccount(info(10), info(10), primitives.Storage{u256(5): slot(5, 5)}, Changed)

	revert := b.UpdateAndCreateRevert(changedTransition(info(10), info(10), Changed, primitives.Storage{
		u256(5): slot(5, 5),
	}))
	assert.Nil(t, revert)
	assert.Equal(t, Changed, b.Status)
	assert.Equal(t, info(10), b.Info)

	// read-only refresh
	assert.Nil(t, b.UpdateAndCreateRevert(&TransitionAccount{Info: info(10), Status: Loaded, PreviousStatus: Loaded}))
}

func TestBundleAccountMinimalRevert(t *testing.T) {
	b := NewBundleAccount(info(10), info(10), nil, Loaded)

	revert := b.UpdateAndCreateRevert(changedTransition(info(10), info(20), Loaded, primitives.Storage{
		u256(1): slot(7, 7),
		u256(2): slot(0, 1),
	}))
	require.NotNil(t, revert)
	assert.Equal(t, map[uint256.Int]RevertToSlot{u256(2): SlotValue(u256(0))}, revert.Storage)

	// same info, storage only
	revert = b.UpdateAndCreateRevert(changedTransition(info(20), info(20), Changed, primitives.Storage{
		u256(2): slot(1, 2),
	}))
	require.NotNil(t, revert)
	assert.Equal(t, DoNothing, revert.Account)
	assert.Equal(t, map[uint256.Int]RevertToSlot{u256(2): SlotValue(u256(1))}, revert.Storage)
}

func TestBundleAccountRecreateLive(t *testing.T) {
	b := NewBundleAccount(info(100), info(100), primitives.Storage{u256(1): slot(10, 10)}, Loaded)

	revert := b.UpdateAndCreateRevert(&TransitionAccount{
		Info:                info(7),
		PreviousInfo:        info(100),
		Status:              DestroyedChanged,
		PreviousStatus:      Loaded,
		Storage:             primitives.Storage{u256(2): slot(0, 8)},
		StorageWasDestroyed: true,
	})
	assert.Equal(t, &AccountRevert{
		Account:        RevertTo(*info(100)),
		Storage:        map[uint256.Int]RevertToSlot{u256(1): SlotValue(u256(10)), u256(2): SlotDestroyed()},
		PreviousStatus: Loaded,
		WipeStorage:    true,
	}, revert)
	assert.Equal(t, DestroyedChanged, b.Status)
	assert.Equal(t, primitives.Storage{u256(2): slot(0, 8)}, b.Storage)

	assert.False(t, b.Revert(revert))
	assert.Equal(t, snapshot{status: Loaded, info: info(100), storage: map[uint64]uint64{1: 10}}, snap(b))
	_, ok := b.Storage[u256(2)]
	assert.False(t, ok)
}

func TestBundleAccountDestroyedAgain(t *testing.T) {
	// recreate after a second destruction
	b := NewBundleAccount(info(100), nil, nil, DestroyedAgain)
	revert := b.UpdateAndCreateRevert(&TransitionAccount{
		Info:           info(5),
		Status:         DestroyedChanged,
		PreviousStatus: DestroyedAgain,
		Storage:        primitives.Storage{u256(4): slot(0, 9)},
	})
	assert.Equal(t, &AccountRevert{
		Account:        RevertTo(primitives.DefaultAccountInfo()),
		Storage:        map[uint256.Int]RevertToSlot{u256(4): SlotDestroyed()},
		PreviousStatus: DestroyedAgain,
	}, revert)

	// destroy a recreated account
	b = NewBundleAccount(info(100), info(5), primitives.Storage{u256(3): slot(0, 9)}, DestroyedChanged)
	revert = b.UpdateAndCreateRevert(&TransitionAccount{
		PreviousInfo:        info(5),
		Status:              DestroyedAgain,
		PreviousStatus:      DestroyedChanged,
		Storage:             primitives.Storage{},
		StorageWasDestroyed: true,
	})
	assert.Equal(t, &AccountRevert{
		Account:        RevertTo(*info(5)),
		Storage:        map[uint256.Int]RevertToSlot{},
		PreviousStatus: DestroyedChanged,
	}, revert)
	assert.Equal(t, DestroyedAgain, b.Status)
	assert.Nil(t, b.Info)
	assert.Empty(t, b.Storage)

	// destroying a destroyed account records nothing
	assert.Nil(t, b.UpdateAndCreateRevert(&TransitionAccount{
		Status:         DestroyedAgain,
		PreviousStatus: DestroyedAgain,
		Storage:        primitives.Storage{},
	}))
}

func TestBundleAccountDestroyNotExisting(t *testing.T) {
	b := NewBundleAccount(nil, nil, nil, LoadedNotExisting)
	assert.Nil(t, b.UpdateAndCreateRevert(&TransitionAccount{
		Status:              Destroyed,
		PreviousStatus:      LoadedNotExisting,
		Storage:             primitives.Storage{},
		StorageWasDestroyed: true,
	}))
	assert.Equal(t, LoadedNotExisting, b.Status)
}

func TestBundleAccountInvalidTransition(t *testing.T) {
	b := NewBundleAccount(info(1), nil, nil, Destroyed)
	err := catchTransition(func() {
		b.UpdateAndCreateRevert(changedTransition(nil, info(2), Loaded, nil))
	})
	require.NotNil(t, err)
	assert.Equal(t, Destroyed, err.From)
	assert.Equal(t, Changed, err.To)
	assert.True(t, err.Address.IsZero())
	assert.Equal(t, "invalid account transition from Destroyed to Changed", err.Error())

	err = catchTransition(func() {
		b.UpdateAndCreateRevert(&TransitionAccount{Status: Destroyed, PreviousStatus: Destroyed})
	})
	require.NotNil(t, err)
	assert.Equal(t, Destroyed, err.To)
}

func TestBundleAccountStorageSlot(t *testing.T) {
	b := NewBundleAccount(info(1), info(1), primitives.Storage{u256(1): slot(0, 5)}, Changed)
	v, ok := b.StorageSlot(u256(1))
	assert.True(t, ok)
	assert.Equal(t, u256(5), v)
	_, ok = b.StorageSlot(u256(2))
	assert.False(t, ok, "unknown slot of a loaded account")

	b.Status = DestroyedChanged
	v, ok = b.StorageSlot(u256(2))
	assert.True(t, ok)
	assert.True(t, v.IsZero())
}

func TestBundleAccountExtend(t *testing.T) {
	b := NewBundleAccount(info(1), info(1), primitives.Storage{u256(1): slot(1, 2)}, Changed)
	other := NewBundleAccount(info(1), info(3), primitives.Storage{u256(1): slot(2, 4), u256(2): slot(0, 5)}, Changed)

	b.Extend(other)
	assert.Equal(t, Changed, b.Status)
	assert.Equal(t, info(3), b.Info)
	assert.Equal(t, info(1), b.OriginalInfo)
	assert.Equal(t, primitives.Storage{u256(1): slot(1, 4), u256(2): slot(0, 5)}, b.Storage)
}

func TestBundleAccountChanges(t *testing.T) {
	code := primitives.Bytecode{0x60, 0x00}
	contract := primitives.NewAccountInfo(uint256.NewInt(1), 1, code)

	b := NewBundleAccount(info(1), info(1), nil, Loaded)
	assert.False(t, b.IsInfoChanged())
	assert.False(t, b.IsContractChanged())

	b.Info = &contract
	assert.True(t, b.IsInfoChanged())
	assert.True(t, b.IsContractChanged())

	b.Info = nil
	assert.True(t, b.IsInfoChanged())
	assert.True(t, b.IsContractChanged())

	b = NewBundleAccount(nil, nil, nil, LoadedNotExisting)
	assert.False(t, b.IsInfoChanged())
	assert.False(t, b.IsContractChanged())
}

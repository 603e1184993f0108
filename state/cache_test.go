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

func TestCacheStateInsert(t *testing.T) {
	c := NewCacheState(true)
	c.InsertNotExisting(addr(1))
	c.InsertAccount(addr(2), primitives.DefaultAccountInfo())
	c.InsertAccountWithStorage(addr(3), *info(3), primitives.PlainStorage{u256(1): u256(2)})

	assert.Equal(t, LoadedNotExisting, c.Accounts[addr(1)].Status)
	assert.Equal(t, LoadedEmptyEIP161, c.Accounts[addr(2)].Status)
	assert.Equal(t, Loaded, c.Accounts[addr(3)].Status)
	assert.Equal(t, primitives.PlainStorage{u256(1): u256(2)}, c.Accounts[addr(3)].Account.Storage)

	trie := c.TrieAccounts()
	assert.Len(t, trie, 2)
	assert.NotContains(t, trie, addr(1))
}

func TestCacheStateApplyEVMState(t *testing.T) {
	c := NewCacheState(true)
	c.InsertAccountWithStorage(addr(1), *info(10), primitives.PlainStorage{u256(1): u256(1)})
	c.InsertAccount(addr(2), *info(20))
	c.InsertNotExisting(addr(3))
	c.InsertAccount(addr(4), *info(40))

	changed := primitives.NewTouchedAccount(*info(11))
	changed.Storage[u256(1)] = slot(1, 2)

	destroyed := primitives.NewTouchedAccount(*info(20))
	destroyed.MarkSelfdestruct()
	destroyed.MarkCreated()

	code := primitives.Bytecode{0x60, 0x00}
	created := primitives.NewTouchedAccount(primitives.NewAccountInfo(uint256.NewInt(0), 1, code))
	created.MarkCreated()

	untouched := &primitives.Account{Info: *info(99)}

	transitions := c.ApplyEVMState(primitives.EVMState{
		addr(4): untouched,
		addr(3): created,
		addr(2): destroyed,
		addr(1): changed,
	})
	require.Len(t, transitions, 3)
	for i, want := range []primitives.Address{addr(1), addr(2), addr(3)} {
		assert.Equal(t, want, transitions[i].Address)
	}

	assert.Equal(t, Changed, transitions[0].Transition.Status)
	assert.Equal(t, primitives.Storage{u256(1): slot(1, 2)}, transitions[0].Transition.Storage)
	assert.Equal(t, primitives.PlainStorage{u256(1): u256(2)}, c.Accounts[addr(1)].Account.Storage)

	assert.Equal(t, Destroyed, transitions[1].Transition.Status, "selfdestruct wins over creation")
	assert.True(t, transitions[1].Transition.StorageWasDestroyed)

	assert.Equal(t, InMemoryChange, transitions[2].Transition.Status)
	assert.Equal(t, LoadedNotExisting, transitions[2].Transition.PreviousStatus)
	_, _, ok := transitions[2].Transition.HasNewContract()
	assert.True(t, ok)

	assert.Equal(t, Loaded, c.Accounts[addr(4)].Status)
	assert.Equal(t, info(40), c.Accounts[addr(4)].AccountInfo())
}

func TestCacheStateApplyUncached(t *testing.T) {
	c := NewCacheState(true)

	created := primitives.NewTouchedAccount(*info(1))
	created.MarkCreated()
	destroyed := primitives.NewTouchedAccount(*info(2))
	destroyed.MarkSelfdestruct()

	transitions := c.ApplyEVMState(primitives.EVMState{
		addr(1): created,
		addr(2): destroyed,
		addr(3): primitives.NewTouchedAccount(*info(3)),
		addr(4): primitives.NewTouchedAccount(primitives.DefaultAccountInfo()),
	})
	require.Len(t, transitions, 1)
	assert.Equal(t, addr(1), transitions[0].Address)
	assert.Equal(t, InMemoryChange, transitions[0].Transition.Status)

	assert.Equal(t, InMemoryChange, c.Accounts[addr(1)].Status)
	assert.Equal(t, LoadedNotExisting, c.Accounts[addr(2)].Status)
	assert.Equal(t, Changed, c.Accounts[addr(3)].Status)
	assert.Equal(t, LoadedNotExisting, c.Accounts[addr(4)].Status)
}

func TestCacheStateTouchEmpty(t *testing.T) {
	for _, stateClear := range []bool{true, false} {
		c := NewCacheState(stateClear)
		c.InsertAccount(addr(1), primitives.DefaultAccountInfo())

		transitions := c.ApplyEVMState(primitives.EVMState{
			addr(1): primitives.NewTouchedAccount(primitives.DefaultAccountInfo()),
		})
		if !stateClear {
			assert.Empty(t, transitions)
			assert.Equal(t, LoadedEmptyEIP161, c.Accounts[addr(1)].Status)
			continue
		}
		require.Len(t, transitions, 1)
		assert.Equal(t, Destroyed, transitions[0].Transition.Status)
		assert.Equal(t, LoadedEmptyEIP161, transitions[0].Transition.PreviousStatus)
		assert.Nil(t, c.Accounts[addr(1)].Account)
	}
}

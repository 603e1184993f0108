// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/BrazilRaw/revm/primitives"
)

// CacheState holds the present value of every account and contract accessed so far.
// It consumes execution output and emits one transition per changed address.
type CacheState struct {
	Accounts  map[primitives.Address]*CacheAccount
	Contracts map[primitives.Bytes32]primitives.Bytecode
	// HasStateClear enables EIP-161: touched empty accounts are removed.
	HasStateClear bool
}

// NewCacheState creates an empty cache.
func NewCacheState(hasStateClear bool) *CacheState {
	return &CacheState{
		Accounts:      make(map[primitives.Address]*CacheAccount),
		Contracts:     make(map[primitives.Bytes32]primitives.Bytecode),
		HasStateClear: hasStateClear,
	}
}

// SetStateClearFlag toggles EIP-161 state clearing.
func (c *CacheState) SetStateClearFlag(hasStateClear bool) {
	c.HasStateClear = hasStateClear
}

// TrieAccounts returns every existing account, as needed for state root computation.
func (c *CacheState) TrieAccounts() map[primitives.Address]*PlainAccount {
	accounts := make(map[primitives.Address]*PlainAccount)
	for addr, acc := range c.Accounts {
		if acc.Account != nil {
			accounts[addr] = acc.Account
		}
	}
	return accounts
}

// InsertNotExisting caches addr as absent from the database.
func (c *CacheState) InsertNotExisting(addr primitives.Address) {
	c.Accounts[addr] = NewLoadedNotExistingCacheAccount()
}

// InsertAccount caches an account loaded from the database.
func (c *CacheState) InsertAccount(addr primitives.Address, info primitives.AccountInfo) {
	c.InsertAccountWithStorage(addr, info, nil)
}

// InsertAccountWithStorage caches an account loaded from the database along with its storage.
func (c *CacheState) InsertAccountWithStorage(addr primitives.Address, info primitives.AccountInfo, storage primitives.PlainStorage) {
	if info.IsEmpty() {
		c.Accounts[addr] = NewLoadedEmptyEIP161CacheAccount(storage)
	} else {
		c.Accounts[addr] = NewLoadedCacheAccount(info, storage)
	}
}

// ApplyEVMState applies one unit of execution output and returns the transitions of the
// changed addresses, ordered by address.
//
// Every touched address is expected to be cached already. A missing one gets a best-effort
// entry and produces no transition unless it was created.
func (c *CacheState) ApplyEVMState(evmState primitives.EVMState) []AddressTransition {
	transitions := make([]AddressTransition, 0, len(evmState))
	push := func(addr primitives.Address, t *TransitionAccount) {
		if t != nil {
			transitions = append(transitions, AddressTransition{Address: addr, Transition: t})
		}
	}

	for _, addr := range sortedAddresses(evmState) {
		account := evmState[addr]
		if !account.IsTouched() {
			continue
		}
		cached, ok := c.Accounts[addr]

		// a contract can be created and destroyed in the same transaction,
		// so selfdestruct is checked first
		if account.IsSelfdestructed() {
			if ok {
				push(addr, cached.Selfdestruct())
			} else {
				logger.Warn("selfdestruct of uncached account", "addr", addr)
				c.Accounts[addr] = NewLoadedNotExistingCacheAccount()
			}
			continue
		}

		if account.IsCreated() {
			if ok {
				push(addr, cached.NewlyCreated(account.Info, account.Storage))
			} else {
				logger.Warn("creation of uncached account", "addr", addr)
				c.Accounts[addr] = NewNewlyCreatedCacheAccount(account.Info, account.Storage.Present())
				push(addr, &TransitionAccount{
					Info:           account.Info.Copy(),
					Status:         InMemoryChange,
					PreviousStatus: LoadedNotExisting,
					Storage:        account.Storage.Copy(),
				})
			}
			continue
		}

		if account.IsEmpty() {
			// legacy networks keep touched empty accounts
			if !c.HasStateClear {
				continue
			}
			if ok {
				push(addr, cached.TouchEmpty())
			} else {
				logger.Warn("touch of uncached empty account", "addr", addr)
				c.Accounts[addr] = NewLoadedNotExistingCacheAccount()
			}
			continue
		}

		if ok {
			push(addr, cached.Change(account.Info, account.Storage))
		} else {
			logger.Warn("change of uncached account", "addr", addr)
			c.Accounts[addr] = NewChangedCacheAccount(account.Info, account.Storage.Present())
		}
	}
	return transitions
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"

	"github.com/BrazilRaw/revm/log"
	"github.com/BrazilRaw/revm/primitives"
)

var logger = log.WithContext("pkg", "state")

// State fronts a Database with the cache and, when enabled, records every committed
// change into a bundle.
type State struct {
	cache *CacheState
	db    Database
	// transitions is nil when bundle updates are disabled.
	transitions        *TransitionState
	bundle             *BundleState
	usePreloadedBundle bool
}

// Cache returns the cache state.
func (s *State) Cache() *CacheState {
	return s.cache
}

// Bundle returns the bundle built so far.
func (s *State) Bundle() *BundleState {
	return s.bundle
}

// TransitionState returns the transitions not merged yet, nil if bundle updates are disabled.
func (s *State) TransitionState() *TransitionState {
	return s.transitions
}

// SetStateClearFlag toggles EIP-161 state clearing.
func (s *State) SetStateClearFlag(hasStateClear bool) {
	s.cache.SetStateClearFlag(hasStateClear)
}

// InsertNotExisting caches addr as absent from the database.
func (s *State) InsertNotExisting(addr primitives.Address) {
	s.cache.InsertNotExisting(addr)
}

// InsertAccount caches an account.
func (s *State) InsertAccount(addr primitives.Address, info primitives.AccountInfo) {
	s.cache.InsertAccount(addr, info)
}

// InsertAccountWithStorage caches an account with storage.
func (s *State) InsertAccountWithStorage(addr primitives.Address, info primitives.AccountInfo, storage primitives.PlainStorage) {
	s.cache.InsertAccountWithStorage(addr, info, storage)
}

// LoadCacheAccount returns the cached account, loading it from the preloaded bundle or
// the database on first access.
func (s *State) LoadCacheAccount(addr primitives.Address) (*CacheAccount, error) {
	if acc, ok := s.cache.Accounts[addr]; ok {
		return acc, nil
	}
	if s.usePreloadedBundle {
		if b, ok := s.bundle.Account(addr); ok {
			acc := cacheAccountFromBundle(b)
			s.cache.Accounts[addr] = acc
			return acc, nil
		}
	}

	info, err := s.db.Basic(addr)
	if err != nil {
		return nil, &Error{err}
	}
	var acc *CacheAccount
	switch {
	case info == nil:
		acc = NewLoadedNotExistingCacheAccount()
	case info.IsEmpty():
		acc = NewLoadedEmptyEIP161CacheAccount(nil)
	default:
		acc = NewLoadedCacheAccount(*info, nil)
	}
	s.cache.Accounts[addr] = acc
	return acc, nil
}

// Basic returns the present info of addr, nil if the account does not exist.
func (s *State) Basic(addr primitives.Address) (*primitives.AccountInfo, error) {
	acc, err := s.LoadCacheAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.AccountInfo(), nil
}

// CodeByHash returns the code with the given hash.
func (s *State) CodeByHash(hash primitives.Bytes32) (primitives.Bytecode, error) {
	if code, ok := s.cache.Contracts[hash]; ok {
		return code, nil
	}
	if s.usePreloadedBundle {
		if code, ok := s.bundle.Bytecode(hash); ok {
			s.cache.Contracts[hash] = code
			return code, nil
		}
	}
	code, err := s.db.CodeByHash(hash)
	if err != nil {
		return nil, &Error{err}
	}
	s.cache.Contracts[hash] = code
	return code, nil
}

// Storage returns the present value of a slot.
// Accounts whose storage is fully known answer zero for missing slots without a database read.
func (s *State) Storage(addr primitives.Address, key uint256.Int) (uint256.Int, error) {
	acc, err := s.LoadCacheAccount(addr)
	if err != nil {
		return uint256.Int{}, err
	}
	if acc.Account == nil {
		return uint256.Int{}, nil
	}
	if v, ok := acc.Account.Storage[key]; ok {
		return v, nil
	}

	var value uint256.Int
	if !acc.Status.IsStorageKnown() {
		if value, err = s.db.Storage(addr, key); err != nil {
			return uint256.Int{}, &Error{err}
		}
	}
	acc.Account.Storage[key] = value
	return value, nil
}

// Commit applies execution output to the cache and records the transitions.
func (s *State) Commit(evmState primitives.EVMState) {
	s.applyTransitions(s.cache.ApplyEVMState(evmState))
}

func (s *State) applyTransitions(transitions []AddressTransition) {
	if s.transitions != nil {
		s.transitions.AddTransitions(transitions)
	}
}

// IncrementBalances credits accounts outside of execution, e.g. block rewards.
// Zero amounts are skipped.
func (s *State) IncrementBalances(balances map[primitives.Address]*uint256.Int) error {
	var transitions []AddressTransition
	for _, addr := range sortedAddresses(balances) {
		if balances[addr] == nil {
			continue
		}
		acc, err := s.LoadCacheAccount(addr)
		if err != nil {
			return err
		}
		if t := acc.IncrementBalance(balances[addr]); t != nil {
			transitions = append(transitions, AddressTransition{Address: addr, Transition: t})
		}
	}
	s.applyTransitions(transitions)
	return nil
}

// DrainBalances zeroes the balances of addrs and returns the drained amounts in order.
func (s *State) DrainBalances(addrs []primitives.Address) ([]uint256.Int, error) {
	drained := make([]uint256.Int, 0, len(addrs))
	var transitions []AddressTransition
	for _, addr := range addrs {
		acc, err := s.LoadCacheAccount(addr)
		if err != nil {
			return nil, err
		}
		balance, t := acc.DrainBalance()
		drained = append(drained, balance)
		transitions = append(transitions, AddressTransition{Address: addr, Transition: t})
	}
	s.applyTransitions(transitions)
	return drained, nil
}

// MergeTransitions folds the pending transitions into the bundle as one window.
func (s *State) MergeTransitions(retention BundleRetention) {
	if s.transitions == nil {
		return
	}
	s.bundle.ApplyTransitionsAndCreateReverts(s.transitions.Take(), retention)
}

// TakeBundle returns the bundle and replaces it with an empty one.
func (s *State) TakeBundle() *BundleState {
	bundle := s.bundle
	s.bundle = NewBundleState()
	return bundle
}

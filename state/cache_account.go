// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"

	"github.com/BrazilRaw/revm/primitives"
)

// CacheAccount is the live view of one address: present info, present storage and status.
// A destroyed account keeps its entry with a nil Account.
type CacheAccount struct {
	Account *PlainAccount
	Status  AccountStatus
}

// NewLoadedCacheAccount creates an account loaded from the database.
func NewLoadedCacheAccount(info primitives.AccountInfo, storage primitives.PlainStorage) *CacheAccount {
	return &CacheAccount{Account: newPlainAccount(info, storage), Status: Loaded}
}

// NewLoadedEmptyEIP161CacheAccount creates an empty account loaded from the database.
func NewLoadedEmptyEIP161CacheAccount(storage primitives.PlainStorage) *CacheAccount {
	return &CacheAccount{Account: NewEmptyPlainAccount(storage), Status: LoadedEmptyEIP161}
}

// NewLoadedNotExistingCacheAccount creates an account known to be absent from the database.
func NewLoadedNotExistingCacheAccount() *CacheAccount {
	return &CacheAccount{Status: LoadedNotExisting}
}

// NewNewlyCreatedCacheAccount creates an account created in memory.
func NewNewlyCreatedCacheAccount(info primitives.AccountInfo, storage primitives.PlainStorage) *CacheAccount {
	return &CacheAccount{Account: newPlainAccount(info, storage), Status: InMemoryChange}
}

// NewDestroyedCacheAccount creates a destroyed account.
func NewDestroyedCacheAccount() *CacheAccount {
	return &CacheAccount{Status: Destroyed}
}

// NewChangedCacheAccount creates a changed account.
func NewChangedCacheAccount(info primitives.AccountInfo, storage primitives.PlainStorage) *CacheAccount {
	return &CacheAccount{Account: newPlainAccount(info, storage), Status: Changed}
}

// cacheAccountFromBundle builds the live view of a preloaded bundle account.
func cacheAccountFromBundle(b *BundleAccount) *CacheAccount {
	acc := &CacheAccount{Status: b.Status}
	if b.Info != nil {
		acc.Account = newPlainAccount(*b.Info, b.Storage.Present())
	}
	return acc
}

// IsSome returns true if the account exists.
func (c *CacheAccount) IsSome() bool {
	switch c.Status {
	case Changed, InMemoryChange, DestroyedChanged, Loaded, LoadedEmptyEIP161:
		return true
	}
	return false
}

// StorageSlot returns the cached value of a slot.
func (c *CacheAccount) StorageSlot(key uint256.Int) (uint256.Int, bool) {
	if c.Account == nil {
		return uint256.Int{}, false
	}
	v, ok := c.Account.Storage[key]
	return v, ok
}

// AccountInfo returns a copy of the present info, nil if the account does not exist.
func (c *CacheAccount) AccountInfo() *primitives.AccountInfo {
	if c.Account == nil {
		return nil
	}
	return c.Account.Info.Copy()
}

// takeInfo removes the account and returns its info.
func (c *CacheAccount) takeInfo() *primitives.AccountInfo {
	info := c.AccountInfo()
	c.Account = nil
	return info
}

// Selfdestruct destroys the account.
// It returns nil if the account never existed.
func (c *CacheAccount) Selfdestruct() *TransitionAccount {
	previousStatus := c.Status
	previousInfo := c.takeInfo()

	switch c.Status {
	case LoadedNotExisting:
		return nil
	case Destroyed, DestroyedChanged, DestroyedAgain:
		c.Status = DestroyedAgain
	default:
		c.Status = Destroyed
	}

	return &TransitionAccount{
		Info:                nil,
		Status:              c.Status,
		PreviousInfo:        previousInfo,
		PreviousStatus:      previousStatus,
		Storage:             primitives.Storage{},
		StorageWasDestroyed: true,
	}
}

// TouchEmpty removes an empty account that was touched while EIP-161 is active.
// It returns nil if the account was already absent.
func (c *CacheAccount) TouchEmpty() *TransitionAccount {
	previousStatus := c.Status
	previousInfo := c.takeInfo()

	switch c.Status {
	case InMemoryChange, LoadedEmptyEIP161, Loaded, Changed, Destroyed:
		c.Status = Destroyed
	case LoadedNotExisting:
	case DestroyedChanged, DestroyedAgain:
		c.Status = DestroyedAgain
	default:
		invalidTransition(c.Status, Destroyed)
	}

	switch previousStatus {
	case LoadedNotExisting, Destroyed, DestroyedAgain:
		return nil
	}
	return &TransitionAccount{
		Info:                nil,
		Status:              c.Status,
		PreviousInfo:        previousInfo,
		PreviousStatus:      previousStatus,
		Storage:             primitives.Storage{},
		StorageWasDestroyed: true,
	}
}

// NewlyCreated replaces the account with a freshly created one.
func (c *CacheAccount) NewlyCreated(info primitives.AccountInfo, storage primitives.Storage) *TransitionAccount {
	previousStatus := c.Status
	previousInfo := c.takeInfo()

	if c.Status.WasDestroyed() {
		c.Status = DestroyedChanged
	} else {
		c.Status = InMemoryChange
	}
	c.Account = newPlainAccount(info, storage.Present())

	return &TransitionAccount{
		Info:           info.Copy(),
		Status:         c.Status,
		PreviousInfo:   previousInfo,
		PreviousStatus: previousStatus,
		Storage:        storage.Copy(),
	}
}

// changedStatus returns the status of an account after its info or storage changed.
func changedStatus(s AccountStatus) AccountStatus {
	switch s {
	case Loaded, Changed:
		return Changed
	case LoadedNotExisting, LoadedEmptyEIP161, InMemoryChange:
		return InMemoryChange
	case Destroyed, DestroyedChanged, DestroyedAgain:
		return DestroyedChanged
	}
	invalidTransition(s, Changed)
	return s
}

// Change sets new info and merges changed storage into the account.
func (c *CacheAccount) Change(info primitives.AccountInfo, storage primitives.Storage) *TransitionAccount {
	previousStatus := c.Status
	previousInfo := c.AccountInfo()

	plain := primitives.PlainStorage{}
	if c.Account != nil {
		plain = c.Account.Storage
	}
	for k, slot := range storage {
		plain[k] = slot.PresentValue
	}

	c.Status = changedStatus(c.Status)
	c.Account = newPlainAccount(info, plain)

	return &TransitionAccount{
		Info:           info.Copy(),
		Status:         c.Status,
		PreviousInfo:   previousInfo,
		PreviousStatus: previousStatus,
		Storage:        storage.Copy(),
	}
}

// changeInfo applies change to the account info, creating a default account if absent.
// The transition carries no storage.
func (c *CacheAccount) changeInfo(change func(info *primitives.AccountInfo)) *TransitionAccount {
	previousStatus := c.Status
	previousInfo := c.AccountInfo()

	if c.Account == nil {
		c.Account = NewEmptyPlainAccount(nil)
	}
	change(&c.Account.Info)
	c.Status = changedStatus(c.Status)

	return &TransitionAccount{
		Info:           c.AccountInfo(),
		Status:         c.Status,
		PreviousInfo:   previousInfo,
		PreviousStatus: previousStatus,
		Storage:        primitives.Storage{},
	}
}

// IncrementBalance adds amount to the balance, saturating on overflow.
// It returns nil for a zero amount.
func (c *CacheAccount) IncrementBalance(amount *uint256.Int) *TransitionAccount {
	if amount.IsZero() {
		return nil
	}
	return c.changeInfo(func(info *primitives.AccountInfo) {
		if _, overflow := info.Balance.AddOverflow(&info.Balance, amount); overflow {
			info.Balance.SetAllOne()
		}
	})
}

// DrainBalance zeroes the balance and returns the drained amount.
func (c *CacheAccount) DrainBalance() (uint256.Int, *TransitionAccount) {
	var drained uint256.Int
	transition := c.changeInfo(func(info *primitives.AccountInfo) {
		drained = info.Balance
		info.Balance.Clear()
	})
	return drained, transition
}

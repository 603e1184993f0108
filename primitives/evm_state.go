// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package primitives

// AccountFlags describes what the execution did to an account.
type AccountFlags uint8

const (
	// Touched is set when the account was accessed in a way that may change it.
	Touched AccountFlags = 1 << iota
	// SelfDestructed is set when the account executed selfdestruct.
	SelfDestructed
	// Created is set when the account was created by the execution.
	Created
)

// Account is the raw per-address output of one unit of execution.
type Account struct {
	Info    AccountInfo
	Storage Storage
	Status  AccountFlags
}

// NewTouchedAccount creates a touched execution result with empty storage.
func NewTouchedAccount(info AccountInfo) *Account {
	acc := &Account{Info: info, Storage: Storage{}}
	acc.MarkTouch()
	return acc
}

// MarkTouch marks the account as touched.
func (a *Account) MarkTouch() { a.Status |= Touched }

// MarkSelfdestruct marks the account as self-destructed.
func (a *Account) MarkSelfdestruct() { a.Status |= SelfDestructed }

// MarkCreated marks the account as created.
func (a *Account) MarkCreated() { a.Status |= Created }

// IsTouched returns if the account was touched.
func (a *Account) IsTouched() bool { return a.Status&Touched != 0 }

// IsSelfdestructed returns if the account executed selfdestruct.
func (a *Account) IsSelfdestructed() bool { return a.Status&SelfDestructed != 0 }

// IsCreated returns if the account was created.
func (a *Account) IsCreated() bool { return a.Status&Created != 0 }

// IsEmpty returns if the account info is empty per EIP-161.
func (a *Account) IsEmpty() bool { return a.Info.IsEmpty() }

// EVMState is the set of accounts one unit of execution produced.
type EVMState map[Address]*Account

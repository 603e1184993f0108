// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/BrazilRaw/revm/primitives"

// PlainAccount is an account with its present storage values.
type PlainAccount struct {
	Info    primitives.AccountInfo
	Storage primitives.PlainStorage
}

// NewEmptyPlainAccount creates an empty account with the given storage.
func NewEmptyPlainAccount(storage primitives.PlainStorage) *PlainAccount {
	if storage == nil {
		storage = primitives.PlainStorage{}
	}
	return &PlainAccount{Info: primitives.DefaultAccountInfo(), Storage: storage}
}

func newPlainAccount(info primitives.AccountInfo, storage primitives.PlainStorage) *PlainAccount {
	if storage == nil {
		storage = primitives.PlainStorage{}
	}
	return &PlainAccount{Info: info, Storage: storage}
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package plaindb persists the plain state produced by a bundle: accounts, storage slots,
// contract code and one revert record per block, all on top of a kv.Store.
package plaindb

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/BrazilRaw/revm/cache"
	"github.com/BrazilRaw/revm/kv"
	"github.com/BrazilRaw/revm/log"
	"github.com/BrazilRaw/revm/primitives"
	"github.com/BrazilRaw/revm/state"
)

var logger = log.WithContext("pkg", "plaindb")

const (
	accountBucket = kv.Bucket("a")
	storageBucket = kv.Bucket("s")
	codeBucket    = kv.Bucket("c")
	revertBucket  = kv.Bucket("r")
	metaBucket    = kv.Bucket("m")
)

var (
	headKey = []byte("head")

	errBalanceOverflow = errors.New("balance overflows 256 bits")
	errValueOverflow   = errors.New("storage value overflows 256 bits")
)

var _ state.Database = (*DB)(nil)

// DB is the plain state database.
type DB struct {
	store     kv.Store
	accounts  kv.Store
	storage   kv.Store
	code      kv.Store
	reverts   kv.Store
	meta      kv.Store
	codeCache *cache.LRU[primitives.Bytes32, primitives.Bytecode]
}

// New creates a plain state database on top of store.
func New(store kv.Store, codeCacheSize int) (*DB, error) {
	codeCache, err := cache.NewLRU[primitives.Bytes32, primitives.Bytecode](codeCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "new code cache")
	}
	return &DB{
		store:     store,
		accounts:  accountBucket.NewStore(store),
		storage:   storageBucket.NewStore(store),
		code:      codeBucket.NewStore(store),
		reverts:   revertBucket.NewStore(store),
		meta:      metaBucket.NewStore(store),
		codeCache: codeCache,
	}, nil
}

// Basic returns the account info, nil if the account does not exist.
func (db *DB) Basic(addr primitives.Address) (*primitives.AccountInfo, error) {
	data, err := db.accounts.Get(addr.Bytes())
	if err != nil {
		if db.accounts.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get account")
	}
	info, err := decodeAccount(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode account %v", addr)
	}
	return info, nil
}

// CodeByHash returns the code with the given hash.
func (db *DB) CodeByHash(hash primitives.Bytes32) (primitives.Bytecode, error) {
	if hash == primitives.EmptyCodeHash {
		return primitives.Bytecode{}, nil
	}
	code, cached, err := db.codeCache.GetOrLoad(hash, func(hash primitives.Bytes32) (primitives.Bytecode, error) {
		data, err := db.code.Get(hash.Bytes())
		if err != nil {
			if db.code.IsNotFound(err) {
				return nil, errors.Errorf("code %v not found", hash)
			}
			return nil, errors.Wrap(err, "get code")
		}
		return data, nil
	})
	if cached {
		metricCodeCache().AddWithLabel(1, map[string]string{"event": "hit"})
	} else {
		metricCodeCache().AddWithLabel(1, map[string]string{"event": "miss"})
	}
	return code, err
}

// Storage returns the value of a slot, zero if unset.
func (db *DB) Storage(addr primitives.Address, key uint256.Int) (uint256.Int, error) {
	data, err := db.storage.Get(storageKey(addr, &key))
	if err != nil {
		if db.storage.IsNotFound(err) {
			return uint256.Int{}, nil
		}
		return uint256.Int{}, errors.Wrap(err, "get storage")
	}
	v, err := decodeValue(data)
	if err != nil {
		return uint256.Int{}, errors.Wrapf(err, "decode storage of %v", addr)
	}
	return v, nil
}

// StorageOf returns every persisted slot of addr.
func (db *DB) StorageOf(addr primitives.Address) (primitives.PlainStorage, error) {
	storage := primitives.PlainStorage{}
	err := db.iterateStorage(addr, func(key []byte, value uint256.Int) {
		var k uint256.Int
		k.SetBytes(key[primitives.AddressLength:])
		storage[k] = value
	})
	if err != nil {
		return nil, err
	}
	return storage, nil
}

func (db *DB) iterateStorage(addr primitives.Address, fn func(key []byte, value uint256.Int)) error {
	iter := db.storage.Iterate(kv.PrefixRange(addr.Bytes()))
	defer iter.Release()

	for iter.Next() {
		v, err := decodeValue(iter.Value())
		if err != nil {
			return errors.Wrapf(err, "decode storage of %v", addr)
		}
		fn(append([]byte(nil), iter.Key()...), v)
	}
	return errors.Wrap(iter.Error(), "iterate storage")
}

// wipeStorage deletes every persisted slot of addr through putter.
func (db *DB) wipeStorage(addr primitives.Address, putter kv.Putter) error {
	var keys [][]byte
	if err := db.iterateStorage(addr, func(key []byte, _ uint256.Int) {
		keys = append(keys, key)
	}); err != nil {
		return err
	}
	for _, k := range keys {
		if err := putter.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// Head returns the latest block whose revert is stored.
// ok is false if there is no block to unwind.
func (db *DB) Head() (num uint64, ok bool, err error) {
	data, err := db.meta.Get(headKey)
	if err != nil {
		if db.meta.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "get head")
	}
	return binary.BigEndian.Uint64(data), true, nil
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package plaindb

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/BrazilRaw/revm/kv"
	"github.com/BrazilRaw/revm/primitives"
	"github.com/BrazilRaw/revm/state"
)

// Commit writes a changeset together with the reverts of the blocks it spans,
// numbered from firstBlock. Everything is written atomically.
//
// A changeset without reverts only updates the plain state and leaves the head untouched.
func (db *DB) Commit(firstBlock uint64, changeset state.StateChangeset, reverts state.PlainStateReverts) error {
	startTime := mclock.Now()

	blocks := len(reverts.Accounts)
	if blocks != len(reverts.Storage) {
		return errors.Errorf("mismatched reverts: %d account windows, %d storage windows", blocks, len(reverts.Storage))
	}
	head, hasHead, err := db.Head()
	if err != nil {
		return err
	}
	if blocks > 0 && hasHead && firstBlock != head+1 {
		return errors.Errorf("block %d does not follow head %d", firstBlock, head)
	}

	// reverts capture disk state, so they are built before anything is written
	records, err := db.revertRecords(reverts)
	if err != nil {
		return err
	}

	bulk := db.store.Bulk()
	var (
		accountPutter = accountBucket.NewBulk(bulk)
		storagePutter = storageBucket.NewBulk(bulk)
		codePutter    = codeBucket.NewBulk(bulk)
		revertPutter  = revertBucket.NewBulk(bulk)
	)

	for _, s := range changeset.Storage {
		if s.WipeStorage {
			if err := db.wipeStorage(s.Address, storagePutter); err != nil {
				return err
			}
		}
		for _, e := range s.Storage {
			if err := putSlot(storagePutter, s.Address, e.Key, e.Value); err != nil {
				return err
			}
		}
	}
	for _, a := range changeset.Accounts {
		if err := putAccount(accountPutter, a.Address, a.Info); err != nil {
			return err
		}
	}
	for _, c := range changeset.Contracts {
		if err := codePutter.Put(c.CodeHash.Bytes(), c.Code); err != nil {
			return err
		}
	}
	for i, rec := range records {
		data, err := rlp.EncodeToBytes(rec)
		if err != nil {
			return errors.Wrap(err, "encode revert")
		}
		if err := revertPutter.Put(blockKey(firstBlock+uint64(i)), data); err != nil {
			return err
		}
	}
	if blocks > 0 {
		head = firstBlock + uint64(blocks) - 1
		if err := metaBucket.NewBulk(bulk).Put(headKey, blockKey(head)); err != nil {
			return err
		}
	}

	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit")
	}
	for _, c := range changeset.Contracts {
		db.codeCache.Add(c.CodeHash, c.Code)
	}

	elapsed := mclock.Now() - startTime
	metricCommitDuration().Observe(time.Duration(elapsed).Milliseconds())
	if blocks > 0 {
		metricHeadBlock().Set(int64(head))
	}
	logger.Debug("committed plain state",
		"blocks", blocks,
		"accounts", len(changeset.Accounts),
		"storage", len(changeset.Storage),
		"contracts", len(changeset.Contracts),
		"elapsed", common.PrettyDuration(elapsed))
	return nil
}

// revertRecords converts plain reverts into records. The first wiping revert of an
// address also restores the slots only the disk knows about.
func (db *DB) revertRecords(reverts state.PlainStateReverts) ([]*revertRecord, error) {
	wiped := make(map[primitives.Address]bool)
	records := make([]*revertRecord, 0, len(reverts.Accounts))

	for i, accounts := range reverts.Accounts {
		storage := make([]state.StorageRevert, 0, len(reverts.Storage[i]))
		for _, s := range reverts.Storage[i] {
			if s.Wiped && !wiped[s.Address] {
				wiped[s.Address] = true
				entries, err := db.withDiskSlots(s.Address, s.Storage)
				if err != nil {
					return nil, err
				}
				s.Storage = entries
			}
			storage = append(storage, s)
		}
		records = append(records, newRevertRecord(accounts, storage))
	}
	return records, nil
}

func (db *DB) withDiskSlots(addr primitives.Address, entries []state.StorageEntry) ([]state.StorageEntry, error) {
	known := make(map[uint256.Int]bool, len(entries))
	for _, e := range entries {
		known[e.Key] = true
	}
	disk, err := db.StorageOf(addr)
	if err != nil {
		return nil, err
	}
	out := append([]state.StorageEntry(nil), entries...)
	for k, v := range disk {
		if !known[k] {
			out = append(out, state.StorageEntry{Key: k, Value: v})
		}
	}
	return out, nil
}

// Unwind reverts the n latest blocks, newest first. Each block is unwound atomically.
func (db *DB) Unwind(n int) error {
	for ; n > 0; n-- {
		head, ok, err := db.Head()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no block to unwind")
		}
		if err := db.unwindBlock(head); err != nil {
			return errors.Wrapf(err, "unwind block %d", head)
		}
		metricUnwoundBlocks().Add(1)
		logger.Info("unwound block", "num", head)
	}
	return nil
}

func (db *DB) unwindBlock(num uint64) error {
	data, err := db.reverts.Get(blockKey(num))
	if err != nil {
		if db.reverts.IsNotFound(err) {
			return errors.New("revert not found")
		}
		return errors.Wrap(err, "get revert")
	}
	var rec revertRecord
	if err := rlp.DecodeBytes(data, &rec); err != nil {
		return errors.Wrap(err, "decode revert")
	}

	bulk := db.store.Bulk()
	var (
		accountPutter = accountBucket.NewBulk(bulk)
		storagePutter = storageBucket.NewBulk(bulk)
		metaPutter    = metaBucket.NewBulk(bulk)
	)

	for _, s := range rec.Storage {
		if s.Wiped {
			if err := db.wipeStorage(s.Address, storagePutter); err != nil {
				return err
			}
		}
		for _, slot := range s.Slots {
			var key, value uint256.Int
			key.SetBytes(slot.Key)
			value.SetBytes(slot.Value)
			if err := putSlot(storagePutter, s.Address, key, value); err != nil {
				return err
			}
		}
	}
	for _, a := range rec.Accounts {
		var info *primitives.AccountInfo
		if a.Account != nil {
			if info, err = a.Account.info(); err != nil {
				return err
			}
		}
		if err := putAccount(accountPutter, a.Address, info); err != nil {
			return err
		}
	}

	if err := revertBucket.NewBulk(bulk).Delete(blockKey(num)); err != nil {
		return err
	}
	var hasParent bool
	if num > 0 {
		if hasParent, err = db.reverts.Has(blockKey(num - 1)); err != nil {
			return errors.Wrap(err, "has revert")
		}
	}
	if hasParent {
		err = metaPutter.Put(headKey, blockKey(num-1))
	} else {
		err = metaPutter.Delete(headKey)
	}
	if err != nil {
		return err
	}

	if err := bulk.Write(); err != nil {
		return err
	}
	metricHeadBlock().Set(int64(num) - 1)
	return nil
}

// putSlot writes a slot, deleting it when the value is zero.
func putSlot(putter kv.Putter, addr primitives.Address, key, value uint256.Int) error {
	k := storageKey(addr, &key)
	if value.IsZero() {
		return putter.Delete(k)
	}
	data, err := encodeValue(&value)
	if err != nil {
		return errors.Wrap(err, "encode storage")
	}
	return putter.Put(k, data)
}

// putAccount writes an account, deleting it when info is nil.
func putAccount(putter kv.Putter, addr primitives.Address, info *primitives.AccountInfo) error {
	if info == nil {
		return putter.Delete(addr.Bytes())
	}
	data, err := encodeAccount(info)
	if err != nil {
		return errors.Wrap(err, "encode account")
	}
	return putter.Put(addr.Bytes(), data)
}

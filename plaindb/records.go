// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package plaindb

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/BrazilRaw/revm/primitives"
	"github.com/BrazilRaw/revm/state"
)

// accountRecord is the RLP form of an account stored under its address.
// An empty code hash is stored as nil.
type accountRecord struct {
	Balance  *big.Int
	Nonce    uint64
	CodeHash []byte
}

func newAccountRecord(info *primitives.AccountInfo) *accountRecord {
	rec := &accountRecord{
		Balance: info.Balance.ToBig(),
		Nonce:   info.Nonce,
	}
	if info.CodeHash != primitives.EmptyCodeHash {
		rec.CodeHash = info.CodeHash.Bytes()
	}
	return rec
}

func (r *accountRecord) info() (*primitives.AccountInfo, error) {
	info := primitives.DefaultAccountInfo()
	if overflow := info.Balance.SetFromBig(r.Balance); overflow {
		return nil, errBalanceOverflow
	}
	info.Nonce = r.Nonce
	if len(r.CodeHash) > 0 {
		info.CodeHash = primitives.BytesToBytes32(r.CodeHash)
	}
	return &info, nil
}

func encodeAccount(info *primitives.AccountInfo) ([]byte, error) {
	return rlp.EncodeToBytes(newAccountRecord(info))
}

func decodeAccount(data []byte) (*primitives.AccountInfo, error) {
	var rec accountRecord
	if err := rlp.DecodeBytes(data, &rec); err != nil {
		return nil, err
	}
	return rec.info()
}

// storage values are stored as trimmed big-endian bytes
func encodeValue(v *uint256.Int) ([]byte, error) {
	return rlp.EncodeToBytes(v.Bytes())
}

func decodeValue(data []byte) (uint256.Int, error) {
	var (
		content []byte
		v       uint256.Int
	)
	if err := rlp.DecodeBytes(data, &content); err != nil {
		return v, err
	}
	if len(content) > 32 {
		return v, errValueOverflow
	}
	v.SetBytes(content)
	return v, nil
}

type slotRecord struct {
	Key   []byte
	Value []byte
}

type accountRevertRecord struct {
	Address primitives.Address
	// Account is nil if the account did not exist before the block.
	Account *accountRecord `rlp:"nil"`
}

type storageRevertRecord struct {
	Address primitives.Address
	Wiped   bool
	Slots   []slotRecord
}

// revertRecord restores the plain state as it was before one block.
type revertRecord struct {
	Accounts []accountRevertRecord
	Storage  []storageRevertRecord
}

func newRevertRecord(accounts []state.AccountChange, storage []state.StorageRevert) *revertRecord {
	rec := &revertRecord{
		Accounts: make([]accountRevertRecord, 0, len(accounts)),
		Storage:  make([]storageRevertRecord, 0, len(storage)),
	}
	for _, a := range accounts {
		ar := accountRevertRecord{Address: a.Address}
		if a.Info != nil {
			ar.Account = newAccountRecord(a.Info)
		}
		rec.Accounts = append(rec.Accounts, ar)
	}
	for _, s := range storage {
		sr := storageRevertRecord{Address: s.Address, Wiped: s.Wiped}
		for _, e := range s.Storage {
			sr.Slots = append(sr.Slots, slotRecord{Key: e.Key.Bytes(), Value: e.Value.Bytes()})
		}
		rec.Storage = append(rec.Storage, sr)
	}
	return rec
}

func blockKey(num uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, num)
}

func storageKey(addr primitives.Address, key *uint256.Int) []byte {
	k := key.Bytes32()
	return append(addr.Bytes(), k[:]...)
}

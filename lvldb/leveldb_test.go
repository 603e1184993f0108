// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrazilRaw/revm/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	persistent, err := New(filepath.Join(t.TempDir(), "lvldb"), Options{16, 16})
	require.NoError(t, err)
	defer persistent.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, ldb := range []*LevelDB{persistent, mem} {
		require.NoError(t, ldb.Put(key, value))

		ret1, err := ldb.Get(key)
		assert.NoError(t, err)

		ret2, err := ldb.Has(key)
		assert.NoError(t, err)

		ret3, err := ldb.Has(inValidKey)
		assert.NoError(t, err)

		require.NoError(t, ldb.Delete(key))
		_, ret4 := ldb.Get(key)

		tests := []struct {
			ret      any
			expected any
		}{
			{ret1, value},
			{ret2, true},
			{ret3, false},
			{ldb.IsNotFound(ret4), true},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.ret)
		}
	}
}

func TestLevelDBBulk(t *testing.T) {
	var (
		key   = []byte("123")
		value = []byte("456")
	)
	ldb, err := NewMem()
	require.NoError(t, err)
	defer ldb.Close()

	bulk := ldb.Bulk()
	require.NoError(t, bulk.Put(key, value))
	assert.Equal(t, 1, bulk.Len())

	_, err = ldb.Get(key)
	assert.True(t, ldb.IsNotFound(err), "nothing visible before write")

	require.NoError(t, bulk.Write())
	assert.Equal(t, 0, bulk.Len())

	got, err := ldb.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestLevelDBSnapshotAndIterate(t *testing.T) {
	ldb, err := NewMem()
	require.NoError(t, err)
	defer ldb.Close()

	store := kv.Bucket("s").NewStore(ldb)
	require.NoError(t, store.Put([]byte("a"), []byte("1")))
	require.NoError(t, store.Put([]byte("b"), []byte("2")))
	require.NoError(t, ldb.Put([]byte("t"), []byte("outside")))

	snapshot := store.Snapshot()
	defer snapshot.Release()
	require.NoError(t, store.Put([]byte("a"), []byte("changed")))

	got, err := snapshot.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	var keys []string
	iter := store.Iterate(kv.Range{})
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Release()
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"a", "b"}, keys)
}

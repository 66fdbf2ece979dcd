// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/kv"
)

func TestLevelDB(t *testing.T) {
	persistent, err := New(filepath.Join(t.TempDir(), "db"), Options{16, 16})
	require.NoError(t, err)
	defer persistent.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{persistent, mem} {
		key, value := []byte("123"), []byte("456")

		require.NoError(t, db.Put(key, value))
		got, err := db.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		require.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has([]byte("abc"))
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestBulkAndSnapshot(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	bulk := db.Bulk()
	require.NoError(t, bulk.Put([]byte("a"), []byte("1")))
	require.NoError(t, bulk.Put([]byte("b"), []byte("2")))

	// nothing visible before write
	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)

	snap := db.Snapshot()
	defer snap.Release()

	require.NoError(t, bulk.Write())
	v, err := db.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)

	// snapshot taken before write does not see it
	_, err = snap.Get([]byte("b"))
	assert.True(t, snap.IsNotFound(err))
}

func TestBucketIterate(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put([]byte("other"), []byte("x")))
	store := kv.Bucket("b.").NewStore(db)
	for _, k := range []string{"1", "2", "3"} {
		require.NoError(t, store.Put([]byte(k), []byte("v"+k)))
	}

	iter := store.Iterate(kv.Range{})
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"1", "2", "3"}, keys)
}

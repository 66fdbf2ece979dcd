// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/lvldb"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

func newStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db)
}

func TestStorage(t *testing.T) {
	st := newStater(t).NewState()
	addr := sarco.BytesToAddress([]byte("contract"))
	key := sarco.BytesToBytes32([]byte("slot"))

	v, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	value := sarco.BytesToBytes32([]byte{1, 2, 3})
	st.SetStorage(addr, key, value)
	v, err = st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, value, v)

	// zero value deletes
	st.SetStorage(addr, key, sarco.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := newStater(t).NewState()
	addr := sarco.BytesToAddress([]byte("contract"))
	key := sarco.BytesToBytes32([]byte("slot"))

	type record struct {
		A *big.Int
		B uint64
	}
	err := st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&record{big.NewInt(7), 9})
	})
	require.NoError(t, err)

	var got record
	err = st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &got)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.A.Int64())
	assert.Equal(t, uint64(9), got.B)

	// list values read as their hash
	h, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	raw, _ := st.GetRawStorage(addr, key)
	assert.Equal(t, sarco.Blake2b(raw), h)

	boom := errors.New("boom")
	err = st.EncodeStorage(addr, key, func() ([]byte, error) { return nil, boom })
	var stateErr *Error
	assert.ErrorAs(t, err, &stateErr)
	assert.ErrorIs(t, err, boom)
}

func TestCheckpointRevert(t *testing.T) {
	st := newStater(t).NewState()
	addr := sarco.BytesToAddress([]byte("contract"))
	key := sarco.BytesToBytes32([]byte("slot"))
	one := sarco.BytesToBytes32([]byte{1})
	two := sarco.BytesToBytes32([]byte{2})

	st.SetStorage(addr, key, one)
	rev := st.NewCheckpoint()
	st.SetStorage(addr, key, two)
	st.SetStorage(addr, key, two)

	v, _ := st.GetStorage(addr, key)
	assert.Equal(t, two, v)

	st.RevertTo(rev)
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, one, v)

	// still writable after revert
	st.SetStorage(addr, key, two)
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, two, v)
}

func TestStageCommit(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	stater := NewStater(db)
	addr := sarco.BytesToAddress([]byte("contract"))
	k1 := sarco.BytesToBytes32([]byte("k1"))
	k2 := sarco.BytesToBytes32([]byte("k2"))
	value := sarco.BytesToBytes32([]byte("v"))

	st := stater.NewState()
	st.SetStorage(addr, k1, value)
	st.SetStorage(addr, k2, value)

	// uncommitted changes are invisible to other states
	v, err := stater.NewState().GetStorage(addr, k1)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	require.NoError(t, stage.Commit())

	fresh := stater.NewState()
	v, err = fresh.GetStorage(addr, k1)
	require.NoError(t, err)
	assert.Equal(t, value, v)

	// deletion is committed as well
	fresh.SetStorage(addr, k2, sarco.Bytes32{})
	require.NoError(t, fresh.Stage().Commit())

	v, err = stater.NewState().GetStorage(addr, k2)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	// bypass the cache
	v, err = NewStater(db).NewState().GetStorage(addr, k1)
	require.NoError(t, err)
	assert.Equal(t, value, v)
}

// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/lvldb"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

type record struct {
	Amount *big.Int
	Start  uint64
	Owner  sarco.Address
}

type noted struct{ N uint64 }

func (noted) EventName() string { return "Noted" }

func newTestContext(t *testing.T, emit EmitFunc) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(sarco.BytesToAddress([]byte("contract")), state.NewStater(db).NewState(), emit)
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t, nil)
	u := NewUint256(ctx, sarco.BytesToBytes32([]byte("total")))

	v, err := u.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	v, err = u.Add(big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), v)

	v, err = u.Sub(big.NewInt(40))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), v)

	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), v)
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t, nil)
	a := NewAddress(ctx, sarco.BytesToBytes32([]byte("owner")))

	got, err := a.Get()
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	owner := sarco.BytesToAddress([]byte("owner"))
	a.Set(owner)
	got, err = a.Get()
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t, nil)
	m := NewMapping[sarco.Address, *record](ctx, sarco.BytesToBytes32([]byte("records")))
	key := sarco.BytesToAddress([]byte("alice"))

	// missing entries read as allocated zero values
	got, err := m.Get(key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Amount)

	exists, err := m.Exists(key)
	require.NoError(t, err)
	assert.False(t, exists)

	want := &record{Amount: big.NewInt(1000), Start: 42, Owner: key}
	require.NoError(t, m.Set(key, want))

	got, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want.Amount, got.Amount)
	assert.Equal(t, want.Start, got.Start)
	assert.Equal(t, want.Owner, got.Owner)

	exists, err = m.Exists(key)
	require.NoError(t, err)
	assert.True(t, exists)

	// values are keyed by both key and base position
	other := NewMapping[sarco.Address, *record](ctx, sarco.BytesToBytes32([]byte("others")))
	assert.NotEqual(t, m.Position(key), other.Position(key))
}

func TestMappingValueType(t *testing.T) {
	ctx := newTestContext(t, nil)
	m := NewMapping[sarco.Bytes32, uint64](ctx, sarco.BytesToBytes32([]byte("counters")))
	key := sarco.BytesToBytes32([]byte("k"))

	v, err := m.Get(key)
	require.NoError(t, err)
	assert.Zero(t, v)

	require.NoError(t, m.Set(key, 7))
	v, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)
}

func TestEmit(t *testing.T) {
	var events tx.Events
	ctx := newTestContext(t, func(ev *tx.Event) { events = append(events, ev) })

	ctx.Emit(&noted{N: 1})
	require.Len(t, events, 1)
	assert.Equal(t, ctx.Address(), events[0].Address)
	assert.Equal(t, "Noted", events[0].Name())

	// nil sink drops events
	newTestContext(t, nil).Emit(&noted{})
}

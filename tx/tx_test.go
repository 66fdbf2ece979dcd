// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

type pinged struct {
	Count uint64 `json:"count"`
}

func (pinged) EventName() string { return "Pinged" }

type ponged struct{}

func (ponged) EventName() string { return "Ponged" }

func TestEventJSON(t *testing.T) {
	addr := sarco.BytesToAddress([]byte("Pinger"))
	ev := &Event{Address: addr, Payload: &pinged{Count: 3}}

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, addr.String(), m["address"])
	assert.Equal(t, "Pinged", m["name"])
	assert.Equal(t, map[string]any{"count": float64(3)}, m["data"])
	assert.Equal(t, sarco.Keccak256([]byte("Pinged")), ev.Topic())
}

func TestReceiptsEvents(t *testing.T) {
	a := &Event{Payload: &pinged{}}
	b := &Event{Payload: &ponged{}}
	c := &Event{Payload: &pinged{Count: 1}}

	receipts := Receipts{
		{Events: Events{a}},
		{Reverted: true, Events: Events{b}},
		{Events: Events{b, c}},
	}
	assert.Equal(t, Events{a, b, c}, receipts.Events())
	assert.Equal(t, Events{a, c}, receipts.Events().Filter("Pinged"))
}

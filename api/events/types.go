// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"encoding/json"

	"github.com/sarcophagus-org/sarco-ledger/logdb"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

type LogMeta struct {
	BlockNumber uint32        `json:"blockNumber"`
	BlockTime   uint64        `json:"blockTime"`
	ClauseIndex uint32        `json:"clauseIndex"`
	LogIndex    uint32        `json:"logIndex"`
	Caller      sarco.Address `json:"caller"`
}

// FilteredEvent is an indexed event with its payload.
type FilteredEvent struct {
	Address sarco.Address   `json:"address"`
	Name    string          `json:"name"`
	Topic   sarco.Bytes32   `json:"topic"`
	Data    json.RawMessage `json:"data"`
	Meta    LogMeta         `json:"meta"`
}

// NewFilteredEvent converts an indexed event.
func NewFilteredEvent(e *logdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Address: e.Address,
		Name:    e.Name,
		Topic:   e.Topic,
		Data:    e.Data,
		Meta: LogMeta{
			BlockNumber: e.BlockNumber,
			BlockTime:   e.BlockTime,
			ClauseIndex: e.ClauseIndex,
			LogIndex:    e.Index,
			Caller:      e.Caller,
		},
	}
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"encoding/json"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// Event represents tx.Event that can be stored in db.
type Event struct {
	BlockNumber uint32
	Index       uint32 // position within the block
	BlockTime   uint64
	ClauseIndex uint32
	Caller      sarco.Address // clause caller
	Address     sarco.Address // always a contract address
	Name        string
	Topic       sarco.Bytes32
	Data        json.RawMessage
}

type RangeType string

const (
	Block RangeType = "block"
	Time  RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria matches events by contract address and name. Empty fields match all.
type EventCriteria struct {
	Address *sarco.Address
	Name    string
}

// EventFilter filter
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

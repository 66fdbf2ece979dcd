// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/sarcophagus-org/sarco-ledger/logdb"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// BlockMessage notifies a packed block.
type BlockMessage struct {
	Number      uint32                `json:"number"`
	Time        uint64                `json:"time"`
	Size        uint32                `json:"size"`
	TotalStaked *math.HexOrDecimal256 `json:"totalStaked"`
}

// EventFilter selects events by emitting contract and name. Zero fields match all.
type EventFilter struct {
	Address *sarco.Address
	Name    string
}

func (f *EventFilter) criteriaSet() []*logdb.EventCriteria {
	if f.Address == nil && f.Name == "" {
		return nil
	}
	return []*logdb.EventCriteria{{Address: f.Address, Name: f.Name}}
}

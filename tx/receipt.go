// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// Receipt represents the result of one executed clause.
type Receipt struct {
	BlockNumber uint32        `json:"blockNumber"`
	BlockTime   uint64        `json:"blockTime"`
	Index       uint32        `json:"index"` // position within the block
	Caller      sarco.Address `json:"caller"`
	Method      string        `json:"method"`

	Reverted     bool   `json:"reverted"`
	RevertReason string `json:"revertReason,omitempty"`

	// events produced, empty if reverted
	Events Events `json:"events"`
}

// Receipts slice of receipts.
type Receipts []*Receipt

// Events returns events of all non-reverted receipts, in order.
func (rs Receipts) Events() Events {
	var out Events
	for _, r := range rs {
		if !r.Reverted {
			out = append(out, r.Events...)
		}
	}
	return out
}

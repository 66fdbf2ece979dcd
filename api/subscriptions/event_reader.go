// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"

	"github.com/sarcophagus-org/sarco-ledger/api/events"
	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/logdb"
)

type eventReader struct {
	ctx    context.Context
	chain  *chain.Chain
	filter *EventFilter
	next   uint32
}

func newEventReader(ctx context.Context, chain *chain.Chain, position uint32, filter *EventFilter) *eventReader {
	return &eventReader{
		ctx:    ctx,
		chain:  chain,
		filter: filter,
		next:   position,
	}
}

func (er *eventReader) Read() ([]any, bool, error) {
	head := er.chain.Head().Number
	if er.next > head {
		return nil, false, nil
	}
	end := min(head, er.next+maxBlocksPerRead-1)

	evs, err := er.chain.LogDB().FilterEvents(er.ctx, &logdb.EventFilter{
		CriteriaSet: er.filter.criteriaSet(),
		Range: &logdb.Range{
			Unit: logdb.Block,
			From: uint64(er.next),
			To:   uint64(end),
		},
		Order: logdb.ASC,
	})
	if err != nil {
		return nil, false, err
	}
	msgs := make([]any, 0, len(evs))
	for _, ev := range evs {
		msgs = append(msgs, events.NewFilteredEvent(ev))
	}
	er.next = end + 1
	return msgs, end < head, nil
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/sarcophagus-org/sarco-ledger/api/utils"
	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/chain"
)

// maxBlocksPerRead bounds the blocks a reader goes through per Read call.
const maxBlocksPerRead = 100

type blockReader struct {
	chain *chain.Chain
	next  uint32
	cache *messageCache
}

func newBlockReader(chain *chain.Chain, position uint32, cache *messageCache) *blockReader {
	return &blockReader{
		chain: chain,
		next:  position,
		cache: cache,
	}
}

// Read returns messages of blocks from the position up to head. The bool
// result reports whether blocks were left unread.
func (br *blockReader) Read() ([]any, bool, error) {
	head := br.chain.Head().Number
	if br.next > head {
		return nil, false, nil
	}
	end := min(head, br.next+maxBlocksPerRead-1)

	st := br.chain.NewState()
	msgs := make([]any, 0, end-br.next+1)
	for num := br.next; num <= end; num++ {
		msg, _, err := br.cache.GetOrAdd(num, func() (any, error) {
			blk, err := br.chain.GetBlock(num)
			if err != nil {
				return nil, err
			}
			total, err := builtin.Staking.Native(st, nil).TotalStakedAt(num)
			if err != nil {
				return nil, err
			}
			return &BlockMessage{
				Number:      blk.Number,
				Time:        blk.Time,
				Size:        blk.Size,
				TotalStaked: utils.Amount(total),
			}, nil
		})
		if err != nil {
			return nil, false, err
		}
		msgs = append(msgs, msg)
	}
	br.next = end + 1
	return msgs, end < head, nil
}

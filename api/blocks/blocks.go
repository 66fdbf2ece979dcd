// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/api/utils"
	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/chain"
)

// JSONBlock is a packed block along with the total stake checkpointed at it.
type JSONBlock struct {
	Number      uint32                `json:"number"`
	Time        uint64                `json:"time"`
	Size        uint32                `json:"size"`
	TotalStaked *math.HexOrDecimal256 `json:"totalStaked"`
}

type Blocks struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Blocks {
	return &Blocks{chain}
}

// parseRevision accepts a block number or "head". Empty means head.
func (b *Blocks) parseRevision(s string) (uint32, error) {
	if s == "" || s == "head" {
		return b.chain.Head().Number, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	num, err := b.parseRevision(mux.Vars(req)["revision"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "revision"))
	}
	blk, err := b.chain.GetBlock(num)
	if err != nil {
		if b.chain.IsNotFound(err) {
			return utils.WriteJSON(w, nil)
		}
		return err
	}
	total, err := builtin.Staking.Native(b.chain.NewState(), nil).TotalStakedAt(num)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &JSONBlock{
		Number:      blk.Number,
		Time:        blk.Time,
		Size:        blk.Size,
		TotalStaked: utils.Amount(total),
	})
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{revision}").
		Methods(http.MethodGet).
		Name("GET /blocks/{revision}").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
}

// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sarcophagus-org/sarco-ledger/api/utils"
	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/chain"
)

type Staking struct {
	chain *chain.Chain
	limit uint64
}

// defaultHistoryLimit caps history pages when no limit is configured.
const defaultHistoryLimit = 1000

func New(chain *chain.Chain, limit uint64) *Staking {
	if limit == 0 {
		limit = defaultHistoryLimit
	}
	return &Staking{
		chain,
		limit,
	}
}

func (s *Staking) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	head := s.chain.Head()
	index, err := utils.IndexQuery(req, head.Number)
	if err != nil {
		return err
	}

	if index == nil {
		index = &head.Number
	}
	// blocks packed after head only add checkpoints above it
	v, err := builtin.Staking.Native(s.chain.NewState(), nil).StakeValueAt(addr, *index)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Stake{Account: addr, Index: *index, Value: utils.Amount(v)})
}

func (s *Staking) handleGetHistory(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	offset, err := utils.Uint64Query(req, "offset", 0)
	if err != nil {
		return err
	}
	limit, err := utils.Uint64Query(req, "limit", s.limit)
	if err != nil {
		return err
	}
	if limit == 0 || limit > s.limit {
		limit = s.limit
	}

	cps, err := builtin.Staking.Native(s.chain.NewState(), nil).AccountHistory(addr).Checkpoints(offset, limit)
	if err != nil {
		return err
	}
	history := make([]*Checkpoint, 0, len(cps))
	for _, cp := range cps {
		history = append(history, &Checkpoint{Index: cp.Index, Value: utils.Amount(cp.Value)})
	}
	return utils.WriteJSON(w, history)
}

func (s *Staking) handleGetTotal(w http.ResponseWriter, req *http.Request) error {
	head := s.chain.Head()
	index, err := utils.IndexQuery(req, head.Number)
	if err != nil {
		return err
	}

	if index == nil {
		index = &head.Number
	}
	v, err := builtin.Staking.Native(s.chain.NewState(), nil).TotalStakedAt(*index)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Total{Index: *index, Value: utils.Amount(v)})
}

func (s *Staking) handleGetStakers(w http.ResponseWriter, _ *http.Request) error {
	n, err := builtin.Staking.Native(s.chain.NewState(), nil).TotalStakers()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Stakers{Count: n})
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetAccount))
	sub.Path("/accounts/{address}/history").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}/history").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetHistory))
	sub.Path("/total").
		Methods(http.MethodGet).
		Name("GET /staking/total").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetTotal))
	sub.Path("/stakers").
		Methods(http.MethodGet).
		Name("GET /staking/stakers").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStakers))
}

// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voting

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/sarcophagus-org/sarco-ledger/api/utils"
	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

type Meta struct {
	Address  sarco.Address `json:"address"`
	Name     string        `json:"name"`
	Symbol   string        `json:"symbol"`
	Decimals uint8         `json:"decimals"`
}

// Weight is a voting weight at a block.
type Weight struct {
	Index uint32                `json:"index"`
	Value *math.HexOrDecimal256 `json:"value"`
}

type Voting struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Voting {
	return &Voting{chain}
}

func (v *Voting) handleGetMeta(w http.ResponseWriter, _ *http.Request) error {
	vr := builtin.VotingRights.Native(v.chain.NewState())
	name, err := vr.Name()
	if err != nil {
		return err
	}
	symbol, err := vr.Symbol()
	if err != nil {
		return err
	}
	decimals, err := vr.Decimals()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Meta{
		Address:  builtin.VotingRights.Address,
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
	})
}

// weight responds the value at the queried index, head by default.
func (v *Voting) weight(w http.ResponseWriter, req *http.Request, at func(uint32) (*big.Int, error)) error {
	head := v.chain.Head()
	index, err := utils.IndexQuery(req, head.Number)
	if err != nil {
		return err
	}
	if index == nil {
		index = &head.Number
	}
	value, err := at(*index)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Weight{Index: *index, Value: utils.Amount(value)})
}

func (v *Voting) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	vr := builtin.VotingRights.Native(v.chain.NewState())
	return v.weight(w, req, func(index uint32) (*big.Int, error) { return vr.BalanceOfAt(addr, index) })
}

func (v *Voting) handleGetSupply(w http.ResponseWriter, req *http.Request) error {
	vr := builtin.VotingRights.Native(v.chain.NewState())
	return v.weight(w, req, vr.TotalSupplyAt)
}

func (v *Voting) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/meta").
		Methods(http.MethodGet).
		Name("GET /voting/meta").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetMeta))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /voting/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetAccount))
	sub.Path("/supply").
		Methods(http.MethodGet).
		Name("GET /voting/supply").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetSupply))
}

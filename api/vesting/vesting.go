// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/sarcophagus-org/sarco-ledger/api/utils"
	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// Vest is a vesting record with the amount releasable at head.
type Vest struct {
	Asset       sarco.Address         `json:"asset"`
	Beneficiary sarco.Address         `json:"beneficiary"`
	Created     bool                  `json:"created"`
	Start       uint64                `json:"start"`
	Duration    uint64                `json:"duration"`
	Total       *math.HexOrDecimal256 `json:"total"`
	Released    *math.HexOrDecimal256 `json:"released"`
	Releasable  *math.HexOrDecimal256 `json:"releasable"`
}

type Vesting struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Vesting {
	return &Vesting{chain}
}

func (v *Vesting) handleGetVest(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	beneficiary, err := utils.AddressVar(req, "beneficiary")
	if err != nil {
		return err
	}

	r, err := builtin.Vesting.Native(v.chain.NewState(), nil).Get(asset, beneficiary)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Vest{
		Asset:       asset,
		Beneficiary: beneficiary,
		Created:     r.Created,
		Start:       r.Start,
		Duration:    r.Duration,
		Total:       utils.Amount(r.Total),
		Released:    utils.Amount(r.Released),
		Releasable:  utils.Amount(r.Releasable(v.chain.Head().Time)),
	})
}

func (v *Vesting) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{asset}/{beneficiary}").
		Methods(http.MethodGet).
		Name("GET /vesting/{asset}/{beneficiary}").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetVest))
}

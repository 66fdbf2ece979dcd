// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/sarcophagus-org/sarco-ledger/api/utils"
	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

type Token struct {
	Address     sarco.Address         `json:"address"`
	Name        string                `json:"name"`
	Symbol      string                `json:"symbol"`
	Decimals    uint8                 `json:"decimals"`
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
}

type Account struct {
	Balance *math.HexOrDecimal256 `json:"balance"`
}

type Allowance struct {
	Owner   sarco.Address         `json:"owner"`
	Spender sarco.Address         `json:"spender"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

type Tokens struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Tokens {
	return &Tokens{chain}
}

func (t *Tokens) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	tok := builtin.Token.At(asset, t.chain.NewState(), nil)
	meta, err := tok.Metadata()
	if err != nil {
		return err
	}
	supply, err := tok.TotalSupply()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Token{
		Address:     asset,
		Name:        meta.Name,
		Symbol:      meta.Symbol,
		Decimals:    meta.Decimals,
		TotalSupply: utils.Amount(supply),
	})
}

func (t *Tokens) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	balance, err := builtin.Token.At(asset, t.chain.NewState(), nil).BalanceOf(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{Balance: utils.Amount(balance)})
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	spender, err := utils.AddressVar(req, "spender")
	if err != nil {
		return err
	}
	amount, err := builtin.Token.At(asset, t.chain.NewState(), nil).Allowance(owner, spender)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Allowance{Owner: owner, Spender: spender, Amount: utils.Amount(amount)})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{asset}").
		Methods(http.MethodGet).
		Name("GET /tokens/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetToken))
	sub.Path("/{asset}/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/{asset}/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAccount))
	sub.Path("/{asset}/allowances/{owner}/{spender}").
		Methods(http.MethodGet).
		Name("GET /tokens/{asset}/allowances/{owner}/{spender}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAllowance))
}

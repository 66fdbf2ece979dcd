// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"

	"github.com/sarcophagus-org/sarco-ledger/builtin/solidity"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
)

// Params binder of `Params` contract.
type Params struct {
	context *solidity.Context
}

// ParamSet is emitted when a param is updated.
type ParamSet struct {
	Key   sarco.Bytes32 `json:"key"`
	Value *big.Int      `json:"value"`
}

func (*ParamSet) EventName() string { return "ParamSet" }

func New(addr sarco.Address, state *state.State, emit solidity.EmitFunc) *Params {
	return &Params{solidity.NewContext(addr, state, emit)}
}

// Get native way to get param. An unset param is zero.
func (p *Params) Get(key sarco.Bytes32) (*big.Int, error) {
	return solidity.NewUint256(p.context, key).Get()
}

// Set native way to set param.
func (p *Params) Set(key sarco.Bytes32, value *big.Int) {
	solidity.NewUint256(p.context, key).Set(value)
	p.context.Emit(&ParamSet{Key: key, Value: new(big.Int).Set(value)})
}

// Executor returns the account allowed to update params.
func (p *Params) Executor() (sarco.Address, error) {
	return solidity.NewAddress(p.context, sarco.KeyExecutorAddress).Get()
}

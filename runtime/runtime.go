// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"time"

	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/builtin/reverts"
	"github.com/sarcophagus-org/sarco-ledger/log"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
	"github.com/sarcophagus-org/sarco-ledger/tx"
	"github.com/sarcophagus-org/sarco-ledger/xenv"
)

var logger = log.WithContext("pkg", "runtime")

// Runtime is to support clause execution.
type Runtime struct {
	state    *state.State
	blockCtx xenv.BlockContext
}

// New create a Runtime object.
func New(state *state.State, blockCtx *xenv.BlockContext) *Runtime {
	return &Runtime{
		state:    state,
		blockCtx: *blockCtx,
	}
}

func (rt *Runtime) State() *state.State { return rt.state }
func (rt *Runtime) BlockNumber() uint32 { return rt.blockCtx.Number }
func (rt *Runtime) BlockTime() uint64   { return rt.blockCtx.Time }

// ExecuteClause executes the clause as one atomic transition.
// A reverted clause leaves no state change behind and yields a reverted receipt.
// The returned error is only for failures of the underlying storage.
func (rt *Runtime) ExecuteClause(caller sarco.Address, clause *tx.Clause) (*tx.Receipt, error) {
	startTime := time.Now()
	contractName, ok := builtin.NameOf(clause.To)
	if !ok {
		contractName = "unknown"
	}
	receipt := &tx.Receipt{
		BlockNumber: rt.blockCtx.Number,
		BlockTime:   rt.blockCtx.Time,
		Caller:      caller,
		Method:      contractName + "." + clause.Method,
	}

	var events tx.Events
	rev := rt.state.NewCheckpoint()
	err := rt.execute(caller, clause, func(ev *tx.Event) {
		events = append(events, ev)
	})
	labels := map[string]string{"contract": contractName, "method": clause.Method}

	if err != nil {
		rt.state.RevertTo(rev)

		re, isRevert := reverts.AsRevertErr(err)
		if !isRevert {
			labels["status"] = "failed"
			metricClauseCount().AddWithLabel(1, labels)
			logger.Warn("clause failed", "method", receipt.Method, "caller", caller, "err", err)
			return nil, errors.WithMessage(err, "execute clause")
		}
		receipt.Reverted = true
		receipt.RevertReason = re.Error()
		labels["status"] = "reverted"
		logger.Debug("clause reverted", "method", receipt.Method, "caller", caller, "reason", receipt.RevertReason)
	} else {
		receipt.Events = events
		labels["status"] = "success"
	}

	metricClauseCount().AddWithLabel(1, labels)
	metricClauseDuration().Observe(time.Since(startTime).Milliseconds())
	return receipt, nil
}

func (rt *Runtime) execute(caller sarco.Address, clause *tx.Clause, emit func(*tx.Event)) error {
	method, ok := builtin.FindNativeMethod(clause.To, clause.Method)
	if !ok {
		return reverts.Newf("builtin: method %q not found at %v", clause.Method, clause.To)
	}
	env := xenv.New(rt.state, &rt.blockCtx, caller, clause, emit)
	return env.Call(method)
}

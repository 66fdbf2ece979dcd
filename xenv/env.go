// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"encoding/json"
	"fmt"

	"github.com/sarcophagus-org/sarco-ledger/builtin/reverts"
	"github.com/sarcophagus-org/sarco-ledger/builtin/solidity"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

// BlockContext block context.
type BlockContext struct {
	Number uint32
	Time   uint64
}

type envError struct {
	cause error
}

// Environment an env to execute native method.
type Environment struct {
	state    *state.State
	blockCtx *BlockContext
	caller   sarco.Address
	clause   *tx.Clause
	emit     solidity.EmitFunc
}

// New create a new env.
func New(
	state *state.State,
	blockCtx *BlockContext,
	caller sarco.Address,
	clause *tx.Clause,
	emit solidity.EmitFunc,
) *Environment {
	return &Environment{
		state:    state,
		blockCtx: blockCtx,
		caller:   caller,
		clause:   clause,
		emit:     emit,
	}
}

func (env *Environment) State() *state.State         { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) Caller() sarco.Address       { return env.caller }
func (env *Environment) To() sarco.Address           { return env.clause.To }
func (env *Environment) Emitter() solidity.EmitFunc  { return env.emit }

// ParseArgs decodes clause args into val. Malformed args revert the call.
func (env *Environment) ParseArgs(val any) {
	if len(env.clause.Args) == 0 {
		panic(&envError{reverts.New("decode native input: missing args")})
	}
	if err := json.Unmarshal(env.clause.Args, val); err != nil {
		panic(&envError{reverts.Newf("decode native input: %v", err)})
	}
}

// Stop aborts the running method with err.
func (env *Environment) Stop(err error) {
	panic(&envError{err})
}

// Call runs proc, converting a Stop or an args decoding failure into the returned error.
func (env *Environment) Call(proc func(env *Environment) error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if rec, ok := e.(*envError); ok {
				err = rec.cause
			} else {
				panic(fmt.Sprintf("native: %v", e))
			}
		}
	}()
	return proc(env)
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

// EmitFunc receives events emitted by a builtin contract.
type EmitFunc func(ev *tx.Event)

// Context binds a builtin contract to its storage and event sink.
type Context struct {
	address sarco.Address
	state   *state.State
	emit    EmitFunc
}

// NewContext creates a context. A nil emit drops events.
func NewContext(address sarco.Address, state *state.State, emit EmitFunc) *Context {
	return &Context{
		address: address,
		state:   state,
		emit:    emit,
	}
}

func (c *Context) Address() sarco.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Emitter returns the event sink, to be shared with contracts called by this one.
func (c *Context) Emitter() EmitFunc {
	return c.emit
}

// Emit emits an event on behalf of the contract.
func (c *Context) Emit(payload tx.Payload) {
	if c.emit != nil {
		c.emit(&tx.Event{Address: c.address, Payload: payload})
	}
}

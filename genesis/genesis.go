// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/sarcophagus-org/sarco-ledger/builtin/solidity"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
)

// Genesis to build the state of block 0.
type Genesis struct {
	id         sarco.Bytes32
	name       string
	launchTime uint64
	build      func(state *state.State, emit solidity.EmitFunc) error
}

// ID returns the genesis id, which is derived from the genesis content.
func (g *Genesis) ID() sarco.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// LaunchTime returns the time of block 0.
func (g *Genesis) LaunchTime() uint64 {
	return g.launchTime
}

// Build writes the genesis state.
func (g *Genesis) Build(state *state.State, emit solidity.EmitFunc) error {
	return g.build(state, emit)
}

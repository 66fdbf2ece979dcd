// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/sarcophagus-org/sarco-ledger/builtin/params"
	"github.com/sarcophagus-org/sarco-ledger/builtin/solidity"
	"github.com/sarcophagus-org/sarco-ledger/builtin/staking"
	"github.com/sarcophagus-org/sarco-ledger/builtin/token"
	"github.com/sarcophagus-org/sarco-ledger/builtin/vesting"
	"github.com/sarcophagus-org/sarco-ledger/builtin/votingrights"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
)

// Builtin contracts binding.
var (
	Params       = &paramsContract{newContract("Params")}
	Token        = &tokenContract{newContract("Token")}
	Staking      = &stakingContract{newContract("Staking")}
	VotingRights = &votingRightsContract{newContract("VotingRights")}
	Vesting      = &vestingContract{newContract("Vesting")}
)

type (
	paramsContract       struct{ *contract }
	tokenContract        struct{ *contract }
	stakingContract      struct{ *contract }
	votingRightsContract struct{ *contract }
	vestingContract      struct{ *contract }
)

func (p *paramsContract) Native(state *state.State, emit solidity.EmitFunc) *params.Params {
	return params.New(p.Address, state, emit)
}

// Native binds the SARCO token.
func (t *tokenContract) Native(state *state.State, emit solidity.EmitFunc) *token.Token {
	return token.New(t.Address, state, emit)
}

// At binds the token at any address. Addresses never initialized as a token
// are empty tokens.
func (t *tokenContract) At(addr sarco.Address, state *state.State, emit solidity.EmitFunc) *token.Token {
	return token.New(addr, state, emit)
}

func (s *stakingContract) Native(state *state.State, emit solidity.EmitFunc) *staking.Staking {
	return staking.New(
		s.Address,
		state,
		emit,
		Token.Native(state, emit),
		Params.Native(state, emit),
	)
}

func (v *votingRightsContract) Native(state *state.State) *votingrights.VotingRights {
	return votingrights.New(v.Address, state, Staking.Native(state, nil))
}

func (v *vestingContract) Native(state *state.State, emit solidity.EmitFunc) *vesting.Vesting {
	return vesting.New(v.Address, state, emit, func(addr sarco.Address) vesting.Asset {
		return Token.At(addr, state, emit)
	})
}

// NameOf returns the name of the builtin contract at addr.
func NameOf(addr sarco.Address) (string, bool) {
	for _, c := range []*contract{
		Params.contract,
		Token.contract,
		Staking.contract,
		VotingRights.contract,
		Vesting.contract,
	} {
		if c.Address == addr {
			return c.name, true
		}
	}
	return "", false
}

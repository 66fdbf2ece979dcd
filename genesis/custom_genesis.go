// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/builtin/solidity"
	"github.com/sarcophagus-org/sarco-ledger/builtin/token"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
)

// CustomGenesis is user customized genesis. Amounts are in whole tokens and
// may carry a fraction, e.g. "12.5".
type CustomGenesis struct {
	Name         string       `yaml:"name"`
	LaunchTime   uint64       `yaml:"launchTime"`
	Token        Token        `yaml:"token"`
	VotingRights VotingRights `yaml:"votingRights"`
	Accounts     []Account    `yaml:"accounts"`
	Allowances   []Allowance  `yaml:"allowances"`
	Params       Params       `yaml:"params"`
}

type Token struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals *uint8 `yaml:"decimals"`
}

type VotingRights struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// Account is an initial SARCO allocation.
type Account struct {
	Address sarco.Address `yaml:"address"`
	Balance string        `yaml:"balance"`
}

// Allowance is an initial approval of the owner for the spender.
type Allowance struct {
	Owner   sarco.Address `yaml:"owner"`
	Spender sarco.Address `yaml:"spender"`
	Amount  string        `yaml:"amount"`
}

// Params holds the initial governance params.
type Params struct {
	Executor   *sarco.Address `yaml:"executor"`
	MinUnstake string         `yaml:"minUnstake"`
}

// Decode reads a yaml genesis.
func Decode(r io.Reader) (*CustomGenesis, error) {
	var gen CustomGenesis
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	meta := token.Metadata{
		Name:     gen.Token.Name,
		Symbol:   gen.Token.Symbol,
		Decimals: sarco.DefaultDecimals,
	}
	if meta.Name == "" {
		meta.Name = sarco.TokenName
	}
	if meta.Symbol == "" {
		meta.Symbol = sarco.TokenSymbol
	}
	if gen.Token.Decimals != nil {
		meta.Decimals = *gen.Token.Decimals
	}
	if meta.Decimals > 77 {
		return nil, errors.Errorf("token decimals %d out of range", meta.Decimals)
	}

	parse := func(s, field string) (*big.Int, error) {
		amount, err := sarco.ParseAmount(s, meta.Decimals)
		if err != nil {
			return nil, errors.WithMessage(err, field)
		}
		return amount, nil
	}

	balances := make([]*big.Int, len(gen.Accounts))
	for i, acc := range gen.Accounts {
		if acc.Address.IsZero() {
			return nil, errors.Errorf("accounts[%d]: zero address", i)
		}
		amount, err := parse(acc.Balance, "accounts["+acc.Address.String()+"].balance")
		if err != nil {
			return nil, err
		}
		balances[i] = amount
	}
	allowances := make([]*big.Int, len(gen.Allowances))
	for i, a := range gen.Allowances {
		amount, err := parse(a.Amount, "allowances["+a.Owner.String()+"].amount")
		if err != nil {
			return nil, err
		}
		allowances[i] = amount
	}
	var minUnstake *big.Int
	if gen.Params.MinUnstake != "" {
		amount, err := parse(gen.Params.MinUnstake, "params.minUnstake")
		if err != nil {
			return nil, err
		}
		minUnstake = amount
	}

	canonical, err := yaml.Marshal(gen)
	if err != nil {
		return nil, errors.Wrap(err, "encode genesis")
	}

	name := gen.Name
	if name == "" {
		name = "customnet"
	}

	return &Genesis{
		id:         sarco.Blake2b(canonical),
		name:       name,
		launchTime: gen.LaunchTime,
		build: func(state *state.State, emit solidity.EmitFunc) error {
			tok := builtin.Token.Native(state, emit)
			if err := tok.Initialize(meta); err != nil {
				return err
			}
			for i, acc := range gen.Accounts {
				if err := tok.Mint(acc.Address, balances[i]); err != nil {
					return errors.WithMessagef(err, "mint to %v", acc.Address)
				}
			}
			for i, a := range gen.Allowances {
				if err := tok.Approve(a.Owner, a.Spender, allowances[i]); err != nil {
					return errors.WithMessagef(err, "approve %v for %v", a.Spender, a.Owner)
				}
			}

			params := builtin.Params.Native(state, emit)
			if gen.Params.Executor != nil {
				params.Set(sarco.KeyExecutorAddress, new(big.Int).SetBytes(gen.Params.Executor.Bytes()))
			}
			if minUnstake != nil {
				params.Set(sarco.KeyMinUnstake, minUnstake)
			}

			if gen.VotingRights.Name != "" || gen.VotingRights.Symbol != "" {
				name, symbol := gen.VotingRights.Name, gen.VotingRights.Symbol
				if name == "" {
					name = sarco.VotingRightsName
				}
				if symbol == "" {
					symbol = sarco.VotingRightsSymbol
				}
				if err := builtin.VotingRights.Native(state).SetMetadata(name, symbol); err != nil {
					return err
				}
			}
			return nil
		},
	}, nil
}

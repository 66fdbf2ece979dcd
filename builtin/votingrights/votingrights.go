// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package votingrights exposes staked balances as a read-only token, so that
// snapshot based voting tools can read weights without knowing about staking.
package votingrights

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/sarcophagus-org/sarco-ledger/builtin/solidity"
	"github.com/sarcophagus-org/sarco-ledger/builtin/staking"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
)

var slotMetadata = sarco.BytesToBytes32([]byte("metadata"))

type metadata struct {
	Name   string
	Symbol string
}

// VotingRights mirrors the stake ledger. Apart from its name and symbol it
// keeps no state of its own.
type VotingRights struct {
	context *solidity.Context
	staking *staking.Staking
}

func New(addr sarco.Address, state *state.State, staking *staking.Staking) *VotingRights {
	return &VotingRights{
		context: solidity.NewContext(addr, state, nil),
		staking: staking,
	}
}

// SetMetadata overrides the default name and symbol.
func (v *VotingRights) SetMetadata(name, symbol string) error {
	return v.context.State().EncodeStorage(v.context.Address(), slotMetadata, func() ([]byte, error) {
		return rlp.EncodeToBytes(&metadata{name, symbol})
	})
}

func (v *VotingRights) metadata() (*metadata, error) {
	meta := metadata{sarco.VotingRightsName, sarco.VotingRightsSymbol}
	err := v.context.State().DecodeStorage(v.context.Address(), slotMetadata, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &meta)
	})
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (v *VotingRights) Name() (string, error) {
	meta, err := v.metadata()
	if err != nil {
		return "", err
	}
	return meta.Name, nil
}

func (v *VotingRights) Symbol() (string, error) {
	meta, err := v.metadata()
	if err != nil {
		return "", err
	}
	return meta.Symbol, nil
}

// Decimals returns the decimals of the staked asset.
func (v *VotingRights) Decimals() (uint8, error) {
	return v.staking.Asset().Decimals()
}

// BalanceOf returns the current voting weight of account.
func (v *VotingRights) BalanceOf(account sarco.Address) (*big.Int, error) {
	return v.staking.StakeValue(account)
}

// BalanceOfAt returns the voting weight of account as of the given block.
func (v *VotingRights) BalanceOfAt(account sarco.Address, index uint32) (*big.Int, error) {
	return v.staking.StakeValueAt(account, index)
}

// TotalSupply returns the current total voting weight.
func (v *VotingRights) TotalSupply() (*big.Int, error) {
	return v.staking.TotalStaked()
}

// TotalSupplyAt returns the total voting weight as of the given block.
func (v *VotingRights) TotalSupplyAt(index uint32) (*big.Int, error) {
	return v.staking.TotalStakedAt(index)
}

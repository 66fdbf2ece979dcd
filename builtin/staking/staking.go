// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the stake ledger. Every stake and unstake records
// the staker's new balance and the new aggregate in checkpoint histories keyed
// by block number, so balances can be queried as of any past block.
package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/builtin/checkpoints"
	"github.com/sarcophagus-org/sarco-ledger/builtin/params"
	"github.com/sarcophagus-org/sarco-ledger/builtin/reverts"
	"github.com/sarcophagus-org/sarco-ledger/builtin/solidity"
	"github.com/sarcophagus-org/sarco-ledger/log"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
)

var logger = log.WithContext("pkg", "staking")

var (
	slotAccountStakes = sarco.BytesToBytes32([]byte("account-stakes"))
	slotTotalStake    = sarco.BytesToBytes32([]byte("total-stake"))
	slotTotalStakers  = sarco.BytesToBytes32([]byte("total-stakers"))
)

// Asset is the token staked into the ledger.
type Asset interface {
	Address() sarco.Address
	Decimals() (uint8, error)
	BalanceOf(account sarco.Address) (*big.Int, error)
	Transfer(sender, recipient sarco.Address, amount *big.Int) error
	TransferFrom(spender, owner, recipient sarco.Address, amount *big.Int) error
}

// Staking implements native methods of `Staking` contract.
type Staking struct {
	context *solidity.Context
	asset   Asset
	params  *params.Params

	accounts *checkpoints.Store[sarco.Address]
	total    *checkpoints.History
	stakers  *solidity.Uint256
}

// New create a new instance.
func New(addr sarco.Address, state *state.State, emit solidity.EmitFunc, asset Asset, params *params.Params) *Staking {
	sctx := solidity.NewContext(addr, state, emit)
	return &Staking{
		context:  sctx,
		asset:    asset,
		params:   params,
		accounts: checkpoints.NewStore[sarco.Address](sctx, slotAccountStakes),
		total:    checkpoints.NewHistory(sctx, slotTotalStake),
		stakers:  solidity.NewUint256(sctx, slotTotalStakers),
	}
}

// Address returns the address holding staked tokens in custody.
func (s *Staking) Address() sarco.Address {
	return s.context.Address()
}

// Asset returns the staked token.
func (s *Staking) Asset() Asset {
	return s.asset
}

//
// Getters - no state change
//

// StakeValue returns the current stake of account.
func (s *Staking) StakeValue(account sarco.Address) (*big.Int, error) {
	return s.accounts.Of(account).LatestValue()
}

// StakeValueAt returns the stake of account as of the given block.
func (s *Staking) StakeValueAt(account sarco.Address, index uint32) (*big.Int, error) {
	return s.accounts.Of(account).UpperLookup(index)
}

// TotalStaked returns the current aggregate stake.
func (s *Staking) TotalStaked() (*big.Int, error) {
	return s.total.LatestValue()
}

// TotalStakedAt returns the aggregate stake as of the given block.
func (s *Staking) TotalStakedAt(index uint32) (*big.Int, error) {
	return s.total.UpperLookup(index)
}

// TotalStakers returns the number of accounts with a non-zero stake.
func (s *Staking) TotalStakers() (uint64, error) {
	n, err := s.stakers.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// AccountHistory returns the checkpoint history of account.
func (s *Staking) AccountHistory(account sarco.Address) *checkpoints.History {
	return s.accounts.Of(account)
}

// TotalHistory returns the checkpoint history of the aggregate.
func (s *Staking) TotalHistory() *checkpoints.History {
	return s.total
}

// MinUnstake returns the smallest amount accepted by Unstake.
func (s *Staking) MinUnstake() (*big.Int, error) {
	minAmount, err := s.params.Get(sarco.KeyMinUnstake)
	if err != nil {
		return nil, err
	}
	if minAmount.Sign() > 0 {
		return minAmount, nil
	}
	decimals, err := s.asset.Decimals()
	if err != nil {
		return nil, err
	}
	return sarco.Unit(decimals), nil
}

//
// Setters - state change
//

// Stake moves amount of the staker's tokens into custody. The staker must
// have approved the ledger to spend at least amount.
func (s *Staking) Stake(index uint32, staker sarco.Address, amount *big.Int) error {
	if amount.Sign() <= 0 {
		return reverts.New("Must stake a nonzero amount.")
	}
	balance, err := s.asset.BalanceOf(staker)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return reverts.New("Cannot stake more SARCO than you hold unstaked.")
	}

	if err := s.asset.TransferFrom(s.Address(), staker, s.Address(), amount); err != nil {
		return err
	}

	history := s.accounts.Of(staker)
	oldValue, err := history.LatestValue()
	if err != nil {
		return err
	}
	if oldValue.Sign() == 0 {
		if _, err := s.stakers.Add(big.NewInt(1)); err != nil {
			return err
		}
	}
	newValue := new(big.Int).Add(oldValue, amount)

	newTotal, err := s.total.LatestValue()
	if err != nil {
		return err
	}
	newTotal = new(big.Int).Add(newTotal, amount)

	if err := s.writeCheckpoints(index, history, newValue, newTotal); err != nil {
		return err
	}

	logger.Debug("staked", "staker", staker, "amount", amount, "balance", newValue, "total", newTotal, "index", index)
	s.context.Emit(&StakeChanged{Account: staker, NewBalance: newValue, NewTotal: newTotal})
	return nil
}

// Unstake returns amount of the staker's stake from custody.
func (s *Staking) Unstake(index uint32, staker sarco.Address, amount *big.Int) error {
	minAmount, err := s.MinUnstake()
	if err != nil {
		return err
	}
	if amount.Cmp(minAmount) < 0 {
		return reverts.New("Must unstake at least one SARCO.")
	}

	history := s.accounts.Of(staker)
	oldValue, err := history.LatestValue()
	if err != nil {
		return err
	}
	if oldValue.Cmp(amount) < 0 {
		return reverts.New("Cannot unstake more SARCO than you have staked.")
	}

	if err := s.asset.Transfer(s.Address(), staker, amount); err != nil {
		return err
	}

	newValue := new(big.Int).Sub(oldValue, amount)
	if newValue.Sign() == 0 {
		if _, err := s.stakers.Sub(big.NewInt(1)); err != nil {
			return err
		}
	}

	newTotal, err := s.total.LatestValue()
	if err != nil {
		return err
	}
	newTotal = new(big.Int).Sub(newTotal, amount)

	if err := s.writeCheckpoints(index, history, newValue, newTotal); err != nil {
		return err
	}

	logger.Debug("unstaked", "staker", staker, "amount", amount, "balance", newValue, "total", newTotal, "index", index)
	s.context.Emit(&UnstakeChanged{Account: staker, NewBalance: newValue, NewTotal: newTotal})
	return nil
}

func (s *Staking) writeCheckpoints(index uint32, account *checkpoints.History, value, total *big.Int) error {
	if err := account.Push(index, value); err != nil {
		return errors.WithMessage(err, "push account checkpoint")
	}
	if err := s.total.Push(index, total); err != nil {
		return errors.WithMessage(err, "push total checkpoint")
	}
	return nil
}

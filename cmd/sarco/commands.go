// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

// clauseBuilder builds the clause of a command against the committed state.
type clauseBuilder func(ctx *cli.Context, st *state.State) (*tx.Clause, error)

// packAction packs the built clause into one block and prints the receipt.
func packAction(build clauseBuilder) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		initLogger(ctx)

		caller, err := parseAccount(ctx.String(fromFlag.Name))
		if err != nil {
			return errors.WithMessage(err, "from")
		}

		l, err := openLedger(ctx)
		if err != nil {
			return err
		}
		defer l.Close()

		clause, err := build(ctx, l.chain.NewState())
		if err != nil {
			return err
		}
		receipt, err := pack(l.chain, ctx.Uint64(timeFlag.Name), caller, clause)
		if err != nil {
			return err
		}
		if err := printJSON(os.Stdout, receipt); err != nil {
			return err
		}
		if receipt.Reverted {
			return errors.Errorf("reverted: %s", receipt.RevertReason)
		}
		return nil
	}
}

func pack(c *chain.Chain, requestedTime uint64, caller sarco.Address, clause *tx.Clause) (*tx.Receipt, error) {
	block, receipts, err := c.Pack(blockTime(requestedTime, c.Head().Time), &tx.Call{Caller: caller, Clause: clause})
	if err != nil {
		return nil, err
	}
	logger.Info("packed", "block", block.Number, "time", block.Time, "method", receipts[0].Method, "reverted", receipts[0].Reverted)
	return receipts[0], nil
}

// assetOf returns the asset flag, defaulting to SARCO.
func assetOf(ctx *cli.Context) (sarco.Address, error) {
	s := ctx.String(assetFlag.Name)
	if s == "" {
		return builtin.Token.Address, nil
	}
	addr, err := sarco.ParseAddress(s)
	if err != nil {
		return sarco.Address{}, errors.WithMessage(err, "asset")
	}
	return *addr, nil
}

var (
	stakeAction = packAction(func(ctx *cli.Context, st *state.State) (*tx.Clause, error) {
		amount, err := parseAmount(st, builtin.Token.Address, ctx.String(amountFlag.Name))
		if err != nil {
			return nil, err
		}
		return builtin.Stake(amount), nil
	})

	unstakeAction = packAction(func(ctx *cli.Context, st *state.State) (*tx.Clause, error) {
		amount, err := parseAmount(st, builtin.Token.Address, ctx.String(amountFlag.Name))
		if err != nil {
			return nil, err
		}
		return builtin.Unstake(amount), nil
	})

	approveAction = packAction(func(ctx *cli.Context, st *state.State) (*tx.Clause, error) {
		spender := builtin.Staking.Address
		if s := ctx.String(spenderFlag.Name); s != "" {
			var err error
			if spender, err = parseAccount(s); err != nil {
				return nil, errors.WithMessage(err, "spender")
			}
		}
		amount, err := parseAmount(st, builtin.Token.Address, ctx.String(amountFlag.Name))
		if err != nil {
			return nil, err
		}
		return builtin.Approve(spender, amount), nil
	})

	transferAction = packAction(func(ctx *cli.Context, st *state.State) (*tx.Clause, error) {
		to, err := parseAccount(ctx.String(toFlag.Name))
		if err != nil {
			return nil, errors.WithMessage(err, "to")
		}
		amount, err := parseAmount(st, builtin.Token.Address, ctx.String(amountFlag.Name))
		if err != nil {
			return nil, err
		}
		return builtin.Transfer(to, amount), nil
	})

	vestAction = packAction(func(ctx *cli.Context, st *state.State) (*tx.Clause, error) {
		beneficiary, err := parseAccount(ctx.String(beneficiaryFlag.Name))
		if err != nil {
			return nil, errors.WithMessage(err, "beneficiary")
		}
		asset, err := assetOf(ctx)
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(st, asset, ctx.String(amountFlag.Name))
		if err != nil {
			return nil, err
		}
		return builtin.StartVest(beneficiary, amount, ctx.Uint64(durationFlag.Name), asset), nil
	})

	releaseAction = packAction(func(ctx *cli.Context, _ *state.State) (*tx.Clause, error) {
		beneficiary, err := parseAccount(ctx.String(beneficiaryFlag.Name))
		if err != nil {
			return nil, errors.WithMessage(err, "beneficiary")
		}
		asset, err := assetOf(ctx)
		if err != nil {
			return nil, err
		}
		return builtin.Release(asset, beneficiary), nil
	})

	releaseToAction = packAction(func(ctx *cli.Context, _ *state.State) (*tx.Clause, error) {
		recipient, err := parseAccount(ctx.String(toFlag.Name))
		if err != nil {
			return nil, errors.WithMessage(err, "to")
		}
		asset, err := assetOf(ctx)
		if err != nil {
			return nil, err
		}
		return builtin.ReleaseTo(asset, recipient), nil
	})

	setParamAction = packAction(func(ctx *cli.Context, st *state.State) (*tx.Clause, error) {
		value := ctx.String(valueFlag.Name)
		switch key := ctx.String(keyFlag.Name); key {
		case "min-unstake":
			amount, err := parseAmount(st, builtin.Token.Address, value)
			if err != nil {
				return nil, err
			}
			return builtin.SetParam(sarco.KeyMinUnstake, amount), nil
		case "executor":
			addr, err := parseAccount(value)
			if err != nil {
				return nil, errors.WithMessage(err, "value")
			}
			return builtin.SetParam(sarco.KeyExecutorAddress, new(big.Int).SetBytes(addr.Bytes())), nil
		default:
			return nil, errors.Errorf("unknown param key %q", key)
		}
	})
)

func queryAction(ctx *cli.Context) error {
	initLogger(ctx)

	account, err := parseAccount(ctx.String(accountFlag.Name))
	if err != nil {
		return errors.WithMessage(err, "account")
	}
	asset, err := assetOf(ctx)
	if err != nil {
		return err
	}

	l, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Close()

	summary, err := summarize(l.chain, account, asset, ctx.Int64(indexFlag.Name))
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, summary)
}

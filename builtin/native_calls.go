// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/sarcophagus-org/sarco-ledger/builtin/reverts"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/xenv"
)

// NativeMethod runs a method of a builtin contract.
type NativeMethod func(env *xenv.Environment) error

type methodKey struct {
	sarco.Address
	name string
}

var nativeMethods = make(map[methodKey]NativeMethod)

// FindNativeMethod returns the method named name of the builtin contract at to.
func FindNativeMethod(to sarco.Address, name string) (NativeMethod, bool) {
	m, ok := nativeMethods[methodKey{to, name}]
	return m, ok
}

type nativeDefine struct {
	name string
	run  NativeMethod
}

func register(c *contract, defines []nativeDefine) {
	for _, def := range defines {
		key := methodKey{c.Address, def.name}
		if _, dup := nativeMethods[key]; dup {
			panic("duplicated native method: " + c.name + "." + def.name)
		}
		nativeMethods[key] = def.run
	}
}

// requireAmount stops the call unless amount fits an unsigned 256 bit word.
func requireAmount(env *xenv.Environment, amount *big.Int) {
	switch {
	case amount == nil:
		env.Stop(reverts.New("decode native input: missing amount"))
	case amount.Sign() < 0:
		env.Stop(reverts.New("decode native input: negative amount"))
	case amount.BitLen() > 256:
		env.Stop(reverts.New("decode native input: amount overflows uint256"))
	}
}

func init() {
	register(Params.contract, []nativeDefine{
		{"set", func(env *xenv.Environment) error {
			var args SetParamArgs
			env.ParseArgs(&args)
			requireAmount(env, args.Value)

			p := Params.Native(env.State(), env.Emitter())
			executor, err := p.Executor()
			if err != nil {
				return err
			}
			if env.Caller() != executor {
				return reverts.New("builtin: executor required")
			}
			p.Set(args.Key, args.Value)
			return nil
		}},
	})

	register(Token.contract, []nativeDefine{
		{"transfer", func(env *xenv.Environment) error {
			var args TransferArgs
			env.ParseArgs(&args)
			requireAmount(env, args.Amount)
			return Token.Native(env.State(), env.Emitter()).Transfer(env.Caller(), args.To, args.Amount)
		}},
		{"approve", func(env *xenv.Environment) error {
			var args ApproveArgs
			env.ParseArgs(&args)
			requireAmount(env, args.Amount)
			return Token.Native(env.State(), env.Emitter()).Approve(env.Caller(), args.Spender, args.Amount)
		}},
		{"transferFrom", func(env *xenv.Environment) error {
			var args TransferFromArgs
			env.ParseArgs(&args)
			requireAmount(env, args.Amount)
			return Token.Native(env.State(), env.Emitter()).TransferFrom(env.Caller(), args.From, args.To, args.Amount)
		}},
	})

	register(Staking.contract, []nativeDefine{
		{"stake", func(env *xenv.Environment) error {
			var args AmountArgs
			env.ParseArgs(&args)
			requireAmount(env, args.Amount)
			return Staking.Native(env.State(), env.Emitter()).Stake(env.BlockContext().Number, env.Caller(), args.Amount)
		}},
		{"unstake", func(env *xenv.Environment) error {
			var args AmountArgs
			env.ParseArgs(&args)
			requireAmount(env, args.Amount)
			return Staking.Native(env.State(), env.Emitter()).Unstake(env.BlockContext().Number, env.Caller(), args.Amount)
		}},
	})

	register(Vesting.contract, []nativeDefine{
		{"startVest", func(env *xenv.Environment) error {
			var args StartVestArgs
			env.ParseArgs(&args)
			requireAmount(env, args.Amount)
			return Vesting.Native(env.State(), env.Emitter()).StartVest(
				env.BlockContext().Time,
				env.Caller(),
				args.Beneficiary,
				args.Amount,
				args.Duration,
				args.Asset,
			)
		}},
		{"release", func(env *xenv.Environment) error {
			var args ReleaseArgs
			env.ParseArgs(&args)
			return Vesting.Native(env.State(), env.Emitter()).Release(env.BlockContext().Time, args.Asset, args.Beneficiary)
		}},
		{"releaseTo", func(env *xenv.Environment) error {
			var args ReleaseToArgs
			env.ParseArgs(&args)
			return Vesting.Native(env.State(), env.Emitter()).ReleaseTo(env.BlockContext().Time, args.Asset, env.Caller(), args.Recipient)
		}},
	})
}

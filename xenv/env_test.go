// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

func TestParseArgs(t *testing.T) {
	clause, err := tx.NewClause(sarco.BytesToAddress([]byte("to")), "stake", &struct{ Amount *big.Int }{big.NewInt(42)})
	require.NoError(t, err)

	env := New(nil, &BlockContext{Number: 1}, sarco.Address{}, clause, nil)
	var args struct{ Amount *big.Int }
	require.NoError(t, env.Call(func(env *Environment) error {
		env.ParseArgs(&args)
		return nil
	}))
	assert.Equal(t, big.NewInt(42), args.Amount)
	assert.Equal(t, clause.To, env.To())
}

func TestCallErrors(t *testing.T) {
	clause := &tx.Clause{Method: "stake", Args: []byte("{bad")}
	env := New(nil, &BlockContext{}, sarco.Address{}, clause, nil)

	err := env.Call(func(env *Environment) error {
		var args struct{}
		env.ParseArgs(&args)
		return nil
	})
	assert.ErrorContains(t, err, "decode native input")

	stopped := errors.New("stopped")
	assert.Equal(t, stopped, env.Call(func(env *Environment) error {
		env.Stop(stopped)
		return nil
	}))

	returned := errors.New("returned")
	assert.Equal(t, returned, env.Call(func(*Environment) error { return returned }))

	assert.Panics(t, func() {
		_ = env.Call(func(*Environment) error { panic("boom") })
	})
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/genesis"
	"github.com/sarcophagus-org/sarco-ledger/lvldb"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

const customYAML = `
name: testnet
launchTime: 1600000000
token:
  name: Test Token
  symbol: TT
  decimals: 6
votingRights:
  symbol: TT-VR
accounts:
  - address: "0x000000000000000000000000000000616c696365"
    balance: "100.5"
  - address: "0x0000000000000000000000000000000000626f62"
    balance: "7"
allowances:
  - owner: "0x000000000000000000000000000000616c696365"
    spender: "0x0000000000000000000000000000000000626f62"
    amount: "1"
params:
  executor: "0x0000000000000000000000000000000000626f62"
  minUnstake: "0.5"
`

var (
	alice = sarco.BytesToAddress([]byte("alice"))
	bob   = sarco.BytesToAddress([]byte("bob"))
)

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.NewStater(db).NewState()
}

func TestDevnet(t *testing.T) {
	gen := genesis.NewDevnet()
	assert.Equal(t, "devnet", gen.Name())
	assert.Equal(t, uint64(1526400000), gen.LaunchTime())
	assert.Equal(t, gen.ID(), genesis.NewDevnet().ID())

	st := newState(t)
	var events tx.Events
	require.NoError(t, gen.Build(st, func(ev *tx.Event) { events = append(events, ev) }))

	accs := genesis.DevAccounts()
	require.Len(t, accs, 5)
	assert.Len(t, events.Filter("Transfer"), len(accs))

	tok := builtin.Token.Native(st, nil)
	for _, acc := range accs {
		balance, err := tok.BalanceOf(acc.Address)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Mul(big.NewInt(1_000_000), sarco.Unit(18)), balance)
	}
	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Mul(big.NewInt(5_000_000), sarco.Unit(18)), supply)

	executor, err := builtin.Params.Native(st, nil).Executor()
	require.NoError(t, err)
	assert.Equal(t, accs[0].Address, executor)

	name, err := builtin.VotingRights.Native(st).Name()
	require.NoError(t, err)
	assert.Equal(t, sarco.VotingRightsName, name)
}

func TestCustomNet(t *testing.T) {
	custom, err := genesis.Decode(strings.NewReader(customYAML))
	require.NoError(t, err)

	gen, err := genesis.NewCustomNet(custom)
	require.NoError(t, err)
	assert.Equal(t, "testnet", gen.Name())
	assert.Equal(t, uint64(1600000000), gen.LaunchTime())
	assert.NotEqual(t, genesis.NewDevnet().ID(), gen.ID())

	st := newState(t)
	require.NoError(t, gen.Build(st, nil))

	tok := builtin.Token.Native(st, nil)
	meta, err := tok.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Test Token", meta.Name)
	assert.Equal(t, "TT", meta.Symbol)
	assert.Equal(t, uint8(6), meta.Decimals)

	balance, err := tok.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100_500_000), balance)
	allowance, err := tok.Allowance(alice, bob)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000), allowance)

	minUnstake, err := builtin.Staking.Native(st, nil).MinUnstake()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(500_000), minUnstake)

	vr := builtin.VotingRights.Native(st)
	name, err := vr.Name()
	require.NoError(t, err)
	assert.Equal(t, sarco.VotingRightsName, name)
	symbol, err := vr.Symbol()
	require.NoError(t, err)
	assert.Equal(t, "TT-VR", symbol)
	decimals, err := vr.Decimals()
	require.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)
}

func TestCustomNetErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "launchTim: 1\n", "decode genesis"},
		{"bad address", "accounts:\n  - address: xyz\n    balance: \"1\"\n", "decode genesis"},
		{"zero address", "accounts:\n  - address: \"0x0000000000000000000000000000000000000000\"\n    balance: \"1\"\n", "zero address"},
		{"bad balance", "accounts:\n  - address: \"0x0000000000000000000000000000000000626f62\"\n    balance: abc\n", "balance"},
		{"too precise", "token:\n  decimals: 2\nparams:\n  minUnstake: \"0.001\"\n", "too many decimal places"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			custom, err := genesis.Decode(strings.NewReader(tt.yaml))
			if err == nil {
				_, err = genesis.NewCustomNet(custom)
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/genesis"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/test/testchain"
)

func TestParseAccount(t *testing.T) {
	accs := genesis.DevAccounts()

	addr, err := parseAccount("2")
	require.NoError(t, err)
	assert.Equal(t, accs[2].Address, addr)

	addr, err = parseAccount(accs[3].Address.String())
	require.NoError(t, err)
	assert.Equal(t, accs[3].Address, addr)

	for _, s := range []string{"", "-1", "5", "0x12", "zz"} {
		_, err := parseAccount(s)
		assert.Error(t, err, s)
	}
}

func TestBlockTime(t *testing.T) {
	assert.Equal(t, uint64(200), blockTime(200, 100))
	assert.Equal(t, uint64(100), blockTime(50, 100))

	now := uint64(time.Now().Unix())
	assert.GreaterOrEqual(t, blockTime(0, 100), now)
	assert.Equal(t, now+1000, blockTime(0, now+1000))
}

func TestParseAmountAndSummarize(t *testing.T) {
	tchain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer tchain.Close()

	st := tchain.State()
	amount, err := parseAmount(st, builtin.Token.Address, "1.5")
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Mul(big.NewInt(15), sarco.Unit(17)), amount)

	_, err = parseAmount(st, builtin.Token.Address, "")
	assert.Error(t, err)
	_, err = parseAmount(st, builtin.Token.Address, "abc")
	assert.Error(t, err)

	acc := genesis.DevAccounts()[0]
	_, err = tchain.MintClauses(acc,
		builtin.Approve(builtin.Staking.Address, amount),
		builtin.Stake(amount),
	)
	require.NoError(t, err)

	s, err := summarize(tchain.Chain(), acc.Address, builtin.Token.Address, -1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), s.Index)
	assert.Equal(t, "1.5", s.Stake)
	assert.Equal(t, "1.5", s.VotingWeight)
	assert.Equal(t, "999998.5", s.Balance)
	assert.Nil(t, s.Vest)

	s, err = summarize(tchain.Chain(), acc.Address, builtin.Token.Address, 0)
	require.NoError(t, err)
	assert.Equal(t, "0", s.Stake)

	_, err = summarize(tchain.Chain(), acc.Address, builtin.Token.Address, 2)
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, s))
	assert.Contains(t, buf.String(), `"stake": "0"`)
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testchain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/genesis"
)

func Test_ChainDefault(t *testing.T) {
	c, err := NewDefault()
	require.NoError(t, err)
	defer c.Close()

	acc := genesis.DevAccounts()[0]
	receipts, err := c.MintClauses(acc, builtin.Approve(builtin.Staking.Address, big.NewInt(10)), builtin.Stake(big.NewInt(10)))
	require.NoError(t, err)
	assert.Len(t, receipts, 2)
	assert.Equal(t, uint32(1), c.Chain().Head().Number)

	_, err = c.MintClauses(acc, builtin.Stake(big.NewInt(10)))
	assert.ErrorContains(t, err, "ERC20: transfer amount exceeds allowance")
	assert.Equal(t, uint32(2), c.Chain().Head().Number)

	v, err := builtin.Staking.Native(c.State(), nil).StakeValue(acc.Address)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), v)
}

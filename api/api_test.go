// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/api"
	"github.com/sarcophagus-org/sarco-ledger/api/blocks"
	"github.com/sarcophagus-org/sarco-ledger/api/events"
	"github.com/sarcophagus-org/sarco-ledger/api/node"
	"github.com/sarcophagus-org/sarco-ledger/api/staking"
	"github.com/sarcophagus-org/sarco-ledger/api/tokens"
	"github.com/sarcophagus-org/sarco-ledger/api/vesting"
	"github.com/sarcophagus-org/sarco-ledger/api/voting"
	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/genesis"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/test/testchain"
)

var (
	ts       *httptest.Server
	tchain   *testchain.Chain
	staker   = genesis.DevAccounts()[0]
	investor = genesis.DevAccounts()[1]
)

func units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), sarco.Unit(18))
}

func initAPIServer(t *testing.T) {
	var err error
	tchain, err = testchain.NewDefault()
	require.NoError(t, err)
	t.Cleanup(func() { tchain.Close() })

	// block 1
	_, err = tchain.MintClauses(staker,
		builtin.Approve(builtin.Staking.Address, units(300)),
		builtin.Stake(units(100)),
	)
	require.NoError(t, err)
	// block 2
	_, err = tchain.MintClauses(staker, builtin.Stake(units(50)))
	require.NoError(t, err)
	// block 3
	_, err = tchain.MintClauses(staker,
		builtin.Approve(builtin.Vesting.Address, units(1000)),
		builtin.StartVest(investor.Address, units(1000), 100, builtin.Token.Address),
	)
	require.NoError(t, err)

	handler, closeSubs := api.New(tchain.Chain(), api.Options{
		AllowedOrigins: "*",
		LogsLimit:      5,
		EnableMetrics:  true,
	})
	ts = httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	t.Cleanup(closeSubs)
}

func httpGet(t *testing.T, path string) ([]byte, int) {
	res, err := http.Get(ts.URL + path) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func getJSON(t *testing.T, path string, v any) {
	body, status := httpGet(t, path)
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, v))
}

func TestAPI(t *testing.T) {
	initAPIServer(t)

	t.Run("head", testHead)
	t.Run("blocks", testBlocks)
	t.Run("staking", testStaking)
	t.Run("stakingHistory", testStakingHistory)
	t.Run("voting", testVoting)
	t.Run("vesting", testVesting)
	t.Run("tokens", testTokens)
	t.Run("events", testEvents)
	t.Run("badRequests", testBadRequests)
}

func testHead(t *testing.T) {
	var head node.Head
	getJSON(t, "/head", &head)
	assert.Equal(t, uint32(3), head.Number)
	assert.Equal(t, uint32(2), head.Size)
	assert.Equal(t, tchain.Genesis().ID(), head.GenesisID)
	assert.Equal(t, tchain.Genesis().LaunchTime()+3, head.Time)
}

func testBlocks(t *testing.T) {
	var blk *blocks.JSONBlock
	getJSON(t, "/blocks/2", &blk)
	require.NotNil(t, blk)
	assert.Equal(t, uint32(2), blk.Number)
	assert.Equal(t, uint32(1), blk.Size)
	assert.Equal(t, units(150), (*big.Int)(blk.TotalStaked))

	getJSON(t, "/blocks/head", &blk)
	assert.Equal(t, uint32(3), blk.Number)

	blk = nil
	getJSON(t, "/blocks/10", &blk)
	assert.Nil(t, blk)
}

func testStaking(t *testing.T) {
	var stake staking.Stake
	getJSON(t, "/staking/accounts/"+staker.Address.String(), &stake)
	assert.Equal(t, staker.Address, stake.Account)
	assert.Equal(t, uint32(3), stake.Index)
	assert.Equal(t, units(150), (*big.Int)(stake.Value))

	getJSON(t, "/staking/accounts/"+staker.Address.String()+"?index=1", &stake)
	assert.Equal(t, uint32(1), stake.Index)
	assert.Equal(t, units(100), (*big.Int)(stake.Value))

	getJSON(t, "/staking/accounts/"+staker.Address.String()+"?index=0", &stake)
	assert.Equal(t, 0, (*big.Int)(stake.Value).Sign())

	var total staking.Total
	getJSON(t, "/staking/total?index=2", &total)
	assert.Equal(t, units(150), (*big.Int)(total.Value))

	var stakers staking.Stakers
	getJSON(t, "/staking/stakers", &stakers)
	assert.Equal(t, uint64(1), stakers.Count)
}

func testStakingHistory(t *testing.T) {
	var history []*staking.Checkpoint
	getJSON(t, "/staking/accounts/"+staker.Address.String()+"/history", &history)
	require.Len(t, history, 2)
	assert.Equal(t, uint32(1), history[0].Index)
	assert.Equal(t, units(100), (*big.Int)(history[0].Value))
	assert.Equal(t, uint32(2), history[1].Index)
	assert.Equal(t, units(150), (*big.Int)(history[1].Value))

	getJSON(t, "/staking/accounts/"+staker.Address.String()+"/history?offset=1&limit=1", &history)
	require.Len(t, history, 1)
	assert.Equal(t, uint32(2), history[0].Index)

	getJSON(t, "/staking/accounts/"+investor.Address.String()+"/history", &history)
	assert.Empty(t, history)
}

func testVoting(t *testing.T) {
	var meta voting.Meta
	getJSON(t, "/voting/meta", &meta)
	assert.Equal(t, voting.Meta{
		Address:  builtin.VotingRights.Address,
		Name:     sarco.VotingRightsName,
		Symbol:   sarco.VotingRightsSymbol,
		Decimals: 18,
	}, meta)

	var weight voting.Weight
	getJSON(t, "/voting/accounts/"+staker.Address.String()+"?index=1", &weight)
	assert.Equal(t, units(100), (*big.Int)(weight.Value))

	getJSON(t, "/voting/supply", &weight)
	assert.Equal(t, uint32(3), weight.Index)
	assert.Equal(t, units(150), (*big.Int)(weight.Value))
}

func testVesting(t *testing.T) {
	var vest vesting.Vest
	getJSON(t, "/vesting/"+builtin.Token.Address.String()+"/"+investor.Address.String(), &vest)
	assert.True(t, vest.Created)
	assert.Equal(t, uint64(100), vest.Duration)
	assert.Equal(t, tchain.Chain().Head().Time, vest.Start)
	assert.Equal(t, units(1000), (*big.Int)(vest.Total))
	assert.Equal(t, 0, (*big.Int)(vest.Released).Sign())
	assert.Equal(t, 0, (*big.Int)(vest.Releasable).Sign())

	getJSON(t, "/vesting/"+builtin.Token.Address.String()+"/"+staker.Address.String(), &vest)
	assert.False(t, vest.Created)
}

func testTokens(t *testing.T) {
	var tok tokens.Token
	getJSON(t, "/tokens/"+builtin.Token.Address.String(), &tok)
	assert.Equal(t, sarco.TokenSymbol, tok.Symbol)
	assert.Equal(t, uint8(18), tok.Decimals)
	assert.Equal(t, units(5_000_000), (*big.Int)(tok.TotalSupply))

	var acc tokens.Account
	getJSON(t, "/tokens/"+builtin.Token.Address.String()+"/accounts/"+builtin.Staking.Address.String(), &acc)
	assert.Equal(t, units(150), (*big.Int)(acc.Balance))

	var allowance tokens.Allowance
	getJSON(t, "/tokens/"+builtin.Token.Address.String()+"/allowances/"+staker.Address.String()+"/"+builtin.Staking.Address.String(), &allowance)
	assert.Equal(t, units(150), (*big.Int)(allowance.Amount))

	// unknown tokens are empty
	getJSON(t, "/tokens/"+investor.Address.String(), &tok)
	assert.Equal(t, "", tok.Name)
	assert.Equal(t, 0, (*big.Int)(tok.TotalSupply).Sign())
}

func testEvents(t *testing.T) {
	var fes []*events.FilteredEvent
	getJSON(t, "/logs/event?name=StakeChanged", &fes)
	require.Len(t, fes, 2)
	assert.Equal(t, builtin.Staking.Address, fes[0].Address)
	assert.Equal(t, uint32(1), fes[0].Meta.BlockNumber)
	assert.Equal(t, uint32(1), fes[0].Meta.ClauseIndex)
	assert.Equal(t, staker.Address, fes[0].Meta.Caller)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(fes[1].Data, &payload))
	assert.Equal(t, staker.Address.String(), payload["account"])

	getJSON(t, "/logs/event?address="+builtin.Vesting.Address.String()+"&order=desc", &fes)
	require.Len(t, fes, 1)
	assert.Equal(t, "VestStarted", fes[0].Name)

	getJSON(t, "/logs/event?from=2&to=2", &fes)
	// stake: Transfer, Approval, StakeChanged
	assert.Len(t, fes, 3)

	// genesis mints alone exceed the limit
	body, status := httpGet(t, "/logs/event")
	assert.Equal(t, http.StatusForbidden, status, string(body))

	_, status = httpGet(t, "/logs/event?limit=6")
	assert.Equal(t, http.StatusForbidden, status)

	getJSON(t, "/logs/event?limit=5&offset=0", &fes)
	assert.Len(t, fes, 5)
}

func testBadRequests(t *testing.T) {
	for _, path := range []string{
		"/staking/accounts/0xabc",
		"/staking/accounts/" + staker.Address.String() + "?index=4",
		"/staking/accounts/" + staker.Address.String() + "?index=x",
		"/staking/total?index=-1",
		"/voting/supply?index=100",
		"/vesting/" + builtin.Token.Address.String() + "/bad",
		"/logs/event?order=up",
		"/logs/event?unit=day",
		"/logs/event?from=3&to=2",
		"/logs/event?address=0x1",
		"/blocks/x",
	} {
		_, status := httpGet(t, path)
		assert.Equal(t, http.StatusBadRequest, status, path)
	}

	_, status := httpGet(t, "/unknown")
	assert.Equal(t, http.StatusNotFound, status)
}

// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/builtin/params"
	"github.com/sarcophagus-org/sarco-ledger/builtin/reverts"
	"github.com/sarcophagus-org/sarco-ledger/builtin/token"
	"github.com/sarcophagus-org/sarco-ledger/lvldb"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
	"github.com/sarcophagus-org/sarco-ledger/test/datagen"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

type testEnv struct {
	state   *state.State
	token   *token.Token
	params  *params.Params
	staking *Staking
	events  tx.Events
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{state: state.NewStater(db).NewState()}
	emit := func(ev *tx.Event) { env.events = append(env.events, ev) }

	env.token = token.New(sarco.BytesToAddress([]byte("Token")), env.state, emit)
	require.NoError(t, env.token.Initialize(token.Metadata{Name: sarco.TokenName, Symbol: sarco.TokenSymbol, Decimals: 18}))
	env.params = params.New(sarco.BytesToAddress([]byte("Params")), env.state, emit)
	env.staking = New(sarco.BytesToAddress([]byte("Staking")), env.state, emit, env.token, env.params)
	return env
}

func units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), sarco.Unit(18))
}

// fund mints amount to account and approves the ledger to pull it.
func (env *testEnv) fund(t *testing.T, account sarco.Address, amount *big.Int) {
	require.NoError(t, env.token.Mint(account, amount))
	allowance, err := env.token.Allowance(account, env.staking.Address())
	require.NoError(t, err)
	require.NoError(t, env.token.Approve(account, env.staking.Address(), allowance.Add(allowance, amount)))
}

func (env *testEnv) stakeValue(t *testing.T, account sarco.Address) *big.Int {
	v, err := env.staking.StakeValue(account)
	require.NoError(t, err)
	return v
}

func (env *testEnv) stakers(t *testing.T) uint64 {
	n, err := env.staking.TotalStakers()
	require.NoError(t, err)
	return n
}

func assertRevert(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, reverts.IsRevertErr(err), "not a revert: %v", err)
	assert.Equal(t, msg, err.Error())
}

func TestStake(t *testing.T) {
	env := newTestEnv(t)
	alice := datagen.RandAddress()
	env.fund(t, alice, units(100))

	require.NoError(t, env.staking.Stake(1, alice, units(40)))
	assert.Equal(t, units(40), env.stakeValue(t, alice))

	total, err := env.staking.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, units(40), total)

	balance, err := env.token.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, units(60), balance)

	custody, err := env.token.BalanceOf(env.staking.Address())
	require.NoError(t, err)
	assert.Equal(t, units(40), custody)

	changed := env.events.Filter("StakeChanged")
	require.Len(t, changed, 1)
	assert.Equal(t, env.staking.Address(), changed[0].Address)
	assert.Equal(t, &StakeChanged{Account: alice, NewBalance: units(40), NewTotal: units(40)}, changed[0].Payload)
}

func TestStakeRejections(t *testing.T) {
	env := newTestEnv(t)
	alice := datagen.RandAddress()
	env.fund(t, alice, units(10))

	assertRevert(t, env.staking.Stake(1, alice, big.NewInt(0)), "Must stake a nonzero amount.")
	assertRevert(t, env.staking.Stake(1, alice, big.NewInt(-1)), "Must stake a nonzero amount.")
	assertRevert(t, env.staking.Stake(1, alice, units(11)), "Cannot stake more SARCO than you hold unstaked.")

	// holds the balance but never approved
	bob := datagen.RandAddress()
	require.NoError(t, env.token.Mint(bob, units(10)))
	assertRevert(t, env.staking.Stake(1, bob, units(1)), "ERC20: transfer amount exceeds allowance")

	assert.Equal(t, 0, env.stakeValue(t, alice).Sign())
	assert.Equal(t, 0, env.stakeValue(t, bob).Sign())
	assert.Zero(t, env.stakers(t))
	n, err := env.staking.TotalHistory().Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUnstake(t *testing.T) {
	env := newTestEnv(t)
	alice := datagen.RandAddress()
	env.fund(t, alice, units(100))
	require.NoError(t, env.staking.Stake(1, alice, units(100)))

	require.NoError(t, env.staking.Unstake(2, alice, units(30)))
	assert.Equal(t, units(70), env.stakeValue(t, alice))

	balance, err := env.token.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, units(30), balance)

	changed := env.events.Filter("UnstakeChanged")
	require.Len(t, changed, 1)
	assert.Equal(t, &UnstakeChanged{Account: alice, NewBalance: units(70), NewTotal: units(70)}, changed[0].Payload)

	assertRevert(t, env.staking.Unstake(3, alice, units(71)), "Cannot unstake more SARCO than you have staked.")
	assert.Equal(t, units(70), env.stakeValue(t, alice))

	assertRevert(t, env.staking.Unstake(3, alice, new(big.Int).Sub(units(1), big.NewInt(1))), "Must unstake at least one SARCO.")
	assertRevert(t, env.staking.Unstake(3, alice, big.NewInt(0)), "Must unstake at least one SARCO.")

	// a non-staker is rejected by the balance check
	assertRevert(t, env.staking.Unstake(3, datagen.RandAddress(), units(1)), "Cannot unstake more SARCO than you have staked.")
}

func TestMinUnstakeParam(t *testing.T) {
	env := newTestEnv(t)
	alice := datagen.RandAddress()
	env.fund(t, alice, units(10))
	require.NoError(t, env.staking.Stake(1, alice, units(10)))

	minAmount, err := env.staking.MinUnstake()
	require.NoError(t, err)
	assert.Equal(t, units(1), minAmount)

	env.params.Set(sarco.KeyMinUnstake, big.NewInt(1000))
	minAmount, err = env.staking.MinUnstake()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), minAmount)

	require.NoError(t, env.staking.Unstake(2, alice, big.NewInt(1000)))
	assertRevert(t, env.staking.Unstake(2, alice, big.NewInt(999)), "Must unstake at least one SARCO.")
}

func TestStakerCount(t *testing.T) {
	env := newTestEnv(t)
	alice, bob := datagen.RandAddress(), datagen.RandAddress()
	env.fund(t, alice, units(100))
	env.fund(t, bob, units(100))

	require.NoError(t, env.staking.Stake(1, alice, units(10)))
	assert.Equal(t, uint64(1), env.stakers(t))

	// staking again does not count twice
	require.NoError(t, env.staking.Stake(2, alice, units(10)))
	assert.Equal(t, uint64(1), env.stakers(t))

	require.NoError(t, env.staking.Stake(2, bob, units(5)))
	assert.Equal(t, uint64(2), env.stakers(t))

	require.NoError(t, env.staking.Unstake(3, alice, units(5)))
	assert.Equal(t, uint64(2), env.stakers(t))

	require.NoError(t, env.staking.Unstake(4, alice, units(15)))
	assert.Equal(t, uint64(1), env.stakers(t))

	require.NoError(t, env.staking.Stake(5, alice, units(1)))
	assert.Equal(t, uint64(2), env.stakers(t))
}

func TestHistoricalLookup(t *testing.T) {
	env := newTestEnv(t)
	alice, bob := datagen.RandAddress(), datagen.RandAddress()
	env.fund(t, alice, units(100))
	env.fund(t, bob, units(100))

	require.NoError(t, env.staking.Stake(10, alice, units(10)))
	require.NoError(t, env.staking.Stake(20, bob, units(20)))
	require.NoError(t, env.staking.Stake(30, alice, units(5)))
	require.NoError(t, env.staking.Unstake(40, bob, units(20)))

	tests := []struct {
		index uint32
		alice *big.Int
		bob   *big.Int
		total *big.Int
	}{
		{0, units(0), units(0), units(0)},
		{9, units(0), units(0), units(0)},
		{10, units(10), units(0), units(10)},
		{19, units(10), units(0), units(10)},
		{20, units(10), units(20), units(30)},
		{35, units(15), units(20), units(35)},
		{40, units(15), units(0), units(15)},
		{1000, units(15), units(0), units(15)},
	}
	for _, tt := range tests {
		a, err := env.staking.StakeValueAt(alice, tt.index)
		require.NoError(t, err)
		assert.Equal(t, 0, tt.alice.Cmp(a), "alice at %d", tt.index)

		b, err := env.staking.StakeValueAt(bob, tt.index)
		require.NoError(t, err)
		assert.Equal(t, 0, tt.bob.Cmp(b), "bob at %d", tt.index)

		total, err := env.staking.TotalStakedAt(tt.index)
		require.NoError(t, err)
		assert.Equal(t, 0, tt.total.Cmp(total), "total at %d", tt.index)
	}
}

func TestSameIndexCollapses(t *testing.T) {
	env := newTestEnv(t)
	alice := datagen.RandAddress()
	env.fund(t, alice, units(100))

	require.NoError(t, env.staking.Stake(7, alice, units(10)))
	require.NoError(t, env.staking.Stake(7, alice, units(10)))
	require.NoError(t, env.staking.Unstake(7, alice, units(5)))

	for _, h := range []interface {
		Len() (uint64, error)
	}{env.staking.AccountHistory(alice), env.staking.TotalHistory()} {
		n, err := h.Len()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), n)
	}

	cp, ok, err := env.staking.AccountHistory(alice).Latest()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(7), cp.Index)
	assert.Equal(t, units(15), cp.Value)
}

func TestAggregateMatchesAccounts(t *testing.T) {
	env := newTestEnv(t)
	rnd := rand.New(rand.NewPCG(1, 2))

	accounts := datagen.RandAddresses(5)
	for _, acc := range accounts {
		env.fund(t, acc, units(1000))
	}

	index := uint32(1)
	var observed []uint32
	for range 200 {
		if rnd.IntN(3) == 0 {
			observed = append(observed, index)
			index++
		}
		acc := accounts[rnd.IntN(len(accounts))]
		amount := units(int64(rnd.IntN(50) + 1))
		if rnd.IntN(2) == 0 {
			_ = env.staking.Stake(index, acc, amount)
		} else {
			_ = env.staking.Unstake(index, acc, amount)
		}
	}
	observed = append(observed, index)

	for _, idx := range observed {
		sum := new(big.Int)
		nonZero := uint64(0)
		for _, acc := range accounts {
			v, err := env.staking.StakeValueAt(acc, idx)
			require.NoError(t, err)
			sum.Add(sum, v)
			if v.Sign() > 0 {
				nonZero++
			}
		}
		total, err := env.staking.TotalStakedAt(idx)
		require.NoError(t, err)
		assert.Equal(t, 0, sum.Cmp(total), "index %d", idx)

		if idx == index {
			assert.Equal(t, nonZero, env.stakers(t))
		}
	}

	// current values agree with lookups at and after the last index
	for _, acc := range accounts {
		at, err := env.staking.StakeValueAt(acc, index+100)
		require.NoError(t, err)
		assert.Equal(t, 0, env.stakeValue(t, acc).Cmp(at))
	}
}

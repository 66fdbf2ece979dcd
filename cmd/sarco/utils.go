// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/beevik/ntp"
	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/genesis"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
)

// parseAccount accepts an address or the index of a devnet account.
func parseAccount(s string) (sarco.Address, error) {
	if s == "" {
		return sarco.Address{}, errors.New("account not specified")
	}
	if i, err := strconv.Atoi(s); err == nil {
		accs := genesis.DevAccounts()
		if i < 0 || i >= len(accs) {
			return sarco.Address{}, errors.Errorf("devnet account index %d out of range [0, %d)", i, len(accs))
		}
		return accs[i].Address, nil
	}
	addr, err := sarco.ParseAddress(s)
	if err != nil {
		return sarco.Address{}, errors.WithMessagef(err, "parse address %q", s)
	}
	return *addr, nil
}

// parseAmount parses whole tokens at the decimals of the asset.
func parseAmount(st *state.State, asset sarco.Address, s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("amount not specified")
	}
	decimals, err := builtin.Token.At(asset, st, nil).Decimals()
	if err != nil {
		return nil, err
	}
	amount, err := sarco.ParseAmount(s, decimals)
	if err != nil {
		return nil, errors.WithMessagef(err, "parse amount %q", s)
	}
	return amount, nil
}

// blockTime returns the requested time, or the wall clock, never before head.
func blockTime(requested, head uint64) uint64 {
	t := requested
	if t == 0 {
		t = uint64(time.Now().Unix())
	}
	return max(t, head)
}

// maxClockOffset is the local clock offset tolerated before warning, since
// block times default to the local clock.
const maxClockOffset = time.Second

func checkClockOffset(server string) {
	resp, err := ntp.Query(server)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	if offset := resp.ClockOffset.Abs(); offset > maxClockOffset {
		logger.Warn("clock offset detected", "offset", offset.String())
	}
}

// monitorClock checks the local clock against server until ctx is done.
func monitorClock(ctx context.Context, server string, interval time.Duration) {
	if server == "" {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		checkClockOffset(server)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

type vestSummary struct {
	Asset      sarco.Address `json:"asset"`
	Start      uint64        `json:"start"`
	Duration   uint64        `json:"duration"`
	Total      string        `json:"total"`
	Released   string        `json:"released"`
	Releasable string        `json:"releasable"`
}

type summary struct {
	Account      sarco.Address `json:"account"`
	Index        uint32        `json:"index"`
	Balance      string        `json:"balance"`
	Stake        string        `json:"stake"`
	VotingWeight string        `json:"votingWeight"`
	TotalStaked  string        `json:"totalStaked"`
	Vest         *vestSummary  `json:"vest,omitempty"`
}

// summarize reads the position of account at index, or at head when index
// is negative. Vesting is always read at head.
func summarize(c *chain.Chain, account, asset sarco.Address, index int64) (*summary, error) {
	head := c.Head()
	at := head.Number
	if index >= 0 {
		if index > int64(head.Number) {
			return nil, errors.Errorf("index %d beyond head %d", index, head.Number)
		}
		at = uint32(index)
	}

	var (
		st   = c.NewState()
		stk  = builtin.Staking.Native(st, nil)
		vr   = builtin.VotingRights.Native(st)
		sarc = builtin.Token.Native(st, nil)
	)
	decimals, err := sarc.Decimals()
	if err != nil {
		return nil, err
	}
	balance, err := sarc.BalanceOf(account)
	if err != nil {
		return nil, err
	}
	stake, err := stk.StakeValueAt(account, at)
	if err != nil {
		return nil, err
	}
	weight, err := vr.BalanceOfAt(account, at)
	if err != nil {
		return nil, err
	}
	total, err := stk.TotalStakedAt(at)
	if err != nil {
		return nil, err
	}

	s := &summary{
		Account:      account,
		Index:        at,
		Balance:      sarco.FormatAmount(balance, decimals),
		Stake:        sarco.FormatAmount(stake, decimals),
		VotingWeight: sarco.FormatAmount(weight, decimals),
		TotalStaked:  sarco.FormatAmount(total, decimals),
	}

	rec, err := builtin.Vesting.Native(st, nil).Get(asset, account)
	if err != nil {
		return nil, err
	}
	if rec.Created {
		assetDecimals, err := builtin.Token.At(asset, st, nil).Decimals()
		if err != nil {
			return nil, err
		}
		s.Vest = &vestSummary{
			Asset:      asset,
			Start:      rec.Start,
			Duration:   rec.Duration,
			Total:      sarco.FormatAmount(rec.Total, assetDecimals),
			Released:   sarco.FormatAmount(rec.Released, assetDecimals),
			Releasable: sarco.FormatAmount(rec.Releasable(head.Time), assetDecimals),
		}
	}
	return s, nil
}

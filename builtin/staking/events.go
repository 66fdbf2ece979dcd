// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// StakeChanged is emitted by a successful stake.
type StakeChanged struct {
	Account    sarco.Address `json:"account"`
	NewBalance *big.Int      `json:"newBalance"`
	NewTotal   *big.Int      `json:"newTotal"`
}

func (*StakeChanged) EventName() string { return "StakeChanged" }

// UnstakeChanged is emitted by a successful unstake.
type UnstakeChanged struct {
	Account    sarco.Address `json:"account"`
	NewBalance *big.Int      `json:"newBalance"`
	NewTotal   *big.Int      `json:"newTotal"`
}

func (*UnstakeChanged) EventName() string { return "UnstakeChanged" }

// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

type VestStarted struct {
	Asset       sarco.Address `json:"asset"`
	Beneficiary sarco.Address `json:"beneficiary"`
	Amount      *big.Int      `json:"amount"`
	Start       uint64        `json:"start"`
	Duration    uint64        `json:"duration"`
}

func (*VestStarted) EventName() string { return "VestStarted" }

type TokensReleased struct {
	Asset       sarco.Address `json:"asset"`
	Beneficiary sarco.Address `json:"beneficiary"`
	Recipient   sarco.Address `json:"recipient"`
	Amount      *big.Int      `json:"amount"`
}

func (*TokensReleased) EventName() string { return "TokensReleased" }

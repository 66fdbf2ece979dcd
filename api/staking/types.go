// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// Stake is the stake of an account at a block.
type Stake struct {
	Account sarco.Address         `json:"account"`
	Index   uint32                `json:"index"`
	Value   *math.HexOrDecimal256 `json:"value"`
}

// Total is the sum of all stakes at a block.
type Total struct {
	Index uint32                `json:"index"`
	Value *math.HexOrDecimal256 `json:"value"`
}

type Checkpoint struct {
	Index uint32                `json:"index"`
	Value *math.HexOrDecimal256 `json:"value"`
}

type Stakers struct {
	Count uint64 `json:"count"`
}

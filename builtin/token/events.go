// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// Transfer is emitted when tokens move, including minting from the zero address.
type Transfer struct {
	From  sarco.Address `json:"from"`
	To    sarco.Address `json:"to"`
	Value *big.Int      `json:"value"`
}

func (*Transfer) EventName() string { return "Transfer" }

// Approval is emitted when an allowance is set.
type Approval struct {
	Owner   sarco.Address `json:"owner"`
	Spender sarco.Address `json:"spender"`
	Value   *big.Int      `json:"value"`
}

func (*Approval) EventName() string { return "Approval" }

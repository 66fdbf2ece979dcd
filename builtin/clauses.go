// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

type (
	AmountArgs struct {
		Amount *big.Int `json:"amount"`
	}
	TransferArgs struct {
		To     sarco.Address `json:"to"`
		Amount *big.Int      `json:"amount"`
	}
	TransferFromArgs struct {
		From   sarco.Address `json:"from"`
		To     sarco.Address `json:"to"`
		Amount *big.Int      `json:"amount"`
	}
	ApproveArgs struct {
		Spender sarco.Address `json:"spender"`
		Amount  *big.Int      `json:"amount"`
	}
	StartVestArgs struct {
		Beneficiary sarco.Address `json:"beneficiary"`
		Amount      *big.Int      `json:"amount"`
		Duration    uint64        `json:"duration"`
		Asset       sarco.Address `json:"asset"`
	}
	ReleaseArgs struct {
		Asset       sarco.Address `json:"asset"`
		Beneficiary sarco.Address `json:"beneficiary"`
	}
	ReleaseToArgs struct {
		Asset     sarco.Address `json:"asset"`
		Recipient sarco.Address `json:"recipient"`
	}
	SetParamArgs struct {
		Key   sarco.Bytes32 `json:"key"`
		Value *big.Int      `json:"value"`
	}
)

// Stake builds a clause staking amount of SARCO.
func Stake(amount *big.Int) *tx.Clause {
	return Staking.clause("stake", &AmountArgs{amount})
}

// Unstake builds a clause unstaking amount of SARCO.
func Unstake(amount *big.Int) *tx.Clause {
	return Staking.clause("unstake", &AmountArgs{amount})
}

// Transfer builds a clause transferring SARCO to recipient.
func Transfer(to sarco.Address, amount *big.Int) *tx.Clause {
	return Token.clause("transfer", &TransferArgs{to, amount})
}

// TransferFrom builds a clause spending an allowance of from.
func TransferFrom(from, to sarco.Address, amount *big.Int) *tx.Clause {
	return Token.clause("transferFrom", &TransferFromArgs{from, to, amount})
}

// Approve builds a clause allowing spender to pull SARCO.
func Approve(spender sarco.Address, amount *big.Int) *tx.Clause {
	return Token.clause("approve", &ApproveArgs{spender, amount})
}

// StartVest builds a clause vesting amount of asset to beneficiary.
func StartVest(beneficiary sarco.Address, amount *big.Int, duration uint64, asset sarco.Address) *tx.Clause {
	return Vesting.clause("startVest", &StartVestArgs{beneficiary, amount, duration, asset})
}

// Release builds a clause releasing vested asset to beneficiary.
func Release(asset, beneficiary sarco.Address) *tx.Clause {
	return Vesting.clause("release", &ReleaseArgs{asset, beneficiary})
}

// ReleaseTo builds a clause releasing the caller's vested asset to recipient.
func ReleaseTo(asset, recipient sarco.Address) *tx.Clause {
	return Vesting.clause("releaseTo", &ReleaseToArgs{asset, recipient})
}

// SetParam builds a clause updating a governance param.
func SetParam(key sarco.Bytes32, value *big.Int) *tx.Clause {
	return Params.clause("set", &SetParamArgs{key, value})
}

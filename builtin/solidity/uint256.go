// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// Uint256 is a wrapper for storage and retrieval of an uint256, like a uint256 state variable
// of a smart contract.
// Values exceeding 256 bits are truncated to fit into a storage word.
type Uint256 struct {
	context *Context
	pos     sarco.Bytes32
}

func NewUint256(context *Context, pos sarco.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) {
	u.context.state.SetStorage(u.context.address, u.pos, sarco.BytesToBytes32(value.Bytes()))
}

func (u *Uint256) Add(value *big.Int) (*big.Int, error) {
	storage, err := u.Get()
	if err != nil {
		return nil, err
	}
	storage.Add(storage, value)
	u.Set(storage)
	return storage, nil
}

// Sub subtracts value. The caller guarantees the result is not negative.
func (u *Uint256) Sub(value *big.Int) (*big.Int, error) {
	storage, err := u.Get()
	if err != nil {
		return nil, err
	}
	storage.Sub(storage, value)
	u.Set(storage)
	return storage, nil
}

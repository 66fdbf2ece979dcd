// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// Address is a wrapper for storage and retrieval of an address state variable.
type Address struct {
	context *Context
	pos     sarco.Bytes32
}

func NewAddress(context *Context, pos sarco.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (sarco.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return sarco.Address{}, err
	}
	return sarco.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr sarco.Address) {
	a.context.state.SetStorage(a.context.address, a.pos, sarco.BytesToBytes32(addr.Bytes()))
}

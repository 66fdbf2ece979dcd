// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

type contract struct {
	name    string
	Address sarco.Address
}

func newContract(name string) *contract {
	return &contract{
		name,
		sarco.BytesToAddress([]byte(name)),
	}
}

// Name returns the contract name.
func (c *contract) Name() string {
	return c.name
}

func (c *contract) clause(method string, args any) *tx.Clause {
	clause, err := tx.NewClause(c.Address, method, args)
	if err != nil {
		// args are builtin structs of json friendly fields
		panic(err)
	}
	return clause
}

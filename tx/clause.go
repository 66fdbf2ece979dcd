// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// Clause is a call of a builtin contract method.
type Clause struct {
	To     sarco.Address   `json:"to"`
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// NewClause creates a clause with args encoded in json.
func NewClause(to sarco.Address, method string, args any) (*Clause, error) {
	c := &Clause{To: to, Method: method}
	if args != nil {
		data, err := json.Marshal(args)
		if err != nil {
			return nil, errors.WithMessage(err, "encode clause args")
		}
		c.Args = data
	}
	return c, nil
}

// Call is a clause with its caller.
type Call struct {
	Caller sarco.Address `json:"caller"`
	Clause *Clause       `json:"clause"`
}

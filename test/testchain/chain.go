// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testchain

import (
	"fmt"

	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/genesis"
	"github.com/sarcophagus-org/sarco-ledger/logdb"
	"github.com/sarcophagus-org/sarco-ledger/lvldb"
	"github.com/sarcophagus-org/sarco-ledger/state"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

// Chain is an in-memory chain for testing.
type Chain struct {
	db      *lvldb.LevelDB
	logDB   *logdb.LogDB
	genesis *genesis.Genesis
	chain   *chain.Chain
}

// NewDefault creates a Chain on the devnet genesis.
func NewDefault() (*Chain, error) {
	return NewWithGenesis(genesis.NewDevnet())
}

// NewWithGenesis creates a Chain on the given genesis, backed by in-memory stores.
func NewWithGenesis(gene *genesis.Genesis) (*Chain, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	logDB, err := logdb.NewMem()
	if err != nil {
		return nil, err
	}
	c, err := chain.New(db, logDB, gene)
	if err != nil {
		return nil, fmt.Errorf("unable to create chain: %w", err)
	}
	return &Chain{db: db, logDB: logDB, genesis: gene, chain: c}, nil
}

func (c *Chain) Genesis() *genesis.Genesis {
	return c.genesis
}

func (c *Chain) Chain() *chain.Chain {
	return c.chain
}

// State returns a view over the committed state.
func (c *Chain) State() *state.State {
	return c.chain.NewState()
}

func (c *Chain) LogDB() *logdb.LogDB {
	return c.logDB
}

// MintClauses packs the clauses called by account into one block, one second after the head.
// A reverted clause is reported as an error.
func (c *Chain) MintClauses(account genesis.DevAccount, clauses ...*tx.Clause) (tx.Receipts, error) {
	calls := make([]*tx.Call, 0, len(clauses))
	for _, clause := range clauses {
		calls = append(calls, &tx.Call{Caller: account.Address, Clause: clause})
	}
	return c.MintBlock(calls...)
}

// MintBlock packs calls into one block, one second after the head.
// A reverted call is reported as an error.
func (c *Chain) MintBlock(calls ...*tx.Call) (tx.Receipts, error) {
	_, receipts, err := c.chain.Pack(c.chain.Head().Time+1, calls...)
	if err != nil {
		return nil, err
	}
	for _, r := range receipts {
		if r.Reverted {
			return receipts, fmt.Errorf("call %d (%s) reverted: %s", r.Index, r.Method, r.RevertReason)
		}
	}
	return receipts, nil
}

// Close releases the underlying stores.
func (c *Chain) Close() error {
	if err := c.logDB.Close(); err != nil {
		return err
	}
	return c.db.Close()
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/builtin"
	"github.com/sarcophagus-org/sarco-ledger/co"
	"github.com/sarcophagus-org/sarco-ledger/genesis"
	"github.com/sarcophagus-org/sarco-ledger/kv"
	"github.com/sarcophagus-org/sarco-ledger/log"
	"github.com/sarcophagus-org/sarco-ledger/logdb"
	"github.com/sarcophagus-org/sarco-ledger/runtime"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
	"github.com/sarcophagus-org/sarco-ledger/tx"
	"github.com/sarcophagus-org/sarco-ledger/xenv"
)

const (
	propStoreName  = kv.Bucket("chain.props")
	blockStoreName = kv.Bucket("chain.blocks")
)

var (
	logger = log.WithContext("pkg", "chain")

	headKey      = []byte("head")
	genesisIDKey = []byte("genesis-id")
)

// Block is a packed block. All calls of a block share its number as the
// checkpoint index.
type Block struct {
	Number uint32 `json:"number"`
	Time   uint64 `json:"time"`
	Size   uint32 `json:"size"` // count of calls
}

// Chain serializes all state transitions. Calls are packed into blocks,
// executed in order and committed together with their events.
//
// It's thread-safe.
type Chain struct {
	stater     *state.Stater
	propStore  kv.Store
	blockStore kv.Store
	logDB      *logdb.LogDB
	genesisID  sarco.Bytes32

	head atomic.Pointer[Block]
	tick co.Signal
	lock sync.Mutex
}

// New opens the chain stored in db. An empty db is initialized with the genesis.
func New(db kv.Store, logDB *logdb.LogDB, gen *genesis.Genesis) (*Chain, error) {
	c := &Chain{
		stater:     state.NewStater(db),
		propStore:  propStoreName.NewStore(db),
		blockStore: blockStoreName.NewStore(db),
		logDB:      logDB,
		genesisID:  gen.ID(),
	}

	val, err := c.propStore.Get(genesisIDKey)
	if err != nil {
		if !c.propStore.IsNotFound(err) {
			return nil, err
		}
		if err := c.buildGenesis(gen); err != nil {
			return nil, errors.WithMessage(err, "build genesis")
		}
		return c, nil
	}

	if sarco.BytesToBytes32(val) != gen.ID() {
		return nil, errors.New("genesis mismatch")
	}
	var head Block
	if err := loadRLP(c.propStore, headKey, &head); err != nil {
		return nil, errors.Wrap(err, "load head")
	}
	c.head.Store(&head)

	// drop events of blocks that never became head
	newest, ok, err := logDB.NewestBlockNumber(context.Background())
	if err != nil {
		return nil, err
	}
	if ok && newest > head.Number {
		logger.Warn("log db ahead of chain, truncating", "newest", newest, "head", head.Number)
		if err := logDB.Truncate(head.Number + 1); err != nil {
			return nil, err
		}
	}
	c.updateGauges(c.NewState())
	return c, nil
}

func (c *Chain) buildGenesis(gen *genesis.Genesis) error {
	var (
		st      = c.stater.NewState()
		receipt = &tx.Receipt{
			BlockTime: gen.LaunchTime(),
			Method:    "genesis",
		}
	)
	if err := gen.Build(st, func(ev *tx.Event) {
		receipt.Events = append(receipt.Events, ev)
	}); err != nil {
		return err
	}
	if err := st.Stage().Commit(); err != nil {
		return err
	}
	if err := c.logDB.Write(tx.Receipts{receipt}); err != nil {
		return err
	}

	head := &Block{Number: 0, Time: gen.LaunchTime()}
	if err := saveRLP(c.blockStore, numberKey(0), head); err != nil {
		return err
	}
	if err := saveRLP(c.propStore, headKey, head); err != nil {
		return err
	}
	if err := c.propStore.Put(genesisIDKey, c.genesisID.Bytes()); err != nil {
		return err
	}
	c.head.Store(head)
	c.updateGauges(st)
	logger.Info("genesis initialized", "id", c.genesisID, "name", gen.Name())
	return nil
}

// GenesisID returns the id of the genesis the chain was built from.
func (c *Chain) GenesisID() sarco.Bytes32 {
	return c.genesisID
}

// Head returns the newest packed block.
func (c *Chain) Head() *Block {
	return c.head.Load()
}

// GetBlock returns the block at num. It errors with a not-found error when
// num is beyond head.
func (c *Chain) GetBlock(num uint32) (*Block, error) {
	var b Block
	if err := loadRLP(c.blockStore, numberKey(num), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// IsNotFound returns whether err is a not-found error from GetBlock.
func (c *Chain) IsNotFound(err error) bool {
	return c.blockStore.IsNotFound(err)
}

// NewTicker creates a Waiter that is woken every time a block is packed.
func (c *Chain) NewTicker() co.Waiter {
	return c.tick.NewWaiter()
}

// NewState returns a view over the committed state.
func (c *Chain) NewState() *state.State {
	return c.stater.NewState()
}

// LogDB returns the event log.
func (c *Chain) LogDB() *logdb.LogDB {
	return c.logDB
}

// Pack executes calls in order as a new block at blockTime, then commits the
// state and indexes the events. Reverted calls produce reverted receipts and
// leave no change; an infrastructure error aborts the whole block.
func (c *Chain) Pack(blockTime uint64, calls ...*tx.Call) (*Block, tx.Receipts, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	parent := c.Head()
	if blockTime < parent.Time {
		return nil, nil, errors.Errorf("block time %d before head time %d", blockTime, parent.Time)
	}

	var (
		block = &Block{Number: parent.Number + 1, Time: blockTime, Size: uint32(len(calls))}
		st    = c.stater.NewState()
		rt    = runtime.New(st, &xenv.BlockContext{Number: block.Number, Time: block.Time})
	)

	receipts := make(tx.Receipts, 0, len(calls))
	for i, call := range calls {
		receipt, err := rt.ExecuteClause(call.Caller, call.Clause)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "pack call %d", i)
		}
		receipt.Index = uint32(i)
		receipts = append(receipts, receipt)
	}

	if err := st.Stage().Commit(); err != nil {
		return nil, nil, err
	}
	if err := c.logDB.Write(receipts); err != nil {
		return nil, nil, errors.WithMessage(err, "write logs")
	}
	if err := saveRLP(c.blockStore, numberKey(block.Number), block); err != nil {
		return nil, nil, errors.WithMessage(err, "save block")
	}
	if err := saveRLP(c.propStore, headKey, block); err != nil {
		return nil, nil, errors.WithMessage(err, "save head")
	}
	c.head.Store(block)
	c.tick.Broadcast()

	c.updateGauges(st)
	metricBlockCount().Add(1)
	logger.Debug("packed block", "number", block.Number, "time", block.Time, "calls", len(calls))
	return block, receipts, nil
}

// updateGauges reports the stake totals in whole units.
func (c *Chain) updateGauges(st *state.State) {
	metricHeadNumber().Set(int64(c.Head().Number))

	stk := builtin.Staking.Native(st, nil)
	if stakers, err := stk.TotalStakers(); err == nil {
		metricStakers().Set(int64(stakers))
	}
	total, err := stk.TotalStaked()
	if err != nil {
		return
	}
	decimals, err := stk.Asset().Decimals()
	if err != nil {
		return
	}
	if whole := total.Div(total, sarco.Unit(decimals)); whole.IsInt64() {
		metricTotalStaked().Set(whole.Int64())
	}
}

func numberKey(num uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, num)
}

func saveRLP(w kv.Putter, key []byte, val any) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val any) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package checkpoints keeps append-only histories of values labelled with a
// non-decreasing index, and answers "what was the value as of index i".
//
// A history is laid out in contract storage as an array: its length at the
// history position, and entry n at blake2b(n, position).
package checkpoints

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/builtin/solidity"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// Checkpoint is a value recorded at an index.
type Checkpoint struct {
	Index uint32
	Value *big.Int
}

type entryPos uint64

func (p entryPos) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(p))
}

// History is the checkpoint sequence of a single key.
type History struct {
	length  *solidity.Uint256
	entries *solidity.Mapping[entryPos, *Checkpoint]
}

// NewHistory creates a history rooted at pos.
func NewHistory(context *solidity.Context, pos sarco.Bytes32) *History {
	return &History{
		length:  solidity.NewUint256(context, pos),
		entries: solidity.NewMapping[entryPos, *Checkpoint](context, pos),
	}
}

// Len returns the number of checkpoints.
func (h *History) Len() (uint64, error) {
	n, err := h.length.Get()
	if err != nil {
		return 0, errors.WithMessage(err, "history length")
	}
	return n.Uint64(), nil
}

// At returns the checkpoint at position pos, which must be less than Len.
func (h *History) At(pos uint64) (*Checkpoint, error) {
	cp, err := h.entries.Get(entryPos(pos))
	if err != nil {
		return nil, errors.WithMessagef(err, "history entry %d", pos)
	}
	if cp.Value == nil {
		cp.Value = new(big.Int)
	}
	return cp, nil
}

// Latest returns the last checkpoint. ok is false if the history is empty.
func (h *History) Latest() (cp *Checkpoint, ok bool, err error) {
	n, err := h.Len()
	if err != nil || n == 0 {
		return nil, false, err
	}
	cp, err = h.At(n - 1)
	if err != nil {
		return nil, false, err
	}
	return cp, true, nil
}

// LatestValue returns the value of the last checkpoint, zero if the history is empty.
func (h *History) LatestValue() (*big.Int, error) {
	cp, ok, err := h.Latest()
	if err != nil {
		return nil, err
	}
	if !ok {
		return new(big.Int), nil
	}
	return cp.Value, nil
}

// Push records value at index. A push at the index of the last checkpoint
// overwrites it, so there is at most one checkpoint per index.
// It panics if index is lower than the index of the last checkpoint.
func (h *History) Push(index uint32, value *big.Int) error {
	n, err := h.Len()
	if err != nil {
		return err
	}
	cp := &Checkpoint{Index: index, Value: new(big.Int).Set(value)}

	if n > 0 {
		last, err := h.At(n - 1)
		if err != nil {
			return err
		}
		if index < last.Index {
			panic(fmt.Sprintf("checkpoints: index %d lower than last index %d", index, last.Index))
		}
		if index == last.Index {
			return h.entries.Set(entryPos(n-1), cp)
		}
	}
	if err := h.entries.Set(entryPos(n), cp); err != nil {
		return err
	}
	h.length.Set(new(big.Int).SetUint64(n + 1))
	return nil
}

// UpperLookup returns the value of the latest checkpoint whose index is lower
// than or equal to index, or zero if there is none.
func (h *History) UpperLookup(index uint32) (*big.Int, error) {
	n, err := h.Len()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return new(big.Int), nil
	}

	last, err := h.At(n - 1)
	if err != nil {
		return nil, err
	}
	if index >= last.Index {
		return last.Value, nil
	}

	// find the first checkpoint with Index > index; the last one is known to be
	lo, hi := uint64(0), n-1
	for lo < hi {
		mid := lo + (hi-lo)/2
		cp, err := h.At(mid)
		if err != nil {
			return nil, err
		}
		if cp.Index > index {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo == 0 {
		return new(big.Int), nil
	}
	cp, err := h.At(lo - 1)
	if err != nil {
		return nil, err
	}
	return cp.Value, nil
}

// Checkpoints returns up to limit checkpoints starting at position offset.
func (h *History) Checkpoints(offset, limit uint64) ([]*Checkpoint, error) {
	n, err := h.Len()
	if err != nil {
		return nil, err
	}
	if offset >= n {
		return nil, nil
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	out := make([]*Checkpoint, 0, end-offset)
	for i := offset; i < end; i++ {
		cp, err := h.At(i)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// Store keeps one history per key, all under a common base position.
type Store[K solidity.Key] struct {
	context *solidity.Context
	basePos sarco.Bytes32
}

// NewStore creates a store of histories.
func NewStore[K solidity.Key](context *solidity.Context, basePos sarco.Bytes32) *Store[K] {
	return &Store[K]{context: context, basePos: basePos}
}

// Of returns the history of key.
func (s *Store[K]) Of(key K) *History {
	return NewHistory(s.context, sarco.Blake2b(key.Bytes(), s.basePos.Bytes()))
}

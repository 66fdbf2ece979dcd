// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/stackedmap"
)

// Error wraps failures of the underlying store or of storage codecs.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr sarco.Address
	key  sarco.Bytes32
}

// State is the storage of every builtin contract as seen by one block being
// packed or one API query. Writes stay in memory until staged and committed.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

func newState(stater *Stater) *State {
	s := &State{stater: stater}
	s.sm = stackedmap.New(func(key storageKey) (rlp.RawValue, bool, error) {
		raw, err := stater.load(key)
		if err != nil {
			return nil, false, err
		}
		return raw, true, nil
	})
	return s
}

// GetStorage reads a word. Unset slots read as zero.
func (s *State) GetStorage(addr sarco.Address, key sarco.Bytes32) (sarco.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return sarco.Bytes32{}, err
	}
	if len(raw) == 0 {
		return sarco.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return sarco.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// structured values have no word form, they are identified by hash
		return sarco.Blake2b(raw), nil
	}
	return sarco.BytesToBytes32(content), nil
}

// SetStorage writes a word. Writing zero clears the slot.
func (s *State) SetStorage(addr sarco.Address, key, value sarco.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns the rlp encoded slot, empty when unset.
func (s *State) GetRawStorage(addr sarco.Address, key sarco.Bytes32) (rlp.RawValue, error) {
	raw, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return raw, nil
}

func (s *State) SetRawStorage(addr sarco.Address, key sarco.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage stores whatever enc produces under key.
func (s *State) EncodeStorage(addr sarco.Address, key sarco.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage hands the raw slot to dec. Slots never written are passed as
// empty.
func (s *State) DecodeStorage(addr sarco.Address, key sarco.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint marks the current writes, so a failed clause can be undone
// with RevertTo.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo drops every write made after the given checkpoint.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage freezes the pending writes into a Stage for committing.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(key storageKey, value rlp.RawValue) bool {
		changes[key] = value
		return true
	})
	return &Stage{stater: s.stater, changes: changes}
}

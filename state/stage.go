// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Stage abstracts changes on the storage.
type Stage struct {
	stater  *Stater
	changes map[storageKey]rlp.RawValue
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes into the underlying store atomically.
func (s *Stage) Commit() error {
	s.stater.lock.Lock()
	defer s.stater.lock.Unlock()

	bulk := s.stater.store.Bulk()
	for key, raw := range s.changes {
		var err error
		if len(raw) == 0 {
			err = bulk.Delete(storageKeyBytes(key))
		} else {
			err = bulk.Put(storageKeyBytes(key), raw)
		}
		if err != nil {
			return errors.Wrap(err, "stage storage")
		}
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit storage")
	}
	for key, raw := range s.changes {
		s.stater.cache.Add(key, raw)
	}
	metricCommittedSlots().Add(int64(len(s.changes)))
	return nil
}

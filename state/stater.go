// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/sarcophagus-org/sarco-ledger/kv"
)

const (
	storageBucket    = kv.Bucket("s")
	defaultCacheSize = 8192
)

// Stater is the state creator.
// States created by the same stater share the cache of committed storage.
type Stater struct {
	store kv.Store
	cache *lru.Cache
	lock  sync.RWMutex // guards committing against cache filling
}

// NewStater create a new stater.
func NewStater(store kv.Store) *Stater {
	cache, _ := lru.New(defaultCacheSize)
	return &Stater{
		store: storageBucket.NewStore(store),
		cache: cache,
	}
}

// NewState create a new state object over the committed storage.
func (s *Stater) NewState() *State {
	return newState(s)
}

func (s *Stater) load(key storageKey) (rlp.RawValue, error) {
	if v, ok := s.cache.Get(key); ok {
		metricCacheHitMiss().AddWithLabel(1, map[string]string{"event": "hit"})
		return v.(rlp.RawValue), nil
	}
	metricCacheHitMiss().AddWithLabel(1, map[string]string{"event": "miss"})

	s.lock.RLock()
	defer s.lock.RUnlock()

	raw, err := s.store.Get(storageKeyBytes(key))
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, err
		}
		raw = nil
	}
	s.cache.Add(key, rlp.RawValue(raw))
	return raw, nil
}

func storageKeyBytes(key storageKey) []byte {
	return append(append(make([]byte, 0, len(key.addr)+len(key.key)), key.addr[:]...), key.key[:]...)
}

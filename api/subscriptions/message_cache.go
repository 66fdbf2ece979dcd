// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// messageCache shares encoded block messages among subscribers.
type messageCache struct {
	cache *lru.Cache
	mu    sync.Mutex
}

func newMessageCache(size uint32) *messageCache {
	size = min(max(size, 1), 1000)
	cache, err := lru.New(int(size))
	if err != nil {
		// only for size < 1
		panic(fmt.Errorf("create message cache: %v", err))
	}
	return &messageCache{cache: cache}
}

// GetOrAdd returns the message of block num, creating it on miss. The bool
// result reports whether the message was created.
func (mc *messageCache) GetOrAdd(num uint32, create func() (any, error)) (json.RawMessage, bool, error) {
	if msg, ok := mc.cache.Get(num); ok {
		return msg.(json.RawMessage), false, nil
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	if msg, ok := mc.cache.Get(num); ok {
		return msg.(json.RawMessage), false, nil
	}

	obj, err := create()
	if err != nil {
		return nil, false, err
	}
	msg, err := json.Marshal(obj)
	if err != nil {
		return nil, false, err
	}
	mc.cache.Add(num, json.RawMessage(msg))
	return msg, true, nil
}

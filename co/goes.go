// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Goes tracks a group of goroutines so their owner can wait for all of them
// when shutting down.
type Goes struct {
	wg sync.WaitGroup
}

func (g *Goes) Go(f func()) { g.wg.Go(f) }

func (g *Goes) Wait() { g.wg.Wait() }

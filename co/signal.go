// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Waiter yields the channel closed by the next broadcast.
type Waiter interface {
	C() <-chan struct{}
}

// Signal fans one event out to any number of waiters, each of which can wait
// on it inside a select. The zero value is ready to use.
type Signal struct {
	mu    sync.Mutex
	round chan struct{}
}

func (s *Signal) current() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round == nil {
		s.round = make(chan struct{})
	}
	return s.round
}

// Broadcast wakes every waiter of the current round and starts a new one.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round != nil {
		close(s.round)
	}
	s.round = make(chan struct{})
}

// NewWaiter joins the current round.
func (s *Signal) NewWaiter() Waiter {
	return &waiter{s, s.current()}
}

type waiter struct {
	s    *Signal
	next chan struct{}
}

// C returns the channel of the round the waiter is in, then moves the waiter
// to the newest round. A broadcast missed between two calls is still seen.
func (w *waiter) C() <-chan struct{} {
	ch := w.next
	select {
	case <-ch:
		w.next = w.s.current()
	default:
	}
	return ch
}

/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package lock provides a keyed mutual-exclusion primitive: callers contend
// for a named key instead of a single shared mutex, so unrelated keys never
// block each other while same-key waiters are served in strict FIFO order.
package lock

import (
	"github.com/nabbar/aionet/runtime"

	liblog "github.com/nabbar/aionet/logger"
)

// Guard represents exclusive ownership of one key. Release must be called
// exactly once; the next waiter for the key (if any) is granted ownership
// when it returns.
type Guard interface {
	// Key returns the name this guard holds.
	Key() string
	// Release drops ownership, handing the key to the next queued waiter
	// or removing the key if none remain.
	Release() error
}

// HandlerFunc receives the Guard once the key is granted.
type HandlerFunc func(g Guard)

// Locker serializes access to named keys. Unrelated keys run fully in
// parallel; same-key callers are served strictly in the order they called
// Acquire.
type Locker interface {
	// Acquire grants handler the key immediately if uncontended, or queues
	// it behind the current holder and any earlier waiters.
	Acquire(key string, handler HandlerFunc) error
	// Close stops accepting new keys and stops the lock's strand. A Release
	// after Close returns ErrorLockClosed, and waiters still queued are not
	// granted their key.
	Close()
}

// Option configures a Locker at construction time.
type Option func(*locker)

func WithLogger(l liblog.Logger) Option {
	return func(lk *locker) { lk.log = liblog.OrDiscard(l) }
}

func WithRuntime(rt runtime.Runtime) Option {
	return func(lk *locker) { lk.rt = rt }
}

// New builds a Locker backed by its own strand, serializing bookkeeping
// without per-key mutexes.
func New(opts ...Option) Locker {
	lk := &locker{
		log:  liblog.Discard(),
		rt:   runtime.New(),
		keys: make(map[string]*waitQueue),
	}
	for _, o := range opts {
		o(lk)
	}
	lk.strand = lk.rt.NewStrand()
	return lk
}

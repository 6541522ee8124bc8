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

package lock

import (
	"sync/atomic"

	"github.com/nabbar/aionet/runtime"

	liblog "github.com/nabbar/aionet/logger"
)

// waitQueue holds one key's FIFO of handlers still waiting for ownership.
// The current holder is not in the slice; it is represented implicitly by
// the outstanding guard.
type waitQueue struct {
	waiters []HandlerFunc
}

type locker struct {
	log    liblog.Logger
	rt     runtime.Runtime
	strand runtime.Strand

	keys   map[string]*waitQueue
	closed bool
}

type guard struct {
	lk      *locker
	key     string
	release atomic.Bool
}

func (g *guard) Key() string { return g.key }

func (g *guard) Release() error {
	if !g.release.CompareAndSwap(false, true) {
		return ErrorGuardExpired.Error()
	}

	done := make(chan struct{})
	if !g.lk.strand.Post(func() {
		defer close(done)
		g.lk.release(g.key)
	}) {
		return ErrorLockClosed.Error()
	}
	<-done

	return nil
}

func (lk *locker) Acquire(key string, handler HandlerFunc) error {
	if handler == nil {
		return nil
	}

	done := make(chan error, 1)

	posted := lk.strand.Post(func() {
		if lk.closed {
			done <- ErrorLockClosed.Error()
			return
		}

		q, held := lk.keys[key]
		if !held {
			lk.keys[key] = &waitQueue{}
			done <- nil
			g := &guard{lk: lk, key: key}
			lk.rt.Post(func() { handler(g) })
			return
		}

		q.waiters = append(q.waiters, handler)
		done <- nil
	})

	if !posted {
		return ErrorLockClosed.Error()
	}

	return <-done
}

// release runs on the lock's strand: it hands the key to the next queued
// waiter, or removes the key entirely if the queue is empty.
func (lk *locker) release(key string) {
	q, ok := lk.keys[key]
	if !ok {
		return
	}

	if len(q.waiters) == 0 {
		delete(lk.keys, key)
		return
	}

	next := q.waiters[0]
	q.waiters = q.waiters[1:]

	g := &guard{lk: lk, key: key}
	lk.rt.Post(func() { next(g) })
}

func (lk *locker) Close() {
	done := make(chan struct{})
	posted := lk.strand.Post(func() {
		lk.closed = true
		close(done)
	})
	if posted {
		<-done
	}
	lk.strand.Close()
}

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

package timer

import (
	"time"

	libifo "github.com/nabbar/aionet/info"
	liblog "github.com/nabbar/aionet/logger"
	"github.com/nabbar/aionet/runtime"
)

type timer struct {
	id     string
	status Status
	log    liblog.Logger
	rt     runtime.Runtime
	strand runtime.Strand

	deadline time.Time
	second   *time.Duration

	fired    bool
	canceled bool
	err      error
	waiters  []HandlerFunc

	fireCh chan struct{}
	stop   func() bool
}

// newTimer starts the underlying clock(s) immediately: first fires after
// first, and if second is non-nil (the "both" overload), waits an
// additional *second on the steady clock before completing. Every state
// transition (fire, cancel, waiter registration) is serialized on the
// timer's own strand.
func newTimer(o *options, status Status, first time.Duration, second *time.Duration) *timer {
	t := &timer{
		id:       newID(),
		status:   status,
		log:      o.log,
		rt:       o.rt,
		strand:   o.rt.NewStrand(),
		deadline: time.Now().Add(first),
		second:   second,
		fireCh:   make(chan struct{}),
	}

	tm := time.AfterFunc(first, t.firstLeg)
	t.stop = tm.Stop

	return t
}

func (t *timer) firstLeg() {
	if t.second == nil {
		t.complete(nil)
		return
	}

	tm := time.AfterFunc(*t.second, func() { t.complete(nil) })
	t.strand.Post(func() { t.stop = tm.Stop })
}

func (t *timer) complete(err error) {
	t.strand.Post(func() {
		if t.fired || t.canceled {
			return
		}
		t.fired = true
		t.err = err
		waiters := t.waiters
		t.waiters = nil

		close(t.fireCh)

		for _, w := range waiters {
			w := w
			t.rt.Post(func() { w(err) })
		}
	})
}

func (t *timer) ID() string     { return t.id }
func (t *timer) Status() Status { return t.status }

// AsyncWait enqueues handler on the timer's strand: if the timer already
// fired or was canceled, handler runs immediately (dispatched off-strand so
// it never blocks the strand that is calling it).
func (t *timer) AsyncWait(handler HandlerFunc) {
	if handler == nil {
		return
	}

	t.strand.Post(func() {
		if t.fired || t.canceled {
			err := t.err
			t.rt.Post(func() { handler(err) })
			return
		}
		t.waiters = append(t.waiters, handler)
	})
}

// Cancel aborts outstanding waits with ErrorCanceled. Idempotent; a no-op
// once the timer has already fired.
func (t *timer) Cancel() {
	t.strand.Post(func() {
		if t.fired || t.canceled {
			return
		}
		t.canceled = true
		t.err = ErrorCanceled.Error()
		waiters := t.waiters
		t.waiters = nil

		if t.stop != nil {
			t.stop()
		}
		close(t.fireCh)

		for _, w := range waiters {
			w := w
			err := t.err
			t.rt.Post(func() { w(err) })
		}
	})
}

func (t *timer) Info() libifo.Info {
	i := libifo.New()
	i.Set(libifo.KeyTimerID, t.id)
	i.Set(libifo.KeyTimerType, t.status.String())
	return i
}

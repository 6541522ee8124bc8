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

// Package timer schedules one-shot completions against either the system
// (wall) clock or the steady (monotonic) clock, picking whichever avoids
// wall-clock jitter for the requested horizon, and stamps every Timer with a
// google/uuid identifier for cross-referencing in logs and metrics.
package timer

import (
	"time"

	"github.com/google/uuid"

	libifo "github.com/nabbar/aionet/info"
	liblog "github.com/nabbar/aionet/logger"
	"github.com/nabbar/aionet/runtime"
)

// nearHorizon is the threshold below which a time_point is scheduled on the
// steady clock instead of the system clock, to avoid wall-clock adjustment
// jitter for near-future events.
const nearHorizon = 1 * time.Second

// Status reports which underlying clock(s) a Timer was scheduled against.
type Status int

const (
	StatusNone Status = iota
	StatusSystem
	StatusSteady
	StatusBoth
)

func (s Status) String() string {
	switch s {
	case StatusSystem:
		return "system"
	case StatusSteady:
		return "steady"
	case StatusBoth:
		return "both"
	default:
		return "none"
	}
}

// HandlerFunc receives the outcome of a single wait: nil on normal fire,
// ErrorCanceled if Cancel was called first.
type HandlerFunc func(err error)

// Timer is a one-shot, cancelable completion scheduled against the system
// and/or steady clock.
type Timer interface {
	// ID returns the google/uuid identifier stamped on this timer.
	ID() string
	// Status reports which clock(s) back this timer.
	Status() Status
	// AsyncWait enqueues handler for the timer's fire (or cancellation). If
	// the timer already fired and no waiter is queued, handler runs as soon
	// as it is registered.
	AsyncWait(handler HandlerFunc)
	// Cancel aborts outstanding waits with a cancellation error. Idempotent.
	Cancel()
	// Info exposes the timer's identifier and clock kind for the caller's
	// own metadata map.
	Info() libifo.Info
}

// Option configures a Timer at construction time.
type Option func(*options)

type options struct {
	log liblog.Logger
	rt  runtime.Runtime
}

func WithLogger(l liblog.Logger) Option {
	return func(o *options) { o.log = liblog.OrDiscard(l) }
}

func WithRuntime(r runtime.Runtime) Option {
	return func(o *options) { o.rt = r }
}

func newOptions(opts ...Option) *options {
	o := &options{log: liblog.Discard(), rt: runtime.New()}
	for _, f := range opts {
		f(o)
	}
	return o
}

func newID() string {
	return uuid.NewString()
}

// At schedules a fire at tp: on the system clock if tp is more than 1s in
// the future, otherwise on the steady clock (time.Duration offset) to avoid
// wall-clock jitter for near-future events.
func At(tp time.Time, opts ...Option) Timer {
	o := newOptions(opts...)
	d := time.Until(tp)
	status := StatusSystem
	if d <= nearHorizon {
		status = StatusSteady
	}
	return newTimer(o, status, d, nil)
}

// After schedules a fire after du on the steady clock.
func After(du time.Duration, opts ...Option) Timer {
	o := newOptions(opts...)
	return newTimer(o, StatusSteady, du, nil)
}

// AtThenAfter waits until tp on the system clock, then waits an additional
// du on the steady clock before firing.
func AtThenAfter(tp time.Time, du time.Duration, opts ...Option) Timer {
	o := newOptions(opts...)
	first := time.Until(tp)
	return newTimer(o, StatusBoth, first, &du)
}

// AfterRef fires du after ref's own scheduled fire point, inheriting ref's
// clock choice (system vs. steady). The new timer's delay is computed from
// ref's scheduled deadline at registration time, not from ref actually
// firing.
func AfterRef(ref Timer, du time.Duration, opts ...Option) Timer {
	o := newOptions(opts...)

	r, ok := ref.(*timer)
	if !ok {
		return newTimer(o, StatusSteady, du, nil)
	}

	status := r.status
	if status == StatusBoth {
		status = StatusSteady
	}

	d := time.Until(r.deadline) + du
	return newTimer(o, status, d, nil)
}

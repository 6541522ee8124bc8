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

// Package runtime provides a shared worker pool ("Runtime") and per-object
// serial executors ("Strand") used by every other package in this module to
// serialize stateful mutation without per-object mutexes. It also exposes a
// small cancelable key-value registry (Values) callers can use to publish
// runtime-scoped singletons to code that only has the Runtime in hand.
package runtime

import (
	"os"
	"runtime"
	"time"

	libctx "github.com/nabbar/aionet/context"
	liblog "github.com/nabbar/aionet/logger"
	"github.com/nabbar/aionet/metrics"
)

// Task is a unit of work posted to a Runtime or a Strand.
type Task func()

// Strand is a serial executor: tasks posted through the same Strand run one
// at a time, in submission order. Tasks posted through different Strands may
// run concurrently.
type Strand interface {
	// Post enqueues task for execution on this strand. It returns false if
	// the strand is already closed, in which case task is never run.
	Post(task Task) bool

	// Close stops the strand after draining any tasks already queued. It
	// blocks until the drain goroutine has exited.
	Close()
}

// Runtime is a process-wide executor owning a bounded worker pool.
type Runtime interface {
	// Post schedules task for execution on any worker.
	Post(task Task)

	// NewStrand returns a new Strand bound to this runtime. The strand's
	// drain goroutine exits when the runtime is stopped or the strand is
	// closed, whichever happens first.
	NewStrand() Strand

	// Run marks the runtime started. It is idempotent.
	Run() error

	// RunJoin starts the runtime and blocks until Stop is called and every
	// in-flight task has completed.
	RunJoin() error

	// Stop cancels the runtime's context; tasks already running finish, new
	// Post calls are rejected.
	Stop()

	// Join blocks until every task posted before Stop has completed.
	Join()

	// InstallSignalHandler registers handler for SIGINT/SIGTERM. If handler
	// is nil, the default behavior (Stop) is installed.
	InstallSignalHandler(handler func(sig os.Signal))

	// IsRunning reports whether the runtime is between Run and Stop.
	IsRunning() bool

	// Values returns the registry shared values can be stashed in, keyed
	// by name (a broker, a metrics registry, any singleton a handler
	// posted elsewhere needs to reach). It is cleared when the runtime
	// stops and repopulated fresh on the next Run.
	Values() libctx.Config[string]
}

// Option customizes a Runtime at construction.
type Option func(*rt)

// WithWorkers overrides the worker concurrency cap (default:
// runtime.GOMAXPROCS(0)).
func WithWorkers(n int) Option {
	return func(r *rt) {
		if n > 0 {
			r.workers = int64(n)
		}
	}
}

// WithLogger attaches a Logger used for lifecycle and task-panic reporting.
func WithLogger(l liblog.Logger) Option {
	return func(r *rt) {
		r.log = liblog.OrDiscard(l)
	}
}

// WithWatchdog overrides the default 60s watchdog duration exposed to
// callers needing a per-attempt timeout (resolver, client connector).
func WithWatchdog(d time.Duration) Option {
	return func(r *rt) {
		if d > 0 {
			r.watchdog = d
		}
	}
}

// WithMetrics attaches a Collectors set: every Post increments
// RuntimeTasksPosted, and every Strand created from this Runtime tracks its
// queued-task count in RuntimeStrandQueueDepth.
func WithMetrics(m *metrics.Collectors) Option {
	return func(r *rt) {
		r.metrics = m
	}
}

// DefaultWatchdog is the default per-attempt timeout used by the resolver
// and the client connector when no Runtime override is supplied.
const DefaultWatchdog = 60 * time.Second

// New returns a Runtime not yet started; call Run or RunJoin to start it.
func New(opts ...Option) Runtime {
	r := &rt{
		workers:  int64(runtime.GOMAXPROCS(0)),
		log:      liblog.Discard(),
		watchdog: DefaultWatchdog,
	}

	for _, o := range opts {
		o(r)
	}

	r.init()

	return r
}

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

package runtime

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/semaphore"

	libatm "github.com/nabbar/aionet/atomic"
	libctx "github.com/nabbar/aionet/context"
	liblog "github.com/nabbar/aionet/logger"
	"github.com/nabbar/aionet/metrics"
)

type rt struct {
	workers  int64
	watchdog time.Duration
	log      liblog.Logger
	metrics  *metrics.Collectors

	running libatm.Value[bool]

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	values libctx.Config[string]

	sigCh chan os.Signal
	sigDone chan struct{}
}

func (r *rt) init() {
	r.sem = semaphore.NewWeighted(r.workers)
	r.ctx, r.cancel = context.WithCancel(context.Background())
	r.values = libctx.New[string](context.Background())
}

func (r *rt) Values() libctx.Config[string] {
	r.mu.Lock()
	v := r.values
	r.mu.Unlock()
	return v
}

func (r *rt) IsRunning() bool {
	return r.running.Load()
}

func (r *rt) Run() error {
	if r.running.Load() {
		return ErrorAlreadyRunning.Error()
	}

	r.mu.Lock()
	if r.ctx.Err() != nil {
		r.ctx, r.cancel = context.WithCancel(context.Background())
		r.values = libctx.New[string](context.Background())
	}
	r.mu.Unlock()

	r.running.Store(true)
	r.log.Info("runtime started")

	return nil
}

func (r *rt) RunJoin() error {
	if err := r.Run(); err != nil {
		return err
	}

	r.Join()
	return nil
}

func (r *rt) Stop() {
	if !r.running.CompareAndSwap(true, false) {
		return
	}

	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	r.mu.Lock()
	v := r.values
	r.mu.Unlock()
	if v != nil {
		v.Clean()
	}

	r.log.Info("runtime stopping")
}

func (r *rt) Join() {
	r.wg.Wait()
}

func (r *rt) Post(task Task) {
	if task == nil {
		return
	}

	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.RuntimeTasksPosted.Inc()
	}

	r.wg.Add(1)

	go func() {
		defer r.wg.Done()

		if err := r.sem.Acquire(ctx, 1); err != nil {
			r.log.Debug("task dropped, runtime stopped before it could run")
			return
		}
		defer r.sem.Release(1)

		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("recovered from panic in posted task", liblog.Fields{"panic": rec})
			}
		}()

		task()
	}()
}

func (r *rt) NewStrand() Strand {
	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()

	return newStrand(ctx, r.log, r.metrics)
}

func (r *rt) InstallSignalHandler(handler func(sig os.Signal)) {
	if r.sigCh != nil {
		signal.Stop(r.sigCh)
		close(r.sigDone)
	}

	r.sigCh = make(chan os.Signal, 1)
	r.sigDone = make(chan struct{})

	signal.Notify(r.sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func(ch chan os.Signal, done chan struct{}) {
		select {
		case sig := <-ch:
			if handler != nil {
				handler(sig)
			} else {
				r.Stop()
			}
		case <-done:
		}
	}(r.sigCh, r.sigDone)
}

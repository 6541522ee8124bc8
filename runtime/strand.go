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
	"sync"

	liblog "github.com/nabbar/aionet/logger"
	"github.com/nabbar/aionet/metrics"
)

// strand is an unbounded MPSC queue drained by a single goroutine, giving the
// STRAND-SERIAL guarantee: tasks posted by any number of goroutines run one
// at a time, in the order Post was called.
type strand struct {
	log     liblog.Logger
	metrics *metrics.Collectors

	mu     sync.Mutex
	q      []Task
	closed bool

	wake    chan struct{}
	closeCh chan struct{}
	done    chan struct{}
}

func newStrand(ctx context.Context, log liblog.Logger, m *metrics.Collectors) *strand {
	s := &strand{
		log:     log,
		metrics: m,
		wake:    make(chan struct{}, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}

	go s.run(ctx)

	return s
}

func (s *strand) Post(task Task) bool {
	if task == nil {
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.q = append(s.q, task)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RuntimeStrandQueueDepth.Inc()
	}

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return true
}

func (s *strand) pop() (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.q) == 0 {
		return nil, false
	}

	t := s.q[0]
	s.q[0] = nil
	s.q = s.q[1:]
	return t, true
}

func (s *strand) runOne(t Task) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("recovered from panic in strand task", liblog.Fields{"panic": rec})
		}
	}()

	t()
}

func (s *strand) drain() {
	for {
		t, ok := s.pop()
		if !ok {
			return
		}
		if s.metrics != nil {
			s.metrics.RuntimeStrandQueueDepth.Dec()
		}
		s.runOne(t)
	}
}

func (s *strand) run(ctx context.Context) {
	defer close(s.done)

	for {
		s.drain()

		select {
		case <-s.wake:
			continue
		case <-s.closeCh:
			s.drain()
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *strand) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.closeCh)
	<-s.done
}

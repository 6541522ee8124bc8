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

package broker

import (
	"time"

	"github.com/hashicorp/go-multierror"

	liblog "github.com/nabbar/aionet/logger"
)

// sweepLoop runs the idle-trim sweeper: a time.Ticker selecting against a
// stop channel, one tick reclaiming at most one idle connection per
// over-threshold bucket (a gradual drain, not a burst).
func (b *broker) sweepLoop() {
	defer close(b.doneCh)

	t := time.NewTicker(b.sweepInterval)
	defer t.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-t.C:
			b.sweepOnce()
		}
	}
}

func (b *broker) sweepOnce() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.BrokerPoolSweepTotal.Inc()
	}

	now := time.Now()
	var merr error

	for poolKey, e := range b.pools {
		var emptySNI string
		removable := make([]string, 0)

		for sni, bk := range e.buckets {
			if b.metrics != nil {
				b.metrics.BrokerPoolIdle.WithLabelValues(poolKey, sni).Set(float64(len(bk.idle)))
				b.metrics.BrokerPoolWaiters.WithLabelValues(poolKey, sni).Set(float64(bk.waiters))
			}

			if bk.waiters > 0 {
				continue
			}
			if now.Sub(bk.lastUsage) < b.idleThreshold {
				continue
			}

			if len(bk.idle) > 0 {
				pc := bk.idle[0]
				bk.idle = bk.idle[1:]
				if err := pc.conn.Close(); err != nil {
					merr = multierror.Append(merr, err)
				}
				close(pc.release)
				continue
			}

			if sni == "" {
				emptySNI = sni
				continue
			}
			removable = append(removable, sni)
		}

		for _, sni := range removable {
			delete(e.buckets, sni)
		}
		// the empty-SNI fallback bucket is removed last, once every
		// other bucket referencing it as a fallback is already gone, and
		// only once it is itself past the idle threshold — otherwise a
		// connection currently checked out of this bucket (idle empty,
		// no waiters, but recently used) would have its bucket and pool
		// entry deleted out from under it.
		if len(e.buckets) == 1 {
			if bk, ok := e.buckets[emptySNI]; ok && len(bk.idle) == 0 && bk.waiters == 0 && now.Sub(bk.lastUsage) >= b.idleThreshold {
				delete(e.buckets, emptySNI)
			}
		}

		if len(e.buckets) == 0 {
			delete(b.pools, poolKey)
		}
	}

	if merr != nil {
		b.log.Warn("broker sweep closed idle connections with errors", liblog.Fields{"error": merr})
	}
}

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

// Package metrics exposes prometheus collectors for the broker pool and the
// runtime worker pool. Registration is opt-in: a caller that never calls
// Register pays no cost beyond the collector allocations below.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors bundles every gauge/counter this module contributes.
type Collectors struct {
	BrokerPoolIdle       *prometheus.GaugeVec
	BrokerPoolWaiters    *prometheus.GaugeVec
	BrokerPoolSweepTotal prometheus.Counter

	RuntimeTasksPosted      prometheus.Counter
	RuntimeStrandQueueDepth prometheus.Gauge
}

// New allocates a fresh, unregistered Collectors set.
func New() *Collectors {
	return &Collectors{
		BrokerPoolIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "broker_pool_idle",
			Help: "Number of idle pooled connections per pool key and SNI.",
		}, []string{"pool_key", "sni"}),
		BrokerPoolWaiters: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "broker_pool_waiters",
			Help: "Number of callers currently waiting for a connection per pool key and SNI.",
		}, []string{"pool_key", "sni"}),
		BrokerPoolSweepTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "broker_pool_sweeps_total",
			Help: "Total number of idle-trim sweep cycles run by the broker.",
		}),
		RuntimeTasksPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "runtime_tasks_posted_total",
			Help: "Total number of tasks posted to the runtime worker pool.",
		}),
		RuntimeStrandQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "runtime_strand_queue_depth",
			Help: "Approximate aggregate queue depth across active strands.",
		}),
	}
}

// Register registers every collector with reg. Safe to call once per
// Collectors instance.
func Register(reg prometheus.Registerer, c *Collectors) error {
	collectors := []prometheus.Collector{
		c.BrokerPoolIdle,
		c.BrokerPoolWaiters,
		c.BrokerPoolSweepTotal,
		c.RuntimeTasksPosted,
		c.RuntimeStrandQueueDepth,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

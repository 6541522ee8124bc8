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

// Package broker pools message.Message handles keyed by destination, role
// and TLS SNI, handing out idle connections before asking a transport
// Connector to dial a fresh one, and trimming long-idle buckets on a
// periodic sweep.
package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/nabbar/aionet/metrics"
	"github.com/nabbar/aionet/message"
	"github.com/nabbar/aionet/runtime"
	"github.com/nabbar/aionet/transport"
	tcfg "github.com/nabbar/aionet/transport/config"

	liblog "github.com/nabbar/aionet/logger"
)

// DefaultSweepInterval is how often the idle-trim sweeper runs absent an
// explicit WithSweepInterval override.
const DefaultSweepInterval = 2 * time.Second

// DefaultIdleThreshold is how long a bucket may sit idle before the
// sweeper starts reclaiming its connections one per cycle.
const DefaultIdleThreshold = 120 * time.Second

// PoolKey identifies one connector: a TCP host/port pair or a UNIX path,
// plus the caller-assigned role distinguishing independent pools to the
// same destination (e.g. "api" vs "metrics").
type PoolKey struct {
	Network tcfg.Network
	Host    string
	Port    uint16
	Path    string
	Role    string
}

func (k PoolKey) String() string {
	if k.Network == tcfg.NetworkUnix {
		return fmt.Sprintf("%s:%s", k.Path, k.Role)
	}
	return fmt.Sprintf("%s:%d:%s", k.Host, k.Port, k.Role)
}

// Handle is a polymorphic reference to a pooled message.Message: using it
// is identical to using the wrapped connection directly, except Close
// returns the connection to the pool instead of tearing it down.
type Handle interface {
	message.Message

	Close() error
	IsOpen() bool
	Available() int
	Cancel()
	GetSNI() string
}

// Broker is the connection pool's public surface.
type Broker interface {
	// Get hands back a pooled idle connection for (key, sni) or asks the
	// key's connector to dial a fresh one.
	Get(ctx context.Context, key PoolKey, sni string) (Handle, error)
	Close() error
}

// Option configures a Broker at construction time.
type Option func(*broker)

func WithLogger(l liblog.Logger) Option {
	return func(b *broker) { b.log = liblog.OrDiscard(l) }
}

func WithRuntime(rt runtime.Runtime) Option {
	return func(b *broker) { b.rt = rt }
}

func WithSweepInterval(d time.Duration) Option {
	return func(b *broker) {
		if d > 0 {
			b.sweepInterval = d
		}
	}
}

func WithIdleThreshold(d time.Duration) Option {
	return func(b *broker) {
		if d > 0 {
			b.idleThreshold = d
		}
	}
}

func WithMetrics(c *metrics.Collectors) Option {
	return func(b *broker) { b.metrics = c }
}

// ConnectorFactory builds the Connector backing a freshly-seen PoolKey.
type ConnectorFactory func(key PoolKey) transport.Connector

// New builds a Broker whose connectors are produced by factory, starting
// its idle-trim sweeper immediately.
func New(factory ConnectorFactory, opts ...Option) Broker {
	b := &broker{
		factory:       factory,
		pools:         make(map[string]*poolEntry),
		log:           liblog.Discard(),
		rt:            runtime.New(),
		sweepInterval: DefaultSweepInterval,
		idleThreshold: DefaultIdleThreshold,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
	for _, o := range opts {
		o(b)
	}

	go b.sweepLoop()

	return b
}

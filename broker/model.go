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
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/nabbar/aionet/message"
	"github.com/nabbar/aionet/metrics"
	"github.com/nabbar/aionet/runtime"
	"github.com/nabbar/aionet/stream"
	"github.com/nabbar/aionet/transport"

	liblog "github.com/nabbar/aionet/logger"
)

type pooledConn struct {
	conn    transport.Context
	msg     message.Message
	release chan struct{}
}

type sniBucket struct {
	idle      []*pooledConn
	waiters   int64
	lastUsage time.Time
}

type poolEntry struct {
	connector transport.Connector
	buckets   map[string]*sniBucket
}

type broker struct {
	factory ConnectorFactory
	log     liblog.Logger
	rt      runtime.Runtime
	metrics *metrics.Collectors

	sweepInterval time.Duration
	idleThreshold time.Duration

	mu     sync.Mutex
	pools  map[string]*poolEntry
	closed bool

	stopCh chan struct{}
	doneCh chan struct{}
}

func (b *broker) entry(key PoolKey) *poolEntry {
	ks := key.String()
	e, ok := b.pools[ks]
	if !ok {
		e = &poolEntry{
			connector: b.factory(key),
			buckets:   make(map[string]*sniBucket),
		}
		b.pools[ks] = e
	}
	return e
}

func (b *broker) bucket(e *poolEntry, sni string) *sniBucket {
	bk, ok := e.buckets[sni]
	if !ok {
		bk = &sniBucket{}
		e.buckets[sni] = bk
	}
	return bk
}

func (b *broker) Get(ctx context.Context, key PoolKey, sni string) (Handle, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrorPoolClosed.Error()
	}

	e := b.entry(key)
	bk := b.bucket(e, sni)
	bk.lastUsage = time.Now()

	if len(bk.idle) > 0 {
		pc := bk.idle[0]
		bk.idle = bk.idle[1:]
		b.mu.Unlock()
		return b.newHandle(key.String(), sni, pc), nil
	}

	bk.waiters++
	connector := e.connector
	b.mu.Unlock()

	pc, err := b.dial(ctx, connector)

	b.mu.Lock()
	bk.waiters--
	b.mu.Unlock()

	if err != nil {
		return nil, err
	}

	return b.newHandle(key.String(), sni, pc), nil
}

func (b *broker) dial(ctx context.Context, connector transport.Connector) (*pooledConn, error) {
	type res struct {
		c   transport.Context
		err error
	}

	ch := make(chan res, 1)
	release := make(chan struct{})

	go func() {
		err := connector.AsyncConnection(ctx, func(c transport.Context) {
			ch <- res{c: c}
			<-release
		})
		if err != nil {
			select {
			case ch <- res{err: err}:
			default:
			}
		}
	}()

	r := <-ch
	if r.err != nil {
		return nil, r.err
	}

	return &pooledConn{
		conn:    r.c,
		msg:     message.New(stream.New(r.c)),
		release: release,
	}, nil
}

// put returns a connection to its bucket: delivered to nothing (Go's
// synchronous Get already serves waiters by dialing directly), it simply
// becomes available as an idle connection for the next Get call.
func (b *broker) put(poolKey, sni string, pc *pooledConn) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.pools[poolKey]
	if !ok {
		_ = pc.conn.Close()
		close(pc.release)
		return
	}

	bk, ok := e.buckets[sni]
	if !ok {
		bk = b.bucket(e, "")
	}

	bk.lastUsage = time.Now()
	bk.idle = append(bk.idle, pc)
}

func (b *broker) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	pools := b.pools
	b.pools = make(map[string]*poolEntry)
	b.mu.Unlock()

	close(b.stopCh)
	<-b.doneCh

	var merr error
	for _, e := range pools {
		for _, bk := range e.buckets {
			for _, pc := range bk.idle {
				if err := pc.conn.Close(); err != nil {
					merr = multierror.Append(merr, err)
				}
				close(pc.release)
			}
		}
		if err := e.connector.Close(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	return merr
}

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

package transport

import (
	"context"
	"crypto/tls"
	"net"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	libifo "github.com/nabbar/aionet/info"
	"github.com/nabbar/aionet/resolver"
	"github.com/nabbar/aionet/runtime"
	tcfg "github.com/nabbar/aionet/transport/config"
)

// clientConnector re-resolves and redials on every AsyncConnection call; it
// never caches the endpoint list.
type clientConnector struct {
	endpoint tcfg.Endpoint
	res      resolver.Resolver
	rt       runtime.Runtime
	dialer   net.Dialer

	errored atomic.Bool
	closed  atomic.Bool
	open    atomic.Int64
}

// NewClient builds a client Connector that dials the given endpoint.
func NewClient(endpoint tcfg.Endpoint, opts ...Option) Connector {
	o := newOptions(opts...)
	return &clientConnector{
		endpoint: endpoint,
		res:      resolver.New(resolver.DefaultWatchdog),
		rt:       o.rt,
		dialer:   net.Dialer{Timeout: DialWatchdog},
	}
}

func (cc *clientConnector) endpoints(ctx context.Context) ([]string, string, error) {
	if cc.endpoint.Network == tcfg.NetworkUnix {
		return []string{cc.endpoint.Path}, "unix", nil
	}

	e, err := cc.res.ResolveTCP(ctx, cc.endpoint.Host, cc.endpoint.Port)
	if err != nil {
		return nil, "", err
	}
	return e.Addresses, "tcp", nil
}

func (cc *clientConnector) AsyncConnection(ctx context.Context, handler HandlerFunc) error {
	if cc.closed.Load() {
		return ErrorConnectorClosed.Error()
	}

	addrs, network, err := cc.endpoints(ctx)
	if err != nil {
		cc.errored.Store(true)
		return ErrorDialFailed.Error(err)
	}

	var (
		merr error
		raw  net.Conn
	)

	for _, addr := range addrs {
		dctx, cancel := context.WithTimeout(ctx, DialWatchdog)
		c, derr := cc.dialer.DialContext(dctx, network, addr)
		cancel()

		if derr != nil {
			if dctx.Err() == context.DeadlineExceeded {
				derr = ErrorDialTimeout.Error(derr)
			}
			merr = multierror.Append(merr, derr)
			continue
		}

		raw = c
		break
	}

	if raw == nil {
		cc.errored.Store(true)
		if merr == nil {
			merr = ErrorDialFailed.Error()
		}
		return merr
	}

	cc.deliver(raw, handler)
	return nil
}

func (cc *clientConnector) deliver(raw net.Conn, handler HandlerFunc) {
	meta := libifo.New()
	meta.Set(libifo.KeySocketType, cc.endpoint.Network.Code())

	var (
		tlsConn *tls.Conn
		sni     string
	)

	if cc.endpoint.TLS.Enabled {
		cfg := cc.endpoint.TLS.Config
		if cfg == nil {
			cfg = &tls.Config{}
		}
		cfg = cfg.Clone()
		sni = cc.endpoint.TLS.ServerName
		if sni != "" {
			cfg.ServerName = sni
		}
		tlsConn = tls.Client(raw, cfg)
		sniRegister(tlsConn, sni)
	}

	cc.open.Add(1)
	c := newConnection(raw, tlsConn, sni, cc.rt, meta)
	c.onClose = func() { cc.open.Add(-1) }

	handler(c)
}

func (cc *clientConnector) Close() error {
	cc.closed.Store(true)
	return nil
}

func (cc *clientConnector) IsOpen() bool {
	return !cc.closed.Load()
}

func (cc *clientConnector) IsError() bool {
	return cc.errored.Load()
}

func (cc *clientConnector) Cancel() {}

func (cc *clientConnector) OpenConnections() int64 {
	return cc.open.Load()
}

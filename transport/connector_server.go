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
	"os"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	libifo "github.com/nabbar/aionet/info"
	"github.com/nabbar/aionet/resolver"
	"github.com/nabbar/aionet/runtime"
	tcfg "github.com/nabbar/aionet/transport/config"
)

// serverConnector is the lazily-initialized accept-loop variant of
// Connector: it resolves and binds on first AsyncConnection call, then
// performs one accept per subsequent call.
type serverConnector struct {
	endpoint tcfg.Endpoint
	res      resolver.Resolver
	rt       runtime.Runtime

	initOnce sync.Once
	initErr  error
	listener net.Listener

	errored atomic.Bool
	closed  atomic.Bool
	open    atomic.Int64
}

// NewServer builds a server Connector for the given endpoint. Binding is
// deferred to the first AsyncConnection call.
func NewServer(endpoint tcfg.Endpoint, opts ...Option) Connector {
	o := newOptions(opts...)
	return &serverConnector{
		endpoint: endpoint,
		res:      resolver.New(resolver.DefaultWatchdog),
		rt:       o.rt,
	}
}

func (s *serverConnector) bind() error {
	var lc net.ListenConfig
	if s.endpoint.Network == tcfg.NetworkTCP {
		lc.Control = reuseAddrControl
	}

	switch s.endpoint.Network {
	case tcfg.NetworkUnix:
		_ = os.Remove(s.endpoint.Path)
		l, err := lc.Listen(context.Background(), "unix", s.endpoint.Path)
		if err != nil {
			return err
		}
		s.listener = l
		return nil

	default:
		endpoints, err := s.res.ResolveTCP(context.Background(), s.endpoint.Host, s.endpoint.Port)
		if err != nil {
			return err
		}

		var merr error
		for _, addr := range endpoints.Addresses {
			l, lerr := lc.Listen(context.Background(), "tcp", addr)
			if lerr == nil {
				s.listener = l
				return nil
			}
			merr = multierror.Append(merr, lerr)
		}
		if merr == nil {
			merr = ErrorListenFailed.Error()
		}
		return merr
	}
}

func (s *serverConnector) AsyncConnection(ctx context.Context, handler HandlerFunc) error {
	if s.closed.Load() {
		return ErrorConnectorClosed.Error()
	}

	s.initOnce.Do(func() {
		s.initErr = s.bind()
		if s.initErr != nil {
			s.errored.Store(true)
		}
	})
	if s.initErr != nil {
		return ErrorListenFailed.Error(s.initErr)
	}

	type acceptResult struct {
		conn net.Conn
		err  error
	}
	ch := make(chan acceptResult, 1)
	go func() {
		c, err := s.listener.Accept()
		ch <- acceptResult{conn: c, err: err}
	}()

	select {
	case <-ctx.Done():
		_ = s.listener.Close()
		return ctx.Err()
	case r := <-ch:
		if r.err != nil {
			s.errored.Store(true)
			return r.err
		}
		s.deliver(r.conn, handler)
		return nil
	}
}

func (s *serverConnector) deliver(raw net.Conn, handler HandlerFunc) {
	meta := libifo.New()
	meta.Set(libifo.KeySocketType, s.endpoint.Network.Code())

	var (
		tlsConn *tls.Conn
		sni     string
	)

	if s.endpoint.TLS.Enabled {
		cfg, bind := sniCaptureConfig(s.endpoint.TLS.Config)
		tlsConn = tls.Server(raw, cfg)
		bind(tlsConn)
		sni = s.endpoint.TLS.ServerName
	}

	s.open.Add(1)
	c := newConnection(raw, tlsConn, sni, s.rt, meta)
	c.onClose = func() { s.open.Add(-1) }

	handler(c)
}

func (s *serverConnector) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	if s.endpoint.Network == tcfg.NetworkUnix {
		_ = os.Remove(s.endpoint.Path)
	}
	return err
}

func (s *serverConnector) IsOpen() bool {
	return !s.closed.Load() && s.listener != nil
}

func (s *serverConnector) IsError() bool {
	return s.errored.Load()
}

func (s *serverConnector) Cancel() {
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

func (s *serverConnector) OpenConnections() int64 {
	return s.open.Load()
}

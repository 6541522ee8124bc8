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

// Command aionet-echo wires the full stack end to end: a runtime, a
// resolver-backed TCP connector, the broker pool, and the message codec,
// running an HTTP-line echo server and a single client round-trip against
// it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nabbar/aionet/broker"
	"github.com/nabbar/aionet/config"
	liblog "github.com/nabbar/aionet/logger"
	"github.com/nabbar/aionet/message"
	"github.com/nabbar/aionet/metrics"
	"github.com/nabbar/aionet/runtime"
	"github.com/nabbar/aionet/stream"
	"github.com/nabbar/aionet/transport"
	tcfg "github.com/nabbar/aionet/transport/config"
)

func main() {
	host := flag.String("host", "127.0.0.1", "listen/dial host")
	port := flag.Uint("port", 18080, "listen/dial port")
	flag.Parse()

	log := liblog.New(liblog.InfoLevel, nil)

	cfg := config.Default()
	if err := config.Load("aionet", &cfg); err != nil {
		log.Warn("config.Load failed, using defaults", liblog.Fields{"error": err})
	}

	mtr := metrics.New()

	rt := runtime.New(runtime.WithLogger(log), runtime.WithMetrics(mtr))
	if err := rt.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rt.Stop()

	rt.InstallSignalHandler(nil)

	ep := tcfg.Endpoint{Network: tcfg.NetworkTCP, Host: *host, Port: uint16(*port)}

	srv := transport.NewServer(ep, transport.WithLogger(log), transport.WithRuntime(rt))
	defer func() { _ = srv.Close() }()

	go runEchoServer(srv, log)

	// give the listener a moment to bind before the client dials it.
	time.Sleep(50 * time.Millisecond)

	b := broker.New(
		func(k broker.PoolKey) transport.Connector {
			return transport.NewClient(
				tcfg.Endpoint{Network: k.Network, Host: k.Host, Port: k.Port, Path: k.Path},
				transport.WithLogger(log),
				transport.WithRuntime(rt),
			)
		},
		broker.WithLogger(log),
		broker.WithRuntime(rt),
		broker.WithSweepInterval(cfg.Broker.SweepInterval),
		broker.WithIdleThreshold(cfg.Broker.IdleThreshold),
		broker.WithMetrics(mtr),
	)
	defer func() { _ = b.Close() }()

	key := broker.PoolKey{Network: tcfg.NetworkTCP, Host: *host, Port: uint16(*port), Role: "echo-client"}

	if err := roundTrip(b, key); err != nil {
		log.Error("round trip failed", liblog.Fields{"error": err})
		os.Exit(1)
	}
}

func runEchoServer(srv transport.Connector, log liblog.Logger) {
	for {
		err := srv.AsyncConnection(context.Background(), func(c transport.Context) {
			defer func() { _ = c.Close() }()

			m := message.New(stream.New(c))

			req, hdrs, err := m.ReadRequestHeaders()
			if err != nil {
				log.Debug("server read failed", liblog.Fields{"error": err})
				return
			}

			resp := message.Response{Version: req.Version, Code: 200, Explanation: "OK"}
			if err = m.WriteResponseHeaders(resp, hdrs); err != nil {
				log.Debug("server write failed", liblog.Fields{"error": err})
				return
			}

			body := []byte(req.URI)
			left := len(body)
			if _, err = m.WriteBody(body, &left); err != nil {
				log.Debug("server body write failed", liblog.Fields{"error": err})
			}
		})
		if err != nil {
			return
		}
	}
}

func roundTrip(b broker.Broker, key broker.PoolKey) error {
	h, err := b.Get(context.Background(), key, "")
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	req := message.Request{Method: "GET", URI: "/aionet-echo", Version: "HTTP/1.1"}
	hdrs := []message.Header{{Name: "Host", Value: "aionet-echo"}}

	if err = h.WriteRequestHeaders(req, hdrs); err != nil {
		return err
	}

	resp, _, err := h.ReadResponseHeaders()
	if err != nil {
		return err
	}

	buf := make([]byte, len(req.URI))
	left := len(buf)
	if _, err = h.ReadBody(buf, &left); err != nil {
		return err
	}

	fmt.Printf("status=%d body=%q\n", resp.Code, string(buf))

	return nil
}

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

package stream_test

import (
	"context"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/aionet/stream"
	"github.com/nabbar/aionet/transport"
	tcfg "github.com/nabbar/aionet/transport/config"
)

func freePort() uint16 {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).ToNot(HaveOccurred())
	defer func() { _ = l.Close() }()
	return uint16(l.Addr().(*net.TCPAddr).Port)
}

var _ = Describe("Stream", func() {
	It("round-trips a message through WriteString/ReadString", func() {
		port := freePort()
		ep := tcfg.Endpoint{Network: tcfg.NetworkTCP, Host: "127.0.0.1", Port: port}

		srv := transport.NewServer(ep)
		defer func() { _ = srv.Close() }()

		serverReceived := make(chan []byte, 1)
		go func() {
			_ = srv.AsyncConnection(context.Background(), func(c transport.Context) {
				defer func() { _ = c.Close() }()
				s := stream.New(c)
				var buf []byte
				for len(buf) < 4 {
					if _, err := s.ReadString(&buf); err != nil {
						return
					}
				}
				serverReceived <- buf
			})
		}()

		cli := transport.NewClient(ep)
		defer func() { _ = cli.Close() }()

		Eventually(func() error {
			return cli.AsyncConnection(context.Background(), func(c transport.Context) {
				defer func() { _ = c.Close() }()
				s := stream.New(c)
				payload := []byte("ping")
				for len(payload) > 0 {
					if _, err := s.WriteString(&payload); err != nil {
						return
					}
				}
			})
		}, 2*time.Second, 20*time.Millisecond).Should(Succeed())

		Eventually(serverReceived, 2*time.Second).Should(Receive(Equal([]byte("ping"))))
	})

	It("rejects WriteString on an empty buffer", func() {
		port := freePort()
		ep := tcfg.Endpoint{Network: tcfg.NetworkTCP, Host: "127.0.0.1", Port: port}
		srv := transport.NewServer(ep)
		defer func() { _ = srv.Close() }()

		go func() { _ = srv.AsyncConnection(context.Background(), func(c transport.Context) { <-make(chan struct{}) }) }()

		Eventually(func() error {
			cli := transport.NewClient(ep)
			return cli.AsyncConnection(context.Background(), func(c transport.Context) {
				defer func() { _ = c.Close() }()
				s := stream.New(c)
				empty := []byte{}
				_, err := s.WriteString(&empty)
				Expect(err).To(HaveOccurred())
			})
		}, 2*time.Second, 20*time.Millisecond).Should(Succeed())
	})
})

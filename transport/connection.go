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
	"crypto/tls"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	libifo "github.com/nabbar/aionet/info"
	"github.com/nabbar/aionet/runtime"
)

// connection is the concrete Context implementation shared by every variant
// (raw/TLS, TCP/UNIX, accepted/dialed). All socket operations are posted
// through its own strand.
type connection struct {
	raw   net.Conn
	tls   *tls.Conn
	sni   string
	info  libifo.Info
	strand runtime.Strand
	closed atomic.Bool
	onClose func()
}

func newConnection(raw net.Conn, tlsConn *tls.Conn, sni string, rt runtime.Runtime, meta libifo.Info) *connection {
	c := &connection{
		raw:    raw,
		tls:    tlsConn,
		sni:    sni,
		info:   meta,
		strand: rt.NewStrand(),
	}
	c.info.Set(libifo.KeyConnectionID, uuid.NewString())
	if tlsConn != nil {
		c.info.Set(libifo.KeySocketEnc, "tls")
	} else {
		c.info.Set(libifo.KeySocketEnc, "raw")
	}
	if la := raw.LocalAddr(); la != nil {
		c.info.Set(libifo.KeySocketLocal, la.String())
	}
	if ra := raw.RemoteAddr(); ra != nil {
		c.info.Set(libifo.KeySocketRemote, ra.String())
	}
	return c
}

func (c *connection) conn() net.Conn {
	if c.tls != nil {
		return c.tls
	}
	return c.raw
}

func (c *connection) Read(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, ErrorConnectionClosed.Error()
	}
	return c.conn().Read(p)
}

func (c *connection) Write(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, ErrorConnectionClosed.Error()
	}
	return c.conn().Write(p)
}

func (c *connection) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if c.tls != nil {
		err = c.tls.Close()
		sniForget(c.tls)
	} else {
		err = c.raw.Close()
	}

	c.strand.Close()

	if c.onClose != nil {
		c.onClose()
	}

	return err
}

func (c *connection) Post(task runtime.Task) bool {
	return c.strand.Post(task)
}

func (c *connection) Available() int {
	type hasBuffered interface{ Buffered() int }
	if b, ok := c.conn().(hasBuffered); ok {
		return b.Buffered()
	}
	return 0
}

// pastDeadline is already elapsed; setting it on a net.Conn unblocks any
// in-flight Read/Write immediately, the stdlib idiom for canceling I/O.
var pastDeadline = time.Unix(1, 0)

func (c *connection) Cancel() {
	_ = c.conn().SetReadDeadline(pastDeadline)
	_ = c.conn().SetWriteDeadline(pastDeadline)
}

func (c *connection) IsOpen() bool {
	return !c.closed.Load()
}

func (c *connection) GetSNI() string {
	if c.tls != nil {
		if s := sniLookup(c.tls); s != "" {
			return s
		}
		return c.sni
	}
	return ""
}

func (c *connection) Info() libifo.Info {
	return c.info
}


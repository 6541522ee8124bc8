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

// Package transport produces Connection values from a Connector, either by
// accepting inbound sockets (server variant) or dialing outbound ones
// (client variant), over raw or TLS-wrapped TCP and UNIX-domain sockets.
package transport

import (
	"context"
	"time"

	libifo "github.com/nabbar/aionet/info"
	liblog "github.com/nabbar/aionet/logger"
	"github.com/nabbar/aionet/runtime"
)

// DialWatchdog bounds a single endpoint dial attempt.
const DialWatchdog = 60 * time.Second

// Context is the capability set exposed by a live Connection to handler
// code: io.ReadWriteCloser plus the strand-posting and introspection
// surface every variant (raw/TLS, TCP/UNIX) shares.
type Context interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error

	// Post schedules a task on the connection's own strand, the sole
	// mechanism for piggy-backing work on its serial executor.
	Post(task runtime.Task) bool
	// Available reports the best-effort count of pending readable bytes.
	Available() int
	// Cancel aborts outstanding operations without closing the socket.
	Cancel()
	// IsOpen reflects the lowest-layer socket state.
	IsOpen() bool
	// GetSNI returns the TLS server name for this connection, or "" for
	// raw connections.
	GetSNI() string
	// Info carries transport metadata (socket kind, local/remote address,
	// connector identity) alongside the connection.
	Info() libifo.Info
}

// HandlerFunc is invoked once per delivered Connection.
type HandlerFunc func(c Context)

// Connector produces Connection values, either by accept (server variant)
// or by dial (client variant), depending on how it was constructed.
type Connector interface {
	// AsyncConnection delivers exactly one Connection (or error) per call.
	AsyncConnection(ctx context.Context, handler HandlerFunc) error
	// Close releases the connector: for a server this unbinds the
	// listener (and unlinks a UNIX socket path); for a client this is a
	// no-op beyond latching the closed state.
	Close() error
	IsOpen() bool
	IsError() bool
	Cancel()
	// OpenConnections reports the number of Connection values currently
	// live (accepted/dialed and not yet closed).
	OpenConnections() int64
}

// Option configures a Connector at construction time.
type Option func(*options)

type options struct {
	log liblog.Logger
	rt  runtime.Runtime
}

func WithLogger(l liblog.Logger) Option {
	return func(o *options) { o.log = liblog.OrDiscard(l) }
}

func WithRuntime(r runtime.Runtime) Option {
	return func(o *options) { o.rt = r }
}

func newOptions(opts ...Option) *options {
	o := &options{log: liblog.Discard(), rt: runtime.New()}
	for _, f := range opts {
		f(o)
	}
	return o
}

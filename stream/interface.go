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

// Package stream provides string-buffered (byte-slice-buffered) I/O over a
// transport.Context: each call transfers at most one chunk capped at 64
// KiB, leaving the caller to drive the chaining loop.
package stream

import (
	"github.com/nabbar/aionet/runtime"
	"github.com/nabbar/aionet/transport"
)

// MaxChunk bounds a single write/read transfer.
const MaxChunk = 65536

// Stream wraps one Connection with scratch-buffer semantics. Not
// self-serializing: callers chain Write/Read through Post so at most one of
// each is in flight per connection.
type Stream interface {
	// WriteString sends as many bytes from the front of *buf as the
	// underlying socket accepts this turn (capped at MaxChunk), then
	// removes the transferred bytes from *buf. Returns ErrorNoData if
	// *buf is empty.
	WriteString(buf *[]byte) (int, error)
	// ReadString appends up to MaxChunk bytes to *buf.
	ReadString(buf *[]byte) (int, error)
	// Post delegates to the underlying connection's strand.
	Post(task runtime.Task) bool
}

// New wraps c with string-buffered I/O semantics.
func New(c transport.Context) Stream {
	return &stream{c: c}
}

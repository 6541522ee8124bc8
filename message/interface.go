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

// Package message implements a minimalist, RFC 7230-inspired request/
// status-line and header codec over a stream.Stream: request/response
// lines, folded headers, and length-delimited bodies.
package message

import (
	"github.com/nabbar/aionet/runtime"
	"github.com/nabbar/aionet/stream"
)

// MaxRead bounds how many unparsed bytes may accumulate while waiting for a
// complete request/status line or header line.
const MaxRead = 65536

// State tracks the request/response exchange phase, consulted by a
// broker-wrapped handle to guard body I/O ordering.
type State uint8

const (
	StateUnknown State = iota
	StateRequestHeaders
	StateRequestBody
	StateResponseHeaders
	StateResponseBody
)

// Request is a request line: method, request-target and protocol version.
type Request struct {
	Method  string
	URI     string
	Version string
}

// Response is a status line: protocol version, status code and reason
// phrase (the phrase may itself contain spaces).
type Response struct {
	Version     string
	Code        int
	Explanation string
}

// Header is one name/value header field. An empty Name is the end-of-
// headers sentinel appended by ReadHeaders as the list's final element.
type Header struct {
	Name  string
	Value string
}

// Message is the line/header/body codec over one Stream.
type Message interface {
	WriteRequest(r Request) error
	ReadRequest() (Request, error)

	WriteResponse(r Response) error
	ReadResponse() (Response, error)

	WriteHeader(h Header) error
	ReadHeader() (Header, error)

	WriteHeaders(hs []Header) error
	ReadHeaders() ([]Header, error)

	WriteRequestHeaders(r Request, hs []Header) error
	ReadRequestHeaders() (Request, []Header, error)

	WriteResponseHeaders(r Response, hs []Header) error
	ReadResponseHeaders() (Response, []Header, error)

	// WriteBody appends up to min(*bytesLeft, len(data)) bytes, decrements
	// *bytesLeft, and flushes until drained.
	WriteBody(data []byte, bytesLeft *int) (int, error)
	// ReadBody transfers up to *bytesLeft bytes into data from one stream
	// chunk and decrements *bytesLeft; the caller loops until it is 0.
	ReadBody(data []byte, bytesLeft *int) (int, error)

	State() State
	Post(task runtime.Task) bool
}

// New wraps s with the request/response line and header codec.
func New(s stream.Stream) Message {
	return &message{s: s}
}

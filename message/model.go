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

package message

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/nabbar/aionet/runtime"
	"github.com/nabbar/aionet/stream"
)

// minWrite is the line-staging threshold: a staged request/status line is
// not flushed on its own, it waits for the headers that follow so the line
// and headers go out together.
const minWrite = 256

type message struct {
	s     stream.Stream
	write []byte
	read  []byte
	state State
}

func (m *message) Post(task runtime.Task) bool {
	return m.s.Post(task)
}

func (m *message) State() State {
	return m.state
}

func (m *message) flushIfDue() error {
	if len(m.write) <= minWrite {
		return nil
	}
	return m.flush()
}

func (m *message) flush() error {
	for len(m.write) > 0 {
		if _, err := m.s.WriteString(&m.write); err != nil {
			return err
		}
	}
	return nil
}

func (m *message) fill() error {
	if len(m.read) >= MaxRead {
		return ErrorLineTooLong.Error()
	}
	_, err := m.s.ReadString(&m.read)
	return err
}

// nextLine extracts and consumes one complete line from the read
// accumulator, retrying fill() until one is available or maxRead is hit.
func (m *message) nextLine() ([]byte, error) {
	for {
		if end, ok := scanLine(m.read); ok {
			line := m.read[:end]
			m.read = m.read[end:]
			out := make([]byte, len(line))
			copy(out, line)
			return out, nil
		}
		if err := m.fill(); err != nil {
			return nil, err
		}
	}
}

func trimLineTerminator(line []byte) []byte {
	return bytes.TrimRight(line, "\r\n")
}

// --- request/response lines -------------------------------------------------

func (m *message) WriteRequest(r Request) error {
	if r.Method != "" {
		m.write = append(m.write, []byte(strings.TrimSpace(r.Method))...)
		m.write = append(m.write, ' ')
		m.write = append(m.write, []byte(strings.TrimSpace(r.URI))...)
		m.write = append(m.write, ' ')
		m.write = append(m.write, []byte(strings.TrimSpace(r.Version))...)
		m.write = append(m.write, '\r', '\n')
	}
	m.state = StateRequestHeaders
	return m.flushIfDue()
}

func (m *message) ReadRequest() (Request, error) {
	for {
		line, err := m.nextLine()
		if err != nil {
			return Request{}, err
		}
		body := trimLineTerminator(line)
		fields := splitSpaceFields(body, 3)
		if len(fields) == 0 || len(fields[0]) == 0 {
			continue
		}
		m.state = StateRequestHeaders
		req := Request{Method: string(fields[0])}
		if len(fields) > 1 {
			req.URI = string(fields[1])
		}
		if len(fields) > 2 {
			req.Version = string(fields[2])
		}
		return req, nil
	}
}

func (m *message) WriteResponse(r Response) error {
	if r.Version != "" {
		m.write = append(m.write, []byte(strings.TrimSpace(r.Version))...)
		m.write = append(m.write, ' ')
		m.write = append(m.write, []byte(strconv.Itoa(r.Code))...)
		m.write = append(m.write, ' ')
		m.write = append(m.write, []byte(r.Explanation)...)
		m.write = append(m.write, '\r', '\n')
	}
	m.state = StateResponseHeaders
	return m.flushIfDue()
}

func (m *message) ReadResponse() (Response, error) {
	for {
		line, err := m.nextLine()
		if err != nil {
			return Response{}, err
		}
		body := trimLineTerminator(line)
		fields := splitSpaceFields(body, 3)
		if len(fields) == 0 || len(fields[0]) == 0 {
			continue
		}
		m.state = StateResponseHeaders
		resp := Response{Version: string(fields[0])}
		if len(fields) > 1 {
			resp.Code, _ = strconv.Atoi(string(fields[1]))
		}
		if len(fields) > 2 {
			resp.Explanation = string(fields[2])
		}
		return resp, nil
	}
}

// splitSpaceFields splits buf on runs of space/control bytes into at most
// max fields, the last field retaining any embedded spaces (used for the
// reason phrase, which is itself a "phrase" class run).
func splitSpaceFields(buf []byte, max int) [][]byte {
	var out [][]byte
	for len(buf) > 0 && len(out) < max-1 {
		n := scanSpace(buf)
		buf = buf[n:]
		if len(buf) == 0 {
			break
		}
		tn, _ := scanToken(buf)
		if tn == 0 {
			break
		}
		out = append(out, buf[:tn])
		buf = buf[tn:]
	}
	if n := scanSpace(buf); n > 0 {
		buf = buf[n:]
	}
	if len(buf) > 0 {
		out = append(out, buf)
	}
	return out
}

// --- headers -----------------------------------------------------------

func (m *message) WriteHeader(h Header) error {
	name := strings.TrimSpace(h.Name)
	if name == "" {
		m.write = append(m.write, '\r', '\n')
		return m.flushIfDue()
	}

	m.write = append(m.write, []byte(name)...)
	m.write = append(m.write, ':', ' ')

	lines := strings.Split(h.Value, "\n")
	for i, l := range lines {
		l = strings.TrimRight(l, "\r")
		if i > 0 {
			m.write = append(m.write, ' ')
		}
		m.write = append(m.write, []byte(l)...)
	}
	m.write = append(m.write, '\r', '\n')

	return m.flushIfDue()
}

func (m *message) ReadHeader() (Header, error) {
	line, err := m.nextLine()
	if err != nil {
		return Header{}, err
	}
	body := trimLineTerminator(line)

	nn, _ := scanName(body)
	name := string(body[:nn])
	rest := body[nn:]

	if name == "" {
		return Header{Name: ":"}, nil
	}

	// skip separating space/colon run
	i := 0
	for i < len(rest) && (rest[i] == ':' || isSpaceOrControl(rest[i])) {
		i++
	}
	rest = rest[i:]

	// obs-fold continuations appear as embedded CRLF/CR/LF followed by a
	// blank; join them with "\n" in the decoded value.
	value := strings.ReplaceAll(string(rest), "\r\n ", "\n")
	value = strings.ReplaceAll(value, "\r ", "\n")
	value = strings.ReplaceAll(value, "\n ", "\n")

	return Header{Name: name, Value: value}, nil
}

func (m *message) WriteHeaders(hs []Header) error {
	for _, h := range hs {
		if err := m.WriteHeader(h); err != nil {
			return err
		}
	}
	return m.WriteHeader(Header{})
}

func (m *message) ReadHeaders() ([]Header, error) {
	var out []Header
	for {
		h, err := m.ReadHeader()
		if err != nil {
			return out, err
		}
		out = append(out, h)
		if h.Name == ":" {
			return out, nil
		}
	}
}

func (m *message) WriteRequestHeaders(r Request, hs []Header) error {
	if err := m.WriteRequest(r); err != nil {
		return err
	}
	return m.WriteHeaders(hs)
}

func (m *message) ReadRequestHeaders() (Request, []Header, error) {
	r, err := m.ReadRequest()
	if err != nil {
		return r, nil, err
	}
	hs, err := m.ReadHeaders()
	return r, hs, err
}

func (m *message) WriteResponseHeaders(r Response, hs []Header) error {
	if err := m.WriteResponse(r); err != nil {
		return err
	}
	return m.WriteHeaders(hs)
}

func (m *message) ReadResponseHeaders() (Response, []Header, error) {
	r, err := m.ReadResponse()
	if err != nil {
		return r, nil, err
	}
	hs, err := m.ReadHeaders()
	return r, hs, err
}

// --- body ----------------------------------------------------------------

func (m *message) WriteBody(data []byte, bytesLeft *int) (int, error) {
	if m.state != StateRequestHeaders && m.state != StateRequestBody &&
		m.state != StateResponseHeaders && m.state != StateResponseBody {
		return 0, ErrorInvalidExchangeState.Error()
	}
	if m.state == StateRequestHeaders {
		m.state = StateRequestBody
	} else if m.state == StateResponseHeaders {
		m.state = StateResponseBody
	}

	n := len(data)
	if *bytesLeft < n {
		n = *bytesLeft
	}
	m.write = append(m.write, data[:n]...)
	*bytesLeft -= n

	return n, m.flush()
}

func (m *message) ReadBody(data []byte, bytesLeft *int) (int, error) {
	if m.state != StateRequestHeaders && m.state != StateRequestBody &&
		m.state != StateResponseHeaders && m.state != StateResponseBody {
		return 0, ErrorInvalidExchangeState.Error()
	}
	if m.state == StateRequestHeaders {
		m.state = StateRequestBody
	} else if m.state == StateResponseHeaders {
		m.state = StateResponseBody
	}

	if *bytesLeft == 0 {
		return 0, nil
	}

	for len(m.read) == 0 {
		if _, err := m.s.ReadString(&m.read); err != nil {
			return 0, err
		}
	}

	n := len(m.read)
	if n > *bytesLeft {
		n = *bytesLeft
	}
	if n > len(data) {
		n = len(data)
	}
	copy(data, m.read[:n])
	m.read = m.read[n:]
	*bytesLeft -= n

	return n, nil
}

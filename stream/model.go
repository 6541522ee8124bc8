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

package stream

import (
	"github.com/nabbar/aionet/runtime"
	"github.com/nabbar/aionet/transport"
)

type stream struct {
	c transport.Context
}

func (s *stream) WriteString(buf *[]byte) (int, error) {
	if buf == nil || len(*buf) == 0 {
		return 0, ErrorNoData.Error()
	}
	if !s.c.IsOpen() {
		return 0, ErrorNotConnected.Error()
	}

	chunk := *buf
	if len(chunk) > MaxChunk {
		chunk = chunk[:MaxChunk]
	}

	n, err := s.c.Write(chunk)
	if n > 0 {
		*buf = (*buf)[n:]
	}
	return n, err
}

func (s *stream) ReadString(buf *[]byte) (int, error) {
	if !s.c.IsOpen() {
		return 0, ErrorNotConnected.Error()
	}

	scratch := make([]byte, MaxChunk)
	n, err := s.c.Read(scratch)
	if n > 0 {
		*buf = append(*buf, scratch[:n]...)
	}
	return n, err
}

func (s *stream) Post(task runtime.Task) bool {
	return s.c.Post(task)
}

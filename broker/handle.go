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

package broker

import (
	"sync/atomic"

	"github.com/nabbar/aionet/message"
)

// handle is the broker-wrapped Message: every Message method delegates to
// the pooled connection; Close returns it to the pool instead of tearing
// it down.
type handle struct {
	message.Message

	b       *broker
	poolKey string
	sni     string
	pc      *pooledConn
	closed  atomic.Bool
}

func (b *broker) newHandle(poolKey, sni string, pc *pooledConn) *handle {
	return &handle{
		Message: pc.msg,
		b:       b,
		poolKey: poolKey,
		sni:     sni,
		pc:      pc,
	}
}

func (h *handle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	if h.pc == nil || !h.pc.conn.IsOpen() {
		return ErrorNoUnderlyingConnection.Error()
	}
	h.b.put(h.poolKey, h.sni, h.pc)
	return nil
}

func (h *handle) IsOpen() bool {
	if h.pc == nil {
		return false
	}
	return h.pc.conn.IsOpen()
}

func (h *handle) Available() int {
	if h.pc == nil {
		return 0
	}
	return h.pc.conn.Available()
}

func (h *handle) Cancel() {
	if h.pc != nil {
		h.pc.conn.Cancel()
	}
}

func (h *handle) GetSNI() string {
	if h.pc == nil {
		return ""
	}
	return h.pc.conn.GetSNI()
}

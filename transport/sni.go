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
	"sync"
)

// sniTable is the process-wide map from a *tls.Conn identity to the SNI
// name associated with it: caller-supplied on the client side, recorded
// from the client hello on the server side. The key space is pointer
// identity of TLS connection wrappers allocated by crypto/tls, which
// cannot collide for the lifetime of a live connection.
var (
	sniMu    sync.Mutex
	sniTable = make(map[*tls.Conn]string)
)

func sniRegister(c *tls.Conn, name string) {
	sniMu.Lock()
	sniTable[c] = name
	sniMu.Unlock()
}

func sniLookup(c *tls.Conn) string {
	sniMu.Lock()
	name := sniTable[c]
	sniMu.Unlock()
	return name
}

func sniForget(c *tls.Conn) {
	sniMu.Lock()
	delete(sniTable, c)
	sniMu.Unlock()
}

// sniCaptureConfig returns a shallow copy of base whose GetConfigForClient
// records the client-offered SNI into name before returning the base config
// unchanged, and a bind function associating the captured name with the
// *tls.Conn once it exists. The caller must construct the tls.Conn with the
// returned config, then call bind(conn) before or during the handshake.
func sniCaptureConfig(base *tls.Config) (cfg *tls.Config, bind func(c *tls.Conn)) {
	if base == nil {
		base = &tls.Config{}
	}

	var name string
	cfg = base.Clone()
	cfg.GetConfigForClient = func(hello *tls.ClientHelloInfo) (*tls.Config, error) {
		name = hello.ServerName
		return nil, nil
	}

	return cfg, func(c *tls.Conn) {
		sniRegister(c, name)
	}
}

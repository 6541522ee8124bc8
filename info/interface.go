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

// Package info provides an ordered string-to-string key/value map used to carry
// transport metadata between a connector and the connections it produces.
package info

import (
	libatm "github.com/nabbar/aionet/atomic"
)

// Well-known InfoMap keys populated by the transport and timer packages.
const (
	KeySocketType     = "socket_type"
	KeySocketEnc      = "socket_enc"
	KeySocketLocal    = "socket_local"
	KeySocketRemote   = "socket_remote"
	KeyConnectorHost  = "connector_host"
	KeyConnectorPort  = "connector_port"
	KeyConnectorPath  = "connector_path"
	KeyConnectorServ  = "connector_server"
	KeyConnectorSNI   = "connector_sni"
	KeyConnectionID   = "connection_id"
	KeyTimerType      = "timer_type"
	KeyTimerID        = "timer_id"
)

// Socket type values for KeySocketType.
const (
	SocketTypeTCP   = "tcp"
	SocketTypeLocal = "local"
)

// FuncWalk is called once per key/value pair by Walk, in insertion order.
// Returning false stops the walk early.
type FuncWalk func(key, value string) bool

// Info is an ordered, thread-safe string/string map. Keys keep the order in
// which they were first set; re-setting an existing key does not move it.
type Info interface {
	// Set stores value under key, appending key to the iteration order if it
	// is new.
	Set(key, value string)
	// Get returns the value stored under key, and whether it was present.
	Get(key string) (value string, ok bool)
	// Keys returns the known keys in insertion order.
	Keys() []string
	// Walk iterates over every key/value pair in insertion order.
	Walk(fct FuncWalk)
	// Clone returns an independent copy sharing no state with the original.
	Clone() Info
	// Merge copies every key/value from src into the current map, appending
	// new keys after the existing ones in src's own order.
	Merge(src Info)
}

// New returns an empty Info.
func New() Info {
	return &infoMap{
		v: libatm.NewMapTyped[string, string](),
		k: make([]string, 0),
	}
}

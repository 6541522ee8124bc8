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

// Package resolver turns a connector's configured host/port or path into the
// concrete endpoints a connection attempt should dial, bypassing resolution
// for wildcard binds and bounding every lookup with a watchdog.
package resolver

import (
	"context"
	"net"
	"time"
)

// DefaultWatchdog bounds how long a single resolution may take before it is
// canceled and reported as a timeout.
const DefaultWatchdog = 60 * time.Second

// wildcard hosts bypass resolution entirely and bind every local address.
var wildcardHosts = map[string]struct{}{
	"":        {},
	"0.0.0.0": {},
	"[::]":    {},
	"::":      {},
}

// EndpointList is the ordered set of concrete endpoints a connector should
// attempt, in the order they should be tried.
type EndpointList struct {
	// Network is "tcp" or "unix".
	Network string
	// Addresses holds dialable/bindable addresses: "host:port" pairs for
	// tcp, or a single filesystem path for unix.
	Addresses []string
}

// IsWildcard reports whether the list resolves to a wildcard bind endpoint.
func (e EndpointList) IsWildcard() bool {
	for _, a := range e.Addresses {
		host, _, err := net.SplitHostPort(a)
		if err != nil {
			continue
		}
		if _, ok := wildcardHosts[host]; ok {
			return true
		}
	}
	return false
}

// Resolver resolves connector endpoints asynchronously for TCP, and
// synchronously (trivially) for UNIX domain sockets. Every ResolveTCP call
// re-runs resolution; answers are never cached across calls.
type Resolver interface {
	// ResolveTCP resolves host/port into one or more dialable/bindable
	// "host:port" addresses. A host of "", "0.0.0.0" or "[::]" bypasses
	// resolution and yields a single wildcard bind endpoint on port.
	ResolveTCP(ctx context.Context, host string, port uint16) (EndpointList, error)
	// ResolveUnix returns a single-element EndpointList wrapping path.
	ResolveUnix(path string) (EndpointList, error)
}

// New returns a Resolver built on the standard library resolver, bounding
// every ResolveTCP call with watchdog if the given context carries no
// earlier deadline.
func New(watchdog time.Duration) Resolver {
	if watchdog <= 0 {
		watchdog = DefaultWatchdog
	}
	return &resolver{
		res:      net.DefaultResolver,
		watchdog: watchdog,
	}
}

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

package resolver

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"
)

type resolver struct {
	res      *net.Resolver
	watchdog time.Duration
}

func (r *resolver) ResolveTCP(ctx context.Context, host string, port uint16) (EndpointList, error) {
	if port == 0 {
		return EndpointList{}, ErrorParamInvalid.Error()
	}

	if _, ok := wildcardHosts[strings.TrimSpace(host)]; ok {
		return EndpointList{
			Network:   "tcp",
			Addresses: []string{net.JoinHostPort("::", strconv.Itoa(int(port)))},
		}, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.watchdog)
		defer cancel()
	}

	ips, err := r.res.LookupIPAddr(ctx, host)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return EndpointList{}, ErrorTimeout.Error()
		}
		return EndpointList{}, ErrorLookupFailed.Error(err)
	}
	if len(ips) == 0 {
		return EndpointList{}, ErrorLookupFailed.Error()
	}

	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, net.JoinHostPort(ip.IP.String(), strconv.Itoa(int(port))))
	}

	return EndpointList{Network: "tcp", Addresses: addrs}, nil
}

func (r *resolver) ResolveUnix(path string) (EndpointList, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return EndpointList{}, ErrorParamInvalid.Error()
	}

	return EndpointList{Network: "unix", Addresses: []string{path}}, nil
}

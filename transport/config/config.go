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

// Package config describes the bind/dial targets a connector is built from.
package config

import (
	"crypto/tls"
)

// Network names the transport network a connector operates on.
type Network uint8

const (
	NetworkTCP Network = iota
	NetworkUnix
)

func (n Network) Code() string {
	switch n {
	case NetworkTCP:
		return "tcp"
	case NetworkUnix:
		return "unix"
	}
	return ""
}

func (n Network) String() string {
	return n.Code()
}

// TLS carries the optional TLS wrapping for a connector.
type TLS struct {
	Enabled bool
	Config  *tls.Config
	// ServerName sets the client-side SNI; ignored for server connectors,
	// which derive SNI from the client hello via GetConfigForClient.
	ServerName string
}

// Endpoint is the static configuration of a connector: a TCP host/port pair
// or a UNIX socket path, plus optional TLS wrapping.
type Endpoint struct {
	Network Network
	// Host/Port apply to NetworkTCP; empty Host is a wildcard bind.
	Host string
	Port uint16
	// Path applies to NetworkUnix.
	Path string
	TLS  TLS
}

func (e Endpoint) Address() string {
	if e.Network == NetworkUnix {
		return e.Path
	}
	return e.Host
}

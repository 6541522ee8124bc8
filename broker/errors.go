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
	"fmt"

	liberr "github.com/nabbar/aionet/errors"
)

// Error codes for the connection pool.
const (
	ErrorNoConnector liberr.CodeError = iota + liberr.MinPkgBroker // no connector factory registered for the pool key
	ErrorPoolClosed                                                // operation attempted after Close
	ErrorNoUnderlyingConnection                                    // the handle's connection is gone
)

func init() {
	if liberr.ExistInMapMessage(ErrorNoConnector) {
		panic(fmt.Errorf("error code collision with package aionet/broker"))
	}
	liberr.RegisterIdFctMessage(ErrorNoConnector, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorNoConnector:
		return "no connector registered for pool key"
	case ErrorPoolClosed:
		return "broker pool is closed"
	case ErrorNoUnderlyingConnection:
		return "handle has no underlying connection"
	}

	return liberr.NullMessage
}

// ErrNoUnderlyingConnection is returned by a broker handle whose underlying
// connection has already been returned to the pool or lost.
var ErrNoUnderlyingConnection = ErrorNoUnderlyingConnection.Error()

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
	"fmt"

	liberr "github.com/nabbar/aionet/errors"
)

// Error codes for connector/connection operations.
const (
	ErrorListenFailed       liberr.CodeError = iota + liberr.MinPkgTransport // every endpoint in the bind list failed
	ErrorDialFailed                                                          // every endpoint in the dial list failed
	ErrorConnectorUnavailable                                                // the connector has latched an error state
	ErrorConnectorClosed                                                     // operation attempted on a closed connector
	ErrorConnectionClosed                                                    // operation attempted on a closed connection
	ErrorDialTimeout                                                         // a single endpoint dial exceeded its watchdog
)

func init() {
	if liberr.ExistInMapMessage(ErrorListenFailed) {
		panic(fmt.Errorf("error code collision with package aionet/transport"))
	}
	liberr.RegisterIdFctMessage(ErrorListenFailed, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorListenFailed:
		return "all bind endpoints failed"
	case ErrorDialFailed:
		return "all dial endpoints failed"
	case ErrorConnectorUnavailable:
		return "connector unavailable, latched error state"
	case ErrorConnectorClosed:
		return "connector is closed"
	case ErrorConnectionClosed:
		return "connection is closed"
	case ErrorDialTimeout:
		return "dial watchdog expired"
	}

	return liberr.NullMessage
}

// ErrConnectorUnavailable is returned by a connector that has latched an
// error state after exhausting every candidate endpoint.
var ErrConnectorUnavailable = ErrorConnectorUnavailable.Error()

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
	"fmt"

	liberr "github.com/nabbar/aionet/errors"
)

// Error codes for the HTTP-line codec.
const (
	ErrorNotConnected       liberr.CodeError = iota + liberr.MinPkgMessage // no underlying stream
	ErrorLineTooLong                                                      // a header/request line exceeded maxRead
	ErrorNoData                                                           // propagated from the stream layer's write side
	ErrorNoBufferSpace                                                    // propagated from the stream layer's read side
	ErrorInvalidExchangeState                                             // body I/O called out of sequence (broker-wrapped only)
)

func init() {
	if liberr.ExistInMapMessage(ErrorNotConnected) {
		panic(fmt.Errorf("error code collision with package aionet/message"))
	}
	liberr.RegisterIdFctMessage(ErrorNotConnected, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorNotConnected:
		return "message has no underlying stream"
	case ErrorLineTooLong:
		return "request/header line exceeds the maximum read size"
	case ErrorNoData:
		return "write buffer is empty"
	case ErrorNoBufferSpace:
		return "read buffer cannot grow"
	case ErrorInvalidExchangeState:
		return "invalid body I/O sequencing for current exchange state"
	}

	return liberr.NullMessage
}

// ErrInvalidExchangeState is the sentinel a broker-wrapped handle returns
// when body I/O is attempted before the matching headers have been
// exchanged.
var ErrInvalidExchangeState = ErrorInvalidExchangeState.Error()

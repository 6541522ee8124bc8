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

// The codec recognizes five character classes over the read accumulator:
// token, name, phrase, space and line. Each classifier below returns the
// length of the maximal run starting at offset 0 of buf; 0 means the class
// does not start there (or the run is not yet terminated by more input).

func isSpaceOrControl(b byte) bool {
	return b <= 0x20 || b == 0x7f
}

// token is a maximal run of graphical (non-space, non-control) characters.
func scanToken(buf []byte) (n int, terminated bool) {
	for n < len(buf) && !isSpaceOrControl(buf[n]) {
		n++
	}
	return n, n < len(buf)
}

// name is a maximal run of non-control, non-space, non-colon characters.
func scanName(buf []byte) (n int, terminated bool) {
	for n < len(buf) {
		b := buf[n]
		if isSpaceOrControl(b) || b == ':' {
			break
		}
		n++
	}
	return n, n < len(buf)
}

// phrase is a maximal run ending before CR or LF.
func scanPhrase(buf []byte) (n int, terminated bool) {
	for n < len(buf) && buf[n] != '\r' && buf[n] != '\n' {
		n++
	}
	return n, n < len(buf)
}

// space is a maximal run of whitespace or control characters.
func scanSpace(buf []byte) (n int) {
	for n < len(buf) && isSpaceOrControl(buf[n]) {
		n++
	}
	return n
}

// scanLine finds the end of the next complete line (CR, LF, or CRLF,
// honoring obs-fold continuations: an LF or CR immediately followed by a
// blank/tab continues the line rather than ending it). It returns the
// index just past the terminator and whether a complete line was found.
func scanLine(buf []byte) (end int, ok bool) {
	i := 0
	for i < len(buf) {
		b := buf[i]
		if b == '\r' || b == '\n' {
			term := i
			if b == '\r' && i+1 < len(buf) && buf[i+1] == '\n' {
				term = i + 1
			}
			// obs-fold: a following blank/tab continues the line.
			if term+1 < len(buf) && (buf[term+1] == ' ' || buf[term+1] == '\t') {
				i = term + 1
				continue
			}
			if term+1 >= len(buf) {
				// Cannot yet tell whether this is a fold continuation;
				// wait for more input unless this is genuinely the end.
				return term + 1, true
			}
			return term + 1, true
		}
		i++
	}
	return 0, false
}

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

package logger

import (
	"github.com/sirupsen/logrus"
)

type logger struct {
	e *logrus.Entry
}

func (l *logger) withFields(f Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.e
	}
	return l.e.WithFields(logrus.Fields(f))
}

func (l *logger) Debug(msg string, fields ...Fields) {
	l.withFields(mergeFields(fields)).Debug(msg)
}

func (l *logger) Info(msg string, fields ...Fields) {
	l.withFields(mergeFields(fields)).Info(msg)
}

func (l *logger) Warn(msg string, fields ...Fields) {
	l.withFields(mergeFields(fields)).Warn(msg)
}

func (l *logger) Error(msg string, fields ...Fields) {
	l.withFields(mergeFields(fields)).Error(msg)
}

// Fatal logs at error level rather than calling os.Exit — this is a library,
// not a process entry point, and must not terminate its caller's process.
func (l *logger) Fatal(msg string, fields ...Fields) {
	l.withFields(mergeFields(fields)).Error(msg)
}

func (l *logger) WithFields(f Fields) Logger {
	return &logger{e: l.withFields(f)}
}

func (l *logger) SetLevel(lvl Level) {
	l.e.Logger.SetLevel(lvl.logrus())
}

func mergeFields(fs []Fields) Fields {
	if len(fs) == 0 {
		return nil
	}
	if len(fs) == 1 {
		return fs[0]
	}

	m := make(Fields)
	for _, f := range fs {
		for k, v := range f {
			m[k] = v
		}
	}
	return m
}

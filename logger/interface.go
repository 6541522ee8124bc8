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

// Package logger wraps logrus behind a minimal interface so the rest of the
// module never imports logrus directly.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields carries structured key/value context alongside a log line.
type Fields map[string]interface{}

// Level mirrors logrus.Level without leaking the logrus type at call sites.
type Level uint32

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// ParseLevel parses a level name (case-insensitive), defaulting to InfoLevel
// on an empty string.
func ParseLevel(name string) (Level, error) {
	if name == "" {
		return InfoLevel, nil
	}

	l, err := logrus.ParseLevel(name)
	if err != nil {
		return InfoLevel, err
	}

	return Level(l), nil
}

func (l Level) logrus() logrus.Level {
	return logrus.Level(l)
}

// Logger is the logging surface used by every long-lived component in this
// module. A nil Logger is never passed around internally — callers use
// Discard() to get a safe no-op implementation.
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(msg string, fields ...Fields)
	Fatal(msg string, fields ...Fields)

	// WithFields returns a child Logger that always includes the given
	// fields in addition to any passed per call.
	WithFields(f Fields) Logger

	// SetLevel adjusts the minimum level logged.
	SetLevel(l Level)
}

// New returns a Logger writing to w at the given level. If w is nil, it
// writes to the logrus default (stderr).
func New(lvl Level, w io.Writer) Logger {
	l := logrus.New()
	l.SetLevel(lvl.logrus())

	if w != nil {
		l.SetOutput(w)
	}

	return &logger{e: logrus.NewEntry(l)}
}

// Discard returns a Logger that drops every line. Safe to use as the default
// for components constructed without an explicit Logger.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &logger{e: logrus.NewEntry(l)}
}

// OrDiscard returns l if non-nil, otherwise Discard().
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard()
	}
	return l
}

/*
 * MIT License
 *
 * Copyright (c) 2026 go-reactor contributors
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
 */

package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the narrow logging surface the reactor core depends on.
// reactor.New takes one at construction instead of reaching for a
// package-level global; ByteStream, TlsEngine and Listener take none.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
}

type logger struct {
	entry *logrus.Entry
}

// New builds a Logger named name, with its level resolved via
// LevelFromEnv(name, def).
func New(name string, def Level, out io.Writer) Logger {
	l := logrus.New()
	if out != nil {
		l.SetOutput(out)
	}
	l.SetLevel(LevelFromEnv(name, def).Logrus())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &logger{entry: l.WithField("logger", name)}
}

func (g *logger) Tracef(format string, args ...interface{}) { g.entry.Tracef(format, args...) }
func (g *logger) Debugf(format string, args ...interface{}) { g.entry.Debugf(format, args...) }
func (g *logger) Infof(format string, args ...interface{})  { g.entry.Infof(format, args...) }
func (g *logger) Warnf(format string, args ...interface{})  { g.entry.Warnf(format, args...) }
func (g *logger) Errorf(format string, args ...interface{}) { g.entry.Errorf(format, args...) }

func (g *logger) WithField(key string, value interface{}) Logger {
	return &logger{entry: g.entry.WithField(key, value)}
}

// Discard is a Logger that drops every record; useful as a zero-value
// default for tests and for embedders who pass no logger.
var Discard Logger = discard{}

type discard struct{}

func (discard) Tracef(string, ...interface{})      {}
func (discard) Debugf(string, ...interface{})      {}
func (discard) Infof(string, ...interface{})       {}
func (discard) Warnf(string, ...interface{})       {}
func (discard) Errorf(string, ...interface{})      {}
func (d discard) WithField(string, interface{}) Logger { return d }

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
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// hcAdapter lets a Logger stand in for hclog.Logger, for third-party code
// (none in this repo yet) that expects one. No core component in this repo
// requires it; it exists because the teacher always pairs its logger with
// one, and a future domain dependency taking an hclog.Logger can reuse this
// sink instead of wiring up a second logging stack.
type hcAdapter struct {
	l Logger
}

// NewHCLog wraps a Logger as an hclog.Logger.
func NewHCLog(l Logger) hclog.Logger {
	return &hcAdapter{l: l}
}

// withArgs renders hclog's alternating key/value pairs into the message
// instead of dropping them, since Logger's Tracef/Debugf/... only take a
// printf-style format plus positional args, not structured fields.
func withArgs(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	i := 0
	for ; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if i < len(args) {
		fmt.Fprintf(&b, " %v", args[i])
	}
	return b.String()
}

func (h *hcAdapter) Log(level hclog.Level, msg string, args ...interface{}) {
	line := withArgs(msg, args)
	switch level {
	case hclog.Trace:
		h.l.Tracef("%s", line)
	case hclog.Debug:
		h.l.Debugf("%s", line)
	case hclog.Info:
		h.l.Infof("%s", line)
	case hclog.Warn:
		h.l.Warnf("%s", line)
	case hclog.Error:
		h.l.Errorf("%s", line)
	}
}

func (h *hcAdapter) Trace(msg string, args ...interface{}) { h.l.Tracef("%s", withArgs(msg, args)) }
func (h *hcAdapter) Debug(msg string, args ...interface{}) { h.l.Debugf("%s", withArgs(msg, args)) }
func (h *hcAdapter) Info(msg string, args ...interface{})  { h.l.Infof("%s", withArgs(msg, args)) }
func (h *hcAdapter) Warn(msg string, args ...interface{})  { h.l.Warnf("%s", withArgs(msg, args)) }
func (h *hcAdapter) Error(msg string, args ...interface{}) { h.l.Errorf("%s", withArgs(msg, args)) }

// IsTrace/IsDebug/IsInfo/IsWarn/IsError always report enabled: Logger has
// no level-introspection surface (its level is resolved once, internally,
// via LevelFromEnv), so the conservative answer is to never tell an
// hclog caller a level is suppressed when it might not be.
func (h *hcAdapter) IsTrace() bool { return true }
func (h *hcAdapter) IsDebug() bool { return true }
func (h *hcAdapter) IsInfo() bool  { return true }
func (h *hcAdapter) IsWarn() bool  { return true }
func (h *hcAdapter) IsError() bool { return true }

func (h *hcAdapter) ImpliedArgs() []interface{} { return nil }

// With folds each key/value pair into the underlying Logger via WithField,
// so fields attached through the hclog surface still show up on every
// subsequent line instead of being silently dropped.
func (h *hcAdapter) With(args ...interface{}) hclog.Logger {
	l := h.l
	for i := 0; i+1 < len(args); i += 2 {
		l = l.WithField(fmt.Sprintf("%v", args[i]), args[i+1])
	}
	return &hcAdapter{l: l}
}

func (h *hcAdapter) Name() string { return "" }

func (h *hcAdapter) Named(name string) hclog.Logger {
	return &hcAdapter{l: h.l.WithField("logger", name)}
}

func (h *hcAdapter) ResetNamed(name string) hclog.Logger { return h.Named(name) }

func (h *hcAdapter) SetLevel(hclog.Level) {}

func (h *hcAdapter) GetLevel() hclog.Level { return hclog.Info }

func (h *hcAdapter) StandardLogger(*hclog.StandardLoggerOptions) *log.Logger {
	return log.New(io.Discard, "", 0)
}

func (h *hcAdapter) StandardWriter(*hclog.StandardLoggerOptions) io.Writer {
	return io.Discard
}

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

// Package xerrors provides the small error taxonomy used across the reactor
// core: a numeric Code (HTTP-status flavored, like nabbar/golib/errors) plus
// an Error interface that keeps a parent error and a capture site.
//
// It deliberately does not attempt tagged read/write outcomes (WouldBlock,
// OrderlyClose) - those live in iostream.Outcome as a plain sum type, per
// spec's design note that faults are a distinct channel from would-block and
// orderly-close.
package xerrors

import (
	"fmt"
	"runtime"
)

// Code classifies an Error the way an HTTP status code classifies a
// response: callers switch on it instead of parsing messages.
type Code uint16

const (
	// Unknown is the zero value, used when no taxonomy entry applies.
	Unknown Code = iota
	// Config marks a configuration error: missing flag, invalid port,
	// unresolvable host, invalid TLS certificate/key combination.
	Config
	// Resolve marks address resolution failure.
	Resolve
	// TransportFault marks a non-would-block, non-orderly-close I/O error
	// on a live connection.
	TransportFault
	// TLSHandshake marks a failed TLS handshake.
	TLSHandshake
	// TLSVerification marks a failed peer certificate verification.
	TLSVerification
)

func (c Code) String() string {
	switch c {
	case Config:
		return "config"
	case Resolve:
		return "resolve"
	case TransportFault:
		return "transport-fault"
	case TLSHandshake:
		return "tls-handshake"
	case TLSVerification:
		return "tls-verification"
	default:
		return "unknown"
	}
}

// Error is a xerrors-flavored error: it keeps a Code, an optional parent and
// the file:line where it was raised.
type Error interface {
	error
	Code() Code
	Unwrap() error
	IsCode(c Code) bool
}

type taggedError struct {
	code   Code
	msg    string
	parent error
	site   string
}

// New builds an Error with the given code and message, capturing the
// immediate caller's site for diagnostics.
func New(code Code, msg string) Error {
	return &taggedError{code: code, msg: msg, site: callSite(2)}
}

// Wrap builds an Error with the given code around a parent error.
func Wrap(code Code, parent error, msg string) Error {
	return &taggedError{code: code, msg: msg, parent: parent, site: callSite(2)}
}

func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func (e *taggedError) Code() Code { return e.code }

func (e *taggedError) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("%s: %s: %s", e.code, e.msg, e.parent.Error())
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

func (e *taggedError) Unwrap() error { return e.parent }

func (e *taggedError) IsCode(c Code) bool { return e.code == c }

// Site returns the file:line where the error was created, mainly for
// logging - mirrors errors.Error.GetFile/GetLine in the teacher package in
// spirit, collapsed into one string since this taxonomy is much narrower.
func Site(err error) string {
	if te, ok := err.(*taggedError); ok {
		return te.site
	}
	return ""
}

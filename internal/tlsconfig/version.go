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

// Package tlsconfig builds per-connection *tls.Config values for the
// TLS-layered byte-stream from spec.md §4.3, grounded on
// nabbar/golib/certificates (TLSConfig interface, tlsversion subpackage)
// but narrowed to the fields the reactor actually threads through: a
// version range, a certificate/key pair for the server role, and an
// optional CA trust source plus verify flag for either role.
package tlsconfig

import (
	"crypto/tls"
	"strings"
)

// Version wraps the crypto/tls version constants with string parsing,
// grounded on certificates/tlsversion/interface.go.
type Version int

const (
	VersionUnknown Version = iota
	VersionTLS10           = Version(tls.VersionTLS10)
	VersionTLS11           = Version(tls.VersionTLS11)
	VersionTLS12           = Version(tls.VersionTLS12)
	VersionTLS13           = Version(tls.VersionTLS13)
)

// ParseVersion accepts "1.2", "TLS1.2", "tls 1.2" and similar, mirroring
// tlsversion.Parse's normalization.
func ParseVersion(s string) Version {
	s = strings.ToLower(s)
	for _, cut := range []string{`"`, `'`, "tls", "ssl", ".", "-", "_", " "} {
		s = strings.Replace(s, cut, "", -1)
	}
	switch s {
	case "1", "10":
		return VersionTLS10
	case "11":
		return VersionTLS11
	case "12":
		return VersionTLS12
	case "13":
		return VersionTLS13
	default:
		return VersionUnknown
	}
}

func (v Version) String() string {
	switch v {
	case VersionTLS10:
		return "TLS 1.0"
	case VersionTLS11:
		return "TLS 1.1"
	case VersionTLS12:
		return "TLS 1.2"
	case VersionTLS13:
		return "TLS 1.3"
	default:
		return "unknown"
	}
}

// Uint16 returns the crypto/tls version constant, or 0 for VersionUnknown
// (crypto/tls treats 0 as "no constraint").
func (v Version) Uint16() uint16 {
	if v == VersionUnknown {
		return 0
	}
	return uint16(v)
}

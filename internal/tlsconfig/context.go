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

package tlsconfig

import "crypto/tls"

// TlsContext is built once at start-up (reading certificate/key/CA files a
// single time) and then handed out, per accepted or dialed connection, as
// an independent *tls.Config clone - mirroring how the original's
// SslContext is constructed once from ssl_ctx.hpp and shared by every
// TcpStream it creates.
type TlsContext struct {
	base *tls.Config
	role Role
}

// NewTlsContext validates cfg by building its *tls.Config once, and
// returns a TlsContext that can cheaply mint per-connection configs
// afterwards.
func NewTlsContext(cfg Config) (*TlsContext, error) {
	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &TlsContext{base: base, role: cfg.Role}, nil
}

// ForConnection returns an independent *tls.Config for one connection.
// tls.Config.Clone is safe for concurrent use and is cheap relative to
// re-parsing certificate/key/CA files.
func (t *TlsContext) ForConnection(serverName string) *tls.Config {
	cfg := t.base.Clone()
	if serverName != "" {
		cfg.ServerName = serverName
	}
	return cfg
}

// IsClient reports whether this context was built for the client role.
func (t *TlsContext) IsClient() bool { return t.role == RoleClient }

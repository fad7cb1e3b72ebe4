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

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/nabbar/go-reactor/internal/xerrors"
)

// Role distinguishes which side of the handshake a Config is for, since the
// reactor's demo client and server share this package (spec.md §7's
// -c/-k/--capath flags apply to either role depending on -s/--ssl context).
type Role uint8

const (
	RoleServer Role = iota
	RoleClient
)

// Config is the narrow, reactor-specific TLS configuration surface: a
// certificate/key pair (server role), an optional trusted CA source
// (either role) and a verify flag, plus a version range. It plays the role
// certificates.TLSConfig plays in the teacher, trimmed to what
// SPEC_FULL.md's CLI surface actually exposes.
type Config struct {
	Role       Role
	VersionMin Version
	VersionMax Version
	CertFile   string
	KeyFile    string
	CAPath     string
	Verify     bool
	ServerName string
}

// Build turns Config into a *tls.Config ready to hand to
// iostream.NewTlsStream. A missing CAPath falls back to the system trust
// store rather than failing, matching crypto/tls's own zero-value
// RootCAs/ClientCAs behaviour.
func (c Config) Build() (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:         c.VersionMin.Uint16(),
		MaxVersion:         c.VersionMax.Uint16(),
		InsecureSkipVerify: !c.Verify,
		ServerName:         c.ServerName,
	}

	if c.Role == RoleServer {
		if c.CertFile == "" || c.KeyFile == "" {
			return nil, xerrors.New(xerrors.Config, "server TLS role requires both a certificate and a key file")
		}
		pair, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.Config, err, "load certificate/key pair")
		}
		cfg.Certificates = []tls.Certificate{pair}
		if c.Verify {
			cfg.ClientAuth = tls.RequireAndVerifyClientCert
		}
	}

	if c.CAPath != "" {
		pool, err := loadCAPool(c.CAPath)
		if err != nil {
			return nil, err
		}
		if c.Role == RoleServer {
			cfg.ClientCAs = pool
		} else {
			cfg.RootCAs = pool
		}
	}

	return cfg, nil
}

func loadCAPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Config, err, "read CA file")
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, xerrors.New(xerrors.Config, "no usable certificates found in CA file "+path)
	}
	return pool, nil
}

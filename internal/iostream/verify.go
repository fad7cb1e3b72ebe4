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

package iostream

import (
	"crypto/tls"

	"github.com/nabbar/go-reactor/internal/xerrors"
)

// verifyConnectionState is the post-handshake peer-certificate check gated
// by TlsStream.verify, the translation of tcp_stream.hpp's
// should_verify_/bio_.ssl->verify(). It checks only that the peer presented
// a certificate and that the handshake completed; it does not validate the
// certificate chain. Chain validation is done by crypto/tls during the
// handshake, which skips it on the client side when the config sets
// InsecureSkipVerify, so a stream built with such a config and verify=true
// accepts any presented certificate.
func verifyConnectionState(state tls.ConnectionState) error {
	if len(state.PeerCertificates) == 0 {
		return xerrors.New(xerrors.TLSVerification, "no peer certificate presented")
	}
	if !state.HandshakeComplete {
		return xerrors.New(xerrors.TLSVerification, "handshake not complete at verification time")
	}
	return nil
}

// wrapTransport tags a raw descriptor I/O error as a TransportFault.
func wrapTransport(err error) error {
	return xerrors.Wrap(xerrors.TransportFault, err, "tls transport")
}

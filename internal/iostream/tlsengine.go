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
	"errors"
	"io"
	"sync"

	"github.com/nabbar/go-reactor/internal/xerrors"
)

// TlsEngine owns one crypto/tls.Conn and the dedicated goroutines that
// drive its handshake, decrypt inbound data and encrypt outbound data. It
// is the translation of original_source's Bio/Ssl pairing (io/bio.hpp,
// io/ssl.hpp) into idiomatic Go: where the original drives OpenSSL's
// memory BIOs directly from the poller thread, this engine instead isolates
// all blocking tls.Conn calls on their own goroutines and exposes only
// non-blocking, thread-safe accessors (FeedCiphertext/DrainCiphertext,
// EnqueuePlaintext/DequeuePlaintext) to the reactor thread.
type TlsEngine struct {
	bridge  *bridgeConn
	conn    *tls.Conn
	writeCh chan []byte

	mu            sync.Mutex
	handshakeDone bool
	handshakeErr  error
	handshakeCond *sync.Cond

	readMu     sync.Mutex
	readChunks [][]byte
	readErr    error // io.EOF on orderly close, otherwise a fault

	closeOnce sync.Once
}

// NewTlsEngine builds an engine for the client or server role according to
// clientSide, and starts its driving goroutines.
func NewTlsEngine(cfg *tls.Config, clientSide bool) *TlsEngine {
	bridge := newBridgeConn()

	var conn *tls.Conn
	if clientSide {
		conn = tls.Client(bridge, cfg)
	} else {
		conn = tls.Server(bridge, cfg)
	}

	e := &TlsEngine{
		bridge:  bridge,
		conn:    conn,
		writeCh: make(chan []byte, 64),
	}
	e.handshakeCond = sync.NewCond(&e.mu)

	go e.run()

	return e
}

func (e *TlsEngine) run() {
	err := e.conn.Handshake()

	e.mu.Lock()
	e.handshakeDone = true
	e.handshakeErr = err
	e.handshakeCond.Broadcast()
	e.mu.Unlock()

	if err != nil {
		e.failRead(xerrors.Wrap(xerrors.TLSHandshake, err, "tls handshake"))
		return
	}

	go e.writeLoop()
	e.readLoop()
}

func (e *TlsEngine) readLoop() {
	buf := make([]byte, 32*1024)
	for {
		n, err := e.conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			e.readMu.Lock()
			e.readChunks = append(e.readChunks, chunk)
			e.readMu.Unlock()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				e.failRead(io.EOF)
			} else {
				e.failRead(xerrors.Wrap(xerrors.TransportFault, err, "tls read"))
			}
			return
		}
	}
}

func (e *TlsEngine) writeLoop() {
	for buf := range e.writeCh {
		if _, err := e.conn.Write(buf); err != nil {
			e.failRead(xerrors.Wrap(xerrors.TransportFault, err, "tls write"))
			return
		}
	}
}

func (e *TlsEngine) failRead(err error) {
	e.readMu.Lock()
	if e.readErr == nil {
		e.readErr = err
	}
	e.readMu.Unlock()
}

// HandshakeStatus reports whether the handshake goroutine has finished and,
// if so, its error (nil on success).
func (e *TlsEngine) HandshakeStatus() (done bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.handshakeDone, e.handshakeErr
}

// ConnectionState exposes the negotiated TLS state once the handshake has
// completed, for peer-certificate verification gating (spec.md §4.3).
func (e *TlsEngine) ConnectionState() tls.ConnectionState {
	return e.conn.ConnectionState()
}

// FeedCiphertext hands bytes read from the real descriptor to the engine.
func (e *TlsEngine) FeedCiphertext(p []byte) { e.bridge.Feed(p) }

// DrainCiphertext removes up to max bytes the engine wants written to the
// real descriptor.
func (e *TlsEngine) DrainCiphertext(max int) []byte { return e.bridge.Drain(max) }

// WantsWrite reports whether ciphertext is queued to go out to the real
// descriptor, the TLS-layer analogue of tcp_stream.hpp's want_write.
func (e *TlsEngine) WantsWrite() bool { return e.bridge.HasOutbound() }

// EnqueuePlaintext schedules application data for encryption and sending.
func (e *TlsEngine) EnqueuePlaintext(buf []byte) {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	e.writeCh <- cp
}

// DequeuePlaintext returns decrypted application data ready for delivery,
// and a terminal Outcome/fault once the peer has shut down or the
// connection has faulted.
func (e *TlsEngine) DequeuePlaintext() (chunks [][]byte, terminal Outcome, fault error) {
	e.readMu.Lock()
	defer e.readMu.Unlock()

	chunks = e.readChunks
	e.readChunks = nil

	if e.readErr == nil {
		return chunks, Outcome{}, nil
	}
	if errors.Is(e.readErr, io.EOF) {
		return chunks, OrderlyClose(), nil
	}
	return chunks, Outcome{}, e.readErr
}

// Shutdown initiates a TLS close_notify and tears down the bridge. It is
// idempotent.
func (e *TlsEngine) Shutdown() {
	e.closeOnce.Do(func() {
		_ = e.conn.Close()
		close(e.writeCh)
		_ = e.bridge.Close()
	})
}

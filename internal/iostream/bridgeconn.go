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
	"bytes"
	"io"
	"net"
	"sync"
	"time"
)

// bridgeConn is a synthetic net.Conn that stands in for the OS socket, seen
// only by crypto/tls. It is the Go-idiomatic translation of the original's
// OpenSSL memory-BIO pair (io/bio.hpp): ciphertext that tls.Conn wants to
// send is buffered in outbound for the reactor thread to Drain and write to
// the real descriptor; ciphertext arriving on the real descriptor is handed
// to Feed, from which tls.Conn's Read consumes it. crypto/tls cannot be
// driven directly by a non-blocking net.Conn that reports would-block as a
// synthetic error - any non-timeout error permanently poisons a tls.Conn -
// so its blocking net.Conn side (Read, and Write from tls.Conn) is driven
// by the TlsEngine's own goroutines, while the reactor thread only calls
// the mutex-guarded Feed, Drain, HasOutbound and Close.
type bridgeConn struct {
	mu       sync.Mutex
	cond     *sync.Cond
	inbound  bytes.Buffer
	outbound bytes.Buffer
	closed   bool
}

func newBridgeConn() *bridgeConn {
	b := &bridgeConn{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Feed hands ciphertext read from the real descriptor to the TLS engine.
func (b *bridgeConn) Feed(p []byte) {
	b.mu.Lock()
	b.inbound.Write(p)
	b.cond.Broadcast()
	b.mu.Unlock()
}

// Drain removes up to max bytes of ciphertext the TLS engine has queued to
// send over the real descriptor.
func (b *bridgeConn) Drain(max int) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.outbound.Len() == 0 {
		return nil
	}
	n := b.outbound.Len()
	if n > max {
		n = max
	}
	out := make([]byte, n)
	_, _ = b.outbound.Read(out)
	return out
}

// HasOutbound reports whether ciphertext is waiting to be drained.
func (b *bridgeConn) HasOutbound() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outbound.Len() > 0
}

// Read implements net.Conn for tls.Conn's benefit: it blocks the TLS
// engine's dedicated goroutine until ciphertext has been Fed or the bridge
// is closed.
func (b *bridgeConn) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.inbound.Len() == 0 && !b.closed {
		b.cond.Wait()
	}
	if b.inbound.Len() == 0 && b.closed {
		return 0, io.EOF
	}
	return b.inbound.Read(p)
}

// Write implements net.Conn for tls.Conn's benefit: until Close it accepts
// the full buffer into the outbound queue without blocking (after Close it
// returns io.ErrClosedPipe), since the real
// descriptor's backpressure is handled independently by the reactor thread
// via Drain.
func (b *bridgeConn) Write(p []byte) (int, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return 0, io.ErrClosedPipe
	}
	n, _ := b.outbound.Write(p)
	b.cond.Broadcast()
	b.mu.Unlock()
	return n, nil
}

// Close unblocks any pending Read with io.EOF.
func (b *bridgeConn) Close() error {
	b.mu.Lock()
	b.closed = true
	b.cond.Broadcast()
	b.mu.Unlock()
	return nil
}

type bridgeAddr struct{}

func (bridgeAddr) Network() string { return "bridge" }
func (bridgeAddr) String() string  { return "bridge" }

func (b *bridgeConn) LocalAddr() net.Addr  { return bridgeAddr{} }
func (b *bridgeConn) RemoteAddr() net.Addr { return bridgeAddr{} }

// Deadlines are not meaningful on this in-process bridge; the real
// descriptor's readiness is what the reactor polls on.
func (b *bridgeConn) SetDeadline(time.Time) error      { return nil }
func (b *bridgeConn) SetReadDeadline(time.Time) error  { return nil }
func (b *bridgeConn) SetWriteDeadline(time.Time) error { return nil }

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

package reactor

import (
	gonet "github.com/nabbar/go-reactor/internal/net"
	"github.com/nabbar/go-reactor/internal/tlsconfig"
)

// ListenerHandler accepts connections and wraps each in a DataHandler,
// grounded on original_source's TcpListenerPollHandler: want_read is
// always true, want_write always false, and read() drains accept() in a
// loop until it would block.
type ListenerHandler struct {
	listener *gonet.Listener
	tlsCtx   *tlsconfig.TlsContext // nil for a plain listener
	readBuf  int
	writeBuf int
}

// NewListenerHandler wraps an already-bound, listening Listener. tlsCtx may
// be nil for a plain-TCP listener (spec.md §8 scenario 1/2), or non-nil to
// have every accepted connection start in the TLS handshake state
// (scenario 3/4).
func NewListenerHandler(listener *gonet.Listener, tlsCtx *tlsconfig.TlsContext, readBuf, writeBuf int) *ListenerHandler {
	return &ListenerHandler{listener: listener, tlsCtx: tlsCtx, readBuf: readBuf, writeBuf: writeBuf}
}

func (l *ListenerHandler) Fd() int          { return l.listener.Fd().Fd() }
func (l *ListenerHandler) IsListener() bool { return true }
func (l *ListenerHandler) IsOpen() bool     { return l.listener.Fd().IsOpen() }
func (l *ListenerHandler) WantRead() bool   { return true }
func (l *ListenerHandler) WantWrite() bool  { return false }
func (l *ListenerHandler) Enqueue([]byte)   {}

// OnReadReady drains every pending connection off the accept queue, the
// translation of the original's accept-until-EAGAIN read() loop (there
// expressed implicitly via want_read always reporting true and the reactor
// re-polling; here made explicit since our Accept already distinguishes
// would-block from a real connection).
func (l *ListenerHandler) OnReadReady() (accepted []Accepted, chunks [][]byte, fault error) {
	for {
		fd, peer, err := l.listener.Accept()
		if err != nil {
			return accepted, nil, err
		}
		if fd == nil {
			return accepted, nil, nil
		}

		var dh Handler
		if l.tlsCtx == nil {
			dh = NewDataHandler(fd, l.readBuf, l.writeBuf)
		} else {
			cfg := l.tlsCtx.ForConnection("")
			dh = NewTlsDataHandler(fd, cfg, false /* server role */, l.readBuf, l.writeBuf)
		}
		accepted = append(accepted, Accepted{Handler: dh, Peer: peer})
	}
}

func (l *ListenerHandler) OnWriteReady() error { return nil }

func (l *ListenerHandler) Close() { l.listener.Close() }

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
	"crypto/tls"

	"github.com/nabbar/go-reactor/internal/descriptor"
	"github.com/nabbar/go-reactor/internal/iostream"
)

// DataHandler drains and progresses one plain (non-TLS) connection,
// grounded on original_source's TcpSocketPollHandler (read_queue_/
// write_queue_, want_read/want_write, read/write/dequeue/enqueue).
type DataHandler struct {
	fd      *descriptor.FileDescriptor
	stream  *iostream.ByteStream
	readBuf int
	open    bool
	closing bool
}

// NewDataHandler wraps an already non-blocking, connected descriptor.
// writeBuf is the write_chunk_size passed through to the ByteStream.
func NewDataHandler(fd *descriptor.FileDescriptor, readBuf, writeBuf int) *DataHandler {
	return &DataHandler{
		fd:      fd,
		stream:  iostream.NewByteStream(fd, writeBuf),
		readBuf: readBuf,
		open:    true,
	}
}

func (d *DataHandler) Fd() int          { return d.fd.Fd() }
func (d *DataHandler) IsListener() bool { return false }

// IsOpen reports the descriptor as still open while a cooperative Close is
// draining queued writes to the kernel, so the reactor keeps polling it for
// writability instead of dropping unsent bytes still sitting in stream's
// userspace queue.
func (d *DataHandler) IsOpen() bool {
	if d.closing {
		return d.fd.IsOpen() && d.stream.WantsWrite()
	}
	return d.open && d.fd.IsOpen()
}

// WantRead mirrors tcp_socket_poll_handler.hpp's `is_open() || stream_.want_read()`:
// a plain stream never wants to read independently of being open.
func (d *DataHandler) WantRead() bool { return !d.closing && d.IsOpen() }

// WantWrite mirrors `is_open() && (!write_queue_.empty() || stream_.want_write())`.
func (d *DataHandler) WantWrite() bool { return d.fd.IsOpen() && d.stream.WantsWrite() }

func (d *DataHandler) Enqueue(buf []byte) { d.stream.Enqueue(buf) }

func (d *DataHandler) OnReadReady() (accepted []Accepted, chunks [][]byte, fault error) {
	chunks, terminal, fault := d.stream.DrainReads(d.readBuf)
	if fault != nil {
		d.open = false
		return nil, chunks, fault
	}
	if terminal.Kind == iostream.KindOrderlyClose {
		d.open = false
	}
	return nil, chunks, nil
}

func (d *DataHandler) OnWriteReady() error {
	terminal, fault := d.stream.ProgressWrites()
	if fault != nil {
		d.open = false
		return fault
	}
	if terminal.Kind == iostream.KindOrderlyClose {
		d.open = false
	}
	return nil
}

// Close requests a cooperative shutdown. The first call only stops reading
// and leaves the descriptor open as long as stream still has queued writes
// to drain to the kernel; sweepClosed calls Close() again once IsOpen()
// reports false, at which point the descriptor is actually closed. A fault
// path (stream already has nothing queued, or is called a second time)
// closes immediately.
func (d *DataHandler) Close() {
	if !d.closing {
		d.closing = true
		if d.stream.WantsWrite() {
			return
		}
	}
	d.open = false
	d.closing = false
	d.fd.Close()
}

// TlsDataHandler is DataHandler's TLS-layered sibling, driving a
// TlsStream instead of a plain ByteStream.
type TlsDataHandler struct {
	fd      *descriptor.FileDescriptor
	stream  *iostream.TlsStream
	readBuf int
	open    bool
	closing bool
}

// NewTlsDataHandler wraps an already non-blocking, connected descriptor in
// a TLS-layered stream. clientSide selects the handshake role. writeBuf is
// the write_chunk_size passed through to the TlsStream.
func NewTlsDataHandler(fd *descriptor.FileDescriptor, cfg *tls.Config, clientSide bool, readBuf, writeBuf int) *TlsDataHandler {
	return &TlsDataHandler{
		fd:      fd,
		stream:  iostream.NewTlsStream(fd, cfg, clientSide, cfg.ClientAuth != tls.NoClientCert || !cfg.InsecureSkipVerify, writeBuf),
		readBuf: readBuf,
		open:    true,
	}
}

func (t *TlsDataHandler) Fd() int          { return t.fd.Fd() }
func (t *TlsDataHandler) IsListener() bool { return false }

// IsOpen reports the descriptor as still open while a cooperative Close is
// draining the close_notify (and anything else queued) to the kernel, so
// the reactor keeps polling for writability instead of slamming the
// descriptor shut before the responding close_notify ever reaches the wire.
func (t *TlsDataHandler) IsOpen() bool {
	if t.closing {
		return t.fd.IsOpen() && t.stream.WantsWrite()
	}
	return t.open && t.fd.IsOpen()
}

func (t *TlsDataHandler) WantRead() bool { return !t.closing && t.IsOpen() && t.stream.WantsRead() }

func (t *TlsDataHandler) WantWrite() bool { return t.fd.IsOpen() && t.stream.WantsWrite() }

func (t *TlsDataHandler) Enqueue(buf []byte) { t.stream.Enqueue(buf) }

func (t *TlsDataHandler) OnReadReady() (accepted []Accepted, chunks [][]byte, fault error) {
	chunks, terminal, fault := t.stream.DrainReads(t.readBuf)
	if fault != nil {
		t.open = false
		return nil, chunks, fault
	}
	if terminal.Kind == iostream.KindOrderlyClose {
		t.open = false
	}
	return nil, chunks, nil
}

func (t *TlsDataHandler) OnWriteReady() error {
	terminal, fault := t.stream.ProgressWrites()
	if fault != nil {
		t.open = false
		return fault
	}
	if terminal.Kind == iostream.KindOrderlyClose {
		t.open = false
	}
	return nil
}

// Close initiates a TLS shutdown (close_notify) rather than slamming the
// descriptor shut, matching tcp_stream.hpp's do_shutdown/State::SHUTDOWN
// path for a cooperative close; handle_client_faulted's quiet-shutdown path
// is taken automatically inside TlsStream when the stream already faulted.
// InitiateShutdown always tears down the engine's goroutines and bridge,
// even when the stream reached StateStop on its own, and is idempotent. The
// first call only stops reading and leaves the descriptor open as long as
// the engine still has ciphertext queued for the real socket (the
// close_notify record itself, or a final handshake flight); a second call,
// from sweepClosed once IsOpen() reports false, actually closes it. This
// is what gets the responding close_notify onto the wire instead of being
// discarded in the engine's in-process bridge.
func (t *TlsDataHandler) Close() {
	if !t.closing {
		t.closing = true
		t.stream.InitiateShutdown()
		if t.stream.WantsWrite() {
			return
		}
	}
	t.open = false
	t.closing = false
	t.fd.Close()
}

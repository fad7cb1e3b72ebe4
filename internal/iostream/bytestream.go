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
	"errors"

	"golang.org/x/sys/unix"

	"github.com/nabbar/go-reactor/internal/xerrors"
)

// rawConn is the minimal descriptor surface a ByteStream needs, satisfied
// by *descriptor.FileDescriptor. Kept as an interface here so tests can
// exercise ByteStream over a pipe-backed fake.
type rawConn interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// defaultWriteChunkSize bounds a single ProgressWrites write(2) call when
// NewByteStream is given writeChunkSize <= 0.
const defaultWriteChunkSize = 32 * 1024

// ByteStream is the plain (non-TLS) non-blocking byte-stream from
// spec.md §4.2, grounded on tcp_socket_poll_handler.hpp's read()/write()
// drain loops. It never itself wants to read or write proactively: it has
// no WantsRead, and WantsWrite only reports whether there is queued output.
// Whether the connection is still open is tracked by the owning handler,
// not by the stream.
type ByteStream struct {
	conn           rawConn
	queue          WriteQueue
	writeChunkSize int
}

// NewByteStream wraps a raw, non-blocking descriptor. writeChunkSize caps
// how much of a queued buffer ProgressWrites offers to a single Write
// call, per spec.md §4.2's min(buffer.len-offset, write_chunk_size).
func NewByteStream(conn rawConn, writeChunkSize int) *ByteStream {
	if writeChunkSize <= 0 {
		writeChunkSize = defaultWriteChunkSize
	}
	return &ByteStream{conn: conn, writeChunkSize: writeChunkSize}
}

// DrainReads performs non-blocking reads into buf-sized chunks until the
// descriptor would block, returns an orderly close, or faults. It returns
// every chunk read this call, and the terminal Outcome (WouldBlock or
// OrderlyClose) that stopped the drain; fault is non-nil only on a genuine
// I/O error distinct from would-block/EOF.
func (s *ByteStream) DrainReads(bufSize int) (chunks [][]byte, terminal Outcome, fault error) {
	buf := make([]byte, bufSize)
	for {
		n, err := s.conn.Read(buf)
		if err != nil {
			if isWouldBlock(err) {
				return chunks, WouldBlock(), nil
			}
			return chunks, Outcome{}, xerrors.Wrap(xerrors.TransportFault, err, "read")
		}
		if n == 0 {
			return chunks, OrderlyClose(), nil
		}
		chunk := make([]byte, n)
		copy(chunk, buf[:n])
		chunks = append(chunks, chunk)
	}
}

// Enqueue schedules buf for writing on the next ProgressWrites call.
func (s *ByteStream) Enqueue(buf []byte) { s.queue.Enqueue(buf) }

// WantsWrite reports whether queued output remains.
func (s *ByteStream) WantsWrite() bool { return !s.queue.Empty() }

// ProgressWrites writes as much of the queued buffers as the descriptor
// will currently accept, stopping at the first would-block, a fault, or
// an empty queue.
func (s *ByteStream) ProgressWrites() (terminal Outcome, fault error) {
	for !s.queue.Empty() {
		buf, ok := s.queue.Front()
		if !ok {
			break
		}
		if len(buf) > s.writeChunkSize {
			buf = buf[:s.writeChunkSize]
		}
		n, err := s.conn.Write(buf)
		if err != nil {
			if isWouldBlock(err) {
				return WouldBlock(), nil
			}
			return Outcome{}, xerrors.Wrap(xerrors.TransportFault, err, "write")
		}
		if n == 0 {
			return OrderlyClose(), nil
		}
		s.queue.Advance(n)
	}
	return Written(0), nil
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

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

// pendingWrite pairs a caller-supplied buffer with how much of it has
// already been written, grounded on tcp_socket_poll_handler.hpp's
// `std::deque<std::pair<std::vector<char>, std::size_t>> write_queue_`.
type pendingWrite struct {
	buf    []byte
	offset int
}

// WriteQueue holds buffers enqueued by a Handler that have not yet been
// fully written to the descriptor. It is not safe for concurrent use; the
// reactor's single thread is the only writer and reader, both for a plain
// ByteStream and for TlsStream's ciphertext queue.
type WriteQueue struct {
	pending []pendingWrite
}

// Enqueue appends a new buffer to write, starting at offset 0.
func (q *WriteQueue) Enqueue(buf []byte) {
	if len(buf) == 0 {
		return
	}
	q.pending = append(q.pending, pendingWrite{buf: buf})
}

// Empty reports whether every enqueued buffer has been fully written.
func (q *WriteQueue) Empty() bool { return len(q.pending) == 0 }

// Front returns the unwritten remainder of the head buffer, and true if
// one exists.
func (q *WriteQueue) Front() ([]byte, bool) {
	if len(q.pending) == 0 {
		return nil, false
	}
	head := q.pending[0]
	return head.buf[head.offset:], true
}

// Advance records that n more bytes of the head buffer were written,
// popping it once fully consumed.
func (q *WriteQueue) Advance(n int) {
	if len(q.pending) == 0 {
		return
	}
	q.pending[0].offset += n
	if q.pending[0].offset >= len(q.pending[0].buf) {
		q.pending = q.pending[1:]
	}
}

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

// Package reactor implements the single-threaded, non-blocking event loop
// from spec.md §4.5, grounded line-for-line on original_source's
// io/poller.hpp (event_loop, make_poll_fds, handle_event,
// remove_closed_handlers) and io/tcp_socket_poll_handler.hpp /
// io/tcp_listener_poll_handler.hpp for the two Handler variants. poll() is
// realized as Linux epoll via golang.org/x/sys/unix, since epoll scales the
// readiness query better than rebuilding a full pollfd slice every
// iteration - the one deliberate deviation from the original's poll(2) use.
package reactor

import (
	gonet "github.com/nabbar/go-reactor/internal/net"
)

// Handler is one registered file descriptor's behaviour, the Go analogue
// of original_source's PollHandler: a listener accepts new connections, a
// data handler drains/progresses one connection's byte-stream.
type Handler interface {
	Fd() int
	IsListener() bool
	IsOpen() bool
	WantRead() bool
	WantWrite() bool

	// OnReadReady is called when the descriptor is readable. It returns any
	// newly accepted connections (non-empty only for a ListenerHandler) and
	// decoded application-data chunks ready for delivery (non-empty only
	// for a DataHandler), or a fault.
	OnReadReady() (accepted []Accepted, chunks [][]byte, fault error)

	// OnWriteReady is called when the descriptor is writable.
	OnWriteReady() (fault error)

	// Close closes the handler. A data handler whose stream still has
	// queued output only stops reading on the first call and releases the
	// descriptor on a later call, once IsOpen reports false. Safe to call
	// more than once.
	Close()

	// Enqueue schedules application data for sending (no-op on a listener).
	Enqueue(buf []byte)
}

// Accepted is a newly-accepted connection returned by a ListenerHandler's
// OnReadReady, for the reactor loop to register and report via on_open.
type Accepted struct {
	Handler Handler
	Peer    gonet.PeerEndpoint
}

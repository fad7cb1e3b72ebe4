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
	"context"
	"sync"

	"golang.org/x/sys/unix"

	gonet "github.com/nabbar/go-reactor/internal/net"
	"github.com/nabbar/go-reactor/internal/logging"
)

// pollTimeoutMs bounds each epoll_wait call so the loop can notice a
// caught signal and a cancelled context promptly, matching poller.hpp's
// `poll(fds, 1000)`.
const pollTimeoutMs = 1000

// Reactor is the single-threaded event loop from spec.md §4.5. Every
// Handler it owns is driven exclusively from the goroutine that calls Run;
// Write/Close below are the only calls meant to be made from other
// goroutines, and they are simple mutex-guarded queues drained at the top
// of every loop iteration rather than direct handler mutation; this is
// the one real structural difference from poller.hpp, whose
// add_handler/write/close run on the same call stack as event_loop
// because the whole program is single-threaded there. The queues are
// unbounded slices, not fixed-capacity channels: a channel send from
// inside an OnRead callback (itself running on the Run goroutine) would
// deadlock the instant the callback emitted more writes than the
// channel's capacity, since nothing else drains it until the callback
// returns.
type Reactor struct {
	OnStartup   func()
	OnInterrupt func()
	OnOpen      func(fd int, peer gonet.PeerEndpoint)
	OnClose     func(fd int)
	OnRead      func(fd int, bufs [][]byte)
	OnError     func(fd int, err error)

	log      logging.Logger
	handlers map[int]Handler
	events   map[int]uint32

	deferredMu sync.Mutex
	writeReq   []writeRequest
	closeReq   []int
}

type writeRequest struct {
	fd  int
	buf []byte
}

// New builds an empty Reactor. Register handlers with AddListener or
// AddConnection before calling Run.
func New(log logging.Logger) *Reactor {
	if log == nil {
		log = logging.Discard
	}
	return &Reactor{
		log:      log,
		handlers: make(map[int]Handler),
		events:   make(map[int]uint32),
	}
}

// addHandler registers a Handler and, for a non-listener, invokes OnOpen.
// Only call this from the Run goroutine (at start-up, or from inside an
// OnReadReady result while handling an accept).
func (r *Reactor) addHandler(h Handler, peer gonet.PeerEndpoint) {
	r.handlers[h.Fd()] = h
	if !h.IsListener() && r.OnOpen != nil {
		r.OnOpen(h.Fd(), peer)
	}
}

// AddListener registers a listening Handler before the loop starts.
func (r *Reactor) AddListener(h Handler) {
	r.addHandler(h, gonet.PeerEndpoint{})
}

// AddConnection registers an already-connected non-listener Handler (for
// example a client's outbound connection) before the loop starts, firing
// OnOpen with peer exactly as an accepted connection would.
func (r *Reactor) AddConnection(h Handler, peer gonet.PeerEndpoint) {
	r.addHandler(h, peer)
}

// Write schedules buf for sending on fd. Safe to call from any goroutine,
// including from within an OnRead/OnOpen/OnClose/OnError callback running
// on the Run goroutine itself.
func (r *Reactor) Write(fd int, buf []byte) {
	r.deferredMu.Lock()
	r.writeReq = append(r.writeReq, writeRequest{fd: fd, buf: buf})
	r.deferredMu.Unlock()
}

// Close schedules fd for a cooperative close. Safe to call from any
// goroutine, including from within a callback on the Run goroutine.
func (r *Reactor) Close(fd int) {
	r.deferredMu.Lock()
	r.closeReq = append(r.closeReq, fd)
	r.deferredMu.Unlock()
}

// Run drains deferred Write/Close requests and services epoll readiness
// until ctx is cancelled, mirroring event_loop's overall shape: startup
// hook, poll, signal check, per-fd dispatch, sweep closed handlers.
func (r *Reactor) Run(ctx context.Context) error {
	ep, err := newEpoller()
	if err != nil {
		return err
	}
	defer ep.close()

	sig := newSignalLatch()
	defer sig.Stop()

	for fd, h := range r.handlers {
		mask := r.interestMask(h)
		if err = ep.add(fd, mask); err != nil {
			return err
		}
		r.events[fd] = mask
	}

	if r.OnStartup != nil {
		r.OnStartup()
	}

	rawEvents := make([]unix.EpollEvent, 64)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		r.drainDeferred()
		r.syncInterest(ep)

		n, err := ep.wait(rawEvents, pollTimeoutMs)
		if err != nil {
			return err
		}

		if sig.TakeAndReset() && r.OnInterrupt != nil {
			r.OnInterrupt()
		}

		for i := 0; i < n; i++ {
			r.handleEvent(ep, rawEvents[i])
		}

		r.sweepClosed(ep)
	}
}

func (r *Reactor) drainDeferred() {
	r.deferredMu.Lock()
	writes := r.writeReq
	closes := r.closeReq
	r.writeReq = nil
	r.closeReq = nil
	r.deferredMu.Unlock()

	for _, req := range writes {
		if h, ok := r.handlers[req.fd]; ok {
			h.Enqueue(req.buf)
		}
	}
	for _, fd := range closes {
		if h, ok := r.handlers[fd]; ok {
			h.Close()
		}
	}
}

func (r *Reactor) interestMask(h Handler) uint32 {
	var mask uint32
	if h.WantRead() {
		mask |= readEvent
	}
	if h.WantWrite() {
		mask |= writeEvent
	}
	return mask
}

// syncInterest re-registers interest for every open handler whose
// want_read/want_write has changed since the last iteration, the epoll
// equivalent of make_poll_fds rebuilding the whole pollfd vector every
// time.
func (r *Reactor) syncInterest(ep *epoller) {
	for fd, h := range r.handlers {
		want := r.interestMask(h)
		if cur, ok := r.events[fd]; !ok {
			_ = ep.add(fd, want)
			r.events[fd] = want
		} else if cur != want {
			_ = ep.modify(fd, want)
			r.events[fd] = want
		}
	}
}

func (r *Reactor) handleEvent(ep *epoller, ev unix.EpollEvent) {
	fd := int(ev.Fd)
	h, ok := r.handlers[fd]
	if !ok {
		return
	}

	if ev.Events&readEvent != 0 {
		accepted, chunks, err := h.OnReadReady()
		if err != nil {
			if r.OnError != nil {
				r.OnError(fd, err)
			}
			h.Close()
		}
		for _, acc := range accepted {
			r.addHandler(acc.Handler, acc.Peer)
			_ = ep.add(acc.Handler.Fd(), r.interestMask(acc.Handler))
			r.events[acc.Handler.Fd()] = r.interestMask(acc.Handler)
		}
		if len(chunks) > 0 && r.OnRead != nil {
			r.OnRead(fd, chunks)
		}
		if err != nil {
			return
		}
	}

	if !h.IsOpen() {
		return
	}

	if ev.Events&writeEvent != 0 {
		if err := h.OnWriteReady(); err != nil {
			if r.OnError != nil {
				r.OnError(fd, err)
			}
			h.Close()
		}
	}
}

func (r *Reactor) sweepClosed(ep *epoller) {
	var closed []int
	for fd, h := range r.handlers {
		if !h.IsOpen() {
			closed = append(closed, fd)
		}
	}
	for _, fd := range closed {
		h := r.handlers[fd]
		h.Close()
		_ = ep.remove(fd)
		delete(r.handlers, fd)
		delete(r.events, fd)
		if !h.IsListener() && r.OnClose != nil {
			r.OnClose(fd)
		}
	}
}

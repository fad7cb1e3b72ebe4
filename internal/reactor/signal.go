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
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// signalLatch is the Go translation of original_source's
// `inline static sig_atomic_t last_signal_` plus its sigaction-installed
// handler: a signal.Notify-fed channel drained by a small goroutine into a
// single atomic flag, checked once per event-loop iteration instead of
// being set directly from within a signal handler.
type signalLatch struct {
	raised int32
	ch     chan os.Signal
	stop   chan struct{}
}

func newSignalLatch() *signalLatch {
	l := &signalLatch{
		ch:   make(chan os.Signal, 1),
		stop: make(chan struct{}),
	}
	signal.Notify(l.ch, os.Interrupt, syscall.SIGTERM)
	go l.run()
	return l
}

func (l *signalLatch) run() {
	for {
		select {
		case <-l.ch:
			atomic.StoreInt32(&l.raised, 1)
		case <-l.stop:
			return
		}
	}
}

// TakeAndReset reports whether a signal arrived since the last call, and
// clears the flag, mirroring `if (last_signal_ != 0) { last_signal_ = 0; ... }`.
func (l *signalLatch) TakeAndReset() bool {
	return atomic.SwapInt32(&l.raised, 0) != 0
}

func (l *signalLatch) Stop() {
	signal.Stop(l.ch)
	close(l.stop)
}

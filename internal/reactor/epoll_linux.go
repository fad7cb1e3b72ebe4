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

//go:build linux

package reactor

import (
	"golang.org/x/sys/unix"

	"github.com/nabbar/go-reactor/internal/xerrors"
)

// readEvent/writeEvent are the epoll bits the reactor cares about,
// standing in for poll(2)'s POLLIN/POLLOUT in make_poll_fds.
const (
	readEvent  = unix.EPOLLIN | unix.EPOLLPRI | unix.EPOLLERR | unix.EPOLLHUP | unix.EPOLLRDHUP
	writeEvent = unix.EPOLLOUT
)

type epoller struct {
	fd int
}

func newEpoller() (*epoller, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.TransportFault, err, "epoll_create1")
	}
	return &epoller{fd: fd}, nil
}

func (e *epoller) add(fd int, events uint32) error {
	err := unix.EpollCtl(e.fd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{Fd: int32(fd), Events: events})
	if err != nil {
		return xerrors.Wrap(xerrors.TransportFault, err, "epoll_ctl add")
	}
	return nil
}

func (e *epoller) modify(fd int, events uint32) error {
	err := unix.EpollCtl(e.fd, unix.EPOLL_CTL_MOD, fd, &unix.EpollEvent{Fd: int32(fd), Events: events})
	if err != nil {
		return xerrors.Wrap(xerrors.TransportFault, err, "epoll_ctl mod")
	}
	return nil
}

func (e *epoller) remove(fd int) error {
	err := unix.EpollCtl(e.fd, unix.EPOLL_CTL_DEL, fd, nil)
	if err != nil {
		return xerrors.Wrap(xerrors.TransportFault, err, "epoll_ctl del")
	}
	return nil
}

// wait is the analogue of original_source's io::poll free function: a
// bounded-timeout wait, with EINTR folded into "zero events" rather than
// surfaced as an error, since the reactor treats a caught signal as a
// normal loop iteration (see signal.go).
func (e *epoller) wait(events []unix.EpollEvent, timeoutMs int) (int, error) {
	n, err := unix.EpollWait(e.fd, events, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, xerrors.Wrap(xerrors.TransportFault, err, "epoll_wait")
	}
	return n, nil
}

func (e *epoller) close() error { return unix.Close(e.fd) }

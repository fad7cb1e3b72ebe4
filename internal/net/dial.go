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

package net

import (
	"net"

	"golang.org/x/sys/unix"

	"github.com/nabbar/go-reactor/internal/descriptor"
	"github.com/nabbar/go-reactor/internal/xerrors"
)

// Connect resolves host and establishes a TCP connection to host:port,
// grounded on original_source's io/tcp_client_socket.hpp, whose connect()
// overloads resolve the address with getaddrinfo and then call the blocking
// connect(2) syscall directly on the socket. The client role has no
// accept-queue equivalent to race against, so there is nothing gained by
// driving the three-way handshake itself through EINPROGRESS/EPOLLOUT; the
// socket is switched to non-blocking only once connect(2) has returned,
// immediately before the descriptor is handed to the reactor.
func Connect(host string, port uint16) (*descriptor.FileDescriptor, error) {
	addr, err := resolveConnectAddr(host, port)
	if err != nil {
		return nil, err
	}

	sockFd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Config, err, "create client socket")
	}
	fd := descriptor.New(sockFd)

	if err = unix.Connect(sockFd, addr); err != nil {
		fd.Close()
		return nil, xerrors.Wrap(xerrors.TransportFault, err, "connect to "+FormatAddr(host, port))
	}
	if err = fd.SetBlocking(false); err != nil {
		fd.Close()
		return nil, xerrors.Wrap(xerrors.Config, err, "set client socket non-blocking")
	}

	return fd, nil
}

func resolveConnectAddr(host string, port uint16) (*unix.SockaddrInet4, error) {
	ip := net.ParseIP(host)
	if ip == nil {
		ips, err := ResolveHost(host)
		if err != nil {
			return nil, err
		}
		ip = ips[0]
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, xerrors.New(xerrors.Config, "only IPv4 addresses are supported")
	}

	addr := &unix.SockaddrInet4{Port: int(port)}
	copy(addr.Addr[:], ip4)
	return addr, nil
}

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

// Package net provides the listener, peer-endpoint and address-resolution
// primitives from spec.md §4.1, grounded on original_source's
// io/tcp_listener_socket.hpp + io/tcp_server_socket.hpp and the
// "08 - Addresses" stage.
package net

import (
	"net"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/nabbar/go-reactor/internal/descriptor"
	"github.com/nabbar/go-reactor/internal/xerrors"
)

// DefaultBacklog is the listen backlog used when none is given, per
// spec.md §4.1.
const DefaultBacklog = 10

// PeerEndpoint is the textual host/port of an accepted connection, attached
// to every non-listener Handler at open time.
type PeerEndpoint struct {
	Host string
	Port uint16
}

// Listener is a bound, listening, non-blocking IPv4 TCP socket.
type Listener struct {
	fd *descriptor.FileDescriptor
}

// Listen creates, binds and listens on host:port. An empty host binds the
// wildcard address, matching spec.md §4.1's default.
func Listen(host string, port uint16, backlog int) (*Listener, error) {
	if backlog <= 0 {
		backlog = DefaultBacklog
	}

	sockFd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.Config, err, "create listener socket")
	}
	fd := descriptor.New(sockFd)

	if err = fd.SetSocketOption(unix.SOL_SOCKET, unix.SO_REUSEADDR, true); err != nil {
		fd.Close()
		return nil, xerrors.Wrap(xerrors.Config, err, "set SO_REUSEADDR")
	}
	if err = fd.SetBlocking(false); err != nil {
		fd.Close()
		return nil, xerrors.Wrap(xerrors.Config, err, "set listener non-blocking")
	}

	addr, err := resolveBindAddr(host, port)
	if err != nil {
		fd.Close()
		return nil, err
	}

	if err = unix.Bind(sockFd, addr); err != nil {
		fd.Close()
		return nil, xerrors.Wrap(xerrors.Config, err, "bind listener socket")
	}
	if err = unix.Listen(sockFd, backlog); err != nil {
		fd.Close()
		return nil, xerrors.Wrap(xerrors.Config, err, "listen on bound socket")
	}

	return &Listener{fd: fd}, nil
}

func resolveBindAddr(host string, port uint16) (*unix.SockaddrInet4, error) {
	addr := &unix.SockaddrInet4{Port: int(port)}

	if host == "" {
		return addr, nil // INADDR_ANY (all zero bytes).
	}

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
	copy(addr.Addr[:], ip4)
	return addr, nil
}

// Fd returns the underlying FileDescriptor, for reactor registration.
func (l *Listener) Fd() *descriptor.FileDescriptor { return l.fd }

// Accept returns a newly-connected, non-blocking descriptor and the peer's
// address, or (nil, ..., nil) on WouldBlock, or a Fatal error. It never
// blocks (spec.md §4.1).
func (l *Listener) Accept() (*descriptor.FileDescriptor, PeerEndpoint, error) {
	connFd, sa, err := unix.Accept(l.fd.Fd())
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return nil, PeerEndpoint{}, nil
		}
		return nil, PeerEndpoint{}, xerrors.Wrap(xerrors.TransportFault, err, "accept failed")
	}

	client := descriptor.New(connFd)
	if err = client.SetBlocking(false); err != nil {
		client.Close()
		return nil, PeerEndpoint{}, xerrors.Wrap(xerrors.TransportFault, err, "set accepted socket non-blocking")
	}

	peer := PeerEndpoint{}
	if sa4, ok := sa.(*unix.SockaddrInet4); ok {
		peer.Host = net.IP(sa4.Addr[:]).String()
		peer.Port = uint16(sa4.Port)
	}

	return client, peer, nil
}

// Close closes the listening socket. Idempotent per spec.md §9's resolution
// of the source's oscillation on this point.
func (l *Listener) Close() error { return l.fd.Close() }

// FormatAddr renders host:port for logging.
func FormatAddr(host string, port uint16) string {
	return net.JoinHostPort(host, strconv.Itoa(int(port)))
}

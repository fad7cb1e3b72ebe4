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

// Command chat-server realizes spec.md §8 scenario 2: every connected
// client's input is broadcast to every other connected client.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nabbar/go-reactor/internal/cli"
	"github.com/nabbar/go-reactor/internal/descriptor"
	"github.com/nabbar/go-reactor/internal/logging"
	gonet "github.com/nabbar/go-reactor/internal/net"
	"github.com/nabbar/go-reactor/internal/reactor"
)

const readWriteBufSize = 8096

func main() {
	os.Exit(run())
}

func run() int {
	opt, err := cli.Parse("chat-server", os.Args[1:], os.Stdout)
	if err != nil {
		return cli.ExitConfigError
	}
	if opt.Help != cli.HelpNone {
		return cli.ExitConfigError
	}

	log := logging.New("chat-server", logging.LevelFromEnv("chat-server", logging.InfoLevel), os.Stderr)

	if _, _, err = descriptor.RaiseFileLimit(65536); err != nil {
		log.Warnf("raise file descriptor limit: %v", err)
	}

	ln, err := gonet.Listen("", opt.Port, gonet.DefaultBacklog)
	if err != nil {
		log.Errorf("listen: %v", err)
		return cli.ExitConfigError
	}

	r := reactor.New(log)

	var mu sync.Mutex
	members := make(map[int]gonet.PeerEndpoint)

	r.OnOpen = func(fd int, peer gonet.PeerEndpoint) {
		mu.Lock()
		members[fd] = peer
		mu.Unlock()
		log.Infof("member joined fd=%d peer=%s:%d", fd, peer.Host, peer.Port)
	}
	r.OnClose = func(fd int) {
		mu.Lock()
		delete(members, fd)
		mu.Unlock()
		log.Infof("member left fd=%d", fd)
	}
	r.OnError = func(fd int, err error) {
		log.Warnf("member fault fd=%d: %v", fd, err)
	}
	r.OnRead = func(fd int, bufs [][]byte) {
		mu.Lock()
		targets := make([]int, 0, len(members))
		for other := range members {
			if other != fd {
				targets = append(targets, other)
			}
		}
		mu.Unlock()

		for _, buf := range bufs {
			for _, t := range targets {
				r.Write(t, buf)
			}
		}
	}
	r.AddListener(reactor.NewListenerHandler(ln, nil, readWriteBufSize, readWriteBufSize))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Infof("chat server listening on %s", gonet.FormatAddr("0.0.0.0", opt.Port))
	if err = r.Run(ctx); err != nil {
		log.Errorf("reactor run: %v", err)
		return cli.ExitConfigError
	}
	return cli.ExitNormal
}

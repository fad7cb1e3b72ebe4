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

// Command client realizes spec.md §8 scenarios 5 and 6: it connects to a
// peer, echoes stdin to it and its replies to stdout, and terminates
// cleanly the moment the peer closes the connection (plain, scenario 5, or
// via a TLS close_notify, scenario 6), rather than treating that closure
// as an error.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nabbar/go-reactor/internal/cli"
	"github.com/nabbar/go-reactor/internal/logging"
	gonet "github.com/nabbar/go-reactor/internal/net"
	"github.com/nabbar/go-reactor/internal/reactor"
	"github.com/nabbar/go-reactor/internal/tlsconfig"
)

const readWriteBufSize = 8096

func main() {
	os.Exit(run())
}

func run() int {
	opt, err := cli.Parse("client", os.Args[1:], os.Stdout)
	if err != nil {
		return cli.ExitConfigError
	}
	if opt.Help != cli.HelpNone {
		return cli.ExitConfigError
	}

	log := logging.New("client", logging.LevelFromEnv("client", logging.InfoLevel), os.Stderr)

	var cfg *tlsconfig.TlsContext
	if opt.SSL {
		cfg, err = tlsconfig.NewTlsContext(tlsconfig.Config{
			Role:       tlsconfig.RoleClient,
			VersionMin: tlsconfig.VersionTLS12,
			VersionMax: tlsconfig.VersionTLS13,
			CertFile:   opt.CertFile,
			KeyFile:    opt.KeyFile,
			CAPath:     opt.CAPath,
			Verify:     true,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return cli.ExitConfigError
		}
	}

	fd, err := gonet.Connect(opt.Host, opt.Port)
	if err != nil {
		log.Errorf("connect to %s: %v", gonet.FormatAddr(opt.Host, opt.Port), err)
		return cli.ExitConfigError
	}

	r := reactor.New(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r.OnOpen = func(fd int, peer gonet.PeerEndpoint) {
		log.Infof("connected to %s (tls=%v)", gonet.FormatAddr(opt.Host, opt.Port), opt.SSL)
	}
	r.OnClose = func(fd int) {
		log.Infof("peer closed the connection")
		cancel()
	}
	r.OnError = func(fd int, err error) {
		log.Warnf("connection fault: %v", err)
	}
	r.OnRead = func(fd int, bufs [][]byte) {
		for _, buf := range bufs {
			os.Stdout.Write(buf)
		}
	}

	var handler reactor.Handler
	if opt.SSL {
		handler = reactor.NewTlsDataHandler(fd, cfg.ForConnection(opt.Host), true, readWriteBufSize, readWriteBufSize)
	} else {
		handler = reactor.NewDataHandler(fd, readWriteBufSize, readWriteBufSize)
	}
	connFd := handler.Fd()
	r.AddConnection(handler, gonet.PeerEndpoint{Host: opt.Host, Port: opt.Port})

	go pumpStdin(r, connFd, cancel)

	if err = r.Run(ctx); err != nil {
		log.Errorf("reactor run: %v", err)
		return cli.ExitConfigError
	}
	return cli.ExitNormal
}

// pumpStdin reads lines from stdin and schedules them for sending on fd,
// closing the connection once stdin is exhausted (Ctrl-D).
func pumpStdin(r *reactor.Reactor, fd int, cancel context.CancelFunc) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Bytes()
		buf := make([]byte, len(line)+1)
		copy(buf, line)
		buf[len(line)] = '\n'
		r.Write(fd, buf)
	}
	r.Close(fd)
}

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

// Command echo-server realizes spec.md §8 scenarios 1, 3 and 4: a single
// listener that echoes back whatever each client sends, optionally over
// TLS with server-certificate authentication and, with --capath, mutual
// TLS client-certificate verification.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nabbar/go-reactor/internal/cli"
	"github.com/nabbar/go-reactor/internal/descriptor"
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
	opt, err := cli.Parse("echo-server", os.Args[1:], os.Stdout)
	if err != nil {
		return cli.ExitConfigError
	}
	if opt.Help != cli.HelpNone {
		return cli.ExitConfigError
	}
	if err = opt.ValidateServerTLS(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitConfigError
	}

	log := logging.New("echo-server", logging.LevelFromEnv("echo-server", logging.InfoLevel), os.Stderr)

	if _, _, err = descriptor.RaiseFileLimit(65536); err != nil {
		log.Warnf("raise file descriptor limit: %v", err)
	}

	var tlsCtx *tlsconfig.TlsContext
	if opt.SSL {
		tlsCtx, err = tlsconfig.NewTlsContext(tlsconfig.Config{
			Role:       tlsconfig.RoleServer,
			VersionMin: tlsconfig.VersionTLS12,
			VersionMax: tlsconfig.VersionTLS13,
			CertFile:   opt.CertFile,
			KeyFile:    opt.KeyFile,
			CAPath:     opt.CAPath,
			Verify:     opt.CAPath != "",
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return cli.ExitConfigError
		}
	}

	ln, err := gonet.Listen("", opt.Port, gonet.DefaultBacklog)
	if err != nil {
		log.Errorf("listen: %v", err)
		return cli.ExitConfigError
	}

	r := reactor.New(log)
	r.OnOpen = func(fd int, peer gonet.PeerEndpoint) {
		log.Infof("connection opened fd=%d peer=%s:%d", fd, peer.Host, peer.Port)
	}
	r.OnClose = func(fd int) {
		log.Infof("connection closed fd=%d", fd)
	}
	r.OnError = func(fd int, err error) {
		log.Warnf("connection fault fd=%d: %v", fd, err)
	}
	r.OnRead = func(fd int, bufs [][]byte) {
		for _, buf := range bufs {
			r.Write(fd, buf)
		}
	}
	r.AddListener(reactor.NewListenerHandler(ln, tlsCtx, readWriteBufSize, readWriteBufSize))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Infof("listening on %s (tls=%v)", gonet.FormatAddr("0.0.0.0", opt.Port), opt.SSL)
	if err = r.Run(ctx); err != nil {
		log.Errorf("reactor run: %v", err)
		return cli.ExitConfigError
	}
	return cli.ExitNormal
}

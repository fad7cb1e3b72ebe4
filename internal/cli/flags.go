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

// Package cli parses the command-line surface shared by every demo
// application (cmd/echo-server, cmd/chat-server, cmd/client) from
// spec.md §6. It uses spf13/pflag directly, rather than the teacher's full
// spf13/cobra command-tree wrapper (package cobra), because these demos
// are single-command binaries with no subcommands - cobra's command tree
// would be pure ceremony here, while pflag still gives the same
// GNU-style long/short flag parsing the teacher's cobra layer is built on.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// HelpVerbosity selects how much detail --help prints, per spec.md §6:
// repeated occurrences of --help step from basic to advanced to expert.
type HelpVerbosity int

const (
	HelpNone HelpVerbosity = iota
	HelpBasic
	HelpAdvanced
	HelpExpert
)

// DefaultPort is the demo applications' default port, per spec.md §6.
const DefaultPort = 22000

// Options is the parsed command-line surface.
type Options struct {
	SSL      bool
	Help     HelpVerbosity
	Port     uint16
	Host     string
	CertFile string
	KeyFile  string
	CAPath   string
}

// Parse parses args (normally os.Args[1:]) into Options. It returns a
// non-nil error when parsing itself fails, which the demo binaries map to
// ExitConfigError (per spec.md §6's exit-code table); validation of flag
// combinations (e.g. --ssl without --certfile on
// a server) is the caller's responsibility, since only the caller knows
// whether it is acting as client or server.
func Parse(progName string, args []string, out io.Writer) (Options, error) {
	fs := pflag.NewFlagSet(progName, pflag.ContinueOnError)
	fs.SetOutput(out)

	var opt Options
	var helpCount int

	fs.BoolVarP(&opt.SSL, "ssl", "s", false, "enable TLS on the primary connection")
	fs.CountVarP(&helpCount, "help", "", "print help; repeat for more verbosity (basic/advanced/expert)")
	fs.Uint16VarP(&opt.Port, "port", "p", DefaultPort, "port number")
	fs.StringVarP(&opt.Host, "host", "h", "localhost", "host name or address (client only)")
	fs.StringVarP(&opt.CertFile, "certfile", "c", "", "TLS server certificate file (PEM)")
	fs.StringVarP(&opt.KeyFile, "keyfile", "k", "", "TLS private key file (PEM)")
	fs.StringVar(&opt.CAPath, "capath", "", "client-side certificate-authority bundle")

	if err := fs.Parse(args); err != nil {
		return opt, err
	}

	switch {
	case helpCount >= 3:
		opt.Help = HelpExpert
	case helpCount == 2:
		opt.Help = HelpAdvanced
	case helpCount == 1:
		opt.Help = HelpBasic
	default:
		opt.Help = HelpNone
	}

	if opt.Help != HelpNone {
		printHelp(out, fs, opt.Help)
	}

	return opt, nil
}

func printHelp(out io.Writer, fs *pflag.FlagSet, level HelpVerbosity) {
	fmt.Fprintln(out, "Usage: "+fs.Name()+" [flags]")
	fmt.Fprintln(out, fs.FlagUsages())
	if level >= HelpAdvanced {
		fmt.Fprintln(out, "Environment:")
		fmt.Fprintln(out, "  LOGGER_LEVEL          default log level for every logger")
		fmt.Fprintln(out, "  LOGGER_LEVEL_<NAME>   per-logger override")
	}
	if level >= HelpExpert {
		fmt.Fprintln(out, "Exit codes:")
		fmt.Fprintln(out, "  0   normal termination")
		fmt.Fprintln(out, "  1   configuration error (missing cert/key, invalid combination, help requested)")
	}
}

// ValidateServerTLS enforces spec.md §6's "required with --ssl on the
// server" rule for -c/-k.
func (o Options) ValidateServerTLS() error {
	if o.SSL && (o.CertFile == "" || o.KeyFile == "") {
		return fmt.Errorf("--ssl on the server requires both --certfile and --keyfile")
	}
	return nil
}

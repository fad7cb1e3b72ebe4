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

// Package iostream implements the non-blocking byte-stream abstraction from
// spec.md §4.2 and its TLS-layered variant from §4.3, grounded on
// original_source's io/tcp_socket_poll_handler.hpp (read/write draining
// loops, std::variant<vector<char>, eof, blocked> outcome) and
// io/tcp_stream.hpp (the TLS state machine). Go has no tagged union, so the
// C++ std::visit-over-variant dispatch becomes a small closed Kind enum on
// Outcome, matched with a switch.
package iostream

// Kind tags what happened on one non-blocking read or write attempt.
type Kind uint8

const (
	// KindData means bytes were transferred; Outcome.Data holds them (read)
	// or Outcome.N holds the count (write).
	KindData Kind = iota
	// KindWouldBlock means the descriptor has no more data to give (read)
	// or no more buffer space to accept (write) right now.
	KindWouldBlock
	// KindOrderlyClose means the peer performed a clean shutdown (read EOF,
	// or a write discovering the peer has gone).
	KindOrderlyClose
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindWouldBlock:
		return "would-block"
	case KindOrderlyClose:
		return "orderly-close"
	default:
		return "unknown"
	}
}

// Outcome is the tagged three-way result of one DrainReads/ProgressWrites
// attempt, per spec.md §4.2: data transferred, would-block, or orderly
// close. A genuine error (a Fault) is never folded into Outcome - it is
// returned as a separate error value, kept apart so callers cannot
// accidentally treat a fault as just another outcome kind.
type Outcome struct {
	Kind Kind
	Data []byte // valid when Kind == KindData, for a read
	N    int    // valid when Kind == KindData, for a write
}

// Data builds a KindData read outcome.
func Data(buf []byte) Outcome { return Outcome{Kind: KindData, Data: buf} }

// Written builds a KindData write outcome.
func Written(n int) Outcome { return Outcome{Kind: KindData, N: n} }

// WouldBlock is the shared would-block outcome.
func WouldBlock() Outcome { return Outcome{Kind: KindWouldBlock} }

// OrderlyClose is the shared orderly-close outcome.
func OrderlyClose() Outcome { return Outcome{Kind: KindOrderlyClose} }

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

package iostream

import (
	"crypto/tls"

	"github.com/nabbar/go-reactor/internal/xerrors"
)

// State is the TLS-layered stream's lifecycle, grounded on
// original_source's io/tcp_stream.hpp TcpStream::State enum.
type State uint8

const (
	StateStart State = iota
	StateHandshake
	StateData
	StateShutdown
	StateStop
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateHandshake:
		return "handshake"
	case StateData:
		return "data"
	case StateShutdown:
		return "shutdown"
	case StateStop:
		return "stop"
	default:
		return "unknown"
	}
}

// TlsStream is the TLS-layered non-blocking byte-stream from spec.md §4.3:
// a state machine (Start/Handshake/Data/Shutdown/Stop) wrapping a TlsEngine,
// with want-read/want-write driven by the TLS protocol's own needs rather
// than by what the application currently wants to send, matching
// tcp_stream.hpp's want_read/want_write overrides.
type TlsStream struct {
	raw            rawConn
	engine         *TlsEngine
	outQueue       WriteQueue
	state          State
	verify         bool
	faulted        bool
	writeChunkSize int
}

// NewTlsStream wraps raw (the real non-blocking descriptor) with a TLS
// engine built from cfg, in the client or server role. verify gates peer
// certificate verification once the handshake completes, mirroring
// should_verify_ in tcp_stream.hpp. writeChunkSize caps how much ciphertext
// ProgressWrites offers to a single Write call, per spec.md §4.2's
// min(buffer.len-offset, write_chunk_size).
func NewTlsStream(raw rawConn, cfg *tls.Config, clientSide bool, verify bool, writeChunkSize int) *TlsStream {
	if writeChunkSize <= 0 {
		writeChunkSize = defaultWriteChunkSize
	}
	return &TlsStream{
		raw:            raw,
		engine:         NewTlsEngine(cfg, clientSide),
		state:          StateHandshake,
		verify:         verify,
		writeChunkSize: writeChunkSize,
	}
}

// WantsRead reports whether the stream still has use for more raw bytes
// from the descriptor: always true until the stream has fully stopped,
// since the handshake and any in-flight shutdown alike consume ciphertext.
func (s *TlsStream) WantsRead() bool { return s.state != StateStop }

// WantsWrite reports whether there is ciphertext queued for the real
// descriptor, whether driven by application writes or by the TLS protocol
// itself (handshake flights, close_notify).
func (s *TlsStream) WantsWrite() bool {
	return !s.outQueue.Empty() || s.engine.WantsWrite()
}

// Enqueue schedules plaintext application data for encryption and sending.
func (s *TlsStream) Enqueue(buf []byte) { s.engine.EnqueuePlaintext(buf) }

// DrainReads reads raw ciphertext from the descriptor, feeds it to the TLS
// engine, advances the handshake state if needed, and returns any decrypted
// application chunks the engine has produced. A fault here can originate
// from the raw descriptor or from the TLS engine (handshake failure,
// decryption failure, failed verification).
func (s *TlsStream) DrainReads(bufSize int) (chunks [][]byte, terminal Outcome, fault error) {
	buf := make([]byte, bufSize)
	for {
		n, err := s.raw.Read(buf)
		if err != nil {
			if isWouldBlock(err) {
				break
			}
			s.faulted = true
			return nil, Outcome{}, wrapTransport(err)
		}
		if n == 0 {
			if s.state == StateHandshake {
				// A peer that disappears before completing the handshake
				// never reaches a state the protocol can call "closed";
				// this is a transport fault, not a Shutdown transition.
				s.faulted = true
				s.engine.Shutdown()
				return nil, Outcome{}, xerrors.New(xerrors.TLSHandshake, "peer closed connection during TLS handshake")
			}
			// Orderly close at the TCP layer while still inside the TLS
			// state machine; treat this as a fault-free orderly close only
			// once the engine has drained what it already had buffered.
			if s.state == StateData {
				// Closing the bridge lets the engine decrypt the ciphertext
				// already fed and then see EOF; DequeuePlaintext reports
				// OrderlyClose after that data has been handed out.
				_ = s.engine.bridge.Close()
				break
			}
			s.state = StateStop
			break
		}
		s.engine.FeedCiphertext(buf[:n])
	}

	if s.state == StateHandshake {
		done, err := s.engine.HandshakeStatus()
		if err != nil {
			s.faulted = true
			return nil, Outcome{}, err
		}
		if done {
			s.state = StateData
			if s.verify {
				if verr := verifyConnectionState(s.engine.ConnectionState()); verr != nil {
					s.faulted = true
					return nil, Outcome{}, verr
				}
			}
		}
	}

	appChunks, appTerminal, appFault := s.engine.DequeuePlaintext()
	if appFault != nil {
		s.faulted = true
		return appChunks, Outcome{}, appFault
	}
	if appTerminal.Kind == KindOrderlyClose {
		s.state = StateStop
		return appChunks, OrderlyClose(), nil
	}
	if s.state == StateStop {
		return appChunks, OrderlyClose(), nil
	}
	return appChunks, WouldBlock(), nil
}

// ProgressWrites drains ciphertext the TLS engine wants sent and writes it
// to the real descriptor until the descriptor would block.
func (s *TlsStream) ProgressWrites() (terminal Outcome, fault error) {
	for {
		if s.outQueue.Empty() {
			if chunk := s.engine.DrainCiphertext(s.writeChunkSize); chunk != nil {
				s.outQueue.Enqueue(chunk)
			} else {
				return Written(0), nil
			}
		}

		front, ok := s.outQueue.Front()
		if !ok {
			return Written(0), nil
		}
		if len(front) > s.writeChunkSize {
			front = front[:s.writeChunkSize]
		}
		n, err := s.raw.Write(front)
		if err != nil {
			if isWouldBlock(err) {
				return WouldBlock(), nil
			}
			s.faulted = true
			return Outcome{}, wrapTransport(err)
		}
		if n == 0 {
			s.state = StateStop
			return OrderlyClose(), nil
		}
		s.outQueue.Advance(n)
	}
}

// InitiateShutdown starts a TLS close_notify, the analogue of
// tcp_stream.hpp's do_shutdown transition out of State::DATA. A faulted
// stream skips straight past shutdown (the original's
// handle_client_faulted/quiet_shutdown, to avoid SIGPIPE noise on an
// already-broken socket). It always tears down the TLS engine's
// goroutines and bridge, even if the stream already reached StateStop on
// its own (a clean peer EOF at the TCP layer never does this itself), and
// is safe to call more than once: TlsEngine.Shutdown is idempotent.
func (s *TlsStream) InitiateShutdown() {
	if s.faulted || s.state == StateStop {
		s.state = StateStop
	} else {
		s.state = StateShutdown
	}
	s.engine.Shutdown()
}

// State returns the stream's current lifecycle state.
func (s *TlsStream) State() State { return s.state }

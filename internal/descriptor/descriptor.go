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

// Package descriptor owns a single OS file descriptor, grounded on
// original_source's io/file.hpp (RAII fd wrapper: one logical owner, an
// is_open flag, fcntl-driven blocking toggle) but with Go-idiomatic
// idempotent Close via sync.Once rather than relying on destructor timing.
package descriptor

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// FileDescriptor owns one OS descriptor exclusively. Close is safe to call
// more than once; only the first call performs the syscall.
type FileDescriptor struct {
	fd        int
	open      int32 // atomic bool: 1 while open
	closeOnce sync.Once
	closeErr  error
}

// New wraps an already-created OS descriptor.
func New(fd int) *FileDescriptor {
	return &FileDescriptor{fd: fd, open: 1}
}

// Fd returns the OS descriptor.
func (f *FileDescriptor) Fd() int { return f.fd }

// IsOpen reports whether Close has not yet been called.
func (f *FileDescriptor) IsOpen() bool { return atomic.LoadInt32(&f.open) == 1 }

// SetBlocking toggles O_NONBLOCK. Every descriptor the reactor owns must be
// set non-blocking before being handed to a Handler (spec.md §5).
func (f *FileDescriptor) SetBlocking(blocking bool) error {
	return unix.SetNonblock(f.fd, !blocking)
}

// SetSocketOption wraps setsockopt for a boolean option (e.g. SO_REUSEADDR).
func (f *FileDescriptor) SetSocketOption(level, name int, enabled bool) error {
	v := 0
	if enabled {
		v = 1
	}
	return unix.SetsockoptInt(f.fd, level, name, v)
}

// Read performs a single non-blocking read syscall.
func (f *FileDescriptor) Read(p []byte) (int, error) {
	return unix.Read(f.fd, p)
}

// Write performs a single non-blocking write syscall.
func (f *FileDescriptor) Write(p []byte) (int, error) {
	return unix.Write(f.fd, p)
}

// Close is idempotent: the descriptor is closed at most once. The error of
// that single close(2) call is recorded and returned to every caller,
// including later calls that perform no syscall.
func (f *FileDescriptor) Close() error {
	f.closeOnce.Do(func() {
		atomic.StoreInt32(&f.open, 0)
		f.closeErr = unix.Close(f.fd)
	})
	return f.closeErr
}

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

package descriptor

import (
	"syscall"

	"github.com/nabbar/go-reactor/internal/xerrors"
)

// SystemFileDescriptorLimit returns the current soft and hard RLIMIT_NOFILE,
// grounded on nabbar/golib/ioutils.systemFileDescriptor. A reactor that will
// host many concurrent Handlers calls RaiseFileLimit at start-up so it does
// not run out of descriptors under load.
func SystemFileDescriptorLimit() (cur int, max int, err error) {
	var rLimit syscall.Rlimit
	if e := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); e != nil {
		return 0, 0, xerrors.Wrap(xerrors.Config, e, "getrlimit RLIMIT_NOFILE")
	}
	return int(rLimit.Cur), int(rLimit.Max), nil
}

// RaiseFileLimit raises RLIMIT_NOFILE's current (soft) limit to newValue,
// raising the hard limit too if necessary. It is a no-op (and not an error)
// if the current limit already meets newValue.
func RaiseFileLimit(newValue int) (cur int, max int, err error) {
	var rLimit syscall.Rlimit
	if e := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); e != nil {
		return 0, 0, xerrors.Wrap(xerrors.Config, e, "getrlimit RLIMIT_NOFILE")
	}

	if newValue < 1 || uint64(newValue) <= rLimit.Cur {
		return int(rLimit.Cur), int(rLimit.Max), nil
	}

	if uint64(newValue) > rLimit.Max {
		rLimit.Max = uint64(newValue)
	}
	rLimit.Cur = uint64(newValue)

	if e := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); e != nil {
		return 0, 0, xerrors.Wrap(xerrors.Config, e, "setrlimit RLIMIT_NOFILE")
	}

	return SystemFileDescriptorLimit()
}

package descriptor_test

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/nabbar/go-reactor/internal/descriptor"
)

func pipePair(t *testing.T) (*descriptor.FileDescriptor, *descriptor.FileDescriptor) {
	t.Helper()
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK); err != nil {
		t.Fatalf("pipe2: %v", err)
	}
	return descriptor.New(fds[0]), descriptor.New(fds[1])
}

func TestReadWriteRoundTrip(t *testing.T) {
	r, w := pipePair(t)
	defer r.Close()
	defer w.Close()

	n, err := w.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("write: n=%d err=%v", n, err)
	}

	buf := make([]byte, 16)
	n, err = r.Read(buf)
	if err != nil || string(buf[:n]) != "hello" {
		t.Fatalf("read: n=%d err=%v buf=%q", n, err, buf[:n])
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	r, _ := pipePair(t)

	if err := r.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got: %v", err)
	}
	if r.IsOpen() {
		t.Fatalf("expected IsOpen() == false after Close")
	}
}

func TestRaiseFileLimitNoopWhenAlreadyHigher(t *testing.T) {
	cur, _, err := descriptor.SystemFileDescriptorLimit()
	if err != nil {
		t.Fatalf("SystemFileDescriptorLimit: %v", err)
	}

	gotCur, _, err := descriptor.RaiseFileLimit(cur - 1)
	if err != nil {
		t.Fatalf("RaiseFileLimit: %v", err)
	}
	if gotCur != cur {
		t.Fatalf("expected limit unchanged at %d, got %d", cur, gotCur)
	}
}

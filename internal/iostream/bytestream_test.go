package iostream_test

import (
	"golang.org/x/sys/unix"

	"github.com/nabbar/go-reactor/internal/descriptor"
	"github.com/nabbar/go-reactor/internal/iostream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newNonblockingPipe() (*descriptor.FileDescriptor, *descriptor.FileDescriptor) {
	var fds [2]int
	Expect(unix.Pipe2(fds[:], unix.O_NONBLOCK)).To(Succeed())
	return descriptor.New(fds[0]), descriptor.New(fds[1])
}

var _ = Describe("ByteStream", func() {
	var r, w *descriptor.FileDescriptor

	BeforeEach(func() {
		r, w = newNonblockingPipe()
	})

	AfterEach(func() {
		r.Close()
		w.Close()
	})

	It("drains exactly what was written and then reports would-block", func() {
		_, err := w.Write([]byte("hello world"))
		Expect(err).ToNot(HaveOccurred())

		s := iostream.NewByteStream(r, 0)
		chunks, terminal, fault := s.DrainReads(4)

		Expect(fault).ToNot(HaveOccurred())
		Expect(terminal.Kind).To(Equal(iostream.KindWouldBlock))

		var got []byte
		for _, c := range chunks {
			got = append(got, c...)
		}
		Expect(string(got)).To(Equal("hello world"))
	})

	It("reports orderly close once the writer end is closed", func() {
		Expect(w.Close()).To(Succeed())

		s := iostream.NewByteStream(r, 0)
		chunks, terminal, fault := s.DrainReads(16)

		Expect(fault).ToNot(HaveOccurred())
		Expect(chunks).To(BeEmpty())
		Expect(terminal.Kind).To(Equal(iostream.KindOrderlyClose))
	})

	It("progresses queued writes until the queue is empty", func() {
		s := iostream.NewByteStream(w, 0)
		s.Enqueue([]byte("abc"))
		Expect(s.WantsWrite()).To(BeTrue())

		terminal, fault := s.ProgressWrites()
		Expect(fault).ToNot(HaveOccurred())
		Expect(terminal.Kind).To(Equal(iostream.KindData))
		Expect(s.WantsWrite()).To(BeFalse())

		buf := make([]byte, 16)
		n, err := r.Read(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("abc"))
	})

	It("never offers more than writeChunkSize bytes to a single Write call", func() {
		fake := &sizeRecordingConn{}
		s := iostream.NewByteStream(fake, 4)
		s.Enqueue([]byte("abcdefgh"))

		terminal, fault := s.ProgressWrites()
		Expect(fault).ToNot(HaveOccurred())
		Expect(terminal.Kind).To(Equal(iostream.KindData))
		Expect(s.WantsWrite()).To(BeFalse())

		Expect(fake.writeSizes).To(Equal([]int{4, 4}))
		Expect(string(fake.written)).To(Equal("abcdefgh"))
	})
})

// sizeRecordingConn is a rawConn fake recording the size of every Write
// call it receives, used to assert write_chunk_size is honored without
// depending on a real pipe's buffer size to force partial writes.
type sizeRecordingConn struct {
	written    []byte
	writeSizes []int
}

func (f *sizeRecordingConn) Read(p []byte) (int, error) {
	return 0, unix.EAGAIN
}

func (f *sizeRecordingConn) Write(p []byte) (int, error) {
	f.writeSizes = append(f.writeSizes, len(p))
	f.written = append(f.written, p...)
	return len(p), nil
}

package reactor_test

import (
	"context"
	stdnet "net"
	"sync"
	"time"

	gonet "github.com/nabbar/go-reactor/internal/net"
	"github.com/nabbar/go-reactor/internal/reactor"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func startReactor(r *reactor.Reactor) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

var _ = Describe("Reactor end-to-end", func() {
	It("echoes bytes back to a single plain client (scenario 1)", func() {
		const port = 18221

		ln, err := gonet.Listen("127.0.0.1", port, 0)
		Expect(err).ToNot(HaveOccurred())

		r := reactor.New(nil)
		r.OnRead = func(fd int, bufs [][]byte) {
			for _, b := range bufs {
				r.Write(fd, b)
			}
		}
		r.AddListener(reactor.NewListenerHandler(ln, nil, 4096, 4096))

		stop := startReactor(r)
		defer stop()

		time.Sleep(20 * time.Millisecond)

		conn, err := stdnet.DialTimeout("tcp", gonet.FormatAddr("127.0.0.1", port), 2*time.Second)
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		_, err = conn.Write([]byte("hello reactor"))
		Expect(err).ToNot(HaveOccurred())

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		buf := make([]byte, 64)
		n, err := conn.Read(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hello reactor"))
	})

	It("broadcasts one client's message to every other connected client (scenario 2)", func() {
		const port = 18222

		ln, err := gonet.Listen("127.0.0.1", port, 0)
		Expect(err).ToNot(HaveOccurred())

		r := reactor.New(nil)

		var mu sync.Mutex
		peers := map[int]bool{}

		r.OnOpen = func(fd int, _ gonet.PeerEndpoint) {
			mu.Lock()
			peers[fd] = true
			mu.Unlock()
		}
		r.OnClose = func(fd int) {
			mu.Lock()
			delete(peers, fd)
			mu.Unlock()
		}
		r.OnRead = func(fd int, bufs [][]byte) {
			mu.Lock()
			targets := make([]int, 0, len(peers))
			for p := range peers {
				if p != fd {
					targets = append(targets, p)
				}
			}
			mu.Unlock()
			for _, b := range bufs {
				for _, t := range targets {
					r.Write(t, b)
				}
			}
		}
		r.AddListener(reactor.NewListenerHandler(ln, nil, 4096, 4096))

		stop := startReactor(r)
		defer stop()

		time.Sleep(20 * time.Millisecond)

		a, err := stdnet.DialTimeout("tcp", gonet.FormatAddr("127.0.0.1", port), 2*time.Second)
		Expect(err).ToNot(HaveOccurred())
		defer a.Close()
		b, err := stdnet.DialTimeout("tcp", gonet.FormatAddr("127.0.0.1", port), 2*time.Second)
		Expect(err).ToNot(HaveOccurred())
		defer b.Close()

		time.Sleep(20 * time.Millisecond)

		_, err = a.Write([]byte("hi from a"))
		Expect(err).ToNot(HaveOccurred())

		b.SetReadDeadline(time.Now().Add(2 * time.Second))
		buf := make([]byte, 64)
		n, err := b.Read(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hi from a"))
	})
})

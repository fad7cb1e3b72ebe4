package net_test

import (
	stdnet "net"
	"testing"
	"time"

	gonet "github.com/nabbar/go-reactor/internal/net"
)

func TestListenBindsFixedPortAndAccepts(t *testing.T) {
	const port = 18111

	ln, err := gonet.Listen("127.0.0.1", port, 0)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	dialDone := make(chan error, 1)
	go func() {
		conn, dialErr := stdnet.DialTimeout("tcp", gonet.FormatAddr("127.0.0.1", port), 2*time.Second)
		if dialErr == nil {
			conn.Close()
		}
		dialDone <- dialErr
	}()

	var accepted bool
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		client, peer, acceptErr := ln.Accept()
		if acceptErr != nil {
			t.Fatalf("Accept: %v", acceptErr)
		}
		if client != nil {
			if peer.Host == "" {
				t.Fatalf("expected non-empty peer host")
			}
			client.Close()
			accepted = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !accepted {
		t.Fatalf("Accept never returned a connection")
	}
	if dialErr := <-dialDone; dialErr != nil {
		t.Fatalf("dial: %v", dialErr)
	}
}

func TestFormatAddr(t *testing.T) {
	if got := gonet.FormatAddr("localhost", 22000); got != "localhost:22000" {
		t.Fatalf("FormatAddr = %q", got)
	}
}

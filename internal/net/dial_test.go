package net_test

import (
	"testing"
	"time"

	gonet "github.com/nabbar/go-reactor/internal/net"
)

func TestConnectReachesListener(t *testing.T) {
	const port = 18112

	ln, err := gonet.Listen("127.0.0.1", port, 0)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	acceptDone := make(chan error, 1)
	go func() {
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			client, _, acceptErr := ln.Accept()
			if acceptErr != nil {
				acceptDone <- acceptErr
				return
			}
			if client != nil {
				client.Close()
				acceptDone <- nil
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		acceptDone <- nil
	}()

	fd, err := gonet.Connect("127.0.0.1", port)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer fd.Close()

	if err = <-acceptDone; err != nil {
		t.Fatalf("Accept: %v", err)
	}
}

func TestConnectRejectsNonIPv4Host(t *testing.T) {
	if _, err := gonet.Connect("::1", 18113); err == nil {
		t.Fatalf("expected error for an IPv6 literal host")
	}
}

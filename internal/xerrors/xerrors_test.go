package xerrors_test

import (
	"errors"
	"testing"

	"github.com/nabbar/go-reactor/internal/xerrors"
)

func TestNewCarriesCode(t *testing.T) {
	err := xerrors.New(xerrors.Config, "missing --certfile")

	if err.Code() != xerrors.Config {
		t.Fatalf("expected Config code, got %v", err.Code())
	}
	if !err.IsCode(xerrors.Config) {
		t.Fatalf("IsCode(Config) should be true")
	}
	if err.IsCode(xerrors.Resolve) {
		t.Fatalf("IsCode(Resolve) should be false")
	}
}

func TestWrapUnwrapsParent(t *testing.T) {
	parent := errors.New("connection reset by peer")
	err := xerrors.Wrap(xerrors.TransportFault, parent, "drain failed")

	if !errors.Is(err, parent) {
		t.Fatalf("expected errors.Is to find parent through Unwrap")
	}
	if err.Code() != xerrors.TransportFault {
		t.Fatalf("expected TransportFault code, got %v", err.Code())
	}
}

func TestCodeString(t *testing.T) {
	cases := map[xerrors.Code]string{
		xerrors.Config:           "config",
		xerrors.Resolve:          "resolve",
		xerrors.TransportFault:   "transport-fault",
		xerrors.TLSHandshake:     "tls-handshake",
		xerrors.TLSVerification:  "tls-verification",
		xerrors.Unknown:          "unknown",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("Code(%d).String() = %q, want %q", code, got, want)
		}
	}
}

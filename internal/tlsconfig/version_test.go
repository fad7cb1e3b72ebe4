package tlsconfig_test

import (
	"testing"

	"github.com/nabbar/go-reactor/internal/tlsconfig"
)

func TestParseVersion(t *testing.T) {
	cases := map[string]tlsconfig.Version{
		"1.2":     tlsconfig.VersionTLS12,
		"TLS1.3":  tlsconfig.VersionTLS13,
		"tls 1.0": tlsconfig.VersionTLS10,
		"11":      tlsconfig.VersionTLS11,
		"bogus":   tlsconfig.VersionUnknown,
	}
	for in, want := range cases {
		if got := tlsconfig.ParseVersion(in); got != want {
			t.Errorf("ParseVersion(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestVersionUnknownMapsToZero(t *testing.T) {
	if got := tlsconfig.VersionUnknown.Uint16(); got != 0 {
		t.Fatalf("VersionUnknown.Uint16() = %d, want 0", got)
	}
	if got := tlsconfig.VersionTLS13.Uint16(); got == 0 {
		t.Fatalf("VersionTLS13.Uint16() should not be 0")
	}
}

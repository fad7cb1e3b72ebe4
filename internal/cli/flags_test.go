package cli_test

import (
	"bytes"
	"testing"

	"github.com/nabbar/go-reactor/internal/cli"
)

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	opt, err := cli.Parse("test", nil, &out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if opt.Port != cli.DefaultPort {
		t.Errorf("Port = %d, want %d", opt.Port, cli.DefaultPort)
	}
	if opt.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", opt.Host)
	}
	if opt.SSL {
		t.Errorf("SSL should default to false")
	}
	if opt.Help != cli.HelpNone {
		t.Errorf("Help = %v, want HelpNone", opt.Help)
	}
}

func TestParseHelpVerbosityEscalates(t *testing.T) {
	var out bytes.Buffer
	opt, err := cli.Parse("test", []string{"--help", "--help"}, &out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if opt.Help != cli.HelpAdvanced {
		t.Errorf("Help = %v, want HelpAdvanced", opt.Help)
	}
	if out.Len() == 0 {
		t.Errorf("expected help text to be written")
	}
}

func TestParseFlagsOverrideDefaults(t *testing.T) {
	var out bytes.Buffer
	opt, err := cli.Parse("test", []string{
		"-s", "-p", "9999", "-h", "example.com",
		"-c", "cert.pem", "-k", "key.pem", "--capath", "ca.pem",
	}, &out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !opt.SSL {
		t.Errorf("expected SSL true")
	}
	if opt.Port != 9999 {
		t.Errorf("Port = %d, want 9999", opt.Port)
	}
	if opt.Host != "example.com" {
		t.Errorf("Host = %q", opt.Host)
	}
	if opt.CertFile != "cert.pem" || opt.KeyFile != "key.pem" || opt.CAPath != "ca.pem" {
		t.Errorf("cert/key/capath not parsed correctly: %+v", opt)
	}
}

func TestValidateServerTLSRequiresCertAndKey(t *testing.T) {
	opt := cli.Options{SSL: true}
	if err := opt.ValidateServerTLS(); err == nil {
		t.Fatalf("expected error when --ssl is set without cert/key")
	}

	opt.CertFile, opt.KeyFile = "cert.pem", "key.pem"
	if err := opt.ValidateServerTLS(); err != nil {
		t.Fatalf("expected no error once cert/key provided: %v", err)
	}
}

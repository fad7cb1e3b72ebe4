package tlsconfig_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nabbar/go-reactor/internal/tlsconfig"
)

func writeSelfSignedPair(t *testing.T, dir string) (certPath, keyPath string) {
	t.Helper()

	prv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	ser, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	tpl := x509.Certificate{
		SerialNumber:          ser,
		Subject:               pkix.Name{CommonName: "localhost"},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, &tpl, &tpl, &prv.PublicKey, prv)
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}

	certPath = filepath.Join(dir, "cert.pem")
	keyPath = filepath.Join(dir, "key.pem")

	certOut, err := os.Create(certPath)
	if err != nil {
		t.Fatalf("create cert file: %v", err)
	}
	defer certOut.Close()
	if err = pem.Encode(certOut, &pem.Block{Type: "CERTIFICATE", Bytes: der}); err != nil {
		t.Fatalf("encode cert: %v", err)
	}

	keyBytes, err := x509.MarshalECPrivateKey(prv)
	if err != nil {
		t.Fatalf("MarshalECPrivateKey: %v", err)
	}
	keyOut, err := os.Create(keyPath)
	if err != nil {
		t.Fatalf("create key file: %v", err)
	}
	defer keyOut.Close()
	if err = pem.Encode(keyOut, &pem.Block{Type: "EC PRIVATE KEY", Bytes: keyBytes}); err != nil {
		t.Fatalf("encode key: %v", err)
	}

	return certPath, keyPath
}

func TestBuildServerRequiresCertAndKey(t *testing.T) {
	cfg := tlsconfig.Config{Role: tlsconfig.RoleServer}
	if _, err := cfg.Build(); err == nil {
		t.Fatalf("expected error when server role is missing cert/key")
	}
}

func TestBuildServerLoadsCertificate(t *testing.T) {
	dir := t.TempDir()
	certPath, keyPath := writeSelfSignedPair(t, dir)

	cfg := tlsconfig.Config{
		Role:     tlsconfig.RoleServer,
		CertFile: certPath,
		KeyFile:  keyPath,
	}
	tlsCfg, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(tlsCfg.Certificates) != 1 {
		t.Fatalf("expected one certificate, got %d", len(tlsCfg.Certificates))
	}
}

func TestBuildClientDefaultsInsecureSkipVerifyWhenNotVerifying(t *testing.T) {
	cfg := tlsconfig.Config{Role: tlsconfig.RoleClient, Verify: false}
	tlsCfg, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !tlsCfg.InsecureSkipVerify {
		t.Fatalf("expected InsecureSkipVerify when Verify is false")
	}
}

func TestNewTlsContextMintsIndependentConfigs(t *testing.T) {
	dir := t.TempDir()
	certPath, keyPath := writeSelfSignedPair(t, dir)

	ctx, err := tlsconfig.NewTlsContext(tlsconfig.Config{
		Role:     tlsconfig.RoleServer,
		CertFile: certPath,
		KeyFile:  keyPath,
	})
	if err != nil {
		t.Fatalf("NewTlsContext: %v", err)
	}

	a := ctx.ForConnection("")
	b := ctx.ForConnection("peer.example")
	if a == b {
		t.Fatalf("expected distinct *tls.Config values per connection")
	}
	if b.ServerName != "peer.example" {
		t.Fatalf("expected ServerName override, got %q", b.ServerName)
	}
}

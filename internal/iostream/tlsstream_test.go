package iostream_test

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"time"

	"golang.org/x/sys/unix"

	"github.com/nabbar/go-reactor/internal/descriptor"
	"github.com/nabbar/go-reactor/internal/iostream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// genCertPair generates a self-signed localhost certificate, grounded on
// the teacher's socket/server/tcp test helper of the same name.
func genCertPair() (*tls.Certificate, error) {
	prv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	ser, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, err
	}
	tpl := x509.Certificate{
		SerialNumber: ser,
		Subject: pkix.Name{
			Organization: []string{"Test Organization"},
			CommonName:   "localhost",
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost", "127.0.0.1"},
	}
	der, err := x509.CreateCertificate(rand.Reader, &tpl, &tpl, &prv.PublicKey, prv)
	if err != nil {
		return nil, err
	}

	certPEM := bytes.NewBufferString("")
	if err = pem.Encode(certPEM, &pem.Block{Type: "CERTIFICATE", Bytes: der}); err != nil {
		return nil, err
	}
	keyBytes, err := x509.MarshalECPrivateKey(prv)
	if err != nil {
		return nil, err
	}
	keyPEM := bytes.NewBufferString("")
	if err = pem.Encode(keyPEM, &pem.Block{Type: "EC PRIVATE KEY", Bytes: keyBytes}); err != nil {
		return nil, err
	}

	pair, err := tls.X509KeyPair(certPEM.Bytes(), keyPEM.Bytes())
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func newNonblockingSocketpair() (*descriptor.FileDescriptor, *descriptor.FileDescriptor) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	Expect(err).ToNot(HaveOccurred())
	a, b := descriptor.New(fds[0]), descriptor.New(fds[1])
	Expect(a.SetBlocking(false)).To(Succeed())
	Expect(b.SetBlocking(false)).To(Succeed())
	return a, b
}

// pumpUntil drives two TlsStreams' DrainReads/ProgressWrites against each
// other's socketpair until cond is satisfied or the deadline passes,
// standing in for the reactor's event loop in this unit test.
func pumpUntil(a, b *iostream.TlsStream, cond func() bool, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		a.DrainReads(4096)
		a.ProgressWrites()
		b.DrainReads(4096)
		b.ProgressWrites()
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

var _ = Describe("TlsStream", func() {
	var (
		cert               *tls.Certificate
		clientFd, serverFd *descriptor.FileDescriptor
	)

	BeforeEach(func() {
		var err error
		cert, err = genCertPair()
		Expect(err).ToNot(HaveOccurred())
		clientFd, serverFd = newNonblockingSocketpair()
	})

	AfterEach(func() {
		clientFd.Close()
		serverFd.Close()
	})

	It("completes a handshake and exchanges application data", func() {
		serverCfg := &tls.Config{Certificates: []tls.Certificate{*cert}}
		clientCfg := &tls.Config{InsecureSkipVerify: true}

		server := iostream.NewTlsStream(serverFd, serverCfg, false, false, 0)
		client := iostream.NewTlsStream(clientFd, clientCfg, true, false, 0)

		pumpUntil(client, server, func() bool {
			return client.State() == iostream.StateData && server.State() == iostream.StateData
		}, 2*time.Second)

		Expect(client.State()).To(Equal(iostream.StateData))
		Expect(server.State()).To(Equal(iostream.StateData))

		client.Enqueue([]byte("ping"))

		var serverSaw []byte
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) && len(serverSaw) == 0 {
			client.ProgressWrites()
			server.DrainReads(4096) // advance the raw socket bytes into the engine
			chunks, _, fault := server.DrainReads(4096)
			Expect(fault).ToNot(HaveOccurred())
			for _, c := range chunks {
				serverSaw = append(serverSaw, c...)
			}
			time.Sleep(time.Millisecond)
		}

		Expect(string(serverSaw)).To(Equal("ping"))
	})
})

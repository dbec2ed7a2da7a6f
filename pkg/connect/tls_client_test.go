package connect

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"testing"
	"time"
)

// buildTestPki generates an ephemeral ca and a client cert signed by it,
// returning base64'd pem the way the bundle expects env var material.
func buildTestPki(t *testing.T) (caCert, clientCert, clientKey string) {
	t.Helper()

	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate ca key: %v", err)
	}

	caTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "test-ca"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	caDer, err := x509.CreateCertificate(rand.Reader, caTemplate, caTemplate, &caKey.PublicKey, caKey)
	if err != nil {
		t.Fatalf("failed to create ca cert: %v", err)
	}

	clientPriv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate client key: %v", err)
	}

	clientTemplate := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "test-client"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}

	caParsed, err := x509.ParseCertificate(caDer)
	if err != nil {
		t.Fatalf("failed to parse ca cert: %v", err)
	}

	clientDer, err := x509.CreateCertificate(rand.Reader, clientTemplate, caParsed, &clientPriv.PublicKey, caKey)
	if err != nil {
		t.Fatalf("failed to create client cert: %v", err)
	}

	keyDer, err := x509.MarshalECPrivateKey(clientPriv)
	if err != nil {
		t.Fatalf("failed to marshal client key: %v", err)
	}

	caPem := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: caDer})
	clientPem := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: clientDer})
	keyPem := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDer})

	return base64.StdEncoding.EncodeToString(caPem),
		base64.StdEncoding.EncodeToString(clientPem),
		base64.StdEncoding.EncodeToString(keyPem)
}

func TestBuildNilBundle(t *testing.T) {

	config := NewTlsClientConfig(nil)

	tlsConfig, err := config.Build()
	if err != nil {
		t.Fatalf("failed to build tls config: %v", err)
	}

	if tlsConfig.RootCAs == nil {
		t.Error("expected system cert pool as root cas")
	}
	if len(tlsConfig.Certificates) != 0 {
		t.Errorf("expected no client certs without a bundle, got %d", len(tlsConfig.Certificates))
	}
}

func TestBuildCaOnlyBundle(t *testing.T) {

	caCert, _, _ := buildTestPki(t)

	config := NewTlsClientConfig(&CertBundle{CaFiles: []string{caCert}})

	tlsConfig, err := config.Build()
	if err != nil {
		t.Fatalf("failed to build tls config: %v", err)
	}

	if tlsConfig.RootCAs == nil {
		t.Error("expected root cas with backend ca appended")
	}
	if len(tlsConfig.Certificates) != 0 {
		t.Errorf("expected no client certs for ca-only bundle, got %d", len(tlsConfig.Certificates))
	}
}

func TestBuildMutualTlsBundle(t *testing.T) {

	caCert, clientCert, clientKey := buildTestPki(t)

	config := NewTlsClientConfig(&CertBundle{
		CertFile: clientCert,
		KeyFile:  clientKey,
		CaFiles:  []string{caCert},
	})

	tlsConfig, err := config.Build()
	if err != nil {
		t.Fatalf("failed to build tls config: %v", err)
	}

	if len(tlsConfig.Certificates) != 1 {
		t.Fatalf("expected 1 client cert, got %d", len(tlsConfig.Certificates))
	}
}

func TestBuildRejectsBadBase64(t *testing.T) {

	config := NewTlsClientConfig(&CertBundle{CaFiles: []string{"not base64!!"}})

	if _, err := config.Build(); err == nil {
		t.Error("expected error for malformed ca cert encoding")
	}
}

func TestBuildRejectsNonCertPem(t *testing.T) {

	garbage := base64.StdEncoding.EncodeToString([]byte("not pem at all"))
	config := NewTlsClientConfig(&CertBundle{CaFiles: []string{garbage}})

	if _, err := config.Build(); err == nil {
		t.Error("expected error appending non-pem material to cert pool")
	}
}

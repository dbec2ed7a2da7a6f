package connect

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"net/http"
)

// TlsClientConfig builds a *tls.Config for outbound connections to the backend.
type TlsClientConfig interface {
	Build() (*tls.Config, error)
}

// NewTlsClientConfig returns a TlsClientConfig for the provided cert bundle.
// A nil bundle yields a config that only trusts the system cert pool, for
// backends that do not require client certs.
func NewTlsClientConfig(bundle *CertBundle) TlsClientConfig {
	return &tlsClientConfig{
		bundle: bundle,
	}
}

var _ TlsClientConfig = (*tlsClientConfig)(nil)

type tlsClientConfig struct {
	bundle *CertBundle
}

func (config *tlsClientConfig) Build() (*tls.Config, error) {

	// host's ca certificates
	systemCertPool, err := x509.SystemCertPool()
	if err != nil {
		return nil, fmt.Errorf("failed to get system cert pool: %v", err)
	}

	if config.bundle == nil {
		return &tls.Config{RootCAs: systemCertPool}, nil
	}

	// ca(s) of the backend, eg an internal issuing ca
	for _, v := range config.bundle.CaFiles {
		ca, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, err
		}
		if ok := systemCertPool.AppendCertsFromPEM(ca); !ok {
			return nil, fmt.Errorf("failed to append backend ca cert to system cert pool")
		}
	}

	tlsConfig := &tls.Config{RootCAs: systemCertPool}

	// client cert is optional: only mutual-tls backends require one
	if config.bundle.CertFile != "" && config.bundle.KeyFile != "" {

		certPem, err := base64.StdEncoding.DecodeString(config.bundle.CertFile)
		if err != nil {
			return nil, err
		}

		keyPem, err := base64.StdEncoding.DecodeString(config.bundle.KeyFile)
		if err != nil {
			return nil, err
		}

		cert, err := tls.X509KeyPair(certPem, keyPem)
		if err != nil {
			return nil, err
		}

		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// TlsClient executes http requests over the configured tls transport.
// It exists as an interface so the backend can be faked in tests.
type TlsClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewTlsClient builds a TlsClient from the provided TlsClientConfig.
func NewTlsClient(config TlsClientConfig) (TlsClient, error) {

	tlsConfig, err := config.Build()
	if err != nil {
		return nil, err
	}

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: tlsConfig,
		},
	}

	return &tlsClient{httpClient: client}, nil
}

var _ TlsClient = (*tlsClient)(nil)

type tlsClient struct {
	httpClient *http.Client
}

func (client *tlsClient) Do(req *http.Request) (*http.Response, error) {
	return client.httpClient.Do(req)
}

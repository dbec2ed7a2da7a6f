package sign

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"time"
)

// GenerateEcdsaCert generates an ecdsa certificate and private key pair,
// writing <name>-cert.pem and <name>-key.pem to the working directory. Leaf
// certs are signed by the ca named in CaCertName, whose pems must already be
// on disk; a CA cert signs itself.
func (cf *CertFields) GenerateEcdsaCert() error {

	certPriv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to create %s private key: %v", cf.CertName, err)
	}

	certTemplate, err := cf.BuildTemplate()
	if err != nil {
		return err
	}

	// signing cert template
	var parentTemplate x509.Certificate
	var signingPriv *ecdsa.PrivateKey
	if cf.Role == CA {
		// CA is self-signed
		parentTemplate = *certTemplate
		signingPriv = certPriv
	} else {

		caCertPem, err := os.ReadFile(fmt.Sprintf("%s-cert.pem", cf.CaCertName))
		if err != nil {
			return fmt.Errorf("unable to read %s-cert.pem file: %v", cf.CaCertName, err)
		}

		caKeyPem, err := os.ReadFile(fmt.Sprintf("%s-key.pem", cf.CaCertName))
		if err != nil {
			return fmt.Errorf("unable to read %s-key.pem file: %v", cf.CaCertName, err)
		}

		// decode pems to der
		caCertBlock, _ := pem.Decode(caCertPem)
		if caCertBlock == nil || caCertBlock.Type != "CERTIFICATE" {
			return fmt.Errorf("failed to decode %s ca cert pem", cf.CaCertName)
		}

		caKeyBlock, _ := pem.Decode(caKeyPem)
		if caKeyBlock == nil || caKeyBlock.Type != "EC PRIVATE KEY" {
			return fmt.Errorf("failed to decode %s ca key pem", cf.CaCertName)
		}

		caCert, err := x509.ParseCertificate(caCertBlock.Bytes)
		if err != nil {
			return fmt.Errorf("failed to parse %s ca cert: %v", cf.CaCertName, err)
		}

		caPriv, err := x509.ParseECPrivateKey(caKeyBlock.Bytes)
		if err != nil {
			return fmt.Errorf("failed to parse %s ca key: %v", cf.CaCertName, err)
		}

		parentTemplate = *caCert
		signingPriv = caPriv
	}

	// create the certificate
	derBytes, err := x509.CreateCertificate(rand.Reader, certTemplate, &parentTemplate, &certPriv.PublicKey, signingPriv)
	if err != nil {
		return fmt.Errorf("failed to create DER for %s certificate: %v", cf.CertName, err)
	}

	// write cert to file
	certOut, err := os.Create(fmt.Sprintf("%s-cert.pem", cf.CertName))
	if err != nil {
		return fmt.Errorf("failed to create file %s-cert.pem: %v", cf.CertName, err)
	}
	defer certOut.Close()

	if err := pem.Encode(certOut, &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: derBytes,
	}); err != nil {
		return fmt.Errorf("failed to write %s-cert.pem: %v", cf.CertName, err)
	}

	// write private key out to file
	keyOut, err := os.Create(fmt.Sprintf("%s-key.pem", cf.CertName))
	if err != nil {
		return fmt.Errorf("failed to create file %s-key.pem: %v", cf.CertName, err)
	}
	defer keyOut.Close()

	key, err := x509.MarshalECPrivateKey(certPriv)
	if err != nil {
		return fmt.Errorf("failed to marshal ecdsa private key for %s: %v", cf.CertName, err)
	}

	if err := pem.Encode(keyOut, &pem.Block{
		Type:  "EC PRIVATE KEY",
		Bytes: key,
	}); err != nil {
		return fmt.Errorf("failed to write %s-key.pem: %v", cf.CertName, err)
	}

	return nil
}

// BuildTemplate builds a certificate template for use in certificate generation.
func (cf *CertFields) BuildTemplate() (*x509.Certificate, error) {

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("unable to generate serial number for %s certificate template: %v", cf.CertName, err)
	}

	// validity period:
	notBefore := time.Now().UTC()

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: cf.Organisation,
			CommonName:   cf.CommonName,
		},
		NotBefore:             notBefore,
		BasicConstraintsValid: true,
		DNSNames:              cf.San,
		IPAddresses:           cf.SanIps,
	}

	switch cf.Role {
	case CA:
		template.IsCA = true
		template.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
		template.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth}
		template.NotAfter = notBefore.Add(365 * 24 * time.Hour)
	case Server:
		template.KeyUsage = x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment
		template.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
		template.NotAfter = notBefore.Add(90 * 24 * time.Hour)
	case Client:
		template.KeyUsage = x509.KeyUsageDigitalSignature
		template.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth}
		template.NotAfter = notBefore.Add(90 * 24 * time.Hour)
	default:
		return nil, fmt.Errorf("unknown cert role for %s certificate template", cf.CertName)
	}

	return &template, nil
}

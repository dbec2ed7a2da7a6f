package inventory

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tdeslauriers/palisade/pkg/pki"
)

// CertificateRecord is a model for the certificate inventory table data: one
// row per credential issued through the toolkit, so operators can answer
// "what is live, against which role, and when does it expire" without asking
// the backend.
type CertificateRecord struct {
	Uuid         string     `db:"uuid" json:"uuid"`
	RoleName     string     `db:"role_name" json:"role_name"`
	CommonName   string     `db:"common_name" json:"common_name"`
	SerialNumber string     `db:"serial_number" json:"serial_number"`
	Expires      CustomTime `db:"expires" json:"expires"`
	Revoked      bool       `db:"revoked" json:"revoked"`
	CreatedAt    CustomTime `db:"created_at" json:"created_at"`
}

// NewCertificateRecord builds an inventory record from an issued credential,
// parsing the certificate pem for its expiry.
func NewCertificateRecord(role, commonName string, cred *pki.Credential) (*CertificateRecord, error) {

	if cred == nil {
		return nil, fmt.Errorf("credential cannot be nil")
	}

	block, _ := pem.Decode([]byte(cred.Certificate))
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, fmt.Errorf("failed to decode certificate pem for serial %s", cred.SerialNumber)
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate for serial %s: %v", cred.SerialNumber, err)
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate record uuid: %v", err)
	}

	return &CertificateRecord{
		Uuid:         id.String(),
		RoleName:     role,
		CommonName:   commonName,
		SerialNumber: cred.SerialNumber,
		Expires:      CustomTime{cert.NotAfter.UTC()},
		Revoked:      false,
		CreatedAt:    CustomTime{time.Now().UTC()},
	}, nil
}

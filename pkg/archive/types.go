package archive

import (
	"fmt"
	"strings"

	"github.com/tdeslauriers/palisade/pkg/pki"
)

// Config holds the configuration for connecting to the object storage service
// backing the pem archive.
type Config struct {
	Url       string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Bundle is the pem material archived for one issued certificate: the leaf
// cert, its issuing ca, and the rest of the chain. Private keys are never
// archived; they belong to the requesting service alone.
type Bundle struct {
	SerialNumber string
	Pem          string
}

// NewBundle assembles an archive bundle from an issued credential.
func NewBundle(cred *pki.Credential) (*Bundle, error) {

	if cred == nil {
		return nil, fmt.Errorf("credential cannot be nil")
	}

	if cred.SerialNumber == "" {
		return nil, fmt.Errorf("credential is missing its serial number")
	}

	pems := []string{strings.TrimSpace(cred.Certificate), strings.TrimSpace(cred.IssuingCa)}
	for _, ca := range cred.CaChain {
		pems = append(pems, strings.TrimSpace(ca))
	}

	return &Bundle{
		SerialNumber: cred.SerialNumber,
		Pem:          strings.Join(pems, "\n") + "\n",
	}, nil
}

// Key returns the object key the bundle is stored under. Serial number colons
// are swapped for hyphens so keys stay friendly to tooling that mishandles
// colons in paths.
func (b *Bundle) Key() string {
	return fmt.Sprintf("issued/%s.pem", strings.ReplaceAll(b.SerialNumber, ":", "-"))
}

// Archive is an interface that defines methods for storing and retrieving
// issued certificate bundles in object storage. It can be implemented by
// various object storage clients, such as MinIO, AWS S3, etc.
type Archive interface {

	// PutBundle stores an issued certificate bundle under its serial-derived key.
	PutBundle(bundle *Bundle) error

	// GetBundle retrieves the bundle archived for a serial number.
	GetBundle(serialNumber string) (*Bundle, error)

	// RemoveBundle deletes the bundle archived for a serial number, eg after
	// revocation.
	RemoveBundle(serialNumber string) error
}

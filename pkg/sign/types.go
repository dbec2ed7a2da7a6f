package sign

import "net"

type CertRole int

const (
	CA CertRole = iota
	Server
	Client
)

// CertFields is a model representing the data a caller needs to provide for
// local cert generation, eg bootstrapping a dev backend or minting throwaway
// certs in tests.
type CertFields struct {
	CertName     string
	Organisation []string
	CommonName   string // ca: org + signature algo, leaf: domain
	San          []string
	SanIps       []net.IP
	Role         CertRole
	CaCertName   string
}

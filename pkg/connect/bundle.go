package connect

// CertBundle holds the pem material for a tls connection to the backend,
// base64'd *.pem file content. Typically sourced from container env vars or a
// k8s secret; the ca list carries the backend's issuing ca(s) when they are
// not in the system pool.
type CertBundle struct {
	CertFile string
	KeyFile  string
	CaFiles  []string
}

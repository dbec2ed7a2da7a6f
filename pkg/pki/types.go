package pki

// SecretEnvelope is the wrapper the backend puts around every secrets-engine
// response body; the payload of interest sits under the data key.
type SecretEnvelope[T any] struct {
	RequestId     string   `json:"request_id"`
	LeaseId       string   `json:"lease_id"`
	Renewable     bool     `json:"renewable"`
	LeaseDuration int64    `json:"lease_duration"`
	Data          T        `json:"data"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Credential is an issued certificate with its private key and chain, as
// returned by the engine's issue endpoint.
type Credential struct {
	Certificate    string   `json:"certificate"`
	IssuingCa      string   `json:"issuing_ca"`
	CaChain        []string `json:"ca_chain,omitempty"`
	PrivateKey     string   `json:"private_key"`
	PrivateKeyType string   `json:"private_key_type"`
	SerialNumber   string   `json:"serial_number"`
}

// RevocationReceipt is the engine's acknowledgement of a revoke request.
type RevocationReceipt struct {
	RevocationTime int64 `json:"revocation_time"`
}

// revokeCmd is the request body of the engine's revoke endpoint.
type revokeCmd struct {
	SerialNumber string `json:"serial_number"`
}

// roleKeys is the response data of the engine's role-list endpoint.
type roleKeys struct {
	Keys []string `json:"keys"`
}

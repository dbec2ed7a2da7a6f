package config

type Config struct {
	ServiceName   string
	Backend       Backend
	Certs         Certs
	Database      Database
	ObjectStorage ObjectStorage
}

// Backend is the connection data for the secrets-management backend.
type Backend struct {
	Url      string // https://host:port, no trailing slash
	Mount    string // mount path of the pki engine, eg "pki"
	TokenEnv string // name of the env var holding the client token
}

type Certs struct {
	ClientCert *string
	ClientKey  *string
	ClientCa   *string

	DbClientCert *string
	DbClientKey  *string
	DbCaCert     *string
}

type Database struct {
	Url      string
	Name     string
	Username string
	Password string
}

type ObjectStorage struct {
	Url       string
	Bucket    string // assumes one bucket per service
	AccessKey string // username, effectively
	SecretKey string // password, effectively
}

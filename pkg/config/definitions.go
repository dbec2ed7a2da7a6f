package config

// SvcDefinition declares what a palisade-based tool needs from its
// environment so Load only demands the env vars that will actually be used.
type SvcDefinition struct {
	ServiceName string
	Requires    Requires
}

type Requires struct {
	ClientCerts   bool // mutual tls to the backend
	Db            bool // certificate inventory database
	ObjectStorage bool // pem archive bucket
}

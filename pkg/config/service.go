package config

import (
	"fmt"
	"os"
	"strings"
)

// ClientCertsPresent reports whether the environment carries client cert
// material for the service, so callers can require mutual tls to the backend
// only when the deployment actually provides it.
func ClientCertsPresent(serviceName string) bool {

	prefix := strings.ToUpper(serviceName)

	_, certOk := os.LookupEnv(fmt.Sprintf("%s_CLIENT_CERT", prefix))
	_, keyOk := os.LookupEnv(fmt.Sprintf("%s_CLIENT_KEY", prefix))

	return certOk && keyOk
}

func Load(def SvcDefinition) (*Config, error) {

	if def.ServiceName == "" {
		return nil, fmt.Errorf("service name must be provided to definitions, cannot be empty")
	}

	config := &Config{
		ServiceName: def.ServiceName,
	}

	// read in backend env vars
	if err := config.backendEnvVars(def); err != nil {
		return nil, err
	}

	// read in certs for mutual tls to the backend
	if def.Requires.ClientCerts {
		if err := config.readCerts(def); err != nil {
			return nil, err
		}
	}

	// read in env vars for database
	if def.Requires.Db {
		if err := config.databaseEnvVars(def); err != nil {
			return nil, err
		}
	}

	// read in env vars for object storage
	if def.Requires.ObjectStorage {
		if err := config.objectStorageEnvVars(def); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func (config *Config) backendEnvVars(def SvcDefinition) error {

	prefix := strings.ToUpper(def.ServiceName)

	envBackendUrl, ok := os.LookupEnv(fmt.Sprintf("%s_BACKEND_URL", prefix))
	if !ok {
		return fmt.Errorf("%s_BACKEND_URL not set", prefix)
	}
	config.Backend.Url = envBackendUrl

	envMount, ok := os.LookupEnv(fmt.Sprintf("%s_PKI_MOUNT", prefix))
	if !ok {
		return fmt.Errorf("%s_PKI_MOUNT not set", prefix)
	}
	config.Backend.Mount = envMount

	// the token env var is resolved lazily by the token provider so that
	// token rotation does not require a restart; only its name is recorded here
	config.Backend.TokenEnv = fmt.Sprintf("%s_BACKEND_TOKEN", prefix)

	return nil
}

func (config *Config) readCerts(def SvcDefinition) error {

	prefix := strings.ToUpper(def.ServiceName)

	// client cert
	envClientCert, ok := os.LookupEnv(fmt.Sprintf("%s_CLIENT_CERT", prefix))
	if !ok {
		return fmt.Errorf("%s_CLIENT_CERT not set", prefix)
	}
	config.Certs.ClientCert = &envClientCert

	// client key
	envClientKey, ok := os.LookupEnv(fmt.Sprintf("%s_CLIENT_KEY", prefix))
	if !ok {
		return fmt.Errorf("%s_CLIENT_KEY not set", prefix)
	}
	config.Certs.ClientKey = &envClientKey

	// ca of the backend's server cert
	envClientCa, ok := os.LookupEnv(fmt.Sprintf("%s_CLIENT_CA_CERT", prefix))
	if !ok {
		return fmt.Errorf("%s_CLIENT_CA_CERT not set", prefix)
	}
	config.Certs.ClientCa = &envClientCa

	return nil
}

func (config *Config) databaseEnvVars(def SvcDefinition) error {

	prefix := strings.ToUpper(def.ServiceName)

	envDbUrl, ok := os.LookupEnv(fmt.Sprintf("%s_DATABASE_URL", prefix))
	if !ok {
		return fmt.Errorf("%s_DATABASE_URL not set", prefix)
	}
	config.Database.Url = envDbUrl

	envDbName, ok := os.LookupEnv(fmt.Sprintf("%s_DATABASE_NAME", prefix))
	if !ok {
		return fmt.Errorf("%s_DATABASE_NAME not set", prefix)
	}
	config.Database.Name = envDbName

	envDbUsername, ok := os.LookupEnv(fmt.Sprintf("%s_DATABASE_USERNAME", prefix))
	if !ok {
		return fmt.Errorf("%s_DATABASE_USERNAME not set", prefix)
	}
	config.Database.Username = envDbUsername

	envDbPassword, ok := os.LookupEnv(fmt.Sprintf("%s_DATABASE_PASSWORD", prefix))
	if !ok {
		return fmt.Errorf("%s_DATABASE_PASSWORD not set", prefix)
	}
	config.Database.Password = envDbPassword

	// db client certs for mutual tls to the database
	envDbClientCert, ok := os.LookupEnv(fmt.Sprintf("%s_DB_CLIENT_CERT", prefix))
	if !ok {
		return fmt.Errorf("%s_DB_CLIENT_CERT not set", prefix)
	}
	config.Certs.DbClientCert = &envDbClientCert

	envDbClientKey, ok := os.LookupEnv(fmt.Sprintf("%s_DB_CLIENT_KEY", prefix))
	if !ok {
		return fmt.Errorf("%s_DB_CLIENT_KEY not set", prefix)
	}
	config.Certs.DbClientKey = &envDbClientKey

	envDbCaCert, ok := os.LookupEnv(fmt.Sprintf("%s_DB_CA_CERT", prefix))
	if !ok {
		return fmt.Errorf("%s_DB_CA_CERT not set", prefix)
	}
	config.Certs.DbCaCert = &envDbCaCert

	return nil
}

func (config *Config) objectStorageEnvVars(def SvcDefinition) error {

	prefix := strings.ToUpper(def.ServiceName)

	envStorageUrl, ok := os.LookupEnv(fmt.Sprintf("%s_OBJECT_STORAGE_URL", prefix))
	if !ok {
		return fmt.Errorf("%s_OBJECT_STORAGE_URL not set", prefix)
	}
	config.ObjectStorage.Url = envStorageUrl

	envStorageBucket, ok := os.LookupEnv(fmt.Sprintf("%s_OBJECT_STORAGE_BUCKET", prefix))
	if !ok {
		return fmt.Errorf("%s_OBJECT_STORAGE_BUCKET not set", prefix)
	}
	config.ObjectStorage.Bucket = envStorageBucket

	envStorageAccessKey, ok := os.LookupEnv(fmt.Sprintf("%s_OBJECT_STORAGE_ACCESS_KEY", prefix))
	if !ok {
		return fmt.Errorf("%s_OBJECT_STORAGE_ACCESS_KEY not set", prefix)
	}
	config.ObjectStorage.AccessKey = envStorageAccessKey

	envStorageSecretKey, ok := os.LookupEnv(fmt.Sprintf("%s_OBJECT_STORAGE_SECRET_KEY", prefix))
	if !ok {
		return fmt.Errorf("%s_OBJECT_STORAGE_SECRET_KEY not set", prefix)
	}
	config.ObjectStorage.SecretKey = envStorageSecretKey

	return nil
}

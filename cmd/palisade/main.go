package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tdeslauriers/palisade/internal/util"
	"github.com/tdeslauriers/palisade/pkg/archive"
	"github.com/tdeslauriers/palisade/pkg/auth"
	"github.com/tdeslauriers/palisade/pkg/cli"
	"github.com/tdeslauriers/palisade/pkg/config"
	"github.com/tdeslauriers/palisade/pkg/connect"
	"github.com/tdeslauriers/palisade/pkg/diagnostics"
	"github.com/tdeslauriers/palisade/pkg/inventory"
	"github.com/tdeslauriers/palisade/pkg/pki"
)

const serviceName = "palisade"

func main() {

	logger := slog.Default().
		With(slog.String(util.ComponentKey, util.ComponentMain)).
		With(slog.String(util.PackageKey, util.PackageMain))

	cliConfig, err := cli.Parse()
	if err != nil {
		logger.Error(fmt.Sprintf("error parsing command line: %v", err))
		os.Exit(1)
	}

	// only demand env vars for the integrations this invocation uses; client
	// certs are required whenever the deployment provides them, since that
	// means the backend expects mutual tls
	def := config.SvcDefinition{
		ServiceName: serviceName,
		Requires: config.Requires{
			ClientCerts:   config.ClientCertsPresent(serviceName),
			Db:            cliConfig.Record,
			ObjectStorage: cliConfig.Archive || cliConfig.Fetch != "",
		},
	}

	svcConfig, err := config.Load(def)
	if err != nil {
		logger.Error(fmt.Sprintf("error loading %s config: %v", serviceName, err))
		os.Exit(1)
	}

	// tls to the backend: client certs when configured, system pool otherwise
	var bundle *connect.CertBundle
	if svcConfig.Certs.ClientCert != nil && svcConfig.Certs.ClientKey != nil {
		bundle = &connect.CertBundle{
			CertFile: *svcConfig.Certs.ClientCert,
			KeyFile:  *svcConfig.Certs.ClientKey,
		}
		if svcConfig.Certs.ClientCa != nil {
			bundle.CaFiles = []string{*svcConfig.Certs.ClientCa}
		}
	}

	tlsClient, err := connect.NewTlsClient(connect.NewTlsClientConfig(bundle))
	if err != nil {
		logger.Error(fmt.Sprintf("error building backend tls client: %v", err))
		os.Exit(1)
	}

	caller := connect.NewCaller(svcConfig.Backend.Url, "secrets backend", tlsClient, connect.RetryConfiguration{
		MaxRetries:  5,
		BaseBackoff: 100 * time.Millisecond,
		MaxBackoff:  10 * time.Second,
	})

	tokens := auth.NewEnvTokenProvider(svcConfig.Backend.TokenEnv)
	client, err := pki.NewClient(svcConfig.Backend.Mount, caller, tokens)
	if err != nil {
		logger.Error(fmt.Sprintf("error creating pki client: %v", err))
		os.Exit(1)
	}
	health := diagnostics.NewHealthChecker(svcConfig.Backend.Url, tlsClient)

	// pem archive, only when this invocation archives or fetches
	var arc archive.Archive
	if cliConfig.Archive || cliConfig.Fetch != "" {
		storageTls, err := connect.NewTlsClientConfig(nil).Build()
		if err != nil {
			logger.Error(fmt.Sprintf("error building object storage tls config: %v", err))
			os.Exit(1)
		}

		arc, err = archive.New(archive.Config{
			Url:       svcConfig.ObjectStorage.Url,
			Bucket:    svcConfig.ObjectStorage.Bucket,
			AccessKey: svcConfig.ObjectStorage.AccessKey,
			SecretKey: svcConfig.ObjectStorage.SecretKey,
		}, storageTls)
		if err != nil {
			logger.Error(fmt.Sprintf("error building pem archive: %v", err))
			os.Exit(1)
		}
	}

	// certificate inventory, only when this invocation records
	var records inventory.Repository
	if cliConfig.Record {
		dbBundle := &connect.CertBundle{
			CertFile: *svcConfig.Certs.DbClientCert,
			KeyFile:  *svcConfig.Certs.DbClientKey,
			CaFiles:  []string{*svcConfig.Certs.DbCaCert},
		}

		dbTls, err := connect.NewTlsClientConfig(dbBundle).Build()
		if err != nil {
			logger.Error(fmt.Sprintf("error building db tls config: %v", err))
			os.Exit(1)
		}

		db, err := inventory.NewSqlDbConnector(inventory.DbUrl{
			Username: svcConfig.Database.Username,
			Password: svcConfig.Database.Password,
			Addr:     svcConfig.Database.Url,
			Name:     svcConfig.Database.Name,
		}, dbTls).Connect()
		if err != nil {
			logger.Error(fmt.Sprintf("error connecting to inventory db: %v", err))
			os.Exit(1)
		}
		defer db.Close()

		records = inventory.NewRepository(db)
	}

	palisade := cli.New(*cliConfig, client, health, arc, records)
	if err := palisade.Execute(); err != nil {
		logger.Error(fmt.Sprintf("error executing palisade command: %v", err))
		os.Exit(1)
	}
}

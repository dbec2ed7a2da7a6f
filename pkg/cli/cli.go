package cli

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tdeslauriers/palisade/internal/util"
	"github.com/tdeslauriers/palisade/pkg/archive"
	"github.com/tdeslauriers/palisade/pkg/diagnostics"
	"github.com/tdeslauriers/palisade/pkg/inventory"
	"github.com/tdeslauriers/palisade/pkg/pki"
	"golang.org/x/net/context"
)

// Palisade is the cli interface for the toolkit. Its purpose is to receive a
// config struct and execute the commands defined therein.
type Palisade interface {

	// Execute runs the command defined in the config struct of the Palisade
	// interface. It returns an error to console if the command fails.
	Execute() error
}

// New is a factory function that returns a new Palisade cli interface.
// The archive and records params may be nil when the invocation does not
// archive or record issued certs.
func New(config Config, client pki.Client, health diagnostics.HealthChecker, arc archive.Archive, records inventory.Repository) Palisade {
	return &palisade{
		config:  config,
		client:  client,
		health:  health,
		archive: arc,
		records: records,

		logger: slog.Default().
			With(slog.String(util.ComponentKey, util.ComponentCli)).
			With(slog.String(util.PackageKey, util.PackageCli)).
			With(slog.String(util.FrameworkKey, util.FrameworkPalisade)),
	}
}

var _ Palisade = (*palisade)(nil)

// palisade is the concrete implementation of the Palisade interface.
type palisade struct {
	config  Config
	client  pki.Client
	health  diagnostics.HealthChecker
	archive archive.Archive
	records inventory.Repository

	logger *slog.Logger
}

// Parse is a helper function that reads in flags and args from the command
// line and returns a ptr to a Config struct or an error.
func Parse() (*Config, error) {

	// flag declarations
	// role application
	applyMsg := "upserts pki roles from a yaml definitions file, eg '-apply -f roles.yaml'"
	apply := flag.Bool("apply", false, applyMsg)
	flag.BoolVar(apply, "a", false, applyMsg)

	// role listing
	listMsg := "lists the role names on the pki engine"
	list := flag.Bool("list", false, listMsg)
	flag.BoolVar(list, "l", false, listMsg)

	// credential issuance
	issueMsg := "issues a credential against the named role, eg '-issue web-server -cn api.myvault.com'"
	issue := flag.String("issue", "", issueMsg)
	flag.StringVar(issue, "i", "", issueMsg)

	// revocation
	revokeMsg := "revokes the certificate with the provided serial number"
	revoke := flag.String("revoke", "", revokeMsg)
	flag.StringVar(revoke, "r", "", revokeMsg)

	// archived bundle retrieval
	fetchMsg := "prints the archived pem bundle for the provided serial number"
	fetch := flag.String("fetch", "", fetchMsg)

	// backend health
	healthMsg := "checks backend reachability and seal status"
	health := flag.Bool("health", false, healthMsg)

	// file
	fileMsg := "imports a yaml file containing role definitions for -apply"
	file := flag.String("file", "", fileMsg)
	flag.StringVar(file, "f", "", fileMsg)

	// issuance fields
	cnMsg := "common name for the issued certificate"
	cn := flag.String("cn", "", cnMsg)

	ttlMsg := "ttl for the issued certificate, duration string with time suffix, eg '9h'"
	ttl := flag.String("ttl", "", ttlMsg)

	formatMsg := "encoding of the issued certificate, eg 'pem' or 'der'"
	format := flag.String("format", "", formatMsg)

	// post-issuance handling
	archiveMsg := "archives the issued certificate bundle to object storage"
	arc := flag.Bool("archive", false, archiveMsg)

	recordMsg := "records the issued certificate in the inventory database"
	record := flag.Bool("record", false, recordMsg)

	// help message
	flag.Usage = func() {

		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  -a,   --apply       %s\n", applyMsg)
		fmt.Fprintf(os.Stderr, "  -l,   --list        %s\n", listMsg)
		fmt.Fprintf(os.Stderr, "  -i,   --issue       %s\n", issueMsg)
		fmt.Fprintf(os.Stderr, "  -r,   --revoke      %s\n", revokeMsg)
		fmt.Fprintf(os.Stderr, "        --fetch       %s\n", fetchMsg)
		fmt.Fprintf(os.Stderr, "        --health      %s\n", healthMsg)
		fmt.Fprintf(os.Stderr, "  -f,   --file        %s\n", fileMsg)
		fmt.Fprintf(os.Stderr, "        --cn          %s\n", cnMsg)
		fmt.Fprintf(os.Stderr, "        --ttl         %s\n", ttlMsg)
		fmt.Fprintf(os.Stderr, "        --format      %s\n", formatMsg)
		fmt.Fprintf(os.Stderr, "        --archive     %s\n", archiveMsg)
		fmt.Fprintf(os.Stderr, "        --record      %s\n", recordMsg)
	}

	flag.Parse()

	config := &Config{
		Apply:   *apply,
		List:    *list,
		Issue:   *issue,
		Revoke:  *revoke,
		Fetch:   *fetch,
		Health:  *health,
		File:    *file,
		Cn:      *cn,
		Ttl:     *ttl,
		Format:  *format,
		Archive: *arc,
		Record:  *record,
	}

	if !config.Apply && !config.List && config.Issue == "" && config.Revoke == "" && config.Fetch == "" && !config.Health {
		flag.Usage()
		return nil, fmt.Errorf("no command provided")
	}

	return config, nil
}

// Execute is the concrete implementation of the Palisade interface method.
func (p *palisade) Execute() error {

	ctx := context.Background()

	switch {
	case p.config.Health:
		return p.healthExecution(ctx)
	case p.config.Apply:
		return p.applyExecution(ctx)
	case p.config.List:
		return p.listExecution(ctx)
	case p.config.Issue != "":
		return p.issueExecution(ctx)
	case p.config.Revoke != "":
		return p.revokeExecution(ctx)
	case p.config.Fetch != "":
		return p.fetchExecution()
	default:
		return fmt.Errorf("no command provided")
	}
}

func (p *palisade) healthExecution(ctx context.Context) error {

	status, err := p.health.Check(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("backend version %s: initialized=%t sealed=%t standby=%t\n",
		status.Version, status.Initialized, status.Sealed, status.Standby)
	return nil
}

func (p *palisade) listExecution(ctx context.Context) error {

	roles, err := p.client.ListRoles(ctx)
	if err != nil {
		return err
	}

	for _, role := range roles {
		fmt.Println(role)
	}
	return nil
}

func (p *palisade) fetchExecution() error {

	if p.archive == nil {
		return fmt.Errorf("fetch requested but object storage is not configured")
	}

	bundle, err := p.archive.GetBundle(p.config.Fetch)
	if err != nil {
		return err
	}

	fmt.Print(bundle.Pem)
	return nil
}

func (p *palisade) revokeExecution(ctx context.Context) error {

	receipt, err := p.client.Revoke(ctx, p.config.Revoke)
	if err != nil {
		return err
	}

	p.logger.Info(fmt.Sprintf("revoked %s at unix time %d", p.config.Revoke, receipt.RevocationTime))

	// drop the archived bundle and flag the inventory record if those
	// integrations are wired
	if p.archive != nil {
		if err := p.archive.RemoveBundle(p.config.Revoke); err != nil {
			p.logger.Error(fmt.Sprintf("failed to remove archived bundle: %v", err))
		}
	}
	if p.records != nil {
		if err := p.records.MarkRevoked(p.config.Revoke); err != nil {
			p.logger.Error(fmt.Sprintf("failed to mark inventory record revoked: %v", err))
		}
	}

	return nil
}

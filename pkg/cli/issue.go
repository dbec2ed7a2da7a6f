package cli

import (
	"fmt"

	"github.com/tdeslauriers/palisade/pkg/archive"
	"github.com/tdeslauriers/palisade/pkg/inventory"
	"github.com/tdeslauriers/palisade/pkg/pki"
	"golang.org/x/net/context"
)

// issueExecution issues a credential against a role, prints the pem material
// to stdout, and optionally archives and records the certificate.
func (p *palisade) issueExecution(ctx context.Context) error {

	if p.config.Cn == "" {
		return fmt.Errorf("no common name specified for issuance, eg '-cn api.myvault.com'")
	}

	opts := pki.NewIssueOptions().WithCommonName(p.config.Cn)
	if p.config.Ttl != "" {
		opts.WithTtl(p.config.Ttl)
	}
	if p.config.Format != "" {
		opts.WithFormat(p.config.Format)
	}

	cred, err := p.client.Issue(ctx, p.config.Issue, opts)
	if err != nil {
		return err
	}

	// private key goes to stdout only; it is never archived or recorded
	fmt.Println(cred.Certificate)
	fmt.Println(cred.IssuingCa)
	fmt.Println(cred.PrivateKey)

	if p.config.Archive {
		if p.archive == nil {
			return fmt.Errorf("archive requested but object storage is not configured")
		}

		bundle, err := archive.NewBundle(cred)
		if err != nil {
			return fmt.Errorf("failed to build archive bundle: %v", err)
		}

		if err := p.archive.PutBundle(bundle); err != nil {
			return err
		}
	}

	if p.config.Record {
		if p.records == nil {
			return fmt.Errorf("record requested but the inventory database is not configured")
		}

		// the engine mints unique serials, but a replayed invocation should
		// not duplicate rows
		exists, err := p.records.SerialExists(cred.SerialNumber)
		if err != nil {
			return fmt.Errorf("failed to check inventory for serial %s: %v", cred.SerialNumber, err)
		}
		if exists {
			p.logger.Warn(fmt.Sprintf("serial %s already recorded in the inventory", cred.SerialNumber))
			return nil
		}

		record, err := inventory.NewCertificateRecord(p.config.Issue, p.config.Cn, cred)
		if err != nil {
			return fmt.Errorf("failed to build inventory record: %v", err)
		}

		if err := p.records.InsertCertificate(*record); err != nil {
			return fmt.Errorf("failed to insert inventory record: %v", err)
		}
	}

	return nil
}

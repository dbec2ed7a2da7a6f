package pki

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tdeslauriers/palisade/internal/util"
	"github.com/tdeslauriers/palisade/pkg/auth"
	"github.com/tdeslauriers/palisade/pkg/connect"
	"github.com/tdeslauriers/palisade/pkg/validate"
)

// Client manages roles and credentials on one mounted PKI engine.
type Client interface {

	// CreateOrUpdateRole upserts the named role with the provided options.
	// Options left unset keep the engine's defaults (on create) or the role's
	// stored values are replaced wholesale (on update), per engine semantics.
	CreateOrUpdateRole(ctx context.Context, name string, opts *RoleOptions) error

	// GetRole reads the named role's stored configuration. The returned
	// options are indistinguishable from ones built via setters.
	GetRole(ctx context.Context, name string) (*RoleOptions, error)

	// ListRoles returns the names of the roles on the engine.
	ListRoles(ctx context.Context) ([]string, error)

	// DeleteRole removes the named role.
	DeleteRole(ctx context.Context, name string) error

	// Issue generates a new credential (certificate + private key) against the
	// named role.
	Issue(ctx context.Context, role string, opts *IssueOptions) (*Credential, error)

	// Revoke revokes the certificate with the provided serial number.
	Revoke(ctx context.Context, serialNumber string) (*RevocationReceipt, error)
}

// NewClient creates a Client for the PKI engine mounted at the given path,
// eg "pki" or "pki_int".
func NewClient(mount string, caller *connect.Caller, tokens auth.TokenProvider) (Client, error) {

	if err := validate.IsValidMountPath(mount); err != nil {
		return nil, fmt.Errorf("invalid mount path: %v", err)
	}

	return &pkiClient{
		mount:  mount,
		caller: caller,
		tokens: tokens,

		logger: slog.Default().
			With(slog.String(util.PackageKey, util.PackagePki)).
			With(slog.String(util.ComponentKey, util.ComponentPkiClient)).
			With(slog.String(util.FrameworkKey, util.FrameworkPalisade)),
	}, nil
}

var _ Client = (*pkiClient)(nil)

type pkiClient struct {
	mount  string
	caller *connect.Caller
	tokens auth.TokenProvider

	logger *slog.Logger
}

func (c *pkiClient) CreateOrUpdateRole(ctx context.Context, name string, opts *RoleOptions) error {

	if err := validate.IsValidRoleName(name); err != nil {
		return fmt.Errorf("invalid role name: %v", err)
	}

	if opts == nil {
		opts = NewRoleOptions()
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to get client token: %v", err)
	}

	endpoint := fmt.Sprintf("/v1/%s/roles/%s", c.mount, name)
	if _, err := connect.PostJson[*RoleOptions, SecretEnvelope[RoleOptions]](c.caller, ctx, endpoint, token, opts); err != nil {
		return err
	}

	c.logger.Info(fmt.Sprintf("upserted role %s on %s", name, c.mount))
	return nil
}

func (c *pkiClient) GetRole(ctx context.Context, name string) (*RoleOptions, error) {

	if err := validate.IsValidRoleName(name); err != nil {
		return nil, fmt.Errorf("invalid role name: %v", err)
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client token: %v", err)
	}

	endpoint := fmt.Sprintf("/v1/%s/roles/%s", c.mount, name)
	envelope, err := connect.GetJson[SecretEnvelope[RoleOptions]](c.caller, ctx, endpoint, token)
	if err != nil {
		return nil, err
	}

	return &envelope.Data, nil
}

func (c *pkiClient) ListRoles(ctx context.Context) ([]string, error) {

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client token: %v", err)
	}

	endpoint := fmt.Sprintf("/v1/%s/roles", c.mount)
	envelope, err := connect.ListJson[SecretEnvelope[roleKeys]](c.caller, ctx, endpoint, token)
	if err != nil {
		// an engine with no roles lists as 404
		if connect.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	return envelope.Data.Keys, nil
}

func (c *pkiClient) DeleteRole(ctx context.Context, name string) error {

	if err := validate.IsValidRoleName(name); err != nil {
		return fmt.Errorf("invalid role name: %v", err)
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to get client token: %v", err)
	}

	endpoint := fmt.Sprintf("/v1/%s/roles/%s", c.mount, name)
	if err := connect.Delete(c.caller, ctx, endpoint, token); err != nil {
		return err
	}

	c.logger.Info(fmt.Sprintf("deleted role %s on %s", name, c.mount))
	return nil
}

func (c *pkiClient) Issue(ctx context.Context, role string, opts *IssueOptions) (*Credential, error) {

	if err := validate.IsValidRoleName(role); err != nil {
		return nil, fmt.Errorf("invalid role name: %v", err)
	}

	if opts == nil {
		opts = NewIssueOptions()
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client token: %v", err)
	}

	endpoint := fmt.Sprintf("/v1/%s/issue/%s", c.mount, role)
	envelope, err := connect.PostJson[*IssueOptions, SecretEnvelope[Credential]](c.caller, ctx, endpoint, token, opts)
	if err != nil {
		return nil, err
	}

	c.logger.Info(fmt.Sprintf("issued credential against role %s on %s", role, c.mount),
		slog.String("serial_number", envelope.Data.SerialNumber))
	return &envelope.Data, nil
}

func (c *pkiClient) Revoke(ctx context.Context, serialNumber string) (*RevocationReceipt, error) {

	if err := validate.IsValidSerialNumber(serialNumber); err != nil {
		return nil, fmt.Errorf("invalid serial number: %v", err)
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client token: %v", err)
	}

	endpoint := fmt.Sprintf("/v1/%s/revoke", c.mount)
	envelope, err := connect.PostJson[revokeCmd, SecretEnvelope[RevocationReceipt]](c.caller, ctx, endpoint, token, revokeCmd{SerialNumber: serialNumber})
	if err != nil {
		return nil, err
	}

	c.logger.Info(fmt.Sprintf("revoked certificate %s on %s", serialNumber, c.mount))
	return &envelope.Data, nil
}

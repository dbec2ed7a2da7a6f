package cli

import "github.com/tdeslauriers/palisade/pkg/pki"

// Config holds the parsed command line flags and args that drive one
// invocation of the palisade cli.
type Config struct {
	Apply   bool   // upsert roles from a yaml file
	List    bool   // list role names on the engine
	Issue   string // role name to issue a credential against
	Revoke  string // serial number to revoke
	Fetch   string // serial number whose archived bundle to print
	Health  bool   // check backend health
	File    string // yaml file for -apply
	Cn      string // common name for -issue
	Ttl     string // ttl for -issue
	Format  string // format for -issue, eg pem
	Archive bool   // archive the issued bundle to object storage
	Record  bool   // record the issued cert in the inventory db
}

// RoleFile is a model representing the data to deserialize from a yaml role
// definitions file, eg:
//
//	roles:
//	  - name: web-server
//	    max_ttl: 9h
//	    allowed_domains:
//	      - myvault.com
//	    allow_subdomains: true
type RoleFile struct {
	Roles []RoleDefinition `yaml:"roles"`
}

// RoleDefinition is one role entry in a yaml role definitions file. Pointer
// fields keep absent yaml keys distinct from zero values so that a definition
// only sets the options it actually declares.
type RoleDefinition struct {
	Name                string    `yaml:"name"`
	Ttl                 *string   `yaml:"ttl"`
	MaxTtl              *string   `yaml:"max_ttl"`
	AllowLocalhost      *bool     `yaml:"allow_localhost"`
	AllowedDomains      *[]string `yaml:"allowed_domains"`
	AllowBareDomains    *bool     `yaml:"allow_bare_domains"`
	AllowSubdomains     *bool     `yaml:"allow_subdomains"`
	AllowAnyName        *bool     `yaml:"allow_any_name"`
	EnforceHostnames    *bool     `yaml:"enforce_hostnames"`
	AllowIpSans         *bool     `yaml:"allow_ip_sans"`
	ServerFlag          *bool     `yaml:"server_flag"`
	ClientFlag          *bool     `yaml:"client_flag"`
	CodeSigningFlag     *bool     `yaml:"code_signing_flag"`
	EmailProtectionFlag *bool     `yaml:"email_protection_flag"`
	KeyType             *string   `yaml:"key_type"`
	KeyBits             *int64    `yaml:"key_bits"`
	UseCsrCommonName    *bool     `yaml:"use_csr_common_name"`
}

// Options maps the yaml definition onto a RoleOptions accumulator, setting
// only the fields the definition declares.
func (d *RoleDefinition) Options() *pki.RoleOptions {

	opts := pki.NewRoleOptions()

	if d.Ttl != nil {
		opts.WithTtl(*d.Ttl)
	}
	if d.MaxTtl != nil {
		opts.WithMaxTtl(*d.MaxTtl)
	}
	if d.AllowLocalhost != nil {
		opts.WithAllowLocalhost(*d.AllowLocalhost)
	}
	if d.AllowedDomains != nil {
		opts.WithAllowedDomains(*d.AllowedDomains)
	}
	if d.AllowBareDomains != nil {
		opts.WithAllowBareDomains(*d.AllowBareDomains)
	}
	if d.AllowSubdomains != nil {
		opts.WithAllowSubdomains(*d.AllowSubdomains)
	}
	if d.AllowAnyName != nil {
		opts.WithAllowAnyName(*d.AllowAnyName)
	}
	if d.EnforceHostnames != nil {
		opts.WithEnforceHostnames(*d.EnforceHostnames)
	}
	if d.AllowIpSans != nil {
		opts.WithAllowIpSans(*d.AllowIpSans)
	}
	if d.ServerFlag != nil {
		opts.WithServerFlag(*d.ServerFlag)
	}
	if d.ClientFlag != nil {
		opts.WithClientFlag(*d.ClientFlag)
	}
	if d.CodeSigningFlag != nil {
		opts.WithCodeSigningFlag(*d.CodeSigningFlag)
	}
	if d.EmailProtectionFlag != nil {
		opts.WithEmailProtectionFlag(*d.EmailProtectionFlag)
	}
	if d.KeyType != nil {
		opts.WithKeyType(*d.KeyType)
	}
	if d.KeyBits != nil {
		opts.WithKeyBits(*d.KeyBits)
	}
	if d.UseCsrCommonName != nil {
		opts.WithUseCsrCommonName(*d.UseCsrCommonName)
	}

	return opts
}

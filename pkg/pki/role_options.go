package pki

// RoleOptions collects the tunable parameters of a role on the backend's PKI engine.
// Every field is optional and tri-state: unset fields are never sent to the backend,
// so the engine's own defaulting applies. Setters return the same instance so
// options can be chained, eg:
//
//	opts := pki.NewRoleOptions().
//		WithAllowedDomains([]string{"myvault.com"}).
//		WithAllowSubdomains(true).
//		WithMaxTtl("9h")
//
// No validation is performed at this layer: ttl formats, key types, key bit
// lengths, and flag combinations are all checked by the PKI engine itself.
// Note: not safe for concurrent mutation; build the options in one goroutine
// before handing them to the client.
type RoleOptions struct {
	ttl                 *string
	maxTtl              *string
	allowLocalhost      *bool
	allowedDomains      []string
	allowBareDomains    *bool
	allowSubdomains     *bool
	allowAnyName        *bool
	enforceHostnames    *bool
	allowIpSans         *bool
	serverFlag          *bool
	clientFlag          *bool
	codeSigningFlag     *bool
	emailProtectionFlag *bool
	keyType             *string
	keyBits             *int64
	useCsrCommonName    *bool
}

// NewRoleOptions returns an empty RoleOptions accumulator with every field unset.
func NewRoleOptions() *RoleOptions {
	return &RoleOptions{}
}

// WithTtl sets the requested certificate time-to-live as a duration string with
// a time suffix, eg "9h". If unset, the engine uses its default or max_ttl,
// whichever is shorter.
func (o *RoleOptions) WithTtl(ttl string) *RoleOptions {
	o.ttl = &ttl
	return o
}

// WithMaxTtl sets the maximum time-to-live as a duration string with a time
// suffix. If unset, the engine's maximum lease ttl applies.
func (o *RoleOptions) WithMaxTtl(maxTtl string) *RoleOptions {
	o.maxTtl = &maxTtl
	return o
}

// WithAllowLocalhost sets whether clients may request certs for localhost.
func (o *RoleOptions) WithAllowLocalhost(allow bool) *RoleOptions {
	o.allowLocalhost = &allow
	return o
}

// WithAllowedDomains sets the domains of the role, used together with the
// bare-domain and subdomain flags. The input slice is copied at call time, so
// the caller may reuse or mutate its slice afterward without affecting the
// stored options. A nil slice leaves the field unset; an empty non-nil slice
// stores an empty (set) domain list, which is a distinct state.
func (o *RoleOptions) WithAllowedDomains(domains []string) *RoleOptions {
	if domains != nil {
		cloned := make([]string, len(domains))
		copy(cloned, domains)
		o.allowedDomains = cloned
	}
	return o
}

// WithAllowBareDomains sets whether clients may request certs matching the
// allowed domains themselves, eg example.com when allowed_domains contains
// example.com.
func (o *RoleOptions) WithAllowBareDomains(allow bool) *RoleOptions {
	o.allowBareDomains = &allow
	return o
}

// WithAllowSubdomains sets whether clients may request certs with common names
// that are subdomains (including wildcards) of the allowed domains.
func (o *RoleOptions) WithAllowSubdomains(allow bool) *RoleOptions {
	o.allowSubdomains = &allow
	return o
}

// WithAllowAnyName sets whether clients may request any common name.
func (o *RoleOptions) WithAllowAnyName(allow bool) *RoleOptions {
	o.allowAnyName = &allow
	return o
}

// WithEnforceHostnames sets whether only valid host names are allowed for
// common names, DNS SANs, and the host part of email addresses.
func (o *RoleOptions) WithEnforceHostnames(enforce bool) *RoleOptions {
	o.enforceHostnames = &enforce
	return o
}

// WithAllowIpSans sets whether clients may request IP subject alternative names.
func (o *RoleOptions) WithAllowIpSans(allow bool) *RoleOptions {
	o.allowIpSans = &allow
	return o
}

// WithServerFlag sets whether issued certs are flagged for server use.
func (o *RoleOptions) WithServerFlag(flag bool) *RoleOptions {
	o.serverFlag = &flag
	return o
}

// WithClientFlag sets whether issued certs are flagged for client use.
func (o *RoleOptions) WithClientFlag(flag bool) *RoleOptions {
	o.clientFlag = &flag
	return o
}

// WithCodeSigningFlag sets whether issued certs are flagged for code signing.
func (o *RoleOptions) WithCodeSigningFlag(flag bool) *RoleOptions {
	o.codeSigningFlag = &flag
	return o
}

// WithEmailProtectionFlag sets whether issued certs are flagged for email
// protection use.
func (o *RoleOptions) WithEmailProtectionFlag(flag bool) *RoleOptions {
	o.emailProtectionFlag = &flag
	return o
}

// WithKeyType sets the private key type generated for issued certs, eg "rsa"
// or "ec". The value is passed through verbatim; the engine rejects
// unsupported types.
func (o *RoleOptions) WithKeyType(keyType string) *RoleOptions {
	o.keyType = &keyType
	return o
}

// WithKeyBits sets the bit length of generated private keys.
func (o *RoleOptions) WithKeyBits(keyBits int64) *RoleOptions {
	o.keyBits = &keyBits
	return o
}

// WithUseCsrCommonName sets whether the common name from a CSR is used on the
// CSR signing endpoint instead of the one in the request body.
func (o *RoleOptions) WithUseCsrCommonName(use bool) *RoleOptions {
	o.useCsrCommonName = &use
	return o
}

// Ttl returns the stored ttl and whether it has been set.
func (o *RoleOptions) Ttl() (string, bool) {
	if o.ttl == nil {
		return "", false
	}
	return *o.ttl, true
}

// MaxTtl returns the stored max ttl and whether it has been set.
func (o *RoleOptions) MaxTtl() (string, bool) {
	if o.maxTtl == nil {
		return "", false
	}
	return *o.maxTtl, true
}

// AllowLocalhost returns the stored flag and whether it has been set.
func (o *RoleOptions) AllowLocalhost() (bool, bool) {
	if o.allowLocalhost == nil {
		return false, false
	}
	return *o.allowLocalhost, true
}

// AllowedDomains returns a copy of the stored domain list and whether it has
// been set. The copy keeps the stored list independent of anything the caller
// does with the returned slice.
func (o *RoleOptions) AllowedDomains() ([]string, bool) {
	if o.allowedDomains == nil {
		return nil, false
	}
	cloned := make([]string, len(o.allowedDomains))
	copy(cloned, o.allowedDomains)
	return cloned, true
}

// AllowBareDomains returns the stored flag and whether it has been set.
func (o *RoleOptions) AllowBareDomains() (bool, bool) {
	if o.allowBareDomains == nil {
		return false, false
	}
	return *o.allowBareDomains, true
}

// AllowSubdomains returns the stored flag and whether it has been set.
func (o *RoleOptions) AllowSubdomains() (bool, bool) {
	if o.allowSubdomains == nil {
		return false, false
	}
	return *o.allowSubdomains, true
}

// AllowAnyName returns the stored flag and whether it has been set.
func (o *RoleOptions) AllowAnyName() (bool, bool) {
	if o.allowAnyName == nil {
		return false, false
	}
	return *o.allowAnyName, true
}

// EnforceHostnames returns the stored flag and whether it has been set.
func (o *RoleOptions) EnforceHostnames() (bool, bool) {
	if o.enforceHostnames == nil {
		return false, false
	}
	return *o.enforceHostnames, true
}

// AllowIpSans returns the stored flag and whether it has been set.
func (o *RoleOptions) AllowIpSans() (bool, bool) {
	if o.allowIpSans == nil {
		return false, false
	}
	return *o.allowIpSans, true
}

// ServerFlag returns the stored flag and whether it has been set.
func (o *RoleOptions) ServerFlag() (bool, bool) {
	if o.serverFlag == nil {
		return false, false
	}
	return *o.serverFlag, true
}

// ClientFlag returns the stored flag and whether it has been set.
func (o *RoleOptions) ClientFlag() (bool, bool) {
	if o.clientFlag == nil {
		return false, false
	}
	return *o.clientFlag, true
}

// CodeSigningFlag returns the stored flag and whether it has been set.
func (o *RoleOptions) CodeSigningFlag() (bool, bool) {
	if o.codeSigningFlag == nil {
		return false, false
	}
	return *o.codeSigningFlag, true
}

// EmailProtectionFlag returns the stored flag and whether it has been set.
func (o *RoleOptions) EmailProtectionFlag() (bool, bool) {
	if o.emailProtectionFlag == nil {
		return false, false
	}
	return *o.emailProtectionFlag, true
}

// KeyType returns the stored key type and whether it has been set.
func (o *RoleOptions) KeyType() (string, bool) {
	if o.keyType == nil {
		return "", false
	}
	return *o.keyType, true
}

// KeyBits returns the stored key bit length and whether it has been set.
func (o *RoleOptions) KeyBits() (int64, bool) {
	if o.keyBits == nil {
		return 0, false
	}
	return *o.keyBits, true
}

// UseCsrCommonName returns the stored flag and whether it has been set.
func (o *RoleOptions) UseCsrCommonName() (bool, bool) {
	if o.useCsrCommonName == nil {
		return false, false
	}
	return *o.useCsrCommonName, true
}

package pki

import "encoding/json"

// IssueOptions collects the parameters of a credential-issuance request against
// a role. Same contract as RoleOptions: all fields optional, unset fields stay
// off the wire, list fields are copied on set and comma-joined when encoded.
type IssueOptions struct {
	commonName        *string
	altNames          []string
	ipSans            []string
	ttl               *string
	format            *string
	excludeCnFromSans *bool
}

// NewIssueOptions returns an empty IssueOptions accumulator.
func NewIssueOptions() *IssueOptions {
	return &IssueOptions{}
}

// WithCommonName sets the requested common name for the certificate.
func (o *IssueOptions) WithCommonName(cn string) *IssueOptions {
	o.commonName = &cn
	return o
}

// WithAltNames sets the requested DNS subject alternative names. The input
// slice is copied; nil leaves the field unset.
func (o *IssueOptions) WithAltNames(altNames []string) *IssueOptions {
	if altNames != nil {
		cloned := make([]string, len(altNames))
		copy(cloned, altNames)
		o.altNames = cloned
	}
	return o
}

// WithIpSans sets the requested IP subject alternative names. The input slice
// is copied; nil leaves the field unset.
func (o *IssueOptions) WithIpSans(ipSans []string) *IssueOptions {
	if ipSans != nil {
		cloned := make([]string, len(ipSans))
		copy(cloned, ipSans)
		o.ipSans = cloned
	}
	return o
}

// WithTtl sets the requested ttl as a duration string with a time suffix.
func (o *IssueOptions) WithTtl(ttl string) *IssueOptions {
	o.ttl = &ttl
	return o
}

// WithFormat sets the response encoding, eg "pem" or "der".
func (o *IssueOptions) WithFormat(format string) *IssueOptions {
	o.format = &format
	return o
}

// WithExcludeCnFromSans sets whether the common name is excluded from DNS or
// email subject alternative names.
func (o *IssueOptions) WithExcludeCnFromSans(exclude bool) *IssueOptions {
	o.excludeCnFromSans = &exclude
	return o
}

// CommonName returns the stored common name and whether it has been set.
func (o *IssueOptions) CommonName() (string, bool) {
	if o.commonName == nil {
		return "", false
	}
	return *o.commonName, true
}

// AltNames returns a copy of the stored alt names and whether they have been set.
func (o *IssueOptions) AltNames() ([]string, bool) {
	if o.altNames == nil {
		return nil, false
	}
	cloned := make([]string, len(o.altNames))
	copy(cloned, o.altNames)
	return cloned, true
}

// IpSans returns a copy of the stored ip sans and whether they have been set.
func (o *IssueOptions) IpSans() ([]string, bool) {
	if o.ipSans == nil {
		return nil, false
	}
	cloned := make([]string, len(o.ipSans))
	copy(cloned, o.ipSans)
	return cloned, true
}

// Ttl returns the stored ttl and whether it has been set.
func (o *IssueOptions) Ttl() (string, bool) {
	if o.ttl == nil {
		return "", false
	}
	return *o.ttl, true
}

// Format returns the stored format and whether it has been set.
func (o *IssueOptions) Format() (string, bool) {
	if o.format == nil {
		return "", false
	}
	return *o.format, true
}

// ExcludeCnFromSans returns the stored flag and whether it has been set.
func (o *IssueOptions) ExcludeCnFromSans() (bool, bool) {
	if o.excludeCnFromSans == nil {
		return false, false
	}
	return *o.excludeCnFromSans, true
}

// issueWire is the issuance request shape on the engine's http api.
type issueWire struct {
	CommonName        *string `json:"common_name,omitempty"`
	AltNames          *string `json:"alt_names,omitempty"`
	IpSans            *string `json:"ip_sans,omitempty"`
	Ttl               *string `json:"ttl,omitempty"`
	Format            *string `json:"format,omitempty"`
	ExcludeCnFromSans *bool   `json:"exclude_cn_from_sans,omitempty"`
}

// MarshalJSON encodes only the options that have been set, under the engine's
// snake_case keys.
func (o *IssueOptions) MarshalJSON() ([]byte, error) {
	return json.Marshal(issueWire{
		CommonName:        o.commonName,
		AltNames:          joinList(o.altNames),
		IpSans:            joinList(o.ipSans),
		Ttl:               o.ttl,
		Format:            o.format,
		ExcludeCnFromSans: o.excludeCnFromSans,
	})
}

// UnmarshalJSON populates the options from an engine payload.
func (o *IssueOptions) UnmarshalJSON(data []byte) error {

	var wire issueWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	o.commonName = wire.CommonName
	o.altNames = splitList(wire.AltNames)
	o.ipSans = splitList(wire.IpSans)
	o.ttl = wire.Ttl
	o.format = wire.Format
	o.excludeCnFromSans = wire.ExcludeCnFromSans

	return nil
}

package pki

import (
	"encoding/json"
	"strings"
)

// roleWire is the request/response shape of a role on the PKI engine's http api.
// Pointer fields with omitempty keep unset options off the wire entirely so the
// engine's defaulting applies; a set-but-false flag is still sent as false.
// The engine expects list fields as a single comma-joined string.
type roleWire struct {
	Ttl                 *string `json:"ttl,omitempty"`
	MaxTtl              *string `json:"max_ttl,omitempty"`
	AllowLocalhost      *bool   `json:"allow_localhost,omitempty"`
	AllowedDomains      *string `json:"allowed_domains,omitempty"`
	AllowBareDomains    *bool   `json:"allow_bare_domains,omitempty"`
	AllowSubdomains     *bool   `json:"allow_subdomains,omitempty"`
	AllowAnyName        *bool   `json:"allow_any_name,omitempty"`
	EnforceHostnames    *bool   `json:"enforce_hostnames,omitempty"`
	AllowIpSans         *bool   `json:"allow_ip_sans,omitempty"`
	ServerFlag          *bool   `json:"server_flag,omitempty"`
	ClientFlag          *bool   `json:"client_flag,omitempty"`
	CodeSigningFlag     *bool   `json:"code_signing_flag,omitempty"`
	EmailProtectionFlag *bool   `json:"email_protection_flag,omitempty"`
	KeyType             *string `json:"key_type,omitempty"`
	KeyBits             *int64  `json:"key_bits,omitempty"`
	UseCsrCommonName    *bool   `json:"use_csr_common_name,omitempty"`
}

// joinList flattens a list field to the engine's comma-joined wire form.
// No escaping is applied: values containing commas are the caller's problem.
func joinList(values []string) *string {
	if values == nil {
		return nil
	}
	joined := strings.Join(values, ",")
	return &joined
}

// splitList expands a comma-joined wire value back to a list. An empty string
// is an empty (set) list, not an unset field: the engine always returns list
// fields on a role that exists.
func splitList(joined *string) []string {
	if joined == nil {
		return nil
	}
	if *joined == "" {
		return []string{}
	}
	return strings.Split(*joined, ",")
}

// MarshalJSON encodes only the options that have been set, under the engine's
// snake_case keys.
func (o *RoleOptions) MarshalJSON() ([]byte, error) {
	return json.Marshal(roleWire{
		Ttl:                 o.ttl,
		MaxTtl:              o.maxTtl,
		AllowLocalhost:      o.allowLocalhost,
		AllowedDomains:      joinList(o.allowedDomains),
		AllowBareDomains:    o.allowBareDomains,
		AllowSubdomains:     o.allowSubdomains,
		AllowAnyName:        o.allowAnyName,
		EnforceHostnames:    o.enforceHostnames,
		AllowIpSans:         o.allowIpSans,
		ServerFlag:          o.serverFlag,
		ClientFlag:          o.clientFlag,
		CodeSigningFlag:     o.codeSigningFlag,
		EmailProtectionFlag: o.emailProtectionFlag,
		KeyType:             o.keyType,
		KeyBits:             o.keyBits,
		UseCsrCommonName:    o.useCsrCommonName,
	})
}

// UnmarshalJSON populates the options from an engine payload. Keys absent from
// the payload leave their fields unset.
func (o *RoleOptions) UnmarshalJSON(data []byte) error {

	var wire roleWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	o.ttl = wire.Ttl
	o.maxTtl = wire.MaxTtl
	o.allowLocalhost = wire.AllowLocalhost
	o.allowedDomains = splitList(wire.AllowedDomains)
	o.allowBareDomains = wire.AllowBareDomains
	o.allowSubdomains = wire.AllowSubdomains
	o.allowAnyName = wire.AllowAnyName
	o.enforceHostnames = wire.EnforceHostnames
	o.allowIpSans = wire.AllowIpSans
	o.serverFlag = wire.ServerFlag
	o.clientFlag = wire.ClientFlag
	o.codeSigningFlag = wire.CodeSigningFlag
	o.emailProtectionFlag = wire.EmailProtectionFlag
	o.keyType = wire.KeyType
	o.keyBits = wire.KeyBits
	o.useCsrCommonName = wire.UseCsrCommonName

	return nil
}

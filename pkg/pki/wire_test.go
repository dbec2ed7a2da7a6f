package pki

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMarshalOmitsUnsetFields(t *testing.T) {

	opts := NewRoleOptions().
		WithTtl("9h").
		WithAllowSubdomains(true)

	raw, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("failed to marshal options: %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed to unmarshal payload for inspection: %v", err)
	}

	// exactly the set keys, nothing else
	if len(payload) != 2 {
		t.Errorf("expected exactly 2 keys in payload, got %d: %v", len(payload), payload)
	}
	if payload["ttl"] != "9h" {
		t.Errorf("expected ttl 9h, got %v", payload["ttl"])
	}
	if payload["allow_subdomains"] != true {
		t.Errorf("expected allow_subdomains true, got %v", payload["allow_subdomains"])
	}
}

func TestMarshalEmptyOptions(t *testing.T) {

	raw, err := json.Marshal(NewRoleOptions())
	if err != nil {
		t.Fatalf("failed to marshal empty options: %v", err)
	}

	if string(raw) != "{}" {
		t.Errorf("expected empty json object for empty options, got %s", raw)
	}
}

func TestMarshalScenario(t *testing.T) {

	opts := NewRoleOptions().
		WithAllowedDomains([]string{"myvault.com", "example.com"}).
		WithAllowSubdomains(true).
		WithMaxTtl("9h")

	raw, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("failed to marshal options: %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed to unmarshal payload for inspection: %v", err)
	}

	if len(payload) != 3 {
		t.Errorf("expected exactly 3 keys in payload, got %d: %v", len(payload), payload)
	}
	if payload["allowed_domains"] != "myvault.com,example.com" {
		t.Errorf("expected comma-joined domains, got %v", payload["allowed_domains"])
	}
	if payload["allow_subdomains"] != true {
		t.Errorf("expected allow_subdomains true, got %v", payload["allow_subdomains"])
	}
	if payload["max_ttl"] != "9h" {
		t.Errorf("expected max_ttl 9h, got %v", payload["max_ttl"])
	}
}

func TestUnmarshalEmptyDomainsAndKeyBits(t *testing.T) {

	var opts RoleOptions
	if err := json.Unmarshal([]byte(`{"allowed_domains": "", "key_bits": 2048}`), &opts); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}

	// an empty domains string is a set, empty list, not unset: the engine
	// always returns the field on a role that exists
	domains, ok := opts.AllowedDomains()
	if !ok {
		t.Error("allowed domains should be set when present in the payload")
	}
	if len(domains) != 0 {
		t.Errorf("expected empty domain list, got %v", domains)
	}

	if keyBits, ok := opts.KeyBits(); !ok || keyBits != 2048 {
		t.Errorf("expected key bits 2048 set, got %d set=%t", keyBits, ok)
	}

	// everything else stays unset
	if _, ok := opts.Ttl(); ok {
		t.Error("ttl should be unset when absent from the payload")
	}
	if _, ok := opts.AllowSubdomains(); ok {
		t.Error("allow subdomains should be unset when absent from the payload")
	}
}

func TestWirePayloadRoundTrip(t *testing.T) {

	payloads := []string{
		`{}`,
		`{"ttl":"1h"}`,
		`{"allowed_domains":"myvault.com,example.com","allow_subdomains":true,"max_ttl":"9h"}`,
		`{"allow_localhost":false,"enforce_hostnames":true,"key_type":"rsa","key_bits":4096}`,
		`{"server_flag":true,"client_flag":false,"code_signing_flag":true,"email_protection_flag":false,"use_csr_common_name":true,"allow_any_name":false,"allow_bare_domains":true,"allow_ip_sans":false}`,
	}

	for _, payload := range payloads {

		var opts RoleOptions
		if err := json.Unmarshal([]byte(payload), &opts); err != nil {
			t.Fatalf("failed to unmarshal payload %s: %v", payload, err)
		}

		raw, err := json.Marshal(&opts)
		if err != nil {
			t.Fatalf("failed to re-marshal payload %s: %v", payload, err)
		}

		var want, got map[string]interface{}
		if err := json.Unmarshal([]byte(payload), &want); err != nil {
			t.Fatalf("failed to unmarshal want for %s: %v", payload, err)
		}
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("failed to unmarshal got for %s: %v", payload, err)
		}

		if !reflect.DeepEqual(want, got) {
			t.Errorf("payload did not survive a decode/encode round trip: want %v got %v", want, got)
		}
	}
}

func TestOptionsRoundTripThroughWire(t *testing.T) {

	original := NewRoleOptions().
		WithAllowedDomains([]string{"myvault.com"}).
		WithAllowSubdomains(true).
		WithKeyBits(256)

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("failed to marshal options: %v", err)
	}

	var decoded RoleOptions
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("failed to unmarshal options: %v", err)
	}

	// a freshly deserialized instance is indistinguishable from one built
	// via setters
	domains, ok := decoded.AllowedDomains()
	if !ok || !reflect.DeepEqual(domains, []string{"myvault.com"}) {
		t.Errorf("expected allowed domains [myvault.com] set, got %v set=%t", domains, ok)
	}
	if v, ok := decoded.AllowSubdomains(); !ok || !v {
		t.Errorf("expected allow subdomains true set, got %t set=%t", v, ok)
	}
	if keyBits, ok := decoded.KeyBits(); !ok || keyBits != 256 {
		t.Errorf("expected key bits 256 set, got %d set=%t", keyBits, ok)
	}
	if _, ok := decoded.Ttl(); ok {
		t.Error("ttl should remain unset through the wire")
	}
}

func TestIssueOptionsWire(t *testing.T) {

	opts := NewIssueOptions().
		WithCommonName("api.myvault.com").
		WithAltNames([]string{"api.myvault.com", "api-internal.myvault.com"}).
		WithIpSans([]string{"127.0.0.1"}).
		WithTtl("720h")

	raw, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("failed to marshal issue options: %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed to unmarshal payload for inspection: %v", err)
	}

	if len(payload) != 4 {
		t.Errorf("expected exactly 4 keys in payload, got %d: %v", len(payload), payload)
	}
	if payload["common_name"] != "api.myvault.com" {
		t.Errorf("expected common_name, got %v", payload["common_name"])
	}
	if payload["alt_names"] != "api.myvault.com,api-internal.myvault.com" {
		t.Errorf("expected comma-joined alt_names, got %v", payload["alt_names"])
	}
	if payload["ip_sans"] != "127.0.0.1" {
		t.Errorf("expected ip_sans, got %v", payload["ip_sans"])
	}

	// copy-on-set holds for issue options too
	source := []string{"a.myvault.com"}
	copied := NewIssueOptions().WithAltNames(source)
	source[0] = "b.myvault.com"
	altNames, _ := copied.AltNames()
	if altNames[0] != "a.myvault.com" {
		t.Errorf("stored alt names changed with the caller's slice: got %v", altNames)
	}
}

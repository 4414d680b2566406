package whois

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tlv300/whois-lookup/models"
)

func mustRecord(t *testing.T, raw string) *models.WhoisRecord {
	t.Helper()
	var rec models.WhoisRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	return &rec
}

func TestNormalizeHostnames(t *testing.T) {
	longName := strings.Repeat("a", 26) + ".com" // 30 chars
	exact25 := strings.Repeat("b", 21) + ".com"

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "string form split on comma and space",
			raw:  `{"nameServers":{"hostNames":"ns1.example.com, ns2.example.com"}}`,
			want: "ns1.example.com, ns2.example.com",
		},
		{
			name: "string form with mixed delimiters",
			raw:  `{"nameServers":{"hostNames":"ns1.example.com,,  ns2.example.com   ns3.example.com"}}`,
			want: "ns1.example.com, ns2.example.com, ns3.example.com",
		},
		{
			name: "list form preserves order and duplicates",
			raw:  `{"nameServers":{"hostNames":["b.ns.example.com","a.ns.example.com","a.ns.example.com"]}}`,
			want: "b.ns.example.com, a.ns.example.com, a.ns.example.com",
		},
		{
			name: "list form stringifies non-string entries",
			raw:  `{"nameServers":{"hostNames":[123,"ns1.example.com"]}}`,
			want: "123, ns1.example.com",
		},
		{
			name: "long name truncated to 22 chars plus ellipsis",
			raw:  `{"nameServers":{"hostNames":["` + longName + `"]}}`,
			want: strings.Repeat("a", 22) + "...",
		},
		{
			name: "25-char name passes unchanged",
			raw:  `{"nameServers":{"hostNames":["` + exact25 + `"]}}`,
			want: exact25,
		},
		{
			name: "rawText fallback within the block",
			raw:  `{"nameServers":{"rawText":"ns1.example.com ns2.example.com"}}`,
			want: "ns1.example.com, ns2.example.com",
		},
		{
			name: "hostNames of unusable shape falls to rawText",
			raw:  `{"nameServers":{"hostNames":{"nested":true},"rawText":"ns1.example.com"}}`,
			want: "ns1.example.com",
		},
		{
			name: "registryData fallback when primary has none",
			raw:  `{"registryData":{"nameServers":{"hostNames":["ns1.example.net"]}}}`,
			want: "ns1.example.net",
		},
		{
			name: "empty primary list still falls back to registryData",
			raw:  `{"nameServers":{"hostNames":[]},"registryData":{"nameServers":{"hostNames":["ns9.example.net"]}}}`,
			want: "ns9.example.net",
		},
		{
			name: "nameServers not an object is ignored",
			raw:  `{"nameServers":"ns1.example.com","registryData":{"nameServers":{"hostNames":["ns2.example.net"]}}}`,
			want: "ns2.example.net",
		},
		{
			name: "nothing anywhere yields empty string",
			raw:  `{"domainName":"example.com"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeHostnames(mustRecord(t, tt.raw))
			if got != tt.want {
				t.Fatalf("NormalizeHostnames() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeHostnamesEntryLengthBound(t *testing.T) {
	raw := `{"nameServers":{"hostNames":["` +
		strings.Repeat("x", 80) + `","short.example.com","` + strings.Repeat("y", 26) + `"]}}`
	out := NormalizeHostnames(mustRecord(t, raw))
	for _, entry := range strings.Split(out, ", ") {
		if len(entry) > 25 {
			t.Fatalf("entry %q exceeds 25 characters", entry)
		}
	}
}

func TestExtractDomainInfo(t *testing.T) {
	t.Run("primary fields win over registry data", func(t *testing.T) {
		rec := mustRecord(t, `{
			"domainName":"example.com",
			"registrarName":"Primary Registrar",
			"createdDate":"1995-08-14T04:00:00Z",
			"expiresDate":"2026-08-13T04:00:00Z",
			"registryData":{
				"domainName":"shadow.example.com",
				"registrarName":"Registry Registrar",
				"createdDate":"1990-01-01T00:00:00Z",
				"expiresDate":"2030-01-01T00:00:00Z"
			}
		}`)
		info := ExtractDomainInfo(rec)
		if info.DomainName != "example.com" {
			t.Errorf("DomainName = %q", info.DomainName)
		}
		if info.Registrar != "Primary Registrar" {
			t.Errorf("Registrar = %q", info.Registrar)
		}
		if info.RegistrationDate != "1995-08-14T04:00:00Z" {
			t.Errorf("RegistrationDate = %q", info.RegistrationDate)
		}
		if info.ExpirationDate != "2026-08-13T04:00:00Z" {
			t.Errorf("ExpirationDate = %q", info.ExpirationDate)
		}
	})

	t.Run("empty primary field falls through to registry data", func(t *testing.T) {
		rec := mustRecord(t, `{"domainName":"","registryData":{"domainName":"example.com"}}`)
		if got := ExtractDomainInfo(rec).DomainName; got != "example.com" {
			t.Fatalf("DomainName = %q, want example.com", got)
		}
	})

	t.Run("registrar block is the last tier", func(t *testing.T) {
		rec := mustRecord(t, `{"registrar":{"name":"Block Registrar"}}`)
		if got := ExtractDomainInfo(rec).Registrar; got != "Block Registrar" {
			t.Fatalf("Registrar = %q, want Block Registrar", got)
		}
	})

	t.Run("registrarName on registry data beats the registrar block", func(t *testing.T) {
		rec := mustRecord(t, `{
			"registrar":{"name":"Block Registrar"},
			"registryData":{"registrarName":"Registry Registrar"}
		}`)
		if got := ExtractDomainInfo(rec).Registrar; got != "Registry Registrar" {
			t.Fatalf("Registrar = %q, want Registry Registrar", got)
		}
	})

	t.Run("all registrar tiers missing gives empty string", func(t *testing.T) {
		rec := mustRecord(t, `{"domainName":"example.com"}`)
		if got := ExtractDomainInfo(rec).Registrar; got != "" {
			t.Fatalf("Registrar = %q, want empty", got)
		}
	})

	t.Run("estimated age passes through untouched", func(t *testing.T) {
		rec := mustRecord(t, `{"estimatedDomainAge":8065}`)
		out, err := json.Marshal(ExtractDomainInfo(rec))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(out), `"estimatedDomainAge":8065`) {
			t.Fatalf("marshaled info = %s", out)
		}
	})

	t.Run("estimated age absent marshals as null", func(t *testing.T) {
		rec := mustRecord(t, `{"domainName":"example.com"}`)
		out, err := json.Marshal(ExtractDomainInfo(rec))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(out), `"estimatedDomainAge":null`) {
			t.Fatalf("marshaled info = %s", out)
		}
	})

	t.Run("zero primary age falls through to registry data", func(t *testing.T) {
		rec := mustRecord(t, `{"estimatedDomainAge":0,"registryData":{"estimatedDomainAge":12}}`)
		out, err := json.Marshal(ExtractDomainInfo(rec))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(out), `"estimatedDomainAge":12`) {
			t.Fatalf("marshaled info = %s", out)
		}
	})
}

func TestExtractContactInfo(t *testing.T) {
	t.Run("full contact blocks", func(t *testing.T) {
		rec := mustRecord(t, `{
			"registrant":{"name":"Internet Corp","email":"owner@example.com"},
			"technicalContact":{"name":"Tech Person"},
			"administrativeContact":{"name":"Admin Person"},
			"contactEmail":"abuse@example.com"
		}`)
		info := ExtractContactInfo(rec)
		if info.RegistrantName != "Internet Corp" {
			t.Errorf("RegistrantName = %q", info.RegistrantName)
		}
		if info.TechnicalContactName != "Tech Person" {
			t.Errorf("TechnicalContactName = %q", info.TechnicalContactName)
		}
		if info.AdministrativeContactName != "Admin Person" {
			t.Errorf("AdministrativeContactName = %q", info.AdministrativeContactName)
		}
		if info.ContactEmail != "abuse@example.com" {
			t.Errorf("ContactEmail = %q, want top-level contactEmail to win", info.ContactEmail)
		}
	})

	t.Run("registrant email is the fallback", func(t *testing.T) {
		rec := mustRecord(t, `{"registrant":{"name":"Internet Corp","email":"owner@example.com"}}`)
		if got := ExtractContactInfo(rec).ContactEmail; got != "owner@example.com" {
			t.Fatalf("ContactEmail = %q", got)
		}
	})

	t.Run("missing blocks give empty strings", func(t *testing.T) {
		info := ExtractContactInfo(mustRecord(t, `{"domainName":"example.com"}`))
		if info != (models.ContactInfo{}) {
			t.Fatalf("expected all-empty contact info, got %+v", info)
		}
	})

	t.Run("malformed blocks give empty strings", func(t *testing.T) {
		info := ExtractContactInfo(mustRecord(t, `{"registrant":"not an object","technicalContact":42}`))
		if info != (models.ContactInfo{}) {
			t.Fatalf("expected all-empty contact info, got %+v", info)
		}
	})

	t.Run("registry data contacts are not consulted", func(t *testing.T) {
		rec := mustRecord(t, `{
			"registryData":{
				"registrant":{"name":"Registry Person","email":"registry@example.com"},
				"contactEmail":"registry-contact@example.com"
			}
		}`)
		info := ExtractContactInfo(rec)
		if info != (models.ContactInfo{}) {
			t.Fatalf("contact view must ignore registryData, got %+v", info)
		}
	})
}

func TestExtractionIsIdempotent(t *testing.T) {
	rec := mustRecord(t, `{
		"domainName":"example.com",
		"estimatedDomainAge":8065,
		"nameServers":{"hostNames":["a.iana-servers.net","b.iana-servers.net"]},
		"registrant":{"name":"Internet Corp"}
	}`)

	first, err := json.Marshal(ExtractDomainInfo(rec))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(ExtractDomainInfo(rec))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("domain view not idempotent:\n%s\n%s", first, second)
	}

	firstContact, _ := json.Marshal(ExtractContactInfo(rec))
	secondContact, _ := json.Marshal(ExtractContactInfo(rec))
	if !bytes.Equal(firstContact, secondContact) {
		t.Fatalf("contact view not idempotent:\n%s\n%s", firstContact, secondContact)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.example.com"); got != "short.example.com" {
		t.Errorf("truncate(short) = %q", got)
	}
	in := strings.Repeat("z", 30)
	want := strings.Repeat("z", 22) + "..."
	if got := truncate(in); got != want {
		t.Errorf("truncate(long) = %q, want %q", got, want)
	}
	if got := truncate(strings.Repeat("z", 25)); len(got) != 25 {
		t.Errorf("25-char input should pass through, got %q", got)
	}
}

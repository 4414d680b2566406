package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// WhoisResponse is the upstream WhoisXML API body. Everything of interest
// lives under the top-level WhoisRecord key.
type WhoisResponse struct {
	WhoisRecord *WhoisRecord `json:"WhoisRecord"`
}

// WhoisRecord is one raw provider record. Every field is optional and may
// arrive malformed, so the record decodes each field independently: a field
// of the wrong shape degrades to its zero value instead of failing the whole
// decode. RegistryData nests a second record of the same shape that acts as a
// fallback source for several fields.
type WhoisRecord struct {
	DomainName            string
	RegistrarName         string
	CreatedDate           string
	ExpiresDate           string
	EstimatedDomainAge    Scalar
	ContactEmail          string
	Registrar             *ContactBlock
	RegistryData          *WhoisRecord
	NameServers           *HostNameSet
	Registrant            *ContactBlock
	TechnicalContact      *ContactBlock
	AdministrativeContact *ContactBlock

	populated bool
}

func (r *WhoisRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not a JSON object: stays empty.
		return nil
	}
	r.populated = len(raw) > 0

	r.DomainName = stringField(raw, "domainName")
	r.RegistrarName = stringField(raw, "registrarName")
	r.CreatedDate = stringField(raw, "createdDate")
	r.ExpiresDate = stringField(raw, "expiresDate")
	r.ContactEmail = stringField(raw, "contactEmail")

	if v, ok := raw["estimatedDomainAge"]; ok {
		_ = r.EstimatedDomainAge.UnmarshalJSON(v)
	}

	r.Registrar = contactField(raw, "registrar")
	r.Registrant = contactField(raw, "registrant")
	r.TechnicalContact = contactField(raw, "technicalContact")
	r.AdministrativeContact = contactField(raw, "administrativeContact")

	if v, ok := raw["nameServers"]; ok {
		var ns HostNameSet
		_ = ns.UnmarshalJSON(v)
		if ns.present {
			r.NameServers = &ns
		}
	}

	if v, ok := raw["registryData"]; ok {
		var nested WhoisRecord
		_ = nested.UnmarshalJSON(v)
		if nested.populated {
			r.RegistryData = &nested
		}
	}
	return nil
}

// Empty reports whether the provider returned no usable record. A record
// holding only unknown keys still counts as found; it just normalizes to
// empty fields.
func (r *WhoisRecord) Empty() bool {
	return r == nil || !r.populated
}

// ContactBlock is a nested contact-ish object (registrant, technicalContact,
// administrativeContact, registrar). Only name and email are read; a block of
// the wrong shape decodes to empty strings.
type ContactBlock struct {
	Name  string
	Email string
}

func (c *ContactBlock) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	c.Name = stringField(raw, "name")
	c.Email = stringField(raw, "email")
	return nil
}

// hostForm discriminates the three representations the provider uses for
// name-server host lists. Exactly one is active per record.
type hostForm int

const (
	hostFormNone hostForm = iota
	hostFormList
	hostFormSingle
	hostFormRaw
)

// HostNameSet is the decoded nameServers block. The shape decision (array of
// hosts, one delimited string, or free text) happens here, once, so the
// extractors never inspect types themselves.
type HostNameSet struct {
	form    hostForm
	list    []string
	single  string
	raw     string
	present bool
}

func (h *HostNameSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	h.present = true

	if v, ok := raw["hostNames"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err == nil {
			h.form = hostFormList
			h.list = make([]string, 0, len(items))
			for _, item := range items {
				h.list = append(h.list, scalarString(item))
			}
			return nil
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			h.form = hostFormSingle
			h.single = s
			return nil
		}
	}

	if v, ok := raw["rawText"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			h.form = hostFormRaw
			h.raw = s
		}
	}
	return nil
}

// Names resolves the active representation into individual host names. The
// list form is returned as-is (an empty list stays empty, without falling
// back to rawText); the string forms are split on commas and whitespace with
// empty fragments discarded.
func (h *HostNameSet) Names() []string {
	if h == nil {
		return nil
	}
	switch h.form {
	case hostFormList:
		return h.list
	case hostFormSingle:
		return splitHostNames(h.single)
	case hostFormRaw:
		return splitHostNames(h.raw)
	default:
		return nil
	}
}

func splitHostNames(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	return names
}

func stringField(raw map[string]json.RawMessage, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	return scalarString(v)
}

func contactField(raw map[string]json.RawMessage, key string) *ContactBlock {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	var c ContactBlock
	_ = c.UnmarshalJSON(v)
	return &c
}

// scalarString renders a JSON scalar as display text. Strings pass through,
// numbers and booleans keep their literal form, anything else (null, nested
// structures) becomes the empty string.
func scalarString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

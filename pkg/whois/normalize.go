// Package whois reshapes raw WhoisXML records into the two flat views the
// API serves, and talks to the upstream provider.
package whois

import (
	"strings"

	"github.com/tlv300/whois-lookup/models"
)

// maxHostnameLen bounds each displayed host name; longer names are cut to
// truncatedLen characters plus an ellipsis.
const (
	maxHostnameLen = 25
	truncatedLen   = 22
)

// NormalizeHostnames flattens a record's name servers into one display
// string: host names in extraction order, each truncated, joined with ", ".
// The primary record is tried first; when it yields nothing, the nested
// registry data is tried with the same rules. No hosts anywhere gives "".
func NormalizeHostnames(rec *models.WhoisRecord) string {
	if rec == nil {
		return ""
	}
	hosts := rec.NameServers.Names()
	if len(hosts) == 0 && rec.RegistryData != nil {
		hosts = rec.RegistryData.NameServers.Names()
	}
	if len(hosts) == 0 {
		return ""
	}

	truncated := make([]string, len(hosts))
	for i, h := range hosts {
		truncated[i] = truncate(h)
	}
	return strings.Join(truncated, ", ")
}

// ExtractDomainInfo builds the registration view. Each field takes the first
// present value from the primary record then the registry data; registrar has
// a final fallback to the primary record's registrar block.
func ExtractDomainInfo(rec *models.WhoisRecord) models.DomainInfo {
	info := models.DomainInfo{
		DomainName:       pick(rec, func(r *models.WhoisRecord) string { return r.DomainName }),
		RegistrationDate: pick(rec, func(r *models.WhoisRecord) string { return r.CreatedDate }),
		ExpirationDate:   pick(rec, func(r *models.WhoisRecord) string { return r.ExpiresDate }),
		Hostnames:        NormalizeHostnames(rec),
	}

	info.Registrar = pick(rec, func(r *models.WhoisRecord) string { return r.RegistrarName })
	if info.Registrar == "" && rec != nil && rec.Registrar != nil {
		info.Registrar = rec.Registrar.Name
	}

	if rec != nil {
		if rec.EstimatedDomainAge.Present() {
			info.EstimatedDomainAge = rec.EstimatedDomainAge
		} else if rec.RegistryData != nil && rec.RegistryData.EstimatedDomainAge.Present() {
			info.EstimatedDomainAge = rec.RegistryData.EstimatedDomainAge
		}
	}
	return info
}

// ExtractContactInfo builds the contact view. Contact fields read only the
// primary record; registry data is not consulted here, unlike the
// registration view.
func ExtractContactInfo(rec *models.WhoisRecord) models.ContactInfo {
	var info models.ContactInfo
	if rec == nil {
		return info
	}

	info.RegistrantName = contactName(rec.Registrant)
	info.TechnicalContactName = contactName(rec.TechnicalContact)
	info.AdministrativeContactName = contactName(rec.AdministrativeContact)

	info.ContactEmail = rec.ContactEmail
	if info.ContactEmail == "" && rec.Registrant != nil {
		info.ContactEmail = rec.Registrant.Email
	}
	return info
}

// pick returns the field's value from the primary record when non-empty,
// falling back to the same field on the registry data.
func pick(rec *models.WhoisRecord, field func(*models.WhoisRecord) string) string {
	if rec == nil {
		return ""
	}
	if v := field(rec); v != "" {
		return v
	}
	if rec.RegistryData != nil {
		if v := field(rec.RegistryData); v != "" {
			return v
		}
	}
	return ""
}

func contactName(c *models.ContactBlock) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func truncate(s string) string {
	if len(s) <= maxHostnameLen {
		return s
	}
	return s[:truncatedLen] + "..."
}

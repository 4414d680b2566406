package models

// LookupRequest is the inbound lookup payload. Both fields may instead be
// supplied as query parameters; the body wins when present.
type LookupRequest struct {
	Domain string `json:"domain" example:"example.com"`
	Type   string `json:"type" example:"domain" enums:"domain,contact"`
}

// LookupResponse wraps a successful lookup. Data holds a DomainInfo or a
// ContactInfo depending on the requested type.
type LookupResponse struct {
	Domain string `json:"domain"`
	Type   string `json:"type"`
	Data   any    `json:"data"`
}

// DomainInfo is the flattened registration view of a WHOIS record. All
// fields are always present; a value the provider never supplied is the
// empty string. EstimatedDomainAge passes through the provider scalar
// untouched and may be null.
type DomainInfo struct {
	DomainName         string `json:"domainName"`
	Registrar          string `json:"registrar"`
	RegistrationDate   string `json:"registrationDate"`
	ExpirationDate     string `json:"expirationDate"`
	EstimatedDomainAge Scalar `json:"estimatedDomainAge" swaggertype:"integer"`
	Hostnames          string `json:"hostnames"`
}

// ContactInfo is the flattened contact view of a WHOIS record.
type ContactInfo struct {
	RegistrantName            string `json:"registrantName"`
	TechnicalContactName      string `json:"technicalContactName"`
	AdministrativeContactName string `json:"administrativeContactName"`
	ContactEmail              string `json:"contactEmail"`
}

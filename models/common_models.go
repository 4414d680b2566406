// models/common_models.go
package models

// ErrorResponse is the standard error body. Status and Details are only set
// on upstream failures (502 carries the upstream status plus a body excerpt,
// 500 carries a short diagnostic).
type ErrorResponse struct {
	Error   string `json:"error"`             // User-facing error message
	Status  int    `json:"status,omitempty"`  // Upstream HTTP status, when relevant
	Details string `json:"details,omitempty"` // More detailed information, if available
}

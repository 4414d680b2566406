package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tlv300/whois-lookup/config"
	"github.com/tlv300/whois-lookup/db"
	"github.com/tlv300/whois-lookup/models"
	"github.com/tlv300/whois-lookup/pkg/whois"
)

// upstreamExcerptLimit caps how much of an upstream error body is echoed back.
const upstreamExcerptLimit = 300

// WhoisHandlers orchestrates one lookup: validate, call upstream, classify
// the outcome, normalize, record the attempt, respond.
type WhoisHandlers struct {
	logger *slog.Logger
	client *whois.Client
	store  db.LookupStore
	cfg    config.WhoisConfig
}

// NewWhoisHandlers constructs a WhoisHandlers instance.
func NewWhoisHandlers(logger *slog.Logger, client *whois.Client, store db.LookupStore, cfg config.WhoisConfig) *WhoisHandlers {
	return &WhoisHandlers{
		logger: logger,
		client: client,
		store:  store,
		cfg:    cfg,
	}
}

// Lookup godoc
// @Summary      Perform a WHOIS lookup for a domain
// @Description  Fetches the WHOIS record for a domain from the upstream provider and returns either the registration view (type=domain) or the contact view (type=contact). Fields may also be passed as query parameters.
// @Tags         WHOIS
// @Accept       json
// @Produce      json
// @Param        request body models.LookupRequest false "Lookup request"
// @Param        domain query string false "Domain to look up (fallback for body field)"
// @Param        type query string false "Information type: domain or contact (fallback for body field)"
// @Success      200 {object} models.LookupResponse "Normalized lookup result"
// @Failure      400 {object} models.ErrorResponse "Missing domain or invalid type"
// @Failure      404 {object} models.ErrorResponse "No WHOIS record for the domain"
// @Failure      500 {object} models.ErrorResponse "Server misconfiguration or unexpected failure"
// @Failure      502 {object} models.ErrorResponse "Upstream provider error"
// @Failure      504 {object} models.ErrorResponse "Upstream provider timeout"
// @Router       /whois [post]
func (h *WhoisHandlers) Lookup(c *gin.Context) {
	var payload models.LookupRequest
	// The body is optional; query parameters fill in whatever it lacks.
	_ = c.ShouldBindJSON(&payload)

	domain := payload.Domain
	if domain == "" {
		domain = c.Query("domain")
	}
	domain = strings.TrimSpace(domain)

	infoType := payload.Type
	if infoType == "" {
		infoType = c.Query("type")
	}
	infoType = strings.ToLower(strings.TrimSpace(infoType))

	// Validation failures return before any upstream call or log write.
	if domain == "" {
		h.logger.Warn("whois lookup request missing domain parameter")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing 'domain'"})
		return
	}
	if infoType != "domain" && infoType != "contact" {
		h.logger.Warn("whois lookup request with invalid type", "type", infoType)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid 'type'. Use 'domain' or 'contact'"})
		return
	}

	if h.cfg.APIKey == "" {
		h.logger.Error("WHOIS_API_KEY not configured")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Server not configured with WHOIS_API_KEY"})
		return
	}

	h.logger.Info("processing whois lookup", "domain", domain, "type", infoType)

	// The upstream deadline is fixed and independent of the inbound request:
	// a client hanging up does not cancel an in-flight provider call.
	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.Timeout)
	defer cancel()

	result, err := h.client.Fetch(ctx, h.cfg.APIKey, domain)
	if err != nil {
		if errors.Is(err, whois.ErrTimeout) {
			h.logger.Error("whois lookup timed out", "domain", domain)
			// Only query-string inputs are recovered on this path; a lookup
			// submitted via JSON body is logged with empty fields.
			h.logLookup(c, db.LookupAttempt{
				Domain:     c.Query("domain"),
				InfoType:   c.Query("type"),
				HTTPStatus: http.StatusGatewayTimeout,
			})
			c.JSON(http.StatusGatewayTimeout, models.ErrorResponse{Error: "Upstream whois request timed out"})
			return
		}
		h.internalError(c, err)
		return
	}

	if result.StatusCode != http.StatusOK {
		h.logger.Error("upstream whois service error",
			"status", result.StatusCode, "body", excerpt(result.Body, 100))
		h.logLookup(c, db.LookupAttempt{
			Domain:     domain,
			InfoType:   infoType,
			HTTPStatus: result.StatusCode,
		})
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "Upstream whois service error",
			Status:  result.StatusCode,
			Details: excerpt(result.Body, upstreamExcerptLimit),
		})
		return
	}

	var parsed models.WhoisResponse
	if err := json.Unmarshal(result.Body, &parsed); err != nil {
		h.internalError(c, err)
		return
	}

	record := parsed.WhoisRecord
	if record.Empty() {
		h.logger.Warn("no whois record found", "domain", domain)
		// The 404 status here is synthesized; the upstream answered 200.
		h.logLookup(c, db.LookupAttempt{
			Domain:     domain,
			InfoType:   infoType,
			HTTPStatus: http.StatusNotFound,
		})
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Whois record not found for domain"})
		return
	}

	var data any
	var registrarForLog string
	if infoType == "domain" {
		info := whois.ExtractDomainInfo(record)
		data = info
		registrarForLog = info.Registrar
	} else {
		data = whois.ExtractContactInfo(record)
		if record.Registrar != nil {
			registrarForLog = record.Registrar.Name
		}
	}

	h.logLookup(c, db.LookupAttempt{
		Domain:     domain,
		InfoType:   infoType,
		HTTPStatus: http.StatusOK,
		Success:    true,
		Registrar:  registrarForLog,
	})
	h.logger.Info("successful whois lookup", "domain", domain, "type", infoType)

	c.JSON(http.StatusOK, models.LookupResponse{
		Domain: domain,
		Type:   infoType,
		Data:   data,
	})
}

// internalError handles everything unclassified. The original inputs are not
// carried into the log row on this path.
func (h *WhoisHandlers) internalError(c *gin.Context, err error) {
	h.logger.Error("unexpected error in whois lookup", "error", err)
	h.logLookup(c, db.LookupAttempt{HTTPStatus: http.StatusInternalServerError})
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "Unexpected server error",
		Details: err.Error(),
	})
}

// logLookup records the attempt best-effort; a sink failure is visible to
// operators only and never changes the response.
func (h *WhoisHandlers) logLookup(c *gin.Context, attempt db.LookupAttempt) {
	if err := h.store.RecordLookup(c.Request.Context(), attempt); err != nil {
		h.logger.Error("failed to record lookup", "error", err, "domain", attempt.Domain)
	}
}

func excerpt(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit])
}

package whois

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// DefaultAPIURL is the WhoisXML WHOIS service endpoint.
const DefaultAPIURL = "https://www.whoisxmlapi.com/whoisserver/WhoisService"

// ErrTimeout marks an upstream call that exceeded its deadline.
var ErrTimeout = errors.New("upstream whois request timed out")

// Result is the raw upstream outcome before any classification: the status
// code and the unparsed body.
type Result struct {
	StatusCode int
	Body       []byte
}

// Client fetches raw WHOIS records from the upstream provider. One GET per
// lookup, no retries; the caller bounds the call with a context deadline.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// NewClient builds a Client against the given endpoint (DefaultAPIURL when
// empty), with a shared transport tuned for repeated calls to one host.
func NewClient(apiURL string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   15 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &Client{
		httpClient: &http.Client{Transport: transport},
		apiURL:     apiURL,
	}
}

// Fetch performs the single upstream GET for a domain. A deadline overrun is
// reported as ErrTimeout; any other transport failure is returned as-is. A
// non-200 upstream status is not an error here; classification is the
// caller's job.
func (c *Client) Fetch(ctx context.Context, apiKey, domain string) (*Result, error) {
	params := url.Values{}
	params.Set("apiKey", apiKey)
	params.Set("domainName", domain)
	params.Set("outputFormat", "JSON")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create whois request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("whois request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("failed to read whois response: %w", err)
	}

	return &Result{StatusCode: resp.StatusCode, Body: body}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

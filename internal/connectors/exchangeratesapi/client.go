package exchangeratesapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.RateSource = (*Client)(nil)

// Config holds the client settings.
type Config struct {
	// BaseURL is the API root, e.g. https://api.exchangeratesapi.io.
	BaseURL string

	// AccessKey is sent as the access_key query parameter when set.
	// It never appears in URLs reported through errors.
	AccessKey string

	// RequestsPerSecond throttles outbound requests. Zero disables throttling.
	RequestsPerSecond float64
}

// Client fetches historical rates over HTTP.
type Client struct {
	http        *http.Client
	baseURL     string
	accessKey   string
	rateLimiter *RateLimiter
}

// NewClient creates a client. A nil httpClient uses a client with no
// timeout of its own; requests end with the context or the transport.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base_url %q", domain.ErrInvalidInput, cfg.BaseURL)
	}

	return &Client{
		http:        httpClient,
		baseURL:     base,
		accessKey:   cfg.AccessKey,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// Fetch retrieves the rates for date against base.
func (c *Client) Fetch(ctx context.Context, base string, date time.Time) (*domain.RatePayload, error) {
	reqURL, displayURL := c.buildURL(base, date)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, transportError(displayURL, fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, transportError(displayURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(displayURL, stripURLError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, transportError(displayURL, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp, displayURL, body)
	}

	var payload domain.RatePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, decodeError(resp, displayURL, body, err)
	}
	return &payload, nil
}

// buildURL returns the request URL and a copy safe to log.
func (c *Client) buildURL(base string, date time.Time) (string, string) {
	query := url.Values{}
	query.Set("base", base)
	display := fmt.Sprintf("%s/%s?%s", c.baseURL, domain.FormatDate(date), query.Encode())

	if c.accessKey == "" {
		return display, display
	}
	query.Set("access_key", c.accessKey)
	return fmt.Sprintf("%s/%s?%s", c.baseURL, domain.FormatDate(date), query.Encode()), display
}

// stripURLError drops the *url.Error wrapper, whose message repeats the
// full request URL including the access key.
func stripURLError(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

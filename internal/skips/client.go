package skips

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher is implemented by *Client and by test doubles.
type Fetcher interface {
	FetchSkips(ctx context.Context, loc Location) ([]Skip, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the skip hire HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultBaseURL   = "https://app.wewantwaste.co.uk"
	defaultUserAgent = "skipper/0.1"
	requestTimeout   = 10 * time.Second
	byLocationPath   = "/api/skips/by-location"
)

// Option adjusts a Client at construction time.
type Option func(*Client)

// WithTimeout bounds every request. Zero or negative leaves the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchSkips retrieves the skips offered for loc, in payload order.
func (c *Client) FetchSkips(ctx context.Context, loc Location) ([]Skip, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("postcode", strings.TrimSpace(loc.Postcode))
	values.Set("area", strings.TrimSpace(loc.Area))
	rel := &url.URL{Path: byLocationPath, RawQuery: values.Encode()}

	var payload []Skip
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	if err := validate(payload); err != nil {
		return nil, &ParseError{Err: err}
	}
	return payload, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{URL: rel.String(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{
			URL:        rel.String(),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", resp.Status),
		}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// validate enforces the record invariants the picker relies on.
func validate(records []Skip) error {
	if records == nil {
		return fmt.Errorf("payload is not a skip list")
	}
	seen := make(map[int64]struct{}, len(records))
	for i, r := range records {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("record %d: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.Size <= 0 {
			return fmt.Errorf("record %d: size %d is not positive", i, r.Size)
		}
		if r.HirePeriodDays <= 0 {
			return fmt.Errorf("record %d: hire period %d is not positive", i, r.HirePeriodDays)
		}
		if r.PriceBeforeVAT.IsNegative() {
			return fmt.Errorf("record %d: negative price before vat", i)
		}
		if r.VAT.IsNegative() {
			return fmt.Errorf("record %d: negative vat", i)
		}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

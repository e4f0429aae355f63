package skips

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const samplePayload = `[
  {"id": 17933, "size": 4, "hire_period_days": 14, "transport_cost": null, "per_tonne_cost": null,
   "price_before_vat": 278, "vat": 20, "postcode": "NR32", "area": "", "forbidden": false,
   "created_at": "2025-04-03T13:51:46.897146", "updated_at": "2025-04-07T13:16:52.813",
   "allowed_on_road": true, "allows_heavy_waste": true},
  {"id": 17934, "size": 6, "hire_period_days": 14, "transport_cost": null, "per_tonne_cost": null,
   "price_before_vat": 305.5, "vat": 61.1, "postcode": "NR32", "area": "", "forbidden": false,
   "created_at": "2025-04-03T13:51:46.897146", "updated_at": "2025-04-07T13:16:52.813",
   "allowed_on_road": false, "allows_heavy_waste": true}
]`

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "app.wewantwaste.co.uk" {
		t.Fatalf("default base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchSkipsEncodesLocationAndDecodes(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotPath, gotUserAgent, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	records, err := c.FetchSkips(ctx, Location{Postcode: " NR32 ", Area: "Lowestoft"})
	if err != nil {
		t.Fatalf("FetchSkips returned error: %v", err)
	}
	if gotPath != "/api/skips/by-location" {
		t.Fatalf("path = %q, want /api/skips/by-location", gotPath)
	}
	if gotQuery.Get("postcode") != "NR32" || gotQuery.Get("area") != "Lowestoft" {
		t.Fatalf("query = %v, want postcode=NR32 area=Lowestoft", gotQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "skipper/") {
		t.Fatalf("User-Agent = %q, want skipper/*", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}

	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].ID != 17933 || records[1].ID != 17934 {
		t.Fatalf("records out of payload order: %d, %d", records[0].ID, records[1].ID)
	}
	if got := records[1].FormatTotal(); got != "366.60" {
		t.Fatalf("FormatTotal = %q, want 366.60", got)
	}
	if records[0].TransportCost.Valid {
		t.Fatalf("TransportCost should decode null as invalid")
	}
	if records[1].AllowedOnRoad {
		t.Fatalf("AllowedOnRoad = true, want false")
	}
}

func TestClient_FetchSkipsIssuesSingleRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, _ = c.FetchSkips(context.Background(), Location{Postcode: "NR32", Area: "Lowestoft"})
	if got := hits.Load(); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
}

func TestClient_HTTPErrorIsFetchError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchSkips(context.Background(), Location{})
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("FetchSkips error = %v, want *FetchError", err)
	}
	if fetchErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500", fetchErr.StatusCode)
	}
	if !errors.Is(err, ErrDataFetch) {
		t.Fatalf("errors.Is(err, ErrDataFetch) = false")
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("error = %q, want it to mention status 500", err.Error())
	}
}

func TestClient_TransportErrorIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchSkips(context.Background(), Location{})
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("FetchSkips error = %v, want *FetchError", err)
	}
	if fetchErr.StatusCode != 0 {
		t.Fatalf("StatusCode = %d, want 0 for transport failure", fetchErr.StatusCode)
	}
}

func TestClient_MalformedPayloadIsParseError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{not-json`},
		{"object instead of array", `{"id": 1}`},
		{"null body", `null`},
		{"duplicate ids", `[{"id":1,"size":4,"hire_period_days":7,"price_before_vat":1,"vat":0},
			{"id":1,"size":6,"hire_period_days":7,"price_before_vat":1,"vat":0}]`},
		{"zero size", `[{"id":1,"size":0,"hire_period_days":7,"price_before_vat":1,"vat":0}]`},
		{"zero hire period", `[{"id":1,"size":4,"hire_period_days":0,"price_before_vat":1,"vat":0}]`},
		{"negative price", `[{"id":1,"size":4,"hire_period_days":7,"price_before_vat":-1,"vat":0}]`},
		{"negative vat", `[{"id":1,"size":4,"hire_period_days":7,"price_before_vat":1,"vat":-0.5}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := NewClient(server.URL)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.FetchSkips(context.Background(), Location{})
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("FetchSkips error = %v, want *ParseError", err)
			}
			if !errors.Is(err, ErrDataFetch) {
				t.Fatalf("errors.Is(err, ErrDataFetch) = false")
			}
		})
	}
}

func TestClient_EmptyListIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	records, err := c.FetchSkips(context.Background(), Location{})
	if err != nil {
		t.Fatalf("FetchSkips returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %d, want 0", len(records))
	}
}

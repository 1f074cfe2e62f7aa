// Package geocode resolves free-text place names to coordinates using an
// OpenStreetMap Nominatim compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/eld-trips/internal/domain"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Client looks up coordinates one name at a time.
// Every call is independent: no retries, no caching, no rate limiting.
// The client is safe for concurrent use.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	log       *slog.Logger
}

// NewClient constructs a Client. timeout bounds each individual lookup,
// including reading the response body.
func NewClient(baseURL, userAgent string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		log:       log,
	}
}

// searchResult is one element of the Nominatim /search JSON array.
// Nominatim encodes coordinates as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// statusError reports a non-2xx response.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// errNoResults is returned by search when the service found nothing.
var errNoResults = errors.New("no results")

// Lookup returns the first match for name. ok is false when the name is blank
// or the lookup failed for any reason; failures are logged, never returned.
func (c *Client) Lookup(ctx context.Context, name string) (domain.LatLng, bool) {
	q := strings.TrimSpace(name)
	if q == "" {
		return domain.LatLng{}, false
	}

	start := time.Now()
	coord, err := c.search(ctx, q)
	if err != nil {
		c.log.WarnContext(ctx, "geocoding failed",
			"query", q,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return domain.LatLng{}, false
	}

	c.log.DebugContext(ctx, "geocoded",
		"query", q,
		"lat", coord.Lat,
		"lng", coord.Lng,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return coord, true
}

// search performs the single HTTP call behind Lookup.
func (c *Client) search(ctx context.Context, q string) (domain.LatLng, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("create request: %w", err)
	}

	params := req.URL.Query()
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", "1")
	req.URL.RawQuery = params.Encode()

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.LatLng{}, &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.LatLng{}, fmt.Errorf("decode response: %w", err)
	}
	if len(results) == 0 {
		return domain.LatLng{}, errNoResults
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("parse lat %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("parse lon %q: %w", results[0].Lon, err)
	}

	return domain.LatLng{Lat: lat, Lng: lng}, nil
}

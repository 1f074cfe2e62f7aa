package geocode_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-trips/internal/geocode"
)

// newTestClient points a Client at srv with a short timeout and a logger that
// writes into buf so tests can assert failures were logged.
func newTestClient(t *testing.T, srv *httptest.Server, timeout time.Duration) (*geocode.Client, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return geocode.NewClient(srv.URL, "eld-trips-test/1.0", timeout, logger), &buf
}

func TestLookup_Success(t *testing.T) {
	var gotPath, gotQ, gotFormat, gotLimit, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQ = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		gotLimit = r.URL.Query().Get("limit")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"lat":"41.8781","lon":"-87.6298","display_name":"Chicago"}]`)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv, time.Second)

	got, ok := c.Lookup(context.Background(), "  Chicago, IL ")

	require.True(t, ok)
	assert.InDelta(t, 41.8781, got.Lat, 1e-9)
	assert.InDelta(t, -87.6298, got.Lng, 1e-9)
	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "Chicago, IL", gotQ, "query should be trimmed")
	assert.Equal(t, "json", gotFormat)
	assert.Equal(t, "1", gotLimit)
	assert.Equal(t, "eld-trips-test/1.0", gotUA)
}

func TestLookup_BlankNameSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv, time.Second)

	_, ok := c.Lookup(context.Background(), "   ")

	assert.False(t, ok)
	assert.Zero(t, calls.Load())
}

// TestLookup_Failures verifies that every failure mode is absorbed: the
// caller only ever sees ok=false, and a warning is logged.
func TestLookup_Failures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"not":"an array"`)
			},
		},
		{
			name: "empty result set",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `[]`)
			},
		},
		{
			name: "unparsable latitude",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `[{"lat":"north","lon":"-87.6"}]`)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c, logs := newTestClient(t, srv, time.Second)

			got, ok := c.Lookup(context.Background(), "Nowhere")

			assert.False(t, ok)
			assert.Zero(t, got.Lat)
			assert.Zero(t, got.Lng)
			assert.Contains(t, logs.String(), "geocoding failed")
			assert.Contains(t, logs.String(), "Nowhere")
		})
	}
}

func TestLookup_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, _ := newTestClient(t, srv, 50*time.Millisecond)

	start := time.Now()
	_, ok := c.Lookup(context.Background(), "Slowville")

	assert.False(t, ok)
	assert.Less(t, time.Since(start), 2*time.Second, "lookup should give up after the per-call timeout")
}

func TestLookup_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens on url any more

	c := geocode.NewClient(url, "", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, ok := c.Lookup(context.Background(), "Chicago")

	assert.False(t, ok)
}

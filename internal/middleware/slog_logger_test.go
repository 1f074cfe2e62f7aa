package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-trips/internal/middleware"
)

// serveLogged runs one request through NewSlogLogger and returns the decoded
// log line.
func serveLogged(t *testing.T, h http.HandlerFunc, target string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	// Stand in for chimiddleware.RequestID.
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id"))

	middleware.NewSlogLogger(logger)(h).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSlogLogger_logsRequestFields(t *testing.T) {
	entry := serveLogged(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}, "/trips/?search=denver")

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/trips/", entry["path"])
	assert.Equal(t, "search=denver", entry["query"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.EqualValues(t, 15, entry["bytes"])
	assert.Equal(t, "test-req-id", entry["request_id"])
	assert.NotNil(t, entry["duration_ms"])
}

func TestSlogLogger_levelFollowsStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusNotFound:            "WARN",
		http.StatusBadRequest:          "WARN",
		http.StatusInternalServerError: "ERROR",
		http.StatusCreated:             "INFO",
	}
	for status, level := range cases {
		entry := serveLogged(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}, "/trips/1/")

		assert.Equal(t, level, entry["level"], "status %d", status)
		assert.EqualValues(t, status, entry["status"])
	}
}

func TestSlogLogger_implicit200(t *testing.T) {
	entry := serveLogged(t, func(http.ResponseWriter, *http.Request) {}, "/healthz")

	assert.EqualValues(t, http.StatusOK, entry["status"])
}

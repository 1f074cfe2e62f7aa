package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-trips/internal/handler"
	"github.com/pkordes/eld-trips/internal/handler/gen"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveHealth(t *testing.T, db handler.Pinger) (*httptest.ResponseRecorder, gen.HealthResponse) {
	t.Helper()
	srv := handler.NewServer(nil, nil, db, discardLogger())
	h := gen.Handler(gen.NewStrictHandler(srv, nil))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body gen.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec, body
}

func TestGetHealth_DatabaseUp(t *testing.T) {
	rec, body := serveHealth(t, pingerFunc(func(context.Context) error { return nil }))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body.Status)
}

func TestGetHealth_DatabaseDown(t *testing.T) {
	rec, body := serveHealth(t, pingerFunc(func(context.Context) error { return errors.New("connection refused") }))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "unavailable", body.Status)
}

func TestGetHealth_NoDatabase(t *testing.T) {
	rec, body := serveHealth(t, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body.Status)
}

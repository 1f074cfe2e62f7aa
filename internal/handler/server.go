// Package handler implements the HTTP handlers for the ELD Trips API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into files by resource (health.go, trip.go, export.go) but
// share the same Server struct and its dependencies.
package handler

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config oapi-codegen.yaml ../../spec/openapi.yaml

import (
	"context"
	"log/slog"

	"github.com/pkordes/eld-trips/internal/domain"
)

// TripServicer defines the trip operations the handlers depend on.
// Declared here, in the consumer, so tests can inject a mock.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip, w domain.Waypoints) (domain.Trip, error)
	GetByID(ctx context.Context, id int64) (domain.Trip, error)
	List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	Update(ctx context.Context, id int64, patch domain.TripPatch) (domain.Trip, error)
}

// LogExporter produces the flat duty-log rows for GET /trips/{id}/logs/.
type LogExporter interface {
	ExportLogs(ctx context.Context, tripID int64) ([]domain.LogRow, error)
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server implements gen.StrictServerInterface for all API endpoints.
// Wire it in main.go via gen.NewStrictHandlerWithOptions(server, nil, StrictOptions(log)).
type Server struct {
	trips  TripServicer
	export LogExporter
	db     Pinger
	log    *slog.Logger
}

// NewServer constructs the Server with all its dependencies. A nil db skips
// the database check in GET /healthz.
func NewServer(trips TripServicer, export LogExporter, db Pinger, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, export: export, db: db, log: log}
}

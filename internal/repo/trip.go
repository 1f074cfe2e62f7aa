// Package repo contains all database access logic for the ELD Trips API.
// It holds SQL and type mapping only; validation and generation live in service.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/eld-trips/internal/domain"
)

// db is the subset of *pgxpool.Pool and pgx.Tx the repo uses. Integration
// tests pass a pgx.Tx that is rolled back when the test ends.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
type TripRepo interface {
	// Create inserts the plain attributes of a new trip and returns the
	// persisted record (with DB-generated id and created_at populated).
	// The generated blobs start out empty.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// List returns the trips matching filter ordered by created_at descending.
	List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)

	// Update overwrites the plain attributes of an existing trip. created_at
	// and the generated blobs are left as they are.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// SaveRoute replaces route_info and map_data in a single statement.
	SaveRoute(ctx context.Context, id int64, route domain.RouteInfo, mapData domain.MapData) (domain.Trip, error)

	// SaveDailyLogs replaces the whole daily_logs list.
	SaveDailyLogs(ctx context.Context, id int64, logs []domain.DailyLog) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns is the column list every query returns, in scanTrip order.
const tripColumns = `id, current_location, pickup_location, dropoff_location,
	current_cycle_hours, start_time, created_at, route_info, daily_logs, map_data`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (current_location, pickup_location, dropoff_location,
		                   current_cycle_hours, start_time)
		VALUES (@current_location, @pickup_location, @dropoff_location,
		        @current_cycle_hours, @start_time)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"current_location":    trip.CurrentLocation,
		"pickup_location":     trip.PickupLocation,
		"dropoff_location":    trip.DropoffLocation,
		"current_cycle_hours": trip.CurrentCycleHours,
		"start_time":          trip.StartTime, // nil becomes NULL
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns matching trips, most recently created first. Trips created in
// the same instant fall back to descending id so the order is stable.
func (r *pgTripRepo) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE (@search = ''
		       OR current_location ILIKE '%' || @search || '%'
		       OR pickup_location  ILIKE '%' || @search || '%'
		       OR dropoff_location ILIKE '%' || @search || '%')
		  AND (@created_after::timestamptz IS NULL OR created_at > @created_after::timestamptz)
		ORDER BY created_at DESC, id DESC`

	args := pgx.NamedArgs{
		"search":        escapeLike(filter.Search),
		"created_after": filter.CreatedAfter,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, nil
}

// Update overwrites the plain attributes of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET current_location    = @current_location,
		    pickup_location     = @pickup_location,
		    dropoff_location    = @dropoff_location,
		    current_cycle_hours = @current_cycle_hours,
		    start_time          = @start_time
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":                  trip.ID,
		"current_location":    trip.CurrentLocation,
		"pickup_location":     trip.PickupLocation,
		"dropoff_location":    trip.DropoffLocation,
		"current_cycle_hours": trip.CurrentCycleHours,
		"start_time":          trip.StartTime,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// SaveRoute writes the generated route_info and map_data documents.
// pgx encodes the structs as JSON for the jsonb parameters.
func (r *pgTripRepo) SaveRoute(ctx context.Context, id int64, route domain.RouteInfo, mapData domain.MapData) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET route_info = @route_info,
		    map_data   = @map_data
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":         id,
		"route_info": route,
		"map_data":   mapData,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.SaveRoute: %w", err)
	}
	return result, nil
}

// SaveDailyLogs replaces daily_logs wholesale.
func (r *pgTripRepo) SaveDailyLogs(ctx context.Context, id int64, logs []domain.DailyLog) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET daily_logs = @daily_logs
		WHERE id = @id
		RETURNING ` + tripColumns

	if logs == nil {
		logs = []domain.DailyLog{} // a nil slice would be sent as SQL NULL
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "daily_logs": logs}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.SaveDailyLogs: %w", err)
	}
	return result, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// The jsonb columns are decoded straight into their domain structs.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		startTime pgtype.Timestamptz
	)

	err := s.Scan(
		&t.ID, &t.CurrentLocation, &t.PickupLocation, &t.DropoffLocation,
		&t.CurrentCycleHours, &startTime, &t.CreatedAt,
		&t.RouteInfo, &t.DailyLogs, &t.MapData,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	if startTime.Valid {
		st := startTime.Time
		t.StartTime = &st
	}

	return t, nil
}

// escapeLike neutralises LIKE wildcards so user search text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

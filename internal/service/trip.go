// Package service contains the business logic for the ELD Trips API.
// Services validate inputs, generate route and duty-log data, and orchestrate
// repo calls. SQL stays in the repo package; services only see its interfaces.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/eld-trips/internal/domain"
	"github.com/pkordes/eld-trips/internal/repo"
)

// maxLocationLen is the column width of the location fields.
const maxLocationLen = 255

// Field messages returned to API clients.
const (
	msgRequired  = "This field is required."
	msgBlank     = "This field may not be blank."
	msgTooLong   = "Ensure this field has no more than 255 characters."
	msgNegative  = "Ensure this value is greater than or equal to 0."
	msgNotFinite = "A valid number is required."
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo  repo.TripRepo
	route *RouteBuilder
	now   func() time.Time
	log   *slog.Logger
}

// NewTripService constructs a TripService backed by the provided TripRepo
// and Geocoder.
func NewTripService(r repo.TripRepo, geo Geocoder, log *slog.Logger) *TripService {
	return &TripService{
		repo:  r,
		route: NewRouteBuilder(geo),
		now:   time.Now,
		log:   log,
	}
}

// WithClock replaces the time source used for daily-log dates.
func (s *TripService) WithClock(now func() time.Time) *TripService {
	s.now = now
	return s
}

// Create validates and persists a new trip, then generates its route from
// the pickup, dropoff and waypoints, and a single day of duty logs.
func (s *TripService) Create(ctx context.Context, trip domain.Trip, w domain.Waypoints) (domain.Trip, error) {
	trip.CurrentLocation = strings.TrimSpace(trip.CurrentLocation)
	trip.PickupLocation = strings.TrimSpace(trip.PickupLocation)
	trip.DropoffLocation = strings.TrimSpace(trip.DropoffLocation)

	verr := &domain.ValidationError{}
	validateTrip(verr, trip)
	validateWaypoints(verr, w)
	if !verr.Empty() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", verr)
	}

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	created, err = s.GenerateRoute(ctx, created, w)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	created, err = s.GenerateDailyLogs(ctx, created, DefaultStartHour, 1)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	s.log.InfoContext(ctx, "trip created",
		"trip_id", created.ID,
		"stops", len(w.Stops),
		"rests", len(w.Rests),
		"points", len(created.RouteInfo.Coordinates),
	)
	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return t, nil
}

// List returns trips matching filter, newest first. Never returns nil on
// success, so an empty result encodes as [].
func (s *TripService) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// Update applies a partial update to an existing trip.
//
// The route is regenerated only when the patch carries stops or rests.
// Changing pickup or dropoff alone leaves the stored route as it was, and
// daily logs are never touched here.
func (s *TripService) Update(ctx context.Context, id int64, patch domain.TripPatch) (domain.Trip, error) {
	verr := &domain.ValidationError{}
	validatePatch(verr, patch)
	if patch.HasWaypoints() {
		validateWaypoints(verr, patch.Waypoints())
	}
	if !verr.Empty() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", verr)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	updated, err := s.repo.Update(ctx, patch.Apply(existing))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if patch.HasWaypoints() {
		updated, err = s.GenerateRoute(ctx, updated, patch.Waypoints())
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
		}
	}

	return updated, nil
}

// GenerateRoute geocodes the trip's pickup and dropoff plus the waypoints and
// replaces its route_info and map_data. Geocoding failures never fail the
// call; they only shrink the route.
func (s *TripService) GenerateRoute(ctx context.Context, trip domain.Trip, w domain.Waypoints) (domain.Trip, error) {
	route, mapData := s.route.Build(ctx, trip.PickupLocation, trip.DropoffLocation, w)

	saved, err := s.repo.SaveRoute(ctx, trip.ID, route, mapData)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GenerateRoute: %w", err)
	}
	return saved, nil
}

// GenerateDailyLogs replaces the trip's daily logs with totalDays fixed-shape
// days starting today.
func (s *TripService) GenerateDailyLogs(ctx context.Context, trip domain.Trip, startHour, totalDays int) (domain.Trip, error) {
	logs := BuildDailyLogs(startHour, totalDays, s.now())

	saved, err := s.repo.SaveDailyLogs(ctx, trip.ID, logs)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GenerateDailyLogs: %w", err)
	}
	return saved, nil
}

// ---- validation ------------------------------------------------------------

func validateTrip(verr *domain.ValidationError, t domain.Trip) {
	requireLocation(verr, "current_location", t.CurrentLocation)
	requireLocation(verr, "pickup_location", t.PickupLocation)
	requireLocation(verr, "dropoff_location", t.DropoffLocation)
	checkCycleHours(verr, t.CurrentCycleHours)
}

func validatePatch(verr *domain.ValidationError, p domain.TripPatch) {
	optionalLocation(verr, "current_location", p.CurrentLocation)
	optionalLocation(verr, "pickup_location", p.PickupLocation)
	optionalLocation(verr, "dropoff_location", p.DropoffLocation)
	if p.CurrentCycleHours != nil {
		checkCycleHours(verr, *p.CurrentCycleHours)
	}
}

func validateWaypoints(verr *domain.ValidationError, w domain.Waypoints) {
	checkNames(verr, "stops", w.Stops)
	checkNames(verr, "rests", w.Rests)
}

// requireLocation expects an already-trimmed value.
func requireLocation(verr *domain.ValidationError, field, v string) {
	switch {
	case v == "":
		verr.Add(field, msgRequired)
	case len([]rune(v)) > maxLocationLen:
		verr.Add(field, msgTooLong)
	}
}

func optionalLocation(verr *domain.ValidationError, field string, v *string) {
	if v == nil {
		return
	}
	trimmed := strings.TrimSpace(*v)
	switch {
	case trimmed == "":
		verr.Add(field, msgBlank)
	case len([]rune(trimmed)) > maxLocationLen:
		verr.Add(field, msgTooLong)
	}
}

func checkCycleHours(verr *domain.ValidationError, h float64) {
	switch {
	case math.IsNaN(h) || math.IsInf(h, 0):
		verr.Add("current_cycle_hours", msgNotFinite)
	case h < 0:
		verr.Add("current_cycle_hours", msgNegative)
	}
}

// checkNames rejects blank entries, keyed by position, e.g. "stops[1]".
func checkNames(verr *domain.ValidationError, field string, names []string) {
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			verr.Add(field+"["+strconv.Itoa(i)+"]", msgBlank)
		}
	}
}

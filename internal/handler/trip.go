package handler

import (
	"context"
	"errors"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/eld-trips/internal/domain"
	"github.com/pkordes/eld-trips/internal/handler/gen"
)

const tripNotFound = "Trip not found"

// CreateTrip handles POST /trips/.
func (s *Server) CreateTrip(ctx context.Context, req gen.CreateTripRequestObject) (gen.CreateTripResponseObject, error) {
	if req.Body == nil {
		return gen.CreateTrip400JSONResponse{BadRequestJSONResponse: gen.BadRequestJSONResponse(requestBody("Request body is required."))}, nil
	}

	trip, waypoints := requestToTrip(req.Body)

	created, err := s.trips.Create(ctx, trip, waypoints)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreateTrip400JSONResponse{BadRequestJSONResponse: validationBody(err)}, nil
		}
		return nil, err
	}

	return gen.CreateTrip201JSONResponse(tripToResponse(created)), nil
}

// ListTrips handles GET /trips/.
// Supports ?search= and ?created_after= filters; results are newest first.
func (s *Server) ListTrips(ctx context.Context, req gen.ListTripsRequestObject) (gen.ListTripsResponseObject, error) {
	filter := domain.NewTripFilter(req.Params.Search, req.Params.CreatedAfter)

	trips, err := s.trips.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make(gen.ListTrips200JSONResponse, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	return out, nil
}

// GetTrip handles GET /trips/{id}/.
func (s *Server) GetTrip(ctx context.Context, req gen.GetTripRequestObject) (gen.GetTripResponseObject, error) {
	trip, err := s.trips.GetByID(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetTrip404JSONResponse{NotFoundJSONResponse: notFoundBody(tripNotFound)}, nil
		}
		return nil, err
	}

	return gen.GetTrip200JSONResponse(tripToResponse(trip)), nil
}

// UpdateTrip handles PATCH /trips/{id}/.
func (s *Server) UpdateTrip(ctx context.Context, req gen.UpdateTripRequestObject) (gen.UpdateTripResponseObject, error) {
	if req.Body == nil {
		return gen.UpdateTrip400JSONResponse{BadRequestJSONResponse: gen.BadRequestJSONResponse(requestBody("Request body is required."))}, nil
	}

	updated, err := s.trips.Update(ctx, req.Id, requestToPatch(req.Body))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return gen.UpdateTrip404JSONResponse{NotFoundJSONResponse: notFoundBody(tripNotFound)}, nil
		case errors.Is(err, domain.ErrValidation):
			return gen.UpdateTrip400JSONResponse{BadRequestJSONResponse: validationBody(err)}, nil
		}
		return nil, err
	}

	return gen.UpdateTrip200JSONResponse(tripToResponse(updated)), nil
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip splits a create body into the trip attributes and the
// request-only waypoint lists. An omitted current_cycle_hours is 0.
func requestToTrip(body *gen.CreateTripRequest) (domain.Trip, domain.Waypoints) {
	t := domain.Trip{
		CurrentLocation: body.CurrentLocation,
		PickupLocation:  body.PickupLocation,
		DropoffLocation: body.DropoffLocation,
	}
	if body.CurrentCycleHours != nil {
		t.CurrentCycleHours = *body.CurrentCycleHours
	}
	if body.StartTime != nil {
		st := body.StartTime.UTC()
		t.StartTime = &st
	}

	w := domain.Waypoints{Stops: []string{}, Rests: []string{}}
	if body.Stops != nil {
		w.Stops = *body.Stops
	}
	if body.Rests != nil {
		w.Rests = *body.Rests
	}
	return t, w
}

// requestToPatch maps an update body onto a TripPatch. JSON null and an
// omitted key both decode to nil, so either leaves the field unchanged.
func requestToPatch(body *gen.UpdateTripRequest) domain.TripPatch {
	p := domain.TripPatch{
		CurrentLocation:   body.CurrentLocation,
		PickupLocation:    body.PickupLocation,
		DropoffLocation:   body.DropoffLocation,
		CurrentCycleHours: body.CurrentCycleHours,
		Stops:             body.Stops,
		Rests:             body.Rests,
	}
	if body.StartTime != nil {
		st := body.StartTime.UTC()
		p.StartTime = &st
	}
	return p
}

// tripToResponse converts a domain.Trip into the generated gen.Trip type.
// Nil lists are emitted as [] so clients never see null where a list is
// expected.
func tripToResponse(t domain.Trip) gen.Trip {
	resp := gen.Trip{
		Id:                t.ID,
		CurrentLocation:   t.CurrentLocation,
		PickupLocation:    t.PickupLocation,
		DropoffLocation:   t.DropoffLocation,
		CurrentCycleHours: t.CurrentCycleHours,
		CreatedAt:         t.CreatedAt,
		RouteInfo:         routeToResponse(t.RouteInfo),
		DailyLogs:         logsToResponse(t.DailyLogs),
		MapData:           mapDataToResponse(t.MapData),
	}
	if t.StartTime != nil {
		st := *t.StartTime
		resp.StartTime = &st
	}
	return resp
}

func routeToResponse(r domain.RouteInfo) gen.RouteInfo {
	out := gen.RouteInfo{
		Coordinates:   make([]gen.Coordinate, len(r.Coordinates)),
		Stops:         waypointsToResponse(r.Stops),
		Rests:         waypointsToResponse(r.Rests),
		DistanceMiles: r.DistanceMiles,
		DurationHours: r.DurationHours,
	}
	for i, c := range r.Coordinates {
		out.Coordinates[i] = gen.Coordinate{Lat: c.Lat, Lng: c.Lng}
	}
	return out
}

func waypointsToResponse(in []domain.WaypointDetail) []gen.WaypointDetail {
	out := make([]gen.WaypointDetail, len(in))
	for i, w := range in {
		out[i] = gen.WaypointDetail{Type: w.Type, MilesFromStart: w.MilesFromStart, DurationHours: w.DurationHours}
	}
	return out
}

func mapDataToResponse(m domain.MapData) gen.MapData {
	return gen.MapData{
		Pickup:  optionalPair(m.Pickup),
		Dropoff: optionalPair(m.Dropoff),
		Stops:   pairsToResponse(m.Stops),
		Rests:   pairsToResponse(m.Rests),
	}
}

func optionalPair(p *[2]float64) *[]float64 {
	if p == nil {
		return nil
	}
	s := []float64{p[0], p[1]}
	return &s
}

func pairsToResponse(in [][2]float64) []gen.LatLngPair {
	out := make([]gen.LatLngPair, len(in))
	for i, p := range in {
		out[i] = gen.LatLngPair{p[0], p[1]}
	}
	return out
}

func logsToResponse(in []domain.DailyLog) []gen.DailyLog {
	out := make([]gen.DailyLog, len(in))
	for i, day := range in {
		segs := make([]gen.DutySegment, len(day.Segments))
		for j, s := range day.Segments {
			segs[j] = gen.DutySegment{Type: s.Type, DurationHours: s.DurationHours, Start: s.Start}
		}
		out[i] = gen.DailyLog{
			Date:     mustParseDate(day.Date),
			Segments: segs,
			Totals: gen.DutyTotals{
				Driving: day.Totals.Driving,
				OnDuty:  day.Totals.OnDuty,
				OffDuty: day.Totals.OffDuty,
			},
		}
	}
	return out
}

// mustParseDate parses a "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; dates are always written by the service.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}

package service

import (
	"context"

	"github.com/pkordes/eld-trips/internal/domain"
)

// Geocoder resolves a place name to coordinates. ok is false when the name
// could not be resolved; implementations never return errors, so a failed
// lookup simply leaves the point out of the route.
type Geocoder interface {
	Lookup(ctx context.Context, name string) (coord domain.LatLng, ok bool)
}

// Placeholder values written into every waypoint descriptor. No routing
// engine is consulted, so distance and dwell time are fixed.
const (
	placeholderMilesFromStart = 0
	placeholderWaypointHours  = 1
)

// RouteBuilder turns location names into route and marker documents.
// It calls the geocoder sequentially, once per name.
type RouteBuilder struct {
	geo Geocoder
}

// NewRouteBuilder constructs a RouteBuilder backed by geo.
func NewRouteBuilder(geo Geocoder) *RouteBuilder {
	return &RouteBuilder{geo: geo}
}

// Build geocodes pickup, every stop, every rest, then dropoff, and assembles
// the route polyline and map markers from whatever resolved.
//
// Unresolved stops and rests are dropped without leaving a gap. An
// unresolved pickup or dropoff is nil in MapData and missing from
// RouteInfo.Coordinates.
func (b *RouteBuilder) Build(ctx context.Context, pickup, dropoff string, w domain.Waypoints) (domain.RouteInfo, domain.MapData) {
	pickupCoord, pickupOK := b.geo.Lookup(ctx, pickup)
	stops := b.resolveAll(ctx, w.Stops)
	rests := b.resolveAll(ctx, w.Rests)
	dropoffCoord, dropoffOK := b.geo.Lookup(ctx, dropoff)

	mapData := domain.MapData{
		Stops: pairs(stops),
		Rests: pairs(rests),
	}
	if pickupOK {
		p := pickupCoord.Pair()
		mapData.Pickup = &p
	}
	if dropoffOK {
		d := dropoffCoord.Pair()
		mapData.Dropoff = &d
	}

	path := make([]domain.Coordinate, 0, len(stops)+len(rests)+2)
	if pickupOK {
		path = append(path, toCoordinate(pickupCoord))
	}
	for _, c := range stops {
		path = append(path, toCoordinate(c))
	}
	for _, c := range rests {
		path = append(path, toCoordinate(c))
	}
	if dropoffOK {
		path = append(path, toCoordinate(dropoffCoord))
	}

	route := domain.RouteInfo{
		Coordinates:   path,
		Stops:         descriptors(domain.WaypointStop, len(stops)),
		Rests:         descriptors(domain.WaypointRest, len(rests)),
		DistanceMiles: 0,
		DurationHours: 0,
	}

	return route, mapData
}

// resolveAll geocodes each name once, keeping only the hits, in input order.
func (b *RouteBuilder) resolveAll(ctx context.Context, names []string) []domain.LatLng {
	out := make([]domain.LatLng, 0, len(names))
	for _, name := range names {
		if c, ok := b.geo.Lookup(ctx, name); ok {
			out = append(out, c)
		}
	}
	return out
}

func pairs(coords []domain.LatLng) [][2]float64 {
	out := make([][2]float64, 0, len(coords))
	for _, c := range coords {
		out = append(out, c.Pair())
	}
	return out
}

func descriptors(kind string, n int) []domain.WaypointDetail {
	out := make([]domain.WaypointDetail, n)
	for i := range out {
		out[i] = domain.WaypointDetail{
			Type:           kind,
			MilesFromStart: placeholderMilesFromStart,
			DurationHours:  placeholderWaypointHours,
		}
	}
	return out
}

func toCoordinate(c domain.LatLng) domain.Coordinate {
	return domain.Coordinate{Lat: c.Lat, Lng: c.Lng}
}

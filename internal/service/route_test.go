package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-trips/internal/domain"
	"github.com/pkordes/eld-trips/internal/service"
)

func TestRouteBuilder_Build_Order(t *testing.T) {
	geo := knownGeocoder()
	b := service.NewRouteBuilder(geo)

	route, md := b.Build(context.Background(), "Chicago, IL", "Denver, CO", domain.Waypoints{
		Stops: []string{"Omaha, NE", "Lincoln, NE"},
		Rests: []string{"Omaha, NE"},
	})

	require.Len(t, route.Coordinates, 5)
	assert.Equal(t, domain.Coordinate{Lat: chicago.Lat, Lng: chicago.Lng}, route.Coordinates[0])
	assert.Equal(t, domain.Coordinate{Lat: lincoln.Lat, Lng: lincoln.Lng}, route.Coordinates[2])
	assert.Equal(t, domain.Coordinate{Lat: denver.Lat, Lng: denver.Lng}, route.Coordinates[4])
	assert.Len(t, route.Stops, 2)
	assert.Len(t, route.Rests, 1)
	assert.Equal(t, [][2]float64{omaha.Pair(), lincoln.Pair()}, md.Stops)
	assert.Len(t, geo.calls, 5, "each name is geocoded exactly once")
}

func TestRouteBuilder_Build_UnresolvedPickup(t *testing.T) {
	b := service.NewRouteBuilder(knownGeocoder())

	route, md := b.Build(context.Background(), "Atlantis", "Denver, CO", domain.Waypoints{})

	assert.Nil(t, md.Pickup)
	require.NotNil(t, md.Dropoff)
	assert.Equal(t, []domain.Coordinate{{Lat: denver.Lat, Lng: denver.Lng}}, route.Coordinates)
}

func TestRouteBuilder_Build_NothingResolves(t *testing.T) {
	b := service.NewRouteBuilder(&stubGeocoder{})

	route, md := b.Build(context.Background(), "a", "b", domain.Waypoints{Stops: []string{"c"}, Rests: []string{"d"}})

	// Empty lists, never nil, so the stored documents hold [] rather than null.
	assert.NotNil(t, route.Coordinates)
	assert.NotNil(t, route.Stops)
	assert.NotNil(t, route.Rests)
	assert.NotNil(t, md.Stops)
	assert.NotNil(t, md.Rests)
	assert.Empty(t, route.Coordinates)
	assert.Nil(t, md.Pickup)
	assert.Nil(t, md.Dropoff)
}

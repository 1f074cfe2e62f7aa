package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-trips/internal/domain"
)

func TestTripPatch_Apply(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 2, 1, 6, 0, 0, 0, time.UTC)
	pickup := [2]float64{1, 2}
	base := domain.Trip{
		ID:                3,
		CurrentLocation:   "A",
		PickupLocation:    "B",
		DropoffLocation:   "C",
		CurrentCycleHours: 4,
		CreatedAt:         created,
		MapData:           domain.MapData{Pickup: &pickup},
	}

	newPickup := "  Omaha, NE "
	hours := 0.0
	got := domain.TripPatch{PickupLocation: &newPickup, CurrentCycleHours: &hours, StartTime: &start}.Apply(base)

	assert.Equal(t, "Omaha, NE", got.PickupLocation)
	assert.Equal(t, "A", got.CurrentLocation, "unset fields are kept")
	assert.Zero(t, got.CurrentCycleHours, "explicit zero is applied")
	require.NotNil(t, got.StartTime)
	assert.Equal(t, start, *got.StartTime)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, &pickup, got.MapData.Pickup)
	assert.Equal(t, "B", base.PickupLocation, "base is not mutated")
}

func TestTripPatch_Waypoints(t *testing.T) {
	assert.False(t, domain.TripPatch{}.HasWaypoints())

	stops := []string{"Omaha, NE"}
	p := domain.TripPatch{Stops: &stops}

	assert.True(t, p.HasWaypoints())
	assert.Equal(t, domain.Waypoints{Stops: []string{"Omaha, NE"}, Rests: []string{}}, p.Waypoints())
}

func TestValidationError(t *testing.T) {
	verr := &domain.ValidationError{}
	assert.True(t, verr.Empty())

	verr.Add("pickup_location", "This field is required.")
	verr.Add("current_cycle_hours", "Ensure this value is greater than or equal to 0.")

	err := fmt.Errorf("service.TripService.Create: %w", verr)

	assert.False(t, verr.Empty())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t,
		"validation error: current_cycle_hours: Ensure this value is greater than or equal to 0.; pickup_location: This field is required.",
		verr.Error(), "fields are sorted")
}

func TestFlattenLogs(t *testing.T) {
	logs := []domain.DailyLog{
		{Date: "2025-06-01", Segments: []domain.DutySegment{
			{Type: domain.DutyDriving, DurationHours: 5, Start: "8:00"},
			{Type: domain.DutyOffDuty, DurationHours: 19, Start: "13:00"},
		}},
		{Date: "2025-06-02", Segments: []domain.DutySegment{
			{Type: domain.DutyOnDuty, DurationHours: 1, Start: "8:00"},
		}},
	}

	rows := domain.FlattenLogs(logs)

	require.Len(t, rows, 3)
	assert.Equal(t, domain.LogRow{Date: "2025-06-02", Type: domain.DutyOnDuty, Start: "8:00", DurationHours: 1}, rows[2])
	assert.NotNil(t, domain.FlattenLogs(nil))
}

func TestNewTripFilter(t *testing.T) {
	assert.Equal(t, domain.TripFilter{}, domain.NewTripFilter(nil, nil))

	search := "  denver "
	est := time.Date(2025, 6, 1, 9, 0, 0, 0, time.FixedZone("EST", -5*60*60))
	f := domain.NewTripFilter(&search, &est)

	assert.Equal(t, "denver", f.Search)
	require.NotNil(t, f.CreatedAfter)
	assert.Equal(t, time.UTC, f.CreatedAfter.Location())
	assert.True(t, f.CreatedAfter.Equal(est))
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-trips/internal/domain"
	"github.com/pkordes/eld-trips/internal/service"
)

func TestExportService_ExportLogs(t *testing.T) {
	trip := domain.Trip{
		ID: 7,
		DailyLogs: []domain.DailyLog{
			{Date: "2025-06-01", Segments: []domain.DutySegment{
				{Type: domain.DutyDriving, DurationHours: 5, Start: "8:00"},
				{Type: domain.DutyOffDuty, DurationHours: 19, Start: "13:00"},
			}},
			{Date: "2025-06-02", Segments: []domain.DutySegment{
				{Type: domain.DutyOnDuty, DurationHours: 1, Start: "8:00"},
			}},
		},
	}
	var askedFor int64
	svc := service.NewExportService(&mockTripRepo{
		getByID: func(_ context.Context, id int64) (domain.Trip, error) {
			askedFor = id
			return trip, nil
		},
	})

	rows, err := svc.ExportLogs(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), askedFor)
	assert.Equal(t, []domain.LogRow{
		{Date: "2025-06-01", Type: "Driving", Start: "8:00", DurationHours: 5},
		{Date: "2025-06-01", Type: "Off Duty", Start: "13:00", DurationHours: 19},
		{Date: "2025-06-02", Type: "On Duty (Not Driving)", Start: "8:00", DurationHours: 1},
	}, rows)
}

func TestExportService_ExportLogs_NoLogs(t *testing.T) {
	svc := service.NewExportService(&mockTripRepo{
		getByID: func(context.Context, int64) (domain.Trip, error) { return domain.Trip{ID: 1}, nil },
	})

	rows, err := svc.ExportLogs(context.Background(), 1)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_ExportLogs_NotFound(t *testing.T) {
	svc := service.NewExportService(newMemRepo())

	_, err := svc.ExportLogs(context.Background(), 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

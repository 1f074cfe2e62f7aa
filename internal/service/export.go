package service

import (
	"context"
	"fmt"

	"github.com/pkordes/eld-trips/internal/domain"
	"github.com/pkordes/eld-trips/internal/repo"
)

// ExportService flattens a trip's stored duty logs for download.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// ExportLogs returns one LogRow per duty segment of the trip, in day then
// segment order. A trip without logs yields an empty, non-nil slice.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ExportService) ExportLogs(ctx context.Context, tripID int64) ([]domain.LogRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.ExportLogs: %w", err)
	}
	return domain.FlattenLogs(trip.DailyLogs), nil
}

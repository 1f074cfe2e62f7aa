package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"

	"github.com/pkordes/eld-trips/internal/domain"
	"github.com/pkordes/eld-trips/internal/handler/gen"
)

// csvHeaders is the first row of every CSV log export.
var csvHeaders = []string{"date", "type", "start", "duration_hours"}

// GetTripLogs handles GET /trips/{id}/logs/.
// Returns the trip's duty segments as flat rows; ?format=csv switches the
// body to CSV.
func (s *Server) GetTripLogs(ctx context.Context, req gen.GetTripLogsRequestObject) (gen.GetTripLogsResponseObject, error) {
	rows, err := s.export.ExportLogs(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetTripLogs404JSONResponse{NotFoundJSONResponse: notFoundBody(tripNotFound)}, nil
		}
		return nil, err
	}

	if req.Params.Format != nil && *req.Params.Format == gen.Csv {
		return buildCSVResponse(rows), nil
	}
	return buildJSONResponse(rows), nil
}

func buildJSONResponse(rows []domain.LogRow) gen.GetTripLogs200JSONResponse {
	out := make(gen.GetTripLogs200JSONResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, gen.LogRow{
			Date:          mustParseDate(r.Date),
			Type:          r.Type,
			Start:         r.Start,
			DurationHours: r.DurationHours,
		})
	}
	return out
}

// buildCSVResponse encodes rows as CSV with a header line.
func buildCSVResponse(rows []domain.LogRow) gen.GetTripLogs200TextcsvResponse {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Writes to a bytes.Buffer cannot fail.
	_ = w.Write(csvHeaders)
	for _, r := range rows {
		_ = w.Write([]string{
			r.Date,
			r.Type,
			r.Start,
			strconv.FormatFloat(r.DurationHours, 'f', -1, 64),
		})
	}
	w.Flush()

	return gen.GetTripLogs200TextcsvResponse{
		Body:          &buf,
		ContentLength: int64(buf.Len()),
	}
}

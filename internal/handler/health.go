package handler

import (
	"context"

	"github.com/pkordes/eld-trips/internal/handler/gen"
)

// GetHealth handles GET /healthz.
// It returns 200 {"status":"ok"} when the database answers a ping, and 503
// {"status":"unavailable"} when it does not.
func (s *Server) GetHealth(ctx context.Context, _ gen.GetHealthRequestObject) (gen.GetHealthResponseObject, error) {
	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			s.log.WarnContext(ctx, "health check failed", "error", err)
			return gen.GetHealth503JSONResponse{Status: "unavailable"}, nil
		}
	}
	return gen.GetHealth200JSONResponse{Status: "ok"}, nil
}

package domain

import (
	"strings"
	"time"
)

// TripFilter narrows the trip list. The zero value matches every trip.
type TripFilter struct {
	// Search is matched case-insensitively as a substring of the current,
	// pickup, and dropoff locations. Empty means no text filter.
	Search string
	// CreatedAfter, when set, keeps only trips created strictly after it.
	CreatedAfter *time.Time
}

// NewTripFilter builds a TripFilter from optional HTTP query params.
// Nil pointers and blank search text fall back to "no filter".
func NewTripFilter(search *string, createdAfter *time.Time) TripFilter {
	var f TripFilter
	if search != nil {
		f.Search = strings.TrimSpace(*search)
	}
	if createdAfter != nil {
		ca := createdAfter.UTC()
		f.CreatedAfter = &ca
	}
	return f
}

// Package domain contains the core data types for the ELD Trips application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"strings"
	"time"
)

// Trip represents a single truck journey together with the route and
// duty-log data generated for it.
//
// RouteInfo, MapData and DailyLogs are derived from the plain attributes plus
// geocoding results. They are only consistent with each other at the moment
// they were last generated; editing PickupLocation does not refresh them.
type Trip struct {
	ID                int64
	CurrentLocation   string
	PickupLocation    string
	DropoffLocation   string
	CurrentCycleHours float64
	StartTime         *time.Time // nil when no start time was supplied
	CreatedAt         time.Time

	RouteInfo RouteInfo
	DailyLogs []DailyLog
	MapData   MapData
}

// Waypoints are the optional intermediate locations supplied with a create or
// update request. They are consumed by route generation and never stored as
// such.
type Waypoints struct {
	Stops []string
	Rests []string
}

// TripPatch carries a partial update. A nil field means "leave unchanged".
//
// Stops and Rests are special: when either is non-nil the route is
// regenerated, with the other defaulting to an empty list.
type TripPatch struct {
	CurrentLocation   *string
	PickupLocation    *string
	DropoffLocation   *string
	CurrentCycleHours *float64
	StartTime         *time.Time

	Stops *[]string
	Rests *[]string
}

// HasWaypoints reports whether the patch explicitly supplies stops or rests.
func (p TripPatch) HasWaypoints() bool {
	return p.Stops != nil || p.Rests != nil
}

// Waypoints returns the stop and rest lists of the patch, substituting an
// empty list for whichever one was omitted.
func (p TripPatch) Waypoints() Waypoints {
	w := Waypoints{Stops: []string{}, Rests: []string{}}
	if p.Stops != nil {
		w.Stops = *p.Stops
	}
	if p.Rests != nil {
		w.Rests = *p.Rests
	}
	return w
}

// Apply returns a copy of t with every non-nil plain attribute of the patch
// written over it. ID, CreatedAt and the generated blobs are never touched.
func (p TripPatch) Apply(t Trip) Trip {
	if p.CurrentLocation != nil {
		t.CurrentLocation = strings.TrimSpace(*p.CurrentLocation)
	}
	if p.PickupLocation != nil {
		t.PickupLocation = strings.TrimSpace(*p.PickupLocation)
	}
	if p.DropoffLocation != nil {
		t.DropoffLocation = strings.TrimSpace(*p.DropoffLocation)
	}
	if p.CurrentCycleHours != nil {
		t.CurrentCycleHours = *p.CurrentCycleHours
	}
	if p.StartTime != nil {
		st := *p.StartTime
		t.StartTime = &st
	}
	return t
}

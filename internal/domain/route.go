package domain

// LatLng is a resolved geographic point.
type LatLng struct {
	Lat float64
	Lng float64
}

// Pair returns the point as a [lat, lng] array, the shape the map frontend
// uses for markers.
func (c LatLng) Pair() [2]float64 { return [2]float64{c.Lat, c.Lng} }

// Descriptor type tags used in RouteInfo.Stops and RouteInfo.Rests.
const (
	WaypointStop = "Stop"
	WaypointRest = "Rest"
)

// RouteInfo is the structured description of a trip's path.
// DistanceMiles and DurationHours are placeholders; no routing engine is
// consulted.
type RouteInfo struct {
	Coordinates   []Coordinate     `json:"coordinates"`
	Stops         []WaypointDetail `json:"stops"`
	Rests         []WaypointDetail `json:"rests"`
	DistanceMiles float64          `json:"distance_miles"`
	DurationHours float64          `json:"duration_hours"`
}

// Coordinate is one vertex of the route polyline.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// WaypointDetail describes a stop or rest along the route.
type WaypointDetail struct {
	Type           string  `json:"type"`
	MilesFromStart float64 `json:"miles_from_start"`
	DurationHours  float64 `json:"duration_hours"`
}

// MapData holds the raw marker points for the frontend map.
// Pickup and Dropoff are nil when geocoding failed; Stops and Rests contain
// only the points that resolved.
type MapData struct {
	Pickup  *[2]float64  `json:"pickup"`
	Dropoff *[2]float64  `json:"dropoff"`
	Stops   [][2]float64 `json:"stops"`
	Rests   [][2]float64 `json:"rests"`
}

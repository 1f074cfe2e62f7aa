package domain

// Duty segment types, as displayed on the log grid.
const (
	DutyDriving = "Driving"
	DutyOnDuty  = "On Duty (Not Driving)"
	DutyOffDuty = "Off Duty"
)

// DailyLog is the duty schedule for one calendar day.
type DailyLog struct {
	Date     string        `json:"date"` // "2006-01-02"
	Segments []DutySegment `json:"segments"`
	Totals   DutyTotals    `json:"totals"`
}

// DutySegment is one contiguous block of a single duty status.
// Start is an hour label such as "8:00".
type DutySegment struct {
	Type          string  `json:"type"`
	DurationHours float64 `json:"duration_hours"`
	Start         string  `json:"start"`
}

// DutyTotals sums segment hours per duty type for one day.
type DutyTotals struct {
	Driving float64 `json:"driving"`
	OnDuty  float64 `json:"on_duty"`
	OffDuty float64 `json:"off_duty"`
}

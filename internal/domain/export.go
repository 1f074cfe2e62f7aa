package domain

// LogRow is a single row in a trip's duty-log export.
// It is a flat view of DailyLog: one row per segment, with the day's date
// repeated on every row.
type LogRow struct {
	Date          string // "2006-01-02"
	Type          string
	Start         string
	DurationHours float64
}

// FlattenLogs converts daily logs into export rows, in day then segment order.
// Always returns a non-nil slice.
func FlattenLogs(logs []DailyLog) []LogRow {
	rows := make([]LogRow, 0, len(logs)*3)
	for _, day := range logs {
		for _, seg := range day.Segments {
			rows = append(rows, LogRow{
				Date:          day.Date,
				Type:          seg.Type,
				Start:         seg.Start,
				DurationHours: seg.DurationHours,
			})
		}
	}
	return rows
}

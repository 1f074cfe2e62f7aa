package service

import (
	"fmt"
	"time"

	"github.com/pkordes/eld-trips/internal/domain"
)

// DefaultStartHour is the hour the first driving block starts on a new trip.
const DefaultStartHour = 8

// dutyTemplate is the fixed shape of every generated day: type, hours, and
// offset from the start hour.
var dutyTemplate = []struct {
	typ    string
	hours  float64
	offset int
}{
	{domain.DutyDriving, 5, 0},
	{domain.DutyOnDuty, 1, 5},
	{domain.DutyOffDuty, 18, 6},
}

// BuildDailyLogs fabricates totalDays days of duty logs starting on today's
// date (UTC). Each day has the same three segments; the schedule ignores the
// trip's route and cycle hours entirely.
func BuildDailyLogs(startHour, totalDays int, today time.Time) []domain.DailyLog {
	if totalDays < 0 {
		totalDays = 0
	}
	today = today.UTC()

	logs := make([]domain.DailyLog, 0, totalDays)
	for day := 0; day < totalDays; day++ {
		segments := make([]domain.DutySegment, 0, len(dutyTemplate))
		for _, tmpl := range dutyTemplate {
			segments = append(segments, domain.DutySegment{
				Type:          tmpl.typ,
				DurationHours: tmpl.hours,
				Start:         fmt.Sprintf("%d:00", startHour+tmpl.offset),
			})
		}

		logs = append(logs, domain.DailyLog{
			Date:     today.AddDate(0, 0, day).Format("2006-01-02"),
			Segments: segments,
			Totals:   sumByType(segments),
		})
	}
	return logs
}

func sumByType(segments []domain.DutySegment) domain.DutyTotals {
	var t domain.DutyTotals
	for _, s := range segments {
		switch s.Type {
		case domain.DutyDriving:
			t.Driving += s.DurationHours
		case domain.DutyOnDuty:
			t.OnDuty += s.DurationHours
		case domain.DutyOffDuty:
			t.OffDuty += s.DurationHours
		}
	}
	return t
}

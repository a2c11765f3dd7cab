package completion

import (
	"time"

	"github.com/mwestby/choreboard/internal/model"
)

// DayKey returns the calendar-day key (YYYY-MM-DD) for t in t's location.
// Day-window membership is tested by key equality, not by time bounds,
// which matters at day boundaries.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey returns the calendar-month key (YYYY-MM) for t in t's location.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// WeekStart returns midnight of the Monday on or before now.
func WeekStart(now time.Time) time.Time {
	start := startOfDay(now)
	day := start.Weekday()
	diff := int(day) - 1
	if day == time.Sunday {
		diff = 6
	}
	return start.AddDate(0, 0, -diff)
}

// PeriodStart returns the start of the current recurrence window for the
// given frequency: midnight today for daily tasks, the Monday week start
// for weekly tasks.
func PeriodStart(frequency string, now time.Time) time.Time {
	if frequency == model.FrequencyDaily {
		return startOfDay(now)
	}
	return WeekStart(now)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

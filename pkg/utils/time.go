package utils

import "time"

// Wire formats for dates in query parameters and responses.
const (
	DateFormat     = "2006.01.02"
	DateTimeFormat = "2006.01.02 15:04:05"
)

// DaysPeriod returns every day in [start, end], start truncated to
// midnight, both ends inclusive.
func DaysPeriod(start, end time.Time) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	count := int(end.Sub(start).Hours()/24) + 1
	days := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

package domain

import "time"

// TimeRange half-open interval [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether End is strictly after Start
func (r TimeRange) Valid() bool {
	return r.End.After(r.Start)
}

// Overlaps reports whether two half-open ranges intersect.
// A range ending exactly when the other starts does not overlap it.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Covers reports whether other lies entirely inside r
func (r TimeRange) Covers(other TimeRange) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Days returns the calendar days (midnight in loc) touched by the range, in ascending order
func (r TimeRange) Days(loc *time.Location) []time.Time {
	first := StartOfDay(r.Start, loc)
	last := StartOfDay(r.End.Add(-time.Nanosecond), loc)

	days := []time.Time{first}
	for d := first.AddDate(0, 0, 1); !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// StartOfDay returns local midnight of the calendar day of t in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayRange returns [midnight, next midnight) in loc for the calendar date of date.
// Only the year/month/day of date are used.
func DayRange(date time.Time, loc *time.Location) TimeRange {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}
}

// CalendarDate returns the calendar date of t in loc as UTC midnight
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/massage-scheduler/pkg/types"
)

// Weekday day of week, 0 = Sunday ... 6 = Saturday
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekdayOf returns the weekday of a calendar date
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday())
}

// ParseWeekday validates an integer weekday
func ParseWeekday(v int) (Weekday, error) {
	w := Weekday(v)
	if !w.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWeekday, v)
	}
	return w, nil
}

// Valid reports whether the weekday is in 0..6
func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Saturday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return time.Weekday(w).String()
}

// TherapistSchedule one row of the weekly template.
// The whole template is replaced on every update, so row IDs are not stable.
type TherapistSchedule struct {
	ID           int64
	TherapistID  int64
	Weekday      Weekday
	StartTime    types.TimeString
	EndTime      types.TimeString
	BreakMinutes int
	IsActive     bool
	CreatedAt    time.Time
}

// Window returns the working window of the row
func (s TherapistSchedule) Window() WorkingWindow {
	return WorkingWindow{Start: s.StartTime, End: s.EndTime, BreakMinutes: s.BreakMinutes}
}

// OverrideType kind of one-off date exception
type OverrideType string

const (
	OverrideUnavailable OverrideType = "unavailable"
	OverrideCustomHours OverrideType = "custom_hours"
)

// ParseOverrideType converts a string into a known override type
func ParseOverrideType(s string) (OverrideType, error) {
	t := OverrideType(s)
	switch t {
	case OverrideUnavailable, OverrideCustomHours:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOverrideType, s)
	}
}

// ScheduleOverride exception for a single calendar date.
// At most one override exists per (therapist, date).
type ScheduleOverride struct {
	ID          int64
	TherapistID int64
	Date        time.Time // Gregorian calendar date, UTC midnight
	JalaliDate  string    // display form, Y-m-d
	Type        OverrideType
	StartTime   *types.TimeString // custom_hours only
	EndTime     *types.TimeString // custom_hours only
	Reason      *string
	CreatedAt   time.Time
}

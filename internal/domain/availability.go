package domain

import (
	"time"

	"github.com/m04kA/massage-scheduler/pkg/types"
)

// AvailabilityKind where the effective working hours for a date come from
type AvailabilityKind string

const (
	AvailabilityUnavailable AvailabilityKind = "unavailable"
	AvailabilityOverride    AvailabilityKind = "override"
	AvailabilityWeekly      AvailabilityKind = "weekly"
)

// WorkingWindow working hours of a single day
type WorkingWindow struct {
	Start        types.TimeString
	End          types.TimeString
	BreakMinutes int
}

// Bounds returns the window as instants on the given calendar date in loc
func (w WorkingWindow) Bounds(date time.Time, loc *time.Location) (TimeRange, error) {
	start, err := w.Start.OnDate(date, loc)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := w.End.OnDate(date, loc)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: start, End: end}, nil
}

// Availability effective availability of a therapist on a date.
// Window is nil when Kind is AvailabilityUnavailable.
type Availability struct {
	Kind   AvailabilityKind
	Window *WorkingWindow
}

// Unavailable availability value for a closed day
func Unavailable() Availability {
	return Availability{Kind: AvailabilityUnavailable}
}

// IsAvailable reports whether the therapist works on that date at all
func (a Availability) IsAvailable() bool {
	switch a.Kind {
	case AvailabilityOverride, AvailabilityWeekly:
		return a.Window != nil
	case AvailabilityUnavailable:
		return false
	default:
		return false
	}
}

// ResolveAvailability combines the override for the date (if any) with the weekly template.
// An override always wins; the weekly template is not consulted when one exists.
func ResolveAvailability(
	date time.Time,
	override *ScheduleOverride,
	weekly []TherapistSchedule,
	defaultOverrideBreak int,
) Availability {
	if override != nil {
		return availabilityFromOverride(*override, defaultOverrideBreak)
	}

	weekday := WeekdayOf(date)
	for _, day := range weekly {
		if day.Weekday == weekday && day.IsActive {
			window := day.Window()
			return Availability{Kind: AvailabilityWeekly, Window: &window}
		}
	}

	return Unavailable()
}

func availabilityFromOverride(o ScheduleOverride, defaultBreak int) Availability {
	switch o.Type {
	case OverrideUnavailable:
		return Unavailable()
	case OverrideCustomHours:
		if o.StartTime == nil || o.EndTime == nil {
			return Unavailable()
		}
		return Availability{
			Kind: AvailabilityOverride,
			Window: &WorkingWindow{
				Start:        *o.StartTime,
				End:          *o.EndTime,
				BreakMinutes: defaultBreak,
			},
		}
	default:
		return Unavailable()
	}
}

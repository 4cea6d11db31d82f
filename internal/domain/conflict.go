package domain

import (
	"fmt"
	"sort"
	"time"
)

// ConflictReason why an existing appointment does not fit a proposed schedule
type ConflictReason string

const (
	// ConflictDayInactive the weekday has no active working hours in the proposed template
	ConflictDayInactive ConflictReason = "day_inactive"
	// ConflictDateUnavailable the date is closed by an override
	ConflictDateUnavailable ConflictReason = "date_unavailable"
	// ConflictOutsideHours the appointment does not fit into the working window
	ConflictOutsideHours ConflictReason = "outside_hours"
)

// Conflict an existing confirmed appointment that a schedule change would orphan
type Conflict struct {
	AppointmentID int64
	StartsAt      time.Time
	EndsAt        time.Time
	ClientName    *string
	Reason        ConflictReason
}

// ConflictError rejected schedule change together with the offending appointments.
// errors.Is matches Kind, errors.As exposes the list.
type ConflictError struct {
	Kind      error
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflicting appointment(s)", e.Kind, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return e.Kind
}

// FindDateConflicts checks appointments touching a single date against that date's availability
func FindDateConflicts(date time.Time, availability Availability, appointments []Appointment, loc *time.Location) []Conflict {
	conflicts := make([]Conflict, 0)
	for _, a := range appointments {
		if !a.Status.BlocksTime() {
			continue
		}
		if reason, bad := checkAppointment(a, date, availability, ConflictDateUnavailable, loc); bad {
			conflicts = append(conflicts, newConflict(a, reason))
		}
	}
	return sortConflicts(conflicts)
}

// FindWeeklyConflicts checks future appointments against a proposed weekly template.
// Dates that carry an override are judged by the override, not by the template.
func FindWeeklyConflicts(
	proposed []TherapistSchedule,
	overrides []ScheduleOverride,
	appointments []Appointment,
	defaultOverrideBreak int,
	loc *time.Location,
) []Conflict {
	byDate := make(map[string]ScheduleOverride, len(overrides))
	for _, o := range overrides {
		byDate[o.Date.Format(DateFormat)] = o
	}

	conflicts := make([]Conflict, 0)
	for _, a := range appointments {
		if !a.Status.BlocksTime() {
			continue
		}

		date := CalendarDate(a.StartsAt, loc)

		var override *ScheduleOverride
		closedReason := ConflictDayInactive
		if o, ok := byDate[date.Format(DateFormat)]; ok {
			override = &o
			closedReason = ConflictDateUnavailable
		}

		availability := ResolveAvailability(date, override, proposed, defaultOverrideBreak)
		if reason, bad := checkAppointment(a, date, availability, closedReason, loc); bad {
			conflicts = append(conflicts, newConflict(a, reason))
		}
	}
	return sortConflicts(conflicts)
}

// checkAppointment reports whether the appointment falls outside the availability of date
func checkAppointment(
	a Appointment,
	date time.Time,
	availability Availability,
	closedReason ConflictReason,
	loc *time.Location,
) (ConflictReason, bool) {
	if !availability.IsAvailable() {
		return closedReason, true
	}

	bounds, err := availability.Window.Bounds(date, loc)
	if err != nil || !bounds.Covers(a.Range()) {
		return ConflictOutsideHours, true
	}
	return "", false
}

func newConflict(a Appointment, reason ConflictReason) Conflict {
	return Conflict{
		AppointmentID: a.ID,
		StartsAt:      a.StartsAt,
		EndsAt:        a.EndsAt,
		ClientName:    a.Client.Name,
		Reason:        reason,
	}
}

func sortConflicts(conflicts []Conflict) []Conflict {
	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].StartsAt.Equal(conflicts[j].StartsAt) {
			return conflicts[i].AppointmentID < conflicts[j].AppointmentID
		}
		return conflicts[i].StartsAt.Before(conflicts[j].StartsAt)
	})
	return conflicts
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/massage-scheduler/pkg/ptr"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

var tehran = time.FixedZone("IRST", 3*3600+1800)

// 2024-03-25 is a Monday
var monday = time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)

func weeklyMonday() []TherapistSchedule {
	return []TherapistSchedule{
		{Weekday: Monday, StartTime: "09:00", EndTime: "17:00", BreakMinutes: 10, IsActive: true},
		{Weekday: Tuesday, StartTime: "09:00", EndTime: "17:00", IsActive: false},
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 3, 25, h, m, 0, 0, tehran) }
	base := TimeRange{Start: at(10, 0), End: at(11, 0)}

	assert.False(t, base.Overlaps(TimeRange{Start: at(11, 0), End: at(11, 30)}), "adjacent after")
	assert.False(t, base.Overlaps(TimeRange{Start: at(9, 0), End: at(10, 0)}), "adjacent before")
	assert.True(t, base.Overlaps(TimeRange{Start: at(10, 59), End: at(11, 30)}), "one minute before end")
	assert.True(t, base.Overlaps(TimeRange{Start: at(10, 30), End: at(11, 0)}))
	assert.True(t, base.Overlaps(TimeRange{Start: at(9, 0), End: at(12, 0)}), "contains")

	other := TimeRange{Start: at(10, 30), End: at(12, 0)}
	assert.Equal(t, base.Overlaps(other), other.Overlaps(base), "symmetric")
}

func TestTimeRange_Days(t *testing.T) {
	r := TimeRange{
		Start: time.Date(2024, 3, 25, 23, 30, 0, 0, tehran),
		End:   time.Date(2024, 3, 26, 0, 30, 0, 0, tehran),
	}
	days := r.Days(tehran)
	require.Len(t, days, 2)
	assert.Equal(t, 25, days[0].Day())
	assert.Equal(t, 26, days[1].Day())

	single := TimeRange{
		Start: time.Date(2024, 3, 25, 23, 0, 0, 0, tehran),
		End:   time.Date(2024, 3, 26, 0, 0, 0, 0, tehran),
	}
	assert.Len(t, single.Days(tehran), 1, "end exactly at midnight stays within one day")
}

func TestResolveAvailability_Weekly(t *testing.T) {
	a := ResolveAvailability(monday, nil, weeklyMonday(), 15)

	assert.Equal(t, AvailabilityWeekly, a.Kind)
	require.NotNil(t, a.Window)
	assert.Equal(t, types.TimeString("09:00"), a.Window.Start)
	assert.Equal(t, types.TimeString("17:00"), a.Window.End)
	assert.Equal(t, 10, a.Window.BreakMinutes)
	assert.True(t, a.IsAvailable())
}

func TestResolveAvailability_InactiveOrMissingDay(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	wednesday := monday.AddDate(0, 0, 2)

	assert.Equal(t, AvailabilityUnavailable, ResolveAvailability(tuesday, nil, weeklyMonday(), 15).Kind)
	assert.Equal(t, AvailabilityUnavailable, ResolveAvailability(wednesday, nil, weeklyMonday(), 15).Kind)
	assert.False(t, ResolveAvailability(wednesday, nil, weeklyMonday(), 15).IsAvailable())
}

func TestResolveAvailability_OverridePrecedence(t *testing.T) {
	closed := &ScheduleOverride{Date: monday, Type: OverrideUnavailable}
	a := ResolveAvailability(monday, closed, weeklyMonday(), 15)
	assert.Equal(t, AvailabilityUnavailable, a.Kind)

	custom := &ScheduleOverride{
		Date:      monday,
		Type:      OverrideCustomHours,
		StartTime: ptr.Ptr(types.TimeString("12:00")),
		EndTime:   ptr.Ptr(types.TimeString("20:00")),
	}
	a = ResolveAvailability(monday, custom, weeklyMonday(), 15)
	assert.Equal(t, AvailabilityOverride, a.Kind)
	require.NotNil(t, a.Window)
	assert.Equal(t, types.TimeString("12:00"), a.Window.Start)
	assert.Equal(t, 15, a.Window.BreakMinutes)

	// override on a day without weekly hours still opens it
	wednesday := monday.AddDate(0, 0, 2)
	custom.Date = wednesday
	assert.Equal(t, AvailabilityOverride, ResolveAvailability(wednesday, custom, weeklyMonday(), 15).Kind)
}

func TestFindDateConflicts(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 3, 25, h, m, 0, 0, tehran) }
	appointments := []Appointment{
		{ID: 1, StartsAt: at(10, 0), EndsAt: at(11, 0), Status: StatusConfirmed},
		{ID: 2, StartsAt: at(13, 0), EndsAt: at(14, 0), Status: StatusConfirmed},
		{ID: 3, StartsAt: at(15, 0), EndsAt: at(16, 0), Status: StatusCancelled},
		{ID: 4, StartsAt: at(11, 0), EndsAt: at(12, 0), Status: StatusConfirmed},
	}

	window := WorkingWindow{Start: "09:00", End: "12:00"}
	conflicts := FindDateConflicts(monday, Availability{Kind: AvailabilityOverride, Window: &window}, appointments, tehran)

	require.Len(t, conflicts, 1)
	assert.Equal(t, int64(2), conflicts[0].AppointmentID)
	assert.Equal(t, ConflictOutsideHours, conflicts[0].Reason)

	conflicts = FindDateConflicts(monday, Unavailable(), appointments, tehran)
	require.Len(t, conflicts, 3)
	assert.Equal(t, []int64{1, 4, 2}, []int64{conflicts[0].AppointmentID, conflicts[1].AppointmentID, conflicts[2].AppointmentID})
	for _, c := range conflicts {
		assert.Equal(t, ConflictDateUnavailable, c.Reason)
	}
}

func TestFindWeeklyConflicts(t *testing.T) {
	mondayAt := func(h int) time.Time { return time.Date(2024, 3, 25, h, 0, 0, 0, tehran) }
	nextMondayAt := func(h int) time.Time { return time.Date(2024, 4, 1, h, 0, 0, 0, tehran) }
	tuesdayAt := func(h int) time.Time { return time.Date(2024, 3, 26, h, 0, 0, 0, tehran) }

	appointments := []Appointment{
		{ID: 1, StartsAt: mondayAt(10), EndsAt: mondayAt(11), Status: StatusConfirmed},
		{ID: 2, StartsAt: mondayAt(16), EndsAt: mondayAt(17), Status: StatusConfirmed},
		{ID: 3, StartsAt: tuesdayAt(10), EndsAt: tuesdayAt(11), Status: StatusConfirmed},
		{ID: 4, StartsAt: nextMondayAt(16), EndsAt: nextMondayAt(17), Status: StatusConfirmed},
	}

	proposed := []TherapistSchedule{
		{Weekday: Monday, StartTime: "09:00", EndTime: "15:00", IsActive: true},
	}

	// next Monday carries custom hours until 18:00, so appointment 4 still fits
	overrides := []ScheduleOverride{{
		Date:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Type:      OverrideCustomHours,
		StartTime: ptr.Ptr(types.TimeString("09:00")),
		EndTime:   ptr.Ptr(types.TimeString("18:00")),
	}}

	conflicts := FindWeeklyConflicts(proposed, overrides, appointments, 15, tehran)

	require.Len(t, conflicts, 2)
	assert.Equal(t, int64(2), conflicts[0].AppointmentID)
	assert.Equal(t, ConflictOutsideHours, conflicts[0].Reason)
	assert.Equal(t, int64(3), conflicts[1].AppointmentID)
	assert.Equal(t, ConflictDayInactive, conflicts[1].Reason)
}

func TestConflictError(t *testing.T) {
	kind := assert.AnError
	err := error(&ConflictError{Kind: kind, Conflicts: []Conflict{{AppointmentID: 1}}})

	assert.ErrorIs(t, err, kind)

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Len(t, ce.Conflicts, 1)
}

package apply_weekly_schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/infra/storage/memory"
	"github.com/m04kA/massage-scheduler/pkg/clock"
	"github.com/m04kA/massage-scheduler/pkg/logger"
	"github.com/m04kA/massage-scheduler/pkg/ptr"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

const therapistID = int64(4)

var (
	tehran = time.FixedZone("IRST", 3*3600+1800)
	// понедельник 2024-03-25
	monday = time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
)

type conflictCounter struct{ kinds []string }

func (c *conflictCounter) ObserveConflict(kind string) { c.kinds = append(c.kinds, kind) }

type fixture struct {
	store   *memory.Store
	clock   *clock.Fixed
	metrics *conflictCounter
	uc      *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.Schedules().CreateWeekly(context.Background(), therapistID, []domain.TherapistSchedule{
		{Weekday: domain.Monday, StartTime: "09:00", EndTime: "17:00", BreakMinutes: 10, IsActive: true},
		{Weekday: domain.Saturday, StartTime: "10:00", EndTime: "18:00", IsActive: true},
	}))

	c := clock.NewFixed(time.Date(2024, 3, 24, 12, 0, 0, 0, tehran))
	m := &conflictCounter{}

	return &fixture{
		store:   store,
		clock:   c,
		metrics: m,
		uc: NewUseCase(store.Appointments(), store.Schedules(), store, store, c, m,
			domain.DefaultOverrideBreakMinutes, tehran, logger.NewNop()),
	}
}

func (f *fixture) seed(t *testing.T, day time.Time, h, m, minutes int) *domain.Appointment {
	t.Helper()
	y, mo, d := day.Date()
	a := domain.NewAppointment(therapistID, domain.TherapistService{
		ServiceID:       1,
		DurationMinutes: minutes,
		Price:           decimal.NewFromInt(500_000),
	}, time.Date(y, mo, d, h, m, 0, 0, tehran), domain.ClientInfo{Name: ptr.Ptr("Neda")})
	created, err := f.store.Appointments().Create(context.Background(), &a)
	require.NoError(t, err)
	return created
}

func request(days ...DayRequest) *Request {
	return &Request{TherapistID: therapistID, Days: days}
}

func mondayWindow(start, end string) DayRequest {
	return DayRequest{Weekday: 1, StartTime: types.TimeString(start), EndTime: types.TimeString(end), BreakMinutes: 15, IsActive: true}
}

func TestExecute_ReplacesSchedule(t *testing.T) {
	f := newFixture(t)
	f.seed(t, monday, 10, 0, 60)

	resp, err := f.uc.Execute(context.Background(), request(
		mondayWindow("08:00", "16:00"),
		DayRequest{Weekday: 3, StartTime: "12:00", EndTime: "20:00", IsActive: true},
		DayRequest{Weekday: 5, IsActive: false},
	))
	require.NoError(t, err)
	require.Len(t, resp.Days, 2, "inactive days are not stored")
	assert.Equal(t, 1, resp.Days[0].Weekday)
	assert.Equal(t, "08:00", resp.Days[0].StartTime)
	assert.Equal(t, 3, resp.Days[1].Weekday)

	weekly, err := f.store.Schedules().GetWeekly(context.Background(), therapistID)
	require.NoError(t, err)
	require.Len(t, weekly, 2)
	assert.Equal(t, domain.Wednesday, weekly[1].Weekday)
	assert.Empty(t, f.metrics.kinds)
}

func TestExecute_ConflictKeepsOldSchedule(t *testing.T) {
	f := newFixture(t)
	late := f.seed(t, monday, 15, 0, 60)
	saturday := f.seed(t, monday.AddDate(0, 0, 5), 11, 0, 60)

	_, err := f.uc.Execute(context.Background(), request(mondayWindow("09:00", "14:00")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScheduleConflict)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	require.Len(t, conflictErr.Conflicts, 2)
	assert.Equal(t, late.ID, conflictErr.Conflicts[0].AppointmentID)
	assert.Equal(t, domain.ConflictOutsideHours, conflictErr.Conflicts[0].Reason)
	assert.Equal(t, saturday.ID, conflictErr.Conflicts[1].AppointmentID)
	assert.Equal(t, domain.ConflictDayInactive, conflictErr.Conflicts[1].Reason)

	weekly, err := f.store.Schedules().GetWeekly(context.Background(), therapistID)
	require.NoError(t, err)
	require.Len(t, weekly, 2, "old schedule stays in place")
	assert.Equal(t, types.TimeString("17:00"), weekly[0].EndTime)
	assert.Equal(t, []string{"weekly"}, f.metrics.kinds)
}

func TestExecute_IgnoresPastAndCancelled(t *testing.T) {
	f := newFixture(t)
	f.seed(t, monday.AddDate(0, 0, -7), 15, 0, 60) // прошлый понедельник

	cancelled := f.seed(t, monday, 15, 0, 60)
	c, err := domain.CancelAppointment(*cancelled, "", 1, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.store.Appointments().UpdateStatus(context.Background(), &c))

	_, err = f.uc.Execute(context.Background(), request(mondayWindow("09:00", "12:00")))
	assert.NoError(t, err)
}

func TestExecute_OverrideDateJudgedByOverride(t *testing.T) {
	f := newFixture(t)
	f.seed(t, monday, 13, 0, 60)

	_, err := f.store.Schedules().CreateOverride(context.Background(), &domain.ScheduleOverride{
		TherapistID: therapistID,
		Date:        monday,
		Type:        domain.OverrideCustomHours,
		StartTime:   ptr.Ptr(types.TimeString("12:00")),
		EndTime:     ptr.Ptr(types.TimeString("15:00")),
	})
	require.NoError(t, err)

	// понедельник исчезает из шаблона, но на эту дату действует исключение
	_, err = f.uc.Execute(context.Background(), request(
		DayRequest{Weekday: 6, StartTime: "10:00", EndTime: "18:00", IsActive: true},
	))
	assert.NoError(t, err)
}

func TestConflictReport_DoesNotApply(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, monday, 16, 30, 60)

	report, err := f.uc.ConflictReport(context.Background(), request(mondayWindow("09:00", "17:00")))
	require.NoError(t, err)
	require.True(t, report.HasConflicts, "16:30-17:30 already sticks out of 09:00-17:00")
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, a.ID, report.Conflicts[0].AppointmentID)
	assert.Equal(t, "16:30", report.Conflicts[0].StartTime)
	assert.Equal(t, "outside_hours", report.Conflicts[0].Reason)
	assert.Equal(t, "1403-01-06", report.Conflicts[0].Date)

	clean, err := f.uc.ConflictReport(context.Background(), request(mondayWindow("09:00", "18:00")))
	require.NoError(t, err)
	assert.False(t, clean.HasConflicts)
	assert.Empty(t, clean.Conflicts)

	weekly, err := f.store.Schedules().GetWeekly(context.Background(), therapistID)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("17:00"), weekly[0].EndTime, "preview never writes")
	assert.Empty(t, f.metrics.kinds)
}

func TestValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"bad therapist", &Request{TherapistID: 0}, ErrInvalidInput},
		{"weekday out of range", request(DayRequest{Weekday: 7, StartTime: "09:00", EndTime: "17:00", IsActive: true}), ErrInvalidInput},
		{"duplicate weekday", request(mondayWindow("09:00", "12:00"), mondayWindow("13:00", "17:00")), ErrInvalidInput},
		{"end before start", request(mondayWindow("17:00", "09:00")), ErrInvalidTimeRange},
		{"end equals start", request(mondayWindow("09:00", "09:00")), ErrInvalidTimeRange},
		{"window too short", request(mondayWindow("09:00", "09:29")), ErrInvalidInput},
		{"bad time", request(mondayWindow("9am", "17:00")), ErrInvalidInput},
		{"break too long", request(DayRequest{Weekday: 1, StartTime: "09:00", EndTime: "17:00", BreakMinutes: 121, IsActive: true}), ErrInvalidInput},
		{"negative break", request(DayRequest{Weekday: 1, StartTime: "09:00", EndTime: "17:00", BreakMinutes: -1, IsActive: true}), ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	_, err := f.uc.Execute(context.Background(), request(mondayWindow("09:00", "09:30")))
	assert.NoError(t, err, "exactly 30 minutes is allowed")
}

// failingCreate удаляет старый шаблон, но не может записать новый
type failingCreate struct {
	*memory.ScheduleRepository
}

func (failingCreate) CreateWeekly(context.Context, int64, []domain.TherapistSchedule) error {
	return errors.New("db down")
}

func TestExecute_FailedWriteRollsBack(t *testing.T) {
	f := newFixture(t)
	uc := NewUseCase(f.store.Appointments(), failingCreate{f.store.Schedules()}, f.store, f.store, f.clock, f.metrics,
		domain.DefaultOverrideBreakMinutes, tehran, logger.NewNop())

	_, err := uc.Execute(context.Background(), request(mondayWindow("08:00", "20:00")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	weekly, err := f.store.Schedules().GetWeekly(context.Background(), therapistID)
	require.NoError(t, err)
	require.Len(t, weekly, 2, "deleted rows are restored")
	assert.Equal(t, domain.Monday, weekly[0].Weekday)
	assert.Equal(t, types.TimeString("09:00"), weekly[0].StartTime)
	assert.Equal(t, types.TimeString("17:00"), weekly[0].EndTime)
	assert.Equal(t, domain.Saturday, weekly[1].Weekday)
	assert.Empty(t, f.metrics.kinds)
}

package apply_override

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
	scheduleRepo "github.com/m04kA/massage-scheduler/internal/infra/storage/schedule"
	"github.com/m04kA/massage-scheduler/pkg/logger"
	"github.com/m04kA/massage-scheduler/pkg/ptr"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

const (
	therapistID = int64(8)

	// 1403-01-06 = 2024-03-25, понедельник
	mondayJalali = "1403-01-06"
)

var (
	tehran = time.FixedZone("IRST", 3*3600+1800)
	monday = time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
)

type conflictCounter struct{ kinds []string }

func (c *conflictCounter) ObserveConflict(kind string) { c.kinds = append(c.kinds, kind) }

type fixture struct {
	store   *memory.Store
	metrics *conflictCounter
	uc      *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.Schedules().CreateWeekly(context.Background(), therapistID, []domain.TherapistSchedule{
		{Weekday: domain.Monday, StartTime: "09:00", EndTime: "17:00", IsActive: true},
	}))

	m := &conflictCounter{}
	return &fixture{
		store:   store,
		metrics: m,
		uc: NewUseCase(store.Appointments(), store.Schedules(), store, store, m,
			domain.DefaultOverrideBreakMinutes, tehran, logger.NewNop()),
	}
}

func (f *fixture) seed(t *testing.T, h, m int) *domain.Appointment {
	t.Helper()
	a := domain.NewAppointment(therapistID, domain.TherapistService{
		ServiceID:       1,
		DurationMinutes: 60,
		Price:           decimal.NewFromInt(800_000),
	}, time.Date(2024, 3, 25, h, m, 0, 0, tehran), domain.ClientInfo{Name: ptr.Ptr("Reza")})
	created, err := f.store.Appointments().Create(context.Background(), &a)
	require.NoError(t, err)
	return created
}

func customHours(start, end string) *Request {
	return &Request{
		TherapistID: therapistID,
		JalaliDate:  mondayJalali,
		Type:        "custom_hours",
		StartTime:   ptr.Ptr(types.TimeString(start)),
		EndTime:     ptr.Ptr(types.TimeString(end)),
	}
}

func TestExecute_CustomHoursConflict(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, 13, 0)

	_, err := f.uc.Execute(context.Background(), customHours("09:00", "12:00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverrideConflict)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, a.ID, conflictErr.Conflicts[0].AppointmentID)
	assert.Equal(t, domain.ConflictOutsideHours, conflictErr.Conflicts[0].Reason)

	_, err = f.store.Schedules().GetOverride(context.Background(), therapistID, monday)
	assert.ErrorIs(t, err, scheduleRepo.ErrOverrideNotFound, "override is not created")
	assert.Equal(t, []string{"override"}, f.metrics.kinds)
}

func TestExecute_UnavailableConflictsWithEveryAppointment(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 10, 0)
	f.seed(t, 14, 0)

	_, err := f.uc.Execute(context.Background(), &Request{
		TherapistID: therapistID,
		JalaliDate:  mondayJalali,
		Type:        "unavailable",
	})

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	require.Len(t, conflictErr.Conflicts, 2)
	assert.Equal(t, domain.ConflictDateUnavailable, conflictErr.Conflicts[0].Reason)
}

func TestExecute_CreatesAndReplaces(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 10, 0)

	first, err := f.uc.Execute(context.Background(), customHours("09:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, mondayJalali, first.Date)
	assert.Equal(t, "2024-03-25", first.GregorianDate)
	assert.Equal(t, "custom_hours", first.Type)

	second, err := f.uc.Execute(context.Background(), &Request{
		TherapistID: therapistID,
		JalaliDate:  "1403/1/6",
		Type:        "custom_hours",
		StartTime:   ptr.Ptr(types.TimeString("10:00")),
		EndTime:     ptr.Ptr(types.TimeString("11:00")),
		Reason:      ptr.Ptr("short day"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	stored, err := f.store.Schedules().GetOverride(context.Background(), therapistID, monday)
	require.NoError(t, err)
	require.NotNil(t, stored.StartTime)
	assert.Equal(t, types.TimeString("10:00"), *stored.StartTime)
	require.NotNil(t, stored.Reason)
	assert.Equal(t, "short day", *stored.Reason)

	all, err := f.store.Schedules().ListOverrides(context.Background(), therapistID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1, "one override per date")
}

func TestExecute_UnavailableOnFreeDate(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		TherapistID: therapistID,
		JalaliDate:  "1403-01-07",
		Type:        "unavailable",
		StartTime:   ptr.Ptr(types.TimeString("10:00")),
	})
	require.NoError(t, err)
	assert.Equal(t, "unavailable", resp.Type)
	assert.Nil(t, resp.StartTime, "times are dropped for a day off")
}

func TestConflictReport(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, 13, 0)

	report, err := f.uc.ConflictReport(context.Background(), customHours("09:00", "12:00"))
	require.NoError(t, err)
	require.True(t, report.HasConflicts)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, a.ID, report.Conflicts[0].AppointmentID)
	assert.Equal(t, "13:00", report.Conflicts[0].StartTime)
	assert.Equal(t, "14:00", report.Conflicts[0].EndTime)

	clean, err := f.uc.ConflictReport(context.Background(), customHours("09:00", "14:00"))
	require.NoError(t, err)
	assert.False(t, clean.HasConflicts)

	_, err = f.store.Schedules().GetOverride(context.Background(), therapistID, monday)
	assert.ErrorIs(t, err, scheduleRepo.ErrOverrideNotFound, "preview never writes")
	assert.Empty(t, f.metrics.kinds)
}

func TestValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"bad therapist", &Request{TherapistID: 0, JalaliDate: mondayJalali, Type: "unavailable"}, ErrInvalidInput},
		{"bad date", &Request{TherapistID: therapistID, JalaliDate: "1403-02-32", Type: "unavailable"}, ErrInvalidDate},
		{"bad type", &Request{TherapistID: therapistID, JalaliDate: mondayJalali, Type: "holiday"}, ErrInvalidInput},
		{"custom without end", &Request{TherapistID: therapistID, JalaliDate: mondayJalali, Type: "custom_hours", StartTime: ptr.Ptr(types.TimeString("09:00"))}, ErrInvalidInput},
		{"custom end before start", customHours("12:00", "09:00"), ErrInvalidTimeRange},
		{"custom end equals start", customHours("12:00", "12:00"), ErrInvalidTimeRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Delete(context.Background(), &DeleteRequest{TherapistID: therapistID, JalaliDate: mondayJalali})
	assert.ErrorIs(t, err, ErrOverrideNotFound)

	// исключение расширяет день до 20:00, запись 18:00 держится только на нём
	_, err = f.uc.Execute(context.Background(), customHours("09:00", "20:00"))
	require.NoError(t, err)
	f.seed(t, 18, 0)

	err = f.uc.Delete(context.Background(), &DeleteRequest{TherapistID: therapistID, JalaliDate: mondayJalali})
	assert.ErrorIs(t, err, ErrOverrideConflict)

	_, err = f.store.Schedules().GetOverride(context.Background(), therapistID, monday)
	require.NoError(t, err, "override survives the rejected delete")

	// на вторник шаблона нет, но и записей нет
	_, err = f.uc.Execute(context.Background(), &Request{TherapistID: therapistID, JalaliDate: "1403-01-07", Type: "unavailable"})
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(context.Background(), &DeleteRequest{TherapistID: therapistID, JalaliDate: "1403/01/07"}))

	err = f.uc.Delete(context.Background(), &DeleteRequest{TherapistID: therapistID, JalaliDate: "bad"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

// failingCreate удаляет старое исключение, но не может записать новое
type failingCreate struct {
	*memory.ScheduleRepository
}

func (failingCreate) CreateOverride(context.Context, *domain.ScheduleOverride) (*domain.ScheduleOverride, error) {
	return nil, errors.New("db down")
}

func TestExecute_FailedReplaceRollsBack(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), customHours("09:00", "14:00"))
	require.NoError(t, err)

	uc := NewUseCase(f.store.Appointments(), failingCreate{f.store.Schedules()}, f.store, f.store, f.metrics,
		domain.DefaultOverrideBreakMinutes, tehran, logger.NewNop())

	_, err = uc.Execute(context.Background(), customHours("10:00", "12:00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	stored, err := f.store.Schedules().GetOverride(context.Background(), therapistID, monday)
	require.NoError(t, err, "previous override is restored")
	require.NotNil(t, stored.StartTime)
	require.NotNil(t, stored.EndTime)
	assert.Equal(t, types.TimeString("09:00"), *stored.StartTime)
	assert.Equal(t, types.TimeString("14:00"), *stored.EndTime)

	all, err := f.store.Schedules().ListOverrides(context.Background(), therapistID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

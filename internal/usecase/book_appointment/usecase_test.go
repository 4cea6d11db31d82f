package book_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/infra/storage/memory"
	"github.com/m04kA/massage-scheduler/internal/service/availability"
	"github.com/m04kA/massage-scheduler/pkg/clock"
	"github.com/m04kA/massage-scheduler/pkg/logger"
	"github.com/m04kA/massage-scheduler/pkg/ptr"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

const (
	therapistID = int64(5)

	service60       = int64(1)
	service30       = int64(2)
	serviceDisabled = int64(3)

	// 1403-01-06 = 2024-03-25, понедельник
	mondayJalali = "1403-01-06"
)

var tehran = time.FixedZone("IRST", 3*3600+1800)

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *recordingMetrics) ObserveBooking(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) count(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.outcomes {
		if o == outcome {
			n++
		}
	}
	return n
}

type fixture struct {
	store   *memory.Store
	clock   *clock.Fixed
	metrics *recordingMetrics
	uc      *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	store.SeedService(domain.TherapistService{TherapistID: therapistID, ServiceID: service60, Name: "Swedish 60", DurationMinutes: 60, Price: decimal.NewFromInt(1_200_000), IsActive: true})
	store.SeedService(domain.TherapistService{TherapistID: therapistID, ServiceID: service30, Name: "Back 30", DurationMinutes: 30, Price: decimal.NewFromInt(700_000), IsActive: true})
	store.SeedService(domain.TherapistService{TherapistID: therapistID, ServiceID: serviceDisabled, Name: "Hot stone", DurationMinutes: 90, Price: decimal.NewFromInt(2_000_000), IsActive: false})

	require.NoError(t, store.Schedules().CreateWeekly(context.Background(), therapistID, []domain.TherapistSchedule{
		{Weekday: domain.Monday, StartTime: "09:00", EndTime: "17:00", BreakMinutes: 10, IsActive: true},
	}))

	log := logger.NewNop()
	c := clock.NewFixed(time.Date(2024, 3, 24, 12, 0, 0, 0, tehran))
	m := &recordingMetrics{}

	uc := NewUseCase(
		store.Appointments(),
		store.Catalog(),
		store,
		availability.NewResolver(store.Schedules(), domain.DefaultOverrideBreakMinutes, log),
		availability.NewOverlapDetector(store.Appointments(), log),
		store,
		c,
		m,
		tehran,
		log,
	)

	return &fixture{store: store, clock: c, metrics: m, uc: uc}
}

func (f *fixture) book(serviceID int64, start string) (*Response, error) {
	return f.uc.Execute(context.Background(), &Request{
		TherapistID: therapistID,
		ServiceID:   serviceID,
		JalaliDate:  mondayJalali,
		StartTime:   types.TimeString(start),
		Client:      domain.ClientInfo{Name: ptr.Ptr("Client " + start)},
	})
}

func TestExecute_MondayScenario(t *testing.T) {
	f := newFixture(t)

	first, err := f.book(service60, "10:00")
	require.NoError(t, err)
	assert.Equal(t, "10:00", first.StartTime)
	assert.Equal(t, "11:00", first.EndTime)
	assert.Equal(t, 60, first.DurationMinutes)
	assert.Equal(t, "confirmed", first.Status)
	assert.Equal(t, "Swedish 60", first.ServiceName)
	assert.Equal(t, mondayJalali, first.JalaliDate)
	assert.True(t, first.Price.Equal(decimal.NewFromInt(1_200_000)))

	_, err = f.book(service30, "10:30")
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	third, err := f.book(service30, "11:00")
	require.NoError(t, err, "adjacent slot does not overlap")
	assert.Equal(t, "11:30", third.EndTime)

	assert.Equal(t, 2, f.metrics.count(OutcomeBooked))
	assert.Equal(t, 1, f.metrics.count(OutcomeSlotUnavailable))
}

func TestExecute_PriceIsSnapshotted(t *testing.T) {
	f := newFixture(t)

	resp, err := f.book(service60, "14:00")
	require.NoError(t, err)

	f.store.SeedService(domain.TherapistService{TherapistID: therapistID, ServiceID: service60, Name: "Swedish 60", DurationMinutes: 90, Price: decimal.NewFromInt(9_999_999), IsActive: true})

	stored, err := f.store.Appointments().GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, stored.DurationMinutes)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(1_200_000)))
	assert.Equal(t, stored.StartsAt.Add(60*time.Minute), stored.EndsAt)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	f := newFixture(t)

	resp, err := f.book(service60, "10:00")
	require.NoError(t, err)

	stored, err := f.store.Appointments().GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	cancelled, err := domain.CancelAppointment(*stored, "changed plans", 1, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.store.Appointments().UpdateStatus(context.Background(), &cancelled))

	_, err = f.book(service60, "10:00")
	assert.NoError(t, err)
}

func TestExecute_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		req     Request
		now     *time.Time
		wantErr error
		outcome string
	}{
		{
			name:    "unknown service",
			req:     Request{TherapistID: therapistID, ServiceID: 42, JalaliDate: mondayJalali, StartTime: "10:00"},
			wantErr: ErrServiceNotFound,
			outcome: OutcomeServiceNotFound,
		},
		{
			name:    "disabled service",
			req:     Request{TherapistID: therapistID, ServiceID: serviceDisabled, JalaliDate: mondayJalali, StartTime: "10:00"},
			wantErr: ErrServiceNotFound,
			outcome: OutcomeServiceNotFound,
		},
		{
			name:    "invalid jalali date",
			req:     Request{TherapistID: therapistID, ServiceID: service60, JalaliDate: "1403-07-31", StartTime: "10:00"},
			wantErr: ErrInvalidDate,
			outcome: OutcomeInvalid,
		},
		{
			name:    "invalid start time",
			req:     Request{TherapistID: therapistID, ServiceID: service60, JalaliDate: mondayJalali, StartTime: "25:00"},
			wantErr: ErrInvalidInput,
			outcome: OutcomeInvalid,
		},
		{
			name:    "invalid email",
			req:     Request{TherapistID: therapistID, ServiceID: service60, JalaliDate: mondayJalali, StartTime: "10:00", Client: domain.ClientInfo{Email: ptr.Ptr("nope")}},
			wantErr: ErrInvalidInput,
			outcome: OutcomeInvalid,
		},
		{
			name:    "ends after working hours",
			req:     Request{TherapistID: therapistID, ServiceID: service60, JalaliDate: mondayJalali, StartTime: "16:30"},
			wantErr: ErrOutsideWorkingHours,
			outcome: OutcomeOutsideHours,
		},
		{
			name:    "day off",
			req:     Request{TherapistID: therapistID, ServiceID: service60, JalaliDate: "1403-01-07", StartTime: "10:00"},
			wantErr: ErrOutsideWorkingHours,
			outcome: OutcomeOutsideHours,
		},
		{
			name:    "start equals now",
			req:     Request{TherapistID: therapistID, ServiceID: service60, JalaliDate: mondayJalali, StartTime: "10:00"},
			now:     ptr.Ptr(time.Date(2024, 3, 25, 10, 0, 0, 0, tehran)),
			wantErr: ErrPastTime,
			outcome: OutcomePastTime,
		},
		{
			name:    "start in the past",
			req:     Request{TherapistID: therapistID, ServiceID: service60, JalaliDate: mondayJalali, StartTime: "10:00"},
			now:     ptr.Ptr(time.Date(2024, 3, 26, 9, 0, 0, 0, tehran)),
			wantErr: ErrPastTime,
			outcome: OutcomePastTime,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			if tc.now != nil {
				f.clock.Set(*tc.now)
			}

			req := tc.req
			_, err := f.uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, 1, f.metrics.count(tc.outcome))

			all, err := f.store.Appointments().List(context.Background(), domain.AppointmentFilter{TherapistID: therapistID})
			require.NoError(t, err)
			assert.Empty(t, all, "nothing is persisted on rejection")
		})
	}
}

func TestExecute_OverrideHours(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.Schedules().CreateOverride(context.Background(), &domain.ScheduleOverride{
		TherapistID: therapistID,
		Date:        time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
		JalaliDate:  mondayJalali,
		Type:        domain.OverrideCustomHours,
		StartTime:   ptr.Ptr(types.TimeString("12:00")),
		EndTime:     ptr.Ptr(types.TimeString("14:00")),
	})
	require.NoError(t, err)

	_, err = f.book(service60, "10:00")
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	_, err = f.book(service60, "12:00")
	assert.NoError(t, err)
}

func TestExecute_ConcurrentOverlappingBookings(t *testing.T) {
	f := newFixture(t)

	starts := []string{"10:00", "10:15", "10:30", "10:45", "10:05", "10:00", "10:20", "10:50"}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	for _, start := range starts {
		wg.Add(1)
		go func(start string) {
			defer wg.Done()
			_, err := f.book(service60, start)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, ErrSlotUnavailable):
				rejected++
			}
		}(start)
	}
	wg.Wait()

	// все интервалы попарно пересекаются, поэтому проходит ровно одна запись
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, len(starts)-1, rejected)

	all, err := f.store.Appointments().List(context.Background(), domain.AppointmentFilter{TherapistID: therapistID, OnlyBlocking: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestExecute_DifferentTherapistsDoNotBlock(t *testing.T) {
	f := newFixture(t)

	other := therapistID + 1
	f.store.SeedService(domain.TherapistService{TherapistID: other, ServiceID: service60, Name: "Swedish 60", DurationMinutes: 60, Price: decimal.NewFromInt(1_000_000), IsActive: true})
	require.NoError(t, f.store.Schedules().CreateWeekly(context.Background(), other, []domain.TherapistSchedule{
		{Weekday: domain.Monday, StartTime: "09:00", EndTime: "17:00", IsActive: true},
	}))

	_, err := f.book(service60, "10:00")
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{
		TherapistID: other,
		ServiceID:   service60,
		JalaliDate:  mondayJalali,
		StartTime:   "10:00",
	})
	assert.NoError(t, err)
}

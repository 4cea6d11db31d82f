package cancel_appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/infra/storage/memory"
	"github.com/m04kA/massage-scheduler/pkg/clock"
	"github.com/m04kA/massage-scheduler/pkg/logger"
)

const (
	therapistID = int64(9)
	actorID     = int64(100)
)

var (
	tehran  = time.FixedZone("IRST", 3*3600+1800)
	session = time.Date(2024, 3, 25, 10, 0, 0, 0, tehran)
)

type fixture struct {
	store *memory.Store
	clock *clock.Fixed
	uc    *UseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	c := clock.NewFixed(session.Add(-48 * time.Hour))
	return &fixture{
		store: store,
		clock: c,
		uc:    NewUseCase(store.Appointments(), store, c, tehran, logger.NewNop()),
	}
}

func (f *fixture) seed(t *testing.T, start time.Time) *domain.Appointment {
	t.Helper()
	a := domain.NewAppointment(therapistID, domain.TherapistService{
		ServiceID:       1,
		DurationMinutes: 60,
		Price:           decimal.NewFromInt(1_000_000),
	}, start, domain.ClientInfo{})
	created, err := f.store.Appointments().Create(context.Background(), &a)
	require.NoError(t, err)
	return created
}

func TestPolicy_RefundTiers(t *testing.T) {
	cases := []struct {
		name      string
		until     time.Duration
		canCancel bool
		percent   int
		amount    int64
	}{
		{"two days ahead", 48 * time.Hour, true, 100, 1_000_000},
		{"exactly 24h", 24 * time.Hour, true, 100, 1_000_000},
		{"23h59m", 23*time.Hour + 59*time.Minute, true, 50, 500_000},
		{"exactly 6h", 6 * time.Hour, true, 50, 500_000},
		{"5h59m", 5*time.Hour + 59*time.Minute, true, 0, 0},
		{"at start", 0, true, 0, 0},
		{"already started", -time.Minute, false, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			a := f.seed(t, session)
			f.clock.Set(session.Add(-tc.until))

			policy, err := f.uc.Policy(context.Background(), a.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.canCancel, policy.CanCancel)
			assert.Equal(t, tc.percent, policy.RefundPercentage)
			assert.True(t, policy.RefundAmount.Equal(decimal.NewFromInt(tc.amount)), "amount %s", policy.RefundAmount)
		})
	}
}

func TestPolicy_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Policy(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_Cancels(t *testing.T) {
	f := newFixture()
	a := f.seed(t, session)
	f.clock.Set(session.Add(-10 * time.Hour))

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, Reason: "sick", ActorID: actorID})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Appointment.Status)
	require.NotNil(t, resp.Appointment.CancellationReason)
	assert.Equal(t, "sick", *resp.Appointment.CancellationReason)
	assert.Equal(t, 50, resp.Policy.RefundPercentage)

	stored, err := f.store.Appointments().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	require.NotNil(t, stored.CancelledAt)
	assert.True(t, stored.CancelledAt.Equal(f.clock.Now()))
	require.NotNil(t, stored.CancelledBy)
	assert.Equal(t, actorID, *stored.CancelledBy)

	// повторная отмена невозможна
	_, err = f.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, ActorID: actorID})
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestExecute_Rejections(t *testing.T) {
	f := newFixture()
	a := f.seed(t, session)

	f.clock.Set(session.Add(time.Minute))
	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, ActorID: actorID})
	assert.ErrorIs(t, err, ErrNotCancellable)

	stored, err := f.store.Appointments().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status, "state is unchanged")

	_, err = f.uc.Execute(context.Background(), &Request{AppointmentID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{AppointmentID: a.ID, Reason: strings.Repeat("x", domain.MaxCancellationReasonLength+1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{AppointmentID: 404, ActorID: actorID})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestBulkCancel_ContinuesPastFailures(t *testing.T) {
	f := newFixture()
	future1 := f.seed(t, session)
	future2 := f.seed(t, session.Add(2*time.Hour))
	past := f.seed(t, session.Add(-72*time.Hour))

	resp, err := f.uc.BulkCancel(context.Background(), &BulkRequest{
		AppointmentIDs: []int64{future1.ID, past.ID, 404, future2.ID, future1.ID},
		Reason:         "therapist is ill",
		ActorID:        actorID,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Requested, "duplicates are ignored")
	assert.Equal(t, 2, resp.Cancelled)
	require.Len(t, resp.Failed, 2)
	assert.Equal(t, past.ID, resp.Failed[0].AppointmentID)
	assert.Equal(t, int64(404), resp.Failed[1].AppointmentID)

	for _, id := range []int64{future1.ID, future2.ID} {
		stored, err := f.store.Appointments().GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, stored.Status)
	}
}

func TestBulkCancel_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.BulkCancel(context.Background(), &BulkRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	ids := make([]int64, domain.MaxBulkCancelSize+1)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	_, err = f.uc.BulkCancel(context.Background(), &BulkRequest{AppointmentIDs: ids})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// cancelAfterFirst отменяет контекст запроса после первой успешной отмены записи
type cancelAfterFirst struct {
	*memory.AppointmentRepository
	cancel context.CancelFunc
}

func (r cancelAfterFirst) UpdateStatus(ctx context.Context, a *domain.Appointment) error {
	if err := r.AppointmentRepository.UpdateStatus(ctx, a); err != nil {
		return err
	}
	r.cancel()
	return nil
}

func TestBulkCancel_InterruptedKeepsPartialResult(t *testing.T) {
	f := newFixture()
	first := f.seed(t, session)
	second := f.seed(t, session.Add(2*time.Hour))
	third := f.seed(t, session.Add(4*time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uc := NewUseCase(cancelAfterFirst{f.store.Appointments(), cancel}, f.store, f.clock, tehran, logger.NewNop())

	resp, err := uc.BulkCancel(ctx, &BulkRequest{
		AppointmentIDs: []int64{first.ID, second.ID, third.ID},
		ActorID:        actorID,
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, resp, "committed cancellations are reported")
	assert.Equal(t, 3, resp.Requested)
	assert.Equal(t, 1, resp.Cancelled)
	require.Len(t, resp.Failed, 2)
	assert.Equal(t, second.ID, resp.Failed[0].AppointmentID)
	assert.Equal(t, third.ID, resp.Failed[1].AppointmentID)

	stored, err := f.store.Appointments().GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	stored, err = f.store.Appointments().GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}

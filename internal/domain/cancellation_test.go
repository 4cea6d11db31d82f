package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateCancellation_RefundTiers(t *testing.T) {
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	price := decimal.NewFromInt(1_200_000)

	tests := []struct {
		name          string
		until         time.Duration
		canCancel     bool
		percent       int
		refundAmount  decimal.Decimal
		expectMessage string
	}{
		{"exactly 24h", 24 * time.Hour, true, 100, decimal.NewFromInt(1_200_000), MsgFullRefund},
		{"two days", 48 * time.Hour, true, 100, decimal.NewFromInt(1_200_000), MsgFullRefund},
		{"23h59m", 23*time.Hour + 59*time.Minute, true, 50, decimal.NewFromInt(600_000), MsgPartialRefund},
		{"exactly 6h", 6 * time.Hour, true, 50, decimal.NewFromInt(600_000), MsgPartialRefund},
		{"5h59m", 5*time.Hour + 59*time.Minute, true, 0, decimal.Zero, MsgNoRefund},
		{"starts now", 0, true, 0, decimal.Zero, MsgNoRefund},
		{"already started", -time.Minute, false, 0, decimal.Zero, MsgAlreadyStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Appointment{
				StartsAt: now.Add(tt.until),
				EndsAt:   now.Add(tt.until + time.Hour),
				Price:    price,
				Status:   StatusConfirmed,
			}

			d := EvaluateCancellation(a, now)

			assert.Equal(t, tt.canCancel, d.CanCancel)
			assert.Equal(t, tt.percent, d.RefundPercentage)
			assert.True(t, tt.refundAmount.Equal(d.RefundAmount), "refund %s != %s", d.RefundAmount, tt.refundAmount)
			assert.Equal(t, tt.expectMessage, d.Message)
		})
	}
}

func TestEvaluateCancellation_NotConfirmed(t *testing.T) {
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

	for _, status := range []AppointmentStatus{StatusCancelled, StatusCompleted, StatusNoShow} {
		a := Appointment{StartsAt: now.Add(72 * time.Hour), Status: status, Price: decimal.NewFromInt(100)}

		d := EvaluateCancellation(a, now)

		assert.False(t, d.CanCancel, status)
		assert.Equal(t, MsgNotConfirmed, d.Message)
	}
}

func TestCancelAppointment(t *testing.T) {
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	a := Appointment{ID: 7, Status: StatusConfirmed}

	cancelled, err := CancelAppointment(a, "sick", 42, now)

	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, "sick", *cancelled.CancellationReason)
	assert.Equal(t, now, *cancelled.CancelledAt)
	assert.Equal(t, int64(42), *cancelled.CancelledBy)
	assert.Equal(t, StatusConfirmed, a.Status, "original must not change")

	_, err = CancelAppointment(cancelled, "again", 42, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusCompleted))
	assert.True(t, CanTransition(StatusConfirmed, StatusNoShow))
	assert.False(t, CanTransition(StatusConfirmed, StatusConfirmed))

	for _, terminal := range []AppointmentStatus{StatusCancelled, StatusCompleted, StatusNoShow} {
		for _, to := range AllStatuses {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	s, err := ParseAppointmentStatus("no_show")
	assert.NoError(t, err)
	assert.Equal(t, StatusNoShow, s)

	_, err = ParseAppointmentStatus("pending")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

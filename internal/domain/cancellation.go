package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CancellationDecision result of applying the cancellation policy.
// The refund is informational; no payment is performed.
type CancellationDecision struct {
	CanCancel        bool
	RefundPercentage int
	RefundAmount     decimal.Decimal
	HoursUntilStart  float64
	Message          string
}

// Policy messages
const (
	MsgFullRefund    = "cancellation is free of charge"
	MsgPartialRefund = "50% of the price will be refunded"
	MsgNoRefund      = "less than 6 hours before the session, no refund"
	MsgAlreadyStart  = "the session has already started"
	MsgNotConfirmed  = "only confirmed appointments can be cancelled"
)

// EvaluateCancellation computes cancellation eligibility and refund tier.
//
//	start - now < 0        not cancellable
//	start - now >= 24h     100%
//	6h <= start - now < 24h 50%
//	0 <= start - now < 6h  0%
func EvaluateCancellation(a Appointment, now time.Time) CancellationDecision {
	until := a.StartsAt.Sub(now)
	decision := CancellationDecision{
		HoursUntilStart: until.Hours(),
		RefundAmount:    decimal.Zero,
	}

	if a.Status != StatusConfirmed {
		decision.Message = MsgNotConfirmed
		return decision
	}

	if until < 0 {
		decision.Message = MsgAlreadyStart
		return decision
	}

	decision.CanCancel = true
	switch {
	case until >= FullRefundHours*time.Hour:
		decision.RefundPercentage = FullRefundPercent
		decision.Message = MsgFullRefund
	case until >= PartialRefundHours*time.Hour:
		decision.RefundPercentage = PartialRefundPercent
		decision.Message = MsgPartialRefund
	default:
		decision.RefundPercentage = NoRefundPercent
		decision.Message = MsgNoRefund
	}

	decision.RefundAmount = a.Price.
		Mul(decimal.NewFromInt(int64(decision.RefundPercentage))).
		Div(decimal.NewFromInt(100)).
		Round(2)

	return decision
}

package domain

// Schedule validation constants
const (
	MinWorkingWindowMinutes     = 30
	MaxBreakMinutes             = 120
	DefaultOverrideBreakMinutes = 15
)

// Cancellation policy thresholds (hours until start)
const (
	FullRefundHours    = 24
	PartialRefundHours = 6

	FullRefundPercent    = 100
	PartialRefundPercent = 50
	NoRefundPercent      = 0
)

// Business validation constants
const (
	MaxCancellationReasonLength = 500
	MaxOverrideReasonLength     = 500
	MaxBulkCancelSize           = 100
	DefaultSlotStepMinutes      = 15
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses statuses that occupy the therapist's time
var BlockingStatuses = []AppointmentStatus{
	StatusConfirmed,
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment.
// confirmed is the only non-terminal status.
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
)

// AllStatuses lists every appointment status
var AllStatuses = []AppointmentStatus{
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// ParseAppointmentStatus converts a string into a known status
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// Valid reports whether the status is one of the known values
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition may leave this status
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case StatusConfirmed:
		return false
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return true
	}
}

// BlocksTime reports whether an appointment in this status occupies the therapist's time
func (s AppointmentStatus) BlocksTime() bool {
	switch s {
	case StatusConfirmed:
		return true
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return false
	default:
		return false
	}
}

// CanTransition reports whether from -> to is an allowed status change
func CanTransition(from, to AppointmentStatus) bool {
	if from.IsTerminal() || !to.Valid() {
		return false
	}
	switch to {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	case StatusConfirmed:
		return false
	default:
		return false
	}
}

// ClientInfo optional contact details of the client
type ClientInfo struct {
	Name  *string
	Phone *string
	Email *string
}

// Appointment represents a booked massage session.
// Duration and price are snapshotted from the catalog at creation time.
type Appointment struct {
	ID              int64
	TherapistID     int64
	ServiceID       int64
	Client          ClientInfo
	StartsAt        time.Time
	EndsAt          time.Time
	DurationMinutes int
	Price           decimal.Decimal
	Status          AppointmentStatus

	CancellationReason *string
	CancelledAt        *time.Time
	CancelledBy        *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the half-open [StartsAt, EndsAt) interval of the appointment
func (a Appointment) Range() TimeRange {
	return TimeRange{Start: a.StartsAt, End: a.EndsAt}
}

// NewAppointment builds a confirmed appointment from a catalog entry
func NewAppointment(therapistID int64, service TherapistService, startsAt time.Time, client ClientInfo) Appointment {
	return Appointment{
		TherapistID:     therapistID,
		ServiceID:       service.ServiceID,
		Client:          client,
		StartsAt:        startsAt,
		EndsAt:          startsAt.Add(time.Duration(service.DurationMinutes) * time.Minute),
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		Status:          StatusConfirmed,
	}
}

// TransitionStatus returns a copy of the appointment moved to the given status
func TransitionStatus(a Appointment, to AppointmentStatus, now time.Time) (Appointment, error) {
	if !CanTransition(a.Status, to) {
		return a, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}
	a.Status = to
	a.UpdatedAt = now
	return a, nil
}

// CancelAppointment returns a cancelled copy of the appointment with reason and timestamp recorded
func CancelAppointment(a Appointment, reason string, actorID int64, now time.Time) (Appointment, error) {
	cancelled, err := TransitionStatus(a, StatusCancelled, now)
	if err != nil {
		return a, err
	}
	cancelled.CancellationReason = &reason
	cancelled.CancelledAt = &now
	cancelled.CancelledBy = &actorID
	return cancelled, nil
}

// AppointmentFilter filter for listing a therapist's appointments.
// From/To select appointments intersecting [From, To).
type AppointmentFilter struct {
	TherapistID  int64
	From         *time.Time
	To           *time.Time
	Status       *AppointmentStatus
	OnlyBlocking bool   // only statuses that occupy time
	ExcludeID    *int64 // appointment to ignore (e.g. when rescheduling)
}

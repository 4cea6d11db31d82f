package cancel_appointment

import (
	cancelAppointment "github.com/m04kA/massage-scheduler/internal/usecase/cancel_appointment"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// BulkCancelRequest HTTP request model
type BulkCancelRequest struct {
	AppointmentIDs     []int64 `json:"appointmentIds"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CancelAppointmentRequest) ToUseCaseRequest(appointmentID, actorID int64) *cancelAppointment.Request {
	return &cancelAppointment.Request{
		AppointmentID: appointmentID,
		Reason:        reasonOf(r.CancellationReason),
		ActorID:       actorID,
	}
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *BulkCancelRequest) ToUseCaseRequest(actorID int64) *cancelAppointment.BulkRequest {
	return &cancelAppointment.BulkRequest{
		AppointmentIDs: r.AppointmentIDs,
		Reason:         reasonOf(r.CancellationReason),
		ActorID:        actorID,
	}
}

func reasonOf(reason *string) string {
	if reason == nil {
		return ""
	}
	return *reason
}

package cancel_appointment

import (
	"context"

	cancelAppointment "github.com/m04kA/massage-scheduler/internal/usecase/cancel_appointment"
)

type CancelAppointmentUseCase interface {
	Policy(ctx context.Context, appointmentID int64) (*cancelAppointment.PolicyResponse, error)
	Execute(ctx context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error)
	BulkCancel(ctx context.Context, req *cancelAppointment.BulkRequest) (*cancelAppointment.BulkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

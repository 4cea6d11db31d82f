package get_day_appointments

import (
	"context"

	"github.com/m04kA/massage-scheduler/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByTherapistAndDate(ctx context.Context, req *models.ListByDateRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

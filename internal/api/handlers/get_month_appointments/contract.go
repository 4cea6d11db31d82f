package get_month_appointments

import (
	"context"

	"github.com/m04kA/massage-scheduler/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByTherapistAndJalaliMonth(ctx context.Context, req *models.ListByMonthRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_availability

import (
	"context"

	"github.com/m04kA/massage-scheduler/internal/service/schedules/models"
)

type ScheduleService interface {
	GetAvailability(ctx context.Context, therapistID int64, jalaliDate string) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

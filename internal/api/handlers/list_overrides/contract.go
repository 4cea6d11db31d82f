package list_overrides

import (
	"context"

	"github.com/m04kA/massage-scheduler/internal/service/schedules/models"
)

type ScheduleService interface {
	ListOverrides(ctx context.Context, req *models.ListOverridesRequest) (*models.OverrideListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

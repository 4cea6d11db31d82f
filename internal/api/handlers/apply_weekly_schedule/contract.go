package apply_weekly_schedule

import (
	"context"

	"github.com/m04kA/massage-scheduler/internal/service/schedules/models"
	applyWeeklySchedule "github.com/m04kA/massage-scheduler/internal/usecase/apply_weekly_schedule"
)

type ApplyWeeklyScheduleUseCase interface {
	Execute(ctx context.Context, req *applyWeeklySchedule.Request) (*models.WeeklyScheduleResponse, error)
	ConflictReport(ctx context.Context, req *applyWeeklySchedule.Request) (*models.ConflictReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package apply_override

import (
	"context"

	"github.com/m04kA/massage-scheduler/internal/service/schedules/models"
	applyOverride "github.com/m04kA/massage-scheduler/internal/usecase/apply_override"
)

type ApplyOverrideUseCase interface {
	Execute(ctx context.Context, req *applyOverride.Request) (*models.OverrideResponse, error)
	ConflictReport(ctx context.Context, req *applyOverride.Request) (*models.ConflictReportResponse, error)
	Delete(ctx context.Context, req *applyOverride.DeleteRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

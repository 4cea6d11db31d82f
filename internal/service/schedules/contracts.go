package schedules

import (
	"context"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeekly(ctx context.Context, therapistID int64) ([]domain.TherapistSchedule, error)
	ListOverrides(ctx context.Context, therapistID int64, from, to *time.Time) ([]domain.ScheduleOverride, error)
}

// AvailabilityResolver вычисляет рабочие часы на дату
type AvailabilityResolver interface {
	Resolve(ctx context.Context, therapistID int64, date time.Time) (domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

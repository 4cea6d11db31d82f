package availability

import (
	"context"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeekly(ctx context.Context, therapistID int64) ([]domain.TherapistSchedule, error)
	GetOverride(ctx context.Context, therapistID int64, date time.Time) (*domain.ScheduleOverride, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

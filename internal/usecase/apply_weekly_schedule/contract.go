package apply_weekly_schedule

import (
	"context"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	DeleteWeekly(ctx context.Context, therapistID int64) error
	CreateWeekly(ctx context.Context, therapistID int64, days []domain.TherapistSchedule) error
	GetWeekly(ctx context.Context, therapistID int64) ([]domain.TherapistSchedule, error)
	ListOverrides(ctx context.Context, therapistID int64, from, to *time.Time) ([]domain.ScheduleOverride, error)
}

// Locker транзакционные блокировки расписания терапевта
type Locker interface {
	LockTherapistExclusive(ctx context.Context, therapistID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock интерфейс для получения текущего времени
type Clock interface {
	Now() time.Time
}

// Metrics счётчики отклонённых изменений расписания
type Metrics interface {
	ObserveConflict(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

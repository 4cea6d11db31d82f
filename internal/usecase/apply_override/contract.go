package apply_override

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
	GetWeekly(ctx context.Context, therapistID int64) ([]domain.TherapistSchedule, error)
	CreateOverride(ctx context.Context, override *domain.ScheduleOverride) (*domain.ScheduleOverride, error)
	DeleteOverride(ctx context.Context, therapistID int64, date time.Time) (bool, error)
}

// Locker транзакционные блокировки расписания терапевта
type Locker interface {
	LockTherapistShared(ctx context.Context, therapistID int64) error
	LockTherapistDay(ctx context.Context, therapistID int64, day time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

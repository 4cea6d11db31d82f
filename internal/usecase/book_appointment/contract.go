package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// CatalogRepository каталог услуг терапевтов
type CatalogRepository interface {
	GetActiveService(ctx context.Context, therapistID, serviceID int64) (*domain.TherapistService, error)
}

// Locker транзакционные блокировки расписания терапевта
type Locker interface {
	LockTherapistShared(ctx context.Context, therapistID int64) error
	LockTherapistDay(ctx context.Context, therapistID int64, day time.Time) error
}

// AvailabilityResolver вычисляет рабочие часы на дату
type AvailabilityResolver interface {
	Resolve(ctx context.Context, therapistID int64, date time.Time) (domain.Availability, error)
}

// OverlapDetector проверяет пересечение с подтверждёнными записями
type OverlapDetector interface {
	HasOverlap(ctx context.Context, therapistID int64, r domain.TimeRange, excludeID *int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock интерфейс для получения текущего времени
type Clock interface {
	Now() time.Time
}

// Metrics счётчики исходов бронирования
type Metrics interface {
	ObserveBooking(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

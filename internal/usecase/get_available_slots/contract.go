package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/massage-scheduler/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// CatalogRepository каталог услуг терапевтов
type CatalogRepository interface {
	GetActiveService(ctx context.Context, therapistID, serviceID int64) (*domain.TherapistService, error)
}

// AvailabilityResolver вычисляет рабочие часы на дату
type AvailabilityResolver interface {
	Resolve(ctx context.Context, therapistID int64, date time.Time) (domain.Availability, error)
}

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

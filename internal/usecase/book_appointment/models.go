package book_appointment

import (
	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/service/appointments/models"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

// Request модель запроса на запись к терапевту
type Request struct {
	TherapistID int64            // ID терапевта
	ServiceID   int64            // ID услуги
	JalaliDate  string           // Дата по джалали ("1403-01-15" или "1403/01/15")
	StartTime   types.TimeString // Время начала (например, "10:00")
	Client      domain.ClientInfo
}

// Response созданная запись вместе с названием услуги
type Response struct {
	*models.AppointmentResponse
	ServiceName string `json:"serviceName"`
}

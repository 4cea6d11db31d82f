package book_appointment

import (
	"github.com/m04kA/massage-scheduler/internal/domain"
	bookAppointment "github.com/m04kA/massage-scheduler/internal/usecase/book_appointment"
	"github.com/m04kA/massage-scheduler/pkg/types"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	TherapistID int64   `json:"therapistId"`
	ServiceID   int64   `json:"serviceId"`
	Date        string  `json:"date"`      // по джалали, "1403-01-15"
	StartTime   string  `json:"startTime"` // "10:00"
	ClientName  *string `json:"clientName,omitempty"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	ClientEmail *string `json:"clientEmail,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом времени)
func (r *BookAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		TherapistID: r.TherapistID,
		ServiceID:   r.ServiceID,
		JalaliDate:  r.Date,
		StartTime:   startTime,
		Client: domain.ClientInfo{
			Name:  r.ClientName,
			Phone: r.ClientPhone,
			Email: r.ClientEmail,
		},
	}, nil
}

package cancel_appointment

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/service/appointments/models"
)

// Request запрос на отмену записи
type Request struct {
	AppointmentID int64
	Reason        string
	ActorID       int64 // кто отменяет (из заголовка авторизации)
}

// BulkRequest запрос на массовую отмену
type BulkRequest struct {
	AppointmentIDs []int64
	Reason         string
	ActorID        int64
}

// PolicyResponse условия отмены записи на текущий момент.
// Возврат носит информационный характер: оплата не проводится.
type PolicyResponse struct {
	AppointmentID    int64           `json:"appointmentId"`
	CanCancel        bool            `json:"canCancel"`
	RefundPercentage int             `json:"refundPercentage"`
	RefundAmount     decimal.Decimal `json:"refundAmount"`
	HoursUntilStart  float64         `json:"hoursUntilStart"`
	Message          string          `json:"message"`
}

// Response отменённая запись и применённые условия
type Response struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Policy      *PolicyResponse             `json:"policy"`
}

// BulkFailure запись, которую не удалось отменить
type BulkFailure struct {
	AppointmentID int64  `json:"appointmentId"`
	Error         string `json:"error"`
}

// BulkResponse результат массовой отмены
type BulkResponse struct {
	Requested int           `json:"requested"`
	Cancelled int           `json:"cancelled"`
	Failed    []BulkFailure `json:"failed"`
}

func fromDecision(appointmentID int64, d domain.CancellationDecision) *PolicyResponse {
	return &PolicyResponse{
		AppointmentID:    appointmentID,
		CanCancel:        d.CanCancel,
		RefundPercentage: d.RefundPercentage,
		RefundAmount:     d.RefundAmount,
		HoursUntilStart:  d.HoursUntilStart,
		Message:          d.Message,
	}
}

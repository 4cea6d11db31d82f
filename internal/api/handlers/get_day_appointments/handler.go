package get_day_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/massage-scheduler/internal/api/handlers"
	"github.com/m04kA/massage-scheduler/internal/service/appointments"
	"github.com/m04kA/massage-scheduler/internal/service/appointments/models"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректная дата, ожидается дата по джалали YYYY-MM-DD"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/appointments
// Query params: date (обязательно, по джалали), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := handlers.PathInt64(r, "therapistId")
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/appointments - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /therapists/{id}/appointments - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.ListByTherapistAndDate(r.Context(), &models.ListByDateRequest{
		TherapistID: therapistID,
		JalaliDate:  date,
		Status:      handlers.QueryString(r, "status"),
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidDate):
			h.logger.Warn("GET /therapists/{id}/appointments - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /therapists/{id}/appointments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /therapists/{id}/appointments - Failed to list appointments: therapist_id=%d, error=%v",
				therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /therapists/{id}/appointments - Appointments retrieved: therapist_id=%d, date=%s, count=%d",
		therapistID, date, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

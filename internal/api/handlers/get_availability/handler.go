package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/massage-scheduler/internal/api/handlers"
	"github.com/m04kA/massage-scheduler/internal/service/schedules"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректная дата, ожидается дата по джалали YYYY-MM-DD"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/availability?date=1403-01-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := handlers.PathInt64(r, "therapistId")
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/availability - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), therapistID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidDate), errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("GET /therapists/{id}/availability - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /therapists/{id}/availability - Failed to resolve availability: therapist_id=%d, error=%v",
				therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

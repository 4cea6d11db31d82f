package get_weekly_schedule

import (
	"net/http"

	"github.com/m04kA/massage-scheduler/internal/api/handlers"
)

const msgInvalidTherapistID = "некорректный ID терапевта"

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

// Handle GET /api/v1/therapists/{therapistId}/schedule
// Пустой шаблон не ошибка: терапевт просто не работает по расписанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := handlers.PathInt64(r, "therapistId")
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/schedule - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	result, err := h.service.GetWeeklySchedule(r.Context(), therapistID)
	if err != nil {
		h.logger.Error("GET /therapists/{id}/schedule - Failed to get schedule: therapist_id=%d, error=%v",
			therapistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /therapists/{id}/schedule - Schedule retrieved: therapist_id=%d, days=%d",
		therapistID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}

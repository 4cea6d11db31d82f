package list_overrides

import (
	"errors"
	"net/http"

	"github.com/m04kA/massage-scheduler/internal/api/handlers"
	"github.com/m04kA/massage-scheduler/internal/service/schedules"
	"github.com/m04kA/massage-scheduler/internal/service/schedules/models"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgInvalidPeriod      = "некорректный период, ожидаются даты по джалали from <= to"
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

// Handle GET /api/v1/therapists/{therapistId}/overrides
// Query params: from, to (опционально, по джалали, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := handlers.PathInt64(r, "therapistId")
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/overrides - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	result, err := h.service.ListOverrides(r.Context(), &models.ListOverridesRequest{
		TherapistID: therapistID,
		From:        handlers.QueryString(r, "from"),
		To:          handlers.QueryString(r, "to"),
	})
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidDate), errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("GET /therapists/{id}/overrides - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /therapists/{id}/overrides - Failed to list overrides: therapist_id=%d, error=%v",
				therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /therapists/{id}/overrides - Overrides retrieved: therapist_id=%d, count=%d",
		therapistID, len(result.Overrides))
	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_month_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/massage-scheduler/internal/api/handlers"
	"github.com/m04kA/massage-scheduler/internal/service/appointments"
	"github.com/m04kA/massage-scheduler/internal/service/appointments/models"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgInvalidMonth       = "некорректный год или месяц по джалали"
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

// Handle GET /api/v1/therapists/{therapistId}/appointments/monthly
// Query params: year, month (обязательно, по джалали), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := handlers.PathInt64(r, "therapistId")
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/appointments/monthly - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil {
		h.logger.Warn("GET /therapists/{id}/appointments/monthly - Invalid year/month: %q/%q",
			r.URL.Query().Get("year"), r.URL.Query().Get("month"))
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.service.ListByTherapistAndJalaliMonth(r.Context(), &models.ListByMonthRequest{
		TherapistID: therapistID,
		Year:        year,
		Month:       month,
		Status:      handlers.QueryString(r, "status"),
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidDate):
			h.logger.Warn("GET /therapists/{id}/appointments/monthly - Invalid month: %d-%d", year, month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /therapists/{id}/appointments/monthly - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /therapists/{id}/appointments/monthly - Failed to list appointments: therapist_id=%d, error=%v",
				therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /therapists/{id}/appointments/monthly - Appointments retrieved: therapist_id=%d, month=%d-%02d, count=%d",
		therapistID, year, month, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

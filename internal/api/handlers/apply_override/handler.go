package apply_override

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/massage-scheduler/internal/api/handlers"
	applyOverride "github.com/m04kA/massage-scheduler/internal/usecase/apply_override"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные исключения"
	msgInvalidDate        = "некорректная дата, ожидается дата по джалали YYYY-MM-DD"
	msgInvalidTimeRange   = "время окончания должно быть позже времени начала"
	msgOverrideConflict   = "исключение конфликтует с записями на эту дату"
	msgNotFound           = "исключение на эту дату не найдено"
)

type Handler struct {
	useCase ApplyOverrideUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase ApplyOverrideUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/therapists/{therapistId}/overrides
// Существующее исключение на ту же дату заменяется.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, "POST /therapists/{id}/overrides")
	if !ok {
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.respondError(w, "POST /therapists/{id}/overrides", req.TherapistID, err)
		return
	}

	h.logger.Info("POST /therapists/{id}/overrides - Override saved: therapist_id=%d, date=%s, type=%s",
		req.TherapistID, result.Date, result.Type)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandlePreview POST /api/v1/therapists/{therapistId}/overrides/preview
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, "POST /therapists/{id}/overrides/preview")
	if !ok {
		return
	}

	result, err := h.useCase.ConflictReport(r.Context(), req)
	if err != nil {
		h.respondError(w, "POST /therapists/{id}/overrides/preview", req.TherapistID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/therapists/{therapistId}/overrides/{date}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	therapistID, err := handlers.PathInt64(r, "therapistId")
	if err != nil {
		h.logger.Warn("DELETE /therapists/{id}/overrides/{date} - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}
	date := mux.Vars(r)["date"]

	err = h.useCase.Delete(r.Context(), &applyOverride.DeleteRequest{
		TherapistID: therapistID,
		JalaliDate:  date,
	})
	if err != nil {
		h.respondError(w, "DELETE /therapists/{id}/overrides/{date}", therapistID, err)
		return
	}

	h.logger.Info("DELETE /therapists/{id}/overrides/{date} - Override removed: therapist_id=%d, date=%s",
		therapistID, date)
	handlers.RespondNoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string) (*applyOverride.Request, bool) {
	therapistID, err := handlers.PathInt64(r, "therapistId")
	if err != nil {
		h.logger.Warn("%s - Invalid therapist ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return nil, false
	}

	var body OverrideRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}

	return body.ToUseCaseRequest(therapistID), true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, therapistID int64, err error) {
	switch {
	case errors.Is(err, applyOverride.ErrOverrideConflict):
		h.logger.Warn("%s - Override conflict: therapist_id=%d, error=%v", route, therapistID, err)
		if !handlers.RespondScheduleConflict(w, msgOverrideConflict, err, h.loc) {
			handlers.RespondConflict(w, msgOverrideConflict, nil)
		}

	case errors.Is(err, applyOverride.ErrOverrideNotFound):
		h.logger.Warn("%s - Override not found: therapist_id=%d", route, therapistID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, applyOverride.ErrInvalidDate):
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.Is(err, applyOverride.ErrInvalidTimeRange):
		h.logger.Warn("%s - Invalid time range: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)

	case errors.Is(err, applyOverride.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Failed: therapist_id=%d, error=%v", route, therapistID, err)
		handlers.RespondInternalError(w)
	}
}

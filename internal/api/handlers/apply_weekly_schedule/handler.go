package apply_weekly_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/massage-scheduler/internal/api/handlers"
	applyWeeklySchedule "github.com/m04kA/massage-scheduler/internal/usecase/apply_weekly_schedule"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные расписания"
	msgInvalidTimeRange   = "время окончания должно быть позже времени начала"
	msgScheduleConflict   = "новое расписание конфликтует с существующими записями"
)

type Handler struct {
	useCase ApplyWeeklyScheduleUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase ApplyWeeklyScheduleUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle PUT /api/v1/therapists/{therapistId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, "PUT /therapists/{id}/schedule")
	if !ok {
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.respondError(w, "PUT /therapists/{id}/schedule", req.TherapistID, err)
		return
	}

	h.logger.Info("PUT /therapists/{id}/schedule - Schedule replaced: therapist_id=%d, active_days=%d",
		req.TherapistID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePreview POST /api/v1/therapists/{therapistId}/schedule/preview
// Возвращает конфликты без сохранения.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, "POST /therapists/{id}/schedule/preview")
	if !ok {
		return
	}

	result, err := h.useCase.ConflictReport(r.Context(), req)
	if err != nil {
		h.respondError(w, "POST /therapists/{id}/schedule/preview", req.TherapistID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string) (*applyWeeklySchedule.Request, bool) {
	therapistID, err := handlers.PathInt64(r, "therapistId")
	if err != nil {
		h.logger.Warn("%s - Invalid therapist ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return nil, false
	}

	var body WeeklyScheduleRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}

	return body.ToUseCaseRequest(therapistID), true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, therapistID int64, err error) {
	switch {
	case errors.Is(err, applyWeeklySchedule.ErrScheduleConflict):
		h.logger.Warn("%s - Schedule conflict: therapist_id=%d, error=%v", route, therapistID, err)
		if !handlers.RespondScheduleConflict(w, msgScheduleConflict, err, h.loc) {
			handlers.RespondConflict(w, msgScheduleConflict, nil)
		}

	case errors.Is(err, applyWeeklySchedule.ErrInvalidTimeRange):
		h.logger.Warn("%s - Invalid time range: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)

	case errors.Is(err, applyWeeklySchedule.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Failed: therapist_id=%d, error=%v", route, therapistID, err)
		handlers.RespondInternalError(w)
	}
}

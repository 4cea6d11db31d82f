package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/massage-scheduler/internal/api/handlers"
	"github.com/m04kA/massage-scheduler/internal/api/middleware"
	cancelAppointment "github.com/m04kA/massage-scheduler/internal/usecase/cancel_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные отмены"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgNotCancellable       = "запись не может быть отменена"
)

type Handler struct {
	useCase CancelAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CancelAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelAppointmentRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, userID))
	if err != nil {
		h.respondError(w, "PATCH /appointments/{id}/cancel", appointmentID, err)
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled: appointment_id=%d, user_id=%d, refund=%d%%",
		appointmentID, userID, result.Policy.RefundPercentage)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePolicy GET /api/v1/appointments/{appointmentId}/cancellation-policy
func (h *Handler) HandlePolicy(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("GET /appointments/{id}/cancellation-policy - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.useCase.Policy(r.Context(), appointmentID)
	if err != nil {
		h.respondError(w, "GET /appointments/{id}/cancellation-policy", appointmentID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleBulk POST /api/v1/appointments/bulk-cancel
// Отдельные неудачи не прерывают обработку и возвращаются в списке failed.
func (h *Handler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/bulk-cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BulkCancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/bulk-cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.BulkCancel(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case result != nil:
			// прервано отменой запроса: уже отменённые записи остаются отменёнными
			h.logger.Warn("POST /appointments/bulk-cancel - Interrupted: user_id=%d, cancelled=%d of %d, error=%v",
				userID, result.Cancelled, result.Requested, err)
			handlers.RespondJSON(w, http.StatusOK, result)

		case errors.Is(err, cancelAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/bulk-cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/bulk-cancel - Failed to cancel: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/bulk-cancel - Done: user_id=%d, requested=%d, cancelled=%d",
		userID, result.Requested, result.Cancelled)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, appointmentID int64, err error) {
	switch {
	case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
		h.logger.Warn("%s - Appointment not found: appointment_id=%d", route, appointmentID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, cancelAppointment.ErrNotCancellable):
		h.logger.Warn("%s - Not cancellable: appointment_id=%d, error=%v", route, appointmentID, err)
		handlers.RespondUnprocessable(w, msgNotCancellable)

	case errors.Is(err, cancelAppointment.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: appointment_id=%d, error=%v", route, appointmentID, err)
		handlers.RespondInternalError(w)
	}
}

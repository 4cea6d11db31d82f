package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/massage-scheduler/internal/api/handlers"
	bookAppointment "github.com/m04kA/massage-scheduler/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTime         = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput        = "некорректные данные записи"
	msgInvalidDate         = "некорректная дата, ожидается дата по джалали YYYY-MM-DD"
	msgServiceNotFound     = "услуга не найдена или недоступна"
	msgOutsideWorkingHours = "сеанс не помещается в рабочие часы терапевта"
	msgSlotUnavailable     = "выбранное время уже занято, выберите другое"
	msgPastTime            = "время начала должно быть в будущем"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: therapist_id=%d, date=%s, time=%s",
				req.TherapistID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable, nil)

		case errors.Is(err, bookAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: therapist_id=%d, date=%s, time=%s",
				req.TherapistID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgOutsideWorkingHours, nil)

		case errors.Is(err, bookAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: therapist_id=%d, service_id=%d",
				req.TherapistID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookAppointment.ErrPastTime):
			h.logger.Warn("POST /appointments - Past time: therapist_id=%d, date=%s, time=%s",
				req.TherapistID, req.Date, req.StartTime)
			handlers.RespondUnprocessable(w, msgPastTime)

		case errors.Is(err, bookAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: %s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to book: therapist_id=%d, service_id=%d, error=%v",
				req.TherapistID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment booked: appointment_id=%d, therapist_id=%d",
		result.ID, req.TherapistID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package book_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате по джалали
	ErrInvalidDate = errors.New("book_appointment: invalid date")

	// ErrServiceNotFound возвращается, когда у терапевта нет активной услуги
	ErrServiceNotFound = errors.New("book_appointment: service not found")

	// ErrOutsideWorkingHours возвращается, когда сеанс не помещается в рабочие часы даты
	ErrOutsideWorkingHours = errors.New("book_appointment: outside of working hours")

	// ErrSlotUnavailable возвращается, когда интервал пересекается с подтверждённой записью
	ErrSlotUnavailable = errors.New("book_appointment: slot is not available")

	// ErrPastTime возвращается, когда начало сеанса не в будущем
	ErrPastTime = errors.New("book_appointment: start time is not in the future")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)

// Исходы бронирования для метрик
const (
	OutcomeBooked          = "booked"
	OutcomeSlotUnavailable = "slot_unavailable"
	OutcomePastTime        = "past_time"
	OutcomeServiceNotFound = "service_not_found"
	OutcomeOutsideHours    = "outside_hours"
	OutcomeInvalid         = "invalid"
	OutcomeError           = "error"
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeBooked
	case errors.Is(err, ErrSlotUnavailable):
		return OutcomeSlotUnavailable
	case errors.Is(err, ErrPastTime):
		return OutcomePastTime
	case errors.Is(err, ErrServiceNotFound):
		return OutcomeServiceNotFound
	case errors.Is(err, ErrOutsideWorkingHours):
		return OutcomeOutsideHours
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidDate):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

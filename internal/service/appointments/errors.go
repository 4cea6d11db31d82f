package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате по джалали
	ErrInvalidDate = errors.New("appointments: invalid date")

	// ErrInvalidTransition возвращается при попытке выйти из терминального статуса
	ErrInvalidTransition = errors.New("appointments: status transition is not allowed")

	// ErrNotStarted возвращается, когда сеанс ещё не начался
	ErrNotStarted = errors.New("appointments: session has not started yet")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)

package apply_weekly_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном недельном шаблоне
	ErrInvalidInput = errors.New("apply_weekly_schedule: invalid input data")

	// ErrInvalidTimeRange возвращается, когда конец рабочего дня не позже начала
	ErrInvalidTimeRange = errors.New("apply_weekly_schedule: end must be after start")

	// ErrScheduleConflict возвращается, когда будущие записи не помещаются в новый шаблон.
	// Конкретные записи доступны через errors.As(*domain.ConflictError).
	ErrScheduleConflict = errors.New("apply_weekly_schedule: schedule conflicts with existing appointments")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_weekly_schedule: internal error")
)

// conflictKind метка метрики для отклонённого шаблона
const conflictKind = "weekly"

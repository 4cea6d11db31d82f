package apply_override

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_override: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате по джалали
	ErrInvalidDate = errors.New("apply_override: invalid date")

	// ErrInvalidTimeRange возвращается, когда конец custom_hours не позже начала
	ErrInvalidTimeRange = errors.New("apply_override: end must be after start")

	// ErrOverrideConflict возвращается, когда записи на дату не помещаются в исключение.
	// Конкретные записи доступны через errors.As(*domain.ConflictError).
	ErrOverrideConflict = errors.New("apply_override: override conflicts with existing appointments")

	// ErrOverrideNotFound возвращается при удалении несуществующего исключения
	ErrOverrideNotFound = errors.New("apply_override: override not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_override: internal error")
)

// conflictKind метка метрики для отклонённого исключения
const conflictKind = "override"

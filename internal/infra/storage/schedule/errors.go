package schedule

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда исключение на дату не найдено
	ErrOverrideNotFound = errors.New("schedule.repository: override not found")

	// ErrDuplicateOverride возвращается при попытке создать второе исключение на ту же дату
	ErrDuplicateOverride = errors.New("schedule.repository: override for this date already exists")

	// ErrDuplicateWeekday возвращается, когда в шаблоне повторяется день недели
	ErrDuplicateWeekday = errors.New("schedule.repository: duplicate weekday in template")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)

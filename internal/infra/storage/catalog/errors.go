package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда терапевт не оказывает такую услугу
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrServiceUnavailable возвращается, когда услуга или её привязка к терапевту выключены
	ErrServiceUnavailable = errors.New("catalog.repository: service is not available")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)

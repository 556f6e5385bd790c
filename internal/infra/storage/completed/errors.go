package completed

import "errors"

var (
	// ErrBookingNotFound возвращается, когда снимок бронирования не найден
	ErrBookingNotFound = errors.New("completed.repository: booking not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("completed.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("completed.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("completed.repository: failed to scan row")
)

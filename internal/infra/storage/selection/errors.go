package selection

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись выбора не найдена
	ErrRecordNotFound = errors.New("selection.repository: record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("selection.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("selection.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("selection.repository: failed to scan row")
)

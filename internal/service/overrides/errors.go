package overrides

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда настройка пары не найдена
	ErrOverrideNotFound = errors.New("override not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

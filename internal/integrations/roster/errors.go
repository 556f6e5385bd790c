package roster

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда мастер не найден в ростере
	ErrProfessionalNotFound = errors.New("roster client: professional not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("roster client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе ростера
	ErrInvalidResponse = errors.New("roster client: invalid response")
)

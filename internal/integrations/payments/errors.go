package payments

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе платежного шлюза
	ErrInvalidResponse = errors.New("payments client: invalid response")
)

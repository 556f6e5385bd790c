package appointments

import "errors"

var (
	// ErrConflict возвращается, когда сервис записей отклонил запрос из-за конфликта слота
	// Клиентский генератор слотов только рекомендательный: финальное решение за сервером
	ErrConflict = errors.New("appointments client: slot conflict")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("appointments client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса записей
	ErrInvalidResponse = errors.New("appointments client: invalid response")
)

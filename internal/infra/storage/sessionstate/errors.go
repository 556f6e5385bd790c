package sessionstate

import "errors"

var (
	// ErrRecordNotFound возвращается, когда сессионная запись не найдена или истекла
	ErrRecordNotFound = errors.New("sessionstate.store: record not found")

	// ErrInternal возвращается при ошибках обращения к redis
	ErrInternal = errors.New("sessionstate.store: internal error")
)

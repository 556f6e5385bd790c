package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalog client: service not found")

	// ErrOverrideNotFound возвращается, когда салонное переопределение отсутствует
	ErrOverrideNotFound = errors.New("catalog client: salon override not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("catalog client: invalid response")

	// ErrServiceDegraded возвращается, когда каталог недоступен и кэшированного
	// payload'а нет: вызывающий обязан откатиться к placeholder-записи
	ErrServiceDegraded = errors.New("catalog unavailable: graceful degradation applied")
)

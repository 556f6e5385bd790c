package wizard

import "errors"

var (
	// ErrInvalidServicePayload возвращается, когда данные услуги непригодны после нормализации
	ErrInvalidServicePayload = errors.New("invalid service payload")

	// ErrInvalidProfessionalPayload возвращается, когда данные мастера непригодны после нормализации
	ErrInvalidProfessionalPayload = errors.New("invalid professional payload")

	// ErrServiceNotSelected возвращается при попытке пройти дальше без выбранной услуги
	ErrServiceNotSelected = errors.New("no service selected")

	// ErrProfessionalNotSelected возвращается при попытке пройти дальше без выбранного мастера
	ErrProfessionalNotSelected = errors.New("no professional selected")

	// ErrSlotNotSelected возвращается при попытке оплатить без выбранного слота
	ErrSlotNotSelected = errors.New("no slot selected")

	// ErrSlotUnavailable возвращается, когда выбранный слот занят или не существует
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrTooManyServices возвращается при превышении лимита услуг в одном выборе
	ErrTooManyServices = errors.New("too many services selected")

	// ErrPriceUnresolved возвращается, когда цена хотя бы одной услуги не разрешилась
	ErrPriceUnresolved = errors.New("price is not resolved")

	// ErrPaymentPending возвращается при попытке изменить выбор во время ожидания платежа
	ErrPaymentPending = errors.New("payment is pending")

	// ErrUnknownPayment возвращается, когда callback не соответствует ожидаемому платежу
	ErrUnknownPayment = errors.New("unknown payment")

	// ErrPaymentGateway возвращается, когда платежный шлюз не принял запрос
	ErrPaymentGateway = errors.New("payment gateway rejected request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

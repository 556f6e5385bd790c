package complete_booking

import "errors"

var (
	// ErrUnknownPayment возвращается, когда callback не соответствует ожидаемому платежу
	ErrUnknownPayment = errors.New("complete_booking: unknown payment")

	// ErrNoServiceSelected возвращается, когда в выборе нет ни одной услуги
	ErrNoServiceSelected = errors.New("complete_booking: no service selected")

	// ErrNoProfessionalSelected возвращается, когда мастер не выбран
	ErrNoProfessionalSelected = errors.New("complete_booking: no professional selected")

	// ErrNoSlotSelected возвращается, когда дата и время не выбраны
	ErrNoSlotSelected = errors.New("complete_booking: no slot selected")

	// ErrPriceUnresolved возвращается, когда цена хотя бы одной услуги не разрешилась
	ErrPriceUnresolved = errors.New("complete_booking: price is not resolved")

	// ErrSlotConflict возвращается, когда сервис записей отверг слот как занятый
	ErrSlotConflict = errors.New("complete_booking: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_booking: internal error")
)

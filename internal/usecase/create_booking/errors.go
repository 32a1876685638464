package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или деактивирована
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotNotAvailable возвращается, когда запрошенный диапазон не совпадает
	// ни с одним свободным слотом: занят параллельной бронью, дата заблокирована,
	// дата в прошлом или вне окон доступности
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	// (дата, время, поля клиента, email)
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStorage возвращается, когда хранилище недоступно или запрос не уложился
	// в таймаут. Координатор не повторяет попытку: политика ретраев за вызывающим
	ErrStorage = errors.New("create_booking: storage error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

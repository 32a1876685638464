package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или деактивирована
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	// (в том числе при неположительной длительности услуги из каталога)
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrStorage возвращается, когда хранилище недоступно или запрос не уложился в таймаут
	ErrStorage = errors.New("get_available_slots: storage error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)

package schedule

import "errors"

var (
	// ErrBlockedRangeNotFound возвращается, когда блокировка дат не найдена
	ErrBlockedRangeNotFound = errors.New("blocked range not found")

	// ErrWindowsOverlap возвращается, когда окна доступности пересекаются
	// в пределах одного дня
	ErrWindowsOverlap = errors.New("availability windows overlap")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

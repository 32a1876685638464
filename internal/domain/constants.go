package domain

// Business validation constants
const (
	MaxClientNameLength         = 200
	MaxClientCompanyLength      = 200
	MaxClientPhoneLength        = 32
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxBlockedRangeReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающих свой временной диапазон
// Используются при подсчёте доступных слотов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы бронирований, освободивших свой временной диапазон
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

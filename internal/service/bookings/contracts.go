package bookings

import (
	"context"
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByDateWithFilter(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// TimeProvider интерфейс источника текущего времени
// Переход в completed зависит от "сейчас", поэтому время инжектируется
type TimeProvider interface {
	Now() time.Time
}

// LocationTimeProvider возвращает текущее время в операционной таймзоне
type LocationTimeProvider struct {
	Location *time.Location
}

func (p *LocationTimeProvider) Now() time.Time {
	return time.Now().In(p.Location)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

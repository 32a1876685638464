package get_available_slots

import (
	"context"
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByDateWithFilter получает бронирования на конкретную дату
	GetByDateWithFilter(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListWindowsForDate(ctx context.Context, date time.Time) ([]*domain.AvailabilityWindow, error)
	ListBlockedRangesForDate(ctx context.Context, date time.Time) ([]*domain.BlockedRange, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LocationTimeProvider провайдер времени в операционной таймзоне сервиса
type LocationTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время в операционной таймзоне
func (p *LocationTimeProvider) Now() time.Time {
	return time.Now().In(p.Location)
}

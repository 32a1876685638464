package domain

import (
	"time"

	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a consultation booking in the system
type Booking struct {
	ID              int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	ClientName    string
	ClientEmail   string
	ClientPhone   *string
	ClientCompany *string

	// Denormalized data for history
	ServiceName string
	TotalPrice  int64 // Цена в минорных единицах (копейки/центы); 0, если у услуги нет цены
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime возвращает время окончания бронирования (start + duration)
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// IsActive returns true if the booking occupies its time range
// Только pending и confirmed бронирования блокируют слот
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transition is allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking can transition to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCompleted returns true if the booking can transition to completed
// Проверка "дата уже прошла" выполняется на уровне сервиса
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// DayBookingsFilter фильтр для получения бронирований на дату
type DayBookingsFilter struct {
	Date            time.Time      // Обязательный параметр
	Status          *BookingStatus // Фильтр по статусу (опционально)
	ClientEmail     *string        // Фильтр по email клиента (опционально)
	IncludeInactive bool           // Включать ли завершённые и отменённые бронирования
}

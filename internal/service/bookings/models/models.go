package models

import (
	"errors"
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// TransitionRequest запрос на перевод бронирования в новый статус
type TransitionRequest struct {
	Status string `json:"status"`
}

// GetDayBookingsRequest запрос на получение бронирований на дату
type GetDayBookingsRequest struct {
	Date            time.Time `json:"date"`
	Status          *string   `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	ClientEmail     *string   `json:"clientEmail,omitempty"`     // Фильтр по email клиента (опционально)
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить завершённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDayBookingsRequest) ToDomainFilter() (domain.DayBookingsFilter, error) {
	filter := domain.DayBookingsFilter{
		Date:            r.Date,
		ClientEmail:     r.ClientEmail,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	ServiceID       int64  `json:"serviceId"`
	BookingDate     string `json:"bookingDate"` // "2026-03-16"
	StartTime       string `json:"startTime"`   // "10:00"
	EndTime         string `json:"endTime"`     // "11:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
	ClientCompany *string `json:"clientCompany,omitempty"`

	// Денормализованные данные услуги
	ServiceName string  `json:"serviceName"`
	TotalPrice  int64   `json:"totalPrice"` // Минорные единицы
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		ClientCompany:   b.ClientCompany,
		ServiceName:     b.ServiceName,
		TotalPrice:      b.TotalPrice,
		Notes:           b.Notes,

		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if endTime, err := b.EndTime(); err == nil {
		resp.EndTime = endTime.String()
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

package create_booking

import (
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	createBooking "github.com/astraconsult/ACG-BookingService/internal/usecase/create_booking"
	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64  `json:"serviceId"`
	BookingDate string `json:"bookingDate"` // "2026-03-16"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`     // "11:00"

	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
	ClientCompany *string `json:"clientCompany,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	ServiceID       int64  `json:"serviceId"`
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
	ClientCompany *string `json:"clientCompany,omitempty"`

	ServiceName string  `json:"serviceName"`
	TotalPrice  int64   `json:"totalPrice"`
	Notes       *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим времена начала и окончания
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:     r.ServiceID,
		Date:          bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientPhone:   r.ClientPhone,
		ClientCompany: r.ClientCompany,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ClientName:      resp.ClientName,
		ClientEmail:     resp.ClientEmail,
		ClientPhone:     resp.ClientPhone,
		ClientCompany:   resp.ClientCompany,
		ServiceName:     resp.ServiceName,
		TotalPrice:      resp.TotalPrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

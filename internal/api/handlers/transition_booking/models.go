package transition_booking

import (
	"github.com/astraconsult/ACG-BookingService/internal/service/bookings/models"
)

// TransitionBookingRequest HTTP request model
type TransitionBookingRequest struct {
	Status string `json:"status"` // "confirmed" или "completed"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *TransitionBookingRequest) ToServiceRequest() *models.TransitionRequest {
	return &models.TransitionRequest{
		Status: r.Status,
	}
}

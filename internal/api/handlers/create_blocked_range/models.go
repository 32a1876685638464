package create_blocked_range

import (
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/internal/service/schedule/models"
)

// CreateBlockedRangeRequest HTTP request model
type CreateBlockedRangeRequest struct {
	StartDate string  `json:"startDate"` // "2026-03-16"
	EndDate   string  `json:"endDate"`   // "2026-03-20"
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockedRangeRequest) ToServiceRequest() (*models.CreateBlockedRangeRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlockedRangeRequest{
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    r.Reason,
	}, nil
}

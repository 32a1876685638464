package get_day_bookings

import (
	"net/http"
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
// Query params: date (required), status, clientEmail, includeInactive
func ToServiceRequest(r *http.Request) (*models.GetDayBookingsRequest, error) {
	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &models.GetDayBookingsRequest{
		Date:            date,
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if email := query.Get("clientEmail"); email != "" {
		req.ClientEmail = &email
	}

	return req, nil
}

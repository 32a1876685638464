package get_available_slots

import (
	"fmt"

	"github.com/astraconsult/ACG-BookingService/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateService проверяет, что услуга пригодна для бронирования
// Деактивированная услуга для ядра неотличима от отсутствующей
func validateService(service *catalogservice.Service) error {
	if !service.Active {
		return ErrServiceNotFound
	}

	// Каталог гарантирует положительную длительность, но проверяем защитно
	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service duration must be positive, got %d", ErrInvalidInput, service.DurationMinutes)
	}

	return nil
}

package create_booking

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/internal/integrations/catalogservice"
)

// validate единый инстанс валидатора; потокобезопасен, кеширует метаданные структур
var validate = validator.New()

// clientInfo поля клиента с правилами валидации
// Имя и email обязательны, email проверяется на синтаксис адреса;
// телефон и компания опциональны
type clientInfo struct {
	Name    string  `validate:"required,max=200"`
	Email   string  `validate:"required,email,max=254"`
	Phone   *string `validate:"omitempty,max=32"`
	Company *string `validate:"omitempty,max=200"`
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return validateClientInfo(req)
}

// validateClientInfo проверяет поля клиента через go-playground/validator
func validateClientInfo(req *Request) error {
	info := clientInfo{
		Name:    req.ClientName,
		Email:   req.ClientEmail,
		Phone:   req.ClientPhone,
		Company: req.ClientCompany,
	}

	if err := validate.Struct(info); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return fmt.Errorf("%w: field %s failed on %q rule", ErrInvalidInput, first.Field(), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateService проверяет, что услуга пригодна для бронирования
func validateService(service *catalogservice.Service) error {
	if !service.Active {
		return ErrServiceNotFound
	}

	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service duration must be positive, got %d", ErrInvalidInput, service.DurationMinutes)
	}

	return nil
}

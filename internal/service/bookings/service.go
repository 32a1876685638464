package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	bookingRepo "github.com/astraconsult/ACG-BookingService/internal/infra/storage/booking"
	"github.com/astraconsult/ACG-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение, отмена и переходы статусов
// Машина статусов: pending -> confirmed -> completed; pending/confirmed -> cancelled
// completed и cancelled терминальны
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &LocationTimeProvider{Location: location},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetDayBookings получает бронирования на дату с фильтрацией
// По умолчанию возвращает только активные (pending/confirmed); завершённые
// и отменённые попадают в выдачу только при IncludeInactive
//
// Примеры использования:
// - Расписание дня для операторов: GetDayBookings(ctx, &GetDayBookingsRequest{Date: date})
// - Бронирования конкретного клиента: указать ClientEmail
// - Только ожидающие подтверждения: указать Status = "pending"
// - Полная история дня: IncludeInactive = true
func (s *Service) GetDayBookings(ctx context.Context, req *models.GetDayBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetDayBookings: fetching bookings for date=%s", req.Date.Format(domain.DateFormat))
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.ClientEmail != nil {
		logMsg += fmt.Sprintf(", clientEmail=%s", *req.ClientEmail)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.Date.IsZero() {
		s.logger.Warn("GetDayBookings: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDayBookings: invalid filter for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByDateWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetDayBookings: repository error for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDayBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDayBookings: successfully fetched %d bookings for date=%s", len(bookings), req.Date.Format(domain.DateFormat))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить можно только pending или confirmed бронирование; слот сразу
// освобождается для новых броней
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Transition переводит бронирование в новый статус
// Допустимые переходы: pending -> confirmed, confirmed -> completed
// Переход в completed разрешён только после окончания времени бронирования
// Отмена выполняется отдельным методом Cancel с указанием причины
func (s *Service) Transition(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking id=%d to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("Transition: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Transition: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Transition: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	if err := s.checkTransition(booking, newStatus); err != nil {
		s.logger.Warn("Transition: booking id=%d transition %s -> %s rejected: %v",
			bookingID, booking.Status, newStatus, err)
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Transition: booking id=%d not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Transition: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Transition: successfully updated booking id=%d to status=%s", bookingID, newStatus)

	booking.Status = newStatus
	return models.FromDomainBooking(booking), nil
}

// checkTransition проверяет допустимость перехода статуса
func (s *Service) checkTransition(booking *domain.Booking, newStatus domain.BookingStatus) error {
	switch newStatus {
	case domain.StatusConfirmed:
		if !booking.CanBeConfirmed() {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}
		return nil

	case domain.StatusCompleted:
		if !booking.CanBeCompleted() {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}
		if !s.hasFinished(booking) {
			return ErrBookingNotFinished
		}
		return nil

	case domain.StatusCancelled:
		// Отмена идёт через Cancel, где фиксируется причина
		return fmt.Errorf("%w: use cancel endpoint to cancel a booking", ErrInvalidTransition)

	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}
}

// hasFinished проверяет, что время окончания бронирования уже прошло
func (s *Service) hasFinished(booking *domain.Booking) bool {
	endTime, err := booking.EndTime()
	if err != nil {
		return false
	}

	now := s.timeProvider.Now()
	endMinutes, err := endTime.Minutes()
	if err != nil {
		return false
	}

	end := time.Date(
		booking.BookingDate.Year(), booking.BookingDate.Month(), booking.BookingDate.Day(),
		endMinutes/60, endMinutes%60, 0, 0, now.Location(),
	)

	return !now.Before(end)
}

package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	catalogClient "github.com/astraconsult/ACG-BookingService/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов для бронирования
// Чистое вычисление без побочных эффектов: одинаковые входные данные
// всегда дают одинаковый результат, вызов безопасен для предпросмотра
type UseCase struct {
	bookingRepo      BookingRepository
	scheduleRepo     ScheduleRepository
	catalogClient    CatalogServiceClient
	timeProvider     TimeProvider
	minNoticeMinutes int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	location *time.Location,
	minNoticeMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		scheduleRepo:     scheduleRepo,
		catalogClient:    catalogClient,
		timeProvider:     &LocationTimeProvider{Location: location},
		minNoticeMinutes: minNoticeMinutes,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateService(service); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d not bookable: %v", req.ServiceID, err)
		return nil, err
	}

	// 3. Дата в прошлом: пустой список без ошибки
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 4. Дата заблокирована (отпуск, праздник): пустой список без ошибки
	blockedRanges, err := uc.scheduleRepo.ListBlockedRangesForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked ranges: %v", ErrStorage, err)
	}
	if isDateBlocked(blockedRanges, req.Date) {
		uc.logger.Info("GetAvailableSlots: date %s is blocked", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 5. Окна доступности на эту дату
	windows, err := uc.scheduleRepo.ListWindowsForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrStorage, err)
	}

	// 6. Генерируем кандидатов с шагом в длительность услуги
	candidates, err := generateDaySlots(windows, req.Date, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 7. Отбрасываем слоты, пересекающиеся с активными бронированиями
	bookings, err := uc.bookingRepo.GetByDateWithFilter(ctx, domain.DayBookingsFilter{
		Date:            req.Date,
		IncludeInactive: false,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrStorage, err)
	}

	slots := filterOverlapping(candidates, bookings)

	// 8. На сегодня дополнительно применяем минимальное время до брони
	slots = filterByNotice(slots, req.Date, now, uc.minNoticeMinutes)

	uc.logger.Info("GetAvailableSlots: %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     []domain.Slot{},
	}
}

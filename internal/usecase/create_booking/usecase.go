package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	bookingRepo "github.com/astraconsult/ACG-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/astraconsult/ACG-BookingService/internal/integrations/catalogservice"
	"github.com/astraconsult/ACG-BookingService/pkg/txmanager"
)

// UseCase use case создания бронирования (координатор бронирования)
// Гарантирует отсутствие двойного бронирования: доступность пересчитывается
// внутри сериализуемой транзакции непосредственно перед вставкой
type UseCase struct {
	bookingRepo      BookingRepository
	scheduleRepo     ScheduleRepository
	catalogClient    CatalogServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	minNoticeMinutes int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	location *time.Location,
	minNoticeMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		scheduleRepo:     scheduleRepo,
		catalogClient:    catalogClient,
		txManager:        txManager,
		timeProvider:     &LocationTimeProvider{Location: location},
		minNoticeMinutes: minNoticeMinutes,
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// При любой ошибке бронирование не сохраняется даже частично
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s-%s, client=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.ClientEmail)

	// 1. Валидация входных данных и полей клиента (до транзакции)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateService(service); err != nil {
		uc.logger.Warn("CreateBooking: service id=%d not bookable: %v", req.ServiceID, err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Критическая секция: пересчёт доступности и вставка в одной
	// SERIALIZABLE транзакции. Из двух одновременных попыток на один слот
	// зафиксируется ровно одна, вторая получит ErrSlotNotAvailable
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Дата в прошлом закрывает бронь независимо от расписания
		if isDateInPast(req.Date, now) {
			uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 3.2. Блокировки дат
		blockedRanges, err := uc.scheduleRepo.ListBlockedRangesForDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked ranges: %v", err)
			return fmt.Errorf("%w: failed to get blocked ranges: %v", ErrStorage, err)
		}
		if isDateBlocked(blockedRanges, req.Date) {
			uc.logger.Warn("CreateBooking: date %s is blocked", req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 3.3. Окна доступности
		windows, err := uc.scheduleRepo.ListWindowsForDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability windows: %v", err)
			return fmt.Errorf("%w: failed to get availability windows: %v", ErrStorage, err)
		}

		// 3.4. Активные бронирования дня с блокировкой строк (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByDateWithFilter(txCtx, domain.DayBookingsFilter{
			Date:            req.Date,
			IncludeInactive: false,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrStorage, err)
		}

		// 3.5. Свежий пересчёт слотов; клиентский снимок не используется
		freeSlots := computeFreeSlots(windows, bookings, req.Date, now, service.DurationMinutes, uc.minNoticeMinutes)

		// 3.6. Запрошенный диапазон должен совпадать со свободным слотом целиком
		if !matchesAnySlot(freeSlots, req.StartTime, req.EndTime) {
			uc.logger.Warn("CreateBooking: slot %s-%s not available on %s",
				req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 3.7. Создаем бронирование со статусом pending
		// Подтверждение придёт позже от внешнего коллаборатора (оплата/операторы)
		booking := &domain.Booking{
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			ClientPhone:     req.ClientPhone,
			ClientCompany:   req.ClientCompany,
			// Денормализация данных услуги
			ServiceName: service.Name,
			TotalPrice:  getServicePrice(service),
			Notes:       req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: unique index rejected insert for %s %s", req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrStorage, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конфликт сериализации: параллельная бронь выиграла гонку
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict for %s %s-%s",
				req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	endTime, err := result.EndTime()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ClientName:      result.ClientName,
		ClientEmail:     result.ClientEmail,
		ClientPhone:     result.ClientPhone,
		ClientCompany:   result.ClientCompany,
		ServiceName:     result.ServiceName,
		TotalPrice:      result.TotalPrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// getServicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0
func getServicePrice(service *catalogClient.Service) int64 {
	if service.PriceMinorUnits == nil {
		return 0
	}
	return *service.PriceMinorUnits
}

package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	scheduleRepo "github.com/astraconsult/ACG-BookingService/internal/infra/storage/schedule"
	"github.com/astraconsult/ACG-BookingService/internal/service/schedule/models"
)

// Service сервис управления расписанием: окна доступности и блокировки дат
// Пересекающиеся окна отклоняются на записи, поэтому генератор слотов
// всегда работает с непротиворечивым расписанием
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule возвращает полное расписание: окна доступности и блокировки дат
// Оба списка читаются в одной read-only транзакции: параллельный ReplaceWindows
// не может дать ответ с окнами из старого расписания и блокировками из нового
func (s *Service) GetSchedule(ctx context.Context) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule")

	var windows []*domain.AvailabilityWindow
	var blockedRanges []*domain.BlockedRange

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if windows, err = s.scheduleRepo.ListWindows(txCtx); err != nil {
			return err
		}
		blockedRanges, err = s.scheduleRepo.ListBlockedRanges(txCtx)
		return err
	})
	if err != nil {
		s.logger.Error("GetSchedule: failed to fetch schedule: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: fetched %d windows, %d blocked ranges", len(windows), len(blockedRanges))

	return &models.ScheduleResponse{
		Windows:       models.FromDomainWindowList(windows),
		BlockedRanges: models.FromDomainBlockedRangeList(blockedRanges),
	}, nil
}

// ReplaceWindows атомарно заменяет все окна доступности на новый набор
// Старые окна удаляются и новые вставляются в одной транзакции: читатели
// видят либо старое расписание целиком, либо новое
func (s *Service) ReplaceWindows(ctx context.Context, req *models.ReplaceWindowsRequest) (*models.WindowListResponse, error) {
	s.logger.Info("ReplaceWindows: replacing schedule with %d windows", len(req.Windows))

	windows := make([]*domain.AvailabilityWindow, 0, len(req.Windows))
	for i := range req.Windows {
		windows = append(windows, req.Windows[i].ToDomainWindow())
	}

	if err := validateWindows(windows); err != nil {
		s.logger.Warn("ReplaceWindows: validation failed: %v", err)
		return nil, err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWindows(txCtx, windows)
	})
	if err != nil {
		s.logger.Error("ReplaceWindows: failed to replace windows: %v", err)
		return nil, fmt.Errorf("%w: ReplaceWindows - repository error: %v", ErrInternal, err)
	}

	// Перечитываем сохранённое расписание, чтобы вернуть актуальные ID
	saved, err := s.scheduleRepo.ListWindows(ctx)
	if err != nil {
		s.logger.Error("ReplaceWindows: failed to list windows after replace: %v", err)
		return nil, fmt.Errorf("%w: ReplaceWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWindows: successfully replaced schedule, %d windows active", len(saved))
	return &models.WindowListResponse{Windows: models.FromDomainWindowList(saved)}, nil
}

// CreateBlockedRange блокирует диапазон дат для бронирования
// Границы включительные; пересечение с существующими блокировками допустимо
func (s *Service) CreateBlockedRange(ctx context.Context, req *models.CreateBlockedRangeRequest) (*models.BlockedRangeResponse, error) {
	s.logger.Info("CreateBlockedRange: blocking %s - %s",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		s.logger.Warn("CreateBlockedRange: endDate before startDate")
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockedRangeReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxBlockedRangeReasonLength)
	}

	blocked := &domain.BlockedRange{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	}

	created, err := s.scheduleRepo.CreateBlockedRange(ctx, blocked)
	if err != nil {
		s.logger.Error("CreateBlockedRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedRange: successfully created blocked range id=%d", created.ID)
	return models.FromDomainBlockedRange(created), nil
}

// DeleteBlockedRange снимает блокировку дат
func (s *Service) DeleteBlockedRange(ctx context.Context, id int64) error {
	s.logger.Info("DeleteBlockedRange: deleting blocked range id=%d", id)

	if err := s.scheduleRepo.DeleteBlockedRange(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedRangeNotFound) {
			s.logger.Warn("DeleteBlockedRange: blocked range id=%d not found", id)
			return ErrBlockedRangeNotFound
		}
		s.logger.Error("DeleteBlockedRange: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedRange: successfully deleted blocked range id=%d", id)
	return nil
}

// validateWindows проверяет корректность набора окон доступности
func validateWindows(windows []*domain.AvailabilityWindow) error {
	for i, window := range windows {
		if window.DayOfWeek < time.Sunday || window.DayOfWeek > time.Saturday {
			return fmt.Errorf("%w: window %d: dayOfWeek must be between 0 and 6", ErrInvalidInput, i)
		}
		if err := window.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: window %d: invalid startTime: %v", ErrInvalidInput, i, err)
		}
		if err := window.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: window %d: invalid endTime: %v", ErrInvalidInput, i, err)
		}
		if !window.StartTime.IsBefore(window.EndTime) {
			return fmt.Errorf("%w: window %d: startTime must be before endTime", ErrInvalidInput, i)
		}
		if !window.Recurring && window.SpecificDate == nil {
			return fmt.Errorf("%w: window %d: specificDate is required for non-recurring window", ErrInvalidInput, i)
		}
		if window.Recurring && window.SpecificDate != nil {
			return fmt.Errorf("%w: window %d: specificDate is not allowed for recurring window", ErrInvalidInput, i)
		}
	}

	// Пересечения проверяем попарно: набор окон небольшой
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			if windows[i].Overlaps(windows[j]) {
				return fmt.Errorf("%w: windows %d and %d", ErrWindowsOverlap, i, j)
			}
		}
	}

	return nil
}

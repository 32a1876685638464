package schedule

import (
	"context"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListWindows(ctx context.Context) ([]*domain.AvailabilityWindow, error)
	ReplaceWindows(ctx context.Context, windows []*domain.AvailabilityWindow) error
	ListBlockedRanges(ctx context.Context) ([]*domain.BlockedRange, error)
	CreateBlockedRange(ctx context.Context, blocked *domain.BlockedRange) (*domain.BlockedRange, error)
	DeleteBlockedRange(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_blocked_range

import (
	"context"

	"github.com/astraconsult/ACG-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateBlockedRange(ctx context.Context, req *models.CreateBlockedRangeRequest) (*models.BlockedRangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

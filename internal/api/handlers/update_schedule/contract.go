package update_schedule

import (
	"context"

	"github.com/astraconsult/ACG-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceWindows(ctx context.Context, req *models.ReplaceWindowsRequest) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_schedule

import (
	"net/http"

	"github.com/astraconsult/ACG-BookingService/internal/api/handlers"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSchedule(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule - Failed to get schedule: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule - Schedule retrieved successfully: windows=%d, blocked_ranges=%d",
		len(result.Windows), len(result.BlockedRanges))
	handlers.RespondJSON(w, http.StatusOK, result)
}

package delete_blocked_range

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/astraconsult/ACG-BookingService/internal/api/handlers"
	"github.com/astraconsult/ACG-BookingService/internal/service/schedule"
)

const (
	msgInvalidRangeID = "некорректный ID блокировки"
	msgNotFound       = "блокировка не найдена"
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

// Handle DELETE /api/v1/schedule/blocked-ranges/{rangeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rangeIDStr := vars["rangeId"]

	rangeID, err := strconv.ParseInt(rangeIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedule/blocked-ranges/{id} - Invalid range ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRangeID)
		return
	}

	if err := h.service.DeleteBlockedRange(r.Context(), rangeID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockedRangeNotFound):
			h.logger.Warn("DELETE /schedule/blocked-ranges/{id} - Blocked range not found: range_id=%d", rangeID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /schedule/blocked-ranges/{id} - Failed to delete blocked range: range_id=%d, error=%v",
				rangeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/blocked-ranges/{id} - Blocked range deleted successfully: range_id=%d", rangeID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

package create_blocked_range

import (
	"errors"
	"net/http"

	"github.com/astraconsult/ACG-BookingService/internal/api/handlers"
	"github.com/astraconsult/ACG-BookingService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle POST /api/v1/schedule/blocked-ranges
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockedRangeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/blocked-ranges - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель сервиса (с парсингом дат)
	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /schedule/blocked-ranges - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CreateBlockedRange(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /schedule/blocked-ranges - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /schedule/blocked-ranges - Failed to create blocked range: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/blocked-ranges - Blocked range created successfully: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package update_schedule

import (
	"errors"
	"net/http"

	"github.com/astraconsult/ACG-BookingService/internal/api/handlers"
	"github.com/astraconsult/ACG-BookingService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgWindowsOverlap     = "окна доступности пересекаются"
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

// Handle PUT /api/v1/schedule/windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReplaceWindowsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель сервиса (с парсингом дат и времени)
	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /schedule/windows - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.service.ReplaceWindows(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrWindowsOverlap):
			h.logger.Warn("PUT /schedule/windows - Windows overlap: %v", err)
			handlers.RespondBadRequest(w, msgWindowsOverlap)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/windows - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /schedule/windows - Failed to replace windows: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/windows - Schedule replaced successfully: windows=%d", len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

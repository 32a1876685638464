package update_schedule

import (
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/internal/service/schedule/models"
	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

// WindowInput HTTP модель одного окна доступности
type WindowInput struct {
	DayOfWeek    int     `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime    string  `json:"startTime"` // "09:00"
	EndTime      string  `json:"endTime"`   // "18:00"
	Recurring    bool    `json:"recurring"`
	SpecificDate *string `json:"specificDate,omitempty"` // "2026-03-16", для разовых окон
}

// ReplaceWindowsRequest HTTP request model
type ReplaceWindowsRequest struct {
	Windows []WindowInput `json:"windows"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// Парсит времена и даты; ошибки формата возвращаются вызывающему
func (r *ReplaceWindowsRequest) ToServiceRequest() (*models.ReplaceWindowsRequest, error) {
	windows := make([]models.WindowInput, 0, len(r.Windows))

	for _, w := range r.Windows {
		startTime, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, err
		}

		endTime, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, err
		}

		input := models.WindowInput{
			DayOfWeek: w.DayOfWeek,
			StartTime: startTime,
			EndTime:   endTime,
			Recurring: w.Recurring,
		}

		if w.SpecificDate != nil {
			date, err := time.Parse(domain.DateFormat, *w.SpecificDate)
			if err != nil {
				return nil, err
			}
			input.SpecificDate = &date
		}

		windows = append(windows, input)
	}

	return &models.ReplaceWindowsRequest{Windows: windows}, nil
}

package create_booking

import (
	"time"

	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID int64            // ID услуги из каталога
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время окончания слота; должно совпадать со слотом целиком

	ClientName    string  // Имя клиента (обязательно)
	ClientEmail   string  // Email клиента (обязательно, валидируется синтаксис)
	ClientPhone   *string // Телефон (опционально)
	ClientCompany *string // Компания (опционально)
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	ClientName    string
	ClientEmail   string
	ClientPhone   *string
	ClientCompany *string

	// Денормализованные данные услуги
	ServiceName string
	TotalPrice  int64
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

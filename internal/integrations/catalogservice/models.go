package catalogservice

// Service модель услуги из каталога
// Каталог владеет услугами; для ядра бронирования они read-only
type Service struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceMinorUnits *int64 `json:"priceMinorUnits,omitempty"` // Цена в минорных единицах, может отсутствовать
	Active          bool   `json:"active"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

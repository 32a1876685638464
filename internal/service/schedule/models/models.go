package models

import (
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

// Request модели

// WindowInput описание одного окна доступности
// Для recurring окон задаётся dayOfWeek, для разовых - specificDate
type WindowInput struct {
	DayOfWeek    int              `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime    types.TimeString `json:"startTime"` // "09:00"
	EndTime      types.TimeString `json:"endTime"`   // "18:00"
	Recurring    bool             `json:"recurring"`
	SpecificDate *time.Time       `json:"specificDate,omitempty"`
}

// ReplaceWindowsRequest запрос на полную замену недельного расписания
type ReplaceWindowsRequest struct {
	Windows []WindowInput `json:"windows"`
}

// CreateBlockedRangeRequest запрос на блокировку диапазона дат
type CreateBlockedRangeRequest struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    *string   `json:"reason,omitempty"`
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID           int64   `json:"id"`
	DayOfWeek    int     `json:"dayOfWeek"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Recurring    bool    `json:"recurring"`
	SpecificDate *string `json:"specificDate,omitempty"` // "2026-03-16"

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlockedRangeResponse ответ с данными блокировки дат
type BlockedRangeResponse struct {
	ID        int64   `json:"id"`
	StartDate string  `json:"startDate"` // "2026-03-16"
	EndDate   string  `json:"endDate"`   // "2026-03-20"
	Reason    *string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ScheduleResponse полное расписание: окна доступности и блокировки
type ScheduleResponse struct {
	Windows       []WindowResponse       `json:"windows"`
	BlockedRanges []BlockedRangeResponse `json:"blockedRanges"`
}

// WindowListResponse ответ со списком окон доступности
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// ToDomainWindow конвертирует входную модель в domain окно
// Для разовых окон день недели берётся из specificDate
func (w *WindowInput) ToDomainWindow() *domain.AvailabilityWindow {
	window := &domain.AvailabilityWindow{
		DayOfWeek:    time.Weekday(w.DayOfWeek),
		StartTime:    w.StartTime,
		EndTime:      w.EndTime,
		Recurring:    w.Recurring,
		SpecificDate: w.SpecificDate,
	}

	if !w.Recurring && w.SpecificDate != nil {
		window.DayOfWeek = w.SpecificDate.Weekday()
	}

	return window
}

// FromDomainWindow конвертирует domain окно в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	resp := &WindowResponse{
		ID:        w.ID,
		DayOfWeek: int(w.DayOfWeek),
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
		Recurring: w.Recurring,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}

	if w.SpecificDate != nil {
		dateStr := w.SpecificDate.Format(domain.DateFormat)
		resp.SpecificDate = &dateStr
	}

	return resp
}

// FromDomainWindowList конвертирует список domain окон в DTO
func FromDomainWindowList(windows []*domain.AvailabilityWindow) []WindowResponse {
	resp := make([]WindowResponse, 0, len(windows))
	for _, window := range windows {
		if windowResp := FromDomainWindow(window); windowResp != nil {
			resp = append(resp, *windowResp)
		}
	}
	return resp
}

// FromDomainBlockedRange конвертирует domain блокировку в DTO
func FromDomainBlockedRange(r *domain.BlockedRange) *BlockedRangeResponse {
	if r == nil {
		return nil
	}

	return &BlockedRangeResponse{
		ID:        r.ID,
		StartDate: r.StartDate.Format(domain.DateFormat),
		EndDate:   r.EndDate.Format(domain.DateFormat),
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt,
	}
}

// FromDomainBlockedRangeList конвертирует список domain блокировок в DTO
func FromDomainBlockedRangeList(ranges []*domain.BlockedRange) []BlockedRangeResponse {
	resp := make([]BlockedRangeResponse, 0, len(ranges))
	for _, r := range ranges {
		if rangeResp := FromDomainBlockedRange(r); rangeResp != nil {
			resp = append(resp, *rangeResp)
		}
	}
	return resp
}

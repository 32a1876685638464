package domain

import (
	"time"

	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

// AvailabilityWindow represents a standing opening during which bookings may be scheduled
// Recurring windows apply on every matching weekday; non-recurring windows apply
// only on their SpecificDate
type AvailabilityWindow struct {
	ID           int64
	DayOfWeek    time.Weekday // 0 = Sunday ... 6 = Saturday
	StartTime    types.TimeString
	EndTime      types.TimeString
	Recurring    bool
	SpecificDate *time.Time // Обязателен для non-recurring окон

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo returns true if the window is open on the given calendar date
func (w *AvailabilityWindow) AppliesTo(date time.Time) bool {
	if w.Recurring {
		return w.DayOfWeek == date.Weekday()
	}
	if w.SpecificDate == nil {
		return false
	}
	return isSameDate(*w.SpecificDate, date)
}

// Overlaps returns true if two windows intersect on the same day
// Интервалы полуоткрытые [start, end), граничащие окна не пересекаются
func (w *AvailabilityWindow) Overlaps(other *AvailabilityWindow) bool {
	if w.DayOfWeek != other.DayOfWeek {
		return false
	}
	return w.StartTime.IsBefore(other.EndTime) && w.EndTime.IsAfter(other.StartTime)
}

// BlockedRange represents a full-day exclusion (holidays, leave)
// Границы включительные: дата заблокирована, если startDate <= date <= endDate
type BlockedRange struct {
	ID        int64
	StartDate time.Time
	EndDate   time.Time
	Reason    *string

	CreatedAt time.Time
}

// Contains returns true if the date falls within the range, inclusive bounds
func (r *BlockedRange) Contains(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(r.StartDate)) && !d.After(truncateToDate(r.EndDate))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isSameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

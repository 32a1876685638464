package create_booking

import (
	"sort"
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

// computeFreeSlots пересчитывает свободные слоты дня по актуальному состоянию
// Логика полностью повторяет генератор из get_available_slots: координатор
// обязан опираться на свежий пересчёт, а не на снимок, показанный клиенту
func computeFreeSlots(
	windows []*domain.AvailabilityWindow,
	bookings []*domain.Booking,
	date time.Time,
	now time.Time,
	durationMinutes int,
	minNoticeMinutes int,
) []domain.Slot {
	candidates := make([]domain.Slot, 0)

	for _, window := range windows {
		if !window.AppliesTo(date) {
			continue
		}

		current := window.StartTime
		for current.IsBefore(window.EndTime) {
			slotEnd, err := current.AddMinutes(durationMinutes)
			if err != nil {
				break
			}
			if slotEnd.IsAfter(window.EndTime) {
				break
			}

			candidates = append(candidates, domain.Slot{
				StartTime:       current,
				EndTime:         slotEnd,
				DurationMinutes: durationMinutes,
			})

			current = slotEnd
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].StartTime.IsBefore(candidates[j].StartTime)
	})

	free := make([]domain.Slot, 0, len(candidates))
	for _, slot := range candidates {
		if !overlapsAnyBooking(slot, bookings) {
			free = append(free, slot)
		}
	}

	return filterByNotice(free, date, now, minNoticeMinutes)
}

// overlapsAnyBooking проверяет пересечение слота хотя бы с одним активным бронированием
// Интервалы полуоткрытые [start, end), граничные случаи не считаются пересечением
func overlapsAnyBooking(slot domain.Slot, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.EndTime()
		if err != nil {
			continue
		}

		if booking.StartTime.IsBefore(slot.EndTime) && bookingEnd.IsAfter(slot.StartTime) {
			return true
		}
	}

	return false
}

// filterByNotice при брони на сегодня отбрасывает слоты, начинающиеся раньше,
// чем now + minNoticeMinutes
func filterByNotice(slots []domain.Slot, date, now time.Time, minNoticeMinutes int) []domain.Slot {
	if !isSameDay(date, now) {
		return slots
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		return []domain.Slot{}
	}

	filtered := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartTime.IsBefore(minAllowed) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// matchesAnySlot проверяет, что запрошенный диапазон точно совпадает
// с одним из свободных слотов
func matchesAnySlot(slots []domain.Slot, start, end types.TimeString) bool {
	for _, slot := range slots {
		if slot.Matches(start, end) {
			return true
		}
	}
	return false
}

// isDateBlocked проверяет, попадает ли дата хотя бы в одну блокировку
func isDateBlocked(ranges []*domain.BlockedRange, date time.Time) bool {
	for _, r := range ranges {
		if r.Contains(date) {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
// Дата запроса и now могут быть в разных локациях (дата парсится как UTC,
// now идёт в операционном часовом поясе), поэтому сравниваются календарные
// компоненты, а не моменты времени
func isDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

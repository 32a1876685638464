package get_available_slots

import (
	"sort"
	"time"

	"github.com/astraconsult/ACG-BookingService/internal/domain"
	"github.com/astraconsult/ACG-BookingService/pkg/types"
)

// generateWindowSlots генерирует кандидатов внутри одного окна доступности
// Слоты идут вплотную друг к другу с шагом durationMinutes от начала окна
// (не от границ часов): услуга 90 минут в окне 08:00-20:00 даёт слоты
// 08:00, 09:30, 11:00, ... Кандидат, выходящий за конец окна, отбрасывается
func generateWindowSlots(window *domain.AvailabilityWindow, durationMinutes int) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0)
	current := window.StartTime

	for current.IsBefore(window.EndTime) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Слот вышел за границу суток
			break
		}
		if slotEnd.IsAfter(window.EndTime) {
			break
		}

		slots = append(slots, domain.Slot{
			StartTime:       current,
			EndTime:         slotEnd,
			DurationMinutes: durationMinutes,
		})

		current = slotEnd
	}

	return slots, nil
}

// generateDaySlots генерирует кандидатов по всем окнам дня, отсортированных
// по времени начала. Пересекающиеся окна (ошибка конфигурации) могут дать
// дублирующиеся слоты; генератор их не дедуплицирует
func generateDaySlots(windows []*domain.AvailabilityWindow, date time.Time, durationMinutes int) ([]domain.Slot, error) {
	allSlots := make([]domain.Slot, 0)

	for _, window := range windows {
		if !window.AppliesTo(date) {
			continue
		}

		slots, err := generateWindowSlots(window, durationMinutes)
		if err != nil {
			return nil, err
		}
		allSlots = append(allSlots, slots...)
	}

	sort.Slice(allSlots, func(i, j int) bool {
		return allSlots[i].StartTime.IsBefore(allSlots[j].StartTime)
	})

	return allSlots, nil
}

// filterOverlapping отбрасывает слоты, пересекающиеся с активными бронированиями
// Интервалы полуоткрытые [start, end): бронирование, заканчивающееся ровно в
// начале слота (или начинающееся ровно в его конце), пересечением не считается
func filterOverlapping(slots []domain.Slot, bookings []*domain.Booking) []domain.Slot {
	free := make([]domain.Slot, 0, len(slots))

	for _, slot := range slots {
		if !overlapsAnyBooking(slot, bookings) {
			free = append(free, slot)
		}
	}

	return free
}

// overlapsAnyBooking проверяет пересечение слота хотя бы с одним активным бронированием
func overlapsAnyBooking(slot domain.Slot, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		// Отменённые и завершённые бронирования слот не занимают
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.EndTime()
		if err != nil {
			continue
		}

		// Строгие неравенства: граничащие интервалы не пересекаются
		if booking.StartTime.IsBefore(slot.EndTime) && bookingEnd.IsAfter(slot.StartTime) {
			return true
		}
	}

	return false
}

// filterByNotice при запросе на сегодня отбрасывает слоты, начинающиеся раньше,
// чем now + minNoticeMinutes. Для будущих дат возвращает слоты без изменений
func filterByNotice(slots []domain.Slot, date, now time.Time, minNoticeMinutes int) []domain.Slot {
	if !isSameDay(date, now) {
		return slots
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		// Минимально допустимое время за границей суток: сегодня слотов больше нет
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

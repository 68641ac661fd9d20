package analyze_space

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// generateCandidateSlots генерирует все потенциальные начала слотов внутри операционных часов.
//
// Внутри каждого операционного интервала перебор идёт от открытия с шагом
// SlotStepMinutes; кандидат эмитится, если его минута входит в допустимый набор
// выравнивания и слот целиком помещается до закрытия (tick + duration <= close).
// Интервал короче duration не даёт ни одного кандидата.
//
// Результат строго возрастает по времени: даты обходятся в отсортированном
// порядке, интервалы внутри даты непересекающиеся и отсортированы источником.
func generateCandidateSlots(hours domain.HoursByDate, duration time.Duration) []time.Time {
	dates := make([]string, 0, len(hours))
	for date := range hours {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	step := domain.SlotStepMinutes * time.Minute

	var slots []time.Time
	for _, date := range dates {
		for _, opRange := range hours[date] {
			for tick := opRange.Start; !tick.Add(duration).After(opRange.End); tick = tick.Add(step) {
				if _, ok := domain.SlotMinuteIncrements[tick.Minute()]; ok {
					slots = append(slots, tick)
				}
			}
		}
	}

	return slots
}

// isSlotAvailable проверяет, свободен ли слот [start, start+duration) с учётом буфера.
//
// Слот доступен, только если ни одно бронирование не пересекается с
// буферизованным окном [start-buffer, start+duration+buffer). Проверка
// пересечения — единственный предикат domain.TimeRange.Overlaps.
//
// booked должен быть отсортирован по началу: перебор обрывается на первом
// бронировании, начинающемся не раньше конца буферизованного окна.
func isSlotAvailable(start time.Time, duration, buffer time.Duration, booked []domain.TimeRange) bool {
	window := domain.TimeRange{Start: start, End: start.Add(duration)}.Expand(buffer)

	for _, b := range booked {
		if !b.Start.Before(window.End) {
			break
		}
		if window.Overlaps(b) {
			return false
		}
	}

	return true
}

// sortBookedRanges возвращает копию бронирований, отсортированную по началу.
// Сортировка нужна для раннего выхода в isSlotAvailable при повторных сканах.
func sortBookedRanges(booked []domain.TimeRange) []domain.TimeRange {
	sorted := make([]domain.TimeRange, len(booked))
	copy(sorted, booked)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return sorted
}

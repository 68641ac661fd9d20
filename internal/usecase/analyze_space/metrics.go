package analyze_space

import (
	"time"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// metricsForPeriod считает метрики загрузки для одного скользящего окна.
//
// Окно задаётся cutoff: учитываются кандидаты с началом строго раньше cutoff.
// booked_count — это оценка по ёмкости слотов (занятые дискретные слоты),
// а booking_count — независимый счётчик бронирований с началом раньше cutoff.
// При нуле кандидатов в окне все метрики нулевые, деления на ноль нет.
func metricsForPeriod(
	candidates []time.Time,
	booked []domain.TimeRange,
	duration, buffer time.Duration,
	cutoff time.Time,
) domain.PeriodMetrics {
	totalSlots := 0
	availableCount := 0

	// Кандидаты строго возрастают: дальше cutoff можно не смотреть
	for _, slot := range candidates {
		if !slot.Before(cutoff) {
			break
		}
		totalSlots++
		if isSlotAvailable(slot, duration, buffer, booked) {
			availableCount++
		}
	}

	if totalSlots == 0 {
		return domain.PeriodMetrics{}
	}

	bookedCount := totalSlots - availableCount

	bookingCount := 0
	for _, b := range booked {
		if b.Start.Before(cutoff) {
			bookingCount++
		}
	}

	return domain.PeriodMetrics{
		BookingRatePct: float64(bookedCount) / float64(totalSlots) * 100,
		HoursAvailable: float64(availableCount) * duration.Hours(),
		HoursBooked:    float64(bookedCount) * duration.Hours(),
		BookingCount:   bookingCount,
	}
}

// findNextAvailableSlot ищет хронологически первый свободный слот с началом не раньше from.
//
// Линейный скан с ранним выходом: найденный слот возвращается сразу, дальше
// кандидаты не проверяются. nil означает отсутствие доступности во всём
// горизонте (кандидаты существуют только для дат с операционными часами,
// поэтому слот на закрытую дату вернуться не может).
func findNextAvailableSlot(
	candidates []time.Time,
	booked []domain.TimeRange,
	duration, buffer time.Duration,
	from time.Time,
) *time.Time {
	for _, slot := range candidates {
		if slot.Before(from) {
			continue
		}
		if isSlotAvailable(slot, duration, buffer, booked) {
			found := slot
			return &found
		}
	}

	return nil
}

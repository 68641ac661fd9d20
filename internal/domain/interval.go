package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidTimeRange возвращается, когда границы интервала некорректны (start >= end или нулевые значения)
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// TimeRange полуоткрытый временной интервал [Start, End).
// Единственный тип для операционных часов, бронирований и буферизованных окон:
// все проверки пересечений в системе проходят через метод Overlaps.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создаёт интервал с проверкой инварианта Start < End
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, ErrInvalidTimeRange
	}
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps проверяет строгое пересечение полуоткрытых интервалов:
// [a.Start, a.End) пересекается с [b.Start, b.End), только если
// a.Start < b.End && b.Start < a.End.
// Касание границ (конец одного == начало другого) пересечением НЕ считается.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Expand возвращает интервал, расширенный на by с обеих сторон.
// Используется для построения буферизованного окна вокруг слота.
func (r TimeRange) Expand(by time.Duration) TimeRange {
	return TimeRange{
		Start: r.Start.Add(-by),
		End:   r.End.Add(by),
	}
}

// Duration возвращает длительность интервала
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// HoursByDate операционные часы локации: дата (YYYY-MM-DD) -> непересекающиеся
// интервалы работы в таймзоне анализа. Отсутствие даты означает "закрыто".
type HoursByDate map[string][]TimeRange

package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMalformedTimestamp возвращается, когда метку времени бронирования не удалось разобрать
	ErrMalformedTimestamp = errors.New("malformed booking timestamp")
)

// bookedTimestampLayout формат наивной метки времени после отрезания offset-суффикса
const bookedTimestampLayout = "2006-01-02T15:04:05"

// ParseBookedTimestamp нормализует метку времени бронирования из внешнего фида.
//
// Провайдер отдаёт локальное настенное время с непоследовательным UTC-суффиксом
// ("2024-11-01T09:00:00-04:00", иногда "...Z", иногда дробный offset). Суффикс
// не несёт информации и отрезается, а наивная метка локализуется в таймзоне
// анализа loc.
func ParseBookedTimestamp(raw string, loc *time.Location) (time.Time, error) {
	naive := stripUTCOffset(strings.TrimSpace(raw))
	if naive == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedTimestamp)
	}

	// Отбрасываем дробные секунды, если провайдер их прислал
	if i := strings.IndexByte(naive, '.'); i >= 0 {
		naive = naive[:i]
	}

	t, err := time.ParseInLocation(bookedTimestampLayout, naive, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, raw, err)
	}

	return t, nil
}

// NewBookedRange строит нормализованный интервал бронирования из сырых меток времени.
// Инвариант start < end проверяется конструктором TimeRange.
func NewBookedRange(fromRaw, toRaw string, loc *time.Location) (TimeRange, error) {
	start, err := ParseBookedTimestamp(fromRaw, loc)
	if err != nil {
		return TimeRange{}, err
	}

	end, err := ParseBookedTimestamp(toRaw, loc)
	if err != nil {
		return TimeRange{}, err
	}

	return NewTimeRange(start, end)
}

// stripUTCOffset отрезает UTC-суффикс вида "Z", "+05:00", "-0400" с конца строки.
// Строка без суффикса возвращается как есть.
func stripUTCOffset(s string) string {
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		return s[:len(s)-1]
	}

	// Ищем знак offset после компонента времени (символ 'T' обязателен,
	// иначе знак может принадлежать самой дате)
	tIdx := strings.IndexByte(s, 'T')
	if tIdx < 0 {
		return s
	}

	for i := len(s) - 1; i > tIdx; i-- {
		if s[i] == '+' || s[i] == '-' {
			return s[:i]
		}
	}

	return s
}

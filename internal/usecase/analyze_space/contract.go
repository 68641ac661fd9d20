package analyze_space

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// HoursProvider интерфейс источника операционных часов локации.
// В продакшене это кэш поверх клиента внешнего API: часы локации
// запрашиваются не более одного раза за запуск анализа.
type HoursProvider interface {
	// HoursForLocation возвращает операционные часы локации на диапазон дат [from, to]
	HoursForLocation(ctx context.Context, locationID string, from, to time.Time) (domain.HoursByDate, error)
}

// BookingsProvider интерфейс источника бронирований пространства.
// Возвращает уже нормализованные интервалы в таймзоне анализа и количество
// отброшенных некорректных записей.
type BookingsProvider interface {
	BookingsForSpace(ctx context.Context, spaceID string, from time.Time, days int) ([]domain.TimeRange, int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

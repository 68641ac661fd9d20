package hourscache

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// HoursProvider интерфейс источника операционных часов (клиент внешнего API)
type HoursProvider interface {
	HoursForLocation(ctx context.Context, locationID string, from, to time.Time) (domain.HoursByDate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Cache кэш операционных часов на один запуск анализа.
//
// Несколько пространств одной локации делят одни и те же часы: кэш гарантирует
// не больше одного запроса к провайдеру на локацию за запуск. Ключ — только
// ID локации: диапазон дат внутри одного запуска фиксирован, поэтому в ключ
// не входит. Закэшированные данные read-only и безопасны для параллельных
// читателей.
//
// Кэш — явный объект, передаваемый в анализ, а не глобальное состояние:
// количество реальных запросов наблюдаемо через Fetches.
type Cache struct {
	provider HoursProvider
	log      Logger

	mu      sync.Mutex
	entries map[string]domain.HoursByDate
	fetches int
}

// New создает новый кэш поверх провайдера часов
func New(provider HoursProvider, log Logger) *Cache {
	return &Cache{
		provider: provider,
		log:      log,
		entries:  make(map[string]domain.HoursByDate),
	}
}

// HoursForLocation возвращает часы локации, запрашивая провайдера не больше одного раза.
//
// Блокировка удерживается на время запроса: конкурентные вызовы по одной
// локации дождутся результата первого вместо дублирования запроса.
func (c *Cache) HoursForLocation(ctx context.Context, locationID string, from, to time.Time) (domain.HoursByDate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hours, ok := c.entries[locationID]; ok {
		return hours, nil
	}

	hours, err := c.provider.HoursForLocation(ctx, locationID, from, to)
	if err != nil {
		// Ошибки не кэшируются: следующий вызов повторит запрос
		return nil, err
	}

	c.entries[locationID] = hours
	c.fetches++
	c.log.Info("HoursCache: fetched and cached hours: location=%s open_dates=%d", locationID, len(hours))

	return hours, nil
}

// Fetches возвращает количество реальных запросов к провайдеру
func (c *Cache) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

package snapshot

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// Run один запуск анализа: идентификатор, дата запуска и строки метрик
// (пространство × окно)
type Run struct {
	ID      uuid.UUID
	RunDate time.Time
	Rows    []Row
}

// Row метрики одного пространства за одно скользящее окно
type Row struct {
	Space         domain.Space
	Period        string
	Metrics       domain.PeriodMetrics
	NextAvailable *time.Time
}

// SeriesPoint точка временного ряда booking_rate для дашборда
type SeriesPoint struct {
	RunDate      time.Time
	SpaceID      string
	SpaceName    string
	LocationName string
	BookingRate  float64
}

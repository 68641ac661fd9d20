package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// Params параметры одного запуска анализа
type Params struct {
	Spaces        []domain.Space // Список пространств из входного файла
	AnalysisStart time.Time      // Полночь дня запуска в таймзоне анализа
	WindowWeeks   int            // Горизонт анализа в неделях
	SlotDuration  time.Duration  // Длительность бронируемого слота
	Buffer        time.Duration  // Буфер вокруг слота
	Workers       int            // Размер пула воркеров (0 = последовательно)
}

// Report итог запуска: результаты в порядке входного списка и счётчики
type Report struct {
	RunID           uuid.UUID
	RunDate         time.Time
	Results         []domain.SpaceAnalysisResult
	FailedSpaces    int
	DroppedBookings int
	Elapsed         time.Duration
}

package analyze_space

import (
	"time"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// Request модель запроса на анализ одного пространства
type Request struct {
	Space         domain.Space  // Пространство и его метаданные
	AnalysisStart time.Time     // Момент начала анализа (полночь в таймзоне анализа)
	WindowWeeks   int           // Горизонт анализа в неделях
	SlotDuration  time.Duration // Длительность бронируемого слота
	Buffer        time.Duration // Буфер вокруг слота при проверке конфликтов
}

// Response модель ответа: результат анализа и счётчик отброшенных записей бронирований
type Response struct {
	Result          domain.SpaceAnalysisResult
	DroppedBookings int
}

package analyze_space

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// UseCase use case анализа загрузки одного пространства.
// Чистая функция от трёх входов: операционные часы, бронирования и момент
// начала анализа. Состояния между вызовами нет, повторный запуск на тех же
// входах даёт идентичный результат.
type UseCase struct {
	hoursProvider    HoursProvider
	bookingsProvider BookingsProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	hoursProvider HoursProvider,
	bookingsProvider BookingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		hoursProvider:    hoursProvider,
		bookingsProvider: bookingsProvider,
		logger:           logger,
	}
}

// Execute выполняет анализ одного пространства
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AnalyzeSpace: space=%s location=%s window=%dw duration=%v",
		req.Space.SpaceID, req.Space.LocationID, req.WindowWeeks, req.SlotDuration)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AnalyzeSpace: validation failed: %v", err)
		return nil, err
	}

	// 2. Границы горизонта анализа
	analysisEnd := req.AnalysisStart.AddDate(0, 0, req.WindowWeeks*7)

	// 3. Операционные часы локации (через кэш: не больше одного запроса на локацию за запуск)
	hours, err := uc.hoursProvider.HoursForLocation(ctx, req.Space.LocationID, req.AnalysisStart, analysisEnd)
	if err != nil {
		uc.logger.Error("AnalyzeSpace: failed to fetch hours: location=%s, error=%v", req.Space.LocationID, err)
		return nil, fmt.Errorf("%w: location=%s: %v", ErrHoursUnavailable, req.Space.LocationID, err)
	}

	// 4. Бронирования пространства (нормализованные, некорректные записи отброшены с подсчётом)
	booked, dropped, err := uc.bookingsProvider.BookingsForSpace(ctx, req.Space.SpaceID, req.AnalysisStart, req.WindowWeeks*7)
	if err != nil {
		uc.logger.Error("AnalyzeSpace: failed to fetch bookings: space=%s, error=%v", req.Space.SpaceID, err)
		return nil, fmt.Errorf("%w: space=%s: %v", ErrBookingsUnavailable, req.Space.SpaceID, err)
	}

	if dropped > 0 {
		uc.logger.Warn("AnalyzeSpace: dropped %d malformed booking records: space=%s", dropped, req.Space.SpaceID)
	}

	// 5. Кандидаты слотов внутри операционных часов
	candidates := generateCandidateSlots(hours, req.SlotDuration)

	// 6. Сортируем бронирования по началу для раннего выхода при повторных сканах
	sortedBooked := sortBookedRanges(booked)

	// 7. Метрики по каждому скользящему окну: разные префиксы одной временной шкалы
	periods := make(map[string]domain.PeriodMetrics, len(domain.AnalysisPeriods))
	for _, period := range domain.AnalysisPeriods {
		cutoff := req.AnalysisStart.AddDate(0, 0, period.Weeks*7)
		periods[period.Name] = metricsForPeriod(candidates, sortedBooked, req.SlotDuration, req.Buffer, cutoff)
	}

	// 8. Ближайший свободный слот от момента начала анализа
	nextAvailable := findNextAvailableSlot(candidates, sortedBooked, req.SlotDuration, req.Buffer, req.AnalysisStart)

	result := domain.SpaceAnalysisResult{
		Space:         req.Space,
		Periods:       periods,
		NextAvailable: nextAvailable,
	}

	uc.logger.Info("AnalyzeSpace: done: space=%s candidates=%d bookings=%d dropped=%d next=%s",
		req.Space.SpaceID, len(candidates), len(sortedBooked), dropped, result.NextAvailableString())

	return &Response{
		Result:          result,
		DroppedBookings: dropped,
	}, nil
}

package domain

import "time"

// AnalysisPeriod именованное скользящее окно анализа, отсчитываемое
// от общего момента начала анализа
type AnalysisPeriod struct {
	Name  string
	Weeks int
}

// PeriodMetrics метрики загрузки пространства за одно скользящее окно.
//
// BookingRatePct считается по занятым дискретным слотам (slot-capacity),
// а не по сумме длительностей бронирований: метрика показывает, сколько
// бронируемых слотов заблокировано, что может расходиться с фактическими
// часами брони, когда бронирования не выровнены по сетке слотов.
type PeriodMetrics struct {
	BookingRatePct float64
	HoursAvailable float64
	HoursBooked    float64
	BookingCount   int
}

// SpaceAnalysisResult результат анализа одного пространства за один запуск:
// идентификация, метрики по каждому окну и ближайший свободный слот.
// NextAvailable == nil означает отсутствие свободных слотов в горизонте анализа.
type SpaceAnalysisResult struct {
	Space         Space
	Periods       map[string]PeriodMetrics
	NextAvailable *time.Time
}

// NextAvailableString возвращает ближайший свободный слот в формате отчёта
// или сентинел NoAvailability
func (r *SpaceAnalysisResult) NextAvailableString() string {
	if r.NextAvailable == nil {
		return NoAvailability
	}
	return r.NextAvailable.Format(NextAvailableFormat)
}

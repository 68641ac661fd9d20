package get_space_metrics

import (
	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/infra/storage/snapshot"
)

// Response метрики пространства из последнего запуска анализа
type Response struct {
	SpaceID       string                   `json:"space_id"`
	SpaceName     string                   `json:"space_name"`
	CategoryName  string                   `json:"category_name"`
	LocationName  string                   `json:"location_name"`
	Periods       map[string]PeriodMetrics `json:"periods"`
	NextAvailable *string                  `json:"next_available"`
}

// PeriodMetrics метрики одного скользящего окна
type PeriodMetrics struct {
	BookingRatePct float64 `json:"booking_rate_pct"`
	HoursAvailable float64 `json:"total_hours_available"`
	HoursBooked    float64 `json:"total_hours_booked"`
	BookingCount   int     `json:"booking_count"`
}

func fromSnapshotRows(rows []snapshot.Row) *Response {
	resp := &Response{Periods: map[string]PeriodMetrics{}}

	for i, row := range rows {
		if i == 0 {
			resp.SpaceID = row.Space.SpaceID
			resp.SpaceName = row.Space.SpaceName
			resp.CategoryName = row.Space.CategoryName
			resp.LocationName = row.Space.LocationName
			if row.NextAvailable != nil {
				formatted := row.NextAvailable.Format(domain.NextAvailableFormat)
				resp.NextAvailable = &formatted
			}
		}

		resp.Periods[row.Period] = PeriodMetrics{
			BookingRatePct: row.Metrics.BookingRatePct,
			HoursAvailable: row.Metrics.HoursAvailable,
			HoursBooked:    row.Metrics.HoursBooked,
			BookingCount:   row.Metrics.BookingCount,
		}
	}

	return resp
}

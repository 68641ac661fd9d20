package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
)

// ResultColumns порядок колонок итогового CSV
func ResultColumns() []string {
	columns := []string{
		"space_id",
		"space_name",
		"category_id",
		"category_name",
		"location_id",
		"location_name",
	}

	for _, period := range domain.AnalysisPeriods {
		columns = append(columns,
			"booking_rate_"+period.Name,
			"total_hours_available_"+period.Name,
			"total_hours_booked_"+period.Name,
			"booking_count_"+period.Name,
		)
	}

	return append(columns, "next_available_booking")
}

// WriteResults пишет результаты анализа в CSV-файл.
// Проценты и часы округляются до двух знаков.
func WriteResults(path string, results []domain.SpaceAnalysisResult) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(ResultColumns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range results {
		if err := w.Write(resultRow(&results[i])); err != nil {
			return fmt.Errorf("failed to write row for space %s: %w", results[i].Space.SpaceID, err)
		}
	}

	w.Flush()
	return w.Error()
}

func resultRow(r *domain.SpaceAnalysisResult) []string {
	row := []string{
		r.Space.SpaceID,
		r.Space.SpaceName,
		r.Space.CategoryID,
		r.Space.CategoryName,
		r.Space.LocationID,
		r.Space.LocationName,
	}

	for _, period := range domain.AnalysisPeriods {
		m := r.Periods[period.Name]
		row = append(row,
			formatFloat(m.BookingRatePct),
			formatFloat(m.HoursAvailable),
			formatFloat(m.HoursBooked),
			strconv.Itoa(m.BookingCount),
		)
	}

	return append(row, r.NextAvailableString())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

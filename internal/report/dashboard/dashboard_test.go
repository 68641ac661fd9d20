package dashboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/infra/storage/snapshot"
	"github.com/m04kA/SMC-SpaceAnalytics/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

type fakeSeries struct {
	points []snapshot.SeriesPoint
	err    error
}

func (f *fakeSeries) MondaySeries(_ context.Context, _ string) ([]snapshot.SeriesPoint, error) {
	return f.points, f.err
}

func sampleResults() []domain.SpaceAnalysisResult {
	return []domain.SpaceAnalysisResult{
		{
			Space: domain.Space{
				SpaceID: "19904", SpaceName: "Studio A",
				CategoryID: "7571", CategoryName: "Media Studios",
				LocationID: "3148", LocationName: "Scott Library",
			},
			Periods: map[string]domain.PeriodMetrics{
				"1week": {BookingRatePct: 42.5, HoursAvailable: 56, HoursBooked: 23.8, BookingCount: 7},
			},
			NextAvailable: ptr.Ptr(time.Date(2026, time.March, 4, 13, 15, 0, 0, time.UTC)),
		},
		{
			Space: domain.Space{
				SpaceID: "19905", SpaceName: "Studio B",
				CategoryID: "7571", CategoryName: "Media Studios",
				LocationID: "3150", LocationName: "Steacie Library",
			},
			Periods: map[string]domain.PeriodMetrics{
				"1week": {BookingRatePct: 100, HoursAvailable: 56, HoursBooked: 56, BookingCount: 19},
			},
			NextAvailable: nil,
		},
	}
}

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator(nil, nopLogger{})
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	html, err := g.Generate(context.Background(), sampleResults(), now)
	require.NoError(t, err)

	page := string(html)
	assert.Contains(t, page, "Scott Library")
	assert.Contains(t, page, "Steacie Library")
	assert.Contains(t, page, "Studio A")
	assert.Contains(t, page, "2026-03-04 13:15")
	assert.Contains(t, page, domain.NoAvailability)
	assert.Contains(t, page, "Last updated: March 2, 2026")
	// без источника временного ряда график не рендерится
	assert.NotContains(t, page, "rateChart")
}

func TestGenerator_Generate_Colors(t *testing.T) {
	g := NewGenerator(nil, nopLogger{})
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	html, err := g.Generate(context.Background(), sampleResults(), now)
	require.NoError(t, err)

	page := string(html)
	// Studio A свободна через 2 дня: промежуточный оттенок
	assert.Contains(t, page, interpolateColor(2))
	// Studio B без доступности: полностью красный
	assert.Contains(t, page, "rgb(239, 68, 68)")
}

func TestGenerator_Generate_WithSeries(t *testing.T) {
	series := &fakeSeries{points: []snapshot.SeriesPoint{
		{RunDate: time.Date(2026, time.February, 23, 0, 0, 0, 0, time.UTC), SpaceID: "19904", SpaceName: "Studio A", LocationName: "Scott Library", BookingRate: 38.2},
		{RunDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), SpaceID: "19904", SpaceName: "Studio A", LocationName: "Scott Library", BookingRate: 42.5},
	}}
	g := NewGenerator(series, nopLogger{})

	html, err := g.Generate(context.Background(), sampleResults(), time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	page := string(html)
	assert.Contains(t, page, "rateChart")
	assert.Contains(t, page, "2026-02-23")
	assert.Contains(t, page, "38.2")
}

func TestGenerator_Generate_SeriesErrorDegrades(t *testing.T) {
	series := &fakeSeries{err: errors.New("db down")}
	g := NewGenerator(series, nopLogger{})

	html, err := g.Generate(context.Background(), sampleResults(), time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "rateChart")
}

func TestGenerator_WriteFile(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(nil, nopLogger{})

	path, err := g.WriteFile(context.Background(), filepath.Join(dir, "docs"), sampleResults(), time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs", "index.html"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Space Availability Dashboard")
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.March, 2, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		next *time.Time
		want int
	}{
		{ptr.Ptr(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)), 0},
		{ptr.Ptr(time.Date(2026, time.March, 3, 0, 15, 0, 0, time.UTC)), 1},
		{ptr.Ptr(time.Date(2026, time.March, 16, 9, 0, 0, 0, time.UTC)), 14},
		{ptr.Ptr(time.Date(2026, time.February, 27, 9, 0, 0, 0, time.UTC)), 0},
		{nil, maxDaysForRed + 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, daysUntil(tt.next, now))
	}
}

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, "rgb(34, 197, 94)", interpolateColor(0))
	assert.Equal(t, "rgb(239, 68, 68)", interpolateColor(maxDaysForRed))
	assert.Equal(t, "rgb(239, 68, 68)", interpolateColor(maxDaysForRed+5))

	mid := interpolateColor(7)
	assert.NotEqual(t, interpolateColor(0), mid)
	assert.NotEqual(t, interpolateColor(maxDaysForRed), mid)
	assert.Contains(t, mid, "rgb(")
}

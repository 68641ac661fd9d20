package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
	"github.com/m04kA/SMC-SpaceAnalytics/pkg/ptr"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spaces.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSpaces(t *testing.T) {
	path := writeTempCSV(t,
		"category_id,category_name,space_id,space_name,location_id,location_name\n"+
			"11073,Media Studios,19904,Studio A,7571,Scott Library\n"+
			"11073,Media Studios,19905,Studio B,7571,Scott Library\n")

	spaces, err := LoadSpaces(path)
	require.NoError(t, err)
	require.Len(t, spaces, 2)

	assert.Equal(t, domain.Space{
		SpaceID:      "19904",
		SpaceName:    "Studio A",
		CategoryID:   "11073",
		CategoryName: "Media Studios",
		LocationID:   "7571",
		LocationName: "Scott Library",
	}, spaces[0])
}

func TestLoadSpaces_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "empty file",
			content: "",
		},
		{
			name:    "missing column",
			content: "category_id,category_name,space_id,space_name,location_id\n1,c,2,s,3\n",
			errText: "location_name",
		},
		{
			name: "empty value reports row number",
			content: "category_id,category_name,space_id,space_name,location_id,location_name\n" +
				"1,c,2,s,3,loc\n" +
				"1,c,,s,3,loc\n",
			errText: "row 3",
		},
		{
			name:    "header only",
			content: "category_id,category_name,space_id,space_name,location_id,location_name\n",
			errText: "no valid space data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSpaces(writeTempCSV(t, tt.content))
			require.ErrorIs(t, err, ErrInvalidData)
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func sampleResult(nextAvailable *time.Time) domain.SpaceAnalysisResult {
	periods := map[string]domain.PeriodMetrics{}
	for i, period := range domain.AnalysisPeriods {
		periods[period.Name] = domain.PeriodMetrics{
			BookingRatePct: float64(10 * (i + 1)),
			HoursAvailable: float64(30 * (i + 1)),
			HoursBooked:    float64(3 * (i + 1)),
			BookingCount:   i + 1,
		}
	}

	return domain.SpaceAnalysisResult{
		Space: domain.Space{
			SpaceID:      "19904",
			SpaceName:    "Studio A",
			CategoryID:   "11073",
			CategoryName: "Media Studios",
			LocationID:   "7571",
			LocationName: "Scott Library",
		},
		Periods:       periods,
		NextAvailable: nextAvailable,
	}
}

func TestWriteResults(t *testing.T) {
	next := time.Date(2026, time.March, 2, 13, 15, 0, 0, time.UTC)
	results := []domain.SpaceAnalysisResult{
		sampleResult(ptr.Ptr(next)),
		sampleResult(nil),
	}

	path := filepath.Join(t.TempDir(), "out", "results.csv")
	require.NoError(t, WriteResults(path, results))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, ResultColumns(), rows[0])
	// 6 полей идентификации + 4 метрики × 5 окон + next_available_booking
	assert.Len(t, rows[0], 27)

	assert.Equal(t, "19904", rows[1][0])
	assert.Equal(t, "10.00", rows[1][6])
	assert.Equal(t, "30.00", rows[1][7])
	assert.Equal(t, "3.00", rows[1][8])
	assert.Equal(t, "1", rows[1][9])
	assert.Equal(t, "2026-03-02 13:15", rows[1][len(rows[1])-1])

	// Сентинел для пространства без доступности
	assert.Equal(t, domain.NoAvailability, rows[2][len(rows[2])-1])
}

func TestWriteResults_Empty(t *testing.T) {
	err := WriteResults(filepath.Join(t.TempDir(), "results.csv"), nil)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSummaries(t *testing.T) {
	next := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)
	results := []domain.SpaceAnalysisResult{
		sampleResult(ptr.Ptr(next)),
		sampleResult(nil),
	}

	var buf bytes.Buffer
	WriteSummaryByLocation(&buf, results)
	out := buf.String()

	assert.Contains(t, out, "SUMMARY BY LOCATION AND CATEGORY")
	assert.Contains(t, out, "Location: Scott Library")
	assert.Contains(t, out, "Category: Media Studios")
	assert.Contains(t, out, "1WEEK")

	buf.Reset()
	WriteLongestLeadTimes(&buf, results, 10)
	out = buf.String()

	assert.Contains(t, out, "TOP 10 SPACES WITH LONGEST LEAD TIMES")
	assert.Contains(t, out, "Studio A")
	assert.Contains(t, out, "2026-03-09 10:00")
}

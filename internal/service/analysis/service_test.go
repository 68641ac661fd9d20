package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/infra/storage/snapshot"
	analyzeSpace "github.com/m04kA/SMC-SpaceAnalytics/internal/usecase/analyze_space"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeAnalyzer возвращает результат по SpaceID; перечисленные в failIDs падают
type fakeAnalyzer struct {
	mu      sync.Mutex
	calls   int
	failIDs map[string]bool
	dropped int
}

func (f *fakeAnalyzer) Execute(_ context.Context, req *analyzeSpace.Request) (*analyzeSpace.Response, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.failIDs[req.Space.SpaceID] {
		return nil, errors.New("provider unavailable")
	}

	return &analyzeSpace.Response{
		Result: domain.SpaceAnalysisResult{
			Space: req.Space,
			Periods: map[string]domain.PeriodMetrics{
				"1week": {BookingRatePct: 50, HoursAvailable: 10, HoursBooked: 5, BookingCount: 2},
			},
		},
		DroppedBookings: f.dropped,
	}, nil
}

type fakeStore struct {
	mu   sync.Mutex
	runs []snapshot.Run
	err  error
}

func (f *fakeStore) InsertRun(_ context.Context, run snapshot.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.runs = append(f.runs, run)
	return nil
}

func testSpaces(n int) []domain.Space {
	spaces := make([]domain.Space, 0, n)
	for i := 0; i < n; i++ {
		spaces = append(spaces, domain.Space{
			SpaceID:      string(rune('a' + i)),
			SpaceName:    "Space " + string(rune('A'+i)),
			CategoryID:   "7571",
			CategoryName: "Media Studios",
			LocationID:   "3148",
			LocationName: "Scott Library",
		})
	}
	return spaces
}

func testParams(spaces []domain.Space) Params {
	return Params{
		Spaces:        spaces,
		AnalysisStart: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		WindowWeeks:   domain.DefaultAnalysisWindowWeeks,
		SlotDuration:  3 * time.Hour,
		Buffer:        15 * time.Minute,
		Workers:       4,
	}
}

func TestService_Run(t *testing.T) {
	analyzer := &fakeAnalyzer{dropped: 1}
	store := &fakeStore{}
	svc := NewService(analyzer, store, nil, nopLogger{})

	spaces := testSpaces(5)
	report, err := svc.Run(context.Background(), testParams(spaces))
	require.NoError(t, err)

	assert.Equal(t, 5, analyzer.calls)
	assert.Len(t, report.Results, 5)
	assert.Equal(t, 0, report.FailedSpaces)
	assert.Equal(t, 5, report.DroppedBookings)
	assert.NotEqual(t, report.RunID.String(), "00000000-0000-0000-0000-000000000000")

	// порядок результатов совпадает с порядком входного списка
	for i, result := range report.Results {
		assert.Equal(t, spaces[i].SpaceID, result.Space.SpaceID)
	}

	// снапшот: по строке на каждое пространство × окно
	require.Len(t, store.runs, 1)
	assert.Equal(t, report.RunID, store.runs[0].ID)
	assert.Len(t, store.runs[0].Rows, 5*len(domain.AnalysisPeriods))
}

func TestService_Run_SkipsFailedSpaces(t *testing.T) {
	analyzer := &fakeAnalyzer{failIDs: map[string]bool{"b": true, "d": true}}
	svc := NewService(analyzer, nil, nil, nopLogger{})

	spaces := testSpaces(5)
	report, err := svc.Run(context.Background(), testParams(spaces))
	require.NoError(t, err)

	assert.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.FailedSpaces)

	ids := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		ids = append(ids, r.Space.SpaceID)
	}
	assert.Equal(t, []string{"a", "c", "e"}, ids)
}

func TestService_Run_AllSpacesFailed(t *testing.T) {
	analyzer := &fakeAnalyzer{failIDs: map[string]bool{"a": true, "b": true}}
	svc := NewService(analyzer, nil, nil, nopLogger{})

	report, err := svc.Run(context.Background(), testParams(testSpaces(2)))
	assert.ErrorIs(t, err, ErrAllSpacesFailed)
	assert.Nil(t, report)
}

func TestService_Run_NoSpaces(t *testing.T) {
	svc := NewService(&fakeAnalyzer{}, nil, nil, nopLogger{})

	report, err := svc.Run(context.Background(), testParams(nil))
	assert.ErrorIs(t, err, ErrNoSpaces)
	assert.Nil(t, report)
}

func TestService_Run_StoreErrorDoesNotFailRun(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	store := &fakeStore{err: errors.New("db down")}
	svc := NewService(analyzer, store, nil, nopLogger{})

	report, err := svc.Run(context.Background(), testParams(testSpaces(2)))
	require.NoError(t, err)
	assert.Len(t, report.Results, 2)
}

func TestService_Run_SequentialWhenNoWorkers(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	svc := NewService(analyzer, nil, nil, nopLogger{})

	params := testParams(testSpaces(3))
	params.Workers = 0

	report, err := svc.Run(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, report.Results, 3)
}

package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/infra/storage/snapshot"
	analyzeSpace "github.com/m04kA/SMC-SpaceAnalytics/internal/usecase/analyze_space"
	"github.com/m04kA/SMC-SpaceAnalytics/pkg/metrics"
)

// Service прогоняет анализ по всем пространствам из входного списка
type Service struct {
	analyzer SpaceAnalyzer
	store    SnapshotStore
	metrics  *metrics.Metrics
	logger   Logger
}

// NewService создает новый сервис запуска анализа.
// store и m могут быть nil: сохранение истории и метрики отключаются.
func NewService(analyzer SpaceAnalyzer, store SnapshotStore, m *metrics.Metrics, logger Logger) *Service {
	return &Service{
		analyzer: analyzer,
		store:    store,
		metrics:  m,
		logger:   logger,
	}
}

type spaceOutcome struct {
	result  *domain.SpaceAnalysisResult
	dropped int
}

// Run анализирует все пространства пулом воркеров.
// Результаты возвращаются в порядке входного списка; упавшие пространства
// пропускаются с логированием, не прерывая запуск.
func (s *Service) Run(ctx context.Context, params Params) (*Report, error) {
	if len(params.Spaces) == 0 {
		return nil, ErrNoSpaces
	}

	started := time.Now()
	runID := uuid.New()
	s.logger.Info("Run: starting analysis run id=%s spaces=%d window_weeks=%d", runID, len(params.Spaces), params.WindowWeeks)

	outcomes := s.analyzeAll(ctx, params)

	report := &Report{
		RunID:   runID,
		RunDate: params.AnalysisStart,
	}
	for _, out := range outcomes {
		if out.result == nil {
			report.FailedSpaces++
			continue
		}
		report.Results = append(report.Results, *out.result)
		report.DroppedBookings += out.dropped
	}
	report.Elapsed = time.Since(started)

	s.observe(report)

	if len(report.Results) == 0 {
		s.logger.Error("Run: analysis run id=%s failed for all %d spaces", runID, len(params.Spaces))
		return nil, ErrAllSpacesFailed
	}

	if s.store != nil {
		if err := s.saveSnapshot(ctx, report); err != nil {
			// история вторична: запуск считается успешным и без неё
			s.logger.Error("Run: failed to persist snapshot for run id=%s: %v", runID, err)
		}
	}

	s.logger.Info("Run: analysis run id=%s finished: analyzed=%d failed=%d dropped_bookings=%d elapsed=%s",
		runID, len(report.Results), report.FailedSpaces, report.DroppedBookings, report.Elapsed)

	return report, nil
}

func (s *Service) analyzeAll(ctx context.Context, params Params) []spaceOutcome {
	workers := params.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(params.Spaces) {
		workers = len(params.Spaces)
	}

	outcomes := make([]spaceOutcome, len(params.Spaces))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = s.analyzeOne(ctx, params, params.Spaces[i])
			}
		}()
	}

	for i := range params.Spaces {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (s *Service) analyzeOne(ctx context.Context, params Params, space domain.Space) spaceOutcome {
	resp, err := s.analyzer.Execute(ctx, &analyzeSpace.Request{
		Space:         space,
		AnalysisStart: params.AnalysisStart,
		WindowWeeks:   params.WindowWeeks,
		SlotDuration:  params.SlotDuration,
		Buffer:        params.Buffer,
	})
	if err != nil {
		s.logger.Error("Run: analysis failed for space id=%s name=%q: %v", space.SpaceID, space.SpaceName, err)
		return spaceOutcome{}
	}

	return spaceOutcome{result: &resp.Result, dropped: resp.DroppedBookings}
}

func (s *Service) saveSnapshot(ctx context.Context, report *Report) error {
	run := snapshot.Run{
		ID:      report.RunID,
		RunDate: report.RunDate,
	}
	for _, result := range report.Results {
		for _, period := range domain.AnalysisPeriods {
			run.Rows = append(run.Rows, snapshot.Row{
				Space:         result.Space,
				Period:        period.Name,
				Metrics:       result.Periods[period.Name],
				NextAvailable: result.NextAvailable,
			})
		}
	}

	return s.store.InsertRun(ctx, run)
}

func (s *Service) observe(report *Report) {
	if s.metrics == nil {
		return
	}

	result := "success"
	if len(report.Results) == 0 {
		result = "failure"
	} else if report.FailedSpaces > 0 {
		result = "partial"
	}

	s.metrics.AnalysisRunsTotal.WithLabelValues(result).Inc()
	s.metrics.SpacesAnalyzedTotal.Add(float64(len(report.Results)))
	s.metrics.SpacesFailedTotal.Add(float64(report.FailedSpaces))
	s.metrics.DroppedBookingsTotal.Add(float64(report.DroppedBookings))
	s.metrics.AnalysisRunDuration.Observe(report.Elapsed.Seconds())
}

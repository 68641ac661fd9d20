package analysis

import (
	"context"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/infra/storage/snapshot"
	analyzeSpace "github.com/m04kA/SMC-SpaceAnalytics/internal/usecase/analyze_space"
)

// SpaceAnalyzer интерфейс юзкейса анализа одного пространства
type SpaceAnalyzer interface {
	Execute(ctx context.Context, req *analyzeSpace.Request) (*analyzeSpace.Response, error)
}

// SnapshotStore интерфейс хранилища истории запусков.
// nil-хранилище допустимо: результаты не сохраняются.
type SnapshotStore interface {
	InsertRun(ctx context.Context, run snapshot.Run) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

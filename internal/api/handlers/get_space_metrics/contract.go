package get_space_metrics

import (
	"context"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/infra/storage/snapshot"
)

type SnapshotStore interface {
	LatestForSpace(ctx context.Context, spaceID string) ([]snapshot.Row, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

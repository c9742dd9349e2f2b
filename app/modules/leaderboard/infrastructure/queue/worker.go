package leaderboardqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	leaderboardservice "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/application"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
	leaderboardmetrics "github.com/Black-And-White-Club/mask-tipper/pkg/observability/metrics/leaderboard"
	"github.com/riverqueue/river"
)

// SnapshotRecorder stores standings snapshots.
type SnapshotRecorder interface {
	RecordSnapshot(ctx context.Context, req leaderboardservice.SnapshotRequest) (leaderboardservice.SnapshotResult, error)
}

// SnapshotWorker records the standings named by a StandingsSnapshotArgs job.
type SnapshotWorker struct {
	river.WorkerDefaults[StandingsSnapshotArgs]
	recorder SnapshotRecorder
	logger   *slog.Logger
	metrics  leaderboardmetrics.LeaderboardMetrics
}

// NewSnapshotWorker creates a new SnapshotWorker.
func NewSnapshotWorker(recorder SnapshotRecorder, logger *slog.Logger, metrics leaderboardmetrics.LeaderboardMetrics) *SnapshotWorker {
	if metrics == nil {
		metrics = leaderboardmetrics.NewNoop()
	}
	return &SnapshotWorker{recorder: recorder, logger: logger, metrics: metrics}
}

// Timeout bounds a single snapshot attempt.
func (w *SnapshotWorker) Timeout(*river.Job[StandingsSnapshotArgs]) time.Duration {
	return 30 * time.Second
}

// Work records the snapshot. A season that no longer exists cancels the job instead of retrying it.
func (w *SnapshotWorker) Work(ctx context.Context, job *river.Job[StandingsSnapshotArgs]) error {
	start := time.Now()
	w.metrics.RecordJobAttempt(ctx, standingsSnapshotKind)
	defer func() {
		w.metrics.RecordJobDuration(ctx, standingsSnapshotKind, time.Since(start))
	}()

	logger := w.logger.With(
		attr.SeasonID(job.Args.SeasonID),
		attr.Int64("job_id", job.ID),
		attr.Int("attempt", job.Attempt),
	)

	res, err := w.recorder.RecordSnapshot(ctx, leaderboardservice.SnapshotRequest{
		SeasonID: seasondomain.SeasonID(job.Args.SeasonID),
		MaskID:   seasondomain.MaskID(job.Args.MaskID),
		Reason:   job.Args.Reason,
	})
	if err != nil {
		w.metrics.RecordJobFailure(ctx, standingsSnapshotKind)
		if seasondomain.IsNotFound(err) {
			logger.WarnContext(ctx, "Season gone, cancelling snapshot job", attr.Error(err))
			return river.JobCancel(err)
		}
		logger.ErrorContext(ctx, "Snapshot job failed", attr.Error(err))
		return fmt.Errorf("failed to record standings snapshot: %w", err)
	}

	w.metrics.RecordJobSuccess(ctx, standingsSnapshotKind)
	logger.InfoContext(ctx, "Snapshot job completed",
		attr.String("snapshot_id", res.Snapshot.ID),
		attr.Any("stored", res.Stored),
	)
	return nil
}

package leaderboardhandlers_test

import (
	"context"

	leaderboardservice "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/handlers"
	leaderboardqueue "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/queue"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// FakeLeaderboardService is a programmable leaderboard service. Unset funcs return zero values.
type FakeLeaderboardService struct {
	trace []string

	GetScoreboardFunc        func(ctx context.Context, seasonID seasondomain.SeasonID) (leaderboardservice.Board, error)
	RenderChartFunc          func(ctx context.Context, seasonID seasondomain.SeasonID) ([]byte, error)
	ExportWorkbookFunc       func(ctx context.Context, seasonID seasondomain.SeasonID) ([]byte, error)
	RecordSnapshotFunc       func(ctx context.Context, req leaderboardservice.SnapshotRequest) (leaderboardservice.SnapshotResult, error)
	ListSnapshotsFunc        func(ctx context.Context, seasonID seasondomain.SeasonID, limit int) ([]leaderboardservice.Snapshot, error)
	PurgeSeasonSnapshotsFunc func(ctx context.Context, seasonID seasondomain.SeasonID) (int, error)
}

func (f *FakeLeaderboardService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the service calls in order.
func (f *FakeLeaderboardService) Trace() []string {
	return append([]string(nil), f.trace...)
}

func (f *FakeLeaderboardService) GetScoreboard(ctx context.Context, seasonID seasondomain.SeasonID) (leaderboardservice.Board, error) {
	f.record("GetScoreboard")
	if f.GetScoreboardFunc != nil {
		return f.GetScoreboardFunc(ctx, seasonID)
	}
	return leaderboardservice.Board{SeasonID: seasonID}, nil
}

func (f *FakeLeaderboardService) RenderChart(ctx context.Context, seasonID seasondomain.SeasonID) ([]byte, error) {
	f.record("RenderChart")
	if f.RenderChartFunc != nil {
		return f.RenderChartFunc(ctx, seasonID)
	}
	return []byte("\x89PNG"), nil
}

func (f *FakeLeaderboardService) ExportWorkbook(ctx context.Context, seasonID seasondomain.SeasonID) ([]byte, error) {
	f.record("ExportWorkbook")
	if f.ExportWorkbookFunc != nil {
		return f.ExportWorkbookFunc(ctx, seasonID)
	}
	return []byte("PK"), nil
}

func (f *FakeLeaderboardService) RecordSnapshot(ctx context.Context, req leaderboardservice.SnapshotRequest) (leaderboardservice.SnapshotResult, error) {
	f.record("RecordSnapshot")
	if f.RecordSnapshotFunc != nil {
		return f.RecordSnapshotFunc(ctx, req)
	}
	return leaderboardservice.SnapshotResult{}, nil
}

func (f *FakeLeaderboardService) ListSnapshots(ctx context.Context, seasonID seasondomain.SeasonID, limit int) ([]leaderboardservice.Snapshot, error) {
	f.record("ListSnapshots")
	if f.ListSnapshotsFunc != nil {
		return f.ListSnapshotsFunc(ctx, seasonID, limit)
	}
	return []leaderboardservice.Snapshot{}, nil
}

func (f *FakeLeaderboardService) PurgeSeasonSnapshots(ctx context.Context, seasonID seasondomain.SeasonID) (int, error) {
	f.record("PurgeSeasonSnapshots")
	if f.PurgeSeasonSnapshotsFunc != nil {
		return f.PurgeSeasonSnapshotsFunc(ctx, seasonID)
	}
	return 0, nil
}

var _ leaderboardservice.Service = (*FakeLeaderboardService)(nil)

// FakeQueue records enqueued snapshot jobs.
type FakeQueue struct {
	Enqueued []leaderboardqueue.StandingsSnapshotArgs
	Jobs     []leaderboardqueue.JobInfo
	Err      error
}

func (q *FakeQueue) EnqueueSnapshot(_ context.Context, args leaderboardqueue.StandingsSnapshotArgs) error {
	if q.Err != nil {
		return q.Err
	}
	q.Enqueued = append(q.Enqueued, args)
	return nil
}

func (q *FakeQueue) PendingJobs(_ context.Context, seasonID string) ([]leaderboardqueue.JobInfo, error) {
	return q.Jobs, q.Err
}

var _ leaderboardhandlers.SnapshotQueue = (*FakeQueue)(nil)

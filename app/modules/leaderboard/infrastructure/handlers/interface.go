package leaderboardhandlers

import (
	"context"
	"net/http"

	leaderboardqueue "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/queue"
	seasonevents "github.com/Black-And-White-Club/mask-tipper/pkg/events/season"
	"github.com/Black-And-White-Club/mask-tipper/pkg/handlerwrapper"
)

// Handlers defines the leaderboard event handlers and HTTP endpoints.
type Handlers interface {
	// --- EVENTS ---

	// HandleSeasonUpdated recomputes the scoreboard and announces it season-scoped.
	HandleSeasonUpdated(ctx context.Context, payload *seasonevents.SeasonUpdatedPayloadV1) ([]handlerwrapper.Result, error)
	// HandleMaskRevealed queues a standings snapshot.
	HandleMaskRevealed(ctx context.Context, payload *seasonevents.MaskRevealedPayloadV1) ([]handlerwrapper.Result, error)
	// HandleSeasonDeleted drops the stored snapshots of the season.
	HandleSeasonDeleted(ctx context.Context, payload *seasonevents.SeasonDeletedPayloadV1) ([]handlerwrapper.Result, error)

	// --- HTTP ---

	GetScoreboard(w http.ResponseWriter, r *http.Request)
	GetScoreboardChart(w http.ResponseWriter, r *http.Request)
	GetScoreboardWorkbook(w http.ResponseWriter, r *http.Request)
	ListSnapshots(w http.ResponseWriter, r *http.Request)
	RecordSnapshot(w http.ResponseWriter, r *http.Request)
	ListPendingJobs(w http.ResponseWriter, r *http.Request)
}

// SnapshotQueue schedules snapshot jobs.
type SnapshotQueue interface {
	EnqueueSnapshot(ctx context.Context, args leaderboardqueue.StandingsSnapshotArgs) error
	PendingJobs(ctx context.Context, seasonID string) ([]leaderboardqueue.JobInfo, error)
}

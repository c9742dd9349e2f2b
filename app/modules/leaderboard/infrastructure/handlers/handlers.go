package leaderboardhandlers

import (
	"log/slog"

	leaderboardservice "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/application"
)

// LeaderboardHandlers handles leaderboard events and requests.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	queue   SnapshotQueue
	logger  *slog.Logger
}

// NewLeaderboardHandlers creates a new instance of LeaderboardHandlers. With a nil queue,
// snapshots are recorded inline instead of through a background job.
func NewLeaderboardHandlers(service leaderboardservice.Service, queue SnapshotQueue, logger *slog.Logger) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardHandlers{
		service: service,
		queue:   queue,
		logger:  logger,
	}
}

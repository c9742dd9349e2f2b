package leaderboardqueue

import (
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

const (
	// QueueName is the dedicated river queue for leaderboard jobs.
	QueueName = "leaderboard"

	standingsSnapshotKind = "standings_snapshot"
)

// StandingsSnapshotArgs asks for the standings of a season to be recorded.
type StandingsSnapshotArgs struct {
	SeasonID string `json:"season_id"`
	MaskID   string `json:"mask_id,omitempty"`
	Reason   string `json:"reason"`
}

// Kind returns the job type identifier for River
func (StandingsSnapshotArgs) Kind() string { return standingsSnapshotKind }

// InsertOpts deduplicates jobs with equal args while one is still waiting or running.
// Once it finishes, the same args may be enqueued again.
func (StandingsSnapshotArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       QueueName,
		MaxAttempts: 5,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRetryable,
				rivertype.JobStateRunning,
				rivertype.JobStateScheduled,
			},
		},
	}
}

// JobInfo represents information about a queued job (for debugging/monitoring)
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	SeasonID    string `json:"seasonId"`
	MaskID      string `json:"maskId,omitempty"`
	State       string `json:"state"`
	CreatedAt   string `json:"createdAt"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"maxAttempts"`
}

// Package leaderboardevents defines the topics and payloads published by the leaderboard module.
package leaderboardevents

import "time"

const (
	// LeaderboardUpdatedV1 carries a freshly computed scoreboard. It is published
	// season-scoped as leaderboard.updated.v1.<season id>.
	LeaderboardUpdatedV1 = "leaderboard.updated.v1"
	// SnapshotRecordedV1 is published after a standings snapshot is stored.
	SnapshotRecordedV1 = "leaderboard.snapshot.recorded.v1"
)

// Standing is one ranked row of a scoreboard.
type Standing struct {
	Position         int    `json:"position"`
	PlayerID         string `json:"player_id"`
	Name             string `json:"name"`
	Color            string `json:"color"`
	Score            int    `json:"score"`
	CounterBetPoints int    `json:"counter_bet_points"`
	TotalScore       int    `json:"total_score"`
	CorrectMasks     int    `json:"correct_masks"`
	WonCounterBets   int    `json:"won_counter_bets"`
}

// LeaderboardUpdatedPayloadV1 is the ranked scoreboard of one season.
type LeaderboardUpdatedPayloadV1 struct {
	SeasonID    string     `json:"season_id"`
	Standings   []Standing `json:"standings"`
	Fingerprint string     `json:"fingerprint"`
	ComputedAt  time.Time  `json:"computed_at"`
}

// SnapshotRecordedPayloadV1 identifies a stored snapshot.
type SnapshotRecordedPayloadV1 struct {
	SeasonID   string    `json:"season_id"`
	SnapshotID string    `json:"snapshot_id"`
	Reason     string    `json:"reason"`
	RecordedAt time.Time `json:"recorded_at"`
}

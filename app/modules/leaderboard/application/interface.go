package leaderboardservice

import (
	"context"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/domain"
	seasonservice "github.com/Black-And-White-Club/mask-tipper/app/modules/season/application"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// Service computes, renders and records season scoreboards.
type Service interface {
	// GetScoreboard scores the current state of a season.
	GetScoreboard(ctx context.Context, seasonID seasondomain.SeasonID) (Board, error)
	// RenderChart returns the scoreboard as a PNG bar chart of total scores.
	RenderChart(ctx context.Context, seasonID seasondomain.SeasonID) ([]byte, error)
	// ExportWorkbook returns the scoreboard as an XLSX workbook.
	ExportWorkbook(ctx context.Context, seasonID seasondomain.SeasonID) ([]byte, error)
	// RecordSnapshot stores the current standings unless they equal the latest snapshot.
	RecordSnapshot(ctx context.Context, req SnapshotRequest) (SnapshotResult, error)
	// ListSnapshots returns stored snapshots, newest first. A limit <= 0 returns all.
	ListSnapshots(ctx context.Context, seasonID seasondomain.SeasonID, limit int) ([]Snapshot, error)
	// PurgeSeasonSnapshots drops the stored history of a removed season.
	PurgeSeasonSnapshots(ctx context.Context, seasonID seasondomain.SeasonID) (int, error)
}

// SeasonReader loads a season together with its participants.
type SeasonReader interface {
	Snapshot(ctx context.Context, id seasondomain.SeasonID) (seasonservice.Snapshot, error)
}

// Standing is a scored player with their 1-based place. Tied players share a place.
type Standing struct {
	Position int `json:"position"`
	leaderboarddomain.PlayerScore
}

// Board is a ranked scoreboard of one season.
type Board struct {
	SeasonID    seasondomain.SeasonID `json:"seasonId"`
	SeasonName  string                `json:"seasonName"`
	Standings   []Standing            `json:"standings"`
	Fingerprint string                `json:"fingerprint"`
	ComputedAt  time.Time             `json:"computedAt"`

	revealedMasks    int
	inertCounterBets int
}

// Scores returns the ranked rows without positions.
func (b Board) Scores() []leaderboarddomain.PlayerScore {
	out := make([]leaderboarddomain.PlayerScore, len(b.Standings))
	for i, s := range b.Standings {
		out[i] = s.PlayerScore
	}
	return out
}

// SnapshotRequest asks for the standings of a season to be recorded.
type SnapshotRequest struct {
	SeasonID seasondomain.SeasonID
	Reason   string
	MaskID   seasondomain.MaskID
}

// Snapshot is a stored scoreboard.
type Snapshot struct {
	ID          string                `json:"id"`
	SeasonID    seasondomain.SeasonID `json:"seasonId"`
	Reason      string                `json:"reason"`
	MaskID      seasondomain.MaskID   `json:"maskId,omitempty"`
	Fingerprint string                `json:"fingerprint"`
	Standings   []Standing            `json:"standings"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// SnapshotResult reports the snapshot covering the current standings and whether it was
// written by this call.
type SnapshotResult struct {
	Snapshot Snapshot `json:"snapshot"`
	Stored   bool     `json:"stored"`
}

// Snapshot reasons.
const (
	ReasonMaskRevealed = "mask_revealed"
	ReasonManual       = "manual"
)

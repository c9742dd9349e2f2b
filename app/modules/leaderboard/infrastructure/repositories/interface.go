package leaderboarddb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for standings snapshot persistence.
//
// Error semantics:
//   - ErrNotFound: no snapshot exists for the season
//   - Other errors: infrastructure failures
type Repository interface {
	// LockSeason serializes snapshot writers of one season until the transaction ends.
	// It must run inside a transaction.
	LockSeason(ctx context.Context, db bun.IDB, seasonID string) error

	// InsertSnapshot stores a new snapshot. A zero ID is generated.
	InsertSnapshot(ctx context.Context, db bun.IDB, snapshot *StandingsSnapshot) error

	// LatestSnapshot returns the most recent snapshot of a season.
	LatestSnapshot(ctx context.Context, db bun.IDB, seasonID string) (*StandingsSnapshot, error)

	// ListSnapshots returns a season's snapshots, newest first. A limit <= 0 returns all.
	ListSnapshots(ctx context.Context, db bun.IDB, seasonID string, limit int) ([]StandingsSnapshot, error)

	// DeleteSeasonSnapshots removes every snapshot of a season and reports how many were removed.
	DeleteSeasonSnapshots(ctx context.Context, db bun.IDB, seasonID string) (int, error)
}

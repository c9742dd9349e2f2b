package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new snapshot repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// snapshotLockNamespace keeps the advisory lock keys apart from other users of hashtext locks.
const snapshotLockNamespace = "standings_snapshots:"

func (r *Impl) LockSeason(ctx context.Context, db bun.IDB, seasonID string) error {
	db = r.resolveDB(db)
	if _, err := db.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", snapshotLockNamespace+seasonID); err != nil {
		return fmt.Errorf("failed to lock season snapshots: %w", err)
	}
	return nil
}

func (r *Impl) InsertSnapshot(ctx context.Context, db bun.IDB, snapshot *StandingsSnapshot) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(snapshot).Returning("created_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert standings snapshot: %w", err)
	}
	return nil
}

func (r *Impl) LatestSnapshot(ctx context.Context, db bun.IDB, seasonID string) (*StandingsSnapshot, error) {
	db = r.resolveDB(db)
	snapshot := new(StandingsSnapshot)
	err := db.NewSelect().
		Model(snapshot).
		Where("season_id = ?", seasonID).
		Order("created_at DESC", "id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return snapshot, nil
}

func (r *Impl) ListSnapshots(ctx context.Context, db bun.IDB, seasonID string, limit int) ([]StandingsSnapshot, error) {
	db = r.resolveDB(db)
	var snapshots []StandingsSnapshot
	q := db.NewSelect().
		Model(&snapshots).
		Where("season_id = ?", seasonID).
		Order("created_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *Impl) DeleteSeasonSnapshots(ctx context.Context, db bun.IDB, seasonID string) (int, error) {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*StandingsSnapshot)(nil)).
		Where("season_id = ?", seasonID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted snapshots: %w", err)
	}
	return int(n), nil
}

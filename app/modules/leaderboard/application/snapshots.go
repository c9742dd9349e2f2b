package leaderboardservice

import (
	"context"
	"errors"
	"fmt"

	leaderboarddb "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/repositories"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/Black-And-White-Club/mask-tipper/pkg/operations"
	"github.com/Black-And-White-Club/mask-tipper/pkg/results"
	"github.com/uptrace/bun"
)

// RecordSnapshot stores the current standings of a season. When the newest stored snapshot
// already has the same fingerprint, that snapshot is returned and nothing is written.
func (s *LeaderboardService) RecordSnapshot(ctx context.Context, req SnapshotRequest) (SnapshotResult, error) {
	if req.Reason == "" {
		req.Reason = ReasonManual
	}

	res, err := observe(s, ctx, "RecordSnapshot", string(req.SeasonID), func(ctx context.Context) (SnapshotResult, error) {
		board, err := s.computeBoard(ctx, req.SeasonID)
		if err != nil {
			return SnapshotResult{}, err
		}
		return operations.Unwrap(operations.RunInTx(s.ops, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[SnapshotResult, error], error) {
			stored, err := s.storeSnapshot(ctx, db, req, board)
			return operations.Classify(s.ops, stored, err)
		}))
	})
	if err != nil {
		return SnapshotResult{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordSnapshot(ctx, res.Stored)
	}
	if res.Stored {
		s.publishSnapshotRecorded(ctx, res.Snapshot)
	}
	return res, nil
}

// storeSnapshot holds the season's snapshot lock so concurrent writers cannot both
// miss each other's fingerprint.
func (s *LeaderboardService) storeSnapshot(ctx context.Context, db bun.IDB, req SnapshotRequest, board Board) (SnapshotResult, error) {
	if err := s.repo.LockSeason(ctx, db, string(req.SeasonID)); err != nil {
		return SnapshotResult{}, err
	}
	latest, err := s.repo.LatestSnapshot(ctx, db, string(req.SeasonID))
	switch {
	case err == nil:
		if latest.Fingerprint == board.Fingerprint {
			return SnapshotResult{Snapshot: fromRow(*latest), Stored: false}, nil
		}
	case errors.Is(err, leaderboarddb.ErrNotFound):
	default:
		return SnapshotResult{}, fmt.Errorf("failed to load latest snapshot: %w", err)
	}

	row := &leaderboarddb.StandingsSnapshot{
		SeasonID:    string(req.SeasonID),
		Reason:      req.Reason,
		MaskID:      string(req.MaskID),
		Fingerprint: board.Fingerprint,
		Entries:     board.Scores(),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.InsertSnapshot(ctx, db, row); err != nil {
		return SnapshotResult{}, err
	}
	return SnapshotResult{Snapshot: fromRow(*row), Stored: true}, nil
}

// ListSnapshots returns stored snapshots, newest first.
func (s *LeaderboardService) ListSnapshots(ctx context.Context, seasonID seasondomain.SeasonID, limit int) ([]Snapshot, error) {
	return perform(s, ctx, "ListSnapshots", string(seasonID), func(ctx context.Context, db bun.IDB) ([]Snapshot, error) {
		rows, err := s.repo.ListSnapshots(ctx, db, string(seasonID), limit)
		if err != nil {
			return nil, err
		}
		out := make([]Snapshot, 0, len(rows))
		for _, row := range rows {
			out = append(out, fromRow(row))
		}
		return out, nil
	})
}

// PurgeSeasonSnapshots drops the stored history of a removed season.
func (s *LeaderboardService) PurgeSeasonSnapshots(ctx context.Context, seasonID seasondomain.SeasonID) (int, error) {
	return perform(s, ctx, "PurgeSeasonSnapshots", string(seasonID), func(ctx context.Context, db bun.IDB) (int, error) {
		return s.repo.DeleteSeasonSnapshots(ctx, db, string(seasonID))
	})
}

func fromRow(row leaderboarddb.StandingsSnapshot) Snapshot {
	return Snapshot{
		ID:          row.ID.String(),
		SeasonID:    seasondomain.SeasonID(row.SeasonID),
		Reason:      row.Reason,
		MaskID:      seasondomain.MaskID(row.MaskID),
		Fingerprint: row.Fingerprint,
		Standings:   withPositions(row.Entries),
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

package leaderboardservice

import (
	"context"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/domain"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// BuildBoard scores season against roster and ranks the result.
func BuildBoard(season seasondomain.Season, roster []seasondomain.Player, computedAt time.Time) (Board, error) {
	sb, err := leaderboarddomain.Compute(season, roster)
	if err != nil {
		return Board{}, err
	}
	return NewBoard(season, sb, computedAt), nil
}

// NewBoard attaches positions and a fingerprint to a computed scoreboard.
func NewBoard(season seasondomain.Season, sb leaderboarddomain.Scoreboard, computedAt time.Time) Board {
	return Board{
		SeasonID:         season.ID,
		SeasonName:       season.Name,
		Standings:        withPositions(sb.Scores),
		Fingerprint:      leaderboarddomain.StandingsFingerprint(sb.Scores),
		ComputedAt:       computedAt.UTC(),
		revealedMasks:    sb.RevealedMasks,
		inertCounterBets: sb.InertCounterBets,
	}
}

func withPositions(scores []leaderboarddomain.PlayerScore) []Standing {
	positions := leaderboarddomain.Positions(scores)
	out := make([]Standing, len(scores))
	for i, score := range scores {
		out[i] = Standing{Position: positions[i], PlayerScore: score}
	}
	return out
}

// GetScoreboard scores the current state of a season.
func (s *LeaderboardService) GetScoreboard(ctx context.Context, seasonID seasondomain.SeasonID) (Board, error) {
	return observe(s, ctx, "GetScoreboard", string(seasonID), func(ctx context.Context) (Board, error) {
		return s.computeBoard(ctx, seasonID)
	})
}

func (s *LeaderboardService) computeBoard(ctx context.Context, seasonID seasondomain.SeasonID) (Board, error) {
	snap, err := s.seasons.Snapshot(ctx, seasonID)
	if err != nil {
		return Board{}, err
	}

	start := time.Now()
	board, err := BuildBoard(snap.Season, snap.Roster, s.now())
	if err != nil {
		return Board{}, err
	}
	if s.metrics != nil {
		s.metrics.RecordScoreboardComputed(ctx, len(board.Standings), board.revealedMasks, board.inertCounterBets, time.Since(start))
	}
	return board, nil
}

package leaderboarddb

import (
	"context"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StandingsSnapshot is a stored, ranked scoreboard of one season.
type StandingsSnapshot struct {
	bun.BaseModel `bun:"table:standings_snapshots,alias:ss"`

	ID          uuid.UUID                       `bun:"id,pk,type:uuid"`
	SeasonID    string                          `bun:"season_id,notnull"`
	Reason      string                          `bun:"reason,notnull"` // e.g. "mask_revealed", "manual"
	MaskID      string                          `bun:"mask_id,nullzero"`
	Fingerprint string                          `bun:"fingerprint,notnull"`
	Entries     []leaderboarddomain.PlayerScore `bun:"entries,type:jsonb,notnull"`
	CreatedAt   time.Time                       `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*StandingsSnapshot)(nil)

func (s *StandingsSnapshot) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Entries == nil {
		s.Entries = []leaderboarddomain.PlayerScore{}
	}
	return nil
}

package leaderboardmigrations

import (
	"context"
	"fmt"

	leaderboarddb "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating standings_snapshots table...")

		if _, err := db.NewCreateTable().Model((*leaderboarddb.StandingsSnapshot)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		_, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_standings_snapshots_season_created ON standings_snapshots (season_id, created_at DESC)").Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping standings_snapshots table...")

		_, err := db.NewDropTable().Model((*leaderboarddb.StandingsSnapshot)(nil)).IfExists().Exec(ctx)
		return err
	})
}

package seasonmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players and seasons tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS players (
					id TEXT PRIMARY KEY,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					color VARCHAR(16) NOT NULL,
					image_url TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_players_position ON players(position);
			`); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS seasons (
					id TEXT PRIMARY KEY,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					document JSONB NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_seasons_position ON seasons(position);
			`); err != nil {
				return fmt.Errorf("failed to create seasons table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping players and seasons tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS seasons;`); err != nil {
				return fmt.Errorf("failed to drop seasons table: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS players;`); err != nil {
				return fmt.Errorf("failed to drop players table: %w", err)
			}
			return nil
		})
	})
}

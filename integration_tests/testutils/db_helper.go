// Package testutils provisions databases for the integration suite.
package testutils

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Black-And-White-Club/mask-tipper/app"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
)

// appTables are truncated between tests.
var appTables = []string{"standings_snapshots", "seasons", "players"}

// RunMigrations applies the River schema and every module's migrations.
func RunMigrations(ctx context.Context, db *bun.DB, pgConnStr string) error {
	if err := runRiverMigrations(ctx, pgConnStr); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}

	migrators := app.NewMigrators(db)
	for _, mod := range app.ModuleMigrations {
		migrator := migrators[mod.Name]
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize %s migration tables: %w", mod.Name, err)
		}
		group, err := migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.Name, err)
		}
		if group.ID == 0 {
			log.Printf("No %s migrations to run", mod.Name)
		} else {
			log.Printf("Ran %s migrations group #%d", mod.Name, group.ID)
		}
	}
	log.Println("All migrations ran successfully")
	return nil
}

func runRiverMigrations(ctx context.Context, pgConnStr string) error {
	pool, err := pgxpool.New(ctx, pgConnStr)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for River migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return err
	}
	return nil
}

// CleanupDatabase truncates the application tables and drops queued jobs.
func CleanupDatabase(ctx context.Context, db *bun.DB) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(appTables, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM river_job"); err != nil {
		return fmt.Errorf("failed to cleanup river jobs: %w", err)
	}
	return nil
}

package leaderboardmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the leaderboard module's schema changes.
var Migrations = migrate.NewMigrations()

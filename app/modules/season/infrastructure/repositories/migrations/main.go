package seasonmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the season module's schema changes.
var Migrations = migrate.NewMigrations()

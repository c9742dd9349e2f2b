package app

import (
	leaderboardmigrations "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/repositories/migrations"
	seasonmigrations "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrations lists each module's migrations in apply order.
var ModuleMigrations = []struct {
	Name       string
	Migrations *migrate.Migrations
}{
	{"season", seasonmigrations.Migrations},
	{"leaderboard", leaderboardmigrations.Migrations},
}

// NewMigrators returns one migrator per module. Each module keeps its own
// bun_migrations table so groups roll back per module.
func NewMigrators(db *bun.DB) map[string]*migrate.Migrator {
	out := make(map[string]*migrate.Migrator, len(ModuleMigrations))
	for _, m := range ModuleMigrations {
		out[m.Name] = migrate.NewMigrator(db, m.Migrations,
			migrate.WithTableName("bun_migrations_"+m.Name),
			migrate.WithLocksTableName("bun_migration_locks_"+m.Name),
		)
	}
	return out
}

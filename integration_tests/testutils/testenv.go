package testutils

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Black-And-White-Club/mask-tipper/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// TestEnvironment is a migrated Postgres database in a container.
type TestEnvironment struct {
	Ctx         context.Context
	PgContainer *postgres.PostgresContainer
	DB          *bun.DB
	DSN         string
}

// NewTestEnvironment starts Postgres, applies all migrations and registers cleanup on t.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("failed to setup postgres container: %v", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	t.Cleanup(func() {
		_ = db.Close()
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	if err := RunMigrations(ctx, db, dsn); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestEnvironment{Ctx: ctx, PgContainer: pgContainer, DB: db, DSN: dsn}
}

// Reset empties every table.
func (env *TestEnvironment) Reset(t *testing.T) {
	t.Helper()
	if err := CleanupDatabase(env.Ctx, env.DB); err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}
}

package leaderboardservice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/domain"
	leaderboarddb "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/repositories"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	leaderboardmetrics "github.com/Black-And-White-Club/mask-tipper/pkg/observability/metrics/leaderboard"
	"github.com/Black-And-White-Club/mask-tipper/pkg/operations"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "LeaderboardService"

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	seasons   SeasonReader
	repo      leaderboarddb.Repository
	logger    *slog.Logger
	metrics   leaderboardmetrics.LeaderboardMetrics
	publisher message.Publisher
	ops       *operations.Runner
	palette   ChartPalette
	now       func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService. publisher may be nil.
func NewLeaderboardService(
	seasons SeasonReader,
	repo leaderboarddb.Repository,
	logger *slog.Logger,
	metrics leaderboardmetrics.LeaderboardMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	publisher message.Publisher,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	ops := &operations.Runner{
		Service:         serviceName,
		Logger:          logger,
		Tracer:          tracer,
		Metrics:         metrics,
		DB:              db,
		IdentifierKey:   "season_id",
		IsDomainFailure: isDomainFailure,
	}
	return &LeaderboardService{
		seasons:   seasons,
		repo:      repo,
		logger:    logger,
		metrics:   metrics,
		publisher: publisher,
		ops:       ops,
		palette:   DefaultPalette,
		now:       time.Now,
	}
}

func isDomainFailure(err error) bool {
	return seasondomain.IsNotFound(err) ||
		seasondomain.IsRuleViolation(err) ||
		errors.Is(err, leaderboarddomain.ErrUnknownPlayer)
}

// observe runs fn with telemetry but without a transaction.
func observe[T any](s *LeaderboardService, ctx context.Context, operation, seasonID string, fn func(ctx context.Context) (T, error)) (T, error) {
	return operations.Observe(s.ops, ctx, operation, seasonID, fn)
}

// perform runs fn inside a transaction with telemetry.
func perform[T any](s *LeaderboardService, ctx context.Context, operation, seasonID string, fn func(ctx context.Context, db bun.IDB) (T, error)) (T, error) {
	return operations.Perform(s.ops, ctx, operation, seasonID, fn)
}

package leaderboardqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
	leaderboardmetrics "github.com/Black-And-White-Club/mask-tipper/pkg/observability/metrics/leaderboard"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

const serviceName = "river"

// QueueService defines the contract for leaderboard background jobs.
type QueueService interface {
	// EnqueueSnapshot queues a standings snapshot. Equal pending jobs are not duplicated.
	EnqueueSnapshot(ctx context.Context, args StandingsSnapshotArgs) error
	// PendingJobs lists snapshot jobs of a season that have not finished (for debugging).
	PendingJobs(ctx context.Context, seasonID string) ([]JobInfo, error)
	// HealthCheck verifies the queue service is healthy
	HealthCheck(ctx context.Context) error
	// Start starts the queue service
	Start(ctx context.Context) error
	// Stop stops the queue service
	Stop(ctx context.Context) error
}

// Ensure Service implements QueueService
var _ QueueService = (*Service)(nil)

// Service runs leaderboard jobs using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics leaderboardmetrics.LeaderboardMetrics
}

// Config configures the queue service.
type Config struct {
	DSN        string
	MaxWorkers int
}

// NewService creates a River client with the snapshot worker registered.
func NewService(
	ctx context.Context,
	bunDB *bun.DB,
	logger *slog.Logger,
	cfg Config,
	metrics leaderboardmetrics.LeaderboardMetrics,
	recorder SnapshotRecorder,
) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_leaderboard_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", serviceName)

	// River requires pgx, not database/sql
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		ctxLogger.Error("Failed to parse DSN for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		ctxLogger.Error("Failed to create pgx pool for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewSnapshotWorker(recorder, ctxLogger, metrics))

	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			QueueName: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", serviceName)
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", serviceName)
	metrics.RecordOperationDuration(ctx, "initialize_service", serviceName, time.Since(start))

	ctxLogger.Info("Leaderboard queue service initialized")
	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: metrics,
	}, nil
}

// Start starts the River queue service
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting leaderboard queue service")
	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop stops the River client and closes its pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info("Stopping leaderboard queue service")
	err := s.client.Stop(ctx)
	s.pool.Close()
	if err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	return nil
}

func (s *Service) EnqueueSnapshot(ctx context.Context, args StandingsSnapshotArgs) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "enqueue_snapshot", serviceName)

	ctxLogger := s.logger.With(
		attr.SeasonID(args.SeasonID),
		attr.String("mask_id", args.MaskID),
		attr.String("operation", "enqueue_snapshot"),
	)

	if args.SeasonID == "" {
		s.metrics.RecordOperationFailure(ctx, "enqueue_snapshot", serviceName)
		return errors.New("snapshot job requires a season id")
	}

	res, err := s.client.Insert(ctx, args, nil)
	if err != nil {
		ctxLogger.Error("Failed to enqueue snapshot job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "enqueue_snapshot", serviceName)
		return fmt.Errorf("failed to enqueue snapshot job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_snapshot", serviceName)
	s.metrics.RecordOperationDuration(ctx, "enqueue_snapshot", serviceName, time.Since(start))

	if res.UniqueSkippedAsDuplicate {
		ctxLogger.Info("Snapshot job already pending", attr.Int64("job_id", res.Job.ID))
		return nil
	}
	ctxLogger.Info("Snapshot job enqueued", attr.Int64("job_id", res.Job.ID))
	return nil
}

func (s *Service) PendingJobs(ctx context.Context, seasonID string) ([]JobInfo, error) {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "pending_jobs", serviceName)

	type riverJobRow struct {
		ID          int64          `bun:"id"`
		Kind        string         `bun:"kind"`
		State       string         `bun:"state"`
		Args        map[string]any `bun:"args,type:jsonb"`
		CreatedAt   time.Time      `bun:"created_at"`
		Attempt     int16          `bun:"attempt"`
		MaxAttempts int16          `bun:"max_attempts"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "args", "created_at", "attempt", "max_attempts").
		Where("kind = ?", standingsSnapshotKind).
		Where("state IN (?)", bun.In([]string{"available", "pending", "retryable", "running", "scheduled"})).
		Where("args->>'season_id' = ?", seasonID).
		Order("created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		s.logger.Error("Failed to query pending jobs", attr.SeasonID(seasonID), attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "pending_jobs", serviceName)
		return nil, fmt.Errorf("failed to query pending jobs: %w", err)
	}

	out := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		maskID, _ := job.Args["mask_id"].(string)
		out[i] = JobInfo{
			ID:          job.ID,
			Kind:        job.Kind,
			SeasonID:    seasonID,
			MaskID:      maskID,
			State:       job.State,
			CreatedAt:   job.CreatedAt.Format(time.RFC3339),
			Attempt:     int(job.Attempt),
			MaxAttempts: int(job.MaxAttempts),
		}
	}

	s.metrics.RecordOperationSuccess(ctx, "pending_jobs", serviceName)
	s.metrics.RecordOperationDuration(ctx, "pending_jobs", serviceName, time.Since(start))
	return out, nil
}

// HealthCheck verifies the queue service is healthy
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}
	if err := s.pool.Ping(ctx); err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		return fmt.Errorf("queue service health check failed: %w", err)
	}
	return nil
}

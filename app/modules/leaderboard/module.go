package leaderboard

import (
	"context"
	"fmt"
	"sync"

	leaderboardservice "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/handlers"
	leaderboardqueue "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/queue"
	leaderboarddb "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/router"
	"github.com/Black-And-White-Club/mask-tipper/pkg/eventbus"
	"github.com/Black-And-White-Club/mask-tipper/pkg/jwt"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	QueueService       *leaderboardqueue.Service
	handlers           leaderboardhandlers.Handlers
	router             *leaderboardrouter.LeaderboardRouter
	cancelFunc         context.CancelFunc
	observability      observability.Observability
}

// NewLeaderboardModule creates and initializes a new leaderboard module. Snapshot jobs
// run on River when queueCfg.DSN is set; otherwise mask reveals are snapshotted inline.
func NewLeaderboardModule(
	ctx context.Context,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	db *bun.DB,
	router *message.Router,
	seasons leaderboardservice.SeasonReader,
	queueCfg leaderboardqueue.Config,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule initializing")

	repo := leaderboarddb.NewRepository(db)
	service := leaderboardservice.NewLeaderboardService(
		seasons, repo, logger, obs.Registry.LeaderboardMetrics, tracer, db, eventBus,
	)

	var (
		queueService *leaderboardqueue.Service
		queue        leaderboardhandlers.SnapshotQueue
	)
	if queueCfg.DSN != "" {
		qs, err := leaderboardqueue.NewService(ctx, db, logger, queueCfg, obs.Registry.LeaderboardMetrics, service)
		if err != nil {
			return nil, fmt.Errorf("failed to create leaderboard queue: %w", err)
		}
		queueService, queue = qs, qs
	} else {
		logger.WarnContext(ctx, "No queue DSN configured, snapshots are recorded inline")
	}

	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, queue, logger)

	lbRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, eventBus, eventBus, tracer)
	if err := lbRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	return &Module{
		LeaderboardService: service,
		QueueService:       queueService,
		handlers:           handlers,
		router:             lbRouter,
		observability:      obs,
	}, nil
}

// RegisterRoutes adds the scoreboard HTTP API to r.
func (m *Module) RegisterRoutes(r chi.Router, tokens jwt.Service) {
	leaderboardrouter.RegisterRoutes(r, m.handlers, tokens)
}

// Run starts the job queue and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Leaderboard queue failed to start", attr.Error(err))
		}
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close stops the job queue and the module goroutine.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Stop(context.Background()); err != nil {
			return fmt.Errorf("failed to stop leaderboard queue: %w", err)
		}
	}

	logger.Info("Leaderboard module stopped")
	return nil
}

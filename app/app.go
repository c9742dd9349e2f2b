package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard"
	leaderboardqueue "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/queue"
	"github.com/Black-And-White-Club/mask-tipper/app/modules/season"
	"github.com/Black-And-White-Club/mask-tipper/config"
	"github.com/Black-And-White-Club/mask-tipper/pkg/eventbus"
	"github.com/Black-And-White-Club/mask-tipper/pkg/jwt"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"golang.org/x/sync/errgroup"
)

// App holds the wired modules and the infrastructure they share.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	Tokens        jwt.Service

	SeasonModule      *season.Module
	LeaderboardModule *leaderboard.Module

	httpServer *http.Server
	wg         sync.WaitGroup
}

// NewApp connects the database and event bus and builds every module. The caller owns
// obs and shuts it down after Close.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Provider.Logger

	db := openDB(cfg.Postgres.DSN)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	bus, err := newEventBus(ctx, cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	router, err := eventbus.NewRouter(logger, obs.Registry.Prometheus)
	if err != nil {
		_ = bus.Close()
		_ = db.Close()
		return nil, fmt.Errorf("failed to create event router: %w", err)
	}

	a := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      bus,
		Router:        router,
		Tokens:        jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL),
	}

	a.SeasonModule, err = season.NewSeasonModule(ctx, obs, bus, db)
	if err != nil {
		a.closeInfra()
		return nil, fmt.Errorf("failed to initialize season module: %w", err)
	}

	a.LeaderboardModule, err = leaderboard.NewLeaderboardModule(ctx, obs, bus, db, router,
		a.SeasonModule.SeasonService,
		leaderboardqueue.Config{DSN: cfg.Postgres.DSN, MaxWorkers: cfg.Queue.MaxWorkers},
	)
	if err != nil {
		a.closeInfra()
		return nil, fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}

	a.httpServer = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return a, nil
}

func openDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// newEventBus connects to NATS when a URL is configured and falls back to the
// in-process bus otherwise.
func newEventBus(ctx context.Context, cfg *config.Config, logger *slog.Logger) (eventbus.EventBus, error) {
	if cfg.NATS.URL == "" {
		logger.WarnContext(ctx, "No NATS URL configured, using in-memory event bus")
		return eventbus.NewInMemoryEventBus(logger), nil
	}

	var opts []nc.Option
	if cfg.NATS.NKeySeed != "" {
		opt, err := eventbus.NKeyOption(cfg.NATS.NKeySeed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	bus, err := eventbus.NewNATSEventBus(ctx, cfg.NATS.URL, cfg.NATS.QueueGroup, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	return bus, nil
}

// Run serves HTTP, metrics and events until ctx is cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Provider.Logger
	g, ctx := errgroup.WithContext(ctx)

	a.wg.Add(2)
	go a.SeasonModule.Run(ctx, &a.wg)
	go a.LeaderboardModule.Run(ctx, &a.wg)

	g.Go(func() error {
		if err := a.Router.Run(ctx); err != nil {
			return fmt.Errorf("event router: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.Observability.ServeMetrics(ctx, a.Config.Observability.MetricsAddress)
	})

	g.Go(func() error {
		logger.InfoContext(ctx, "HTTP server listening", attr.String("address", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close stops the modules and releases the bus and database.
func (a *App) Close() error {
	logger := a.Observability.Provider.Logger

	if err := a.LeaderboardModule.Close(); err != nil {
		logger.Error("Failed to close leaderboard module", attr.Error(err))
	}
	if err := a.SeasonModule.Close(); err != nil {
		logger.Error("Failed to close season module", attr.Error(err))
	}
	a.wg.Wait()

	if err := a.Router.Close(); err != nil {
		logger.Error("Failed to close event router", attr.Error(err))
	}
	a.closeInfra()
	return nil
}

func (a *App) closeInfra() {
	if err := a.EventBus.Close(); err != nil {
		a.Observability.Provider.Logger.Error("Failed to close event bus", attr.Error(err))
	}
	if err := a.DB.Close(); err != nil {
		a.Observability.Provider.Logger.Error("Failed to close database", attr.Error(err))
	}
}

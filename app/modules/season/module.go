package season

import (
	"context"
	"sync"

	seasonservice "github.com/Black-And-White-Club/mask-tipper/app/modules/season/application"
	seasonhandlers "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/handlers"
	seasondb "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/repositories"
	seasonrouter "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/router"
	"github.com/Black-And-White-Club/mask-tipper/pkg/eventbus"
	"github.com/Black-And-White-Club/mask-tipper/pkg/jwt"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the season module.
type Module struct {
	SeasonService seasonservice.Service
	handlers      seasonhandlers.Handlers
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewSeasonModule creates and initializes a new season module.
func NewSeasonModule(
	ctx context.Context,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "season.NewSeasonModule initializing")

	repo := seasondb.NewRepository(db)
	service := seasonservice.NewSeasonService(repo, logger, obs.Registry.SeasonMetrics, tracer, db, eventBus)
	handlers := seasonhandlers.NewSeasonHandlers(service, logger)

	return &Module{
		SeasonService: service,
		handlers:      handlers,
		observability: obs,
	}, nil
}

// RegisterRoutes adds the season HTTP API to r.
func (m *Module) RegisterRoutes(r chi.Router, tokens jwt.Service) {
	seasonrouter.RegisterRoutes(r, m.handlers, tokens)
}

// Run starts the season module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting season module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Season module goroutine stopped")
}

// Close shuts down the season module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping season module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Season module stopped")
	return nil
}

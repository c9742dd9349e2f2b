package leaderboardrouter

import (
	"context"
	"log/slog"

	leaderboardhandlers "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/handlers"
	"github.com/Black-And-White-Club/mask-tipper/pkg/eventbus"
	seasonevents "github.com/Black-And-White-Club/mask-tipper/pkg/events/season"
	"github.com/Black-And-White-Club/mask-tipper/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardRouter binds season events to the leaderboard handlers.
type LeaderboardRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewLeaderboardRouter creates a new instance of the router. Router-wide middleware
// is expected to be installed by whoever built router.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *LeaderboardRouter {
	return &LeaderboardRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure registers all module-specific event handlers.
func (r *LeaderboardRouter) Configure(routerCtx context.Context, handlers leaderboardhandlers.Handlers) error {
	return r.RegisterHandlers(routerCtx, handlers)
}

// handlerDeps provides a scannable structure for the registerHandler helper.
type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandler is a generic helper to reduce boilerplate when adding topics to the router.
// The wrapper publishes results itself, so the handler is registered without a publish topic.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "leaderboard." + topic
	deps.router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.subscriber,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.publisher,
			handler,
		),
	)
}

// RegisterHandlers binds specific event topics to their corresponding handler logic.
func (r *LeaderboardRouter) RegisterHandlers(ctx context.Context, handlers leaderboardhandlers.Handlers) error {
	r.logger.InfoContext(ctx, "Registering Leaderboard Event Handlers")

	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, seasonevents.SeasonUpdatedV1, handlers.HandleSeasonUpdated)
	registerHandler(deps, seasonevents.MaskRevealedV1, handlers.HandleMaskRevealed)
	registerHandler(deps, seasonevents.SeasonDeletedV1, handlers.HandleSeasonDeleted)

	return nil
}

// Close stops the router and cleans up resources.
func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}

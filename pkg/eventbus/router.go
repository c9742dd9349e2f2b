package eventbus

import (
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRouter builds the shared watermill router with correlation ids, retries and
// panic recovery. Router metrics are registered when reg is non-nil.
func NewRouter(logger *slog.Logger, reg prometheus.Registerer) (*message.Router, error) {
	watermillLogger := watermill.NewSlogLogger(logger)
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermillLogger)
	if err != nil {
		return nil, err
	}

	if reg != nil {
		builder := metrics.NewPrometheusMetricsBuilder(reg, "masktipper", "events")
		builder.AddPrometheusRouterMetrics(router)
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          watermillLogger,
		}.Middleware,
		middleware.Recoverer,
	)
	return router, nil
}

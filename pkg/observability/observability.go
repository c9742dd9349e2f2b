// Package observability wires logging, tracing and Prometheus metrics for the service.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	leaderboardmetrics "github.com/Black-And-White-Club/mask-tipper/pkg/observability/metrics/leaderboard"
	seasonmetrics "github.com/Black-And-White-Club/mask-tipper/pkg/observability/metrics/season"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config controls the observability stack.
type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	LogLevel       string
	MetricsAddress string
	OTLPEndpoint   string
	OTLPInsecure   bool
	SampleRate     float64
}

// Provider owns the process-wide logger and tracer provider.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	shutdown       []func(context.Context) error
}

// Registry holds the instruments handed to modules.
type Registry struct {
	Tracer             trace.Tracer
	Prometheus         *prometheus.Registry
	SeasonMetrics      seasonmetrics.SeasonMetrics
	LeaderboardMetrics leaderboardmetrics.LeaderboardMetrics
}

// Observability bundles the provider and registry.
type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds the logger, tracer provider and metric registry. Tracing exports
// over OTLP/gRPC only when an endpoint is configured.
func Init(ctx context.Context, cfg Config) (Observability, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "mask-tipper"
	}
	logger := NewLogger(os.Stdout, cfg)

	provider := &Provider{Logger: logger, TracerProvider: noop.NewTracerProvider()}
	if cfg.OTLPEndpoint != "" {
		tp, err := newTracerProvider(ctx, cfg)
		if err != nil {
			return Observability{}, fmt.Errorf("failed to create tracer provider: %w", err)
		}
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		provider.TracerProvider = tp
		provider.shutdown = append(provider.shutdown, tp.Shutdown)
		logger.InfoContext(ctx, "Tracing enabled", slog.String("endpoint", cfg.OTLPEndpoint))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	seasonMetrics, err := seasonmetrics.NewPrometheus(reg)
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register season metrics: %w", err)
	}
	leaderboardMetrics, err := leaderboardmetrics.NewPrometheus(reg)
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register leaderboard metrics: %w", err)
	}

	return Observability{
		Provider: provider,
		Registry: &Registry{
			Tracer:             provider.TracerProvider.Tracer(cfg.ServiceName),
			Prometheus:         reg,
			SeasonMetrics:      seasonMetrics,
			LeaderboardMetrics: leaderboardMetrics,
		},
	}, nil
}

// NewNoop returns an Observability that logs to the default logger and records nothing.
func NewNoop() Observability {
	tp := noop.NewTracerProvider()
	return Observability{
		Provider: &Provider{Logger: slog.Default(), TracerProvider: tp},
		Registry: &Registry{
			Tracer:             tp.Tracer("noop"),
			Prometheus:         prometheus.NewRegistry(),
			SeasonMetrics:      seasonmetrics.NewNoop(),
			LeaderboardMetrics: leaderboardmetrics.NewNoop(),
		},
	}
}

// NewLogger returns a JSON logger, or a text logger in development.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if strings.EqualFold(cfg.Environment, "development") || strings.EqualFold(cfg.Environment, "dev") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newTracerProvider(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
		attribute.String("deployment.environment", cfg.Environment),
	)

	rate := cfg.SampleRate
	if rate <= 0 || rate > 1 {
		rate = 1
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
	), nil
}

// MetricsHandler exposes the registry in the Prometheus text format.
func (o Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.Registry.Prometheus, promhttp.HandlerOpts{})
}

// ServeMetrics serves /metrics on addr until ctx is cancelled.
func (o Observability) ServeMetrics(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", o.MetricsHandler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	o.Provider.Logger.InfoContext(ctx, "Metrics server listening", slog.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// Shutdown flushes exporters.
func (o Observability) Shutdown(ctx context.Context) error {
	if o.Provider == nil {
		return nil
	}
	var errs []error
	for _, fn := range o.Provider.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Package seasonmetrics defines the metrics recorded by the season module.
package seasonmetrics

import (
	"context"

	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// SeasonMetrics records season service activity.
type SeasonMetrics interface {
	metrics.OperationMetrics
	RecordRuleViolation(ctx context.Context, operation string)
	RecordTipPlaced(ctx context.Context, final bool)
	RecordMaskRevealed(ctx context.Context)
}

type prometheusSeasonMetrics struct {
	*metrics.Operations
	ruleViolations *prometheus.CounterVec
	tips           *prometheus.CounterVec
	reveals        prometheus.Counter
}

// NewPrometheus registers the season collectors on reg.
func NewPrometheus(reg prometheus.Registerer) (SeasonMetrics, error) {
	ops, err := metrics.NewOperations(reg, "masktipper", "season")
	if err != nil {
		return nil, err
	}
	m := &prometheusSeasonMetrics{
		Operations: ops,
		ruleViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masktipper", Subsystem: "season",
			Name: "rule_violations_total", Help: "Commands rejected by a game rule.",
		}, []string{"operation"}),
		tips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masktipper", Subsystem: "season",
			Name: "tips_placed_total", Help: "Tips recorded.",
		}, []string{"final"}),
		reveals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "masktipper", Subsystem: "season",
			Name: "masks_revealed_total", Help: "Mask reveals recorded.",
		}),
	}
	if err := metrics.Register(reg, m.ruleViolations, m.tips, m.reveals); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *prometheusSeasonMetrics) RecordRuleViolation(_ context.Context, operation string) {
	m.ruleViolations.WithLabelValues(operation).Inc()
}

func (m *prometheusSeasonMetrics) RecordTipPlaced(_ context.Context, final bool) {
	label := "false"
	if final {
		label = "true"
	}
	m.tips.WithLabelValues(label).Inc()
}

func (m *prometheusSeasonMetrics) RecordMaskRevealed(context.Context) {
	m.reveals.Inc()
}

type noopSeasonMetrics struct {
	metrics.NoopOperations
}

// NewNoop returns metrics that discard every measurement.
func NewNoop() SeasonMetrics { return noopSeasonMetrics{} }

func (noopSeasonMetrics) RecordRuleViolation(context.Context, string) {}
func (noopSeasonMetrics) RecordTipPlaced(context.Context, bool)       {}
func (noopSeasonMetrics) RecordMaskRevealed(context.Context)          {}

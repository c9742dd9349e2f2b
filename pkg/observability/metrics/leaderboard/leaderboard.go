// Package leaderboardmetrics defines the metrics recorded by the leaderboard module.
package leaderboardmetrics

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// LeaderboardMetrics records scoreboard computation and snapshot activity.
type LeaderboardMetrics interface {
	metrics.OperationMetrics
	RecordScoreboardComputed(ctx context.Context, players, revealedMasks, inertCounterBets int, duration time.Duration)
	RecordSnapshot(ctx context.Context, stored bool)
	RecordJobAttempt(ctx context.Context, kind string)
	RecordJobSuccess(ctx context.Context, kind string)
	RecordJobFailure(ctx context.Context, kind string)
	RecordJobDuration(ctx context.Context, kind string, duration time.Duration)
}

type prometheusLeaderboardMetrics struct {
	*metrics.Operations
	computeDuration prometheus.Histogram
	players         prometheus.Gauge
	revealedMasks   prometheus.Gauge
	inertBets       prometheus.Counter
	snapshots       *prometheus.CounterVec
	jobs            *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
}

const (
	namespace = "masktipper"
	subsystem = "leaderboard"
)

// NewPrometheus registers the leaderboard collectors on reg.
func NewPrometheus(reg prometheus.Registerer) (LeaderboardMetrics, error) {
	ops, err := metrics.NewOperations(reg, namespace, subsystem)
	if err != nil {
		return nil, err
	}
	m := &prometheusLeaderboardMetrics{
		Operations: ops,
		computeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "compute_duration_seconds", Help: "Time spent computing a scoreboard.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		players: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "last_scoreboard_players", Help: "Participants in the most recently computed scoreboard.",
		}),
		revealedMasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "last_scoreboard_revealed_masks", Help: "Revealed masks in the most recently computed scoreboard.",
		}),
		inertBets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "inert_counter_bets_total", Help: "Counter-bets skipped because they could not be resolved.",
		}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "snapshots_total", Help: "Standings snapshot attempts by outcome.",
		}, []string{"outcome"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "jobs_total", Help: "Background job executions by outcome.",
		}, []string{"kind", "outcome"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "job_duration_seconds", Help: "Background job latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	if err := metrics.Register(reg, m.computeDuration, m.players, m.revealedMasks, m.inertBets, m.snapshots, m.jobs, m.jobDuration); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *prometheusLeaderboardMetrics) RecordScoreboardComputed(_ context.Context, players, revealedMasks, inertCounterBets int, duration time.Duration) {
	m.computeDuration.Observe(duration.Seconds())
	m.players.Set(float64(players))
	m.revealedMasks.Set(float64(revealedMasks))
	m.inertBets.Add(float64(inertCounterBets))
}

func (m *prometheusLeaderboardMetrics) RecordSnapshot(_ context.Context, stored bool) {
	outcome := "unchanged"
	if stored {
		outcome = "stored"
	}
	m.snapshots.WithLabelValues(outcome).Inc()
}

func (m *prometheusLeaderboardMetrics) RecordJobAttempt(_ context.Context, kind string) {
	m.jobs.WithLabelValues(kind, "attempt").Inc()
}

func (m *prometheusLeaderboardMetrics) RecordJobSuccess(_ context.Context, kind string) {
	m.jobs.WithLabelValues(kind, "success").Inc()
}

func (m *prometheusLeaderboardMetrics) RecordJobFailure(_ context.Context, kind string) {
	m.jobs.WithLabelValues(kind, "failure").Inc()
}

func (m *prometheusLeaderboardMetrics) RecordJobDuration(_ context.Context, kind string, duration time.Duration) {
	m.jobDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

type noopLeaderboardMetrics struct {
	metrics.NoopOperations
}

// NewNoop returns metrics that discard every measurement.
func NewNoop() LeaderboardMetrics { return noopLeaderboardMetrics{} }

func (noopLeaderboardMetrics) RecordScoreboardComputed(context.Context, int, int, int, time.Duration) {}
func (noopLeaderboardMetrics) RecordSnapshot(context.Context, bool)                                   {}
func (noopLeaderboardMetrics) RecordJobAttempt(context.Context, string)                               {}
func (noopLeaderboardMetrics) RecordJobSuccess(context.Context, string)                               {}
func (noopLeaderboardMetrics) RecordJobFailure(context.Context, string)                               {}
func (noopLeaderboardMetrics) RecordJobDuration(context.Context, string, time.Duration)               {}

// Package metrics provides the Prometheus collectors shared by module metric sets.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records attempts, outcomes and latency of service operations.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// Operations is the Prometheus implementation of OperationMetrics.
type Operations struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var operationLabels = []string{"operation", "service"}

// NewOperations registers the operation collectors under namespace_subsystem_*.
func NewOperations(reg prometheus.Registerer, namespace, subsystem string) (*Operations, error) {
	o := &Operations{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "operation_attempts_total", Help: "Service operations started.",
		}, operationLabels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "operation_success_total", Help: "Service operations that completed without infrastructure error.",
		}, operationLabels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "operation_failure_total", Help: "Service operations that failed or panicked.",
		}, operationLabels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "operation_duration_seconds", Help: "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, operationLabels),
	}
	if err := Register(reg, o.attempts, o.successes, o.failures, o.duration); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Operations) RecordOperationAttempt(_ context.Context, operation, service string) {
	o.attempts.WithLabelValues(operation, service).Inc()
}

func (o *Operations) RecordOperationSuccess(_ context.Context, operation, service string) {
	o.successes.WithLabelValues(operation, service).Inc()
}

func (o *Operations) RecordOperationFailure(_ context.Context, operation, service string) {
	o.failures.WithLabelValues(operation, service).Inc()
}

func (o *Operations) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	o.duration.WithLabelValues(operation, service).Observe(duration.Seconds())
}

// Register registers every collector, reusing collectors that are already registered.
func Register(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// NoopOperations discards every measurement.
type NoopOperations struct{}

func (NoopOperations) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoopOperations) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoopOperations) RecordOperationFailure(context.Context, string, string)                 {}
func (NoopOperations) RecordOperationDuration(context.Context, string, string, time.Duration) {}

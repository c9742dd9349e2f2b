// Package operations runs service operations with tracing, metrics, logging and an
// optional bun transaction. Domain failures travel as results.OperationResult failures
// so they are logged as warnings and never counted as infrastructure errors.
package operations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/metrics"
	"github.com/Black-And-White-Club/mask-tipper/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoResult is returned when an operation finished without a success or failure payload.
var ErrNoResult = errors.New("operation produced no result")

// Runner holds what a service needs to run its operations. Nil Tracer, Metrics and DB
// are allowed; without a DB, transactional operations receive a nil bun.IDB.
type Runner struct {
	Service string
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics metrics.OperationMetrics
	DB      *bun.DB

	// IdentifierKey names the identifier in spans and logs. Defaults to "identifier".
	IdentifierKey string
	// IsDomainFailure reports errors that are expected outcomes rather than faults.
	IsDomainFailure func(error) bool
}

// Func is a single operation step producing a result.
type Func[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// TxFunc is an operation step that runs against a database handle.
type TxFunc[S any, F any] func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error)

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *Runner) identifier(id string) slog.Attr {
	key := r.IdentifierKey
	if key == "" {
		key = "identifier"
	}
	return attr.String(key, id)
}

// Classify turns a (value, error) pair into a result. Errors accepted by
// IsDomainFailure become failures; any other error is returned as is.
func Classify[T any](r *Runner, v T, err error) (results.OperationResult[T, error], error) {
	if err != nil {
		if r.IsDomainFailure != nil && r.IsDomainFailure(err) {
			return results.FailureResult[T, error](err), nil
		}
		return results.OperationResult[T, error]{}, err
	}
	return results.SuccessResult[T, error](v), nil
}

// Unwrap turns an operation result into the (value, error) pair returned to callers.
func Unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if !result.IsSuccess() {
		return zero, ErrNoResult
	}
	return *result.Success, nil
}

// Observe runs fn with telemetry but without a transaction.
func Observe[T any](r *Runner, ctx context.Context, operation, identifier string, fn func(ctx context.Context) (T, error)) (T, error) {
	return Unwrap(WithTelemetry(r, ctx, operation, identifier, func(ctx context.Context) (results.OperationResult[T, error], error) {
		v, err := fn(ctx)
		return Classify(r, v, err)
	}))
}

// Perform runs fn inside a transaction with telemetry.
func Perform[T any](r *Runner, ctx context.Context, operation, identifier string, fn func(ctx context.Context, db bun.IDB) (T, error)) (T, error) {
	return Unwrap(WithTelemetry(r, ctx, operation, identifier, func(ctx context.Context) (results.OperationResult[T, error], error) {
		return RunInTx(r, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[T, error], error) {
			v, err := fn(ctx, db)
			return Classify(r, v, err)
		})
	}))
}

// WithTelemetry wraps op with a span, operation metrics, logging and panic recovery.
func WithTelemetry[S any, F any](r *Runner, ctx context.Context, operation, identifier string, op Func[S, F]) (result results.OperationResult[S, F], err error) {
	logger := r.logger()

	var span trace.Span
	if r.Tracer != nil {
		ctx, span = r.Tracer.Start(ctx, operation, trace.WithAttributes(
			attribute.String("operation", operation),
			attribute.String(r.identifier(identifier).Key, identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if r.Metrics != nil {
		r.Metrics.RecordOperationAttempt(ctx, operation, r.Service)
	}
	start := time.Now()
	defer func() {
		if r.Metrics != nil {
			r.Metrics.RecordOperationDuration(ctx, operation, r.Service, time.Since(start))
		}
	}()

	logger.DebugContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operation))

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s: %v", operation, rec)
			logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				r.identifier(identifier),
				attr.Error(err),
			)
			if r.Metrics != nil {
				r.Metrics.RecordOperationFailure(ctx, operation, r.Service)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrapped := fmt.Errorf("%s: %w", operation, err)
		logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operation),
			r.identifier(identifier),
			attr.Error(wrapped),
		)
		if r.Metrics != nil {
			r.Metrics.RecordOperationFailure(ctx, operation, r.Service)
		}
		span.RecordError(wrapped)
		return result, wrapped
	}

	switch {
	case result.IsFailure():
		logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operation),
			r.identifier(identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	case result.IsSuccess():
		logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operation),
			r.identifier(identifier),
		)
	}

	if r.Metrics != nil {
		r.Metrics.RecordOperationSuccess(ctx, operation, r.Service)
	}
	return result, nil
}

// RunInTx runs fn inside a bun transaction, or directly with a nil handle when the
// runner has no database. An infrastructure error rolls the transaction back.
func RunInTx[S any, F any](r *Runner, ctx context.Context, fn TxFunc[S, F]) (results.OperationResult[S, F], error) {
	if r.DB == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

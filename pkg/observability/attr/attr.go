// Package attr holds slog attribute helpers shared by every module.
package attr

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey struct{}

// WithCorrelationID stores a correlation id on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// CorrelationIDFrom returns the correlation id stored on the context, if any.
func CorrelationIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// ExtractCorrelationID returns the context's correlation id as an attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationIDFrom(ctx))
}

// Error renders err as an attribute; a nil error renders as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// String is slog.String, re-exported so call sites import a single helper package.
func String(key, value string) slog.Attr { return slog.String(key, value) }

// Int is slog.Int.
func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

// Any is slog.Any.
func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// SeasonID is the attribute used for season identifiers across modules.
func SeasonID(id string) slog.Attr { return slog.String("season_id", id) }

// Int64 is slog.Int64.
func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

// Duration is slog.Duration.
func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

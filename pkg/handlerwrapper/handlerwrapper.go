// Package handlerwrapper adapts typed event handlers to watermill message handlers.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Result is a follow-up event produced by a handler.
type Result struct {
	Topic   string
	Payload any
}

// NewMessage marshals payload into a watermill message carrying the context's
// correlation id and trace headers.
func NewMessage(ctx context.Context, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if id := attr.CorrelationIDFrom(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	} else {
		middleware.SetCorrelationID(watermill.NewUUID(), msg)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(msg.Metadata))
	msg.SetContext(ctx)
	return msg, nil
}

// WrapTransformingTyped decodes the message into T, runs handler and publishes every
// returned Result. A decode failure is logged and acked; handler errors nack the message
// so router middleware can retry it.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher message.Publisher,
	handler func(context.Context, *T) ([]Result, error),
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx := otel.GetTextMapPropagator().Extract(msg.Context(), propagation.MapCarrier(msg.Metadata))
		correlationID := middleware.MessageCorrelationID(msg)
		ctx = attr.WithCorrelationID(ctx, correlationID)

		var span trace.Span
		if tracer != nil {
			ctx, span = tracer.Start(ctx, handlerName, trace.WithAttributes(
				attribute.String("message.uuid", msg.UUID),
				attribute.String("correlation_id", correlationID),
			))
			defer span.End()
		}

		start := time.Now()
		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Failed to decode message payload",
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			return nil
		}

		out, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler failed",
				attr.String("handler", handlerName),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			if span != nil {
				span.RecordError(err)
			}
			return err
		}

		for _, r := range out {
			next, err := NewMessage(ctx, r.Payload)
			if err != nil {
				return err
			}
			if err := publisher.Publish(r.Topic, next); err != nil {
				return fmt.Errorf("failed to publish %s: %w", r.Topic, err)
			}
		}

		logger.DebugContext(ctx, "Handler completed",
			attr.String("handler", handlerName),
			attr.Int("results", len(out)),
			slog.Duration("duration", time.Since(start)),
		)
		return nil
	}
}

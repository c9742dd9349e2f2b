// Package eventbus provides the watermill publisher/subscriber pair used between modules.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// EventBus publishes and subscribes to topics.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

type natsEventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// NewNATSEventBus connects a watermill publisher and subscriber to NATS. Subscribers
// share queueGroup so that several service replicas split the work. extra is appended
// to the connection options of both sides.
func NewNATSEventBus(ctx context.Context, natsURL, queueGroup string, logger *slog.Logger, extra ...nc.Option) (EventBus, error) {
	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}
	natsOptions := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(10 * time.Second),
		nc.ReconnectWait(time.Second),
		nc.Name("mask-tipper"),
	}
	natsOptions = append(natsOptions, extra...)

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			Marshaler:   marshaler,
			NatsOptions: natsOptions,
			JetStream:   nats.JetStreamConfig{Disabled: true},
		},
		watermillLogger,
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              natsURL,
			QueueGroupPrefix: queueGroup,
			SubscribersCount: 1,
			Unmarshaler:      marshaler,
			NatsOptions:      natsOptions,
			JetStream:        nats.JetStreamConfig{Disabled: true},
		},
		watermillLogger,
	)
	if err != nil {
		_ = publisher.Close()
		logger.ErrorContext(ctx, "Failed to create Watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Event bus connected", slog.String("nats_url", natsURL))
	return &natsEventBus{publisher: publisher, subscriber: subscriber, logger: logger}, nil
}

func (eb *natsEventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
	}
	if err := eb.publisher.Publish(topic, messages...); err != nil {
		eb.logger.Error("Failed to publish message", slog.String("topic", topic), slog.Any("error", err))
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *natsEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.InfoContext(ctx, "Subscribing to topic", slog.String("topic", topic))
	return eb.subscriber.Subscribe(ctx, topic)
}

func (eb *natsEventBus) Close() error {
	pubErr := eb.publisher.Close()
	subErr := eb.subscriber.Close()
	if pubErr != nil {
		return pubErr
	}
	return subErr
}

// NewInMemoryEventBus returns a process-local bus, used when no NATS URL is configured and in tests.
func NewInMemoryEventBus(logger *slog.Logger) EventBus {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
}

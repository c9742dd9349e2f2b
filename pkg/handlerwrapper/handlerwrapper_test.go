package handlerwrapper_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/mask-tipper/pkg/eventbus"
	"github.com/Black-And-White-Club/mask-tipper/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct {
	SeasonID string `json:"seasonId"`
}

type pong struct {
	SeasonID string `json:"seasonId"`
	Seen     bool   `json:"seen"`
}

func TestWrapTransformingTypedPublishesResults(t *testing.T) {
	bus := eventbus.NewInMemoryEventBus(slog.Default())
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := bus.Subscribe(ctx, "pong")
	require.NoError(t, err)

	var gotCorrelation string
	handler := handlerwrapper.WrapTransformingTyped("test.ping", slog.Default(), nil, bus,
		func(ctx context.Context, p *ping) ([]handlerwrapper.Result, error) {
			gotCorrelation = attr.CorrelationIDFrom(ctx)
			return []handlerwrapper.Result{{Topic: "pong", Payload: pong{SeasonID: p.SeasonID, Seen: true}}}, nil
		})

	in, err := handlerwrapper.NewMessage(attr.WithCorrelationID(context.Background(), "corr-1"), ping{SeasonID: "s1"})
	require.NoError(t, err)
	require.NoError(t, handler(in))

	select {
	case msg := <-out:
		var got pong
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, pong{SeasonID: "s1", Seen: true}, got)
		assert.Equal(t, "corr-1", middleware.MessageCorrelationID(msg))
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("no result published")
	}
	assert.Equal(t, "corr-1", gotCorrelation)
}

func TestWrapTransformingTypedErrors(t *testing.T) {
	bus := eventbus.NewInMemoryEventBus(slog.Default())
	defer bus.Close()

	boom := errors.New("boom")
	calls := 0
	handler := handlerwrapper.WrapTransformingTyped("test.fail", slog.Default(), nil, bus,
		func(context.Context, *ping) ([]handlerwrapper.Result, error) {
			calls++
			return nil, boom
		})

	t.Run("handler error is returned", func(t *testing.T) {
		msg, err := handlerwrapper.NewMessage(context.Background(), ping{SeasonID: "s1"})
		require.NoError(t, err)
		assert.ErrorIs(t, handler(msg), boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("undecodable payload is dropped", func(t *testing.T) {
		msg := message.NewMessage("bad", []byte("{not json"))
		assert.NoError(t, handler(msg))
		assert.Equal(t, 1, calls)
	})
}

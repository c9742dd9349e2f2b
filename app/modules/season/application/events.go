package seasonservice

import (
	"context"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	seasonevents "github.com/Black-And-White-Club/mask-tipper/pkg/events/season"
	"github.com/Black-And-White-Club/mask-tipper/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
)

// publish emits an event after the change has been committed. Failures are logged;
// the stored state is already authoritative.
func (s *SeasonService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	msg, err := handlerwrapper.NewMessage(ctx, payload)
	if err == nil {
		err = s.publisher.Publish(topic, msg)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

func (s *SeasonService) publishSeasonUpdated(ctx context.Context, id seasondomain.SeasonID, operation string) {
	s.publish(ctx, seasonevents.SeasonUpdatedV1, &seasonevents.SeasonUpdatedPayloadV1{
		SeasonID:  string(id),
		Operation: operation,
		UpdatedAt: s.now().UTC(),
	})
}

func (s *SeasonService) publishSeasonDeleted(ctx context.Context, id seasondomain.SeasonID) {
	s.publish(ctx, seasonevents.SeasonDeletedV1, &seasonevents.SeasonDeletedPayloadV1{
		SeasonID:  string(id),
		DeletedAt: s.now().UTC(),
	})
}

func (s *SeasonService) publishMaskRevealed(ctx context.Context, id seasondomain.SeasonID, mask seasondomain.Mask) {
	s.publish(ctx, seasonevents.MaskRevealedV1, &seasonevents.MaskRevealedPayloadV1{
		SeasonID:   string(id),
		MaskID:     string(mask.ID),
		MaskName:   mask.Name,
		Celebrity:  mask.RevealedCelebrity,
		RevealedAt: s.now().UTC(),
	})
}

func (s *SeasonService) publishStateImported(ctx context.Context, state seasondomain.AppState, replaced bool) {
	ids := make([]string, 0, len(state.Seasons))
	for _, season := range state.Seasons {
		ids = append(ids, string(season.ID))
	}
	s.publish(ctx, seasonevents.StateImportedV1, &seasonevents.StateImportedPayloadV1{
		SeasonIDs:  ids,
		Replaced:   replaced,
		ImportedAt: s.now().UTC(),
	})
	for _, id := range ids {
		s.publishSeasonUpdated(ctx, seasondomain.SeasonID(id), "ImportState")
	}
}

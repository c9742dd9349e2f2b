package leaderboardhandlers

import (
	"context"
	"errors"
	"fmt"

	leaderboardservice "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/domain"
	leaderboardqueue "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/queue"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/Black-And-White-Club/mask-tipper/pkg/eventbus"
	leaderboardevents "github.com/Black-And-White-Club/mask-tipper/pkg/events/leaderboard"
	seasonevents "github.com/Black-And-White-Club/mask-tipper/pkg/events/season"
	"github.com/Black-And-White-Club/mask-tipper/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
)

// HandleSeasonUpdated recomputes the scoreboard and publishes it on
// leaderboard.updated.v1.<season id>. A season that is gone or cannot be scored
// produces nothing.
func (h *LeaderboardHandlers) HandleSeasonUpdated(ctx context.Context, payload *seasonevents.SeasonUpdatedPayloadV1) ([]handlerwrapper.Result, error) {
	id := seasondomain.SeasonID(payload.SeasonID)
	board, err := h.service.GetScoreboard(ctx, id)
	if err != nil {
		if seasondomain.IsNotFound(err) || errors.Is(err, leaderboarddomain.ErrUnknownPlayer) {
			h.logger.WarnContext(ctx, "Skipping scoreboard update",
				attr.ExtractCorrelationID(ctx),
				attr.SeasonID(payload.SeasonID),
				attr.Error(err),
			)
			return nil, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic:   eventbus.FormatSeasonScopedTopic(leaderboardevents.LeaderboardUpdatedV1, payload.SeasonID),
		Payload: leaderboardservice.UpdatedPayload(board),
	}}, nil
}

// HandleMaskRevealed queues a standings snapshot for the reveal.
func (h *LeaderboardHandlers) HandleMaskRevealed(ctx context.Context, payload *seasonevents.MaskRevealedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload.SeasonID == "" {
		return nil, fmt.Errorf("mask revealed event without season id")
	}

	if h.queue == nil {
		_, err := h.service.RecordSnapshot(ctx, leaderboardservice.SnapshotRequest{
			SeasonID: seasondomain.SeasonID(payload.SeasonID),
			MaskID:   seasondomain.MaskID(payload.MaskID),
			Reason:   leaderboardservice.ReasonMaskRevealed,
		})
		if err != nil && seasondomain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	err := h.queue.EnqueueSnapshot(ctx, leaderboardqueue.StandingsSnapshotArgs{
		SeasonID: payload.SeasonID,
		MaskID:   payload.MaskID,
		Reason:   leaderboardservice.ReasonMaskRevealed,
	})
	return nil, err
}

// HandleSeasonDeleted drops the stored snapshots of a removed season.
func (h *LeaderboardHandlers) HandleSeasonDeleted(ctx context.Context, payload *seasonevents.SeasonDeletedPayloadV1) ([]handlerwrapper.Result, error) {
	removed, err := h.service.PurgeSeasonSnapshots(ctx, seasondomain.SeasonID(payload.SeasonID))
	if err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "Purged season snapshots",
		attr.ExtractCorrelationID(ctx),
		attr.SeasonID(payload.SeasonID),
		attr.Int("removed", removed),
	)
	return nil, nil
}

package leaderboardservice

import (
	"context"

	leaderboardevents "github.com/Black-And-White-Club/mask-tipper/pkg/events/leaderboard"
	"github.com/Black-And-White-Club/mask-tipper/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
)

// UpdatedPayload converts a board into the leaderboard.updated.v1 payload.
func UpdatedPayload(board Board) *leaderboardevents.LeaderboardUpdatedPayloadV1 {
	return &leaderboardevents.LeaderboardUpdatedPayloadV1{
		SeasonID:    string(board.SeasonID),
		Standings:   eventStandings(board.Standings),
		Fingerprint: board.Fingerprint,
		ComputedAt:  board.ComputedAt,
	}
}

func eventStandings(standings []Standing) []leaderboardevents.Standing {
	out := make([]leaderboardevents.Standing, len(standings))
	for i, st := range standings {
		out[i] = leaderboardevents.Standing{
			Position:         st.Position,
			PlayerID:         string(st.PlayerID),
			Name:             st.Name,
			Color:            st.Color,
			Score:            st.Score,
			CounterBetPoints: st.CounterBetPoints,
			TotalScore:       st.TotalScore,
			CorrectMasks:     st.CorrectMasks,
			WonCounterBets:   st.WonCounterBets,
		}
	}
	return out
}

func (s *LeaderboardService) publishSnapshotRecorded(ctx context.Context, snap Snapshot) {
	if s.publisher == nil {
		return
	}
	msg, err := handlerwrapper.NewMessage(ctx, &leaderboardevents.SnapshotRecordedPayloadV1{
		SeasonID:   string(snap.SeasonID),
		SnapshotID: snap.ID,
		Reason:     snap.Reason,
		RecordedAt: snap.CreatedAt,
	})
	if err == nil {
		err = s.publisher.Publish(leaderboardevents.SnapshotRecordedV1, msg)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish snapshot event",
			attr.ExtractCorrelationID(ctx),
			attr.SeasonID(string(snap.SeasonID)),
			attr.Error(err),
		)
	}
}

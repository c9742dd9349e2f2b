package seasonservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	seasonevents "github.com/Black-And-White-Club/mask-tipper/pkg/events/season"
	seasonmetrics "github.com/Black-And-White-Club/mask-tipper/pkg/observability/metrics/season"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

func newTestService(repo *FakeSeasonRepo, pub *FakePublisher) *SeasonService {
	var publisher message.Publisher
	if pub != nil {
		publisher = pub
	}
	svc := NewSeasonService(repo, slog.Default(), seasonmetrics.NewNoop(), nil, nil, publisher)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	svc.now = func() time.Time { return fixedNow }
	return svc
}

// seededState has one season with alice and bob, one active show and one mask.
func seededState() seasondomain.AppState {
	s := seasondomain.NewSeason("s1", "Season 1", "")
	s.PlayerIDs = []seasondomain.PlayerID{"alice", "bob"}
	s, _ = s.AddShow("show-1")
	s, _, _ = s.AddMask("m1", "Unicorn", "")
	return seasondomain.AppState{
		Players: []seasondomain.Player{
			{ID: "alice", Name: "Alice", Color: seasondomain.ColorFor(0)},
			{ID: "bob", Name: "Bob", Color: seasondomain.ColorFor(1)},
			{ID: "carol", Name: "Carol", Color: seasondomain.ColorFor(2)},
		},
		Seasons: []seasondomain.Season{s},
	}
}

func TestCreateSeasonAndPlayer(t *testing.T) {
	repo := NewFakeSeasonRepo()
	pub := &FakePublisher{}
	svc := newTestService(repo, pub)
	ctx := context.Background()

	season, err := svc.CreateSeason(ctx, "  Staffel 5 ", "https://img")
	require.NoError(t, err)
	assert.Equal(t, seasondomain.SeasonID("id-1"), season.ID)
	assert.Equal(t, "Staffel 5", season.Name)
	assert.Equal(t, "https://img", season.ImageURL)

	_, err = svc.CreateSeason(ctx, "   ", "")
	assert.ErrorIs(t, err, seasondomain.ErrEmptyName)

	p1, err := svc.CreatePlayer(ctx, "Alice")
	require.NoError(t, err)
	p2, err := svc.CreatePlayer(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, seasondomain.ColorFor(0), p1.Color)
	assert.Equal(t, seasondomain.ColorFor(1), p2.Color)

	assert.Equal(t, []string{seasonevents.SeasonUpdatedV1}, pub.Topics())
}

func TestAddTipFlow(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*FakeSeasonRepo)
		player  seasondomain.PlayerID
		wantErr error
	}{
		{name: "participant tips", player: "alice"},
		{name: "non participant rejected", player: "carol", wantErr: seasondomain.ErrPlayerNotInSeason},
		{
			name:    "unknown season",
			player:  "alice",
			setup:   func(r *FakeSeasonRepo) { r.Seed(seasondomain.AppState{}) },
			wantErr: seasondomain.ErrSeasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeSeasonRepo()
			repo.Seed(seededState())
			if tt.setup != nil {
				tt.setup(repo)
			}
			pub := &FakePublisher{}
			svc := newTestService(repo, pub)

			season, err := svc.AddTip(context.Background(), "s1", "m1", tt.player, " Heino ", false)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, pub.Topics())
				assert.NotContains(t, repo.Trace(), "SaveSeason")
				return
			}
			require.NoError(t, err)
			mask, _ := season.Mask("m1")
			tips := mask.Tips.Tips(tt.player)
			require.Len(t, tips, 1)
			assert.Equal(t, "Heino", tips[0].CelebrityName)
			assert.Equal(t, fixedNow.UnixMilli(), tips[0].CreatedAt)
			assert.Equal(t, seasondomain.ShowID("show-1"), tips[0].ShowID)
			assert.Equal(t, []string{"GetSeasonForUpdate", "SaveSeason"}, repo.Trace())
			assert.Equal(t, []string{seasonevents.SeasonUpdatedV1}, pub.Topics())
		})
	}
}

func TestFinalTipLocksMask(t *testing.T) {
	repo := NewFakeSeasonRepo()
	repo.Seed(seededState())
	svc := newTestService(repo, &FakePublisher{})
	ctx := context.Background()

	_, err := svc.AddTip(ctx, "s1", "m1", "alice", "Heino", true)
	require.NoError(t, err)
	_, err = svc.AddTip(ctx, "s1", "m1", "alice", "Nena", false)
	assert.ErrorIs(t, err, seasondomain.ErrFinalTipLocked)
	_, err = svc.DeleteLastTip(ctx, "s1", "m1", "alice")
	assert.ErrorIs(t, err, seasondomain.ErrFinalTipNotRemovable)
}

func TestRevealMaskPublishesReveal(t *testing.T) {
	repo := NewFakeSeasonRepo()
	repo.Seed(seededState())
	pub := &FakePublisher{}
	svc := newTestService(repo, pub)

	season, err := svc.RevealMask(context.Background(), "s1", "m1", " Heino ")
	require.NoError(t, err)
	mask, _ := season.Mask("m1")
	assert.True(t, mask.IsRevealed)
	assert.Equal(t, "Heino", mask.RevealedCelebrity)

	assert.Equal(t, []string{seasonevents.SeasonUpdatedV1, seasonevents.MaskRevealedV1}, pub.Topics())
	var payload seasonevents.MaskRevealedPayloadV1
	require.NoError(t, json.Unmarshal(pub.messages[1].Payload, &payload))
	assert.Equal(t, "s1", payload.SeasonID)
	assert.Equal(t, "Heino", payload.Celebrity)
}

func TestPlaceCounterBet(t *testing.T) {
	repo := NewFakeSeasonRepo()
	repo.Seed(seededState())
	svc := newTestService(repo, &FakePublisher{})
	ctx := context.Background()

	_, err := svc.PlaceCounterBet(ctx, "s1", "m1", "alice", "bob")
	assert.ErrorIs(t, err, seasondomain.ErrNoTargetTips)

	_, err = svc.AddTip(ctx, "s1", "m1", "bob", "Heino", false)
	require.NoError(t, err)
	season, err := svc.PlaceCounterBet(ctx, "s1", "m1", "alice", "bob")
	require.NoError(t, err)
	require.Len(t, season.CounterBets, 1)
	assert.Equal(t, 0, season.CounterBets[0].TargetTipIndex)

	_, err = svc.PlaceCounterBet(ctx, "s1", "m1", "alice", "bob")
	assert.ErrorIs(t, err, seasondomain.ErrDuplicateCounterBet)

	season, err = svc.DeleteCounterBet(ctx, "s1", season.CounterBets[0].ID)
	require.NoError(t, err)
	assert.Empty(t, season.CounterBets)
}

func TestDeletePlayerCascades(t *testing.T) {
	repo := NewFakeSeasonRepo()
	repo.Seed(seededState())
	pub := &FakePublisher{}
	svc := newTestService(repo, pub)
	ctx := context.Background()

	_, err := svc.AddTip(ctx, "s1", "m1", "bob", "Heino", false)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlayer(ctx, "bob"))
	state := repo.State()
	_, ok := state.Player("bob")
	assert.False(t, ok)
	season, _ := state.Season("s1")
	assert.False(t, season.HasPlayer("bob"))
	mask, _ := season.Mask("m1")
	assert.Zero(t, mask.Tips.Len("bob"))

	assert.ErrorIs(t, svc.DeletePlayer(ctx, "bob"), seasondomain.ErrPlayerNotFound)
}

func TestAddParticipantRequiresRosterPlayer(t *testing.T) {
	repo := NewFakeSeasonRepo()
	repo.Seed(seededState())
	svc := newTestService(repo, &FakePublisher{})
	ctx := context.Background()

	season, err := svc.AddParticipant(ctx, "s1", "carol")
	require.NoError(t, err)
	assert.True(t, season.HasPlayer("carol"))

	_, err = svc.AddParticipant(ctx, "s1", "zoe")
	assert.ErrorIs(t, err, seasondomain.ErrPlayerNotFound)

	_, err = svc.RemoveParticipant(ctx, "s1", "zoe")
	assert.ErrorIs(t, err, seasondomain.ErrPlayerNotInSeason)
}

func TestSnapshotResolvesRoster(t *testing.T) {
	repo := NewFakeSeasonRepo()
	repo.Seed(seededState())
	svc := newTestService(repo, nil)

	snap, err := svc.Snapshot(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, snap.Roster, 2)
	assert.Equal(t, seasondomain.PlayerID("alice"), snap.Roster[0].ID)
	assert.Equal(t, seasondomain.PlayerID("bob"), snap.Roster[1].ID)
}

func TestExportImportRoundTrip(t *testing.T) {
	repo := NewFakeSeasonRepo()
	repo.Seed(seededState())
	pub := &FakePublisher{}
	svc := newTestService(repo, pub)
	ctx := context.Background()

	data, err := svc.ExportState(ctx)
	require.NoError(t, err)

	other := NewFakeSeasonRepo()
	otherPub := &FakePublisher{}
	imported, err := newTestService(other, otherPub).ImportState(ctx, data)
	require.NoError(t, err)
	assert.Len(t, imported.Players, 3)
	assert.Len(t, imported.Seasons, 1)
	assert.Equal(t, []string{seasonevents.StateImportedV1, seasonevents.SeasonUpdatedV1}, otherPub.Topics())

	_, err = svc.ImportState(ctx, []byte(`{"nope": true}`))
	assert.ErrorIs(t, err, seasondomain.ErrInvalidAppState)
}

func TestInfrastructureErrorsAreWrapped(t *testing.T) {
	repo := NewFakeSeasonRepo()
	repo.Seed(seededState())
	boom := errors.New("connection reset")
	repo.SaveSeasonFunc = func(context.Context, bun.IDB, seasondomain.Season) error { return boom }
	pub := &FakePublisher{}
	svc := newTestService(repo, pub)

	_, err := svc.AddShow(context.Background(), "s1")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "AddShow")
	assert.Empty(t, pub.Topics())
}

func TestPanicsAreRecovered(t *testing.T) {
	repo := NewFakeSeasonRepo()
	repo.GetSeasonFunc = func(context.Context, bun.IDB, seasondomain.SeasonID) (seasondomain.Season, error) {
		panic("unexpected")
	}
	svc := newTestService(repo, nil)

	_, err := svc.GetSeason(context.Background(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in GetSeason")
}

func TestPublishFailureDoesNotFailCommand(t *testing.T) {
	repo := NewFakeSeasonRepo()
	repo.Seed(seededState())
	svc := newTestService(repo, &FakePublisher{err: errors.New("bus down")})

	season, err := svc.AddShow(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, season.Shows, 2)
	assert.Equal(t, seasondomain.ShowID("id-1"), season.ActiveShow())
}

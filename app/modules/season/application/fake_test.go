package seasonservice

import (
	"context"
	"slices"
	"sync"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	seasondb "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Season Repo
// ------------------------

// FakeSeasonRepo keeps state in memory unless a Func override is set.
type FakeSeasonRepo struct {
	mu    sync.Mutex
	trace []string
	state seasondomain.AppState

	GetSeasonFunc   func(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) (seasondomain.Season, error)
	SaveSeasonFunc  func(ctx context.Context, db bun.IDB, season seasondomain.Season) error
	ListPlayersFunc func(ctx context.Context, db bun.IDB) ([]seasondomain.Player, error)
	ReplaceAllFunc  func(ctx context.Context, db bun.IDB, state seasondomain.AppState) error
}

func NewFakeSeasonRepo() *FakeSeasonRepo {
	return &FakeSeasonRepo{trace: []string{}}
}

func (f *FakeSeasonRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// Seed replaces the in-memory state.
func (f *FakeSeasonRepo) Seed(state seasondomain.AppState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
}

// State returns the in-memory state.
func (f *FakeSeasonRepo) State() seasondomain.AppState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// --- Repository Interface Implementation ---

func (f *FakeSeasonRepo) GetSeason(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) (seasondomain.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetSeason")
	return f.getSeason(ctx, db, id)
}

func (f *FakeSeasonRepo) GetSeasonForUpdate(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) (seasondomain.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetSeasonForUpdate")
	return f.getSeason(ctx, db, id)
}

func (f *FakeSeasonRepo) getSeason(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) (seasondomain.Season, error) {
	if f.GetSeasonFunc != nil {
		return f.GetSeasonFunc(ctx, db, id)
	}
	s, ok := f.state.Season(id)
	if !ok {
		return seasondomain.Season{}, seasondb.ErrNotFound
	}
	return s, nil
}

func (f *FakeSeasonRepo) ListSeasons(ctx context.Context, db bun.IDB) ([]seasondomain.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListSeasons")
	return slices.Clone(f.state.Seasons), nil
}

func (f *FakeSeasonRepo) SaveSeason(ctx context.Context, db bun.IDB, season seasondomain.Season) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SaveSeason")
	if f.SaveSeasonFunc != nil {
		return f.SaveSeasonFunc(ctx, db, season)
	}
	f.state = f.state.PutSeason(season)
	return nil
}

func (f *FakeSeasonRepo) DeleteSeason(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteSeason")
	next, err := f.state.DeleteSeason(id)
	if err != nil {
		return seasondb.ErrNotFound
	}
	f.state = next
	return nil
}

func (f *FakeSeasonRepo) ListPlayers(ctx context.Context, db bun.IDB) ([]seasondomain.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, db)
	}
	return slices.Clone(f.state.Players), nil
}

func (f *FakeSeasonRepo) SavePlayer(ctx context.Context, db bun.IDB, player seasondomain.Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SavePlayer")
	players := slices.Clone(f.state.Players)
	if idx := slices.IndexFunc(players, func(p seasondomain.Player) bool { return p.ID == player.ID }); idx >= 0 {
		players[idx] = player
	} else {
		players = append(players, player)
	}
	f.state.Players = players
	return nil
}

func (f *FakeSeasonRepo) DeletePlayer(ctx context.Context, db bun.IDB, id seasondomain.PlayerID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeletePlayer")
	before := len(f.state.Players)
	f.state.Players = slices.DeleteFunc(slices.Clone(f.state.Players), func(p seasondomain.Player) bool { return p.ID == id })
	if len(f.state.Players) == before {
		return seasondb.ErrNotFound
	}
	return nil
}

func (f *FakeSeasonRepo) ReplaceAll(ctx context.Context, db bun.IDB, state seasondomain.AppState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ReplaceAll")
	if f.ReplaceAllFunc != nil {
		return f.ReplaceAllFunc(ctx, db, state)
	}
	f.state = state
	return nil
}

// --- Accessors for assertions ---

func (f *FakeSeasonRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ seasondb.Repository = (*FakeSeasonRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type published struct {
	Topic   string
	Payload []byte
}

type FakePublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (p *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	for _, m := range messages {
		p.messages = append(p.messages, published{Topic: topic, Payload: m.Payload})
	}
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.Topic)
	}
	return out
}

var _ message.Publisher = (*FakePublisher)(nil)

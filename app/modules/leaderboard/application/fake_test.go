package leaderboardservice

import (
	"context"
	"sort"
	"sync"

	leaderboarddb "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/repositories"
	seasonservice "github.com/Black-And-White-Club/mask-tipper/app/modules/season/application"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeSeasonReader serves snapshots from a fixed app state.
type FakeSeasonReader struct {
	State        seasondomain.AppState
	SnapshotFunc func(ctx context.Context, id seasondomain.SeasonID) (seasonservice.Snapshot, error)
	calls        int
}

func (f *FakeSeasonReader) Snapshot(ctx context.Context, id seasondomain.SeasonID) (seasonservice.Snapshot, error) {
	f.calls++
	if f.SnapshotFunc != nil {
		return f.SnapshotFunc(ctx, id)
	}
	season, ok := f.State.Season(id)
	if !ok {
		return seasonservice.Snapshot{}, seasondomain.ErrSeasonNotFound
	}
	return seasonservice.Snapshot{Season: season, Roster: f.State.Roster(season)}, nil
}

var _ SeasonReader = (*FakeSeasonReader)(nil)

// FakeSnapshotRepo is an in-memory snapshot repository.
type FakeSnapshotRepo struct {
	mu        sync.Mutex
	snapshots []leaderboarddb.StandingsSnapshot
	trace     []string

	LockSeasonFunc     func(ctx context.Context, db bun.IDB, seasonID string) error
	InsertSnapshotFunc func(ctx context.Context, db bun.IDB, snapshot *leaderboarddb.StandingsSnapshot) error
	LatestSnapshotFunc func(ctx context.Context, db bun.IDB, seasonID string) (*leaderboarddb.StandingsSnapshot, error)
}

func (f *FakeSnapshotRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the repository calls in order.
func (f *FakeSnapshotRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeSnapshotRepo) LockSeason(ctx context.Context, db bun.IDB, seasonID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("LockSeason")
	if f.LockSeasonFunc != nil {
		return f.LockSeasonFunc(ctx, db, seasonID)
	}
	return nil
}

func (f *FakeSnapshotRepo) InsertSnapshot(ctx context.Context, db bun.IDB, snapshot *leaderboarddb.StandingsSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertSnapshot")
	if f.InsertSnapshotFunc != nil {
		return f.InsertSnapshotFunc(ctx, db, snapshot)
	}
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	f.snapshots = append(f.snapshots, *snapshot)
	return nil
}

func (f *FakeSnapshotRepo) LatestSnapshot(ctx context.Context, db bun.IDB, seasonID string) (*leaderboarddb.StandingsSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("LatestSnapshot")
	if f.LatestSnapshotFunc != nil {
		return f.LatestSnapshotFunc(ctx, db, seasonID)
	}
	rows := f.bySeason(seasonID)
	if len(rows) == 0 {
		return nil, leaderboarddb.ErrNotFound
	}
	return &rows[0], nil
}

func (f *FakeSnapshotRepo) ListSnapshots(ctx context.Context, db bun.IDB, seasonID string, limit int) ([]leaderboarddb.StandingsSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListSnapshots")
	rows := f.bySeason(seasonID)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *FakeSnapshotRepo) DeleteSeasonSnapshots(ctx context.Context, db bun.IDB, seasonID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteSeasonSnapshots")
	kept := f.snapshots[:0]
	removed := 0
	for _, s := range f.snapshots {
		if s.SeasonID == seasonID {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	f.snapshots = kept
	return removed, nil
}

// bySeason returns the season's snapshots newest first. Insertion order breaks ties.
func (f *FakeSnapshotRepo) bySeason(seasonID string) []leaderboarddb.StandingsSnapshot {
	var out []leaderboarddb.StandingsSnapshot
	for i := len(f.snapshots) - 1; i >= 0; i-- {
		if f.snapshots[i].SeasonID == seasonID {
			out = append(out, f.snapshots[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

var _ leaderboarddb.Repository = (*FakeSnapshotRepo)(nil)

// FakePublisher records published messages.
type FakePublisher struct {
	mu       sync.Mutex
	topics   []string
	messages []*message.Message
	err      error
}

func (p *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	for _, m := range msgs {
		p.topics = append(p.topics, topic)
		p.messages = append(p.messages, m)
	}
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

var _ message.Publisher = (*FakePublisher)(nil)

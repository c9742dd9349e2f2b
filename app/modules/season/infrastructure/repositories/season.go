package seasondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a season or player row does not exist.
var ErrNotFound = errors.New("season record not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new season repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetSeason retrieves a season document.
func (r *Impl) GetSeason(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) (seasondomain.Season, error) {
	return r.getSeason(ctx, r.resolveDB(db), id, false)
}

// GetSeasonForUpdate retrieves a season document and locks its row.
func (r *Impl) GetSeasonForUpdate(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) (seasondomain.Season, error) {
	return r.getSeason(ctx, r.resolveDB(db), id, true)
}

func (r *Impl) getSeason(ctx context.Context, db bun.IDB, id seasondomain.SeasonID, lock bool) (seasondomain.Season, error) {
	row := new(Season)
	q := db.NewSelect().Model(row).Where("id = ?", string(id))
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return seasondomain.Season{}, ErrNotFound
		}
		return seasondomain.Season{}, fmt.Errorf("failed to get season: %w", err)
	}
	return row.Document, nil
}

// ListSeasons returns every season in creation order.
func (r *Impl) ListSeasons(ctx context.Context, db bun.IDB) ([]seasondomain.Season, error) {
	db = r.resolveDB(db)
	var rows []Season
	if err := db.NewSelect().Model(&rows).Order("position ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	out := make([]seasondomain.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Document)
	}
	return out, nil
}

// SaveSeason creates or updates a season document. New seasons are appended after
// every existing one.
func (r *Impl) SaveSeason(ctx context.Context, db bun.IDB, season seasondomain.Season) error {
	db = r.resolveDB(db)
	row := seasonRow(season, 0)
	row.UpdatedAt = time.Now()
	_, err := db.NewInsert().
		Model(row).
		Value("position", "(SELECT COALESCE(MAX(position), -1) + 1 FROM seasons)").
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("document = EXCLUDED.document").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save season: %w", err)
	}
	return nil
}

// DeleteSeason removes a season.
func (r *Impl) DeleteSeason(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Season)(nil)).
		Where("id = ?", string(id)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete season: %w", err)
	}
	return requireRow(result)
}

// ListPlayers returns the roster in registration order.
func (r *Impl) ListPlayers(ctx context.Context, db bun.IDB) ([]seasondomain.Player, error) {
	db = r.resolveDB(db)
	var rows []Player
	if err := db.NewSelect().Model(&rows).Order("position ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	out := make([]seasondomain.Player, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// SavePlayer creates or updates a roster entry.
func (r *Impl) SavePlayer(ctx context.Context, db bun.IDB, player seasondomain.Player) error {
	db = r.resolveDB(db)
	row := playerRow(player, 0)
	row.UpdatedAt = time.Now()
	_, err := db.NewInsert().
		Model(row).
		Value("position", "(SELECT COALESCE(MAX(position), -1) + 1 FROM players)").
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("color = EXCLUDED.color").
		Set("image_url = EXCLUDED.image_url").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

// DeletePlayer removes a roster entry.
func (r *Impl) DeletePlayer(ctx context.Context, db bun.IDB, id seasondomain.PlayerID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Player)(nil)).
		Where("id = ?", string(id)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return requireRow(result)
}

// ReplaceAll discards the stored roster and seasons and stores state instead,
// keeping the order of state's slices.
func (r *Impl) ReplaceAll(ctx context.Context, db bun.IDB, state seasondomain.AppState) error {
	db = r.resolveDB(db)
	if _, err := db.NewDelete().Model((*Season)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear seasons: %w", err)
	}
	if _, err := db.NewDelete().Model((*Player)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear players: %w", err)
	}

	now := time.Now()
	if len(state.Players) > 0 {
		players := make([]*Player, 0, len(state.Players))
		for i, p := range state.Players {
			row := playerRow(p, i)
			row.CreatedAt, row.UpdatedAt = now, now
			players = append(players, row)
		}
		if _, err := db.NewInsert().Model(&players).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert players: %w", err)
		}
	}
	if len(state.Seasons) > 0 {
		seasons := make([]*Season, 0, len(state.Seasons))
		for i, s := range state.Seasons {
			row := seasonRow(s, i)
			row.CreatedAt, row.UpdatedAt = now, now
			seasons = append(seasons, row)
		}
		if _, err := db.NewInsert().Model(&seasons).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert seasons: %w", err)
		}
	}
	return nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

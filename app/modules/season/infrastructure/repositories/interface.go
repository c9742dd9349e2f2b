package seasondb

import (
	"context"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/uptrace/bun"
)

// Repository defines the contract for season and roster persistence.
type Repository interface {
	// GetSeason retrieves a season document.
	GetSeason(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) (seasondomain.Season, error)

	// GetSeasonForUpdate retrieves a season document and locks its row until the transaction ends.
	GetSeasonForUpdate(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) (seasondomain.Season, error)

	// ListSeasons returns every season in creation order.
	ListSeasons(ctx context.Context, db bun.IDB) ([]seasondomain.Season, error)

	// SaveSeason creates or updates a season document.
	SaveSeason(ctx context.Context, db bun.IDB, season seasondomain.Season) error

	// DeleteSeason removes a season.
	DeleteSeason(ctx context.Context, db bun.IDB, id seasondomain.SeasonID) error

	// ListPlayers returns the roster in registration order.
	ListPlayers(ctx context.Context, db bun.IDB) ([]seasondomain.Player, error)

	// SavePlayer creates or updates a roster entry.
	SavePlayer(ctx context.Context, db bun.IDB, player seasondomain.Player) error

	// DeletePlayer removes a roster entry.
	DeletePlayer(ctx context.Context, db bun.IDB, id seasondomain.PlayerID) error

	// ReplaceAll discards the stored roster and seasons and stores state instead.
	ReplaceAll(ctx context.Context, db bun.IDB, state seasondomain.AppState) error
}

package seasonservice

import (
	"context"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// Service is the season module's command and query surface.
type Service interface {
	ListSeasons(ctx context.Context) ([]seasondomain.Season, error)
	GetSeason(ctx context.Context, id seasondomain.SeasonID) (seasondomain.Season, error)
	// Snapshot returns the season together with its participants in roster order.
	Snapshot(ctx context.Context, id seasondomain.SeasonID) (Snapshot, error)
	CreateSeason(ctx context.Context, name, imageURL string) (seasondomain.Season, error)
	UpdateSeason(ctx context.Context, id seasondomain.SeasonID, name string, imageURL *string) (seasondomain.Season, error)
	DeleteSeason(ctx context.Context, id seasondomain.SeasonID) error

	ListPlayers(ctx context.Context) ([]seasondomain.Player, error)
	CreatePlayer(ctx context.Context, name string) (seasondomain.Player, error)
	UpdatePlayer(ctx context.Context, id seasondomain.PlayerID, name, color string, imageURL *string) (seasondomain.Player, error)
	DeletePlayer(ctx context.Context, id seasondomain.PlayerID) error

	AddParticipant(ctx context.Context, seasonID seasondomain.SeasonID, playerID seasondomain.PlayerID) (seasondomain.Season, error)
	RemoveParticipant(ctx context.Context, seasonID seasondomain.SeasonID, playerID seasondomain.PlayerID) (seasondomain.Season, error)

	AddShow(ctx context.Context, seasonID seasondomain.SeasonID) (seasondomain.Season, error)
	DeleteShow(ctx context.Context, seasonID seasondomain.SeasonID, showID seasondomain.ShowID) (seasondomain.Season, error)
	SetActiveShow(ctx context.Context, seasonID seasondomain.SeasonID, showID seasondomain.ShowID) (seasondomain.Season, error)

	AddMask(ctx context.Context, seasonID seasondomain.SeasonID, name, imageURL string) (seasondomain.Season, error)
	UpdateMask(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, name string, imageURL *string) (seasondomain.Season, error)
	DeleteMask(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID) (seasondomain.Season, error)
	RevealMask(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, celebrity string) (seasondomain.Season, error)

	AddTip(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, playerID seasondomain.PlayerID, celebrity string, isFinal bool) (seasondomain.Season, error)
	DeleteLastTip(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, playerID seasondomain.PlayerID) (seasondomain.Season, error)

	PlaceCounterBet(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, bettor, target seasondomain.PlayerID) (seasondomain.Season, error)
	DeleteCounterBet(ctx context.Context, seasonID seasondomain.SeasonID, betID seasondomain.CounterBetID) (seasondomain.Season, error)

	ExportState(ctx context.Context) ([]byte, error)
	ImportState(ctx context.Context, data []byte) (seasondomain.AppState, error)
}

// Snapshot is a season with its participants resolved from the roster.
type Snapshot struct {
	Season seasondomain.Season
	Roster []seasondomain.Player
}

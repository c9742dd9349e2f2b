package seasonservice

import (
	"context"
	"errors"
	"fmt"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	seasondb "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ListPlayers returns the global roster.
func (s *SeasonService) ListPlayers(ctx context.Context) ([]seasondomain.Player, error) {
	return perform(s, ctx, "ListPlayers", "", func(ctx context.Context, db bun.IDB) ([]seasondomain.Player, error) {
		return s.repo.ListPlayers(ctx, db)
	})
}

// CreatePlayer registers a player, picking the next palette color.
func (s *SeasonService) CreatePlayer(ctx context.Context, name string) (seasondomain.Player, error) {
	return perform(s, ctx, "CreatePlayer", name, func(ctx context.Context, db bun.IDB) (seasondomain.Player, error) {
		players, err := s.repo.ListPlayers(ctx, db)
		if err != nil {
			return seasondomain.Player{}, fmt.Errorf("failed to list players: %w", err)
		}
		_, player, err := seasondomain.AppState{Players: players}.AddPlayer(seasondomain.PlayerID(s.newID()), name)
		if err != nil {
			return seasondomain.Player{}, err
		}
		if err := s.repo.SavePlayer(ctx, db, player); err != nil {
			return seasondomain.Player{}, fmt.Errorf("failed to save player: %w", err)
		}
		return player, nil
	})
}

// UpdatePlayer changes a player's name and color and optionally their image.
func (s *SeasonService) UpdatePlayer(ctx context.Context, id seasondomain.PlayerID, name, color string, imageURL *string) (seasondomain.Player, error) {
	return perform(s, ctx, "UpdatePlayer", string(id), func(ctx context.Context, db bun.IDB) (seasondomain.Player, error) {
		players, err := s.repo.ListPlayers(ctx, db)
		if err != nil {
			return seasondomain.Player{}, fmt.Errorf("failed to list players: %w", err)
		}
		current, ok := seasondomain.AppState{Players: players}.Player(id)
		if !ok {
			return seasondomain.Player{}, seasondomain.ErrPlayerNotFound
		}
		updated, err := current.Update(name, color, imageURL)
		if err != nil {
			return seasondomain.Player{}, err
		}
		if err := s.repo.SavePlayer(ctx, db, updated); err != nil {
			return seasondomain.Player{}, fmt.Errorf("failed to save player: %w", err)
		}
		return updated, nil
	})
}

// DeletePlayer removes a player from the roster and from every season they joined.
func (s *SeasonService) DeletePlayer(ctx context.Context, id seasondomain.PlayerID) error {
	touched, err := perform(s, ctx, "DeletePlayer", string(id), func(ctx context.Context, db bun.IDB) ([]seasondomain.SeasonID, error) {
		state, err := s.loadState(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("failed to load state: %w", err)
		}
		next, err := state.DeletePlayer(id)
		if err != nil {
			return nil, err
		}

		var touched []seasondomain.SeasonID
		for _, season := range state.Seasons {
			if !season.HasPlayer(id) {
				continue
			}
			updated, _ := next.Season(season.ID)
			if err := s.repo.SaveSeason(ctx, db, updated); err != nil {
				return nil, fmt.Errorf("failed to save season: %w", err)
			}
			touched = append(touched, season.ID)
		}

		if err := s.repo.DeletePlayer(ctx, db, id); err != nil {
			if errors.Is(err, seasondb.ErrNotFound) {
				return nil, seasondomain.ErrPlayerNotFound
			}
			return nil, err
		}
		return touched, nil
	})
	if err != nil {
		return err
	}
	for _, seasonID := range touched {
		s.publishSeasonUpdated(ctx, seasonID, "DeletePlayer")
	}
	return nil
}

package seasonservice

import (
	"context"
	"errors"
	"fmt"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	seasondb "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ListSeasons returns every season in creation order.
func (s *SeasonService) ListSeasons(ctx context.Context) ([]seasondomain.Season, error) {
	return perform(s, ctx, "ListSeasons", "", func(ctx context.Context, db bun.IDB) ([]seasondomain.Season, error) {
		return s.repo.ListSeasons(ctx, db)
	})
}

// GetSeason returns one season.
func (s *SeasonService) GetSeason(ctx context.Context, id seasondomain.SeasonID) (seasondomain.Season, error) {
	return perform(s, ctx, "GetSeason", string(id), func(ctx context.Context, db bun.IDB) (seasondomain.Season, error) {
		return s.loadSeason(ctx, db, id, false)
	})
}

// Snapshot returns the season and its participants, read in one transaction.
func (s *SeasonService) Snapshot(ctx context.Context, id seasondomain.SeasonID) (Snapshot, error) {
	return perform(s, ctx, "Snapshot", string(id), func(ctx context.Context, db bun.IDB) (Snapshot, error) {
		season, err := s.loadSeason(ctx, db, id, false)
		if err != nil {
			return Snapshot{}, err
		}
		players, err := s.repo.ListPlayers(ctx, db)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to list players: %w", err)
		}
		state := seasondomain.AppState{Players: players}
		return Snapshot{Season: season, Roster: state.Roster(season)}, nil
	})
}

// CreateSeason starts an empty season.
func (s *SeasonService) CreateSeason(ctx context.Context, name, imageURL string) (seasondomain.Season, error) {
	season, err := perform(s, ctx, "CreateSeason", name, func(ctx context.Context, db bun.IDB) (seasondomain.Season, error) {
		season, err := seasondomain.NewSeason(seasondomain.SeasonID(s.newID()), name, "").Rename(name, &imageURL)
		if err != nil {
			return seasondomain.Season{}, err
		}
		if err := s.repo.SaveSeason(ctx, db, season); err != nil {
			return seasondomain.Season{}, fmt.Errorf("failed to save season: %w", err)
		}
		return season, nil
	})
	if err != nil {
		return seasondomain.Season{}, err
	}
	s.publishSeasonUpdated(ctx, season.ID, "CreateSeason")
	return season, nil
}

// UpdateSeason renames a season and optionally replaces its image.
func (s *SeasonService) UpdateSeason(ctx context.Context, id seasondomain.SeasonID, name string, imageURL *string) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "UpdateSeason", id, func(season seasondomain.Season) (seasondomain.Season, error) {
		return season.Rename(name, imageURL)
	})
}

// DeleteSeason removes a season with everything recorded in it.
func (s *SeasonService) DeleteSeason(ctx context.Context, id seasondomain.SeasonID) error {
	_, err := perform(s, ctx, "DeleteSeason", string(id), func(ctx context.Context, db bun.IDB) (struct{}, error) {
		err := s.repo.DeleteSeason(ctx, db, id)
		if errors.Is(err, seasondb.ErrNotFound) {
			return struct{}{}, seasondomain.ErrSeasonNotFound
		}
		return struct{}{}, err
	})
	if err != nil {
		return err
	}
	s.publishSeasonDeleted(ctx, id)
	return nil
}

// AddParticipant enrols a roster player in a season.
func (s *SeasonService) AddParticipant(ctx context.Context, seasonID seasondomain.SeasonID, playerID seasondomain.PlayerID) (seasondomain.Season, error) {
	season, err := perform(s, ctx, "AddParticipant", string(seasonID), func(ctx context.Context, db bun.IDB) (seasondomain.Season, error) {
		players, err := s.repo.ListPlayers(ctx, db)
		if err != nil {
			return seasondomain.Season{}, fmt.Errorf("failed to list players: %w", err)
		}
		if _, ok := (seasondomain.AppState{Players: players}).Player(playerID); !ok {
			return seasondomain.Season{}, seasondomain.ErrPlayerNotFound
		}
		current, err := s.loadSeason(ctx, db, seasonID, true)
		if err != nil {
			return seasondomain.Season{}, err
		}
		next := current.AddParticipant(playerID)
		if err := s.repo.SaveSeason(ctx, db, next); err != nil {
			return seasondomain.Season{}, fmt.Errorf("failed to save season: %w", err)
		}
		return next, nil
	})
	if err != nil {
		return seasondomain.Season{}, err
	}
	s.publishSeasonUpdated(ctx, season.ID, "AddParticipant")
	return season, nil
}

// RemoveParticipant drops a player from a season together with their tips and counter-bets.
func (s *SeasonService) RemoveParticipant(ctx context.Context, seasonID seasondomain.SeasonID, playerID seasondomain.PlayerID) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "RemoveParticipant", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		if !season.HasPlayer(playerID) {
			return season, seasondomain.ErrPlayerNotInSeason
		}
		return season.RemoveParticipant(playerID), nil
	})
}

// AddShow appends the next episode and makes it active.
func (s *SeasonService) AddShow(ctx context.Context, seasonID seasondomain.SeasonID) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "AddShow", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		next, _ := season.AddShow(seasondomain.ShowID(s.newID()))
		return next, nil
	})
}

// DeleteShow removes an episode and everything placed during it.
func (s *SeasonService) DeleteShow(ctx context.Context, seasonID seasondomain.SeasonID, showID seasondomain.ShowID) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "DeleteShow", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		return season.DeleteShow(showID)
	})
}

// SetActiveShow selects the episode new tips and counter-bets are attributed to.
func (s *SeasonService) SetActiveShow(ctx context.Context, seasonID seasondomain.SeasonID, showID seasondomain.ShowID) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "SetActiveShow", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		return season.SetActiveShow(showID)
	})
}

package seasonservice

import (
	"context"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// AddMask adds an unrevealed mask.
func (s *SeasonService) AddMask(ctx context.Context, seasonID seasondomain.SeasonID, name, imageURL string) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "AddMask", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		next, _, err := season.AddMask(seasondomain.MaskID(s.newID()), name, imageURL)
		return next, err
	})
}

// UpdateMask renames a mask and optionally replaces its image.
func (s *SeasonService) UpdateMask(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, name string, imageURL *string) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "UpdateMask", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		return season.UpdateMask(maskID, name, imageURL)
	})
}

// DeleteMask removes a mask and the counter-bets placed on it.
func (s *SeasonService) DeleteMask(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "DeleteMask", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		return season.DeleteMask(maskID)
	})
}

// RevealMask records the celebrity behind a mask and announces the reveal.
func (s *SeasonService) RevealMask(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, celebrity string) (seasondomain.Season, error) {
	season, err := s.mutateSeason(ctx, "RevealMask", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		return season.RevealMask(maskID, celebrity)
	})
	if err != nil {
		return seasondomain.Season{}, err
	}
	if s.metrics != nil {
		s.metrics.RecordMaskRevealed(ctx)
	}
	if mask, ok := season.Mask(maskID); ok {
		s.publishMaskRevealed(ctx, season.ID, mask)
	}
	return season, nil
}

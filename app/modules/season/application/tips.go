package seasonservice

import (
	"context"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// AddTip records a guess for the active show.
func (s *SeasonService) AddTip(
	ctx context.Context,
	seasonID seasondomain.SeasonID,
	maskID seasondomain.MaskID,
	playerID seasondomain.PlayerID,
	celebrity string,
	isFinal bool,
) (seasondomain.Season, error) {
	var placed seasondomain.Tip
	season, err := s.mutateSeason(ctx, "AddTip", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		next, tip, err := season.AddTip(maskID, playerID, celebrity, isFinal, s.now())
		placed = tip
		return next, err
	})
	if err != nil {
		return seasondomain.Season{}, err
	}
	if s.metrics != nil {
		s.metrics.RecordTipPlaced(ctx, placed.IsFinal)
	}
	return season, nil
}

// DeleteLastTip withdraws a player's most recent non-final tip.
func (s *SeasonService) DeleteLastTip(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, playerID seasondomain.PlayerID) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "DeleteLastTip", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		return season.DeleteLastTip(maskID, playerID)
	})
}

// PlaceCounterBet wagers that target's latest tip on the mask is wrong.
func (s *SeasonService) PlaceCounterBet(ctx context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, bettor, target seasondomain.PlayerID) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "PlaceCounterBet", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		next, _, err := season.PlaceCounterBet(seasondomain.CounterBetID(s.newID()), maskID, bettor, target)
		return next, err
	})
}

// DeleteCounterBet withdraws a counter-bet.
func (s *SeasonService) DeleteCounterBet(ctx context.Context, seasonID seasondomain.SeasonID, betID seasondomain.CounterBetID) (seasondomain.Season, error) {
	return s.mutateSeason(ctx, "DeleteCounterBet", seasonID, func(season seasondomain.Season) (seasondomain.Season, error) {
		return season.DeleteCounterBet(betID)
	})
}

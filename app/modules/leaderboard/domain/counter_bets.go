package leaderboarddomain

import (
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// Counter-bet stakes before decay.
const (
	finalWinPoints        = 5
	finalBettorLossPoints = -3
	finalTargetLossPoints = -3
	winPoints             = 3
	bettorLossPoints      = -2
	targetLossPoints      = -2

	// decayPerShow is the share of the stakes lost for every episode between tip and bet.
	decayPerShow = 0.2
)

// CounterBetOutcome is the effect of one resolved counter-bet.
type CounterBetOutcome struct {
	BettorID     seasondomain.PlayerID
	TargetID     seasondomain.PlayerID
	BettorPoints int
	TargetPoints int
	// Won is set when the target tip was wrong and the bettor earned a positive amount.
	Won bool
}

// Decay is the stake multiplier for a bet placed showDifference episodes after the tip.
func Decay(showDifference int) float64 {
	showDifference = max(0, showDifference)
	return max(0, 1.0-float64(showDifference)*decayPerShow)
}

// ResolveCounterBet evaluates a bet on a revealed mask. ok is false when the bet is inert:
// the targeted tip, its show, or the bet's own show no longer exist.
func ResolveCounterBet(bet seasondomain.CounterBet, mask seasondomain.Mask, shows []seasondomain.Show) (CounterBetOutcome, bool) {
	return resolveCounterBet(bet, mask, newEpisodeIndex(shows))
}

func resolveCounterBet(bet seasondomain.CounterBet, mask seasondomain.Mask, episodes episodeIndex) (CounterBetOutcome, bool) {
	if !Revealed(mask) {
		return CounterBetOutcome{}, false
	}
	target, ok := mask.Tips.Tip(bet.TargetID, bet.TargetTipIndex)
	if !ok {
		return CounterBetOutcome{}, false
	}
	betEpisode, ok := episodes[bet.ShowID]
	if !ok {
		return CounterBetOutcome{}, false
	}
	tipEpisode, ok := episodes[target.ShowID]
	if !ok {
		return CounterBetOutcome{}, false
	}

	decay := Decay(betEpisode - tipEpisode)
	win, bettorLoss, targetLoss := winPoints, bettorLossPoints, targetLossPoints
	if target.IsFinal {
		win, bettorLoss, targetLoss = finalWinPoints, finalBettorLossPoints, finalTargetLossPoints
	}

	out := CounterBetOutcome{BettorID: bet.BettorID, TargetID: bet.TargetID}
	if NormalizeName(target.CelebrityName) == NormalizeName(mask.RevealedCelebrity) {
		out.BettorPoints = roundPoints(float64(bettorLoss) * decay)
		return out, true
	}

	out.BettorPoints = roundPoints(float64(win) * decay)
	out.TargetPoints = roundPoints(float64(targetLoss) * decay)
	out.Won = out.BettorPoints > 0
	return out, true
}

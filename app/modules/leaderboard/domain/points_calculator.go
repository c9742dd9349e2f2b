package leaderboarddomain

import (
	"math"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

const (
	// FirstFinalMultiplier boosts a correct final tip that was the player's first tip.
	FirstFinalMultiplier = 1.8
	// SecondFinalMultiplier boosts a correct final tip that was the player's second tip.
	SecondFinalMultiplier = 1.5
	// ImitatorShare is the fraction of boosted points awarded to anyone but the pioneer.
	ImitatorShare = 0.4
)

// FinalMultiplier returns the bonus for a matched tip. The tip's position is found among the
// player's own tips by creation timestamp.
func FinalMultiplier(playerTips []seasondomain.Tip, matched seasondomain.Tip) float64 {
	if !matched.IsFinal {
		return 1.0
	}
	idx := -1
	for i, t := range playerTips {
		if t.CreatedAt == matched.CreatedAt {
			idx = i
			break
		}
	}
	switch idx {
	case 0:
		return FirstFinalMultiplier
	case 1:
		return SecondFinalMultiplier
	default:
		return 1.0
	}
}

// TipPoints computes the award for a player's first correct tip on a mask.
func TipPoints(match TipMatch, playerTips []seasondomain.Tip, pioneer bool) int {
	boosted := float64(BasePoints(match.Episode)) * FinalMultiplier(playerTips, match.Tip)
	if pioneer {
		return roundPoints(boosted)
	}
	return roundPoints(boosted * ImitatorShare)
}

// roundPoints rounds half away from zero.
func roundPoints(v float64) int {
	return int(math.Round(v))
}

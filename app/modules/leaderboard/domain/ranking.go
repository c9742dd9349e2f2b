package leaderboarddomain

import (
	"cmp"
	"slices"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// PlayerScore is one row of a season scoreboard.
type PlayerScore struct {
	PlayerID         seasondomain.PlayerID `json:"playerId"`
	Name             string                `json:"name"`
	Color            string                `json:"color"`
	Score            int                   `json:"score"`
	CounterBetPoints int                   `json:"counterBetPoints"`
	TotalScore       int                   `json:"totalScore"`
	CorrectMasks     int                   `json:"correctMasks"`
	WonCounterBets   int                   `json:"wonCounterBets"`
}

// CompareStanding orders scores by correct masks, then won counter-bets, then total score,
// all descending. Equal standings compare as 0.
func CompareStanding(a, b PlayerScore) int {
	if c := cmp.Compare(b.CorrectMasks, a.CorrectMasks); c != 0 {
		return c
	}
	if c := cmp.Compare(b.WonCounterBets, a.WonCounterBets); c != 0 {
		return c
	}
	return cmp.Compare(b.TotalScore, a.TotalScore)
}

// RankScores sorts scores in place by standing. Ties keep their relative order.
func RankScores(scores []PlayerScore) {
	slices.SortStableFunc(scores, CompareStanding)
}

// Positions assigns 1-based places to ranked scores; equal standings share a place.
func Positions(ranked []PlayerScore) []int {
	out := make([]int, len(ranked))
	for i := range ranked {
		if i > 0 && CompareStanding(ranked[i-1], ranked[i]) == 0 {
			out[i] = out[i-1]
			continue
		}
		out[i] = i + 1
	}
	return out
}

package leaderboarddomain

import (
	"errors"
	"fmt"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// ErrUnknownPlayer is returned when a season participant is missing from the roster.
var ErrUnknownPlayer = errors.New("season participant not in roster")

// Scoreboard is the ranked result of a scoring pass with a few counters useful for telemetry.
type Scoreboard struct {
	Scores []PlayerScore
	// RevealedMasks counts the masks that took part in scoring.
	RevealedMasks int
	// InertCounterBets counts bets on revealed masks that contributed nothing because a
	// referenced tip, show or player no longer exists.
	InertCounterBets int
}

// ComputeScoreboard scores a season and returns players ranked by standing.
// The roster may contain players outside the season; only participants are scored, in roster order.
// Neither input is modified and the result shares no memory with them.
func ComputeScoreboard(season seasondomain.Season, roster []seasondomain.Player) ([]PlayerScore, error) {
	board, err := Compute(season, roster)
	if err != nil {
		return nil, err
	}
	return board.Scores, nil
}

// Compute is ComputeScoreboard with scoring counters.
func Compute(season seasondomain.Season, roster []seasondomain.Player) (Scoreboard, error) {
	known := make(map[seasondomain.PlayerID]bool, len(roster))
	for _, p := range roster {
		known[p.ID] = true
	}
	for _, pid := range season.PlayerIDs {
		if !known[pid] {
			return Scoreboard{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, pid)
		}
	}

	scores := make([]PlayerScore, 0, len(season.PlayerIDs))
	index := make(map[seasondomain.PlayerID]int, len(season.PlayerIDs))
	participants := make([]seasondomain.PlayerID, 0, len(season.PlayerIDs))
	for _, p := range roster {
		if _, dup := index[p.ID]; dup || !season.HasPlayer(p.ID) {
			continue
		}
		index[p.ID] = len(scores)
		participants = append(participants, p.ID)
		scores = append(scores, PlayerScore{PlayerID: p.ID, Name: p.Name, Color: p.Color})
	}

	board := Scoreboard{}
	episodes := newEpisodeIndex(season.Shows)
	for _, mask := range season.Masks {
		if !Revealed(mask) {
			continue
		}
		board.RevealedMasks++

		if res, ok := resolveMask(mask, participants, episodes); ok {
			for _, m := range res.First {
				row := &scores[index[m.PlayerID]]
				row.CorrectMasks++
				row.Score += TipPoints(m, mask.Tips.Tips(m.PlayerID), res.IsPioneer(m))
			}
		}

		for _, bet := range season.CounterBets {
			if bet.MaskID != mask.ID {
				continue
			}
			bi, bettorOK := index[bet.BettorID]
			ti, targetOK := index[bet.TargetID]
			if !bettorOK || !targetOK {
				board.InertCounterBets++
				continue
			}
			out, ok := resolveCounterBet(bet, mask, episodes)
			if !ok {
				board.InertCounterBets++
				continue
			}
			scores[bi].CounterBetPoints += out.BettorPoints
			scores[ti].CounterBetPoints += out.TargetPoints
			if out.Won {
				scores[bi].WonCounterBets++
			}
		}
	}

	for i := range scores {
		scores[i].TotalScore = scores[i].Score + scores[i].CounterBetPoints
	}
	RankScores(scores)
	board.Scores = scores
	return board, nil
}

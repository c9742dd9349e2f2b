package leaderboarddomain

import (
	"cmp"
	"slices"
	"strings"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
)

// NormalizeName is the comparison form of a celebrity name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// TipMatch is a correct tip together with the episode it was placed in.
type TipMatch struct {
	PlayerID seasondomain.PlayerID
	Tip      seasondomain.Tip
	Episode  int
}

// MaskResolution is the outcome of matching every tip of a revealed mask.
type MaskResolution struct {
	// Pioneer is the season-wide earliest correct tip.
	Pioneer TipMatch
	// First holds each player's earliest correct tip, earliest first.
	First []TipMatch
}

// IsPioneer reports whether m is the pioneer tip.
func (r MaskResolution) IsPioneer(m TipMatch) bool {
	return m.PlayerID == r.Pioneer.PlayerID && m.Tip.CreatedAt == r.Pioneer.Tip.CreatedAt
}

// episodeIndex maps show ids to episode numbers.
type episodeIndex map[seasondomain.ShowID]int

func newEpisodeIndex(shows []seasondomain.Show) episodeIndex {
	idx := make(episodeIndex, len(shows))
	for _, s := range shows {
		if _, dup := idx[s.ID]; !dup {
			idx[s.ID] = s.EpisodeNumber
		}
	}
	return idx
}

// Revealed reports whether the mask counts for scoring. Only an empty name keeps a
// revealed mask out; a blank one still scores and matches blank tips.
func Revealed(m seasondomain.Mask) bool {
	return m.IsRevealed && m.RevealedCelebrity != ""
}

// ResolveMask finds the pioneer and every player's first correct tip for a revealed mask.
// Only tips of the given players count, and tips whose show no longer exists are ignored.
// ok is false when the mask is unrevealed or nobody guessed right.
func ResolveMask(mask seasondomain.Mask, players []seasondomain.PlayerID, shows []seasondomain.Show) (res MaskResolution, ok bool) {
	return resolveMask(mask, players, newEpisodeIndex(shows))
}

func resolveMask(mask seasondomain.Mask, players []seasondomain.PlayerID, episodes episodeIndex) (MaskResolution, bool) {
	if !Revealed(mask) {
		return MaskResolution{}, false
	}
	actual := NormalizeName(mask.RevealedCelebrity)

	var matches []TipMatch
	for _, pid := range players {
		for _, tip := range mask.Tips.Tips(pid) {
			if NormalizeName(tip.CelebrityName) != actual {
				continue
			}
			ep, ok := episodes[tip.ShowID]
			if !ok {
				continue
			}
			matches = append(matches, TipMatch{PlayerID: pid, Tip: tip, Episode: ep})
		}
	}
	if len(matches) == 0 {
		return MaskResolution{}, false
	}

	slices.SortStableFunc(matches, func(a, b TipMatch) int {
		if c := cmp.Compare(a.Episode, b.Episode); c != 0 {
			return c
		}
		return cmp.Compare(a.Tip.CreatedAt, b.Tip.CreatedAt)
	})

	res := MaskResolution{Pioneer: matches[0]}
	seen := make(map[seasondomain.PlayerID]bool, len(players))
	for _, m := range matches {
		if !seen[m.PlayerID] {
			seen[m.PlayerID] = true
			res.First = append(res.First, m)
		}
	}
	return res, true
}

package leaderboarddomain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// StandingsFingerprint hashes a ranked scoreboard. Two scoreboards with the same order and the
// same numbers share a fingerprint, so an unchanged standing is not snapshotted twice.
func StandingsFingerprint(ranked []PlayerScore) string {
	var sb strings.Builder
	for _, s := range ranked {
		fmt.Fprintf(&sb, "%s:%d:%d:%d:%d:%d;",
			s.PlayerID, s.Score, s.CounterBetPoints, s.TotalScore, s.CorrectMasks, s.WonCounterBets)
	}

	hash := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(hash[:])
}

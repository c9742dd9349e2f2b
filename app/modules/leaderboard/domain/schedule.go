package leaderboarddomain

// showPoints holds the base points of a correct tip by episode, starting at episode 1.
// They are round(20 * f) for f in 1.0, 0.85, 0.70, 0.55, 0.40.
var showPoints = [...]int{20, 17, 14, 11, 8}

// lateShowPoints is awarded from episode 6 on.
const lateShowPoints = 5

// BasePoints returns the points a correct tip earns when first placed in the given episode.
// Episode numbers below 1 score like episode 1.
func BasePoints(episode int) int {
	if episode < 1 {
		episode = 1
	}
	if episode > len(showPoints) {
		return lateShowPoints
	}
	return showPoints[episode-1]
}

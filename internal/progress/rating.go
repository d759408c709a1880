// Package progress owns per-level progression records, the star rating rules
// and the binary save format they are persisted with.
package progress

// MaxStars is the best rating a level can award.
const MaxStars = 3

// Rating thresholds on the collected/target percentage.
const (
	threeStarAt float32 = 1.0
	twoStarAt   float32 = 0.41
	oneStarAt   float32 = 0.01
)

// Rating maps a completion percentage (collected/target) to 0-3 stars.
// Values above 1.0 still rate 3 and negative values rate 0.
func Rating(percentage float32) int {
	switch {
	case percentage >= threeStarAt:
		return 3
	case percentage >= twoStarAt:
		return 2
	case percentage >= oneStarAt:
		return 1
	default:
		return 0
	}
}

// Percentage returns collected/target, or 0 when target is not positive.
func Percentage(collected, target int) float32 {
	if target <= 0 {
		return 0
	}
	return float32(collected) / float32(target)
}

// Tier returns the congratulation headline shown for a rating.
func Tier(stars int) string {
	switch {
	case stars >= 3:
		return "PERFECT"
	case stars == 2:
		return "GREAT"
	case stars == 1:
		return "GOOD"
	default:
		return "VICTORY"
	}
}

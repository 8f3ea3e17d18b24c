package utils

import "math"

// CalculateMomentumScore is the composite number shown on a profile:
// streaks dominate, mood and badges nudge it.
func CalculateMomentumScore(currentStreak, badgesEarned int, averageMood float64) float64 {
	streakScore := math.Pow(float64(currentStreak), 2) * 0.3
	moodScore := averageMood * 2.0
	badgeScore := float64(badgesEarned) * 1.0

	return streakScore + moodScore + badgeScore
}

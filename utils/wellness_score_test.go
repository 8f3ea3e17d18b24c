package utils

import (
	"math"
	"testing"
)

func TestCalculateMomentumScore(t *testing.T) {
	tests := []struct {
		name          string
		currentStreak int
		badgesEarned  int
		averageMood   float64
		expected      float64
	}{
		{"zero everything", 0, 0, 0, 0},
		{"streak only", 10, 0, 0, 30},
		{"mood only", 0, 0, 7.5, 15},
		{"badges only", 0, 4, 0, 4},
		{"combined", 5, 2, 6, 7.5 + 12 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateMomentumScore(tt.currentStreak, tt.badgesEarned, tt.averageMood)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CalculateMomentumScore(%d, %d, %f) = %f, want %f",
					tt.currentStreak, tt.badgesEarned, tt.averageMood, got, tt.expected)
			}
		})
	}
}

func TestMomentumScoreStreakDominates(t *testing.T) {
	short := CalculateMomentumScore(3, 5, 10)
	long := CalculateMomentumScore(30, 0, 0)
	if long <= short {
		t.Errorf("a long streak should outweigh badges and mood: %f <= %f", long, short)
	}
}

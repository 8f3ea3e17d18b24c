package badge

import (
	"testing"

	"github.com/google/uuid"
)

func catalog(thresholds ...int) []Badge {
	var out []Badge
	for _, v := range thresholds {
		out = append(out, Badge{
			ID:               uuid.New(),
			Category:         CategoryLoginStreak,
			RequirementValue: v,
		})
	}
	return out
}

func TestEligible_ExactThreshold(t *testing.T) {
	cat := catalog(7, 8)

	got := Eligible(cat, nil, 7)

	if len(got) != 1 {
		t.Fatalf("got %d badges, want 1", len(got))
	}
	if got[0].RequirementValue != 7 {
		t.Errorf("granted badge requires %d, want 7", got[0].RequirementValue)
	}
}

func TestEligible_MultipleThresholdsInOneJump(t *testing.T) {
	// Streak jumps from 6 to 14: both the 7-day and 14-day badges unlock.
	cat := catalog(3, 7, 14, 30)
	granted := map[uuid.UUID]bool{cat[0].ID: true}

	got := Eligible(cat, granted, 14)

	if len(got) != 2 {
		t.Fatalf("got %d badges, want 2 (7-day and 14-day)", len(got))
	}
	values := map[int]bool{got[0].RequirementValue: true, got[1].RequirementValue: true}
	if !values[7] || !values[14] {
		t.Errorf("granted requirements %v, want {7, 14}", values)
	}
}

func TestEligible_AlreadyGrantedSkipped(t *testing.T) {
	cat := catalog(7)
	granted := map[uuid.UUID]bool{cat[0].ID: true}

	if got := Eligible(cat, granted, 30); len(got) != 0 {
		t.Errorf("got %d badges, want 0: badge already granted", len(got))
	}
}

func TestEligible_Idempotent(t *testing.T) {
	cat := catalog(7)

	first := Eligible(cat, map[uuid.UUID]bool{}, 10)
	if len(first) != 1 {
		t.Fatalf("first pass granted %d, want 1", len(first))
	}

	// Second pass with the same value, grant now recorded.
	granted := map[uuid.UUID]bool{first[0].ID: true}
	second := Eligible(cat, granted, 10)
	if len(second) != 0 {
		t.Errorf("second pass granted %d, want 0", len(second))
	}
}

func TestEligible_NothingBelowThreshold(t *testing.T) {
	cat := catalog(7, 14)
	if got := Eligible(cat, nil, 6); len(got) != 0 {
		t.Errorf("got %d badges at streak 6, want 0", len(got))
	}
}

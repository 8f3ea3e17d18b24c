package level

import "testing"

func TestXPForNextLevel_StrictlyIncreasing(t *testing.T) {
	prev := 0
	for lvl := 1; lvl <= 200; lvl++ {
		cur := XPForNextLevel(lvl)
		if cur <= prev {
			t.Fatalf("XPForNextLevel(%d)=%d is not greater than XPForNextLevel(%d)=%d",
				lvl, cur, lvl-1, prev)
		}
		prev = cur
	}
}

func TestXPForNextLevel_LevelOne(t *testing.T) {
	if got := XPForNextLevel(1); got != 50 {
		t.Errorf("XPForNextLevel(1) = %d, want 50", got)
	}
}

func TestApplyXP_CrossesThresholdWithCarry(t *testing.T) {
	l := &Level{Level: 1, XP: 0}

	// Four journal saves at +15: 60 total crosses the 50 threshold.
	var leveled bool
	for i := 0; i < 4; i++ {
		leveled = ApplyXP(l, 15)
	}

	if !leveled {
		t.Error("fourth grant should level up")
	}
	if l.Level != 2 {
		t.Errorf("level = %d, want 2", l.Level)
	}
	if l.XP != 10 {
		t.Errorf("xp = %d, want carried remainder 10", l.XP)
	}
}

func TestApplyXP_NoLevelUpBelowThreshold(t *testing.T) {
	l := &Level{Level: 1, XP: 0}
	if ApplyXP(l, 49) {
		t.Error("49 XP at level 1 must not level up")
	}
	if l.Level != 1 || l.XP != 49 {
		t.Errorf("got level=%d xp=%d, want 1/49", l.Level, l.XP)
	}
}

func TestApplyXP_MultiLevelJump(t *testing.T) {
	l := &Level{Level: 1, XP: 0}

	// 50 (lvl 1) + 110 (lvl 2) = 160; a 200 XP grant clears both.
	ApplyXP(l, 200)

	if l.Level != 3 {
		t.Errorf("level = %d, want 3 after a grant crossing two thresholds", l.Level)
	}
	if want := 200 - XPForNextLevel(1) - XPForNextLevel(2); l.XP != want {
		t.Errorf("xp = %d, want remainder %d", l.XP, want)
	}
}

func TestApplyXP_InvariantXPBelowThreshold(t *testing.T) {
	l := &Level{Level: 1, XP: 0}
	grants := []int{5, 15, 10, 20, 500, 15, 15, 1000, 5}

	for _, g := range grants {
		ApplyXP(l, g)
		if l.XP >= XPForNextLevel(l.Level) {
			t.Fatalf("invariant violated: xp=%d >= threshold=%d at level %d",
				l.XP, XPForNextLevel(l.Level), l.Level)
		}
	}
}

func TestDecayXP(t *testing.T) {
	l := &Level{Level: 4, XP: 100}
	DecayXP(l)

	if l.XP != 95 {
		t.Errorf("xp = %d, want 95 after 5%% decay", l.XP)
	}
	if l.Level != 4 {
		t.Errorf("decay must not change level, got %d", l.Level)
	}

	// floor, not round
	l.XP = 99
	DecayXP(l)
	if l.XP != 94 {
		t.Errorf("xp = %d, want floor(99*0.95)=94", l.XP)
	}
}

func TestTitleForLevel_TotalAndMonotonic(t *testing.T) {
	if TitleForLevel(1) != "Newcomer" {
		t.Errorf("level 1 title = %q", TitleForLevel(1))
	}
	if TitleForLevel(50) != "Transcendent" {
		t.Errorf("level 50 title = %q", TitleForLevel(50))
	}

	// Every level has a title and rank index never moves backwards.
	rankIndex := func(title string) int {
		for i, r := range ranks {
			if r.title == title {
				return len(ranks) - i
			}
		}
		return -1
	}

	prev := 0
	for lvl := 1; lvl <= 120; lvl++ {
		title := TitleForLevel(lvl)
		if title == "" {
			t.Fatalf("no title for level %d", lvl)
		}
		idx := rankIndex(title)
		if idx < prev {
			t.Fatalf("prestige decreased at level %d (%q)", lvl, title)
		}
		prev = idx
	}
}

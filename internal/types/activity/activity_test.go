package activity

import "testing"

func TestXPReward_KnownTypes(t *testing.T) {
	tests := []struct {
		typ  Type
		want int
	}{
		{TypeLogin, 5},
		{TypeMeditation, 10},
		{TypeJournal, 15},
		{TypeAddiction, 20},
	}

	for _, tt := range tests {
		got, err := XPReward(tt.typ)
		if err != nil {
			t.Errorf("XPReward(%s) returned error: %v", tt.typ, err)
		}
		if got != tt.want {
			t.Errorf("XPReward(%s) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestXPReward_UnknownTypeFailsLoudly(t *testing.T) {
	xp, err := XPReward(Type("yoga"))
	if err == nil {
		t.Fatal("unknown activity type must return an error, not a silent 0")
	}
	if xp != 0 {
		t.Errorf("xp = %d on error, want 0", xp)
	}
}

package activity

import "fmt"

// Type tags every qualifying event the progression engine consumes.
type Type string

const (
	TypeLogin      Type = "login"
	TypeJournal    Type = "journal"
	TypeMeditation Type = "meditation"
	TypeAddiction  Type = "addiction"
)

// xpRewards is the XP granted per activity type. Values are deterministic
// per type; an unknown type is a caller bug and fails loudly.
var xpRewards = map[Type]int{
	TypeLogin:      5,
	TypeMeditation: 10,
	TypeJournal:    15,
	TypeAddiction:  20,
}

// XPReward returns the XP for an activity type, or an error for a type not
// in the reward table. Never silently awards 0.
func XPReward(t Type) (int, error) {
	xp, ok := xpRewards[t]
	if !ok {
		return 0, fmt.Errorf("unknown activity type %q: no XP reward configured", t)
	}
	return xp, nil
}

// Valid reports whether t is a recognized activity type. Handlers use it to
// reject bad input before it reaches the engine.
func Valid(t Type) bool {
	_, ok := xpRewards[t]
	return ok
}

package runner

// Tally holds run-local counters.
type Tally struct {
	Candies int
	Jumps   int
}

// Score computes the final score from the tally and the profile multipliers.
func Score(t Tally, candyLevel, jumpBonus int) int {
	return t.Candies*candyLevel + t.Jumps*jumpBonus
}

// Outcome is the session state machine position.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeCollision
	OutcomeFell
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeCollision:
		return "collision"
	case OutcomeFell:
		return "fell"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (o Outcome) Terminal() bool {
	return o != OutcomePlaying
}

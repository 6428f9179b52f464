package runner

// EventSink receives the two outward notifications of a session.
// Both are called synchronously from Tick and must not block; the sink
// handles its own failures.
type EventSink interface {
	// OnAddScore is called once per collectible pickup.
	OnAddScore(amount int)
	// OnGameOver is called exactly once when the session reaches a terminal state.
	OnGameOver(score, candies, elapsedSeconds int, fellInPit bool)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) OnAddScore(int) {}

func (NopSink) OnGameOver(int, int, int, bool) {}

// Cue is a presentation-only event, typically mapped to a sound effect.
type Cue int

const (
	CueJump Cue = iota
	CueDoubleJump
	CueCandy
	CueHit
	CueSpeedUp
	CueGameOver
	CueFall
)

// String returns a human-readable cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueDoubleJump:
		return "double_jump"
	case CueCandy:
		return "candy"
	case CueHit:
		return "hit"
	case CueSpeedUp:
		return "speed_up"
	case CueGameOver:
		return "game_over"
	case CueFall:
		return "fall"
	default:
		return "unknown"
	}
}

// CueSink receives presentation cues. Implementations must not block.
type CueSink interface {
	Cue(c Cue)
}

// Appearance is the equipped cosmetic set, carried for rendering only.
type Appearance struct {
	Skin    string
	Hat     string
	Weapon  string
	Clothes string
	Shoes   string
}

// Progression is the read-only profile snapshot captured at session start.
type Progression struct {
	MaxHearts       int
	CandyScoreLevel int
	JumpBonusLevel  int
	HardMode        bool
	CandyVariant    int // Negative draws a random variant per candy
	Appearance      Appearance
}

// DefaultProgression returns the snapshot of a fresh profile.
func DefaultProgression() Progression {
	return Progression{
		MaxHearts:       3,
		CandyScoreLevel: 1,
		JumpBonusLevel:  0,
	}
}

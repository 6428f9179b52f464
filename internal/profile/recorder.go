package profile

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/candy-run/internal/runner"
)

// Run is one finished run.
type Run struct {
	ID         string
	PlayerCode string
	PlayerName string
	Score      int
	Candies    int
	TimeSec    int
	Hard       bool
	Fell       bool
	At         time.Time
}

// TimeString formats the run duration as MM:SS.
func (r Run) TimeString() string {
	return runner.FormatClock(float64(r.TimeSec) * 1000)
}

// Difficulty returns "hard" or "normal".
func (r Run) Difficulty() string {
	if r.Hard {
		return "hard"
	}
	return "normal"
}

// Store persists profiles and their history.
type Store interface {
	SaveProfile(p *Profile) error
	SaveRun(r Run) error
	SaveTransaction(t Transaction) error
}

// Recorder applies session events to a profile and persists them.
// Persistence failures are logged and never reach the game loop.
type Recorder struct {
	store  Store
	p      *Profile
	hard   bool
	logger *log.Logger
	now    func() time.Time

	last     *Run
	unlocked []Achievement
}

// NewRecorder creates a recorder for one run. A nil store keeps all
// changes in memory, a nil logger discards warnings.
func NewRecorder(store Store, p *Profile, hard bool, logger *log.Logger) *Recorder {
	return &Recorder{store: store, p: p, hard: hard, logger: logger, now: time.Now}
}

var _ runner.EventSink = (*Recorder)(nil)

// OnAddScore credits picked-up candies.
func (r *Recorder) OnAddScore(amount int) {
	r.p.TotalCandies += amount
	r.p.Stats.CandiesCollected += amount
	r.save()
}

// OnGameOver records the run, updates stats and checks achievements.
func (r *Recorder) OnGameOver(score, candies, elapsedSeconds int, fellInPit bool) {
	now := r.now()
	run := Run{
		ID:         uuid.NewString(),
		PlayerCode: r.p.Code,
		PlayerName: r.p.Name,
		Score:      score,
		Candies:    candies,
		TimeSec:    elapsedSeconds,
		Hard:       r.hard,
		Fell:       fellInPit,
		At:         now,
	}
	r.last = &run

	st := &r.p.Stats
	st.Plays++
	st.PlayTimeSec += elapsedSeconds
	if fellInPit {
		st.Falls++
	}
	st.MaxTimeSec = max(st.MaxTimeSec, elapsedSeconds)
	st.BestScore = max(st.BestScore, score)
	r.unlocked = CheckAchievements(r.p)
	r.p.UpdatedAt = now

	if r.store != nil {
		if err := r.store.SaveRun(run); err != nil {
			r.warn("cannot save run", err)
		}
	}
	r.save()
}

// Last returns the run recorded by OnGameOver, if any, and the
// achievements it unlocked.
func (r *Recorder) Last() (Run, []Achievement, bool) {
	if r.last == nil {
		return Run{}, nil, false
	}
	return *r.last, r.unlocked, true
}

// Profile returns the profile being updated.
func (r *Recorder) Profile() *Profile {
	return r.p
}

func (r *Recorder) save() {
	if r.store == nil {
		return
	}
	if err := r.store.SaveProfile(r.p); err != nil {
		r.warn("cannot save profile", err)
	}
}

func (r *Recorder) warn(msg string, err error) {
	if r.logger != nil {
		r.logger.Warn(msg, "player", r.p.Code, "error", err)
	}
}

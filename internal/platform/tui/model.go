package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/candy-run/internal/core"
	"github.com/vovakirdan/candy-run/internal/profile"
)

// GameModel is the Bubble Tea model for one Candy Run session.
// Restarting spends another entry through the Arcade, so daily limits
// and hard mode costs apply to every run, not just the first.
type GameModel struct {
	arcade     *Arcade
	run        *Run
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	started    time.Time
	unlocked   []profile.Achievement
	status     string
	quitting   bool
	backToMenu bool
	finished   bool // Game over seen and result collected
	muted      bool
}

// muter is implemented by cue sinks that can be silenced.
type muter interface {
	SetMuted(bool)
}

// configReporter is implemented by games that fall back to default
// settings when their config file is broken.
type configReporter interface {
	ConfigErr() error
}

// NewGameModel creates a game model around an already started run.
func NewGameModel(arcade *Arcade, run *Run, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		arcade:     arcade,
		run:        run,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.reset()
	return tickCmd(m.config.TickRate)
}

// reset starts the current run and reports a config fallback.
func (m GameModel) reset() {
	m.run.Game.Reset(m.config)
	cr, ok := m.run.Game.(configReporter)
	if !ok || m.arcade.Logger == nil {
		return
	}
	if err := cr.ConfigErr(); err != nil {
		m.arcade.Logger.Warn("runner config unusable, playing with defaults", "player", m.arcade.Profile.Code, "error", err)
	}
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// The world is fixed size and scaled on render, so a resize keeps the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "m":
		if mu, ok := m.arcade.Cues.(muter); ok {
			m.muted = !m.muted
			mu.SetMuted(m.muted)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		return m, nil
	case action == core.ActionRestart && !m.gameState.GameOver:
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick advances the simulation with the host clock.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.inputFrame.Clear()
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	if m.started.IsZero() {
		m.started = now
	}
	// Zero tells the game to use its synthetic clock, so offset by 1ms.
	m.inputFrame.TimestampMs = float64(now.Sub(m.started).Microseconds())/1000 + 1
	result := m.run.Game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.finished {
		m.finished = true
		if _, unlocked, ok := m.run.Recorder.Last(); ok {
			m.unlocked = unlocked
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart spends a new entry and swaps in a fresh run.
func (m *GameModel) restart() {
	run, err := m.arcade.NewRun(m.run.Hard)
	if err != nil {
		m.status = fmt.Sprintf("Cannot restart: %v", err)
		return
	}
	m.run = run
	m.config.Seed = time.Now().UnixNano()
	m.reset()
	m.gameState = m.run.Game.State()
	m.started = time.Time{}
	m.unlocked = nil
	m.status = ""
	m.finished = false
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.run.Game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".candyrun", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.run.Game.ID(), timestamp)
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the game with the end-of-run overlay lines.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.run.Game.Render(m.screen)
	m.drawFooter()
	return RenderScreen(m.screen)
}

func (m GameModel) drawFooter() {
	h := m.screen.Height()
	y := h/2 + 3
	for _, a := range m.unlocked {
		if y >= h {
			break
		}
		m.screen.DrawTextCenteredColored(y, fmt.Sprintf("Title unlocked: %s", a.Title), core.ColorBrightMagenta)
		y++
	}
	if m.gameState.GameOver && y < h {
		m.screen.DrawTextCenteredColored(y, "B: lobby  Q: quit", core.ColorGray)
		y++
	}
	if m.status != "" && y < h {
		m.screen.DrawTextCenteredColored(y, m.status, core.ColorBrightRed)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the lobby.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

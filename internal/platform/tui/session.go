package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/candy-run/internal/core"
	"github.com/vovakirdan/candy-run/internal/profile"
)

type screenID int

const (
	screenLobby screenID = iota
	screenGame
	screenRecords
)

// SessionModel manages the full player session flow:
// lobby -> game -> lobby, with the records screen on the side.
// It is the top-level model for both local and SSH play.
type SessionModel struct {
	arcade    *Arcade
	config    core.RuntimeConfig
	screen    screenID
	lobby     LobbyModel
	gameModel *GameModel
	records   RecordsModel
	quitting  bool
}

// NewSessionModel creates a session that opens in the lobby.
func NewSessionModel(arcade *Arcade, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		arcade: arcade,
		config: cfg,
		lobby:  NewLobbyModel(arcade, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenGame && m.gameModel != nil {
		return m.gameModel.Init()
	}
	return m.lobby.Init()
}

// StartRun jumps straight into a run, as if picked in the lobby.
// Entry rule failures leave the session in the lobby with a status line.
func (m *SessionModel) StartRun(hard bool) {
	run, err := m.arcade.NewRun(hard)
	if err != nil {
		m.lobby.SetStatus(entryError(err, hard), true)
		return
	}
	gm := NewGameModel(m.arcade, run, m.config)
	m.gameModel = &gm
	m.screen = screenGame
}

func entryError(err error, hard bool) string {
	switch {
	case errors.Is(err, profile.ErrDailyLimit):
		return "No plays left today. Come back tomorrow!"
	case errors.Is(err, profile.ErrInsufficientFunds) && hard:
		return "Not enough candies for hard mode."
	default:
		return fmt.Sprintf("Cannot start: %v", err)
	}
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenRecords:
		return m.updateRecords(msg)
	default:
		return m.updateLobby(msg)
	}
}

// updateLobby handles updates while in the lobby.
func (m SessionModel) updateLobby(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		// Stray tick from a finished game.
		return m, nil
	}

	newLobby, cmd := m.lobby.Update(msg)
	if lobby, ok := newLobby.(LobbyModel); ok {
		m.lobby = lobby
	}

	choice := m.lobby.Choice()
	m.lobby.choice = ChoiceNone
	switch choice {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoiceRecords:
		m.records = NewRecordsModel(m.arcade.Store, m.arcade.Profile.Code, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenRecords
		return m, m.records.Init()
	case ChoicePlay, ChoicePlayHard:
		m.lobby.SetStatus("", false)
		m.StartRun(choice == ChoicePlayHard)
		if m.screen == screenGame {
			return m, m.gameModel.Init()
		}
	}

	return m, cmd
}

// updateGame handles updates while a run is on screen.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		status := ""
		if run, _, ok := m.gameModel.run.Recorder.Last(); ok {
			status = fmt.Sprintf("Last run: %d points, %d candies in %s", run.Score, run.Candies, run.TimeString())
		}
		m.gameModel = nil
		m.screen = screenLobby
		m.lobby = NewLobbyModel(m.arcade, m.config)
		m.lobby.SetStatus(status, false)
		return m, m.lobby.Init()
	}

	return m, cmd
}

// updateRecords handles updates on the records screen.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newModel, cmd := m.records.Update(msg)
	if records, ok := newModel.(RecordsModel); ok {
		m.records = records
	}

	switch {
	case m.records.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.records.IsGoingBack():
		m.screen = screenLobby
		m.lobby.config = m.config
		m.lobby.width, m.lobby.height = m.config.ScreenW, m.config.ScreenH
		return m, nil
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenRecords:
		return m.records.View()
	default:
		return m.lobby.View()
	}
}

// RunSession runs a local session on the current terminal. When play is
// set the session starts in a run instead of the lobby.
func RunSession(arcade *Arcade, cfg core.RuntimeConfig, play, hard bool) error {
	model := NewSessionModel(arcade, cfg)
	if play {
		model.StartRun(hard)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

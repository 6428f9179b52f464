package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/candy-run/internal/core"
	"github.com/vovakirdan/candy-run/internal/profile"
)

// LobbyChoice is what the lobby hands back to the session.
type LobbyChoice int

const (
	ChoiceNone LobbyChoice = iota
	ChoicePlay
	ChoicePlayHard
	ChoiceRecords
	ChoiceQuit
)

// lobbyPage is one of the lobby's menus.
type lobbyPage int

const (
	pageMain lobbyPage = iota
	pageShop
	pageWardrobe
)

// MenuItem is one selectable line in the lobby. An item either hands a
// choice to the session, switches page, or runs an action in place.
type MenuItem struct {
	Title  string
	Choice LobbyChoice
	Page   lobbyPage
	Action func() (string, error)
}

// LobbyModel is the Bubble Tea model for the lobby: profile summary,
// play buttons, the shop and the wardrobe.
type LobbyModel struct {
	arcade    *Arcade
	page      lobbyPage
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	status    string
	statusErr bool
	choice    LobbyChoice
}

var (
	lobbyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	lobbyInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	lobbyCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	lobbyOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lobbyErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// NewLobbyModel creates the lobby for the arcade's profile.
func NewLobbyModel(arcade *Arcade, cfg core.RuntimeConfig) LobbyModel {
	m := LobbyModel{
		arcade:    arcade,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.items = m.buildItems()
	return m
}

func (m LobbyModel) buildItems() []MenuItem {
	switch m.page {
	case pageShop:
		return shopItems(m.arcade)
	case pageWardrobe:
		return wardrobeItems(m.arcade)
	default:
		return mainItems(m.arcade)
	}
}

func mainItems(a *Arcade) []MenuItem {
	eco := a.Economy.Config()
	return []MenuItem{
		{Title: "Play", Choice: ChoicePlay},
		{Title: fmt.Sprintf("Play Hard (%d candies)", eco.HardModeEntryCost), Choice: ChoicePlayHard},
		{Title: "Records", Choice: ChoiceRecords},
		{Title: "Shop", Page: pageShop},
		{Title: "Wardrobe", Page: pageWardrobe},
		{Title: "Quit", Choice: ChoiceQuit},
	}
}

func shopItems(a *Arcade) []MenuItem {
	eco := a.Economy.Config()
	buy := func(action ShopAction) func() (string, error) {
		return func() (string, error) { return a.Buy(action) }
	}
	return []MenuItem{
		{Title: fmt.Sprintf("Upgrade candy level (%d cookies)", a.Economy.UpgradeCost(a.Profile)), Action: buy(ShopCandyLevel)},
		{Title: fmt.Sprintf("Extra heart (%d cookies)", eco.PriceHeartUpgrade), Action: buy(ShopHearts)},
		{Title: fmt.Sprintf("Jump boost (%d cookies)", eco.PriceJumpUpgrade), Action: buy(ShopJump)},
		{Title: fmt.Sprintf("Gacha (%d cookies)", eco.PriceGacha), Action: buy(ShopGacha)},
		{Title: fmt.Sprintf("Exchange %d candies for a cookie", eco.ExchangeRate), Action: buy(ShopExchange)},
		{Title: "Leave shop", Page: pageMain},
	}
}

func wardrobeItems(a *Arcade) []MenuItem {
	p := a.Profile
	items := []MenuItem{
		{
			Title: fmt.Sprintf("Skin: %s", p.Skin),
			Action: func() (string, error) {
				next := nextOf(p.UnlockedSkins, p.Skin)
				return "Skin: " + next, a.SetSkin(next)
			},
		},
		{
			Title: fmt.Sprintf("Candy: #%d of %d unlocked", p.CandySkin+1, unlockedCandySkins(p)),
			Action: func() (string, error) {
				next := (p.CandySkin + 1) % unlockedCandySkins(p)
				return fmt.Sprintf("Candy: #%d", next+1), a.SetCandySkin(next)
			},
		},
		{
			Title: "Title: " + titleName(p.ActiveTitle),
			Action: func() (string, error) {
				next := nextOf(append([]string{""}, p.Titles...), p.ActiveTitle)
				return "Title: " + titleName(next), a.SetTitle(next)
			},
		},
	}
	for _, slot := range profile.Slots {
		for _, item := range p.Inventory.Items(slot) {
			mark := "[ ]"
			if p.Equipped.Get(slot) == item {
				mark = "[x]"
			}
			items = append(items, MenuItem{
				Title: fmt.Sprintf("%s %s: %s", mark, slot, item),
				Action: func() (string, error) {
					worn, err := a.Equip(slot, item)
					if worn {
						return "Wearing " + item, err
					}
					return "Took off " + item, err
				},
			})
		}
	}
	return append(items, MenuItem{Title: "Back", Page: pageMain})
}

// nextOf returns the entry after cur in list, wrapping around.
func nextOf(list []string, cur string) string {
	if len(list) == 0 {
		return cur
	}
	for i, s := range list {
		if s == cur {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

func unlockedCandySkins(p *profile.Profile) int {
	return core.Clamp(p.CandyLevel, 1, profile.CandySkins)
}

func titleName(id string) string {
	if a, ok := profile.LookupAchievement(id); ok {
		return a.Title
	}
	return "none"
}

// Init initializes the lobby.
func (m LobbyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the lobby.
func (m LobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for lobby navigation.
func (m LobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.arcade.CloseShop()
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionBack:
		if m.page != pageMain {
			m.openPage(pageMain)
		}

	case MenuActionRecords:
		if m.page == pageMain {
			m.choice = ChoiceRecords
		}

	case MenuActionSelect:
		return m.selectItem(m.items[m.cursor])
	}

	return m, nil
}

func (m LobbyModel) selectItem(item MenuItem) (tea.Model, tea.Cmd) {
	switch {
	case item.Action != nil:
		msg, err := item.Action()
		if err != nil {
			m.SetStatus(shopError(err), true)
		} else {
			m.SetStatus(msg, false)
		}
		// Prices and labels depend on the new state.
		m.items = m.buildItems()
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
	case item.Choice != ChoiceNone:
		m.choice = item.Choice
		if item.Choice == ChoiceQuit {
			return m, tea.Quit
		}
	default:
		m.openPage(item.Page)
	}
	return m, nil
}

// openPage switches menus. Entering the shop starts a visit and leaving
// it ends one.
func (m *LobbyModel) openPage(page lobbyPage) {
	if page == pageShop {
		if err := m.arcade.OpenShop(); err != nil {
			m.SetStatus(shopError(err), true)
			return
		}
	}
	if m.page == pageShop && page != pageShop {
		m.arcade.CloseShop()
	}
	m.page = page
	m.cursor = 0
	m.items = m.buildItems()
	m.SetStatus("", false)
}

func shopError(err error) string {
	switch {
	case errors.Is(err, profile.ErrInsufficientFunds):
		return "Not enough to pay for that."
	case errors.Is(err, profile.ErrMaxedOut):
		return "Already at the maximum."
	case errors.Is(err, profile.ErrDailyLimit):
		return "Shop limit reached for today."
	case errors.Is(err, profile.ErrNothingLeft):
		return "You already own every item!"
	case errors.Is(err, profile.ErrLocked):
		return "That is still locked."
	default:
		return err.Error()
	}
}

// SetStatus shows a one-line message under the menu.
func (m *LobbyModel) SetStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// View renders the lobby.
func (m LobbyModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	p := m.arcade.Profile
	eco := m.arcade.Economy.Config()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(lobbyTitleStyle.Render("C A N D Y   R U N"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(p.DisplayName(), m.width))
	b.WriteString("\n")

	plays := "unlimited"
	if p.Mode == profile.ModeStudent {
		plays = fmt.Sprintf("%d", core.Max(eco.DailyLimit-p.Daily.Plays, 0))
	}
	info := fmt.Sprintf("Cookies %d  Candies %d  Level %d  Hearts %d  Jump +%d  Plays left %s",
		p.Wallet, p.TotalCandies, p.CandyLevel, p.MaxHearts, p.JumpBonus, plays)
	b.WriteString(centerText(lobbyInfoStyle.Render(info), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = lobbyCurStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		style := lobbyOKStyle
		if m.statusErr {
			style = lobbyErrStyle
		}
		b.WriteString(centerText(style.Render(m.status), m.width))
		b.WriteString("\n")
	}
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Records  |  Q: Quit"
	if m.page != pageMain {
		controls = "Up/Down: Navigate  |  Enter: Select  |  B: Back  |  Q: Quit"
	}
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the player picked, if anything.
func (m LobbyModel) Choice() LobbyChoice {
	return m.choice
}

// Config returns the current runtime config (may have been updated by resize).
func (m LobbyModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

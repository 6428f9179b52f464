package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/candy-run/internal/config"
	"github.com/vovakirdan/candy-run/internal/games/candyrun"
	"github.com/vovakirdan/candy-run/internal/profile"
	"github.com/vovakirdan/candy-run/internal/registry"
	"github.com/vovakirdan/candy-run/internal/runner"
	"github.com/vovakirdan/candy-run/internal/storage"
)

// Arcade bundles what every screen of one player session needs.
// Each SSH connection gets its own Arcade; only Store is shared.
type Arcade struct {
	Store      *storage.Store // Nil keeps everything in memory
	Economy    *profile.Economy
	Profile    *profile.Profile
	Cues       runner.CueSink
	ConfigPath string
	Preset     string
	Logger     *log.Logger

	shopOpen   bool
	shopBought bool
}

// ErrShopClosed is returned by Buy outside a shop visit.
var ErrShopClosed = errors.New("shop is not open")

// Run is a started game together with the recorder collecting its result.
type Run struct {
	Game     registry.Game
	Recorder *profile.Recorder
	Hard     bool
}

func (a *Arcade) store() profile.Store {
	if a.Store == nil {
		return nil
	}
	return a.Store
}

// NewRun applies the entry rules for the profile and returns a game wired
// to a fresh recorder. Entry rule failures are returned unchanged so callers
// can match them with errors.Is.
func (a *Arcade) NewRun(hard bool) (*Run, error) {
	tx, err := a.Economy.StartRun(a.Profile, hard)
	if err != nil {
		return nil, err
	}
	if tx != nil {
		a.recordTx(*tx)
	}
	a.save()

	rec := profile.NewRecorder(a.store(), a.Profile, hard, a.Logger)
	id := candyrun.IDNormal
	if hard {
		id = candyrun.IDHard
	}
	game, err := registry.Create(id, registry.Deps{
		Progression: a.Profile.Progression(hard),
		Sink:        rec,
		Cues:        a.Cues,
		ConfigPath:  a.ConfigPath,
		Preset:      a.Preset,
	})
	if err != nil {
		return nil, err
	}
	return &Run{Game: game, Recorder: rec, Hard: hard}, nil
}

// ShopAction is one purchase offered in the lobby.
type ShopAction int

const (
	ShopCandyLevel ShopAction = iota
	ShopHearts
	ShopJump
	ShopGacha
	ShopExchange
)

// CheckConfig loads the runner config the way a run will, so a broken
// file is reported before anyone starts playing.
func (a *Arcade) CheckConfig() error {
	_, err := config.LoadRunner(a.ConfigPath)
	return err
}

// OpenShop starts a shop visit. Students get a limited number of visits
// per gaming day, and a visit may hold any number of purchases.
func (a *Arcade) OpenShop() error {
	if a.shopOpen {
		return nil
	}
	if err := a.Economy.OpenShop(a.Profile); err != nil {
		return err
	}
	a.shopOpen, a.shopBought = true, false
	return nil
}

// CloseShop ends the current visit.
func (a *Arcade) CloseShop() {
	a.shopOpen, a.shopBought = false, false
}

// Buy performs a shop action inside the open visit and returns a
// human-readable result.
func (a *Arcade) Buy(action ShopAction) (string, error) {
	eco, p := a.Economy, a.Profile
	if !a.shopOpen {
		return "", ErrShopClosed
	}

	var (
		tx  profile.Transaction
		msg string
		err error
	)
	switch action {
	case ShopCandyLevel:
		tx, err = eco.UpgradeCandyLevel(p)
		msg = fmt.Sprintf("Candy level is now %d", p.CandyLevel)
	case ShopHearts:
		tx, err = eco.UpgradeHearts(p)
		msg = fmt.Sprintf("Max hearts is now %d", p.MaxHearts)
	case ShopJump:
		tx, err = eco.UpgradeJump(p)
		msg = fmt.Sprintf("Jump bonus is now %d", p.JumpBonus)
	case ShopGacha:
		var slot profile.Slot
		var item string
		slot, item, tx, err = eco.Gacha(p)
		msg = fmt.Sprintf("Got %s (%s)!", item, slot)
	case ShopExchange:
		tx, err = eco.Exchange(p, 1)
		msg = fmt.Sprintf("Exchanged %d candies for a cookie", eco.Config().ExchangeRate)
	default:
		err = errors.New("unknown shop action")
	}
	if err != nil {
		return "", err
	}
	// The visit counts from its first purchase, so a dropped connection
	// still uses it up.
	if !a.shopBought {
		eco.CountShopVisit(p)
		a.shopBought = true
	}

	a.recordTx(tx)
	for _, ach := range profile.CheckAchievements(p) {
		msg += fmt.Sprintf("  New title: %s", ach.Title)
	}
	a.save()
	return msg, nil
}

// SetSkin changes the runner's body color.
func (a *Arcade) SetSkin(skin string) error {
	if err := a.Economy.SetSkin(a.Profile, skin); err != nil {
		return err
	}
	a.save()
	return nil
}

// SetCandySkin changes the candy look. One variant unlocks per candy level.
func (a *Arcade) SetCandySkin(variant int) error {
	if err := a.Economy.SetCandySkin(a.Profile, variant, profile.CandySkins); err != nil {
		return err
	}
	a.save()
	return nil
}

// SetTitle shows an unlocked title next to the name; "" shows none.
func (a *Arcade) SetTitle(id string) error {
	if err := a.Profile.SetActiveTitle(id); err != nil {
		return err
	}
	a.save()
	return nil
}

// Equip toggles an owned item and reports whether it is now worn.
func (a *Arcade) Equip(slot profile.Slot, item string) (bool, error) {
	worn, err := a.Economy.Equip(a.Profile, slot, item)
	if err != nil {
		return false, err
	}
	a.save()
	return worn, nil
}

func (a *Arcade) recordTx(tx profile.Transaction) {
	if a.Store == nil {
		return
	}
	if err := a.Store.SaveTransaction(tx); err != nil && a.Logger != nil {
		a.Logger.Warn("cannot save transaction", "player", a.Profile.Code, "error", err)
	}
}

func (a *Arcade) save() {
	if a.Store == nil {
		return
	}
	if err := a.Store.SaveProfile(a.Profile); err != nil && a.Logger != nil {
		a.Logger.Warn("cannot save profile", "player", a.Profile.Code, "error", err)
	}
}

// OpenArcade opens (or creates) the profile for code and builds an Arcade
// around it. A nil store gives a throwaway in-memory profile.
func OpenArcade(store *storage.Store, eco config.EconomyConfig, code, name string, mode profile.Mode, logger *log.Logger) (*Arcade, error) {
	economy := profile.NewEconomy(eco, time.Now().UnixNano())
	now := economy.Now()

	var p *profile.Profile
	if store != nil {
		var err error
		if p, err = profile.Open(store, eco, code, name, mode, now); err != nil {
			return nil, err
		}
	} else {
		p = profile.New(code, name, mode, eco, now)
		p.RollDaily(now, eco.GamingDayStartHour)
	}

	return &Arcade{
		Store:   store,
		Economy: economy,
		Profile: p,
		Logger:  logger,
	}, nil
}

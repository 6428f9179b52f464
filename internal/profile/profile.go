// Package profile holds the persistent player record that sits around a run:
// wallet, upgrades, cosmetics, daily counters and achievements.
package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/candy-run/internal/config"
	"github.com/vovakirdan/candy-run/internal/runner"
)

// Mode distinguishes how a profile was opened.
type Mode string

const (
	ModeStudent Mode = "student" // Subject to daily limits
	ModeGuest   Mode = "guest"
	ModeTest    Mode = "test"
)

// Slot is one equipment slot.
type Slot int

const (
	SlotHat Slot = iota
	SlotWeapon
	SlotClothes
	SlotShoes
)

// Slots lists every slot in display order.
var Slots = []Slot{SlotHat, SlotWeapon, SlotClothes, SlotShoes}

// String returns the singular slot name.
func (s Slot) String() string {
	switch s {
	case SlotHat:
		return "hat"
	case SlotWeapon:
		return "weapon"
	case SlotClothes:
		return "clothes"
	case SlotShoes:
		return "shoes"
	default:
		return "unknown"
	}
}

// ParseSlot accepts singular or plural slot names.
func ParseSlot(s string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hat", "hats":
		return SlotHat, nil
	case "weapon", "weapons":
		return SlotWeapon, nil
	case "clothes", "cloth":
		return SlotClothes, nil
	case "shoes", "shoe":
		return SlotShoes, nil
	default:
		return 0, fmt.Errorf("unknown slot %q (valid: hat, weapon, clothes, shoes)", s)
	}
}

// Equipped holds the item worn in each slot. Empty means nothing.
type Equipped struct {
	Hat     string `json:"hat"`
	Weapon  string `json:"weapon"`
	Clothes string `json:"clothes"`
	Shoes   string `json:"shoes"`
}

// Get returns the item in the slot.
func (e Equipped) Get(s Slot) string {
	switch s {
	case SlotHat:
		return e.Hat
	case SlotWeapon:
		return e.Weapon
	case SlotClothes:
		return e.Clothes
	case SlotShoes:
		return e.Shoes
	}
	return ""
}

// Set puts item in the slot.
func (e *Equipped) Set(s Slot, item string) {
	switch s {
	case SlotHat:
		e.Hat = item
	case SlotWeapon:
		e.Weapon = item
	case SlotClothes:
		e.Clothes = item
	case SlotShoes:
		e.Shoes = item
	}
}

// Inventory lists owned items per slot, in acquisition order.
type Inventory struct {
	Hats    []string `json:"hats"`
	Weapons []string `json:"weapons"`
	Clothes []string `json:"clothes"`
	Shoes   []string `json:"shoes"`
}

func (inv *Inventory) slice(s Slot) *[]string {
	switch s {
	case SlotHat:
		return &inv.Hats
	case SlotWeapon:
		return &inv.Weapons
	case SlotClothes:
		return &inv.Clothes
	case SlotShoes:
		return &inv.Shoes
	}
	return nil
}

// Items returns the owned items for a slot.
func (inv *Inventory) Items(s Slot) []string {
	if p := inv.slice(s); p != nil {
		return *p
	}
	return nil
}

// Has reports whether item is owned in the slot.
func (inv *Inventory) Has(s Slot, item string) bool {
	for _, it := range inv.Items(s) {
		if it == item {
			return true
		}
	}
	return false
}

// Add records item as owned. Returns false if it was already owned.
func (inv *Inventory) Add(s Slot, item string) bool {
	p := inv.slice(s)
	if p == nil || inv.Has(s, item) {
		return false
	}
	*p = append(*p, item)
	return true
}

// Count returns the total number of owned items.
func (inv *Inventory) Count() int {
	return len(inv.Hats) + len(inv.Weapons) + len(inv.Clothes) + len(inv.Shoes)
}

// Stats are cumulative counters across all runs.
type Stats struct {
	Plays            int `json:"plays"`
	PlayTimeSec      int `json:"play_time_sec"`
	Falls            int `json:"falls"`
	MaxTimeSec       int `json:"max_time_sec"`
	BestScore        int `json:"best_score"`
	CandiesCollected int `json:"candies_collected"`
	HardRuns         int `json:"hard_runs"`
}

// Daily tracks per-gaming-day counters.
type Daily struct {
	Date       string `json:"date"`
	Plays      int    `json:"plays"`
	ShopVisits int    `json:"shop_visits"`
}

// Profile is a single player's persistent state.
type Profile struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Mode         Mode   `json:"mode"`
	Wallet       int    `json:"wallet"`        // Cookies
	TotalCandies int    `json:"total_candies"` // Spendable candies
	CandyLevel   int    `json:"candy_level"`
	JumpBonus    int    `json:"jump_bonus"`
	MaxHearts    int    `json:"max_hearts"`

	Skin          string   `json:"skin"`
	UnlockedSkins []string `json:"unlocked_skins"`
	CandySkin     int      `json:"candy_skin"`

	Inventory Inventory `json:"inventory"`
	Equipped  Equipped  `json:"equipped"`
	Stats     Stats     `json:"stats"`

	Titles      []string `json:"titles"`
	ActiveTitle string   `json:"active_title"`

	Daily           Daily `json:"daily"`
	LastGlobalReset int64 `json:"last_global_reset"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns a fresh profile. Students start with the configured wallet.
func New(code, name string, mode Mode, eco config.EconomyConfig, now time.Time) *Profile {
	p := &Profile{
		Code:          code,
		Name:          name,
		Mode:          mode,
		CandyLevel:    1,
		MaxHearts:     eco.BaseHearts,
		Skin:          Skins[1],
		UnlockedSkins: []string{Skins[0], Skins[1]},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if mode == ModeStudent {
		p.Wallet = eco.StartingWallet
	}
	return p
}

// Normalize repairs fields that older or hand-edited records may leave
// zero or out of range.
func (p *Profile) Normalize(eco config.EconomyConfig) {
	if p.CandyLevel < 1 {
		p.CandyLevel = 1
	}
	if p.MaxHearts < 1 {
		p.MaxHearts = eco.BaseHearts
	}
	p.JumpBonus = max(0, min(p.JumpBonus, eco.MaxJumpBonus))
	if len(p.UnlockedSkins) == 0 {
		p.UnlockedSkins = []string{Skins[0], Skins[1]}
	}
	if p.Skin == "" {
		p.Skin = p.UnlockedSkins[len(p.UnlockedSkins)-1]
	}
	if p.CandySkin < 0 || p.CandySkin >= p.CandyLevel {
		p.CandySkin = 0
	}
}

// Appearance returns the cosmetic set used by the renderer.
func (p *Profile) Appearance() runner.Appearance {
	return runner.Appearance{
		Skin:    p.Skin,
		Hat:     p.Equipped.Hat,
		Weapon:  p.Equipped.Weapon,
		Clothes: p.Equipped.Clothes,
		Shoes:   p.Equipped.Shoes,
	}
}

// Progression captures the snapshot a run reads at start.
func (p *Profile) Progression(hard bool) runner.Progression {
	return runner.Progression{
		MaxHearts:       p.MaxHearts,
		CandyScoreLevel: p.CandyLevel,
		JumpBonusLevel:  p.JumpBonus,
		HardMode:        hard,
		CandyVariant:    p.CandySkin,
		Appearance:      p.Appearance(),
	}
}

// GamingDate returns the calendar date a play belongs to. The day rolls
// over at startHour local time, not at midnight.
func GamingDate(t time.Time, startHour int) string {
	if t.Hour() < startHour {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format("2006-01-02")
}

// RollDaily resets the daily counters when the gaming date has changed.
// Returns true if a reset happened.
func (p *Profile) RollDaily(now time.Time, startHour int) bool {
	today := GamingDate(now, startHour)
	if p.Daily.Date == today {
		return false
	}
	p.Daily = Daily{Date: today}
	return true
}

// ApplyGlobalReset wipes progress if an administrator reset is newer than
// the last one this profile saw. Wallet and identity survive.
func (p *Profile) ApplyGlobalReset(resetAt int64, eco config.EconomyConfig, now time.Time) bool {
	if resetAt <= p.LastGlobalReset {
		return false
	}
	fresh := New(p.Code, p.Name, p.Mode, eco, p.CreatedAt)
	fresh.Wallet = p.Wallet
	fresh.LastGlobalReset = resetAt
	fresh.UpdatedAt = now
	*p = *fresh
	return true
}

package profile

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/candy-run/internal/config"
)

var (
	ErrInsufficientFunds = errors.New("not enough funds")
	ErrMaxedOut          = errors.New("already at maximum")
	ErrDailyLimit        = errors.New("daily limit reached")
	ErrNotOwned          = errors.New("item not owned")
	ErrLocked            = errors.New("locked")
	ErrNothingLeft       = errors.New("every item already collected")
)

// Currency names what a transaction moved.
type Currency string

const (
	Cookies Currency = "cookie"
	Candies Currency = "candy"
)

// Transaction is one wallet or candy balance change.
type Transaction struct {
	ID         string
	PlayerCode string
	At         time.Time
	Desc       string
	Amount     int // Signed
	Currency   Currency
}

// Economy applies shop and entry rules to profiles.
// Not safe for concurrent use; each session owns its own.
type Economy struct {
	cfg config.EconomyConfig
	rng *rand.Rand
	now func() time.Time
}

// NewEconomy creates an economy with a seeded gacha RNG.
func NewEconomy(cfg config.EconomyConfig, seed int64) *Economy {
	return &Economy{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// SetClock overrides the time source.
func (e *Economy) SetClock(now func() time.Time) {
	e.now = now
}

// Config returns the economy settings.
func (e *Economy) Config() config.EconomyConfig {
	return e.cfg
}

// Now returns the economy's current time.
func (e *Economy) Now() time.Time {
	return e.now()
}

func (e *Economy) tx(p *Profile, desc string, amount int, cur Currency) Transaction {
	return Transaction{
		ID:         uuid.NewString(),
		PlayerCode: p.Code,
		At:         e.now(),
		Desc:       desc,
		Amount:     amount,
		Currency:   cur,
	}
}

func (e *Economy) spend(p *Profile, cost int, desc string) (Transaction, error) {
	if p.Wallet < cost {
		return Transaction{}, fmt.Errorf("%s costs %d cookies, have %d: %w", desc, cost, p.Wallet, ErrInsufficientFunds)
	}
	p.Wallet -= cost
	p.UpdatedAt = e.now()
	return e.tx(p, desc, -cost, Cookies), nil
}

// UpgradeCost returns the price of the next candy level.
func (e *Economy) UpgradeCost(p *Profile) int {
	return p.CandyLevel * e.cfg.PriceUpgrade
}

// UpgradeCandyLevel raises the per-candy score multiplier by one.
func (e *Economy) UpgradeCandyLevel(p *Profile) (Transaction, error) {
	t, err := e.spend(p, e.UpgradeCost(p), fmt.Sprintf("candy level %d", p.CandyLevel+1))
	if err != nil {
		return t, err
	}
	p.CandyLevel++
	return t, nil
}

// UpgradeHearts adds one heart up to the configured maximum.
func (e *Economy) UpgradeHearts(p *Profile) (Transaction, error) {
	if p.MaxHearts >= e.cfg.MaxHearts {
		return Transaction{}, fmt.Errorf("hearts %d/%d: %w", p.MaxHearts, e.cfg.MaxHearts, ErrMaxedOut)
	}
	t, err := e.spend(p, e.cfg.PriceHeartUpgrade, "heart upgrade")
	if err != nil {
		return t, err
	}
	p.MaxHearts++
	return t, nil
}

// UpgradeJump adds one point of per-jump score bonus.
func (e *Economy) UpgradeJump(p *Profile) (Transaction, error) {
	if p.JumpBonus >= e.cfg.MaxJumpBonus {
		return Transaction{}, fmt.Errorf("jump bonus %d/%d: %w", p.JumpBonus, e.cfg.MaxJumpBonus, ErrMaxedOut)
	}
	t, err := e.spend(p, e.cfg.PriceJumpUpgrade, "jump upgrade")
	if err != nil {
		return t, err
	}
	p.JumpBonus++
	return t, nil
}

// Gacha draws one item uniformly from those not yet owned.
func (e *Economy) Gacha(p *Profile) (Slot, string, Transaction, error) {
	if p.Wallet < e.cfg.PriceGacha {
		return 0, "", Transaction{}, fmt.Errorf("gacha costs %d cookies, have %d: %w", e.cfg.PriceGacha, p.Wallet, ErrInsufficientFunds)
	}
	pool := missing(&p.Inventory)
	if len(pool) == 0 {
		return 0, "", Transaction{}, ErrNothingLeft
	}
	pick := pool[e.rng.Intn(len(pool))]
	t, err := e.spend(p, e.cfg.PriceGacha, "gacha: "+pick.item)
	if err != nil {
		return 0, "", t, err
	}
	p.Inventory.Add(pick.slot, pick.item)
	return pick.slot, pick.item, t, nil
}

// Exchange converts candies into the given number of cookies.
func (e *Economy) Exchange(p *Profile, cookies int) (Transaction, error) {
	if cookies <= 0 {
		return Transaction{}, fmt.Errorf("exchange amount must be positive, got %d", cookies)
	}
	cost := cookies * e.cfg.ExchangeRate
	if p.TotalCandies < cost {
		return Transaction{}, fmt.Errorf("%d cookies need %d candies, have %d: %w", cookies, cost, p.TotalCandies, ErrInsufficientFunds)
	}
	p.TotalCandies -= cost
	p.Wallet += cookies
	p.UpdatedAt = e.now()
	return e.tx(p, fmt.Sprintf("exchange %d candies", cost), cookies, Cookies), nil
}

// Equip toggles an owned item in its slot. Equipping the worn item takes
// it off. Returns whether the item is now worn.
func (e *Economy) Equip(p *Profile, s Slot, item string) (bool, error) {
	if !p.Inventory.Has(s, item) {
		return false, fmt.Errorf("%s %q: %w", s, item, ErrNotOwned)
	}
	if p.Equipped.Get(s) == item {
		p.Equipped.Set(s, "")
		return false, nil
	}
	p.Equipped.Set(s, item)
	return true, nil
}

// SetCandySkin selects the candy variant. Variants unlock one per candy level.
func (e *Economy) SetCandySkin(p *Profile, variant, variants int) error {
	if variant < 0 || variant >= variants {
		return fmt.Errorf("candy skin %d out of range [0,%d)", variant, variants)
	}
	if variant >= p.CandyLevel {
		return fmt.Errorf("candy skin %d needs level %d: %w", variant, variant+1, ErrLocked)
	}
	p.CandySkin = variant
	return nil
}

// SetSkin selects an unlocked body color.
func (e *Economy) SetSkin(p *Profile, skin string) error {
	for _, s := range p.UnlockedSkins {
		if s == skin {
			p.Skin = skin
			return nil
		}
	}
	return fmt.Errorf("skin %q: %w", skin, ErrLocked)
}

// StartRun applies entry rules. Normal runs count against the student
// daily limit; hard runs cost candies instead. The returned transaction
// is nil for normal runs.
func (e *Economy) StartRun(p *Profile, hard bool) (*Transaction, error) {
	p.RollDaily(e.now(), e.cfg.GamingDayStartHour)
	if hard {
		cost := e.cfg.HardModeEntryCost
		if p.TotalCandies < cost {
			return nil, fmt.Errorf("hard mode needs %d candies, have %d: %w", cost, p.TotalCandies, ErrInsufficientFunds)
		}
		p.TotalCandies -= cost
		p.Stats.HardRuns++
		t := e.tx(p, "hard mode entry", -cost, Candies)
		return &t, nil
	}
	if p.Mode == ModeStudent && p.Daily.Plays >= e.cfg.DailyLimit {
		return nil, fmt.Errorf("%d/%d plays today: %w", p.Daily.Plays, e.cfg.DailyLimit, ErrDailyLimit)
	}
	p.Daily.Plays++
	return nil, nil
}

// OpenShop checks the student shop limit for today.
func (e *Economy) OpenShop(p *Profile) error {
	p.RollDaily(e.now(), e.cfg.GamingDayStartHour)
	if p.Mode == ModeStudent && p.Daily.ShopVisits >= e.cfg.ShopLimit {
		return fmt.Errorf("%d/%d shop visits today: %w", p.Daily.ShopVisits, e.cfg.ShopLimit, ErrDailyLimit)
	}
	return nil
}

// CountShopVisit records a visit that bought something. Browsing is free.
func (e *Economy) CountShopVisit(p *Profile) {
	p.Daily.ShopVisits++
}

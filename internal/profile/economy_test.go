package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/candy-run/internal/config"
)

func newTestEconomy(t *testing.T) (*Economy, *Profile) {
	t.Helper()
	cfg := config.DefaultEconomyConfig()
	e := NewEconomy(cfg, 1)
	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.Local)
	e.SetClock(func() time.Time { return at })
	return e, New("S01", "Mina", ModeStudent, cfg, at)
}

func TestUpgradeCandyLevel(t *testing.T) {
	e, p := newTestEconomy(t)
	p.Wallet = 15

	tx, err := e.UpgradeCandyLevel(p) // costs 1*5
	if err != nil {
		t.Fatalf("UpgradeCandyLevel() failed: %v", err)
	}
	if p.CandyLevel != 2 || p.Wallet != 10 || tx.Amount != -5 || tx.ID == "" || tx.Currency != Cookies {
		t.Errorf("level=%d wallet=%d tx=%+v", p.CandyLevel, p.Wallet, tx)
	}

	if _, err := e.UpgradeCandyLevel(p); err != nil { // costs 2*5
		t.Fatalf("second upgrade failed: %v", err)
	}
	_, err = e.UpgradeCandyLevel(p) // costs 3*5, wallet 0
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if p.CandyLevel != 3 || p.Wallet != 0 {
		t.Errorf("failed upgrade mutated profile: level=%d wallet=%d", p.CandyLevel, p.Wallet)
	}
}

func TestUpgradeCaps(t *testing.T) {
	e, p := newTestEconomy(t)
	p.Wallet = 10000

	for p.MaxHearts < e.Config().MaxHearts {
		if _, err := e.UpgradeHearts(p); err != nil {
			t.Fatalf("UpgradeHearts() failed: %v", err)
		}
	}
	if _, err := e.UpgradeHearts(p); !errors.Is(err, ErrMaxedOut) {
		t.Errorf("expected ErrMaxedOut for hearts, got %v", err)
	}

	for range e.Config().MaxJumpBonus {
		if _, err := e.UpgradeJump(p); err != nil {
			t.Fatalf("UpgradeJump() failed: %v", err)
		}
	}
	if _, err := e.UpgradeJump(p); !errors.Is(err, ErrMaxedOut) {
		t.Errorf("expected ErrMaxedOut for jump, got %v", err)
	}
	if p.JumpBonus != e.Config().MaxJumpBonus {
		t.Errorf("JumpBonus = %d", p.JumpBonus)
	}
}

func TestGachaDrawsEveryItemOnce(t *testing.T) {
	e, p := newTestEconomy(t)
	price := e.Config().PriceGacha
	p.Wallet = price * CatalogSize()

	seen := map[string]bool{}
	for range CatalogSize() {
		slot, item, tx, err := e.Gacha(p)
		if err != nil {
			t.Fatalf("Gacha() failed: %v", err)
		}
		key := slot.String() + "/" + item
		if seen[key] {
			t.Fatalf("duplicate draw %s", key)
		}
		seen[key] = true
		if !InCatalog(slot, item) || tx.Amount != -price {
			t.Fatalf("bad draw %s tx=%+v", key, tx)
		}
	}
	if p.Inventory.Count() != CatalogSize() || p.Wallet != 0 {
		t.Errorf("inventory=%d wallet=%d", p.Inventory.Count(), p.Wallet)
	}

	p.Wallet = price
	if _, _, _, err := e.Gacha(p); !errors.Is(err, ErrNothingLeft) {
		t.Errorf("expected ErrNothingLeft, got %v", err)
	}
	if p.Wallet != price {
		t.Error("exhausted gacha must not charge")
	}

	p.Wallet = 0
	if _, _, _, err := e.Gacha(p); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestExchange(t *testing.T) {
	e, p := newTestEconomy(t)
	p.Wallet = 0
	p.TotalCandies = 35

	tx, err := e.Exchange(p, 3)
	if err != nil {
		t.Fatalf("Exchange() failed: %v", err)
	}
	if p.TotalCandies != 5 || p.Wallet != 3 || tx.Amount != 3 {
		t.Errorf("candies=%d wallet=%d tx=%+v", p.TotalCandies, p.Wallet, tx)
	}
	if _, err := e.Exchange(p, 1); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := e.Exchange(p, 0); err == nil {
		t.Error("zero exchange accepted")
	}
}

func TestEquipToggle(t *testing.T) {
	e, p := newTestEconomy(t)
	if _, err := e.Equip(p, SlotHat, "crown"); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("expected ErrNotOwned, got %v", err)
	}
	p.Inventory.Add(SlotHat, "crown")

	on, err := e.Equip(p, SlotHat, "crown")
	if err != nil || !on || p.Equipped.Hat != "crown" {
		t.Fatalf("equip: on=%v err=%v hat=%q", on, err, p.Equipped.Hat)
	}
	on, err = e.Equip(p, SlotHat, "crown")
	if err != nil || on || p.Equipped.Hat != "" {
		t.Errorf("unequip: on=%v err=%v hat=%q", on, err, p.Equipped.Hat)
	}
}

func TestSkins(t *testing.T) {
	e, p := newTestEconomy(t)
	p.CandyLevel = 3

	if err := e.SetCandySkin(p, 2, 20); err != nil || p.CandySkin != 2 {
		t.Errorf("SetCandySkin(2): %v skin=%d", err, p.CandySkin)
	}
	if err := e.SetCandySkin(p, 3, 20); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}
	if err := e.SetCandySkin(p, 25, 20); err == nil || errors.Is(err, ErrLocked) {
		t.Errorf("out of range should be a plain error, got %v", err)
	}

	if err := e.SetSkin(p, Skins[0]); err != nil || p.Skin != Skins[0] {
		t.Errorf("SetSkin unlocked: %v", err)
	}
	if err := e.SetSkin(p, Skins[5]); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}
}

func TestStartRunLimits(t *testing.T) {
	e, p := newTestEconomy(t)
	limit := e.Config().DailyLimit

	for i := range limit {
		tx, err := e.StartRun(p, false)
		if err != nil || tx != nil {
			t.Fatalf("run %d: tx=%v err=%v", i, tx, err)
		}
	}
	if _, err := e.StartRun(p, false); !errors.Is(err, ErrDailyLimit) {
		t.Errorf("expected ErrDailyLimit, got %v", err)
	}

	guest := New("", "guest", ModeGuest, e.Config(), e.Now())
	for range limit + 3 {
		if _, err := e.StartRun(guest, false); err != nil {
			t.Fatalf("guest blocked: %v", err)
		}
	}

	// Hard mode ignores the play limit but costs candies.
	cost := e.Config().HardModeEntryCost
	p.TotalCandies = cost - 1
	if _, err := e.StartRun(p, true); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	p.TotalCandies = cost + 7
	tx, err := e.StartRun(p, true)
	if err != nil || tx == nil {
		t.Fatalf("hard entry: tx=%v err=%v", tx, err)
	}
	if p.TotalCandies != 7 || p.Stats.HardRuns != 1 || tx.Currency != Candies || tx.Amount != -cost {
		t.Errorf("candies=%d hardRuns=%d tx=%+v", p.TotalCandies, p.Stats.HardRuns, tx)
	}
}

func TestDailyLimitResetsNextGamingDay(t *testing.T) {
	e, p := newTestEconomy(t)
	p.Daily = Daily{Date: GamingDate(e.Now(), 8), Plays: e.Config().DailyLimit}
	if _, err := e.StartRun(p, false); !errors.Is(err, ErrDailyLimit) {
		t.Fatalf("expected ErrDailyLimit, got %v", err)
	}

	next := e.Now().Add(24 * time.Hour)
	e.SetClock(func() time.Time { return next })
	if _, err := e.StartRun(p, false); err != nil {
		t.Fatalf("new day still blocked: %v", err)
	}
	if p.Daily.Plays != 1 {
		t.Errorf("plays = %d, expected 1", p.Daily.Plays)
	}
}

func TestShopVisits(t *testing.T) {
	e, p := newTestEconomy(t)
	for range e.Config().ShopLimit {
		if err := e.OpenShop(p); err != nil {
			t.Fatalf("OpenShop() failed: %v", err)
		}
		// Browsing alone never counts.
		if err := e.OpenShop(p); err != nil {
			t.Fatalf("OpenShop() after browsing failed: %v", err)
		}
		e.CountShopVisit(p)
	}
	if err := e.OpenShop(p); !errors.Is(err, ErrDailyLimit) {
		t.Errorf("expected ErrDailyLimit, got %v", err)
	}
}

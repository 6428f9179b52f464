package profile

import (
	"fmt"
	"time"

	"github.com/vovakirdan/candy-run/internal/config"
)

// Repository is the persistence surface needed to open a profile.
type Repository interface {
	Store
	LoadProfile(code string) (*Profile, error)
	GlobalReset() (int64, error)
}

// Open loads the profile for code, creating it if missing, and applies
// login-time housekeeping: field repair, pending global reset and the
// daily counter rollover. The result is saved before returning.
func Open(repo Repository, eco config.EconomyConfig, code, name string, mode Mode, now time.Time) (*Profile, error) {
	p, err := repo.LoadProfile(code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = New(code, name, mode, eco, now)
	}
	if name != "" {
		p.Name = name
	}
	p.Mode = mode
	p.Normalize(eco)

	resetAt, err := repo.GlobalReset()
	if err != nil {
		return nil, err
	}
	p.ApplyGlobalReset(resetAt, eco, now)
	p.RollDaily(now, eco.GamingDayStartHour)

	if err := repo.SaveProfile(p); err != nil {
		return nil, fmt.Errorf("save profile %s: %w", code, err)
	}
	return p, nil
}

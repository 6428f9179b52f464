package profile

import "fmt"

// Achievement is a title unlocked once its condition holds.
type Achievement struct {
	ID    string
	Title string
	Desc  string
	met   func(p *Profile) bool
}

// Achievements is the fixed catalog, in unlock-check order.
var Achievements = []Achievement{
	{"first_run", "Rookie", "Finish your first run", func(p *Profile) bool { return p.Stats.Plays >= 1 }},
	{"regular", "Regular", "Finish 50 runs", func(p *Profile) bool { return p.Stats.Plays >= 50 }},
	{"sweet_tooth", "Sweet Tooth", "Collect 100 candies", func(p *Profile) bool { return p.Stats.CandiesCollected >= 100 }},
	{"candy_hoarder", "Candy Hoarder", "Collect 1000 candies", func(p *Profile) bool { return p.Stats.CandiesCollected >= 1000 }},
	{"survivor", "Survivor", "Last one minute in a run", func(p *Profile) bool { return p.Stats.MaxTimeSec >= 60 }},
	{"marathoner", "Marathoner", "Last three minutes in a run", func(p *Profile) bool { return p.Stats.MaxTimeSec >= 180 }},
	{"daredevil", "Daredevil", "Enter hard mode", func(p *Profile) bool { return p.Stats.HardRuns >= 1 }},
	{"spelunker", "Spelunker", "Fall into 10 pits", func(p *Profile) bool { return p.Stats.Falls >= 10 }},
	{"candy_master", "Candy Master", "Reach candy level 10", func(p *Profile) bool { return p.CandyLevel >= 10 }},
	{"rich", "Cookie Baron", "Hold 500 cookies", func(p *Profile) bool { return p.Wallet >= 500 }},
	{"fashionista", "Fashionista", "Own 10 items", func(p *Profile) bool { return p.Inventory.Count() >= 10 }},
	{"completionist", "Completionist", "Own every item", func(p *Profile) bool { return p.Inventory.Count() >= CatalogSize() }},
}

// Met reports whether the achievement condition holds for p.
func (a Achievement) Met(p *Profile) bool {
	return a.met(p)
}

// LookupAchievement finds a catalog entry by ID.
func LookupAchievement(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// HasTitle reports whether the achievement is unlocked.
func (p *Profile) HasTitle(id string) bool {
	for _, t := range p.Titles {
		if t == id {
			return true
		}
	}
	return false
}

// CheckAchievements unlocks every newly met achievement and returns them.
// The first title ever earned becomes active.
func CheckAchievements(p *Profile) []Achievement {
	var unlocked []Achievement
	for _, a := range Achievements {
		if p.HasTitle(a.ID) || !a.Met(p) {
			continue
		}
		p.Titles = append(p.Titles, a.ID)
		unlocked = append(unlocked, a)
	}
	if p.ActiveTitle == "" && len(p.Titles) > 0 {
		p.ActiveTitle = p.Titles[0]
	}
	return unlocked
}

// SetActiveTitle shows an unlocked title next to the player's name.
// An empty id hides the title.
func (p *Profile) SetActiveTitle(id string) error {
	if id != "" && !p.HasTitle(id) {
		return fmt.Errorf("title %q: %w", id, ErrLocked)
	}
	p.ActiveTitle = id
	return nil
}

// DisplayName returns the name decorated with the active title.
func (p *Profile) DisplayName() string {
	if a, ok := LookupAchievement(p.ActiveTitle); ok {
		return fmt.Sprintf("[%s] %s", a.Title, p.Name)
	}
	return p.Name
}

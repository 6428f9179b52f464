package runner

import "testing"

func TestObstacleHitSlack(t *testing.T) {
	cfg := quietConfig()
	r := newRunner(cfg, 3)
	// Player and ground obstacle each give up HitSlack, so centers closer than
	// (Width+GroundSize)/2 - HitSlack overlap.
	reach := (cfg.Player.Width+cfg.Obstacles.GroundSize)/2 - cfg.Player.HitSlack

	tests := []struct {
		name string
		dx   float64
		hit  bool
	}{
		{"centered", 0, true},
		{"deep overlap", reach - 5, true},
		{"inside slack", reach + 5, false},
		{"far ahead", 400, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			reg.Add(groundObstacleAt(cfg, r.X+tc.dx))
			got := firstObstacleHit(r, reg, cfg.Player) >= 0
			if got != tc.hit {
				t.Errorf("hit = %v, expected %v", got, tc.hit)
			}
		})
	}
}

func TestFirstObstacleHitSkipsPitsAndCandies(t *testing.T) {
	cfg := quietConfig()
	r := newRunner(cfg, 3)
	reg := NewRegistry()
	reg.Add(pitAt(cfg, r.X, 200))
	reg.Add(Object{Kind: KindCollectible, Type: TypeCandy, X: r.X, Y: r.Y, R: cfg.Collectibles.Radius})
	reg.Add(groundObstacleAt(cfg, r.X))

	if got := firstObstacleHit(r, reg, cfg.Player); got != 2 {
		t.Errorf("firstObstacleHit = %d, expected 2", got)
	}
	if pitAt(cfg, r.X, 200).Shape(cfg.Player) != nil {
		t.Error("pits should have no collision shape")
	}
}

func TestPickupReach(t *testing.T) {
	cfg := quietConfig()
	r := newRunner(cfg, 3)
	px, py := PickupPoint(r, cfg.Player)
	radius := cfg.Player.PickupRadius

	tests := []struct {
		name   string
		dx, dy float64
		taken  int
	}{
		{"on the point", 0, 0, 1},
		{"just inside", radius - 2, 0, 1},
		{"diagonal inside", 30, 30, 1},
		{"just outside", radius + 2, 0, 0},
		{"diagonal outside", 40, 40, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			reg.Add(Object{Kind: KindCollectible, Type: TypeCandy, X: px + tc.dx, Y: py + tc.dy, R: cfg.Collectibles.Radius})
			if got := collectPickups(r, reg, cfg.Player); got != tc.taken {
				t.Errorf("taken = %d, expected %d", got, tc.taken)
			}
			if tc.taken > 0 && len(reg.Live()) != 0 {
				t.Error("taken candy should be marked removed")
			}
		})
	}
}

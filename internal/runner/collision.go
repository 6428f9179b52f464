package runner

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/candy-run/internal/config"
	"github.com/vovakirdan/candy-run/internal/core"
)

// PickupPoint returns the point tested against collectibles.
func PickupPoint(r Runner, p config.PlayerConfig) (float64, float64) {
	return r.X, r.Y + p.PickupOffset
}

// minShapeSize keeps slack-shrunk rectangles from collapsing.
const minShapeSize = 1

// boxShape builds the collision rectangle for b, shrunk by slack on each axis.
func boxShape(b core.Box, slack float64) resolv.IShape {
	w := math.Max(b.W-slack, minShapeSize)
	h := math.Max(b.H-slack, minShapeSize)
	return resolv.NewRectangleFromTopLeft(b.CX-w/2, b.CY-h/2, w, h)
}

// HitShape returns the runner's obstacle collision shape for the current pose.
// Both the runner and each obstacle give up HitSlack, so a hit needs a real
// overlap of more than HitSlack on each axis.
func HitShape(r Runner, p config.PlayerConfig) resolv.IShape {
	return boxShape(r.Hitbox(p), p.HitSlack)
}

// Shape returns the collision shape of an obstacle or collectible. Pits have
// no shape; they are handled by position.
func (o Object) Shape(p config.PlayerConfig) resolv.IShape {
	switch {
	case o.Kind == KindCollectible:
		return resolv.NewCircle(o.X, o.Y, o.R)
	case o.Kind.IsObstacle():
		return boxShape(o.Box(), p.HitSlack)
	default:
		return nil
	}
}

// pickupZone returns the circle that collects candies. Reach is measured
// center to center, so the candy's own radius is taken off the zone.
func pickupZone(r Runner, p config.PlayerConfig, candyR float64) resolv.IShape {
	px, py := PickupPoint(r, p)
	return resolv.NewCircle(px, py, math.Max(p.PickupRadius-candyR, 0))
}

// collectPickups marks every collectible within reach and returns how many
// were taken.
func collectPickups(r Runner, reg *Registry, p config.PlayerConfig) int {
	taken := 0
	reg.Each(func(i int, o *Object) bool {
		if o.Kind != KindCollectible {
			return true
		}
		if pickupZone(r, p, o.R).IsIntersecting(o.Shape(p)) {
			reg.Remove(i)
			taken++
		}
		return true
	})
	return taken
}

// firstObstacleHit returns the index of the first obstacle intersecting the
// runner's hit shape, or -1.
func firstObstacleHit(r Runner, reg *Registry, p config.PlayerConfig) int {
	hs := HitShape(r, p)
	hit := -1
	reg.Each(func(i int, o *Object) bool {
		if !o.Kind.IsObstacle() {
			return true
		}
		if hs.IsIntersecting(o.Shape(p)) {
			hit = i
			return false
		}
		return true
	})
	return hit
}

// Invulnerable reports whether obstacle tests are skipped at time nowMs.
func (r Runner) Invulnerable(nowMs float64) bool {
	return nowMs < r.InvulnerableUntil
}

// collide runs the collision step for one tick: pit fall, pickups, then at
// most one obstacle hit.
func (s *Session) collide() {
	r := &s.runner
	if r.Plunging && r.Y > s.cfg.World.Height {
		s.finish(OutcomeFell)
		return
	}

	if n := collectPickups(*r, s.reg, s.cfg.Player); n > 0 {
		for range n {
			s.tally.Candies++
			s.sink.OnAddScore(1)
			s.cue(CueCandy)
		}
	}

	now := s.clock.ElapsedMs
	if r.Invulnerable(now) {
		return
	}
	if firstObstacleHit(*r, s.reg, s.cfg.Player) < 0 {
		return
	}

	r.Hearts--
	s.clock.ShakeUntil = now + s.cfg.Hearts.ShakeMs
	if r.Hearts <= 0 {
		r.Hearts = 0
		s.finish(OutcomeCollision)
		return
	}
	r.InvulnerableUntil = now + s.cfg.Hearts.InvulnerabilityMs
	s.cue(CueHit)
}

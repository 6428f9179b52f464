package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/candy-run/internal/config"
)

// Spawner inserts obstacles and collectibles into the registry whenever the
// scrolled distance passes one of two independent thresholds.
type Spawner struct {
	cfg  config.RunnerConfig
	rng  *rand.Rand
	seed int64

	nextObstacle    float64
	nextCollectible float64
	lastGap         float64 // Most recent obstacle gap, for inspection
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(cfg config.RunnerConfig, seed int64) *Spawner {
	sp := &Spawner{cfg: cfg}
	sp.Reset(seed)
	return sp
}

// Reset rewinds both thresholds and reseeds the RNG.
func (sp *Spawner) Reset(seed int64) {
	sp.seed = seed
	sp.rng = rand.New(rand.NewSource(seed))
	sp.nextObstacle = sp.cfg.Obstacles.FirstAt
	sp.nextCollectible = sp.cfg.Collectibles.FirstAt
	sp.lastGap = 0
}

// Clearance returns the smallest obstacle gap that still leaves room for a
// full single-jump arc at the given scroll speed (px/ms), plus the distance
// over which the runner's hitbox overlaps a ground obstacle.
func Clearance(cfg config.RunnerConfig, speed float64) float64 {
	span := cfg.Player.Width + cfg.Obstacles.GroundSize - 2*cfg.Player.HitSlack
	if span < 0 {
		span = 0
	}
	return speed*Airtime(cfg.Physics) + span
}

// ObstacleGap draws the distance to the next obstacle. u is a uniform sample
// in [0, 1); density includes the hard mode factor.
func ObstacleGap(cfg config.RunnerConfig, u, density, speed float64) float64 {
	if density < 1 {
		density = 1
	}
	gap := (cfg.Obstacles.GapMin + u*cfg.Obstacles.GapJitter) / density
	return math.Max(gap, Clearance(cfg, speed))
}

// SpeedAt reports the scroll speed aheadMs milliseconds from now.
type SpeedAt func(aheadMs float64) float64

// maxGapPasses bounds the search for a gap that holds at arrival speed.
const maxGapPasses = 8

// Update spawns at most one obstacle and one collectible.
// distance is the total scrolled distance after this tick's step, speed the
// current scroll speed in px/ms and density the combined spawn multiplier.
// speedAt may be nil when the speed never changes.
func (sp *Spawner) Update(reg *Registry, distance, speed, density float64, speedAt SpeedAt, candyVariant int) {
	if density < 1 {
		density = 1
	}

	if distance >= sp.nextObstacle {
		reg.Add(sp.obstacle())
		sp.lastGap = sp.obstacleGap(sp.rng.Float64(), density, speed, speedAt)
		sp.nextObstacle = distance + sp.lastGap
	}

	if distance >= sp.nextCollectible {
		reg.Add(sp.collectible(candyVariant))
		gap := (sp.cfg.Collectibles.GapMin + sp.rng.Float64()*sp.cfg.Collectibles.GapJitter) / density
		sp.nextCollectible = distance + gap
	}
}

// obstacleGap draws the next gap so it still clears a jump at the fastest
// speed the world can reach before the following obstacle passes the runner.
// The lookahead uses the current speed, which overestimates the time left.
func (sp *Spawner) obstacleGap(u, density, speed float64, speedAt SpeedAt) float64 {
	arrival := speed
	gap := ObstacleGap(sp.cfg, u, density, arrival)
	if speedAt == nil || speed <= 0 {
		return gap
	}
	travel := sp.cfg.World.Width - sp.cfg.Player.X
	for range maxGapPasses {
		next := math.Max(arrival, speedAt((travel+gap)/speed))
		if next <= arrival {
			break
		}
		arrival = next
		gap = ObstacleGap(sp.cfg, u, density, arrival)
	}
	return gap
}

// obstacle draws a category, then a concrete type and placement.
func (sp *Spawner) obstacle() Object {
	oc := sp.cfg.Obstacles
	groundY := sp.cfg.World.GroundY()
	x := sp.cfg.World.Width

	u := sp.rng.Float64()
	switch {
	case u < oc.PitChance:
		w := oc.PitMinWidth + sp.rng.Float64()*oc.PitWidthJitter
		depth := sp.cfg.World.GroundOffset
		return Object{
			Kind: KindPit,
			Type: TypeHole,
			X:    x,
			Y:    groundY + depth/2,
			W:    w,
			H:    depth,
		}
	case u < oc.PitChance+oc.AirChance && len(oc.AirTiers) > 0:
		tier := oc.AirTiers[sp.rng.Intn(len(oc.AirTiers))]
		return Object{
			Kind: KindAirborne,
			Type: airborneTypes[sp.rng.Intn(len(airborneTypes))],
			X:    x,
			Y:    groundY - tier,
			W:    oc.AirSize,
			H:    oc.AirSize,
		}
	default:
		return Object{
			Kind: KindGround,
			Type: groundTypes[sp.rng.Intn(len(groundTypes))],
			X:    x,
			Y:    groundY - oc.GroundSize/2,
			W:    oc.GroundSize,
			H:    oc.GroundSize,
		}
	}
}

// collectible places a candy at a random height above the ground line.
// A negative variant draws one per candy.
func (sp *Spawner) collectible(variant int) Object {
	cc := sp.cfg.Collectibles
	if variant < 0 {
		variant = 0
		if cc.Variants > 0 {
			variant = sp.rng.Intn(cc.Variants)
		}
	}
	return Object{
		Kind:    KindCollectible,
		Type:    TypeCandy,
		X:       sp.cfg.World.Width,
		Y:       sp.cfg.World.GroundY() - (cc.HeightMin + sp.rng.Float64()*cc.HeightJitter),
		R:       cc.Radius,
		Variant: variant,
	}
}

// LastGap returns the most recently drawn obstacle gap.
func (sp *Spawner) LastGap() float64 {
	return sp.lastGap
}

package runner

import "github.com/vovakirdan/candy-run/internal/core"

// Kind is the gameplay category of a world object.
type Kind int

const (
	KindGround Kind = iota
	KindAirborne
	KindPit
	KindCollectible
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindAirborne:
		return "airborne"
	case KindPit:
		return "pit"
	case KindCollectible:
		return "collectible"
	default:
		return "unknown"
	}
}

// IsObstacle reports whether the kind is tested by hitbox overlap.
func (k Kind) IsObstacle() bool {
	return k == KindGround || k == KindAirborne
}

// Concrete object types. They only affect presentation.
const (
	TypeCactus   = "cactus"
	TypeRock     = "rock"
	TypeBarrier  = "barrier"
	TypeMushroom = "mushroom"
	TypeBird     = "bird"
	TypeBee      = "bee"
	TypeGhost    = "ghost"
	TypeHole     = "hole"
	TypeCandy    = "candy"
)

var (
	groundTypes   = []string{TypeCactus, TypeRock, TypeBarrier, TypeMushroom}
	airborneTypes = []string{TypeBird, TypeBee, TypeGhost}
)

// Object is a world object scrolling toward the runner.
// X and Y are the center; collectibles use R, everything else W and H.
type Object struct {
	Kind    Kind
	Type    string
	X, Y    float64
	W, H    float64
	R       float64
	Variant int

	removed bool
}

// Box returns the object's bounds as a world box.
func (o Object) Box() core.Box {
	if o.Kind == KindCollectible {
		return core.Box{CX: o.X, CY: o.Y, W: 2 * o.R, H: 2 * o.R}
	}
	return core.Box{CX: o.X, CY: o.Y, W: o.W, H: o.H}
}

// Spans reports whether x lies within the object's horizontal extent.
func (o Object) Spans(x float64) bool {
	return x >= o.X-o.W/2 && x <= o.X+o.W/2
}

// Registry holds live world objects in insertion order.
// Removal is two-phase: objects are marked during a scan and dropped by Compact.
type Registry struct {
	objects []Object
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{objects: make([]Object, 0, 16)}
}

// Add appends an object.
func (r *Registry) Add(o Object) {
	o.removed = false
	r.objects = append(r.objects, o)
}

// Len returns the number of stored objects, including marked ones.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Advect moves every live object left by step.
func (r *Registry) Advect(step float64) {
	for i := range r.objects {
		if !r.objects[i].removed {
			r.objects[i].X -= step
		}
	}
}

// Prune marks objects that have scrolled past cullX.
func (r *Registry) Prune(cullX float64) {
	for i := range r.objects {
		if r.objects[i].X < cullX {
			r.objects[i].removed = true
		}
	}
}

// Remove marks the object at index i.
func (r *Registry) Remove(i int) {
	if i >= 0 && i < len(r.objects) {
		r.objects[i].removed = true
	}
}

// Each calls fn for every live object in insertion order with its index.
// Iteration stops when fn returns false.
func (r *Registry) Each(fn func(i int, o *Object) bool) {
	for i := range r.objects {
		if r.objects[i].removed {
			continue
		}
		if !fn(i, &r.objects[i]) {
			return
		}
	}
}

// Compact drops every marked object, preserving order.
func (r *Registry) Compact() {
	live := r.objects[:0]
	for _, o := range r.objects {
		if !o.removed {
			live = append(live, o)
		}
	}
	// Clear the tail so dropped objects do not linger in the backing array.
	for i := len(live); i < len(r.objects); i++ {
		r.objects[i] = Object{}
	}
	r.objects = live
}

// Reset removes all objects.
func (r *Registry) Reset() {
	r.objects = r.objects[:0]
}

// Live returns a copy of the live objects.
func (r *Registry) Live() []Object {
	out := make([]Object, 0, len(r.objects))
	for _, o := range r.objects {
		if !o.removed {
			out = append(out, o)
		}
	}
	return out
}

// PitUnder reports whether x lies inside any live pit span.
func (r *Registry) PitUnder(x float64) bool {
	found := false
	r.Each(func(_ int, o *Object) bool {
		if o.Kind == KindPit && o.Spans(x) {
			found = true
			return false
		}
		return true
	})
	return found
}

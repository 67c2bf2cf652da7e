package parade

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FrameAnimator cycles an index over a looping frame sequence. The index
// advances once every Cadence ticks, and only on ticks where the owner is
// moving.
type FrameAnimator struct {
	count   int
	cadence int
	index   int
	ticks   int
}

// NewFrameAnimator returns an animator over count frames. A cadence below 1
// is treated as 1.
func NewFrameAnimator(count, cadence int) FrameAnimator {
	if cadence < 1 {
		cadence = 1
	}
	if count < 0 {
		count = 0
	}
	return FrameAnimator{count: count, cadence: cadence}
}

// Tick records one update. Frozen while not moving; a no-op for an empty
// sequence.
func (a *FrameAnimator) Tick(moving bool) {
	if a.count == 0 || !moving {
		return
	}
	a.ticks++
	if a.ticks >= a.cadence {
		a.ticks = 0
		a.index = (a.index + 1) % a.count
	}
}

// Index returns the current frame index, always in [0, count) for a
// non-empty sequence.
func (a *FrameAnimator) Index() int {
	return a.index
}

// Len returns the sequence length.
func (a *FrameAnimator) Len() int {
	return a.count
}

// Reset rewinds to the first frame.
func (a *FrameAnimator) Reset() {
	a.index = 0
	a.ticks = 0
}

// TweenGroup animates up to 2 float64 fields simultaneously. Create one via
// TweenPosition or TweenValue and call Update(dt) each frame. Delay seconds
// elapse before the tweens start moving.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	Delay  float32
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.Delay > 0 {
		g.Delay -= dt
		if g.Delay > 0 {
			return
		}
		dt = -g.Delay
		g.Delay = 0
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that animates p toward to over the
// duration using the easing function.
func TweenPosition(p *Vec2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(p.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(p.Y), float32(to.Y), duration, fn)
	g.fields[0] = &p.X
	g.fields[1] = &p.Y
	return g
}

// TweenValue creates a TweenGroup that animates a single value.
func TweenValue(v *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*v), float32(to), duration, fn)
	g.fields[0] = v
	return g
}

package parade

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// MachineAssets holds the decoded images for one kind.
type MachineAssets struct {
	Body   *ebiten.Image
	Size   Vec2 // body size in pixels
	Wheels []*ebiten.Image
	Hook   []*ebiten.Image
}

// MotionConfig controls travel and the enter/pause/exit timing.
type MotionConfig struct {
	Speed        float64 `mapstructure:"speed"`        // pixels per tick
	PauseTicks   int     `mapstructure:"pauseTicks"`   // ticks spent paused before exiting
	FrameCadence int     `mapstructure:"frameCadence"` // ticks per wheel frame
	NudgeX       float64 `mapstructure:"nudgeX"`       // left/right arrow step
	NudgeY       float64 `mapstructure:"nudgeY"`       // up/down arrow step

	// Threshold is the x the body center must reach before pausing. Set from
	// the canvas width by the session.
	Threshold float64 `mapstructure:"-"`
}

// Step is the per-tick input handed to Machine.Update.
type Step struct {
	Mode  Mode
	Hold  bool // suppress automatic travel
	Nudge Vec2 // manual displacement applied after travel
}

const (
	minWheelScale = 0.1
	maxWheelScale = 4.0
)

// Machine is one on-screen vehicle: a static body with looping wheel (and
// optionally hook) frames composited on top.
type Machine struct {
	Kind  KindSpec
	Body  *ebiten.Image
	Size  Vec2
	Pos   Vec2
	Speed float64
	State State

	Wheels []*ebiten.Image
	Hook   []*ebiten.Image

	// Runtime-editable wheel knobs, seeded from Kind.
	WheelOffset Vec2
	WheelScale  float64

	motion     MotionConfig
	anim       FrameAnimator
	pauseTicks int
}

// NewMachine creates a machine of the given kind at pos, entering.
func NewMachine(kind KindSpec, assets *MachineAssets, pos Vec2, motion MotionConfig) *Machine {
	kind = kind.normalized()
	m := &Machine{
		Kind:        kind,
		Pos:         pos,
		Speed:       motion.Speed,
		State:       StateEntering,
		WheelOffset: kind.WheelOffset,
		WheelScale:  kind.WheelScale,
		motion:      motion,
	}
	if assets != nil {
		m.Body = assets.Body
		m.Size = assets.Size
		m.Wheels = assets.Wheels
		m.Hook = assets.Hook
	}
	m.anim = NewFrameAnimator(len(m.Wheels), motion.FrameCadence)
	return m
}

// Bounds returns the body rectangle.
func (m *Machine) Bounds() Rect {
	return Rect{X: m.Pos.X, Y: m.Pos.Y, Width: m.Size.X, Height: m.Size.Y}
}

// CenterX returns the horizontal center of the body.
func (m *Machine) CenterX() float64 {
	return m.Pos.X + m.Size.X/2
}

// Right returns the x of the body's right edge.
func (m *Machine) Right() float64 {
	return m.Pos.X + m.Size.X
}

// Gone reports whether the body has left the screen through the left edge.
func (m *Machine) Gone() bool {
	return m.Right() < 0
}

// FrameIndex returns the current wheel frame index.
func (m *Machine) FrameIndex() int {
	return m.anim.Index()
}

// PauseTicks returns how long the machine has been paused.
func (m *Machine) PauseTicks() int {
	return m.pauseTicks
}

// advance moves to a later state. Earlier or equal targets are ignored.
func (m *Machine) advance(to State) bool {
	if to <= m.State {
		return false
	}
	m.State = to
	return true
}

// Update runs one tick of the state machine and reports whether the machine
// has left the screen.
func (m *Machine) Update(step Step) bool {
	moving := false
	if !step.Hold {
		switch {
		case m.State == StateRacing:
			m.Pos.X -= m.Speed
			moving = true
		case step.Mode == ModeScroll:
			m.advance(StateExiting)
			m.Pos.X -= m.Speed
			moving = true
		default:
			moving = m.script()
		}
	}

	if !step.Nudge.IsZero() {
		m.Pos = m.Pos.Add(step.Nudge)
		moving = true
	}

	m.anim.Tick(moving)
	return m.Gone()
}

// script advances the enter/pause/exit path by one tick.
func (m *Machine) script() bool {
	switch m.State {
	case StateEntering:
		if m.CenterX() > m.motion.Threshold {
			m.Pos.X -= m.Speed
			return true
		}
		m.advance(StatePaused)
	case StatePaused:
		m.pauseTicks++
		if m.pauseTicks > m.motion.PauseTicks {
			m.advance(StateExiting)
		}
	case StateExiting:
		m.Pos.X -= m.Speed
		return true
	}
	return false
}

// SetRacing places the machine on a start line under race control.
func (m *Machine) SetRacing(pos Vec2, speed float64) {
	m.Pos = pos
	m.Speed = speed
	m.advance(StateRacing)
	m.anim.Reset()
}

// TuneWheels adjusts the runtime wheel knobs. The scale stays within
// [0.1, 4].
func (m *Machine) TuneWheels(dx, dy, dscale float64) {
	m.WheelOffset.X += dx
	m.WheelOffset.Y += dy
	m.WheelScale = math.Max(minWheelScale, math.Min(maxWheelScale, m.WheelScale+dscale))
}

// WheelPositions returns the screen position of every wheel frame.
func (m *Machine) WheelPositions() []Vec2 {
	return WheelPlacements(m.Pos, m.Kind.Anchors, m.WheelOffset, m.WheelScale)
}

// HookPosition returns the screen position of the hook frame.
func (m *Machine) HookPosition() Vec2 {
	return m.Pos.Add(m.Kind.HookOffset)
}

// WheelPlacements computes wheel positions: each anchor's delta from the
// first anchor plus offset, multiplied by scale and truncated to whole
// pixels, added to the body position.
func WheelPlacements(body Vec2, anchors []Vec2, offset Vec2, scale float64) []Vec2 {
	if len(anchors) == 0 {
		return nil
	}
	first := anchors[0]
	out := make([]Vec2, len(anchors))
	for i, a := range anchors {
		rel := a.Sub(first).Add(offset)
		out[i] = Vec2{
			X: body.X + math.Trunc(rel.X*scale),
			Y: body.Y + math.Trunc(rel.Y*scale),
		}
	}
	return out
}

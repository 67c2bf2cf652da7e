package parade

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to Ebitengine.
type Color struct {
	R, G, B, A float64
}

// toRGBA converts the color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: clamp(c.A),
	}
}

var (
	// ColorBackground is the canvas clear color.
	ColorBackground = Color{R: 32.0 / 255, G: 33.0 / 255, B: 36.0 / 255, A: 1}
	// ColorTitle is used for the centered title of a paused machine.
	ColorTitle = Color{R: 1, G: 1, B: 0, A: 1}
	// ColorLabel is used for per-machine name labels.
	ColorLabel = Color{R: 1, G: 1, B: 1, A: 1}
)

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 {
	return r.X + r.Width/2
}

// State is a machine's lifecycle state. States are ordered; a machine only
// ever moves to a later state.
type State uint8

const (
	StateEntering State = iota // travelling toward the screen center
	StatePaused                // parked at the center, counting ticks
	StateExiting               // travelling off the left edge
	StateRacing                // continuous travel under race control
)

func (s State) String() string {
	switch s {
	case StateEntering:
		return "entering"
	case StatePaused:
		return "paused"
	case StateExiting:
		return "exiting"
	case StateRacing:
		return "racing"
	default:
		return "unknown"
	}
}

// Mode selects how non-racing machines travel.
type Mode uint8

const (
	ModeScripted Mode = iota // enter, pause at center, exit
	ModeScroll               // continuous leftward scroll, randomized spawn height
)

func (m Mode) String() string {
	if m == ModeScroll {
		return "scroll"
	}
	return "scripted"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeScroll {
		return ModeScripted
	}
	return ModeScroll
}

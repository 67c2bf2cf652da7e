package parade

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input reports keyboard state for the current tick.
type Input interface {
	// Pressed reports whether k is held this tick.
	Pressed(k ebiten.Key) bool
	// JustPressed reports whether k went down this tick.
	JustPressed(k ebiten.Key) bool
}

// KeyboardInput reads the real keyboard through Ebitengine.
type KeyboardInput struct{}

// Pressed implements Input.
func (KeyboardInput) Pressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

// JustPressed implements Input.
func (KeyboardInput) JustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

// KeyState is a synthetic Input. Keys are held until released; a key that
// was pressed since the previous Advance reports JustPressed.
type KeyState struct {
	held map[ebiten.Key]bool
	just map[ebiten.Key]bool
}

// NewKeyState returns an empty KeyState.
func NewKeyState() *KeyState {
	return &KeyState{
		held: make(map[ebiten.Key]bool),
		just: make(map[ebiten.Key]bool),
	}
}

// Press holds k down. It reports JustPressed until the next Advance.
func (s *KeyState) Press(keys ...ebiten.Key) {
	for _, k := range keys {
		if !s.held[k] {
			s.just[k] = true
		}
		s.held[k] = true
	}
}

// Release lets go of k.
func (s *KeyState) Release(keys ...ebiten.Key) {
	for _, k := range keys {
		delete(s.held, k)
		delete(s.just, k)
	}
}

// Tap presses k for exactly one tick: JustPressed now, released on the next
// Advance.
func (s *KeyState) Tap(k ebiten.Key) {
	s.just[k] = true
}

// Advance ends the tick: just-pressed flags clear and tapped keys release.
func (s *KeyState) Advance() {
	clear(s.just)
}

// Pressed implements Input.
func (s *KeyState) Pressed(k ebiten.Key) bool {
	return s.held[k] || s.just[k]
}

// JustPressed implements Input.
func (s *KeyState) JustPressed(k ebiten.Key) bool {
	return s.just[k]
}

// MergeInput combines inputs: a key is pressed if any input reports it.
func MergeInput(inputs ...Input) Input {
	return mergedInput(inputs)
}

type mergedInput []Input

func (m mergedInput) Pressed(k ebiten.Key) bool {
	for _, in := range m {
		if in.Pressed(k) {
			return true
		}
	}
	return false
}

func (m mergedInput) JustPressed(k ebiten.Key) bool {
	for _, in := range m {
		if in.JustPressed(k) {
			return true
		}
	}
	return false
}

// Bindings maps session actions to keys.
type Bindings struct {
	Left, Right, Up, Down ebiten.Key
	Hold                  []ebiten.Key
	Slots                 [SlotCount]ebiten.Key
	ToggleMode            ebiten.Key
	Race                  ebiten.Key
	Focus                 ebiten.Key
	Dismiss               ebiten.Key
	Quit                  ebiten.Key
	Screenshot            ebiten.Key
	HUD                   ebiten.Key

	// Wheel tuning for the focused machine.
	WheelLeft, WheelRight, WheelUp, WheelDown ebiten.Key
	ScaleDown, ScaleUp                        ebiten.Key
	Report                                    ebiten.Key
}

// DefaultBindings returns the standard layout: arrows move, 1-9 toggle
// slots, R toggles mode, Space races, Tab cycles focus, IJKL and -/= tune
// wheels, P logs the knobs, Enter closes the podium, F1 toggles the HUD,
// F12 captures the screen, Escape quits.
func DefaultBindings() Bindings {
	return Bindings{
		Left:  ebiten.KeyArrowLeft,
		Right: ebiten.KeyArrowRight,
		Up:    ebiten.KeyArrowUp,
		Down:  ebiten.KeyArrowDown,
		Hold:  []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
		Slots: [SlotCount]ebiten.Key{
			ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
			ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
			ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
		},
		ToggleMode: ebiten.KeyR,
		Race:       ebiten.KeySpace,
		Focus:      ebiten.KeyTab,
		Dismiss:    ebiten.KeyEnter,
		Quit:       ebiten.KeyEscape,
		Screenshot: ebiten.KeyF12,
		HUD:        ebiten.KeyF1,
		WheelLeft:  ebiten.KeyJ,
		WheelRight: ebiten.KeyL,
		WheelUp:    ebiten.KeyI,
		WheelDown:  ebiten.KeyK,
		ScaleDown:  ebiten.KeyMinus,
		ScaleUp:    ebiten.KeyEqual,
		Report:     ebiten.KeyP,
	}
}

// anyPressed reports whether any of keys is held.
func anyPressed(in Input, keys []ebiten.Key) bool {
	for _, k := range keys {
		if in.Pressed(k) {
			return true
		}
	}
	return false
}

// nudge returns the arrow-key displacement for this tick.
func (b Bindings) nudge(in Input, step Vec2) Vec2 {
	var v Vec2
	if in.Pressed(b.Left) {
		v.X -= step.X
	}
	if in.Pressed(b.Right) {
		v.X += step.X
	}
	if in.Pressed(b.Up) {
		v.Y -= step.Y
	}
	if in.Pressed(b.Down) {
		v.Y += step.Y
	}
	return v
}

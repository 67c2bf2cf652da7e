package parade

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestKeyStatePress(t *testing.T) {
	k := NewKeyState()
	k.Press(ebiten.KeyA)
	if !k.Pressed(ebiten.KeyA) || !k.JustPressed(ebiten.KeyA) {
		t.Fatal("pressed key should be held and just pressed")
	}
	k.Advance()
	if !k.Pressed(ebiten.KeyA) || k.JustPressed(ebiten.KeyA) {
		t.Error("after Advance the key is held but not just pressed")
	}
	k.Press(ebiten.KeyA)
	if k.JustPressed(ebiten.KeyA) {
		t.Error("pressing a held key is not a new press")
	}
	k.Release(ebiten.KeyA)
	if k.Pressed(ebiten.KeyA) {
		t.Error("released key still pressed")
	}
}

func TestKeyStateTap(t *testing.T) {
	k := NewKeyState()
	k.Tap(ebiten.KeySpace)
	if !k.JustPressed(ebiten.KeySpace) || !k.Pressed(ebiten.KeySpace) {
		t.Fatal("tapped key should be down this tick")
	}
	k.Advance()
	if k.Pressed(ebiten.KeySpace) || k.JustPressed(ebiten.KeySpace) {
		t.Error("tapped key should release on Advance")
	}
}

func TestMergeInput(t *testing.T) {
	a, b := NewKeyState(), NewKeyState()
	a.Press(ebiten.KeyA)
	b.Tap(ebiten.KeyB)
	in := MergeInput(a, b)
	if !in.Pressed(ebiten.KeyA) || !in.JustPressed(ebiten.KeyB) {
		t.Error("merged input should report either source")
	}
	if in.Pressed(ebiten.KeyC) {
		t.Error("KeyC not pressed anywhere")
	}
}

func TestBindingsNudge(t *testing.T) {
	b := DefaultBindings()
	k := NewKeyState()
	step := Vec2{X: 45, Y: 5}
	if got := b.nudge(k, step); !got.IsZero() {
		t.Errorf("idle nudge = %v", got)
	}
	k.Press(ebiten.KeyArrowLeft, ebiten.KeyArrowUp)
	if got := b.nudge(k, step); got != (Vec2{-45, -5}) {
		t.Errorf("nudge = %v", got)
	}
	k.Press(ebiten.KeyArrowRight)
	if got := b.nudge(k, step); got.X != 0 {
		t.Errorf("opposite arrows should cancel, x = %v", got.X)
	}
}

func TestAnyPressed(t *testing.T) {
	b := DefaultBindings()
	k := NewKeyState()
	if anyPressed(k, b.Hold) {
		t.Error("nothing held")
	}
	k.Press(ebiten.KeyShiftRight)
	if !anyPressed(k, b.Hold) {
		t.Error("right shift should hold")
	}
}

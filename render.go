package parade

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TitleConfig controls on-screen text.
type TitleConfig struct {
	Band       float64 `mapstructure:"band"`       // half-width of the centered zone showing the title
	Size       float64 `mapstructure:"size"`       // title face size
	LabelSize  float64 `mapstructure:"labelSize"`  // per-machine label face size
	ShowLabels bool    `mapstructure:"showLabels"` // draw a name label above every machine
}

const (
	labelInsetX  = 100 // label x relative to the body's left edge
	labelGap     = 10  // gap between label bottom and body top
	titleDivisor = 6   // title center sits at Screen.Y / titleDivisor
)

// Compositor draws machines onto the canvas.
type Compositor struct {
	Screen     Vec2
	TitleBand  float64
	TitleFace  *text.GoTextFace
	LabelFace  *text.GoTextFace
	ShowLabels bool
}

// TitleVisible reports whether m's title is shown: scripted mode only, and
// only while the body center is within TitleBand of the screen center.
func (c *Compositor) TitleVisible(m *Machine, mode Mode) bool {
	if mode != ModeScripted || m.State == StateRacing {
		return false
	}
	return math.Abs(m.CenterX()-c.Screen.X/2) <= c.TitleBand
}

// DrawMachine draws the body, the title, the label, the hook and the wheels
// of m, in that order.
func (c *Compositor) DrawMachine(dst *ebiten.Image, m *Machine, mode Mode) {
	if m.Body != nil {
		drawAt(dst, m.Body, m.Pos)
	}

	if c.TitleFace != nil && c.TitleVisible(m, mode) {
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(c.Screen.X/2, c.Screen.Y/titleDivisor)
		op.ColorScale.ScaleWithColor(ColorTitle.toRGBA())
		text.Draw(dst, m.Kind.Title(), c.TitleFace, op)
	}

	if c.ShowLabels && c.LabelFace != nil {
		op := &text.DrawOptions{}
		op.SecondaryAlign = text.AlignEnd
		op.GeoM.Translate(m.Pos.X+labelInsetX, m.Pos.Y-labelGap)
		op.ColorScale.ScaleWithColor(ColorLabel.toRGBA())
		text.Draw(dst, m.Kind.DisplayName, c.LabelFace, op)
	}

	for _, d := range frameDraws(m) {
		frames := m.Wheels
		if d.hook {
			frames = m.Hook
		}
		if d.frame < len(frames) {
			drawAt(dst, frames[d.frame], d.pos)
		}
	}
}

// frameDraw is one hook or wheel frame placed on the canvas.
type frameDraw struct {
	hook  bool
	frame int
	pos   Vec2
}

// frameDraws returns the hook frame, then one wheel frame per anchor, in
// draw order. Both sequences follow the wheel animator.
func frameDraws(m *Machine) []frameDraw {
	idx := m.FrameIndex()
	var out []frameDraw
	if len(m.Hook) > 0 {
		out = append(out, frameDraw{hook: true, frame: idx % len(m.Hook), pos: m.HookPosition()})
	}
	if n := m.anim.Len(); n > 0 {
		for _, p := range m.WheelPositions() {
			out = append(out, frameDraw{frame: idx % n, pos: p})
		}
	}
	return out
}

func drawAt(dst, img *ebiten.Image, p Vec2) {
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(p.X, p.Y)
	dst.DrawImage(img, op)
}

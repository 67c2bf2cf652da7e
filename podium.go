package parade

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
)

// PodiumConfig controls the finale shown after a race.
type PodiumConfig struct {
	Places   int     `mapstructure:"places"`   // how many finishers get a block
	Drop     float32 `mapstructure:"drop"`     // seconds for a body to fall onto its block
	Stagger  float32 `mapstructure:"stagger"`  // seconds between drops
	Hold     float32 `mapstructure:"hold"`     // seconds shown after the last drop
	BaseLine float64 `mapstructure:"baseLine"` // fraction of screen height for the block bottoms
}

// podiumHeights are block heights as a fraction of screen height, by place.
var podiumHeights = []float64{0.28, 0.2, 0.13}

// podiumColumns are block column indices (of three) by place.
var podiumColumns = []int{1, 0, 2}

var podiumColors = []Color{
	{R: 0.85, G: 0.68, B: 0.13, A: 1},
	{R: 0.66, G: 0.66, B: 0.7, A: 1},
	{R: 0.62, G: 0.4, B: 0.2, A: 1},
}

// PodiumEntry is one finisher on the podium.
type PodiumEntry struct {
	Place   int // 1-based
	Machine *Machine
	Block   Rect
	Pos     Vec2
	Scale   float64
	tween   *TweenGroup
}

// Podium is the race finale: the top finishers drop onto ranked blocks.
type Podium struct {
	Entries []*PodiumEntry
	cfg     PodiumConfig
	held    float32
}

// NewPodium lays out the first cfg.Places standings (at most three) on a
// screen of the given size.
func NewPodium(standings []*Machine, screen Vec2, cfg PodiumConfig) *Podium {
	places := min(cfg.Places, len(standings), len(podiumHeights))
	p := &Podium{cfg: cfg}
	blockW := screen.X / 5
	left := screen.X/2 - blockW*1.5
	base := screen.Y * cfg.BaseLine

	for i := 0; i < places; i++ {
		m := standings[i]
		h := screen.Y * podiumHeights[i]
		block := Rect{
			X:      left + blockW*float64(podiumColumns[i]),
			Y:      base - h,
			Width:  blockW,
			Height: h,
		}
		body := m.Bounds()
		scale := 1.0
		if body.Width > 0 {
			scale = math.Min(1, blockW*0.9/body.Width)
		}
		w, bh := body.Width*scale, body.Height*scale
		e := &PodiumEntry{
			Place:   i + 1,
			Machine: m,
			Block:   block,
			Scale:   scale,
			Pos:     Vec2{X: block.CenterX() - w/2, Y: -bh},
		}
		e.tween = TweenPosition(&e.Pos, Vec2{X: e.Pos.X, Y: block.Y - bh}, cfg.Drop, ease.OutBounce)
		e.tween.Delay = cfg.Stagger * float32(places-1-i)
		p.Entries = append(p.Entries, e)
	}
	return p
}

// Settled reports whether every body has landed.
func (p *Podium) Settled() bool {
	for _, e := range p.Entries {
		if !e.tween.Done {
			return false
		}
	}
	return true
}

// Update advances the drop tweens by dt seconds and reports whether the
// podium has been held long enough to close.
func (p *Podium) Update(dt float32) bool {
	for _, e := range p.Entries {
		e.tween.Update(dt)
	}
	if !p.Settled() {
		return false
	}
	p.held += dt
	return p.held >= p.cfg.Hold
}

// Draw renders blocks, bodies and place labels.
func (p *Podium) Draw(dst *ebiten.Image, c *Compositor) {
	for _, e := range p.Entries {
		col := podiumColors[e.Place-1].toRGBA()
		vector.DrawFilledRect(dst, float32(e.Block.X), float32(e.Block.Y),
			float32(e.Block.Width), float32(e.Block.Height), col, false)

		if e.Machine.Body != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(e.Scale, e.Scale)
			op.GeoM.Translate(e.Pos.X, e.Pos.Y)
			dst.DrawImage(e.Machine.Body, op)
		}

		if c.TitleFace != nil {
			label := fmt.Sprintf("%s\n%s", ordinal(e.Place), e.Machine.Kind.Title())
			op := &text.DrawOptions{}
			op.PrimaryAlign = text.AlignCenter
			op.LineSpacing = c.TitleFace.Size * 1.2
			op.GeoM.Translate(e.Block.CenterX(), e.Block.Y+e.Block.Height*0.15)
			op.ColorScale.ScaleWithColor(ColorBackground.toRGBA())
			text.Draw(dst, label, c.TitleFace, op)
		}
	}
}

func ordinal(place int) string {
	switch place {
	case 1:
		return "1ST"
	case 2:
		return "2ND"
	case 3:
		return "3RD"
	default:
		return fmt.Sprintf("%dTH", place)
	}
}

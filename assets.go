package parade

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/png"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"
)

// AssetSource lists the available machines and decodes their images.
type AssetSource interface {
	// Catalog returns the base names of every body image, sorted. Slot i
	// spawns Catalog()[i].
	Catalog() ([]string, error)
	// Load decodes the body and frame sequences for kind.
	Load(kind KindSpec) (*MachineAssets, error)
}

// DirAssets loads bodies ("<name>.png") and frame sequences (GIF) from a
// file system, typically os.DirFS of the asset directory.
type DirAssets struct {
	FS     fs.FS
	Logger zerolog.Logger

	cache map[string]*MachineAssets
}

// NewDirAssets returns a DirAssets over fsys.
func NewDirAssets(fsys fs.FS, logger zerolog.Logger) *DirAssets {
	return &DirAssets{FS: fsys, Logger: logger, cache: make(map[string]*MachineAssets)}
}

// Catalog implements AssetSource.
func (a *DirAssets) Catalog() ([]string, error) {
	matches, err := fs.Glob(a.FS, "*.png")
	if err != nil {
		return nil, fmt.Errorf("parade: list bodies: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), path.Ext(m)))
	}
	sort.Strings(names)
	return names, nil
}

// Load implements AssetSource. A body that cannot be decoded is an error;
// frame sequences that are missing or malformed are logged and left empty.
// Results are cached per kind name.
func (a *DirAssets) Load(kind KindSpec) (*MachineAssets, error) {
	if ma, ok := a.cache[kind.Name]; ok {
		return ma, nil
	}
	body, err := a.decodeImage(kind.Name + ".png")
	if err != nil {
		return nil, fmt.Errorf("parade: load body %q: %w", kind.Name, err)
	}
	b := body.Bounds()
	ma := &MachineAssets{
		Body: ebiten.NewImageFromImage(body),
		Size: Vec2{X: float64(b.Dx()), Y: float64(b.Dy())},
	}
	ma.Wheels = a.loadFrames(kind, kind.WheelFile())
	if kind.HookFrames != "" {
		ma.Hook = a.loadFrames(kind, kind.HookFrames)
	}
	if a.cache == nil {
		a.cache = make(map[string]*MachineAssets)
	}
	a.cache[kind.Name] = ma
	return ma, nil
}

func (a *DirAssets) decodeImage(name string) (image.Image, error) {
	f, err := a.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// loadFrames decodes a GIF sequence into ebiten images, degrading to nil.
func (a *DirAssets) loadFrames(kind KindSpec, name string) []*ebiten.Image {
	frames, err := a.decodeFrames(name, kind.FrameScale)
	if err != nil {
		a.Logger.Warn().Err(err).Str("kind", kind.Name).Str("file", name).
			Msg("frame sequence unavailable, animation disabled")
		return nil
	}
	out := make([]*ebiten.Image, len(frames))
	for i, f := range frames {
		out[i] = ebiten.NewImageFromImage(f)
	}
	a.Logger.Debug().Str("kind", kind.Name).Str("file", name).Int("frames", len(out)).Msg("frames loaded")
	return out
}

func (a *DirAssets) decodeFrames(name string, scale float64) ([]*image.RGBA, error) {
	f, err := a.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	frames, err := composeGIF(g)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if scale > 0 && scale != 1 {
		for i, fr := range frames {
			frames[i] = resample(fr, scale)
		}
	}
	return frames, nil
}

// composeGIF renders every frame of g onto the full logical canvas,
// honouring each frame's disposal method, so frame i is what a viewer shows
// at step i.
func composeGIF(g *gif.GIF) ([]*image.RGBA, error) {
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("no frames")
	}
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
		for _, p := range g.Image[1:] {
			bounds = bounds.Union(p.Bounds())
		}
	}
	canvas := image.NewRGBA(bounds)
	frames := make([]*image.RGBA, 0, len(g.Image))
	for i, p := range g.Image {
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = cloneRGBA(canvas)
		}
		draw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)
		frames = append(frames, cloneRGBA(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return frames, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// resample scales src uniformly by factor.
func resample(src *image.RGBA, factor float64) *image.RGBA {
	b := src.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

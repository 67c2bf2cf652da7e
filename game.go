package parade

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// WindowConfig describes the canvas and the window hosting it.
type WindowConfig struct {
	Title      string `mapstructure:"title"`
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Fullscreen bool   `mapstructure:"fullscreen"`
	TPS        int    `mapstructure:"tps"`
}

// Game implements ebiten.Game: one session update per tick, then one
// composite render.
type Game struct {
	Session    *Session
	Compositor *Compositor
	HUD        *HUD
	Input      Input
	Bindings   Bindings

	ClearColor    Color
	ScreenshotDir string
	Debug         bool
	Logger        zerolog.Logger

	// OnUpdate, when set, runs after the session update of every tick.
	OnUpdate func() error

	width, height   int
	runner          *TestRunner
	screenshotQueue []string
	stats           debugStats
}

// NewGame wires a session to the real keyboard. The canvas size is fixed to
// the window configuration.
func NewGame(session *Session, compositor *Compositor, win WindowConfig, logger zerolog.Logger) *Game {
	return &Game{
		Session:       session,
		Compositor:    compositor,
		HUD:           NewHUD(),
		Input:         KeyboardInput{},
		Bindings:      DefaultBindings(),
		ClearColor:    ColorBackground,
		ScreenshotDir: "screenshots",
		Logger:        logger,
		width:         win.Width,
		height:        win.Height,
	}
}

// SetTestRunner attaches a scripted runner. Its keys are merged with the
// real keyboard.
func (g *Game) SetTestRunner(runner *TestRunner) {
	runner.quit = g.Bindings.Quit
	g.runner = runner
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	var t0 time.Time
	if g.Debug {
		t0 = time.Now()
	}

	in := g.Input
	if g.runner != nil {
		g.runner.step(g)
		in = MergeInput(g.Input, g.runner.Input())
	}

	if in.JustPressed(g.Bindings.Screenshot) {
		g.Screenshot(fmt.Sprintf("tick-%d", g.Session.Tick()))
	}
	if in.JustPressed(g.Bindings.HUD) {
		g.HUD.Visible = !g.HUD.Visible
	}

	if err := g.Session.Update(in); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	g.HUD.Update(1.0 / float64(ebiten.TPS()))
	if g.OnUpdate != nil {
		if err := g.OnUpdate(); err != nil {
			return err
		}
	}

	if g.Debug {
		g.stats.frames++
		g.stats.updateTime += time.Since(t0)
		g.stats.machines = len(g.Session.Active())
		if g.stats.frames >= debugEvery {
			g.debugLog()
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if g.Debug {
		t0 = time.Now()
	}

	screen.Fill(g.ClearColor.toRGBA())
	for _, m := range g.Session.Active() {
		g.Compositor.DrawMachine(screen, m, g.Session.Mode)
	}
	if p := g.Session.Podium(); p != nil {
		p.Draw(screen, g.Compositor)
	}
	g.HUD.Draw(screen, g.Session)
	g.flushScreenshots(screen)

	if g.Debug {
		g.stats.drawTime += time.Since(t0)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until the game quits or fails.
func Run(g *Game, win WindowConfig) error {
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetFullscreen(win.Fullscreen)
	if win.TPS > 0 {
		ebiten.SetTPS(win.TPS)
	}
	g.Logger.Info().Int("width", win.Width).Int("height", win.Height).
		Bool("fullscreen", win.Fullscreen).Msg("window opened")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("parade: run: %w", err)
	}
	return nil
}

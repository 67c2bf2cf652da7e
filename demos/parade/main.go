// Construction parade: press 1-9 to send machines across the screen, R to
// switch between scripted and scroll mode, Space to race.
//
// Profiling:
// go build ./demos/parade
// ./parade --profile cpu
// go tool pprof -http=":8000" ./parade cpu.pprof
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/phanxgames/parade"
	"github.com/phanxgames/parade/ecs"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("parade", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "config file (json, yaml or toml)")
	flags.StringP("assets", "a", ".", "directory with <name>.png bodies and GIF frame sequences")
	flags.Bool("fullscreen", false, "open fullscreen")
	flags.Uint64("seed", 0, "random seed for spawn heights and races (0: time based)")
	flags.Bool("debug", false, "log per-frame timing")
	flags.String("log-level", "info", "debug, info, warn or error")
	scriptPath := flags.String("script", "", "JSON key script to replay")
	profileMode := flags.String("profile", "", "write a cpu or mem profile")
	if err := flags.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	for key, flag := range map[string]string{
		"assets":            "assets",
		"window.fullscreen": "fullscreen",
		"seed":              "seed",
		"debug":             "debug",
		"logLevel":          "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	cfg, err := parade.LoadConfig(v, *configPath)
	if err != nil {
		return err
	}
	logger, err := parade.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info().Uint64("seed", seed).Str("assets", cfg.Assets).Msg("starting")

	screen := cfg.Screen()
	session, err := parade.NewSession(parade.SessionOptions{
		Screen: screen,
		TPS:    cfg.Window.TPS,
		Motion: cfg.Motion,
		Race:   cfg.Race,
		Podium: cfg.Podium,
		Kinds:  cfg.KindTable(),
		Assets: parade.NewDirAssets(os.DirFS(cfg.Assets), logger),
		Rand:   rand.New(rand.NewPCG(seed, seed>>1|1)),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	titleFace, labelFace, err := parade.DefaultFaces(cfg.Title.Size, cfg.Title.LabelSize)
	if err != nil {
		return err
	}
	compositor := &parade.Compositor{
		Screen:     screen,
		TitleBand:  cfg.Title.Band,
		TitleFace:  titleFace,
		LabelFace:  labelFace,
		ShowLabels: cfg.Title.ShowLabels,
	}

	game := parade.NewGame(session, compositor, cfg.Window, logger)
	game.Debug = cfg.Debug
	game.ScreenshotDir = cfg.ScreenshotDir

	world := donburi.NewWorld()
	session.SetEventSink(ecs.NewDonburiSink(world))
	ecs.MachineEventType.Subscribe(world, func(_ donburi.World, e parade.Event) {
		logEvent(logger, e)
		game.HUD.Push(describe(e))
	})
	game.OnUpdate = func() error {
		events.ProcessAllEvents(world)
		return nil
	}

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := parade.LoadTestScript(data)
		if err != nil {
			return err
		}
		game.SetTestRunner(runner)
	}

	return parade.Run(game, cfg.Window)
}

func logEvent(logger zerolog.Logger, e parade.Event) {
	logger.Debug().
		Stringer("event", e.Type).
		Uint64("tick", e.Tick).
		Int("slot", e.Slot).
		Str("kind", e.Kind).
		Msg("session event")
}

// describe renders an event as one HUD feed line.
func describe(e parade.Event) string {
	switch e.Type {
	case parade.EventStateChanged:
		return fmt.Sprintf("%d %s: %s -> %s", e.Tick, e.Kind, e.From, e.To)
	case parade.EventModeChanged:
		return fmt.Sprintf("%d mode %s", e.Tick, e.Mode)
	case parade.EventSpeedChanged:
		return fmt.Sprintf("%d %s speed %.1f (%d)", e.Tick, e.Kind, e.Speed, e.Count)
	case parade.EventFinished:
		return fmt.Sprintf("%d %s finished #%d", e.Tick, e.Kind, e.Place)
	case parade.EventRaceStarted, parade.EventRaceFinished:
		return fmt.Sprintf("%d %s (%d)", e.Tick, e.Type, e.Count)
	case parade.EventFocusChanged:
		return fmt.Sprintf("%d focus %d", e.Tick, e.Slot+1)
	default:
		if e.Kind != "" {
			return fmt.Sprintf("%d %s %s", e.Tick, e.Kind, e.Type)
		}
		return fmt.Sprintf("%d %s", e.Tick, e.Type)
	}
}

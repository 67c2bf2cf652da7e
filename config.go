package parade

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	Window        WindowConfig `mapstructure:"window"`
	Assets        string       `mapstructure:"assets"`
	LogLevel      string       `mapstructure:"logLevel"`
	Debug         bool         `mapstructure:"debug"`
	Seed          uint64       `mapstructure:"seed"`
	ScreenshotDir string       `mapstructure:"screenshotDir"`
	Motion        MotionConfig `mapstructure:"motion"`
	Race          RaceConfig   `mapstructure:"race"`
	Podium        PodiumConfig `mapstructure:"podium"`
	Title         TitleConfig  `mapstructure:"title"`
	Kinds         KindTable    `mapstructure:"kinds"`
}

// EnvPrefix prefixes environment overrides, e.g. PARADE_WINDOW_FULLSCREEN.
const EnvPrefix = "PARADE"

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "Construction Parade")
	v.SetDefault("window.width", 1920)
	v.SetDefault("window.height", 1080)
	v.SetDefault("window.fullscreen", false)
	v.SetDefault("window.tps", 60)

	v.SetDefault("assets", ".")
	v.SetDefault("logLevel", "info")
	v.SetDefault("debug", false)
	v.SetDefault("seed", 0)
	v.SetDefault("screenshotDir", "screenshots")

	v.SetDefault("motion.speed", 75)
	v.SetDefault("motion.pauseTicks", 50)
	v.SetDefault("motion.frameCadence", 2)
	v.SetDefault("motion.nudgeX", 45)
	v.SetDefault("motion.nudgeY", 5)

	v.SetDefault("race.baseSpeed", 40)
	v.SetDefault("race.minSpeed", 15)
	v.SetDefault("race.maxSpeed", 90)
	v.SetDefault("race.maxDelta", 20)
	v.SetDefault("race.maxChanges", 6)
	v.SetDefault("race.changeChance", 0.03)
	v.SetDefault("race.laneTop", 80)
	v.SetDefault("race.laneBottom", 520)

	v.SetDefault("podium.places", 3)
	v.SetDefault("podium.drop", 1.2)
	v.SetDefault("podium.stagger", 0.4)
	v.SetDefault("podium.hold", 5)
	v.SetDefault("podium.baseLine", 0.92)

	v.SetDefault("title.band", 150)
	v.SetDefault("title.size", 72)
	v.SetDefault("title.labelSize", 28)
	v.SetDefault("title.showLabels", false)
}

// LoadConfig applies defaults, reads the optional config file at path
// (JSON, YAML or TOML by extension) and environment overrides, and decodes
// the result. An empty path skips the file.
func LoadConfig(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parade: error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parade: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail at runtime.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("parade: window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Motion.Speed < 0 {
		errs = append(errs, fmt.Errorf("parade: motion speed %v is negative", c.Motion.Speed))
	}
	if c.Podium.Drop <= 0 {
		errs = append(errs, fmt.Errorf("parade: podium drop %v must be positive", c.Podium.Drop))
	}
	if err := c.Race.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// KindTable returns the built-in kinds with configured overrides applied.
func (c Config) KindTable() KindTable {
	return DefaultKinds().Merge(c.Kinds)
}

// Screen returns the canvas size.
func (c Config) Screen() Vec2 {
	return Vec2{X: float64(c.Window.Width), Y: float64(c.Window.Height)}
}

package parade

import "strings"

// KindSpec is the per-type configuration of a machine, looked up once when a
// machine is constructed.
type KindSpec struct {
	Name        string `mapstructure:"name"`
	DisplayName string `mapstructure:"displayName"`

	// Anchors are wheel positions relative to the body's top-left corner.
	// Only their deltas from the first anchor are used for placement.
	Anchors     []Vec2  `mapstructure:"anchors"`
	WheelOffset Vec2    `mapstructure:"wheelOffset"`
	WheelScale  float64 `mapstructure:"wheelScale"`

	// FrameScale resamples wheel and hook frames at load time (1 = as is).
	FrameScale float64 `mapstructure:"frameScale"`

	// WheelFrames overrides the default "<name>_wheel_animation.gif".
	WheelFrames string `mapstructure:"wheelFrames"`
	// HookFrames names an optional second sequence drawn at HookOffset.
	HookFrames string `mapstructure:"hookFrames"`
	HookOffset Vec2   `mapstructure:"hookOffset"`

	SpawnY      float64 `mapstructure:"spawnY"`
	SpawnJitter float64 `mapstructure:"spawnJitter"`
}

// WheelFile returns the file name of the wheel frame sequence.
func (k KindSpec) WheelFile() string {
	if k.WheelFrames != "" {
		return k.WheelFrames
	}
	return k.Name + "_wheel_animation.gif"
}

// Title returns the upper-cased display name.
func (k KindSpec) Title() string {
	return strings.ToUpper(k.DisplayName)
}

// normalized fills zero-valued knobs with their defaults.
func (k KindSpec) normalized() KindSpec {
	if k.DisplayName == "" {
		k.DisplayName = k.Name
	}
	if k.WheelScale == 0 {
		k.WheelScale = 1
	}
	if k.FrameScale == 0 {
		k.FrameScale = 1
	}
	return k
}

// KindTable maps a body file's base name to its KindSpec.
type KindTable map[string]KindSpec

const (
	fallbackSpawnY      = 100
	fallbackSpawnJitter = 100
)

// DefaultKinds returns the built-in table for the five construction machines.
func DefaultKinds() KindTable {
	return KindTable{
		"dumptruck": {
			Name:        "dumptruck",
			DisplayName: "Dump Truck",
			Anchors:     []Vec2{{162, 555}, {330, 571}, {533, 573}, {660, 569}, {783, 566}},
			WheelScale:  1,
			FrameScale:  1,
			SpawnY:      360,
			SpawnJitter: 360,
		},
		"bulldozer": {
			Name:        "bulldozer",
			DisplayName: "Bulldozer",
			Anchors:     []Vec2{{120, 560}},
			WheelScale:  1,
			FrameScale:  1,
			SpawnY:      475,
			SpawnJitter: 475,
		},
		"excavator": {
			Name:        "excavator",
			DisplayName: "Excavator",
			Anchors:     []Vec2{{200, 570}, {450, 570}},
			WheelScale:  1,
			FrameScale:  1,
			SpawnY:      200,
			SpawnJitter: 375,
		},
		"cementmixer": {
			Name:        "cementmixer",
			DisplayName: "Cement Mixer",
			Anchors:     []Vec2{{321, 900}, {521, 900}, {684, 900}, {841, 900}},
			WheelOffset: Vec2{21, -25},
			WheelScale:  1,
			FrameScale:  1.2,
			SpawnY:      240,
			SpawnJitter: 565,
		},
		"cranetruck": {
			Name:        "cranetruck",
			DisplayName: "Crane Truck",
			Anchors:     []Vec2{{438, -110}, {656, -110}, {812, -110}, {976, -110}},
			WheelOffset: Vec2{30, -87},
			WheelScale:  1.02,
			FrameScale:  1,
			WheelFrames: "crane_wheel.gif",
			HookFrames:  "wheel.gif",
			HookOffset:  Vec2{-15, 15},
			SpawnY:      100,
			SpawnJitter: 100,
		},
	}
}

// Lookup returns the KindSpec for name. Unknown names get one with no
// anchors, the name as display name and the fallback spawn band.
func (t KindTable) Lookup(name string) KindSpec {
	if k, ok := t[name]; ok {
		k.Name = name
		return k.normalized()
	}
	return KindSpec{
		Name:        name,
		SpawnY:      fallbackSpawnY,
		SpawnJitter: fallbackSpawnJitter,
	}.normalized()
}

// Merge returns a copy of t with every entry of overrides replacing the
// entry of the same name.
func (t KindTable) Merge(overrides KindTable) KindTable {
	out := make(KindTable, len(t)+len(overrides))
	for name, k := range t {
		out[name] = k
	}
	for name, k := range overrides {
		k.Name = name
		out[name] = k
	}
	return out
}

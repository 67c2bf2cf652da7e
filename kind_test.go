package parade

import "testing"

func TestKindWheelFile(t *testing.T) {
	k := KindSpec{Name: "dumptruck"}
	if got := k.WheelFile(); got != "dumptruck_wheel_animation.gif" {
		t.Errorf("WheelFile = %q", got)
	}
	k.WheelFrames = "crane_wheel.gif"
	if got := k.WheelFile(); got != "crane_wheel.gif" {
		t.Errorf("WheelFile override = %q", got)
	}
}

func TestKindLookupKnown(t *testing.T) {
	k := DefaultKinds().Lookup("cranetruck")
	if k.Title() != "CRANE TRUCK" {
		t.Errorf("Title = %q", k.Title())
	}
	if k.HookFrames != "wheel.gif" || k.HookOffset != (Vec2{-15, 15}) {
		t.Errorf("hook = %q at %v", k.HookFrames, k.HookOffset)
	}
	if k.WheelScale != 1.02 || k.WheelOffset != (Vec2{30, -87}) {
		t.Errorf("wheel knobs = %v x%v", k.WheelOffset, k.WheelScale)
	}
}

func TestKindLookupUnknown(t *testing.T) {
	k := DefaultKinds().Lookup("forklift")
	if k.Name != "forklift" || k.DisplayName != "forklift" {
		t.Errorf("names = %q / %q", k.Name, k.DisplayName)
	}
	if len(k.Anchors) != 0 {
		t.Errorf("unknown kind has anchors: %v", k.Anchors)
	}
	if k.SpawnY != fallbackSpawnY || k.SpawnJitter != fallbackSpawnJitter {
		t.Errorf("spawn band = %v/%v", k.SpawnY, k.SpawnJitter)
	}
	if k.WheelScale != 1 || k.FrameScale != 1 {
		t.Errorf("scales = %v/%v, want 1/1", k.WheelScale, k.FrameScale)
	}
}

func TestKindTableMerge(t *testing.T) {
	base := DefaultKinds()
	merged := base.Merge(KindTable{
		"dumptruck": {SpawnY: 10},
		"forklift":  {DisplayName: "Fork Lift"},
	})

	if base["dumptruck"].SpawnY != 360 {
		t.Error("Merge mutated the receiver")
	}
	if got := merged.Lookup("dumptruck"); got.SpawnY != 10 || got.Name != "dumptruck" {
		t.Errorf("override = %+v", got)
	}
	if got := merged.Lookup("forklift"); got.Title() != "FORK LIFT" {
		t.Errorf("added kind title = %q", got.Title())
	}
	if _, ok := merged["excavator"]; !ok {
		t.Error("untouched entries should survive")
	}
	if len(base.Merge(nil)) != len(base) {
		t.Error("nil overrides should copy the table")
	}
}

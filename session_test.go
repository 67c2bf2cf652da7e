package parade

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

type fakeAssets struct {
	names []string
	err   error
	loads int
}

func (f *fakeAssets) Catalog() ([]string, error) {
	return f.names, nil
}

func (f *fakeAssets) Load(kind KindSpec) (*MachineAssets, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return &MachineAssets{Size: Vec2{200, 100}, Wheels: make([]*ebiten.Image, 4)}, nil
}

type recordSink struct {
	events []Event
}

func (r *recordSink) Emit(e Event) {
	r.events = append(r.events, e)
}

func (r *recordSink) count(typ EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func testSessionOptions(names ...string) SessionOptions {
	return SessionOptions{
		Screen: testScreen,
		TPS:    60,
		Motion: MotionConfig{Speed: 10, PauseTicks: 3, FrameCadence: 1, NudgeX: 45, NudgeY: 5},
		Race:   testRaceConfig(),
		Podium: PodiumConfig{Places: 3, Drop: 0.1, Stagger: 0.05, Hold: 0.1, BaseLine: 0.92},
		Assets: &fakeAssets{names: names},
		Rand:   rand.New(rand.NewPCG(1, 2)),
		Logger: zerolog.Nop(),
	}
}

func newTestSession(t *testing.T, names ...string) (*Session, *KeyState, *recordSink) {
	t.Helper()
	s, err := NewSession(testSessionOptions(names...))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	sink := &recordSink{}
	s.SetEventSink(sink)
	return s, NewKeyState(), sink
}

// tick runs one session update and ends the input tick.
func tick(t *testing.T, s *Session, keys *KeyState) {
	t.Helper()
	if err := s.Update(keys); err != nil {
		t.Fatalf("Update: %v", err)
	}
	keys.Advance()
}

func tap(t *testing.T, s *Session, keys *KeyState, k ebiten.Key) {
	t.Helper()
	keys.Tap(k)
	tick(t, s, keys)
}

func TestNewSessionRequiresSources(t *testing.T) {
	opts := testSessionOptions("a")
	opts.Assets = nil
	if _, err := NewSession(opts); err == nil {
		t.Error("expected error without assets")
	}
	opts = testSessionOptions("a")
	opts.Rand = nil
	if _, err := NewSession(opts); err == nil {
		t.Error("expected error without rand")
	}
}

func TestNewSessionPreloadsBodies(t *testing.T) {
	opts := testSessionOptions("a", "b", "c")
	fa := opts.Assets.(*fakeAssets)
	if _, err := NewSession(opts); err != nil {
		t.Fatal(err)
	}
	if fa.loads != 3 {
		t.Errorf("loads = %d, want 3", fa.loads)
	}

	bad := testSessionOptions("a")
	boom := errors.New("boom")
	bad.Assets.(*fakeAssets).err = boom
	if _, err := NewSession(bad); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestSessionToggleSlot(t *testing.T) {
	s, keys, sink := newTestSession(t, "bulldozer", "dumptruck")

	tap(t, s, keys, ebiten.KeyDigit2)
	m := s.Slot(1)
	if m == nil {
		t.Fatal("slot 2 empty after key press")
	}
	if m.Kind.Name != "dumptruck" || s.FocusIndex() != 1 {
		t.Errorf("kind %q focus %d", m.Kind.Name, s.FocusIndex())
	}
	if m.Pos.Y != DefaultKinds()["dumptruck"].SpawnY {
		t.Errorf("scripted spawn y = %v", m.Pos.Y)
	}
	if m.Pos.X != testScreen.X-10 {
		t.Errorf("x = %v, want one step in from the right edge", m.Pos.X)
	}

	tap(t, s, keys, ebiten.KeyDigit2)
	if s.Slot(1) != nil {
		t.Error("second press should despawn")
	}
	if s.FocusIndex() != -1 {
		t.Errorf("focus = %d after despawn", s.FocusIndex())
	}
	if sink.count(EventSpawned) != 1 || sink.count(EventDespawned) != 1 {
		t.Errorf("events = %+v", sink.events)
	}

	// Past the end of the catalog.
	tap(t, s, keys, ebiten.KeyDigit5)
	if len(s.Active()) != 0 {
		t.Error("slot without a catalog entry spawned")
	}
}

func TestSessionLifecycleEvents(t *testing.T) {
	s, keys, sink := newTestSession(t, "bulldozer")
	tap(t, s, keys, ebiten.KeyDigit1)
	for i := 0; s.Slot(0) != nil; i++ {
		if i > 1000 {
			t.Fatal("machine never left")
		}
		tick(t, s, keys)
	}

	var changes []Event
	for _, e := range sink.events {
		if e.Type == EventStateChanged {
			changes = append(changes, e)
		}
	}
	if len(changes) != 2 {
		t.Fatalf("state changes = %+v", changes)
	}
	if changes[0].From != StateEntering || changes[0].To != StatePaused {
		t.Errorf("first change %s -> %s", changes[0].From, changes[0].To)
	}
	if changes[1].From != StatePaused || changes[1].To != StateExiting {
		t.Errorf("second change %s -> %s", changes[1].From, changes[1].To)
	}
	if sink.count(EventRemoved) != 1 {
		t.Error("missing removal event")
	}
	if s.FocusIndex() != -1 {
		t.Error("focus should clear when the machine leaves")
	}
	last := sink.events[len(sink.events)-1]
	if last.Tick != s.Tick() {
		t.Errorf("event tick %d, session tick %d", last.Tick, s.Tick())
	}
}

func TestSessionRemovedMachineStaysGone(t *testing.T) {
	s, keys, sink := newTestSession(t, "bulldozer")
	tap(t, s, keys, ebiten.KeyDigit1)
	m := s.Slot(0)
	for i := 0; s.Slot(0) != nil; i++ {
		if i > 1000 {
			t.Fatal("machine never left")
		}
		tick(t, s, keys)
	}
	if !m.Gone() {
		t.Fatalf("slot cleared while right edge at %v", m.Right())
	}

	pos := m.Pos
	keys.Press(ebiten.KeyArrowRight, ebiten.KeyShiftLeft)
	for i := 0; i < 100; i++ {
		tick(t, s, keys)
	}
	if s.Slot(0) != nil || len(s.Active()) != 0 {
		t.Error("removed machine came back")
	}
	if m.Pos != pos {
		t.Errorf("removed machine moved from %v to %v", pos, m.Pos)
	}
	if sink.count(EventRemoved) != 1 {
		t.Errorf("removed events = %d, want 1", sink.count(EventRemoved))
	}
}

func TestSessionHoldAndNudgeFocusedOnly(t *testing.T) {
	s, keys, _ := newTestSession(t, "bulldozer", "dumptruck")
	tap(t, s, keys, ebiten.KeyDigit1)
	tap(t, s, keys, ebiten.KeyDigit2)
	focused, other := s.Slot(1), s.Slot(0)
	fx, ox := focused.Pos.X, other.Pos.X

	keys.Press(ebiten.KeyShiftLeft)
	tick(t, s, keys)
	tick(t, s, keys)
	if focused.Pos.X != fx {
		t.Errorf("held machine moved from %v to %v", fx, focused.Pos.X)
	}
	if other.Pos.X != ox-20 {
		t.Errorf("unfocused machine at %v, want %v", other.Pos.X, ox-20)
	}

	keys.Press(ebiten.KeyArrowRight, ebiten.KeyArrowDown)
	tick(t, s, keys)
	if focused.Pos.X != fx+45 || focused.Pos.Y != DefaultKinds()["dumptruck"].SpawnY+5 {
		t.Errorf("nudged to %v", focused.Pos)
	}
	keys.Release(ebiten.KeyShiftLeft)
	tick(t, s, keys)
	if focused.Pos.X != fx+45+45-10 {
		t.Errorf("travel plus nudge: x = %v", focused.Pos.X)
	}
}

func TestSessionFocusCycle(t *testing.T) {
	s, keys, _ := newTestSession(t, "a", "b", "c")
	tap(t, s, keys, ebiten.KeyDigit1)
	tap(t, s, keys, ebiten.KeyDigit3)
	if s.FocusIndex() != 2 {
		t.Fatalf("focus = %d, want 2", s.FocusIndex())
	}
	tap(t, s, keys, ebiten.KeyTab)
	if s.FocusIndex() != 0 {
		t.Errorf("focus = %d, want 0", s.FocusIndex())
	}
	tap(t, s, keys, ebiten.KeyTab)
	if s.FocusIndex() != 2 {
		t.Errorf("focus = %d, want 2", s.FocusIndex())
	}
}

func TestSessionModeToggle(t *testing.T) {
	s, keys, sink := newTestSession(t, "bulldozer")
	tap(t, s, keys, ebiten.KeyR)
	if s.Mode != ModeScroll {
		t.Fatalf("mode = %s", s.Mode)
	}
	if sink.count(EventModeChanged) != 1 {
		t.Error("missing mode event")
	}

	kind := DefaultKinds()["bulldozer"]
	for i := 0; i < 20; i++ {
		tap(t, s, keys, ebiten.KeyDigit1)
		m := s.Slot(0)
		if m == nil {
			t.Fatal("no machine spawned")
		}
		if m.Pos.Y < kind.SpawnY-kind.SpawnJitter || m.Pos.Y > kind.SpawnY {
			t.Errorf("scroll spawn y %v outside band", m.Pos.Y)
		}
		if m.State != StateExiting {
			t.Errorf("scroll machine state = %s", m.State)
		}
		tap(t, s, keys, ebiten.KeyDigit1)
	}

	s.SetMode(ModeScroll)
	if sink.count(EventModeChanged) != 1 {
		t.Error("setting the same mode should not emit")
	}
}

func TestSessionTuneWheels(t *testing.T) {
	s, keys, _ := newTestSession(t, "dumptruck")
	tap(t, s, keys, ebiten.KeyDigit1)
	m := s.Focused()
	tap(t, s, keys, ebiten.KeyJ)
	tap(t, s, keys, ebiten.KeyK)
	tap(t, s, keys, ebiten.KeyEqual)
	tap(t, s, keys, ebiten.KeyP)
	if m.WheelOffset != (Vec2{-1, 1}) {
		t.Errorf("offset = %v", m.WheelOffset)
	}
	if m.WheelScale != 1+scaleNudge {
		t.Errorf("scale = %v", m.WheelScale)
	}
}

func TestSessionRaceToPodium(t *testing.T) {
	s, keys, sink := newTestSession(t, "a", "b", "c")
	tap(t, s, keys, ebiten.KeySpace)
	r := s.Race()
	if r == nil {
		t.Fatal("race not started")
	}
	if len(r.Entrants()) != 3 || len(s.Active()) != 3 {
		t.Fatalf("entrants = %d", len(r.Entrants()))
	}
	for _, m := range r.Entrants() {
		if m.State != StateRacing {
			t.Errorf("entrant state = %s", m.State)
		}
	}

	// Slot keys are ignored while racing.
	tap(t, s, keys, ebiten.KeyDigit1)
	if s.Race() == nil || s.Slot(0) == nil {
		t.Fatal("slot key interfered with the race")
	}

	for i := 0; s.Podium() == nil; i++ {
		if i > 1000 {
			t.Fatal("race never finished")
		}
		tick(t, s, keys)
	}
	if s.Race() != nil || len(s.Active()) != 0 {
		t.Error("race should be over with every slot cleared")
	}
	if sink.count(EventFinished) != 3 || sink.count(EventRaceFinished) != 1 {
		t.Errorf("finished %d race finished %d", sink.count(EventFinished), sink.count(EventRaceFinished))
	}
	places := map[int]bool{}
	for _, e := range sink.events {
		if e.Type == EventFinished {
			places[e.Place] = true
		}
	}
	if !places[1] || !places[2] || !places[3] {
		t.Errorf("places = %v", places)
	}
	if len(s.Podium().Entries) != 3 {
		t.Errorf("podium entries = %d", len(s.Podium().Entries))
	}

	tap(t, s, keys, ebiten.KeyEnter)
	if s.Podium() != nil {
		t.Error("Enter should close the podium")
	}
	if sink.count(EventPodiumClosed) != 1 {
		t.Error("missing podium closed event")
	}

	tap(t, s, keys, ebiten.KeyDigit1)
	if s.Slot(0) == nil {
		t.Error("slots should work again after the podium")
	}
}

func TestSessionRaceActiveOnly(t *testing.T) {
	s, keys, _ := newTestSession(t, "a", "b", "c")
	tap(t, s, keys, ebiten.KeyDigit2)
	tap(t, s, keys, ebiten.KeySpace)
	if r := s.Race(); r == nil || len(r.Entrants()) != 1 || r.Entrants()[0].Kind.Name != "b" {
		t.Fatal("race should hold only the active machine")
	}
}

func TestSessionPodiumTimesOut(t *testing.T) {
	s, keys, sink := newTestSession(t, "a")
	if err := s.StartRace(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2000 && sink.count(EventPodiumClosed) == 0; i++ {
		tick(t, s, keys)
	}
	if sink.count(EventPodiumClosed) != 1 || s.Podium() != nil {
		t.Error("podium should close on its own")
	}
}

func TestSessionRaceEmptyCatalog(t *testing.T) {
	s, keys, _ := newTestSession(t)
	tap(t, s, keys, ebiten.KeySpace)
	if s.Race() != nil {
		t.Error("race started with no machines")
	}
	if !errors.Is(s.StartRace(), ErrNoEntrants) {
		t.Error("StartRace should report ErrNoEntrants")
	}
}

func TestSessionQuit(t *testing.T) {
	s, keys, _ := newTestSession(t, "a")
	keys.Tap(ebiten.KeyEscape)
	if err := s.Update(keys); !errors.Is(err, ErrQuit) {
		t.Errorf("err = %v, want ErrQuit", err)
	}
}

func TestSessionCustomBindings(t *testing.T) {
	opts := testSessionOptions("a")
	b := DefaultBindings()
	b.Slots[0] = ebiten.KeyQ
	opts.Bindings = &b
	s, err := NewSession(opts)
	if err != nil {
		t.Fatal(err)
	}
	keys := NewKeyState()
	tap(t, s, keys, ebiten.KeyDigit1)
	if s.Slot(0) != nil {
		t.Error("default key should be unbound")
	}
	tap(t, s, keys, ebiten.KeyQ)
	if s.Slot(0) == nil {
		t.Error("custom key should spawn")
	}
}

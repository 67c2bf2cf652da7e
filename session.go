package parade

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// SlotCount is the number of spawn slots, one per digit key.
const SlotCount = 9

// ErrQuit is returned by Session.Update when the quit key is pressed.
var ErrQuit = errors.New("parade: quit requested")

const (
	wheelNudge = 1.0
	scaleNudge = 0.01
)

// SessionOptions configures a Session. Assets and Rand are required.
type SessionOptions struct {
	Screen   Vec2
	TPS      int
	Motion   MotionConfig
	Race     RaceConfig
	Podium   PodiumConfig
	Kinds    KindTable
	Assets   AssetSource
	Bindings *Bindings // nil means DefaultBindings
	Rand     *rand.Rand
	Logger   zerolog.Logger
}

// Session owns everything that changes while the demo runs: the slots, the
// focused machine, the travel mode and an active race or podium. All of it
// is advanced by Update.
type Session struct {
	Mode   Mode
	Logger zerolog.Logger

	opts     SessionOptions
	bindings Bindings
	catalog  []string
	assets   map[string]*MachineAssets
	slots    [SlotCount]*Machine
	focus    int
	race     *Race
	podium   *Podium
	sink     EventSink
	tick     uint64
}

// NewSession lists the catalog and decodes every body up front, so a bad
// body image fails here rather than on a keypress.
func NewSession(opts SessionOptions) (*Session, error) {
	if opts.Assets == nil {
		return nil, fmt.Errorf("parade: session needs an asset source")
	}
	if opts.Rand == nil {
		return nil, fmt.Errorf("parade: session needs a random source")
	}
	if err := opts.Race.Validate(); err != nil {
		return nil, err
	}
	if opts.Kinds == nil {
		opts.Kinds = DefaultKinds()
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	opts.Motion.Threshold = opts.Screen.X / 2

	bindings := DefaultBindings()
	if opts.Bindings != nil {
		bindings = *opts.Bindings
	}

	catalog, err := opts.Assets.Catalog()
	if err != nil {
		return nil, err
	}
	s := &Session{
		Logger:   opts.Logger,
		opts:     opts,
		bindings: bindings,
		catalog:  catalog,
		assets:   make(map[string]*MachineAssets, len(catalog)),
		focus:    -1,
	}
	for _, name := range catalog {
		ma, err := opts.Assets.Load(opts.Kinds.Lookup(name))
		if err != nil {
			return nil, err
		}
		s.assets[name] = ma
	}
	s.Logger.Info().Strs("catalog", catalog).Msg("session ready")
	return s, nil
}

// SetEventSink sets the optional event receiver.
func (s *Session) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Catalog returns the slot-ordered machine names. The returned slice MUST
// NOT be mutated.
func (s *Session) Catalog() []string {
	return s.catalog
}

// Slot returns the machine in slot i, or nil.
func (s *Session) Slot(i int) *Machine {
	if i < 0 || i >= SlotCount {
		return nil
	}
	return s.slots[i]
}

// Active returns the occupied slots' machines in slot order.
func (s *Session) Active() []*Machine {
	var out []*Machine
	for _, m := range s.slots {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// FocusIndex returns the focused slot, or -1.
func (s *Session) FocusIndex() int {
	return s.focus
}

// Focused returns the focused machine, or nil.
func (s *Session) Focused() *Machine {
	return s.Slot(s.focus)
}

// Race returns the active race, or nil.
func (s *Session) Race() *Race {
	return s.race
}

// Podium returns the active podium, or nil.
func (s *Session) Podium() *Podium {
	return s.podium
}

// Tick returns the number of updates run.
func (s *Session) Tick() uint64 {
	return s.tick
}

func (s *Session) emit(ev Event) {
	if s.sink == nil {
		return
	}
	ev.Tick = s.tick
	s.sink.Emit(ev)
}

// Update runs one tick: input first, then every machine, then the podium.
func (s *Session) Update(in Input) error {
	s.tick++
	b := s.bindings

	if in.JustPressed(b.Quit) {
		return ErrQuit
	}
	if in.JustPressed(b.ToggleMode) {
		s.SetMode(s.Mode.Toggle())
	}
	if s.race == nil && s.podium == nil {
		for i, k := range b.Slots {
			if in.JustPressed(k) {
				s.ToggleSlot(i)
			}
		}
		if in.JustPressed(b.Race) {
			if err := s.StartRace(); err != nil && !errors.Is(err, ErrNoEntrants) {
				return err
			}
		}
	}
	if in.JustPressed(b.Focus) {
		s.cycleFocus()
	}
	s.tune(in)

	hold := anyPressed(in, b.Hold)
	nudge := b.nudge(in, Vec2{X: s.opts.Motion.NudgeX, Y: s.opts.Motion.NudgeY})
	focused := s.Focused()
	stepFor := func(m *Machine) Step {
		st := Step{Mode: s.Mode}
		if m == focused {
			st.Hold = hold
			st.Nudge = nudge
		}
		return st
	}

	if s.race != nil {
		s.stepRace(stepFor)
	} else {
		s.stepMachines(stepFor)
	}

	if s.podium != nil {
		dt := float32(1.0 / float64(s.opts.TPS))
		if s.podium.Update(dt) || in.JustPressed(b.Dismiss) {
			s.podium = nil
			s.Logger.Info().Msg("podium closed")
			s.emit(Event{Type: EventPodiumClosed, Slot: -1})
		}
	}
	return nil
}

// SetMode switches the travel mode.
func (s *Session) SetMode(mode Mode) {
	if mode == s.Mode {
		return
	}
	s.Mode = mode
	s.Logger.Info().Stringer("mode", mode).Msg("mode changed")
	s.emit(Event{Type: EventModeChanged, Slot: -1, Mode: mode})
}

// ToggleSlot spawns the catalog entry for slot i, or despawns it if the slot
// is occupied. Slots past the end of the catalog are ignored.
func (s *Session) ToggleSlot(i int) {
	if i < 0 || i >= SlotCount || i >= len(s.catalog) {
		return
	}
	if m := s.slots[i]; m != nil {
		s.slots[i] = nil
		if s.focus == i {
			s.setFocus(-1)
		}
		s.Logger.Debug().Int("slot", i+1).Str("kind", m.Kind.Name).Msg("despawned")
		s.emit(Event{Type: EventDespawned, Slot: i, Kind: m.Kind.Name})
		return
	}
	s.spawn(i)
	s.setFocus(i)
}

func (s *Session) spawn(i int) *Machine {
	name := s.catalog[i]
	kind := s.opts.Kinds.Lookup(name)
	y := kind.SpawnY
	if s.Mode == ModeScroll && kind.SpawnJitter > 0 {
		y -= s.opts.Rand.Float64() * kind.SpawnJitter
	}
	m := NewMachine(kind, s.assets[name], Vec2{X: s.opts.Screen.X, Y: y}, s.opts.Motion)
	s.slots[i] = m
	s.Logger.Debug().Int("slot", i+1).Str("kind", name).Float64("y", y).Msg("spawned")
	s.emit(Event{Type: EventSpawned, Slot: i, Kind: name, To: m.State, Mode: s.Mode})
	return m
}

func (s *Session) setFocus(i int) {
	if s.focus == i {
		return
	}
	s.focus = i
	s.emit(Event{Type: EventFocusChanged, Slot: i})
}

// cycleFocus moves focus to the next occupied slot.
func (s *Session) cycleFocus() {
	for n := 1; n <= SlotCount; n++ {
		i := (s.focus + n + SlotCount) % SlotCount
		if s.slots[i] != nil {
			s.setFocus(i)
			return
		}
	}
	s.setFocus(-1)
}

// tune applies the wheel-tuning keys to the focused machine.
func (s *Session) tune(in Input) {
	m := s.Focused()
	if m == nil {
		return
	}
	b := s.bindings
	var dx, dy, ds float64
	if in.JustPressed(b.WheelLeft) {
		dx -= wheelNudge
	}
	if in.JustPressed(b.WheelRight) {
		dx += wheelNudge
	}
	if in.JustPressed(b.WheelUp) {
		dy -= wheelNudge
	}
	if in.JustPressed(b.WheelDown) {
		dy += wheelNudge
	}
	if in.JustPressed(b.ScaleDown) {
		ds -= scaleNudge
	}
	if in.JustPressed(b.ScaleUp) {
		ds += scaleNudge
	}
	if dx != 0 || dy != 0 || ds != 0 {
		m.TuneWheels(dx, dy, ds)
	}
	if in.JustPressed(b.Report) {
		s.Logger.Info().Str("kind", m.Kind.Name).
			Float64("offsetX", m.WheelOffset.X).Float64("offsetY", m.WheelOffset.Y).
			Float64("scale", m.WheelScale).Msg("wheel knobs")
	}
}

func (s *Session) stepMachines(stepFor func(*Machine) Step) {
	for i, m := range s.slots {
		if m == nil {
			continue
		}
		prev := m.State
		gone := m.Update(stepFor(m))
		if m.State != prev {
			s.emit(Event{Type: EventStateChanged, Slot: i, Kind: m.Kind.Name, From: prev, To: m.State})
		}
		if gone {
			s.remove(i, EventRemoved)
		}
	}
}

func (s *Session) remove(i int, typ EventType) {
	m := s.slots[i]
	s.slots[i] = nil
	if s.focus == i {
		s.setFocus(-1)
	}
	s.Logger.Debug().Int("slot", i+1).Str("kind", m.Kind.Name).Msg("left the screen")
	s.emit(Event{Type: typ, Slot: i, Kind: m.Kind.Name, To: m.State})
}

// StartRace sends every active machine (or, with none active, every catalog
// entry) racing from a shared start line.
func (s *Session) StartRace() error {
	if s.race != nil {
		return nil
	}
	entrants := s.Active()
	if len(entrants) == 0 {
		for i := 0; i < len(s.catalog) && i < SlotCount; i++ {
			entrants = append(entrants, s.spawn(i))
		}
	}
	race, err := NewRace(s.opts.Race, s.opts.Rand, entrants, s.opts.Screen)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("race not started")
		return err
	}
	s.race = race
	s.Logger.Info().Int("entrants", len(entrants)).Msg("race started")
	s.emit(Event{Type: EventRaceStarted, Slot: -1, Count: len(entrants)})
	return nil
}

func (s *Session) slotOf(m *Machine) int {
	for i, sm := range s.slots {
		if sm == m {
			return i
		}
	}
	return -1
}

func (s *Session) stepRace(stepFor func(*Machine) Step) {
	changed, finished := s.race.Step(stepFor)
	for _, c := range changed {
		s.emit(Event{Type: EventSpeedChanged, Slot: s.slotOf(c.Machine), Kind: c.Machine.Kind.Name,
			Speed: c.To, Count: s.race.Changes(c.Machine)})
	}
	for _, m := range finished {
		place := s.race.Place(m)
		slot := s.slotOf(m)
		s.Logger.Info().Str("kind", m.Kind.Name).Int("place", place).Msg("finished")
		s.emit(Event{Type: EventFinished, Slot: slot, Kind: m.Kind.Name, Place: place, To: m.State})
		if slot >= 0 {
			s.slots[slot] = nil
			if s.focus == slot {
				s.setFocus(-1)
			}
		}
	}
	if s.race.Done() {
		s.podium = NewPodium(s.race.Standings(), s.opts.Screen, s.opts.Podium)
		s.Logger.Info().Int("ticks", s.race.Ticks()).Msg("race finished")
		s.emit(Event{Type: EventRaceFinished, Slot: -1, Count: len(s.race.Entrants())})
		s.race = nil
	}
}

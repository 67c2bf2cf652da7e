package parade

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

// ErrNoEntrants is returned by NewRace when there is nothing to race.
var ErrNoEntrants = errors.New("parade: no machines to race")

// RaceConfig bounds the randomized speed changes of a race.
type RaceConfig struct {
	BaseSpeed    float64 `mapstructure:"baseSpeed"`
	MinSpeed     float64 `mapstructure:"minSpeed"`
	MaxSpeed     float64 `mapstructure:"maxSpeed"`
	MaxDelta     float64 `mapstructure:"maxDelta"`     // largest single speed change
	MaxChanges   int     `mapstructure:"maxChanges"`   // per entrant, per race
	ChangeChance float64 `mapstructure:"changeChance"` // per entrant, per tick
	LaneTop      float64 `mapstructure:"laneTop"`
	LaneBottom   float64 `mapstructure:"laneBottom"`
}

// Validate reports the first inconsistent bound.
func (c RaceConfig) Validate() error {
	switch {
	case c.MinSpeed <= 0:
		return fmt.Errorf("parade: race minSpeed %v must be positive", c.MinSpeed)
	case c.MinSpeed > c.MaxSpeed:
		return fmt.Errorf("parade: race minSpeed %v exceeds maxSpeed %v", c.MinSpeed, c.MaxSpeed)
	case c.BaseSpeed < c.MinSpeed || c.BaseSpeed > c.MaxSpeed:
		return fmt.Errorf("parade: race baseSpeed %v outside [%v, %v]", c.BaseSpeed, c.MinSpeed, c.MaxSpeed)
	case c.MaxDelta < 0:
		return fmt.Errorf("parade: race maxDelta %v is negative", c.MaxDelta)
	case c.MaxChanges < 0:
		return fmt.Errorf("parade: race maxChanges %d is negative", c.MaxChanges)
	case c.ChangeChance < 0 || c.ChangeChance > 1:
		return fmt.Errorf("parade: race changeChance %v outside [0, 1]", c.ChangeChance)
	}
	return nil
}

// SpeedChange describes one perturbation applied during Race.Step.
type SpeedChange struct {
	Machine  *Machine
	From, To float64
}

// Race moves a fixed set of entrants leftward from a shared start line,
// perturbing their speeds at random, and records the order in which they
// leave the screen.
type Race struct {
	cfg      RaceConfig
	rng      *rand.Rand
	entrants []*Machine
	changes  map[*Machine]int
	finished map[*Machine]bool
	order    []*Machine
	ticks    int
}

// NewRace lines the entrants up just past the right edge of a screen of the
// given size, in evenly spaced lanes.
func NewRace(cfg RaceConfig, rng *rand.Rand, entrants []*Machine, screen Vec2) (*Race, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(entrants) == 0 {
		return nil, ErrNoEntrants
	}
	r := &Race{
		cfg:      cfg,
		rng:      rng,
		entrants: append([]*Machine(nil), entrants...),
		changes:  make(map[*Machine]int, len(entrants)),
		finished: make(map[*Machine]bool, len(entrants)),
	}
	lane := 0.0
	if len(entrants) > 1 {
		lane = (cfg.LaneBottom - cfg.LaneTop) / float64(len(entrants)-1)
	}
	for i, m := range r.entrants {
		m.SetRacing(Vec2{X: screen.X, Y: cfg.LaneTop + lane*float64(i)}, cfg.BaseSpeed)
	}
	return r, nil
}

// Entrants returns the machines in the race.
func (r *Race) Entrants() []*Machine {
	return r.entrants
}

// Ticks returns how many steps the race has run.
func (r *Race) Ticks() int {
	return r.ticks
}

// Changes returns how many speed changes m has received.
func (r *Race) Changes(m *Machine) int {
	return r.changes[m]
}

// Finished reports whether m has crossed the line.
func (r *Race) Finished(m *Machine) bool {
	return r.finished[m]
}

// Place returns m's 1-based finishing position, or 0 if it has not finished.
func (r *Race) Place(m *Machine) int {
	for i, f := range r.order {
		if f == m {
			return i + 1
		}
	}
	return 0
}

// Finishers returns the entrants that have finished, in order.
func (r *Race) Finishers() []*Machine {
	return r.order
}

// Done reports whether every entrant has finished.
func (r *Race) Done() bool {
	return len(r.order) == len(r.entrants)
}

// Step runs one tick. step returns the per-machine input (hold and nudge);
// nil means no input. It returns the speed changes applied and the machines
// that finished this tick, in finishing order.
func (r *Race) Step(step func(*Machine) Step) (changed []SpeedChange, finished []*Machine) {
	if r.Done() {
		return nil, nil
	}
	r.ticks++
	for _, m := range r.entrants {
		if r.finished[m] {
			continue
		}
		if c, ok := r.perturb(m); ok {
			changed = append(changed, c)
		}
		var st Step
		if step != nil {
			st = step(m)
		}
		if m.Update(st) {
			r.finished[m] = true
			r.order = append(r.order, m)
			finished = append(finished, m)
		}
	}
	return changed, finished
}

// perturb applies at most one random speed change to m.
func (r *Race) perturb(m *Machine) (SpeedChange, bool) {
	if r.changes[m] >= r.cfg.MaxChanges || r.rng.Float64() >= r.cfg.ChangeChance {
		return SpeedChange{}, false
	}
	delta := (r.rng.Float64()*2 - 1) * r.cfg.MaxDelta
	from := m.Speed
	m.Speed = clampSpeed(from+delta, r.cfg.MinSpeed, r.cfg.MaxSpeed)
	r.changes[m]++
	return SpeedChange{Machine: m, From: from, To: m.Speed}, true
}

func clampSpeed(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Standings returns finishers in order, followed by the rest ordered by how
// far left they are.
func (r *Race) Standings() []*Machine {
	out := append([]*Machine(nil), r.order...)
	var rest []*Machine
	for _, m := range r.entrants {
		if !r.finished[m] {
			rest = append(rest, m)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Right() < rest[j].Right()
	})
	return append(out, rest...)
}

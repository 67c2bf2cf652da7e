package parade

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`

	key ebiten.Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// screenshotter queues labeled captures.
type screenshotter interface {
	Screenshot(label string)
}

// TestRunner replays scripted keyboard input across ticks for automated
// visual checks. Actions: "press" taps a key for one tick, "hold" keeps a key
// down for a number of ticks, "wait" idles, "screenshot" queues a capture,
// "quit" presses the quit binding.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	holding   *ebiten.Key
	done      bool
	keys      *KeyState
	quit      ebiten.Key
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Game via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "hold":
			k, ok := parseKey(st.Key)
			if !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
			st.key = k
		case "wait", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{
		steps: script.Steps,
		keys:  NewKeyState(),
		quit:  ebiten.KeyEscape,
	}, nil
}

// parseKey resolves an Ebitengine key name such as "Digit1" or "ArrowLeft".
func parseKey(name string) (ebiten.Key, bool) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return 0, false
}

// Input returns the synthetic keyboard driven by the script.
func (r *TestRunner) Input() Input {
	return r.keys
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick. Called before the session update.
func (r *TestRunner) step(s screenshotter) {
	r.keys.Advance()
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		if r.waitCount == 0 && r.holding != nil {
			r.keys.Release(*r.holding)
			r.holding = nil
		}
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "press":
		r.keys.Tap(st.key)
	case "quit":
		r.keys.Tap(r.quit)
	case "hold":
		frames := max(st.Frames, 1)
		r.keys.Press(st.key)
		k := st.key
		r.holding = &k
		// this tick counts as one; the key is released after the last
		r.waitCount = frames
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

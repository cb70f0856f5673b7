package puffy

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string   `json:"action"`
	Keys   []string `json:"keys,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Label  string   `json:"label,omitempty"`

	keys []ebiten.Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected key presses across ticks for automated
// playthroughs. Attach to an App via SetTestRunner.
//
// Supported actions: "press" and "release" (with "keys"), "tap" (press for
// one tick, release on the next), "wait" (with "frames") and "screenshot"
// (with an optional "label").
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	tapped    []ebiten.Key
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an App via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("puffy: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("puffy: parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "release", "tap":
			if len(st.Keys) == 0 {
				return nil, fmt.Errorf("puffy: parse test script: step %d: %s without keys", i, st.Action)
			}
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("puffy: parse test script: step %d: unknown action %q", i, st.Action)
		}
		for _, name := range st.Keys {
			k, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("puffy: parse test script: step %d: %w", i, err)
			}
			st.keys = append(st.keys, k)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the App. The runner advances once
// per tick before input is sampled.
func (a *App) SetTestRunner(runner *TestRunner) {
	a.runner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one tick. Called from App.Step.
func (r *TestRunner) step(a *App) {
	if len(r.tapped) > 0 {
		a.InjectKeyUp(r.tapped...)
		r.tapped = r.tapped[:0]
		r.checkDone()
		return
	}
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		a.InjectKeyDown(st.keys...)
	case "release":
		a.InjectKeyUp(st.keys...)
	case "tap":
		a.InjectKeyDown(st.keys...)
		r.tapped = append(r.tapped, st.keys...)
	case "screenshot":
		a.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}
	r.checkDone()
}

func (r *TestRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.tapped) == 0 {
		r.done = true
	}
}

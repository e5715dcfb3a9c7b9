package grasp

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action     string  `json:"action"`
	Interactor string  `json:"interactor,omitempty"`
	Target     string  `json:"target,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Z          float64 `json:"z,omitempty"`
	Frames     int     `json:"frames,omitempty"`
	Expect     bool    `json:"expect,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, pose moves, and state expectations
// across frames for automated interaction testing. Attach to a Manager via
// SetTestRunner; the runner advances one step at the start of each Update.
//
// Supported actions: "press", "release", "activate", "deactivate", "tap",
// "wait" (frames), "move" (interactor to x/y/z), "expect_selected",
// "expect_hovered" (interactor/target/expect), and "expect_active"
// (target/expect). Failed expectations accumulate in Failures.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Manager via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the manager. The runner's step
// method is called from Manager.Update before input preprocessing each
// frame.
func (m *Manager) SetTestRunner(runner *TestRunner) {
	m.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the accumulated expectation failures, one message per
// failed expect step. Empty when every expectation held.
// The returned slice MUST NOT be mutated by the caller.
func (r *TestRunner) Failures() []string {
	return r.failures
}

// step advances the test runner by one frame. Called from Manager.Update.
func (r *TestRunner) step(m *Manager) {
	if r.done {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	in := m.FindInteractor(st.Interactor)
	if st.Interactor != "" && in == nil {
		r.failf("step %d: unknown interactor %q", r.cursor, st.Interactor)
		return
	}

	switch st.Action {
	case "press", "release", "activate", "deactivate", "tap", "move":
		if in == nil {
			r.failf("step %d: action %q needs an interactor", r.cursor, st.Action)
			return
		}
		switch st.Action {
		case "press":
			in.InjectSelectPress()
		case "release":
			in.InjectSelectRelease()
		case "activate":
			in.InjectActivatePress()
		case "deactivate":
			in.InjectActivateRelease()
		case "tap":
			in.InjectTap()
		case "move":
			in.AttachPose.Position = Vec3{X: st.X, Y: st.Y, Z: st.Z}
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect_selected":
		r.expectPair(m, st, "selected", func(in *Interactor, x *Interactable) bool {
			return in.IsSelecting(x)
		})
	case "expect_hovered":
		r.expectPair(m, st, "hovered", func(in *Interactor, x *Interactable) bool {
			return in.IsHovering(x)
		})
	case "expect_active":
		x := m.FindInteractable(st.Target)
		if x == nil {
			r.failf("step %d: unknown interactable %q", r.cursor, st.Target)
			return
		}
		if got := len(x.activeBy) > 0; got != st.Expect {
			r.failf("step %d: %q active = %v, expected %v",
				r.cursor, st.Target, got, st.Expect)
		}
	default:
		r.failf("step %d: unknown action %q", r.cursor, st.Action)
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// expectPair evaluates an interactor/interactable relationship expectation.
func (r *TestRunner) expectPair(m *Manager, st testStep, what string,
	check func(*Interactor, *Interactable) bool) {

	in := m.FindInteractor(st.Interactor)
	x := m.FindInteractable(st.Target)
	if in == nil || x == nil {
		r.failf("step %d: expect_%s with unknown entity (%q, %q)",
			r.cursor, what, st.Interactor, st.Target)
		return
	}
	if got := check(in, x); got != st.Expect {
		r.failf("step %d: %q %s %q = %v, expected %v",
			r.cursor, st.Interactor, what, st.Target, got, st.Expect)
	}
}

func (r *TestRunner) failf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

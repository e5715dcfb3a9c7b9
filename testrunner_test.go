package grasp

import "testing"

func runScript(t *testing.T, m *Manager, script string) *TestRunner {
	t.Helper()
	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	m.SetTestRunner(runner)
	for i := 0; i < 100 && !runner.Done(); i++ {
		m.Update(dt)
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	return runner
}

func TestLoadTestScriptErrors(t *testing.T) {
	if _, err := LoadTestScript([]byte("not json")); err == nil {
		t.Error("invalid JSON should fail")
	}
	if _, err := LoadTestScript([]byte(`{"steps":[]}`)); err == nil {
		t.Error("empty script should fail")
	}
}

func TestScriptedSelectCycle(t *testing.T) {
	m, _, _ := rig(t)

	runner := runScript(t, m, `{"steps":[
		{"action":"press","interactor":"hand"},
		{"action":"wait","frames":2},
		{"action":"expect_hovered","interactor":"hand","target":"cube","expect":true},
		{"action":"expect_selected","interactor":"hand","target":"cube","expect":true},
		{"action":"release","interactor":"hand"},
		{"action":"wait","frames":2},
		{"action":"expect_selected","interactor":"hand","target":"cube","expect":false}
	]}`)

	if f := runner.Failures(); len(f) != 0 {
		t.Errorf("failures: %v", f)
	}
}

func TestScriptedMoveAndActivate(t *testing.T) {
	m, _, _ := rig(t)

	runner := runScript(t, m, `{"steps":[
		{"action":"move","interactor":"hand","x":5},
		{"action":"wait","frames":1},
		{"action":"expect_hovered","interactor":"hand","target":"cube","expect":false},
		{"action":"move","interactor":"hand"},
		{"action":"press","interactor":"hand"},
		{"action":"activate","interactor":"hand"},
		{"action":"wait","frames":1},
		{"action":"expect_active","target":"cube","expect":true},
		{"action":"deactivate","interactor":"hand"},
		{"action":"wait","frames":1},
		{"action":"expect_active","target":"cube","expect":false}
	]}`)

	if f := runner.Failures(); len(f) != 0 {
		t.Errorf("failures: %v", f)
	}
}

func TestScriptedExpectationFailureRecorded(t *testing.T) {
	m, _, _ := rig(t)

	runner := runScript(t, m, `{"steps":[
		{"action":"expect_selected","interactor":"hand","target":"cube","expect":true}
	]}`)

	if len(runner.Failures()) != 1 {
		t.Errorf("failures = %v, want exactly one", runner.Failures())
	}
}

func TestScriptedUnknownEntityRecorded(t *testing.T) {
	m, _, _ := rig(t)

	runner := runScript(t, m, `{"steps":[
		{"action":"press","interactor":"nobody"}
	]}`)

	if len(runner.Failures()) != 1 {
		t.Errorf("failures = %v, want unknown-interactor failure", runner.Failures())
	}
}

func TestScriptedUnknownActionRecorded(t *testing.T) {
	m, _, _ := rig(t)

	runner := runScript(t, m, `{"steps":[
		{"action":"frobnicate"}
	]}`)

	if len(runner.Failures()) != 1 {
		t.Errorf("failures = %v, want unknown-action failure", runner.Failures())
	}
}

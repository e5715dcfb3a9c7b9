package grasp

import "testing"

func TestInjectSelectPressRelease(t *testing.T) {
	m, in, x := rig(t)

	in.InjectSelectPress()
	in.InjectSelectRelease()
	if in.PendingInjections() != 2 {
		t.Fatalf("pending = %d, want 2", in.PendingInjections())
	}

	// One signal per frame.
	m.Update(dt)
	if !in.IsSelecting(x) {
		t.Error("injected press should select")
	}
	if in.PendingInjections() != 1 {
		t.Errorf("pending = %d, want 1", in.PendingInjections())
	}

	m.Update(dt)
	if in.IsSelecting(x) {
		t.Error("injected release should deselect")
	}
	if in.PendingInjections() != 0 {
		t.Errorf("pending = %d, want 0", in.PendingInjections())
	}
}

func TestInjectTap(t *testing.T) {
	m, in, x := rig(t)

	in.InjectTap()
	m.Update(dt)
	if !in.IsSelecting(x) {
		t.Error("tap frame one: selected")
	}
	m.Update(dt)
	if in.IsSelecting(x) {
		t.Error("tap frame two: released")
	}
}

func TestInjectHoldRepeatsState(t *testing.T) {
	m, in, x := rig(t)

	in.InjectSelectPress()
	in.InjectHold(3)
	in.InjectSelectRelease()
	if in.PendingInjections() != 5 {
		t.Fatalf("pending = %d, want 5", in.PendingInjections())
	}

	for i := 0; i < 4; i++ {
		m.Update(dt)
		if !in.IsSelecting(x) {
			t.Fatalf("frame %d: selection should persist through the hold", i)
		}
	}
	m.Update(dt)
	if in.IsSelecting(x) {
		t.Error("selection should end on the injected release")
	}
}

func TestInjectActivate(t *testing.T) {
	m, in, x := rig(t)

	var activated, deactivated int
	x.OnActivated = func(ActivateContext) { activated++ }
	x.OnDeactivated = func(ActivateContext) { deactivated++ }

	// Select via injection, then pulse activate while holding select.
	in.InjectSelectPress()
	in.InjectActivatePress()
	in.InjectActivateRelease()

	m.Update(dt) // press select
	m.Update(dt) // + activate
	m.Update(dt) // - activate
	if activated != 1 || deactivated != 1 {
		t.Errorf("activate/deactivate = %d/%d, want 1/1", activated, deactivated)
	}
	if !in.IsSelecting(x) {
		t.Error("select should still be held: injections carry the last state forward")
	}
}

func TestInjectionSupersedesHostInput(t *testing.T) {
	m, in, x := rig(t)

	in.SetSelectPressed(true) // host says pressed
	in.InjectSelectRelease()  // injection says released, and wins
	m.Update(dt)
	if in.IsSelecting(x) {
		t.Error("queued injection must supersede host-fed input")
	}
}

package grasp

import "testing"

func TestManagerCallbackHandleRemove(t *testing.T) {
	m, in, _ := rig(t)

	var count int
	handle := m.OnHoverEntered(func(HoverContext) { count++ })

	m.Update(dt)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	handle.Remove()
	in.AttachPose.Position = Vec3{X: 5}
	m.Update(dt)
	in.AttachPose.Position = Vec3{}
	m.Update(dt)
	if count != 1 {
		t.Errorf("count = %d after Remove, want 1", count)
	}
}

func TestManagerCallbacksFireInRegistrationOrder(t *testing.T) {
	m, _, _ := rig(t)

	var seq []int
	m.OnHoverEntered(func(HoverContext) { seq = append(seq, 1) })
	m.OnHoverEntered(func(HoverContext) { seq = append(seq, 2) })
	m.OnHoverEntered(func(HoverContext) { seq = append(seq, 3) })

	m.Update(dt)
	if len(seq) != 3 || seq[0] != 1 || seq[1] != 2 || seq[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", seq)
	}
}

func TestRemoveMiddleCallbackKeepsOthers(t *testing.T) {
	m, _, _ := rig(t)

	var a, b, c int
	m.OnHoverEntered(func(HoverContext) { a++ })
	mid := m.OnHoverEntered(func(HoverContext) { b++ })
	m.OnHoverEntered(func(HoverContext) { c++ })
	mid.Remove()

	m.Update(dt)
	if a != 1 || b != 0 || c != 1 {
		t.Errorf("a,b,c = %d,%d,%d, want 1,0,1", a, b, c)
	}
}

func TestZeroHandleRemoveIsNoOp(t *testing.T) {
	var h CallbackHandle
	h.Remove() // must not panic
}

func TestEntityStoreReceivesEvents(t *testing.T) {
	m, in, x := rig(t)

	var events []InteractionEvent
	m.SetEntityStore(storeFunc(func(ev InteractionEvent) {
		events = append(events, ev)
	}))

	in.SetSelectPressed(true)
	m.Update(dt)

	var sawHover, sawSelect bool
	for _, ev := range events {
		switch ev.Type {
		case EventHoverEnter:
			sawHover = true
			if ev.InteractorID != in.ID || ev.InteractableID != x.ID {
				t.Errorf("hover event IDs: %+v", ev)
			}
		case EventSelectEnter:
			sawSelect = true
			if ev.Strength != 0 {
				// Strength is sampled at enter time, before processing.
				t.Errorf("enter strength = %v, want 0", ev.Strength)
			}
		}
	}
	if !sawHover || !sawSelect {
		t.Errorf("events = %+v, want hover and select enters", events)
	}
}

type storeFunc func(InteractionEvent)

func (f storeFunc) EmitEvent(ev InteractionEvent) { f(ev) }

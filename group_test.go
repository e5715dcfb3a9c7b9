package grasp

import "testing"

// handRig builds a manager with two direct interactors in one group and a
// cube both can reach.
func handRig(t *testing.T) (*Manager, *InteractionGroup, *Interactor, *Interactor, *Interactable) {
	t.Helper()
	m := NewManager()
	left := NewDirectInteractor("left", 1)
	right := NewDirectInteractor("right", 1)
	cube := NewInteractable("cube")
	cube.Collider = SphereCollider{Radius: 0.2}
	m.RegisterInteractor(left)
	m.RegisterInteractor(right)
	m.RegisterInteractable(cube)

	g := NewInteractionGroup("hands")
	g.AddMember(left)
	g.AddMember(right)
	m.RegisterGroup(g)
	return m, g, left, right, cube
}

func TestGroupExclusivity(t *testing.T) {
	m, g, left, right, cube := handRig(t)

	m.Update(dt)
	if !left.IsHovering(cube) {
		t.Fatal("first member in priority order should interact")
	}
	if right.IsHovering(cube) {
		t.Error("only one group member may interact per frame")
	}
	if g.ActiveInteractor() != left {
		t.Errorf("active = %v, want left", g.ActiveInteractor())
	}
}

func TestGroupLastActiveWins(t *testing.T) {
	m, g, left, right, cube := handRig(t)

	// Move left out of range so right takes over.
	left.AttachPose.Position = Vec3{X: 5}
	m.Update(dt)
	if g.ActiveInteractor() != right {
		t.Fatal("right should interact with left out of range")
	}

	// Left returns. Right keeps the initiative: last-active wins over
	// member priority while the holder stays capable.
	left.AttachPose.Position = Vec3{}
	m.Update(dt)
	if g.ActiveInteractor() != right {
		t.Error("returning higher-priority member must not displace the active one")
	}
	if left.IsHovering(cube) {
		t.Error("left should stay blocked while right holds the initiative")
	}
}

func TestGroupBlockedMemberForciblyCleared(t *testing.T) {
	m := NewManager()
	left := NewDirectInteractor("left", 1)
	right := NewDirectInteractor("right", 1)
	cube := NewInteractable("cube")
	cube.Collider = SphereCollider{Radius: 0.2}
	m.RegisterInteractor(left)
	m.RegisterInteractor(right)
	m.RegisterInteractable(cube)

	// Right interacts first, ungrouped.
	left.AllowHover = false
	left.AllowSelect = false
	right.SetSelectPressed(true)
	m.Update(dt)
	if !right.IsSelecting(cube) {
		t.Fatal("right should hold the cube")
	}

	// Group them with left pre-prioritized and capable again: right is
	// blocked and its selection forcibly exits.
	left.AllowHover = true
	left.AllowSelect = true
	left.SetSelectPressed(true)
	g := NewInteractionGroup("hands")
	g.AddMember(left)
	g.AddMember(right)
	m.RegisterGroup(g)

	m.Update(dt)
	if right.IsSelecting(cube) {
		t.Error("blocked member must have its interactions cleared")
	}
	if !left.IsSelecting(cube) {
		t.Error("pre-prioritized member should take over")
	}
	checkSymmetry(t, m)
}

func TestGroupOverridePreemption(t *testing.T) {
	m, g, left, right, cube := handRig(t)
	g.RegisterOverride(left, right)

	left.SetSelectPressed(true)
	m.Update(dt)
	if !left.IsSelecting(cube) {
		t.Fatal("left should hold the cube")
	}

	// Right presses while able to select left's target: the override
	// preempts mid-interaction.
	right.SetSelectPressed(true)
	m.Update(dt)
	if left.IsSelecting(cube) || left.IsHovering(cube) {
		t.Error("overridden member must be fully cleared")
	}
	if !right.IsSelecting(cube) {
		t.Error("override should take the target")
	}
	if g.ActiveInteractor() != right {
		t.Errorf("active = %v, want right", g.ActiveInteractor())
	}
	checkSymmetry(t, m)
}

func TestGroupOverrideRequiresCapableOverride(t *testing.T) {
	m, g, left, right, cube := handRig(t)
	g.RegisterOverride(left, right)

	left.SetSelectPressed(true)
	m.Update(dt)

	// Right is not pressing, so it cannot select left's target: no
	// preemption.
	m.Update(dt)
	if !left.IsSelecting(cube) {
		t.Error("override without select capability must not preempt")
	}
	if g.ActiveInteractor() != left {
		t.Errorf("active = %v, want left", g.ActiveInteractor())
	}
}

func TestGroupOverrideMemberOrderDecides(t *testing.T) {
	m := NewManager()
	a := NewDirectInteractor("a", 1)
	b := NewDirectInteractor("b", 1)
	c := NewDirectInteractor("c", 1)
	cube := NewInteractable("cube")
	cube.Collider = SphereCollider{Radius: 0.2}
	m.RegisterInteractor(a)
	m.RegisterInteractor(b)
	m.RegisterInteractor(c)
	m.RegisterInteractable(cube)

	g := NewInteractionGroup("hands")
	g.AddMember(a)
	g.AddMember(b)
	g.AddMember(c)
	// Registration order says c then b; member (priority) order says b
	// first. Member order wins.
	g.RegisterOverride(a, c)
	g.RegisterOverride(a, b)
	m.RegisterGroup(g)

	a.SetSelectPressed(true)
	m.Update(dt)
	if !a.IsSelecting(cube) {
		t.Fatal("a should hold the cube")
	}

	b.SetSelectPressed(true)
	c.SetSelectPressed(true)
	m.Update(dt)
	if !b.IsSelecting(cube) {
		t.Error("first override in member order should win")
	}
	if c.IsSelecting(cube) || a.IsSelecting(cube) {
		t.Error("only the winning override interacts")
	}
}

func TestGroupOverrideCycleRejected(t *testing.T) {
	g := NewInteractionGroup("hands")
	a := NewInteractor("a")
	b := NewInteractor("b")
	c := NewInteractor("c")
	g.AddMember(a)
	g.AddMember(b)
	g.AddMember(c)

	if !g.RegisterOverride(a, b) {
		t.Fatal("a<-b should register")
	}
	if !g.RegisterOverride(b, c) {
		t.Fatal("b<-c should register")
	}
	// c -> a closes the loop a -> b -> c -> a.
	if g.RegisterOverride(c, a) {
		t.Error("transitive override cycle must be rejected")
	}
	if g.RegisterOverride(a, a) {
		t.Error("self-override must be rejected")
	}
}

func TestGroupOverrideNonMemberRejected(t *testing.T) {
	g := NewInteractionGroup("hands")
	a := NewInteractor("a")
	g.AddMember(a)
	outsider := NewInteractor("outsider")

	if g.RegisterOverride(a, outsider) {
		t.Error("override registration with a non-member must fail")
	}
}

func TestGroupMembershipCycleRejected(t *testing.T) {
	outer := NewInteractionGroup("outer")
	inner := NewInteractionGroup("inner")
	if !outer.AddMember(inner) {
		t.Fatal("nesting should work")
	}
	if inner.AddMember(outer) {
		t.Error("membership cycle must be rejected")
	}
	if outer.AddMember(outer) {
		t.Error("self-membership must be rejected")
	}
}

func TestGroupMemberAlreadyInGroupRejected(t *testing.T) {
	g1 := NewInteractionGroup("g1")
	g2 := NewInteractionGroup("g2")
	a := NewInteractor("a")
	g1.AddMember(a)
	if g2.AddMember(a) {
		t.Error("a member cannot belong to two groups")
	}
	if a.ContainingGroup() != g1 {
		t.Error("failed add must not reparent the member")
	}
}

func TestGroupRemoveMember(t *testing.T) {
	m, g, left, right, cube := handRig(t)

	m.Update(dt)
	if g.ActiveInteractor() != left {
		t.Fatal("left should be active")
	}

	if !g.RemoveMember(left) {
		t.Fatal("remove failed")
	}
	if left.ContainingGroup() != nil {
		t.Error("removed member keeps a group reference")
	}
	if g.ActiveInteractor() != nil {
		t.Error("removing the active member should clear the active interactor")
	}

	// Left now interacts ungrouped; right is the group's only member.
	m.Update(dt)
	if !left.IsHovering(cube) || !right.IsHovering(cube) {
		t.Error("both should hover after the split")
	}
}

func TestNestedGroupResolution(t *testing.T) {
	m := NewManager()
	gaze := NewDirectInteractor("gaze", 1)
	left := NewDirectInteractor("left", 1)
	right := NewDirectInteractor("right", 1)
	cube := NewInteractable("cube")
	cube.Collider = SphereCollider{Radius: 0.2}
	m.RegisterInteractor(gaze)
	m.RegisterInteractor(left)
	m.RegisterInteractor(right)
	m.RegisterInteractable(cube)

	hands := NewInteractionGroup("hands")
	hands.AddMember(left)
	hands.AddMember(right)
	rig := NewInteractionGroup("rig")
	rig.AddMember(hands)
	rig.AddMember(gaze)
	m.RegisterGroup(rig)
	m.RegisterGroup(hands)

	m.Update(dt)
	// The nested hands group wins (first member of rig), and inside it
	// only left interacts.
	if !left.IsHovering(cube) {
		t.Error("left should interact")
	}
	if right.IsHovering(cube) || gaze.IsHovering(cube) {
		t.Error("all other interactors must be blocked")
	}
	if rig.ActiveInteractor() != left {
		t.Errorf("rig active = %v, want left (bubbled up)", rig.ActiveInteractor())
	}
}

func TestGroupMutationDuringPassRejected(t *testing.T) {
	m, g, _, _, cube := handRig(t)

	extra := NewInteractor("extra")
	var added bool
	cube.OnHoverEntered = func(HoverContext) {
		added = g.AddMember(extra)
	}
	m.Update(dt)
	if added {
		t.Error("group membership change during a pass must be rejected")
	}
}

package grasp

import "testing"

func registered(t *testing.T, name string, pos Vec3, c Collider) *Interactable {
	t.Helper()
	x := NewInteractable(name)
	x.Pose.Position = pos
	x.Collider = c
	x.registered = true // provider-level tests bypass the manager
	return x
}

func TestOverlapProviderRadius(t *testing.T) {
	p := &OverlapProvider{Radius: 1}
	in := NewInteractor("hand")

	inRange := registered(t, "in-range", Vec3{X: 0.8}, SphereCollider{Radius: 0.1})
	outOfRange := registered(t, "out", Vec3{X: 3}, SphereCollider{Radius: 0.1})
	p.InteractableRegistered(inRange)
	p.InteractableRegistered(outOfRange)

	got := p.ValidTargets(in, nil)
	if len(got) != 1 || got[0] != inRange {
		t.Errorf("targets = %v", names(got))
	}
}

func TestOverlapProviderNearestFirst(t *testing.T) {
	p := &OverlapProvider{Radius: 2}
	in := NewInteractor("hand")

	far := registered(t, "far", Vec3{X: 1}, SphereCollider{Radius: 0.1})
	near := registered(t, "near", Vec3{X: 0.3}, SphereCollider{Radius: 0.1})
	p.InteractableRegistered(far)
	p.InteractableRegistered(near)

	got := p.ValidTargets(in, nil)
	if len(got) != 2 || got[0] != near || got[1] != far {
		t.Errorf("targets = %v, want [near far]", names(got))
	}
}

func TestOverlapProviderEquidistantKeepsRegistrationOrder(t *testing.T) {
	p := &OverlapProvider{Radius: 2}
	in := NewInteractor("hand")

	a := registered(t, "a", Vec3{X: 1}, SphereCollider{Radius: 0.1})
	b := registered(t, "b", Vec3{X: -1}, SphereCollider{Radius: 0.1})
	p.InteractableRegistered(a)
	p.InteractableRegistered(b)

	got := p.ValidTargets(in, nil)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("targets = %v, want registration order for ties", names(got))
	}
}

func TestOverlapProviderSkipsColliderless(t *testing.T) {
	p := &OverlapProvider{Radius: 2}
	in := NewInteractor("hand")

	bare := NewInteractable("bare")
	bare.registered = true
	p.InteractableRegistered(bare)

	if got := p.ValidTargets(in, nil); len(got) != 0 {
		t.Errorf("colliderless interactable discovered: %v", names(got))
	}
}

func TestOverlapProviderUnregister(t *testing.T) {
	p := &OverlapProvider{Radius: 2}
	in := NewInteractor("hand")

	x := registered(t, "x", Vec3{}, SphereCollider{Radius: 0.1})
	p.InteractableRegistered(x)
	p.InteractableUnregistered(x)

	if got := p.ValidTargets(in, nil); len(got) != 0 {
		t.Errorf("unregistered interactable still discovered: %v", names(got))
	}
}

func TestRayProviderHitOrder(t *testing.T) {
	p := &RayProvider{MaxDistance: 10}
	in := NewInteractor("pointer") // identity pose: forward is +z

	farBox := registered(t, "far", Vec3{Z: 5}, SphereCollider{Radius: 0.5})
	nearBox := registered(t, "near", Vec3{Z: 2}, SphereCollider{Radius: 0.5})
	offAxis := registered(t, "off", Vec3{Z: 3, X: 4}, SphereCollider{Radius: 0.5})
	p.InteractableRegistered(farBox)
	p.InteractableRegistered(nearBox)
	p.InteractableRegistered(offAxis)

	got := p.ValidTargets(in, nil)
	if len(got) != 2 || got[0] != nearBox || got[1] != farBox {
		t.Errorf("targets = %v, want [near far]", names(got))
	}
}

func TestRayProviderMaxDistance(t *testing.T) {
	p := &RayProvider{MaxDistance: 3}
	in := NewInteractor("pointer")

	x := registered(t, "x", Vec3{Z: 5}, SphereCollider{Radius: 0.5})
	p.InteractableRegistered(x)

	if got := p.ValidTargets(in, nil); len(got) != 0 {
		t.Errorf("target beyond max distance discovered: %v", names(got))
	}
}

func TestRayProviderRespectsInteractableRotation(t *testing.T) {
	p := &RayProvider{MaxDistance: 10}
	in := NewInteractor("pointer")

	// A box rotated so its long axis faces the ray.
	x := NewInteractable("slab")
	x.Pose.Position = Vec3{Z: 4}
	x.Pose.Rotation = QuatAxisAngle(Vec3{Y: 1}, 0)
	x.Collider = BoxCollider{Min: Vec3{-1, -1, -0.1}, Max: Vec3{1, 1, 0.1}}
	x.registered = true
	p.InteractableRegistered(x)

	got := p.ValidTargets(in, nil)
	if len(got) != 1 {
		t.Fatalf("targets = %v, want the slab", names(got))
	}
}

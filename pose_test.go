package grasp

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func vecNear(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < epsilon &&
		math.Abs(a.Y-b.Y) < epsilon &&
		math.Abs(a.Z-b.Z) < epsilon
}

func TestVec3Basics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -1, 0.5}

	if got := a.Add(b); !vecNear(got, Vec3{5, 1, 3.5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); !vecNear(got, Vec3{-3, 3, 2.5}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); !vecNear(got, Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); math.Abs(got-3.5) > epsilon {
		t.Errorf("Dot = %v, want 3.5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	if got := x.Cross(y); !vecNear(got, Vec3{Z: 1}) {
		t.Errorf("x × y = %v, want +z", got)
	}
	if got := y.Cross(x); !vecNear(got, Vec3{Z: -1}) {
		t.Errorf("y × x = %v, want -z", got)
	}
}

func TestVec3Normalized(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalized()
	if math.Abs(n.Length()-1) > epsilon {
		t.Errorf("normalized length = %v", n.Length())
	}
	if !vecNear(Vec3{}.Normalized(), Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestQuatRotate(t *testing.T) {
	// 90° around Y takes +Z to +X.
	q := QuatAxisAngle(Vec3{Y: 1}, math.Pi/2)
	got := q.Rotate(Vec3{Z: 1})
	if !vecNear(got, Vec3{X: 1}) {
		t.Errorf("rotate +z by 90° around y = %v, want +x", got)
	}
}

func TestQuatIdentity(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := QuatIdentity().Rotate(v); !vecNear(got, v) {
		t.Errorf("identity rotate = %v, want %v", got, v)
	}
}

func TestQuatConjugateUndoes(t *testing.T) {
	q := QuatAxisAngle(Vec3{1, 1, 0}, 0.7)
	v := Vec3{2, -1, 3}
	got := q.Conjugate().Rotate(q.Rotate(v))
	if !vecNear(got, v) {
		t.Errorf("conjugate round-trip = %v, want %v", got, v)
	}
}

func TestPoseMulInverseRoundTrip(t *testing.T) {
	p := Pose{
		Position: Vec3{1, 2, 3},
		Rotation: QuatAxisAngle(Vec3{Y: 1}, 0.5),
	}
	got := p.Mul(p.Inverse())
	if !vecNear(got.Position, Vec3{}) {
		t.Errorf("p * p⁻¹ position = %v, want origin", got.Position)
	}
	v := Vec3{4, 5, 6}
	if back := p.Inverse().TransformPoint(p.TransformPoint(v)); !vecNear(back, v) {
		t.Errorf("inverse transform round-trip = %v, want %v", back, v)
	}
}

func TestPoseTransformPoint(t *testing.T) {
	p := Pose{
		Position: Vec3{X: 10},
		Rotation: QuatAxisAngle(Vec3{Y: 1}, math.Pi/2),
	}
	// Local +Z rotates to +X, then translates.
	got := p.TransformPoint(Vec3{Z: 1})
	if !vecNear(got, Vec3{X: 11}) {
		t.Errorf("TransformPoint = %v, want (11,0,0)", got)
	}
}

func TestPoseForward(t *testing.T) {
	if got := IdentityPose.Forward(); !vecNear(got, Vec3{Z: 1}) {
		t.Errorf("identity forward = %v, want +z", got)
	}
	p := Pose{Rotation: QuatAxisAngle(Vec3{Y: 1}, math.Pi)}
	if got := p.Forward(); !vecNear(got, Vec3{Z: -1}) {
		t.Errorf("180° forward = %v, want -z", got)
	}
}

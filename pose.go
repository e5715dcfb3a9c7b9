package grasp

import "math"

// Vec3 is a 3D vector used for positions, directions, and offsets.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns v scaled to unit length, or the zero vector if v is
// (near) zero.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// DistanceTo returns the distance between v and o.
func (v Vec3) DistanceTo(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Quat is a rotation quaternion. The zero value is invalid; use
// QuatIdentity or a constructor.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatAxisAngle returns the rotation of angle radians around axis.
// The axis need not be normalized.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalized()
	sin, cos := math.Sincos(angle / 2)
	return Quat{X: a.X * sin, Y: a.Y * sin, Z: a.Z * sin, W: cos}
}

// Mul returns the composed rotation q then o applied in o-then-q order
// (standard quaternion product q*o: o rotates first).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Conjugate returns the conjugate of q, which is the inverse for unit
// quaternions.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u × v) + 2(u × (u × v)), u = (X, Y, Z)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Pose is a rigid transform: a position and a rotation. Grasp uses poses
// for interactor attach points and for the attach snapshots captured at
// select-enter time.
type Pose struct {
	Position Vec3
	Rotation Quat
}

// IdentityPose is the pose at the origin with no rotation.
var IdentityPose = Pose{Rotation: Quat{W: 1}}

// Mul composes p with child: the result maps child-local coordinates
// through child then p.
func (p Pose) Mul(child Pose) Pose {
	return Pose{
		Position: p.Position.Add(p.Rotation.Rotate(child.Position)),
		Rotation: p.Rotation.Mul(child.Rotation),
	}
}

// Inverse returns the pose that undoes p.
func (p Pose) Inverse() Pose {
	inv := p.Rotation.Conjugate()
	return Pose{
		Position: inv.Rotate(p.Position.Scale(-1)),
		Rotation: inv,
	}
}

// TransformPoint maps a point from p-local space to world space.
func (p Pose) TransformPoint(v Vec3) Vec3 {
	return p.Position.Add(p.Rotation.Rotate(v))
}

// Forward returns the pose's forward direction: the rotation applied to
// +Z. Ray interactors cast along this direction.
func (p Pose) Forward() Vec3 {
	return p.Rotation.Rotate(Vec3{Z: 1})
}

package grasp

import "math"

// Collider is the geometric surface of an interactable, used by the
// built-in discovery providers. Implementations are expected to be cheap:
// providers query every registered candidate every frame.
//
// Colliders are positioned in world space relative to the interactable's
// Pose; the provider passes world-space query points and rays already
// converted to the collider's local frame.
type Collider interface {
	// ContainsPoint reports whether the local-space point p lies inside
	// the collider. Points on the surface are considered inside.
	ContainsPoint(p Vec3) bool

	// DistanceTo returns the distance from the local-space point p to the
	// collider surface, or 0 if p is inside.
	DistanceTo(p Vec3) float64

	// RayHit returns the distance along the normalized local-space ray
	// (origin, dir) to the first intersection, and whether it hit.
	// A ray starting inside the collider hits at distance 0.
	RayHit(origin, dir Vec3) (float64, bool)
}

// SphereCollider is a sphere centered at Center.
type SphereCollider struct {
	Center Vec3
	Radius float64
}

// ContainsPoint reports whether p lies inside or on the sphere.
func (s SphereCollider) ContainsPoint(p Vec3) bool {
	d := p.Sub(s.Center)
	return d.Dot(d) <= s.Radius*s.Radius
}

// DistanceTo returns the distance from p to the sphere surface, or 0 if
// p is inside.
func (s SphereCollider) DistanceTo(p Vec3) float64 {
	d := p.DistanceTo(s.Center) - s.Radius
	if d < 0 {
		return 0
	}
	return d
}

// RayHit intersects the ray with the sphere.
func (s SphereCollider) RayHit(origin, dir Vec3) (float64, bool) {
	if s.ContainsPoint(origin) {
		return 0, true
	}
	oc := origin.Sub(s.Center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		return 0, false
	}
	return t, true
}

// BoxCollider is an axis-aligned box spanning Min to Max.
type BoxCollider struct {
	Min, Max Vec3
}

// ContainsPoint reports whether p lies inside or on the box.
func (b BoxCollider) ContainsPoint(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// DistanceTo returns the distance from p to the box surface, or 0 if p is
// inside.
func (b BoxCollider) DistanceTo(p Vec3) float64 {
	dx := math.Max(math.Max(b.Min.X-p.X, 0), p.X-b.Max.X)
	dy := math.Max(math.Max(b.Min.Y-p.Y, 0), p.Y-b.Max.Y)
	dz := math.Max(math.Max(b.Min.Z-p.Z, 0), p.Z-b.Max.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// RayHit intersects the ray with the box using the slab method.
func (b BoxCollider) RayHit(origin, dir Vec3) (float64, bool) {
	if b.ContainsPoint(origin) {
		return 0, true
	}
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for _, axis := range [3][3]float64{
		{origin.X, dir.X, 0},
		{origin.Y, dir.Y, 1},
		{origin.Z, dir.Z, 2},
	} {
		o, d := axis[0], axis[1]
		var lo, hi float64
		switch axis[2] {
		case 0:
			lo, hi = b.Min.X, b.Max.X
		case 1:
			lo, hi = b.Min.Y, b.Max.Y
		default:
			lo, hi = b.Min.Z, b.Max.Z
		}
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

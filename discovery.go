package grasp

import "sort"

// TargetProvider produces an interactor's candidate interactables each
// frame, ordered nearest-first when a distance metric applies. The core
// requires only this contract; overlap and ray providers ship built in, and
// hosts with their own spatial index (physics broadphase, BVH) can supply
// their own.
//
// The Manager forwards interactable registration changes to every
// registered interactor's provider so candidate caches stay correct.
type TargetProvider interface {
	// ValidTargets appends this frame's candidates to buf and returns it.
	// buf is a reused buffer; implementations must not retain it.
	ValidTargets(in *Interactor, buf []*Interactable) []*Interactable

	// InteractableRegistered notifies the provider of a new interactable.
	InteractableRegistered(x *Interactable)

	// InteractableUnregistered notifies the provider that an interactable
	// left the manager and must not be offered as a candidate again.
	InteractableUnregistered(x *Interactable)
}

// scoredTarget pairs a candidate with its distance for sorting.
type scoredTarget struct {
	target   *Interactable
	distance float64
}

// OverlapProvider discovers targets whose collider lies within Radius of
// the interactor's attach position. Candidates are ordered nearest-first by
// surface distance.
type OverlapProvider struct {
	Radius float64

	candidates []*Interactable
	scored     []scoredTarget // reused scratch
}

// ValidTargets appends every candidate within Radius to buf, nearest first.
func (p *OverlapProvider) ValidTargets(in *Interactor, buf []*Interactable) []*Interactable {
	p.scored = p.scored[:0]
	pos := in.AttachPose.Position
	for _, x := range p.candidates {
		if x.Collider == nil || !x.registered {
			continue
		}
		d := x.Collider.DistanceTo(x.localPoint(pos))
		if d <= p.Radius {
			p.scored = append(p.scored, scoredTarget{target: x, distance: d})
		}
	}
	sortByDistance(p.scored)
	for _, s := range p.scored {
		buf = append(buf, s.target)
	}
	return buf
}

// InteractableRegistered adds x to the candidate pool.
func (p *OverlapProvider) InteractableRegistered(x *Interactable) {
	p.candidates = append(p.candidates, x)
}

// InteractableUnregistered removes x from the candidate pool.
func (p *OverlapProvider) InteractableUnregistered(x *Interactable) {
	p.candidates = removeCandidate(p.candidates, x)
}

// RayProvider discovers targets by casting a ray from the interactor's
// attach position along its forward direction, up to MaxDistance.
// Candidates are ordered by hit distance, nearest first.
type RayProvider struct {
	MaxDistance float64

	candidates []*Interactable
	scored     []scoredTarget
}

// ValidTargets appends every candidate the ray hits to buf, nearest first.
func (p *RayProvider) ValidTargets(in *Interactor, buf []*Interactable) []*Interactable {
	p.scored = p.scored[:0]
	origin := in.AttachPose.Position
	dir := in.AttachPose.Forward()
	for _, x := range p.candidates {
		if x.Collider == nil || !x.registered {
			continue
		}
		lo, ld := x.localRay(origin, dir)
		d, hit := x.Collider.RayHit(lo, ld.Normalized())
		if hit && d <= p.MaxDistance {
			p.scored = append(p.scored, scoredTarget{target: x, distance: d})
		}
	}
	sortByDistance(p.scored)
	for _, s := range p.scored {
		buf = append(buf, s.target)
	}
	return buf
}

// InteractableRegistered adds x to the candidate pool.
func (p *RayProvider) InteractableRegistered(x *Interactable) {
	p.candidates = append(p.candidates, x)
}

// InteractableUnregistered removes x from the candidate pool.
func (p *RayProvider) InteractableUnregistered(x *Interactable) {
	p.candidates = removeCandidate(p.candidates, x)
}

// sortByDistance orders scored targets nearest-first. Stable so that
// equidistant candidates keep registration order, which keeps arbitration
// deterministic.
func sortByDistance(s []scoredTarget) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].distance < s[j].distance
	})
}

// removeCandidate removes x from a candidate slice.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func removeCandidate(s []*Interactable, x *Interactable) []*Interactable {
	for i, c := range s {
		if c == x {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			return s[:len(s)-1]
		}
	}
	return s
}

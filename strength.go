package grasp

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Interaction strength is a continuous [0, 1] value per (interactor,
// interactable) pair: 1 while selected, 0 while merely hovered, unless the
// interactable's StrengthProvider supplies an analog value (poke depth,
// grip pressure). The largest strength observed across all pairs is cached
// on the interactable and surfaced through MaxStrength and the
// OnStrengthChanged callback.

// strengthState tracks one pair's smoothed strength.
type strengthState struct {
	value  float64
	target float64
	tween  *gween.Tween
}

// StrengthFor returns the current (smoothed) strength for the pair, or 0
// if in is neither hovering nor selecting x.
func (x *Interactable) StrengthFor(in *Interactor) float64 {
	st, ok := x.strengths[in.ID]
	if !ok {
		return 0
	}
	return st.value
}

// MaxStrength returns the largest strength currently observed across all
// interactors engaged with this interactable.
func (x *Interactable) MaxStrength() float64 {
	return x.maxStrength
}

// updateStrength recomputes the pair's target strength, advances smoothing,
// and refreshes the cached maximum. Called from the Manager's process phase
// for every engaged pair.
func (x *Interactable) updateStrength(in *Interactor, dt float64) {
	var target float64
	switch {
	case x.StrengthProvider != nil:
		target = clamp01(x.StrengthProvider.Strength(in, x))
	case x.IsSelectedBy(in):
		target = 1
	default:
		target = 0
	}
	target = clamp01(processStrengthChain(&x.strengthFilters, in, x, target))

	if x.strengths == nil {
		x.strengths = make(map[uint32]*strengthState)
	}
	st, ok := x.strengths[in.ID]
	if !ok {
		st = &strengthState{}
		x.strengths[in.ID] = st
	}

	if x.StrengthSmoothing <= 0 {
		st.value = target
		st.target = target
		st.tween = nil
	} else {
		if target != st.target {
			st.target = target
			st.tween = gween.New(float32(st.value), float32(target),
				float32(x.StrengthSmoothing), ease.OutQuad)
		}
		if st.tween != nil {
			v, finished := st.tween.Update(float32(dt))
			st.value = float64(v)
			if finished {
				st.tween = nil
			}
		}
	}

	x.refreshMaxStrength()
}

// pruneStrength drops the pair's strength state once in is neither
// hovering nor selecting x.
func (x *Interactable) pruneStrength(in *Interactor) {
	if x.IsHoveredBy(in) || x.IsSelectedBy(in) {
		return
	}
	delete(x.strengths, in.ID)
	if len(x.strengths) == 0 {
		x.strengths = nil
	}
	x.refreshMaxStrength()
}

// refreshMaxStrength recomputes the cached maximum and fires
// OnStrengthChanged when it moves.
func (x *Interactable) refreshMaxStrength() {
	var max float64
	for _, st := range x.strengths {
		if st.value > max {
			max = st.value
		}
	}
	if max == x.maxStrength {
		return
	}
	x.maxStrength = max
	if x.OnStrengthChanged != nil {
		x.OnStrengthChanged(max)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

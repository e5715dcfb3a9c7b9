package grasp

// HoverFilter vetoes hover candidacy for an (interactor, interactable)
// pair. A chain with zero filters is vacuously "pass".
type HoverFilter interface {
	Process(in *Interactor, x *Interactable) bool
}

// HoverFilterFunc adapts a function to the HoverFilter interface.
// Func-adapted filters are not individually removable (removal compares
// filters with ==, and funcs are not comparable); implement the interface
// on a struct when a filter needs to be removed or reordered later.
type HoverFilterFunc func(in *Interactor, x *Interactable) bool

// Process calls f.
func (f HoverFilterFunc) Process(in *Interactor, x *Interactable) bool {
	return f(in, x)
}

// SelectFilter vetoes select candidacy for an (interactor, interactable)
// pair. A chain with zero filters is vacuously "pass".
type SelectFilter interface {
	Process(in *Interactor, x *Interactable) bool
}

// SelectFilterFunc adapts a function to the SelectFilter interface.
// Not individually removable; see HoverFilterFunc.
type SelectFilterFunc func(in *Interactor, x *Interactable) bool

// Process calls f.
func (f SelectFilterFunc) Process(in *Interactor, x *Interactable) bool {
	return f(in, x)
}

// StrengthFilter post-processes the interaction strength computed for an
// (interactor, interactable) pair. Filters run in chain order, each
// receiving the previous filter's output.
type StrengthFilter interface {
	Process(in *Interactor, x *Interactable, value float64) float64
}

// StrengthFilterFunc adapts a function to the StrengthFilter interface.
// Not individually removable; see HoverFilterFunc.
type StrengthFilterFunc func(in *Interactor, x *Interactable, value float64) float64

// Process calls f.
func (f StrengthFilterFunc) Process(in *Interactor, x *Interactable, value float64) float64 {
	return f(in, x, value)
}

// filterOpKind identifies a buffered mutation on a filter list.
type filterOpKind uint8

const (
	filterOpAdd filterOpKind = iota
	filterOpRemove
)

type filterOp[T comparable] struct {
	kind   filterOpKind
	filter T
}

// filterList is an ordered list of filters supporting buffered mutation:
// additions and removals requested while the list is being processed are
// queued and applied after the pass completes, so processing always sees an
// immutable snapshot. Reorders are disallowed mid-pass.
type filterList[T comparable] struct {
	active     []T
	pending    []filterOp[T]
	processing int // nested processing depth
}

// Add appends filter to the list, or queues the append if a pass is
// running.
func (l *filterList[T]) Add(filter T) {
	if l.processing > 0 {
		l.pending = append(l.pending, filterOp[T]{kind: filterOpAdd, filter: filter})
		return
	}
	l.active = append(l.active, filter)
}

// Remove removes the first occurrence of filter, or queues the removal if
// a pass is running. Returns false if the filter is not present and no
// pass is running.
func (l *filterList[T]) Remove(filter T) bool {
	if l.processing > 0 {
		l.pending = append(l.pending, filterOp[T]{kind: filterOpRemove, filter: filter})
		return true
	}
	return l.removeNow(filter)
}

// MoveTo moves filter to the given index. Ordering operations are
// disallowed while a pass is running; the attempt is rejected.
func (l *filterList[T]) MoveTo(filter T, index int) bool {
	if !assertf(l.processing == 0, "filter reorder during processing pass") {
		return false
	}
	if index < 0 || index >= len(l.active) {
		return false
	}
	old := -1
	for i, f := range l.active {
		if f == filter {
			old = i
			break
		}
	}
	if old < 0 || old == index {
		return old == index
	}
	if old < index {
		copy(l.active[old:], l.active[old+1:index+1])
	} else {
		copy(l.active[index+1:], l.active[index:old])
	}
	l.active[index] = filter
	return true
}

// Len returns the number of filters in the active snapshot.
func (l *filterList[T]) Len() int {
	return len(l.active)
}

// At returns the filter at index i in the active snapshot.
func (l *filterList[T]) At(i int) T {
	return l.active[i]
}

// begin marks the start of a processing pass over the active snapshot.
func (l *filterList[T]) begin() []T {
	l.processing++
	return l.active
}

// end marks the end of a processing pass and, once the outermost pass
// finishes, applies all buffered mutations in request order.
func (l *filterList[T]) end() {
	l.processing--
	if l.processing > 0 || len(l.pending) == 0 {
		return
	}
	for _, op := range l.pending {
		switch op.kind {
		case filterOpAdd:
			l.active = append(l.active, op.filter)
		case filterOpRemove:
			l.removeNow(op.filter)
		}
	}
	l.pending = l.pending[:0]
}

// removeNow removes filter from the active list in place.
// Uses copy+zero to avoid retaining a dangling value in the backing array.
func (l *filterList[T]) removeNow(filter T) bool {
	for i, f := range l.active {
		if f == filter {
			copy(l.active[i:], l.active[i+1:])
			var zero T
			l.active[len(l.active)-1] = zero
			l.active = l.active[:len(l.active)-1]
			return true
		}
	}
	return false
}

// processHoverChain runs a hover filter chain; empty chains pass.
func processHoverChain(l *filterList[HoverFilter], in *Interactor, x *Interactable) bool {
	snapshot := l.begin()
	defer l.end()
	for _, f := range snapshot {
		if !f.Process(in, x) {
			return false
		}
	}
	return true
}

// processSelectChain runs a select filter chain; empty chains pass.
func processSelectChain(l *filterList[SelectFilter], in *Interactor, x *Interactable) bool {
	snapshot := l.begin()
	defer l.end()
	for _, f := range snapshot {
		if !f.Process(in, x) {
			return false
		}
	}
	return true
}

// processStrengthChain runs a strength filter chain over value.
func processStrengthChain(l *filterList[StrengthFilter], in *Interactor, x *Interactable, value float64) float64 {
	snapshot := l.begin()
	defer l.end()
	for _, f := range snapshot {
		value = f.Process(in, x, value)
	}
	return value
}

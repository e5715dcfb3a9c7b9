package grasp

// Interactor is an actor capable of hovering and selecting interactables: a
// virtual hand, a controller ray, a gaze cursor, a socket. A single flat
// struct is used for all interactor kinds; behavior differences come from
// the attached TargetProvider and the logical input configuration.
//
// The hovered and selected sets are insertion-ordered and unique, and are
// mutated only by the Manager; an interactable appears in an interactor's
// selected set if and only if that interactor appears in the interactable's
// selecting set.
type Interactor struct {
	// Identity
	ID         uint32
	Name       string
	Handedness Handedness

	// AttachPose is the interactor's attach transform in world space. The
	// host updates it every frame before Manager.Update; discovery
	// providers query from it and select-enter snapshots it.
	AttachPose Pose

	// Behavior configuration
	TargetPriorityMode      TargetPriorityMode
	KeepSelectedTargetValid bool
	AllowHover              bool
	AllowSelect             bool

	// Logical inputs
	selectInput   LogicalInput
	activateInput LogicalInput

	// Discovery
	provider     TargetProvider
	targetFilter func(in *Interactor, targets []*Interactable) []*Interactable
	validTargets []*Interactable // this frame's candidates, reused buffer

	// State (Manager-owned)
	hovered    []*Interactable
	selected   []*Interactable
	group      *InteractionGroup
	manager    *Manager
	registered bool
	blocked    bool // group denied interaction this frame

	// Filters
	hoverFilters  filterList[HoverFilter]
	selectFilters filterList[SelectFilter]

	// Input injection (inject.go)
	injectQueue []syntheticSignal
	lastInject  syntheticSignal

	// Per-interactor callbacks (nil by default; zero cost when unused)
	OnHoverEntered  func(HoverContext)
	OnHoverExited   func(HoverContext)
	OnSelectEntered func(SelectContext)
	OnSelectExited  func(SelectContext)

	// Metadata
	UserData any
}

// interactorDefaults sets the common default field values shared by all
// constructors.
func interactorDefaults(in *Interactor) {
	in.ID = nextID()
	in.AttachPose = IdentityPose
	in.AllowHover = true
	in.AllowSelect = true
	in.selectInput.mode = TriggerState
	in.activateInput.mode = TriggerState
}

// NewInteractor creates an interactor with no target provider. Attach one
// with SetTargetProvider, or leave it unset for an interactor driven purely
// by explicit Manager.SelectEnter calls (e.g. a socket hand-off).
func NewInteractor(name string) *Interactor {
	in := &Interactor{Name: name}
	interactorDefaults(in)
	return in
}

// NewDirectInteractor creates an interactor that discovers targets by
// overlap: every registered interactable whose collider lies within radius
// of the attach position is a candidate, nearest first.
func NewDirectInteractor(name string, radius float64) *Interactor {
	in := &Interactor{Name: name, provider: &OverlapProvider{Radius: radius}}
	interactorDefaults(in)
	return in
}

// NewRayInteractor creates an interactor that discovers targets by casting
// a ray along the attach pose's forward direction, up to maxDistance.
func NewRayInteractor(name string, maxDistance float64) *Interactor {
	in := &Interactor{Name: name, provider: &RayProvider{MaxDistance: maxDistance}}
	interactorDefaults(in)
	return in
}

// SetTargetProvider replaces the interactor's discovery provider. If the
// interactor is already registered, the new provider is seeded with the
// manager's current interactables.
func (in *Interactor) SetTargetProvider(p TargetProvider) {
	in.provider = p
	if p != nil && in.manager != nil {
		for _, x := range in.manager.interactables {
			p.InteractableRegistered(x)
		}
	}
}

// TargetProvider returns the interactor's discovery provider, or nil.
func (in *Interactor) TargetProvider() TargetProvider {
	return in.provider
}

// SetTargetFilter sets an optional post-discovery hook that may reorder or
// prune the candidate list before arbitration. The slice passed in is owned
// by the interactor; the filter may mutate and return it.
func (in *Interactor) SetTargetFilter(fn func(in *Interactor, targets []*Interactable) []*Interactable) {
	in.targetFilter = fn
}

// SelectInput returns the logical input driving selection.
func (in *Interactor) SelectInput() *LogicalInput {
	return &in.selectInput
}

// ActivateInput returns the logical input driving activation of selected
// interactables.
func (in *Interactor) ActivateInput() *LogicalInput {
	return &in.activateInput
}

// SetSelectPressed feeds the raw select signal for this frame.
// Call once per frame before Manager.Update. Injected signals, if queued,
// take precedence during preprocess.
func (in *Interactor) SetSelectPressed(pressed bool) {
	in.selectInput.SetPressed(pressed)
}

// SetActivatePressed feeds the raw activate signal for this frame.
func (in *Interactor) SetActivatePressed(pressed bool) {
	in.activateInput.SetPressed(pressed)
}

// CanHover reports whether this interactor is currently willing to hover x:
// it allows hovering, it is registered, and every hover filter passes.
func (in *Interactor) CanHover(x *Interactable) bool {
	if !in.AllowHover || !in.registered {
		return false
	}
	return processHoverChain(&in.hoverFilters, in, x)
}

// CanSelect reports whether this interactor is currently willing to select
// x: it allows selecting, its logical select input is active, and every
// select filter passes.
func (in *Interactor) CanSelect(x *Interactable) bool {
	if !in.AllowSelect || !in.registered || !in.selectInput.active {
		return false
	}
	return processSelectChain(&in.selectFilters, in, x)
}

// IsHovering reports whether x is in the hovered set.
func (in *Interactor) IsHovering(x *Interactable) bool {
	for _, h := range in.hovered {
		if h == x {
			return true
		}
	}
	return false
}

// IsSelecting reports whether x is in the selected set.
func (in *Interactor) IsSelecting(x *Interactable) bool {
	for _, s := range in.selected {
		if s == x {
			return true
		}
	}
	return false
}

// HoveredInteractables returns the hovered set in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (in *Interactor) HoveredInteractables() []*Interactable {
	return in.hovered
}

// SelectedInteractables returns the selected set in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (in *Interactor) SelectedInteractables() []*Interactable {
	return in.selected
}

// FirstHovered returns the oldest member of the hovered set, or nil. It
// stays stable while other hovers come and go.
func (in *Interactor) FirstHovered() *Interactable {
	if len(in.hovered) == 0 {
		return nil
	}
	return in.hovered[0]
}

// FirstSelected returns the oldest member of the selected set, or nil.
func (in *Interactor) FirstSelected() *Interactable {
	if len(in.selected) == 0 {
		return nil
	}
	return in.selected[0]
}

// ContainingGroup returns the group this interactor belongs to, or nil.
// Set and cleared exclusively by InteractionGroup.AddMember/RemoveMember.
func (in *Interactor) ContainingGroup() *InteractionGroup {
	return in.group
}

// ValidTargets returns this frame's discovered candidates, nearest first.
// Only meaningful between preprocess and the end of Manager.Update.
// The returned slice MUST NOT be mutated by the caller.
func (in *Interactor) ValidTargets() []*Interactable {
	return in.validTargets
}

// AddHoverFilter appends a hover filter to this interactor's chain.
// Mutations requested during a filter pass are applied after the pass.
func (in *Interactor) AddHoverFilter(f HoverFilter) {
	in.hoverFilters.Add(f)
}

// RemoveHoverFilter removes a hover filter from this interactor's chain.
func (in *Interactor) RemoveHoverFilter(f HoverFilter) bool {
	return in.hoverFilters.Remove(f)
}

// MoveHoverFilterTo moves a hover filter to the given chain index.
// Rejected while the chain is being processed.
func (in *Interactor) MoveHoverFilterTo(f HoverFilter, index int) bool {
	return in.hoverFilters.MoveTo(f, index)
}

// AddSelectFilter appends a select filter to this interactor's chain.
func (in *Interactor) AddSelectFilter(f SelectFilter) {
	in.selectFilters.Add(f)
}

// RemoveSelectFilter removes a select filter from this interactor's chain.
func (in *Interactor) RemoveSelectFilter(f SelectFilter) bool {
	return in.selectFilters.Remove(f)
}

// MoveSelectFilterTo moves a select filter to the given chain index.
// Rejected while the chain is being processed.
func (in *Interactor) MoveSelectFilterTo(f SelectFilter, index int) bool {
	return in.selectFilters.MoveTo(f, index)
}

// preprocess samples input and runs target discovery for this frame.
func (in *Interactor) preprocess() {
	in.consumeInjected()

	in.validTargets = in.validTargets[:0]
	if in.provider != nil {
		in.validTargets = in.provider.ValidTargets(in, in.validTargets)
	}
	if in.targetFilter != nil {
		in.validTargets = in.targetFilter(in, in.validTargets)
	}
	// Drop candidates that were unregistered after discovery caches were
	// built; stale references are filtered, not errors.
	kept := in.validTargets[:0]
	for _, x := range in.validTargets {
		if x != nil && x.registered {
			kept = append(kept, x)
		}
	}
	in.validTargets = kept
}

// hasValidTarget reports whether x is in this frame's candidate list.
func (in *Interactor) hasValidTarget(x *Interactable) bool {
	for _, t := range in.validTargets {
		if t == x {
			return true
		}
	}
	return false
}

// canInteractThisFrame reports whether the interactor could plausibly hover
// or select something this frame: it has valid targets it may act on, or it
// still validly holds an existing selection. Groups use this to decide
// whether the previously active member keeps the initiative.
func (in *Interactor) canInteractThisFrame() bool {
	for _, x := range in.validTargets {
		if (in.CanSelect(x) && x.IsSelectableBy(in)) ||
			(in.CanHover(x) && x.IsHoverableBy(in)) {
			return true
		}
	}
	for _, x := range in.selected {
		if in.CanSelect(x) && x.IsSelectableBy(in) &&
			(in.KeepSelectedTargetValid || in.hasValidTarget(x)) {
			return true
		}
	}
	return false
}

// removeHovered removes x from the hovered set.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (in *Interactor) removeHovered(x *Interactable) {
	for i, h := range in.hovered {
		if h == x {
			copy(in.hovered[i:], in.hovered[i+1:])
			in.hovered[len(in.hovered)-1] = nil
			in.hovered = in.hovered[:len(in.hovered)-1]
			break
		}
	}
}

// removeSelected removes x from the selected set.
func (in *Interactor) removeSelected(x *Interactable) {
	for i, s := range in.selected {
		if s == x {
			copy(in.selected[i:], in.selected[i+1:])
			in.selected[len(in.selected)-1] = nil
			in.selected = in.selected[:len(in.selected)-1]
			break
		}
	}
}

package grasp

// StrengthProvider supplies a continuous interaction strength in [0, 1] for
// a pair, e.g. poke depth or grip pressure. When an interactable has one,
// it replaces the default 1-if-selected / 0-if-hovered step value.
type StrengthProvider interface {
	Strength(in *Interactor, x *Interactable) float64
}

// capturedPose is the attach snapshot taken at select-enter: the
// interactor's attach pose in world space and in the interactable's local
// frame.
type capturedPose struct {
	world Pose
	local Pose
}

// Interactable is a target entity that can be hovered or selected. The
// hovering and selecting sets are insertion-ordered and unique, and are
// mutated only by the Manager, mirroring the interactor-side sets.
type Interactable struct {
	// Identity
	ID   uint32
	Name string

	// Pose is the interactable's world transform. Colliders are expressed
	// in this local frame, and attach poses are captured relative to it.
	Pose Pose

	// Collider is the surface used by the built-in discovery providers.
	// Interactables without a collider are invisible to overlap and ray
	// providers but can still be selected explicitly.
	Collider Collider

	// Behavior configuration
	SelectMode SelectMode
	FocusMode  FocusMode
	Hoverable  bool
	Selectable bool

	// StrengthProvider optionally supplies a continuous strength value.
	StrengthProvider StrengthProvider

	// StrengthSmoothing, when positive, eases the per-pair strength toward
	// its target over this many seconds instead of stepping.
	StrengthSmoothing float64

	// State (Manager-owned)
	hoverers    []*Interactor
	selectors   []*Interactor
	attachPoses map[uint32]capturedPose // keyed by interactor ID
	strengths   map[uint32]*strengthState
	maxStrength float64
	focusGroup  *InteractionGroup
	manager     *Manager
	registered  bool

	// Filters
	hoverFilters    filterList[HoverFilter]
	selectFilters   filterList[SelectFilter]
	strengthFilters filterList[StrengthFilter]

	// Per-interactable callbacks (nil by default; zero cost when unused)
	OnHoverEntered    func(HoverContext)
	OnHoverExited     func(HoverContext)
	OnSelectEntered   func(SelectContext)
	OnSelectExited    func(SelectContext)
	OnFocusEntered    func(FocusContext)
	OnFocusExited     func(FocusContext)
	OnActivated       func(ActivateContext)
	OnDeactivated     func(ActivateContext)
	OnStrengthChanged func(float64) // fires when MaxStrength changes

	// Metadata
	UserData any

	activeBy map[uint32]bool // interactor IDs whose activate input is live
}

// NewInteractable creates an interactable that is hoverable and selectable,
// in single-select mode, with no focus participation.
func NewInteractable(name string) *Interactable {
	return &Interactable{
		ID:         nextID(),
		Name:       name,
		Pose:       IdentityPose,
		Hoverable:  true,
		Selectable: true,
	}
}

// IsHoverableBy reports whether in may hover this interactable: it is
// hoverable, registered, and every hover filter passes.
func (x *Interactable) IsHoverableBy(in *Interactor) bool {
	if !x.Hoverable || !x.registered {
		return false
	}
	return processHoverChain(&x.hoverFilters, in, x)
}

// IsSelectableBy reports whether in may select this interactable. An
// interactor already selecting it is always allowed (so an in-progress
// selection is not invalidated by its own presence). For SelectModeSingle,
// any other current selector makes the answer false: frame arbitration
// never steals a single-select interactable; only an explicit
// Manager.SelectEnter can force a hand-off.
func (x *Interactable) IsSelectableBy(in *Interactor) bool {
	if !x.Selectable || !x.registered {
		return false
	}
	if x.IsSelectedBy(in) {
		return true
	}
	if x.SelectMode == SelectModeSingle && len(x.selectors) > 0 {
		return false
	}
	return processSelectChain(&x.selectFilters, in, x)
}

// selectableIgnoringExclusivity is IsSelectableBy without the single-select
// occupancy check. Group override resolution uses it to ask "could in select
// this if the current holder released it" — the holder is about to be
// forcibly cleared, so its occupancy must not veto the probe.
func (x *Interactable) selectableIgnoringExclusivity(in *Interactor) bool {
	if !x.Selectable || !x.registered {
		return false
	}
	return processSelectChain(&x.selectFilters, in, x)
}

// IsHoveredBy reports whether in is in the hovering set.
func (x *Interactable) IsHoveredBy(in *Interactor) bool {
	for _, h := range x.hoverers {
		if h == in {
			return true
		}
	}
	return false
}

// IsSelectedBy reports whether in is in the selecting set.
func (x *Interactable) IsSelectedBy(in *Interactor) bool {
	for _, s := range x.selectors {
		if s == in {
			return true
		}
	}
	return false
}

// InteractorsHovering returns the hovering set in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (x *Interactable) InteractorsHovering() []*Interactor {
	return x.hoverers
}

// InteractorsSelecting returns the selecting set in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (x *Interactable) InteractorsSelecting() []*Interactor {
	return x.selectors
}

// FirstInteractorSelecting returns the oldest member of the selecting set,
// or nil.
func (x *Interactable) FirstInteractorSelecting() *Interactor {
	if len(x.selectors) == 0 {
		return nil
	}
	return x.selectors[0]
}

// IsSelected reports whether any interactor is selecting this interactable.
func (x *Interactable) IsSelected() bool {
	return len(x.selectors) > 0
}

// IsHovered reports whether any interactor is hovering this interactable.
func (x *Interactable) IsHovered() bool {
	return len(x.hoverers) > 0
}

// FocusingGroup returns the group currently holding focus on this
// interactable, or nil.
func (x *Interactable) FocusingGroup() *InteractionGroup {
	return x.focusGroup
}

// AttachPoseFor returns the attach pose captured when in select-entered
// this interactable: world space and local to the interactable's pose at
// capture time. ok is false if in is not currently selecting.
func (x *Interactable) AttachPoseFor(in *Interactor) (world, local Pose, ok bool) {
	cp, found := x.attachPoses[in.ID]
	if !found {
		return IdentityPose, IdentityPose, false
	}
	return cp.world, cp.local, true
}

// AddHoverFilter appends a hover filter to this interactable's chain.
// Mutations requested during a filter pass are applied after the pass.
func (x *Interactable) AddHoverFilter(f HoverFilter) {
	x.hoverFilters.Add(f)
}

// RemoveHoverFilter removes a hover filter from this interactable's chain.
func (x *Interactable) RemoveHoverFilter(f HoverFilter) bool {
	return x.hoverFilters.Remove(f)
}

// AddSelectFilter appends a select filter to this interactable's chain.
func (x *Interactable) AddSelectFilter(f SelectFilter) {
	x.selectFilters.Add(f)
}

// RemoveSelectFilter removes a select filter from this interactable's chain.
func (x *Interactable) RemoveSelectFilter(f SelectFilter) bool {
	return x.selectFilters.Remove(f)
}

// AddStrengthFilter appends a strength filter to this interactable's chain.
func (x *Interactable) AddStrengthFilter(f StrengthFilter) {
	x.strengthFilters.Add(f)
}

// RemoveStrengthFilter removes a strength filter from this interactable's chain.
func (x *Interactable) RemoveStrengthFilter(f StrengthFilter) bool {
	return x.strengthFilters.Remove(f)
}

// capturePose snapshots in's attach pose at select-enter time.
func (x *Interactable) capturePose(in *Interactor) capturedPose {
	if x.attachPoses == nil {
		x.attachPoses = make(map[uint32]capturedPose)
	}
	cp := capturedPose{
		world: in.AttachPose,
		local: x.Pose.Inverse().Mul(in.AttachPose),
	}
	x.attachPoses[in.ID] = cp
	return cp
}

// prunePose drops in's captured pose. The whole cache is released when the
// selecting set becomes empty.
func (x *Interactable) prunePose(in *Interactor) {
	delete(x.attachPoses, in.ID)
	if len(x.selectors) == 0 {
		x.attachPoses = nil
	}
}

// removeHoverer removes in from the hovering set.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (x *Interactable) removeHoverer(in *Interactor) {
	for i, h := range x.hoverers {
		if h == in {
			copy(x.hoverers[i:], x.hoverers[i+1:])
			x.hoverers[len(x.hoverers)-1] = nil
			x.hoverers = x.hoverers[:len(x.hoverers)-1]
			break
		}
	}
}

// removeSelector removes in from the selecting set.
func (x *Interactable) removeSelector(in *Interactor) {
	for i, s := range x.selectors {
		if s == in {
			copy(x.selectors[i:], x.selectors[i+1:])
			x.selectors[len(x.selectors)-1] = nil
			x.selectors = x.selectors[:len(x.selectors)-1]
			break
		}
	}
}

// localPoint converts a world-space point into the interactable's local
// frame for collider queries.
func (x *Interactable) localPoint(p Vec3) Vec3 {
	return x.Pose.Inverse().TransformPoint(p)
}

// localRay converts a world-space ray into the interactable's local frame.
func (x *Interactable) localRay(origin, dir Vec3) (Vec3, Vec3) {
	inv := x.Pose.Inverse()
	return inv.TransformPoint(origin), inv.Rotation.Rotate(dir)
}

package grasp

import "time"

// Manager is the central arbiter. It owns the registry of interactors,
// interactables, and groups, and runs the per-frame arbitration pass:
//
//	preprocess → group arbitration → clear stale → commit new → process
//
// All clearing for every interactor completes before any new selection or
// hover commits (a global two-pass barrier), so arbitration decisions for
// one interactor never observe half-updated state of another.
//
// Registration changes requested during a pass are buffered and flushed at
// the start of the next pass, so iteration never invalidates.
type Manager struct {
	interactors   []*Interactor
	interactables []*Interactable
	groups        []*InteractionGroup

	pending []pendingOp
	inPass  bool

	handlers   handlerRegistry
	store      EntityStore
	testRunner *TestRunner
	debug      bool
	stats      *passStats // non-nil only during a debug-mode pass

	scratch []*Interactable // reused per-interactor snapshot buffer
	allowed []*Interactable // reused allowed-hover buffer
}

type pendingOpKind uint8

const (
	opRegisterInteractor pendingOpKind = iota
	opUnregisterInteractor
	opRegisterInteractable
	opUnregisterInteractable
	opRegisterGroup
	opUnregisterGroup
)

type pendingOp struct {
	kind pendingOpKind
	in   *Interactor
	x    *Interactable
	g    *InteractionGroup
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetEntityStore sets the optional ECS bridge. Every interaction event is
// forwarded to the store after its public callbacks have fired.
func (m *Manager) SetEntityStore(store EntityStore) {
	m.store = store
}

// --- Registration ---

// RegisterInteractor adds an interactor to the registry. During a pass the
// registration is buffered and applied at the start of the next pass.
// Registering an already-registered interactor is a warned no-op.
func (m *Manager) RegisterInteractor(in *Interactor) {
	if m.inPass {
		m.pending = append(m.pending, pendingOp{kind: opRegisterInteractor, in: in})
		return
	}
	m.registerInteractor(in)
}

// UnregisterInteractor removes an interactor, exiting any interactions it
// still holds. During a pass the removal is buffered; until it applies the
// interactor is treated as registered.
func (m *Manager) UnregisterInteractor(in *Interactor) {
	if m.inPass {
		m.pending = append(m.pending, pendingOp{kind: opUnregisterInteractor, in: in})
		return
	}
	m.unregisterInteractor(in)
}

// RegisterInteractable adds an interactable to the registry and notifies
// every registered interactor's discovery provider.
func (m *Manager) RegisterInteractable(x *Interactable) {
	if m.inPass {
		m.pending = append(m.pending, pendingOp{kind: opRegisterInteractable, x: x})
		return
	}
	m.registerInteractable(x)
}

// UnregisterInteractable removes an interactable, exiting any interactions
// on it and dropping it from provider candidate caches. Candidates already
// discovered this frame are silently skipped, not errors.
func (m *Manager) UnregisterInteractable(x *Interactable) {
	if m.inPass {
		m.pending = append(m.pending, pendingOp{kind: opUnregisterInteractable, x: x})
		return
	}
	m.unregisterInteractable(x)
}

// RegisterGroup adds a group. Only top-level groups (those not nested in
// another group) drive arbitration directly; nested groups are resolved
// recursively through their parent.
func (m *Manager) RegisterGroup(g *InteractionGroup) {
	if m.inPass {
		m.pending = append(m.pending, pendingOp{kind: opRegisterGroup, g: g})
		return
	}
	m.registerGroup(g)
}

// UnregisterGroup removes a group from arbitration. Its members stay
// registered with the manager and resume ungrouped interaction.
func (m *Manager) UnregisterGroup(g *InteractionGroup) {
	if m.inPass {
		m.pending = append(m.pending, pendingOp{kind: opUnregisterGroup, g: g})
		return
	}
	m.unregisterGroup(g)
}

func (m *Manager) registerInteractor(in *Interactor) {
	if in == nil || in.registered {
		warnf("interactor already registered or nil; ignored")
		return
	}
	in.manager = m
	in.registered = true
	m.interactors = append(m.interactors, in)
	if in.provider != nil {
		for _, x := range m.interactables {
			in.provider.InteractableRegistered(x)
		}
	}
}

func (m *Manager) unregisterInteractor(in *Interactor) {
	if in == nil || !in.registered || in.manager != m {
		return
	}
	m.clearAllInteractions(in)
	for i, v := range m.interactors {
		if v == in {
			copy(m.interactors[i:], m.interactors[i+1:])
			m.interactors[len(m.interactors)-1] = nil
			m.interactors = m.interactors[:len(m.interactors)-1]
			break
		}
	}
	in.registered = false
	in.manager = nil
	in.validTargets = in.validTargets[:0]
}

func (m *Manager) registerInteractable(x *Interactable) {
	if x == nil || x.registered {
		warnf("interactable already registered or nil; ignored")
		return
	}
	x.manager = m
	x.registered = true
	m.interactables = append(m.interactables, x)
	for _, in := range m.interactors {
		if in.provider != nil {
			in.provider.InteractableRegistered(x)
		}
	}
}

func (m *Manager) unregisterInteractable(x *Interactable) {
	if x == nil || !x.registered || x.manager != m {
		return
	}
	for len(x.selectors) > 0 {
		m.SelectExit(x.selectors[0], x)
	}
	for len(x.hoverers) > 0 {
		m.HoverExit(x.hoverers[0], x)
	}
	m.focusExit(x)
	for _, in := range m.interactors {
		if in.provider != nil {
			in.provider.InteractableUnregistered(x)
		}
	}
	for i, v := range m.interactables {
		if v == x {
			copy(m.interactables[i:], m.interactables[i+1:])
			m.interactables[len(m.interactables)-1] = nil
			m.interactables = m.interactables[:len(m.interactables)-1]
			break
		}
	}
	x.registered = false
	x.manager = nil
}

func (m *Manager) registerGroup(g *InteractionGroup) {
	if g == nil || g.registered {
		warnf("group already registered or nil; ignored")
		return
	}
	g.manager = m
	g.registered = true
	m.groups = append(m.groups, g)
}

func (m *Manager) unregisterGroup(g *InteractionGroup) {
	if g == nil || !g.registered || g.manager != m {
		return
	}
	if g.focused != nil {
		m.focusExit(g.focused)
	}
	for i, v := range m.groups {
		if v == g {
			copy(m.groups[i:], m.groups[i+1:])
			m.groups[len(m.groups)-1] = nil
			m.groups = m.groups[:len(m.groups)-1]
			break
		}
	}
	g.registered = false
	g.manager = nil
}

// flushPending applies buffered registration changes in request order.
func (m *Manager) flushPending() {
	for _, op := range m.pending {
		switch op.kind {
		case opRegisterInteractor:
			m.registerInteractor(op.in)
		case opUnregisterInteractor:
			m.unregisterInteractor(op.in)
		case opRegisterInteractable:
			m.registerInteractable(op.x)
		case opUnregisterInteractable:
			m.unregisterInteractable(op.x)
		case opRegisterGroup:
			m.registerGroup(op.g)
		case opUnregisterGroup:
			m.unregisterGroup(op.g)
		}
	}
	m.pending = m.pending[:0]
}

// Interactors returns the registered interactors in registration order.
// The returned slice MUST NOT be mutated by the caller.
func (m *Manager) Interactors() []*Interactor {
	return m.interactors
}

// Interactables returns the registered interactables in registration order.
// The returned slice MUST NOT be mutated by the caller.
func (m *Manager) Interactables() []*Interactable {
	return m.interactables
}

// FindInteractor returns the first registered interactor with the given
// name, or nil.
func (m *Manager) FindInteractor(name string) *Interactor {
	for _, in := range m.interactors {
		if in.Name == name {
			return in
		}
	}
	return nil
}

// FindInteractable returns the first registered interactable with the
// given name, or nil.
func (m *Manager) FindInteractable(name string) *Interactable {
	for _, x := range m.interactables {
		if x.Name == name {
			return x
		}
	}
	return nil
}

// --- The per-frame pass ---

// Update runs one full arbitration pass. dt is the frame delta in seconds,
// used for strength smoothing. Call once per frame after feeding input and
// updating attach poses.
func (m *Manager) Update(dt float64) {
	if m.testRunner != nil {
		m.testRunner.step(m)
	}
	m.flushPending()
	m.inPass = true

	var stats passStats
	var t0 time.Time
	if m.debug {
		m.stats = &stats
		t0 = time.Now()
	}

	// Preprocess: input sampling and target discovery for every
	// interactor, before any cross-interactor arbitration.
	for _, in := range m.interactors {
		in.blocked = false
		in.preprocess()
	}
	if m.debug {
		stats.preprocessTime = time.Since(t0)
		t0 = time.Now()
	}

	// Group arbitration: each top-level group grants one member the
	// initiative and forcibly clears the rest.
	for _, g := range m.groups {
		if g.group == nil {
			g.resolve(m, nil)
		}
	}
	if m.debug {
		stats.groupTime = time.Since(t0)
		t0 = time.Now()
	}

	// Clear pass: stale selections and hovers removed for all interactors
	// before any commits.
	for _, in := range m.interactors {
		if in.blocked {
			continue
		}
		m.clearInvalidSelections(in)
		m.clearInvalidHovers(in)
	}
	if m.debug {
		stats.clearTime = time.Since(t0)
		t0 = time.Now()
	}

	// Commit pass.
	for _, in := range m.interactors {
		if in.blocked {
			continue
		}
		m.commitSelections(in)
		m.commitHovers(in)
	}
	if m.debug {
		stats.commitTime = time.Since(t0)
		t0 = time.Now()
	}

	// Process: selection-latch refresh, activation events, strength.
	for _, in := range m.interactors {
		in.selectInput.setHasSelection(len(in.selected) > 0)
		m.processActivation(in)
	}
	for _, x := range m.interactables {
		m.processStrength(x, dt)
	}

	// Record which member of each group actually interacted; it gets the
	// initiative next frame.
	for _, g := range m.groups {
		if g.group == nil {
			g.recordActive()
		}
	}

	for _, in := range m.interactors {
		in.selectInput.endFrame()
		in.activateInput.endFrame()
	}
	if m.debug {
		stats.processTime = time.Since(t0)
	}
	m.inPass = false
	m.stats = nil
	m.debugLog(stats)
}

// clearInvalidSelections exits any selection that is no longer mutually
// valid, or — unless the interactor keeps valid selections sticky — that
// is no longer among this frame's discovered targets.
func (m *Manager) clearInvalidSelections(in *Interactor) {
	m.scratch = append(m.scratch[:0], in.selected...)
	for _, x := range m.scratch {
		if !in.CanSelect(x) || !x.IsSelectableBy(in) {
			m.SelectExit(in, x)
			continue
		}
		if !in.KeepSelectedTargetValid && !in.hasValidTarget(x) {
			m.SelectExit(in, x)
		}
	}
}

// clearInvalidHovers exits any hover not in the interactor's allowed hover
// set this frame. Hover has no keep-valid exception: leaving the target
// list always clears it.
func (m *Manager) clearInvalidHovers(in *Interactor) {
	m.allowed = m.allowedHovers(in, m.allowed)
	m.scratch = append(m.scratch[:0], in.hovered...)
	for _, x := range m.scratch {
		ok := false
		for _, a := range m.allowed {
			if a == x {
				ok = true
				break
			}
		}
		if !ok {
			m.HoverExit(in, x)
		}
	}
}

// commitSelections enters a selection for every discovered target the pair
// mutually allows, in nearest-first order.
func (m *Manager) commitSelections(in *Interactor) {
	m.scratch = append(m.scratch[:0], in.validTargets...)
	for _, x := range m.scratch {
		if !x.registered || in.IsSelecting(x) {
			continue
		}
		if in.CanSelect(x) && x.IsSelectableBy(in) {
			m.SelectEnter(in, x)
		}
	}
}

// commitHovers enters a hover for every allowed hover target not already
// hovered.
func (m *Manager) commitHovers(in *Interactor) {
	m.allowed = m.allowedHovers(in, m.allowed)
	m.scratch = append(m.scratch[:0], m.allowed...)
	for _, x := range m.scratch {
		if x.registered && !in.IsHovering(x) {
			m.HoverEnter(in, x)
		}
	}
}

// allowedHovers computes the targets the interactor may hover this frame
// under its TargetPriorityMode, in discovery order.
func (m *Manager) allowedHovers(in *Interactor, buf []*Interactable) []*Interactable {
	buf = buf[:0]
	if in.TargetPriorityMode == TargetPriorityNone {
		return buf
	}
	for _, x := range in.validTargets {
		if in.CanHover(x) && x.IsHoverableBy(in) {
			buf = append(buf, x)
			if in.TargetPriorityMode == TargetPriorityHighestOnly {
				break
			}
		}
	}
	return buf
}

// clearAllInteractions force-exits everything the interactor holds. Used
// by group blocking and unregistration.
func (m *Manager) clearAllInteractions(in *Interactor) {
	for len(in.selected) > 0 {
		m.SelectExit(in, in.selected[0])
	}
	for len(in.hovered) > 0 {
		m.HoverExit(in, in.hovered[0])
	}
}

// processActivation fires activate/deactivate on each selected
// interactable as the interactor's activate input goes live or dead.
func (m *Manager) processActivation(in *Interactor) {
	active := in.activateInput.active
	for _, x := range in.selected {
		was := x.activeBy[in.ID]
		if active && !was {
			if x.activeBy == nil {
				x.activeBy = make(map[uint32]bool)
			}
			x.activeBy[in.ID] = true
			m.fireActivate(in, x, true)
		} else if !active && was {
			delete(x.activeBy, in.ID)
			m.fireActivate(in, x, false)
		}
	}
}

// processStrength updates strength for every pair engaged with x.
func (m *Manager) processStrength(x *Interactable, dt float64) {
	for _, in := range x.hoverers {
		x.updateStrength(in, dt)
	}
	for _, in := range x.selectors {
		if !x.IsHoveredBy(in) {
			x.updateStrength(in, dt)
		}
	}
}

// --- Two-phase transitions ---

// SelectEnter makes in select x. State on both sides is fully updated (the
// "entering" phase) before any public callback fires (the "entered"
// phase). For SelectModeSingle interactables, any other current selector
// is exited first — exit-before-enter is mandatory, so the interactable
// never has two exclusive owners even transiently.
//
// Selecting a pair that is already selecting is an invariant violation:
// panic in debug mode, warned no-op in release. Returns true if the
// selection was entered.
func (m *Manager) SelectEnter(in *Interactor, x *Interactable) bool {
	if !assertf(in != nil && x != nil, "select enter with nil entity") {
		return false
	}
	if !assertf(in.registered && x.registered,
		"select enter with unregistered entity: %q -> %q", in.Name, x.Name) {
		return false
	}
	if !assertf(!in.IsSelecting(x),
		"duplicate select enter: %q -> %q", in.Name, x.Name) {
		return false
	}

	if x.SelectMode == SelectModeSingle {
		for len(x.selectors) > 0 {
			m.SelectExit(x.selectors[0], x)
		}
	}

	// Entering: mutate both sides, capture the attach pose.
	in.selected = append(in.selected, x)
	x.selectors = append(x.selectors, in)
	cp := x.capturePose(in)
	m.focusEnter(in, x)
	if m.stats != nil {
		m.stats.selectEnters++
	}

	// Entered: fire public callbacks, per-entity first, then manager
	// listeners in registration order, then the ECS bridge.
	ctx := SelectContext{
		Interactor:   in,
		Interactable: x,
		Manager:      m,
		WorldPose:    cp.world,
		LocalPose:    cp.local,
	}
	if in.OnSelectEntered != nil {
		in.OnSelectEntered(ctx)
	}
	if x.OnSelectEntered != nil {
		x.OnSelectEntered(ctx)
	}
	for _, h := range m.handlers.selectEnter {
		h.fn(ctx)
	}
	m.emit(InteractionEvent{
		Type:           EventSelectEnter,
		InteractorID:   in.ID,
		InteractableID: x.ID,
		WorldPose:      cp.world,
		Strength:       x.StrengthFor(in),
	})
	return true
}

// SelectExit makes in stop selecting x. State is fully updated (the
// "exiting" phase) before any public callback fires (the "exited" phase).
// Exiting a pair that is not selecting is an invariant violation: panic in
// debug mode, warned no-op in release.
func (m *Manager) SelectExit(in *Interactor, x *Interactable) bool {
	if !assertf(in != nil && x != nil, "select exit with nil entity") {
		return false
	}
	if !assertf(in.IsSelecting(x),
		"select exit without selection: %q -> %q", in.Name, x.Name) {
		return false
	}

	// A live activation ends before the selection does.
	if x.activeBy[in.ID] {
		delete(x.activeBy, in.ID)
		m.fireActivate(in, x, false)
	}

	// Exiting: mutate both sides, prune the attach pose.
	cp := x.attachPoses[in.ID]
	in.removeSelected(x)
	x.removeSelector(in)
	x.prunePose(in)
	x.pruneStrength(in)
	if m.stats != nil {
		m.stats.selectExits++
	}

	// Exited: fire public callbacks.
	ctx := SelectContext{
		Interactor:   in,
		Interactable: x,
		Manager:      m,
		WorldPose:    cp.world,
		LocalPose:    cp.local,
	}
	if in.OnSelectExited != nil {
		in.OnSelectExited(ctx)
	}
	if x.OnSelectExited != nil {
		x.OnSelectExited(ctx)
	}
	for _, h := range m.handlers.selectExit {
		h.fn(ctx)
	}
	m.emit(InteractionEvent{
		Type:           EventSelectExit,
		InteractorID:   in.ID,
		InteractableID: x.ID,
		WorldPose:      cp.world,
	})
	return true
}

// HoverEnter makes in hover x. Two-phase like SelectEnter.
func (m *Manager) HoverEnter(in *Interactor, x *Interactable) bool {
	if !assertf(in != nil && x != nil, "hover enter with nil entity") {
		return false
	}
	if !assertf(in.registered && x.registered,
		"hover enter with unregistered entity: %q -> %q", in.Name, x.Name) {
		return false
	}
	if !assertf(!in.IsHovering(x),
		"duplicate hover enter: %q -> %q", in.Name, x.Name) {
		return false
	}

	in.hovered = append(in.hovered, x)
	x.hoverers = append(x.hoverers, in)
	if m.stats != nil {
		m.stats.hoverEnters++
	}

	ctx := HoverContext{Interactor: in, Interactable: x, Manager: m}
	if in.OnHoverEntered != nil {
		in.OnHoverEntered(ctx)
	}
	if x.OnHoverEntered != nil {
		x.OnHoverEntered(ctx)
	}
	for _, h := range m.handlers.hoverEnter {
		h.fn(ctx)
	}
	m.emit(InteractionEvent{
		Type:           EventHoverEnter,
		InteractorID:   in.ID,
		InteractableID: x.ID,
		Strength:       x.StrengthFor(in),
	})
	return true
}

// HoverExit makes in stop hovering x. Two-phase like SelectExit.
func (m *Manager) HoverExit(in *Interactor, x *Interactable) bool {
	if !assertf(in != nil && x != nil, "hover exit with nil entity") {
		return false
	}
	if !assertf(in.IsHovering(x),
		"hover exit without hover: %q -> %q", in.Name, x.Name) {
		return false
	}

	in.removeHovered(x)
	x.removeHoverer(in)
	x.pruneStrength(in)
	if m.stats != nil {
		m.stats.hoverExits++
	}

	ctx := HoverContext{Interactor: in, Interactable: x, Manager: m}
	if in.OnHoverExited != nil {
		in.OnHoverExited(ctx)
	}
	if x.OnHoverExited != nil {
		x.OnHoverExited(ctx)
	}
	for _, h := range m.handlers.hoverExit {
		h.fn(ctx)
	}
	m.emit(InteractionEvent{
		Type:           EventHoverExit,
		InteractorID:   in.ID,
		InteractableID: x.ID,
	})
	return true
}

// --- Focus ---

// focusEnter moves group focus to x when in select-enters it. Interactors
// outside any group, and interactables with FocusModeNone, do not
// participate in focus. A group focuses one interactable at a time: its
// previous focus is exited before the new one enters.
func (m *Manager) focusEnter(in *Interactor, x *Interactable) {
	if x.FocusMode == FocusModeNone {
		return
	}
	g := topGroup(in)
	if g == nil || x.focusGroup == g {
		return
	}
	if x.focusGroup != nil {
		m.focusExit(x)
	}
	if g.focused != nil {
		m.focusExit(g.focused)
	}
	x.focusGroup = g
	g.focused = x

	ctx := FocusContext{Group: g, Interactable: x, Manager: m}
	if x.OnFocusEntered != nil {
		x.OnFocusEntered(ctx)
	}
	for _, h := range m.handlers.focusEnter {
		h.fn(ctx)
	}
	m.emit(InteractionEvent{
		Type:           EventFocusEnter,
		InteractableID: x.ID,
		GroupID:        g.ID,
	})
}

// focusExit drops x's focus, if any. Focus persists after deselection by
// design; it ends only on a focus steal, the group selecting another
// focusable target, or unregistration.
func (m *Manager) focusExit(x *Interactable) {
	g := x.focusGroup
	if g == nil {
		return
	}
	x.focusGroup = nil
	if g.focused == x {
		g.focused = nil
	}

	ctx := FocusContext{Group: g, Interactable: x, Manager: m}
	if x.OnFocusExited != nil {
		x.OnFocusExited(ctx)
	}
	for _, h := range m.handlers.focusExit {
		h.fn(ctx)
	}
	m.emit(InteractionEvent{
		Type:           EventFocusExit,
		InteractableID: x.ID,
		GroupID:        g.ID,
	})
}

// fireActivate dispatches activation or deactivation callbacks.
func (m *Manager) fireActivate(in *Interactor, x *Interactable, activated bool) {
	ctx := ActivateContext{Interactor: in, Interactable: x, Manager: m}
	if activated {
		if x.OnActivated != nil {
			x.OnActivated(ctx)
		}
		for _, h := range m.handlers.activate {
			h.fn(ctx)
		}
		m.emit(InteractionEvent{
			Type:           EventActivate,
			InteractorID:   in.ID,
			InteractableID: x.ID,
		})
		return
	}
	if x.OnDeactivated != nil {
		x.OnDeactivated(ctx)
	}
	for _, h := range m.handlers.deactivate {
		h.fn(ctx)
	}
	m.emit(InteractionEvent{
		Type:           EventDeactivate,
		InteractorID:   in.ID,
		InteractableID: x.ID,
	})
}

// emit forwards an event to the optional ECS bridge.
func (m *Manager) emit(ev InteractionEvent) {
	if m.store == nil {
		return
	}
	m.store.EmitEvent(ev)
}

// topGroup returns the outermost group containing in, or nil.
func topGroup(in *Interactor) *InteractionGroup {
	g := in.group
	if g == nil {
		return nil
	}
	for g.group != nil {
		g = g.group
	}
	return g
}

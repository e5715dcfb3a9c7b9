package grasp

// GroupMember is implemented by Interactor and InteractionGroup, the two
// things an interaction group can contain.
type GroupMember interface {
	// ContainingGroup returns the group this member belongs to, or nil.
	ContainingGroup() *InteractionGroup

	setContainingGroup(g *InteractionGroup)
	memberName() string
}

// InteractionGroup is an ordered collection of interactors and nested
// groups enforcing "only one active member interacts at a time". The member
// that interacted last frame keeps the initiative while it remains capable
// ("last-active wins"); registered overrides let a specific member preempt
// it when the override can act on the same target.
//
// Member order is priority order: when no member holds the initiative, the
// first capable member in list order wins, and override resolution walks
// the list in order and takes the first match. This ordering-as-priority
// convention is deliberate and load-bearing for determinism.
type InteractionGroup struct {
	ID   uint32
	Name string

	members   []GroupMember
	overrides map[GroupMember][]GroupMember

	active     *Interactor   // interactor that won interaction last frame
	focused    *Interactable // interactable holding this group's focus
	group      *InteractionGroup
	manager    *Manager
	registered bool
}

// NewInteractionGroup creates an empty group.
func NewInteractionGroup(name string) *InteractionGroup {
	return &InteractionGroup{ID: nextID(), Name: name}
}

// ContainingGroup returns the group this group is nested in, or nil.
func (g *InteractionGroup) ContainingGroup() *InteractionGroup {
	return g.group
}

func (g *InteractionGroup) setContainingGroup(cg *InteractionGroup) {
	g.group = cg
}

func (g *InteractionGroup) memberName() string {
	return g.Name
}

func (in *Interactor) setContainingGroup(g *InteractionGroup) {
	in.group = g
}

func (in *Interactor) memberName() string {
	return in.Name
}

// AddMember appends m to the group. The member must not already belong to
// a group, and adding it must not create a membership cycle; violating
// either is an invariant violation (panic in debug mode, warn-and-ignore
// otherwise). Returns true if the member was added.
func (g *InteractionGroup) AddMember(m GroupMember) bool {
	return g.AddMemberAt(m, len(g.members))
}

// AddMemberAt inserts m at the given index in the member (priority) order.
func (g *InteractionGroup) AddMemberAt(m GroupMember, index int) bool {
	if !assertf(m != nil, "add nil group member to %q", g.Name) {
		return false
	}
	if !assertf(g.manager == nil || !g.manager.inPass,
		"group %q member added during processing pass", g.Name) {
		return false
	}
	if !assertf(m.ContainingGroup() == nil,
		"member %q already belongs to a group", m.memberName()) {
		return false
	}
	if sub, ok := m.(*InteractionGroup); ok {
		if !assertf(!groupContains(sub, g) && sub != g,
			"adding member %q to %q would create a cycle", sub.Name, g.Name) {
			return false
		}
	}
	if !assertf(index >= 0 && index <= len(g.members),
		"group member index %d out of range", index) {
		return false
	}
	g.members = append(g.members, nil)
	copy(g.members[index+1:], g.members[index:])
	g.members[index] = m
	m.setContainingGroup(g)
	return true
}

// RemoveMember detaches m from the group. Removing the member that is (or
// contains) the current active interactor clears the active interactor.
// Override registrations involving m are dropped. Returns false if m is not
// a member.
func (g *InteractionGroup) RemoveMember(m GroupMember) bool {
	if !assertf(g.manager == nil || !g.manager.inPass,
		"group %q member removed during processing pass", g.Name) {
		return false
	}
	found := false
	for i, mem := range g.members {
		if mem == m {
			copy(g.members[i:], g.members[i+1:])
			g.members[len(g.members)-1] = nil
			g.members = g.members[:len(g.members)-1]
			found = true
			break
		}
	}
	if !found {
		return false
	}
	m.setContainingGroup(nil)
	if g.active != nil && memberHolds(m, g.active) {
		g.active = nil
	}
	delete(g.overrides, m)
	for mem, list := range g.overrides {
		g.overrides[mem] = removeMember(list, m)
	}
	return true
}

// Members returns the member list in priority order.
// The returned slice MUST NOT be mutated by the caller.
func (g *InteractionGroup) Members() []GroupMember {
	return g.members
}

// ActiveInteractor returns the interactor that won interaction in the last
// completed pass, bubbled up from nested groups, or nil.
func (g *InteractionGroup) ActiveInteractor() *Interactor {
	return g.active
}

// FocusedInteractable returns the interactable this group currently
// focuses, or nil. A group focuses at most one interactable at a time.
func (g *InteractionGroup) FocusedInteractable() *Interactable {
	return g.focused
}

// RegisterOverride allows override to preempt member when member holds the
// group's initiative and override can act on one of member's current
// targets. Both must be members of this group, and the registration must
// not make any member its own transitive override. Returns true on success.
func (g *InteractionGroup) RegisterOverride(member, override GroupMember) bool {
	if !assertf(member != nil && override != nil, "register override with nil member") {
		return false
	}
	if !assertf(member != override,
		"member %q cannot override itself", member.memberName()) {
		return false
	}
	if !assertf(g.isMember(member) && g.isMember(override),
		"override registration with non-member of group %q", g.Name) {
		return false
	}
	// Walking override links from member must not reach member again once
	// the new link is in place.
	if !assertf(!g.overrideReaches(member, override),
		"override of %q by %q would create a cycle",
		member.memberName(), override.memberName()) {
		return false
	}
	if g.overrides == nil {
		g.overrides = make(map[GroupMember][]GroupMember)
	}
	for _, o := range g.overrides[member] {
		if o == override {
			return true // already registered
		}
	}
	g.overrides[member] = append(g.overrides[member], override)
	return true
}

// UnregisterOverride removes an override registration.
func (g *InteractionGroup) UnregisterOverride(member, override GroupMember) bool {
	list, ok := g.overrides[member]
	if !ok {
		return false
	}
	n := len(list)
	g.overrides[member] = removeMember(list, override)
	return len(g.overrides[member]) != n
}

// isMember reports whether m is a direct member of g.
func (g *InteractionGroup) isMember(m GroupMember) bool {
	for _, mem := range g.members {
		if mem == m {
			return true
		}
	}
	return false
}

// overrideReaches reports whether target is reachable from start by
// following existing override links. Used at registration time to reject
// transitive override cycles.
func (g *InteractionGroup) overrideReaches(target, start GroupMember) bool {
	if start == target {
		return true
	}
	for _, next := range g.overrides[start] {
		if g.overrideReaches(target, next) {
			return true
		}
	}
	return false
}

// --- Per-frame resolution ---

// resolve runs the group's arbitration for this frame. constraint, when
// non-nil, is the interactor a containing group has already granted the
// initiative to; it pins the pre-prioritized member on recursion.
func (g *InteractionGroup) resolve(m *Manager, constraint *Interactor) {
	pre := g.prePrioritized(constraint)
	pre = g.applyOverrides(pre)

	// Walking the ordered member list: every member other than the
	// pre-prioritized one has its interactions forcibly cleared before
	// normal processing; the winner recurses if it is a nested group.
	for _, mem := range g.members {
		if mem == pre {
			if sub, ok := mem.(*InteractionGroup); ok {
				sub.resolve(m, constraint)
			}
			continue
		}
		g.blockMember(m, mem)
	}
}

// prePrioritized picks the member with first refusal on interacting this
// frame: the member holding constraint when one is passed down, else the
// member that is or contains the previous active interactor — provided it
// is still capable — else the first capable member in priority order.
func (g *InteractionGroup) prePrioritized(constraint *Interactor) GroupMember {
	if constraint != nil {
		for _, mem := range g.members {
			if memberHolds(mem, constraint) {
				return mem
			}
		}
		return nil
	}
	if g.active != nil {
		for _, mem := range g.members {
			if memberHolds(mem, g.active) && memberCanInteract(mem) {
				return mem
			}
		}
	}
	for _, mem := range g.members {
		if memberCanInteract(mem) {
			return mem
		}
	}
	return nil
}

// applyOverrides walks override links from pre, preempting it with the
// first registered override (in member order) that can currently select
// one of pre's interaction targets. Chains are followed; registration-time
// checks guarantee they are acyclic.
func (g *InteractionGroup) applyOverrides(pre GroupMember) GroupMember {
	if pre == nil {
		return nil
	}
	for {
		next := g.findOverride(pre)
		if next == nil {
			return pre
		}
		pre = next
	}
}

// findOverride returns the first member in priority order that is
// registered as an override for active and can select something active is
// interacting with, or nil.
func (g *InteractionGroup) findOverride(active GroupMember) GroupMember {
	registered := g.overrides[active]
	if len(registered) == 0 {
		return nil
	}
	for _, mem := range g.members {
		if mem == active {
			continue
		}
		isOverride := false
		for _, o := range registered {
			if o == mem {
				isOverride = true
				break
			}
		}
		if !isOverride {
			continue
		}
		if memberCanSelectTargetsOf(mem, active) {
			return mem
		}
	}
	return nil
}

// blockMember denies the member (and, recursively, a nested group's
// members) interaction for this frame, forcibly clearing any selections
// and hovers it still holds.
func (g *InteractionGroup) blockMember(m *Manager, mem GroupMember) {
	switch v := mem.(type) {
	case *Interactor:
		v.blocked = true
		m.clearAllInteractions(v)
	case *InteractionGroup:
		for _, sub := range v.members {
			v.blockMember(m, sub)
		}
	}
}

// recordActive records which interactor actually ended the pass holding a
// selection or hover, walking members in priority order and bubbling up
// from nested groups.
func (g *InteractionGroup) recordActive() *Interactor {
	g.active = nil
	for _, mem := range g.members {
		switch v := mem.(type) {
		case *Interactor:
			if len(v.selected) > 0 || len(v.hovered) > 0 {
				g.active = v
			}
		case *InteractionGroup:
			g.active = v.recordActive()
		}
		if g.active != nil {
			return g.active
		}
	}
	return nil
}

// --- Member helpers ---

// memberHolds reports whether mem is in, or (for nested groups)
// transitively contains, the given interactor.
func memberHolds(mem GroupMember, in *Interactor) bool {
	switch v := mem.(type) {
	case *Interactor:
		return v == in
	case *InteractionGroup:
		for _, sub := range v.members {
			if memberHolds(sub, in) {
				return true
			}
		}
	}
	return false
}

// memberCanInteract reports whether mem (or any interactor inside it)
// could hover or select something this frame.
func memberCanInteract(mem GroupMember) bool {
	switch v := mem.(type) {
	case *Interactor:
		return v.registered && v.canInteractThisFrame()
	case *InteractionGroup:
		for _, sub := range v.members {
			if memberCanInteract(sub) {
				return true
			}
		}
	}
	return false
}

// memberCanSelectTargetsOf reports whether any interactor inside candidate
// can currently select one of the interactables that active's interactors
// are selecting or hovering.
func memberCanSelectTargetsOf(candidate, active GroupMember) bool {
	var targets []*Interactable
	eachInteractor(active, func(in *Interactor) {
		targets = append(targets, in.selected...)
		targets = append(targets, in.hovered...)
	})
	if len(targets) == 0 {
		return false
	}
	found := false
	eachInteractor(candidate, func(in *Interactor) {
		if found {
			return
		}
		for _, x := range targets {
			if in.CanSelect(x) && x.selectableIgnoringExclusivity(in) {
				found = true
				return
			}
		}
	})
	return found
}

// eachInteractor visits every interactor inside mem, depth-first in member
// order.
func eachInteractor(mem GroupMember, fn func(*Interactor)) {
	switch v := mem.(type) {
	case *Interactor:
		fn(v)
	case *InteractionGroup:
		for _, sub := range v.members {
			eachInteractor(sub, fn)
		}
	}
}

// groupContains reports whether ancestor transitively contains g.
func groupContains(ancestor, g *InteractionGroup) bool {
	for p := g.group; p != nil; p = p.group {
		if p == ancestor {
			return true
		}
	}
	return false
}

// removeMember removes m from a member slice.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func removeMember(s []GroupMember, m GroupMember) []GroupMember {
	for i, v := range s {
		if v == m {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			return s[:len(s)-1]
		}
	}
	return s
}

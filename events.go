package grasp

// Manager-level event listeners. Per-entity callbacks live as func fields
// on Interactor and Interactable; these registries receive every transition
// for any pair, in registration order, after the per-entity callbacks.

type hoverHandler struct {
	id uint32
	fn func(HoverContext)
}

type selectHandler struct {
	id uint32
	fn func(SelectContext)
}

type focusHandler struct {
	id uint32
	fn func(FocusContext)
}

type activateHandler struct {
	id uint32
	fn func(ActivateContext)
}

type handlerRegistry struct {
	hoverEnter  []hoverHandler
	hoverExit   []hoverHandler
	selectEnter []selectHandler
	selectExit  []selectHandler
	focusEnter  []focusHandler
	focusExit   []focusHandler
	activate    []activateHandler
	deactivate  []activateHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered manager-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventHoverEnter:
		h.reg.hoverEnter = removeHoverHandler(h.reg.hoverEnter, h.id)
	case EventHoverExit:
		h.reg.hoverExit = removeHoverHandler(h.reg.hoverExit, h.id)
	case EventSelectEnter:
		h.reg.selectEnter = removeSelectHandler(h.reg.selectEnter, h.id)
	case EventSelectExit:
		h.reg.selectExit = removeSelectHandler(h.reg.selectExit, h.id)
	case EventFocusEnter:
		h.reg.focusEnter = removeFocusHandler(h.reg.focusEnter, h.id)
	case EventFocusExit:
		h.reg.focusExit = removeFocusHandler(h.reg.focusExit, h.id)
	case EventActivate:
		h.reg.activate = removeActivateHandler(h.reg.activate, h.id)
	case EventDeactivate:
		h.reg.deactivate = removeActivateHandler(h.reg.deactivate, h.id)
	}
}

func removeHoverHandler(s []hoverHandler, id uint32) []hoverHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = hoverHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeSelectHandler(s []selectHandler, id uint32) []selectHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = selectHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeFocusHandler(s []focusHandler, id uint32) []focusHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = focusHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeActivateHandler(s []activateHandler, id uint32) []activateHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = activateHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnHoverEntered registers a manager-level callback for hover enter events.
func (m *Manager) OnHoverEntered(fn func(HoverContext)) CallbackHandle {
	m.handlers.nextID++
	id := m.handlers.nextID
	m.handlers.hoverEnter = append(m.handlers.hoverEnter, hoverHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &m.handlers, event: EventHoverEnter}
}

// OnHoverExited registers a manager-level callback for hover exit events.
func (m *Manager) OnHoverExited(fn func(HoverContext)) CallbackHandle {
	m.handlers.nextID++
	id := m.handlers.nextID
	m.handlers.hoverExit = append(m.handlers.hoverExit, hoverHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &m.handlers, event: EventHoverExit}
}

// OnSelectEntered registers a manager-level callback for select enter events.
func (m *Manager) OnSelectEntered(fn func(SelectContext)) CallbackHandle {
	m.handlers.nextID++
	id := m.handlers.nextID
	m.handlers.selectEnter = append(m.handlers.selectEnter, selectHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &m.handlers, event: EventSelectEnter}
}

// OnSelectExited registers a manager-level callback for select exit events.
func (m *Manager) OnSelectExited(fn func(SelectContext)) CallbackHandle {
	m.handlers.nextID++
	id := m.handlers.nextID
	m.handlers.selectExit = append(m.handlers.selectExit, selectHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &m.handlers, event: EventSelectExit}
}

// OnFocusEntered registers a manager-level callback for focus enter events.
func (m *Manager) OnFocusEntered(fn func(FocusContext)) CallbackHandle {
	m.handlers.nextID++
	id := m.handlers.nextID
	m.handlers.focusEnter = append(m.handlers.focusEnter, focusHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &m.handlers, event: EventFocusEnter}
}

// OnFocusExited registers a manager-level callback for focus exit events.
func (m *Manager) OnFocusExited(fn func(FocusContext)) CallbackHandle {
	m.handlers.nextID++
	id := m.handlers.nextID
	m.handlers.focusExit = append(m.handlers.focusExit, focusHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &m.handlers, event: EventFocusExit}
}

// OnActivated registers a manager-level callback for activation events.
func (m *Manager) OnActivated(fn func(ActivateContext)) CallbackHandle {
	m.handlers.nextID++
	id := m.handlers.nextID
	m.handlers.activate = append(m.handlers.activate, activateHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &m.handlers, event: EventActivate}
}

// OnDeactivated registers a manager-level callback for deactivation events.
func (m *Manager) OnDeactivated(fn func(ActivateContext)) CallbackHandle {
	m.handlers.nextID++
	id := m.handlers.nextID
	m.handlers.deactivate = append(m.handlers.deactivate, activateHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &m.handlers, event: EventDeactivate}
}

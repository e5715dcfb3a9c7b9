package grasp

// LogicalInput converts a raw per-frame pressed signal into a debounced
// "active" state under one of the InputTriggerType policies.
//
// The host feeds raw input once per frame with SetPressed (or via the
// interactor's injection queue); edges are detected internally. The derived
// Active value is recomputed immediately whenever the raw input, the
// trigger mode, or the owning interactor's selection state changes — never
// deferred to the next frame.
//
// Toggle and Sticky keep latch state that resets whenever the owning
// interactor's selection is lost, so a stale toggle from a previous object
// cannot bleed into a new one.
type LogicalInput struct {
	mode InputTriggerType

	// Raw signal.
	performed            bool // pressed this instant
	performedThisFrame   bool // rising edge observed this frame
	unperformedThisFrame bool // falling edge observed this frame

	// Latch state (Toggle, Sticky).
	toggleActive         bool
	toggledOffThisFrame  bool
	waitingForDeactivate bool

	hasSelection bool
	active       bool
}

// Mode returns the current trigger policy.
func (l *LogicalInput) Mode() InputTriggerType {
	return l.mode
}

// SetMode changes the trigger policy and refreshes Active.
func (l *LogicalInput) SetMode(mode InputTriggerType) {
	if l.mode == mode {
		return
	}
	l.mode = mode
	l.refresh()
}

// Active reports the debounced logical state.
func (l *LogicalInput) Active() bool {
	return l.active
}

// Performed reports the raw pressed signal as of the last SetPressed.
func (l *LogicalInput) Performed() bool {
	return l.performed
}

// PerformedThisFrame reports whether a rising edge was observed this frame.
func (l *LogicalInput) PerformedThisFrame() bool {
	return l.performedThisFrame
}

// UnperformedThisFrame reports whether a falling edge was observed this frame.
func (l *LogicalInput) UnperformedThisFrame() bool {
	return l.unperformedThisFrame
}

// SetPressed feeds the raw signal for this frame. Call exactly once per
// frame, before Manager.Update; edge flags persist until the next call.
func (l *LogicalInput) SetPressed(pressed bool) {
	l.performedThisFrame = pressed && !l.performed
	l.unperformedThisFrame = !pressed && l.performed
	l.performed = pressed
	l.toggledOffThisFrame = false

	if l.performedThisFrame {
		switch l.mode {
		case TriggerToggle:
			l.toggleActive = !l.toggleActive
			l.toggledOffThisFrame = !l.toggleActive
		case TriggerSticky:
			if !l.toggleActive {
				l.toggleActive = true
			} else {
				l.waitingForDeactivate = true
			}
		}
	}
	if l.unperformedThisFrame && l.mode == TriggerSticky && l.waitingForDeactivate {
		l.toggleActive = false
		l.waitingForDeactivate = false
	}

	l.refresh()
}

// setHasSelection records whether the owning interactor currently holds a
// selection. A true→false transition resets the Toggle/Sticky latches.
// Called by the Manager after each commit pass.
func (l *LogicalInput) setHasSelection(has bool) {
	if l.hasSelection == has {
		return
	}
	l.hasSelection = has
	if !has {
		l.toggleActive = false
		l.waitingForDeactivate = false
		l.toggledOffThisFrame = false
	}
	l.refresh()
}

// refresh recomputes Active from the current raw and latch state.
func (l *LogicalInput) refresh() {
	switch l.mode {
	case TriggerState:
		l.active = l.performed
	case TriggerStateChange:
		l.active = l.performedThisFrame ||
			(l.hasSelection && !l.unperformedThisFrame)
	case TriggerToggle:
		l.active = l.toggleActive ||
			(l.performedThisFrame && !l.toggledOffThisFrame)
	case TriggerSticky:
		l.active = l.toggleActive || l.waitingForDeactivate || l.performedThisFrame
	}
}

// endFrame clears the per-frame edge flags. Called by the Manager at the
// end of each pass so a frame with no fresh input does not replay edges.
func (l *LogicalInput) endFrame() {
	if !l.performedThisFrame && !l.unperformedThisFrame {
		return
	}
	l.performedThisFrame = false
	l.unperformedThisFrame = false
	l.toggledOffThisFrame = false
	l.refresh()
}

// Reset clears all raw and latch state, returning the input to idle.
func (l *LogicalInput) Reset() {
	l.performed = false
	l.performedThisFrame = false
	l.unperformedThisFrame = false
	l.toggleActive = false
	l.toggledOffThisFrame = false
	l.waitingForDeactivate = false
	l.refresh()
}

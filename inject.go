package grasp

// syntheticSignal represents one injected frame of raw input state for an
// interactor. Injected signals take precedence over host-fed input during
// preprocess, one signal per frame, matching what real input would produce.
type syntheticSignal struct {
	selectPressed   bool
	activatePressed bool
}

// InjectSelectPress queues a frame with the select input pressed.
// The signal is consumed on the next Manager.Update preprocess.
func (in *Interactor) InjectSelectPress() {
	s := in.lastInject
	s.selectPressed = true
	in.pushInject(s)
}

// InjectSelectRelease queues a frame with the select input released.
func (in *Interactor) InjectSelectRelease() {
	s := in.lastInject
	s.selectPressed = false
	in.pushInject(s)
}

// InjectActivatePress queues a frame with the activate input pressed.
func (in *Interactor) InjectActivatePress() {
	s := in.lastInject
	s.activatePressed = true
	in.pushInject(s)
}

// InjectActivateRelease queues a frame with the activate input released.
func (in *Interactor) InjectActivateRelease() {
	s := in.lastInject
	s.activatePressed = false
	in.pushInject(s)
}

// InjectHold queues the current injected state repeated for the given
// number of frames. Use between press and release to simulate holding a
// trigger across several frames.
func (in *Interactor) InjectHold(frames int) {
	for i := 0; i < frames; i++ {
		in.pushInject(in.lastInject)
	}
}

// InjectTap is a convenience that queues a press followed by a release.
// Consumes two frames.
func (in *Interactor) InjectTap() {
	in.InjectSelectPress()
	in.InjectSelectRelease()
}

func (in *Interactor) pushInject(s syntheticSignal) {
	in.injectQueue = append(in.injectQueue, s)
	in.lastInject = s
}

// consumeInjected pops one signal from the inject queue and feeds it
// through the logical inputs, exactly as host-fed input would be. Returns
// true if a signal was consumed (host input for this frame is superseded).
func (in *Interactor) consumeInjected() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	s := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	in.selectInput.SetPressed(s.selectPressed)
	in.activateInput.SetPressed(s.activatePressed)
	return true
}

// PendingInjections returns the number of queued synthetic signals.
func (in *Interactor) PendingInjections() int {
	return len(in.injectQueue)
}

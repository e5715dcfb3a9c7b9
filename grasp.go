package grasp

// Handedness identifies which physical hand (if any) an interactor
// represents. Informational only; the arbitration rules never consult it.
type Handedness uint8

const (
	HandednessNone  Handedness = iota // not hand-associated (gaze, socket)
	HandednessLeft                    // left hand / left controller
	HandednessRight                   // right hand / right controller
)

// SelectMode controls how many interactors may select an interactable at
// the same time.
type SelectMode uint8

const (
	SelectModeSingle   SelectMode = iota // at most one selector; a forced enter exits the previous one first
	SelectModeMultiple                   // any number of simultaneous selectors
)

// FocusMode controls whether an interactable participates in group focus.
type FocusMode uint8

const (
	FocusModeNone   FocusMode = iota // never gains focus
	FocusModeSingle                  // focused by at most one group; a new group steals focus
)

// InputTriggerType selects the policy that turns a raw pressed signal into
// the logical "active" state. See LogicalInput.
type InputTriggerType uint8

const (
	TriggerState       InputTriggerType = iota // active exactly while the button is held
	TriggerStateChange                         // active from press until release, latched by selection
	TriggerToggle                              // press toggles active on/off
	TriggerSticky                              // press activates; the next full press-release deactivates
)

// TargetPriorityMode controls how many of an interactor's valid targets are
// hovered each frame. Targets are ordered nearest-first by the discovery
// provider, so "highest priority" means the front of that list.
type TargetPriorityMode uint8

const (
	TargetPriorityAll         TargetPriorityMode = iota // hover every valid target
	TargetPriorityHighestOnly                           // hover only the first valid target
	TargetPriorityNone                                  // hover nothing (select-only interactor)
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventHoverEnter  EventType = iota // interactor began hovering an interactable
	EventHoverExit                    // interactor stopped hovering an interactable
	EventSelectEnter                  // interactor began selecting an interactable
	EventSelectExit                   // interactor stopped selecting an interactable
	EventFocusEnter                   // a group gained focus on an interactable
	EventFocusExit                    // a group lost focus on an interactable
	EventActivate                     // activate input became active while selecting
	EventDeactivate                   // activate input became inactive while selecting
)

// idCounter is a plain counter (no atomic — grasp is single-threaded).
var idCounter uint32

func nextID() uint32 {
	idCounter++
	return idCounter
}

// HoverContext carries hover event data. Valid only for the duration of the
// callback; do not retain.
type HoverContext struct {
	Interactor   *Interactor
	Interactable *Interactable
	Manager      *Manager
}

// SelectContext carries select event data, including the attach pose
// captured at enter time (world space, and local to the interactable).
// Valid only for the duration of the callback; do not retain.
type SelectContext struct {
	Interactor   *Interactor
	Interactable *Interactable
	Manager      *Manager
	WorldPose    Pose
	LocalPose    Pose
}

// FocusContext carries focus event data. Valid only for the duration of the
// callback; do not retain.
type FocusContext struct {
	Group        *InteractionGroup
	Interactable *Interactable
	Manager      *Manager
}

// ActivateContext carries activation event data. Valid only for the
// duration of the callback; do not retain.
type ActivateContext struct {
	Interactor   *Interactor
	Interactable *Interactable
	Manager      *Manager
}

// InteractionEvent is the flattened event form forwarded to an EntityStore
// (see Manager.SetEntityStore and the grasp/ecs bridge).
type InteractionEvent struct {
	Type           EventType
	InteractorID   uint32
	InteractableID uint32
	GroupID        uint32 // set for focus events
	WorldPose      Pose   // set for select events
	Strength       float64
}

// EntityStore is the interface for optional ECS integration. When set on a
// Manager, interaction events are forwarded to the ECS after the public
// callbacks for the same transition have fired.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

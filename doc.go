// Package grasp is a frame-driven interaction toolkit for games and
// XR-style applications.
//
// Grasp arbitrates which [Interactor] (a hand, a controller ray, a gaze
// cursor) may hover and select which [Interactable] (a grabbable object, a
// socket, a button) on any given frame. The host game loop drives a single
// [Manager] once per frame; everything else — rendering, physics, audio —
// stays outside the library and talks to it through narrow callbacks.
//
// # Quick start
//
//	mgr := grasp.NewManager()
//
//	hand := grasp.NewDirectInteractor("right-hand", 0.15)
//	cube := grasp.NewInteractable("cube")
//	cube.Collider = grasp.SphereCollider{Radius: 0.1}
//
//	cube.OnSelectEntered = func(ctx grasp.SelectContext) {
//		// attach the cube to the hand, play haptics, ...
//	}
//
//	mgr.RegisterInteractor(hand)
//	mgr.RegisterInteractable(cube)
//
//	// each frame, after feeding input:
//	hand.AttachPose.Position = handWorldPosition
//	hand.SetSelectPressed(gripHeld)
//	mgr.Update(dt)
//
// # Frame model
//
// Grasp is single-threaded and cooperative. [Manager.Update] runs
// sequential phases: a preprocess phase (input sampling and target
// discovery for every interactor), group arbitration, a global clear pass
// (stale hovers/selections removed for all interactors before any new ones
// commit), a commit pass, and a process phase (activation events, strength
// updates). Registration and unregistration during a pass are buffered and
// applied at the start of the next pass.
//
// Every hover/select/focus transition is a two-phase event: internal state
// is fully updated first, then public callbacks fire. Callback contexts
// are valid only for the duration of the call and must not be retained.
//
// # Groups
//
// An [InteractionGroup] holds an ordered list of interactors (or nested
// groups) and lets only one member interact per frame. The member that
// interacted last frame keeps the initiative while it remains capable;
// override registrations let a designated member preempt it.
//
// # Key features
//
// Logical input debouncing (state, state-change, toggle, sticky trigger
// policies), hover/select/strength filter chains with buffered mutation,
// built-in overlap and ray target discovery, interaction strength with
// eased smoothing (via [gween]), YAML interaction profiles, synthetic
// input injection and JSON-scripted test runs, and ECS integration (via
// [Donburi] adapter in grasp/ecs).
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package grasp

// Package ecs provides ECS adapters for grasp.
package ecs

import (
	"github.com/phanxgames/grasp"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for grasp interaction events.
// Subscribe to this in your ECS systems to receive hover, select, focus, and
// activation events.
var InteractionEventType = events.NewEventType[grasp.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) grasp.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event grasp.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// Subscribe registers fn for every interaction event published to the
// world. Events are queued; call ProcessEvents once per frame (after
// Manager.Update) to deliver them.
func Subscribe(world donburi.World, fn func(grasp.InteractionEvent)) {
	InteractionEventType.Subscribe(world, func(_ donburi.World, e grasp.InteractionEvent) {
		fn(e)
	})
}

// SubscribeTypes registers fn for interaction events of the given types
// only. Systems that care about one edge (say, select enters) subscribe to
// just that instead of switching on Type themselves.
func SubscribeTypes(world donburi.World, fn func(grasp.InteractionEvent), types ...grasp.EventType) {
	want := make(map[grasp.EventType]bool, len(types))
	for _, typ := range types {
		want[typ] = true
	}
	InteractionEventType.Subscribe(world, func(_ donburi.World, e grasp.InteractionEvent) {
		if want[e.Type] {
			fn(e)
		}
	})
}

// ProcessEvents delivers queued interaction events to subscribers.
func ProcessEvents(world donburi.World) {
	InteractionEventType.ProcessEvents(world)
}

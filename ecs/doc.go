// Package ecs provides ECS adapters for grasp's interaction event system.
//
// The primary adapter is [NewDonburiStore], which bridges grasp interaction
// events (hover, select, focus, activation) into a [Donburi] world as typed
// events. Subscribe to [InteractionEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	manager.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

// Package ecs realizes prefabs into a [Donburi] world.
//
// A [Bundle] is an ordered list of typed component values. Every entity
// spawned through [Commands] carries a [Hierarchy] component recording its
// parent and its children in spawn order.
//
// Usage:
//
//	cmds := ecs.NewCommands(world)
//	tree := prefab.Of(ecs.NewBundle(ecs.With(Position, Vec{0, 0}))).
//		ChildBundle(ecs.NewBundle(ecs.With(Position, Vec{60, 0})))
//	root, err := cmds.SpawnPrefab(tree)
//
// With [Commands.PublishEvents] enabled, each spawn publishes a
// [SpawnedEvent] on [SpawnedEventType]; subscribe with Subscribe and drain
// with ProcessEvents. Donburi stores the event queue on an entity of its
// own, so use [Count] rather than world.Len to count spawned entities.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

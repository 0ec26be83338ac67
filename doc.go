// Package prefab builds entity hierarchies as plain values and spawns them
// into an entity-component host with one call.
//
// A prefab is either a bundle on its own ([Of]) or a bundle with children
// ([ParentNode]). Children are added with Child, which consumes both sides
// and returns the combined tree:
//
//	tree := prefab.Of(square(0, red)).
//		ChildBundle(square(60, orange)).
//		ChildBundle(square(120, yellow)).
//		Child(prefab.Of(square(180, green)).
//			ChildBundle(square(60, cyan)))
//
// Composition touches no host state. Realization walks the tree once:
//
//	root, err := prefab.SpawnPrefab(cmds, tree)
//
// A node's bundle is inserted before any of its children are spawned, and
// siblings are spawned in the order they were added.
//
// # Hosts
//
// The host is anything implementing [Spawner] and [EntityCommands]. Two
// adapters ship with the module:
//
//   - prefab/ecs realizes into a [Donburi] world.
//   - prefab/scene realizes into a retained 2D node tree drawn with [Ebitengine].
//
// prefab/prefabtest records commands for tests.
//
// # Ownership
//
// Tree values are single-use. Calling Child on a value, passing it as a
// child, or realizing it consumes it; any later use panics. This stands in
// for move semantics: a subtree can have only one parent and can be
// realized only once.
//
// [Donburi]: https://github.com/yohamta/donburi
// [Ebitengine]: https://ebitengine.org
package prefab

// Package scene is a small retained 2D scene graph that serves as a prefab
// host. Each spawned entity is a [Node]; the bundle type is [Sprite].
//
//	s := scene.NewScene()
//	tree := prefab.Of(scene.Sprite{Name: "body", Width: 50, Height: 50}).
//		ChildBundle(scene.Sprite{Name: "arm", X: 60, Width: 20, Height: 20})
//	body, err := s.Commands().SpawnPrefab(tree)
//
// Children inherit their parent's transform and alpha. [Scene.Draw] renders
// every sized, visible node as a tinted quad with [Ebitengine], parents
// before children; [Run] opens a window around a scene. A spawned node can be
// eased toward another Sprite with [EntityCommands.Tween], backed by [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package scene

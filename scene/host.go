package scene

import (
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/prefab"
)

// ErrDisposed is returned when a command targets a disposed node.
var ErrDisposed = errors.New("scene: node is disposed")

// Sprite is the bundle type of the scene host. A node embeds the sprite last
// inserted into it; inserting replaces the whole sprite.
type Sprite struct {
	Name          string
	X, Y          float64
	Width, Height float64
	// Scale applies to both axes and to every descendant. Zero means 1.
	Scale float64
	Color Color
}

func (s Sprite) String() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("sprite(%g,%g %gx%g)", s.X, s.Y, s.Width, s.Height)
}

func (s Sprite) scale() float64 {
	if s.Scale == 0 {
		return 1
	}
	return s.Scale
}

// Commands spawns nodes under a scene's root.
type Commands struct {
	scene *Scene
}

// Spawn creates a new last child of the scene root.
func (c *Commands) Spawn() (prefab.EntityCommands[Sprite], error) {
	return c.scene.root.builder().Spawn()
}

// SpawnPrefab spawns p under the scene root and returns commands for the
// node it created.
func (c *Commands) SpawnPrefab(p prefab.Prefab[Sprite]) (*EntityCommands, error) {
	ec, err := prefab.SpawnPrefab[Sprite](c, p)
	return asEntity(ec), err
}

// ChildBuilder spawns children of one node.
type ChildBuilder struct {
	parent *Node
}

// Spawn creates a new last child of the builder's node.
func (b *ChildBuilder) Spawn() (prefab.EntityCommands[Sprite], error) {
	if b.parent.disposed {
		return nil, fmt.Errorf("spawn child of %q: %w", b.parent.Name, ErrDisposed)
	}
	n := NewNode("")
	b.parent.AddChild(n)
	return Entity(n), nil
}

// SpawnPrefab spawns p as the last child of the builder's node.
func (b *ChildBuilder) SpawnPrefab(p prefab.Prefab[Sprite]) (*EntityCommands, error) {
	ec, err := prefab.SpawnPrefab[Sprite](b, p)
	return asEntity(ec), err
}

// EntityCommands targets one node.
type EntityCommands struct {
	node *Node
}

// Entity returns commands targeting an existing node, for use with
// InsertPrefab.
func Entity(n *Node) *EntityCommands {
	return &EntityCommands{node: n}
}

// Node returns the target node.
func (ec *EntityCommands) Node() *Node {
	return ec.node
}

// Insert replaces the node's sprite.
func (ec *EntityCommands) Insert(s Sprite) error {
	if ec.node.disposed {
		return fmt.Errorf("insert %v: %w", s, ErrDisposed)
	}
	ec.node.Sprite = s
	ec.node.MarkDirty()
	return nil
}

// Tween eases the node toward s. The returned group still has to be added
// to a scene with Scene.AddTween.
func (ec *EntityCommands) Tween(s Sprite, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenSprite(ec.node, s, duration, fn)
}

// ChildBuilder returns a builder that spawns children of the node.
func (ec *EntityCommands) ChildBuilder() prefab.Spawner[Sprite] {
	return ec.node.builder()
}

// Children is ChildBuilder with the concrete return type.
func (ec *EntityCommands) Children() *ChildBuilder {
	return ec.node.builder()
}

// InsertPrefab realizes p into the node.
func (ec *EntityCommands) InsertPrefab(p prefab.Prefab[Sprite]) (*EntityCommands, error) {
	_, err := prefab.InsertPrefab[Sprite](ec, p)
	return ec, err
}

func (n *Node) builder() *ChildBuilder {
	return &ChildBuilder{parent: n}
}

func asEntity(ec prefab.EntityCommands[Sprite]) *EntityCommands {
	if ec == nil {
		return nil
	}
	return ec.(*EntityCommands)
}

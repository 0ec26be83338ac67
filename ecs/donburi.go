package ecs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/prefab"
)

// ErrInvalidEntity is returned when a command targets an entity that is not
// alive in the world.
var ErrInvalidEntity = errors.New("ecs: invalid entity")

// HierarchyData links an entity to its parent (donburi.Null for roots) and
// to its children in spawn order.
type HierarchyData struct {
	Parent   donburi.Entity
	Children []donburi.Entity
}

// Hierarchy is attached to every entity spawned through Commands.
var Hierarchy = donburi.NewComponentType[HierarchyData]()

// SpawnedEvent is published for every entity spawned through Commands that
// have events enabled with PublishEvents.
type SpawnedEvent struct {
	Entity donburi.Entity
	Parent donburi.Entity
}

// SpawnedEventType is the Donburi event type for spawn notifications.
//
// Events queue until SpawnedEventType.ProcessEvents runs; a world that
// publishes without ever processing grows the queue without bound. Donburi
// keeps the queue on an entity of its own, created on first use, so
// world.Len then counts one entity more than Count.
var SpawnedEventType = events.NewEventType[SpawnedEvent]()

// --- Bundles ---

// Component is one typed component value ready to be attached to an entry.
type Component interface {
	Type() donburi.IComponentType
	apply(w donburi.World, e donburi.Entity)
}

type componentValue[T any] struct {
	ctype *donburi.ComponentType[T]
	value T
}

// With pairs a component type with the value to store in it.
func With[T any](ctype *donburi.ComponentType[T], value T) Component {
	return componentValue[T]{ctype: ctype, value: value}
}

func (c componentValue[T]) Type() donburi.IComponentType {
	return c.ctype
}

// apply adds the component when missing and overwrites its value otherwise.
func (c componentValue[T]) apply(w donburi.World, e donburi.Entity) {
	entry := w.Entry(e)
	if !entry.HasComponent(c.ctype) {
		entry.AddComponent(c.ctype)
		entry = w.Entry(e)
	}
	c.ctype.SetValue(entry, c.value)
}

func (c componentValue[T]) String() string {
	return fmt.Sprint(c.value)
}

// Bundle is the set of components attached to one entity. Components are
// applied in order; a later value for the same type wins.
type Bundle []Component

// NewBundle returns a bundle of the given components.
func NewBundle(components ...Component) Bundle {
	return Bundle(components)
}

func (b Bundle) String() string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprint(c)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// --- Commands ---

// target is the world a set of commands writes to, and whether spawns there
// publish SpawnedEvent.
type target struct {
	world   donburi.World
	publish bool
}

// Commands spawns root entities into a world.
type Commands struct {
	target
}

// NewCommands returns commands writing to world. Spawned events are off
// until PublishEvents is called.
func NewCommands(world donburi.World) *Commands {
	return &Commands{target{world: world}}
}

// PublishEvents turns SpawnedEvent publishing on or off for entities spawned
// through c and every builder derived from it afterwards.
func (c *Commands) PublishEvents(enabled bool) *Commands {
	c.publish = enabled
	return c
}

// World returns the target world.
func (c *Commands) World() donburi.World {
	return c.world
}

// Spawn creates a root entity.
func (c *Commands) Spawn() (prefab.EntityCommands[Bundle], error) {
	return spawnCommands(c.target, donburi.Null)
}

// SpawnPrefab spawns p as a new root entity and returns the root's commands.
func (c *Commands) SpawnPrefab(p prefab.Prefab[Bundle]) (*EntityCommands, error) {
	ec, err := prefab.SpawnPrefab[Bundle](c, p)
	return asEntity(ec), err
}

// Entity returns commands targeting an entity that already exists, for use
// with InsertPrefab.
func (c *Commands) Entity(e donburi.Entity) *EntityCommands {
	return &EntityCommands{target: c.target, entity: e}
}

// ChildBuilder spawns children of one entity.
type ChildBuilder struct {
	target
	parent donburi.Entity
}

// Spawn creates a new last child of the builder's parent.
func (b *ChildBuilder) Spawn() (prefab.EntityCommands[Bundle], error) {
	return spawnCommands(b.target, b.parent)
}

// SpawnPrefab spawns p as the last child of the builder's parent.
func (b *ChildBuilder) SpawnPrefab(p prefab.Prefab[Bundle]) (*EntityCommands, error) {
	ec, err := prefab.SpawnPrefab[Bundle](b, p)
	return asEntity(ec), err
}

// EntityCommands targets one entity.
type EntityCommands struct {
	target
	entity donburi.Entity
}

// Entity returns the target entity.
func (ec *EntityCommands) Entity() donburi.Entity {
	return ec.entity
}

// Insert attaches every component of bundle to the entity.
func (ec *EntityCommands) Insert(bundle Bundle) error {
	if !ec.world.Valid(ec.entity) {
		return fmt.Errorf("insert into %v: %w", ec.entity, ErrInvalidEntity)
	}
	for _, c := range bundle {
		c.apply(ec.world, ec.entity)
	}
	return nil
}

// ChildBuilder returns a builder that spawns children of the entity.
func (ec *EntityCommands) ChildBuilder() prefab.Spawner[Bundle] {
	return ec.Children()
}

// Children is ChildBuilder with the concrete return type.
func (ec *EntityCommands) Children() *ChildBuilder {
	return &ChildBuilder{target: ec.target, parent: ec.entity}
}

// InsertPrefab realizes p into the entity.
func (ec *EntityCommands) InsertPrefab(p prefab.Prefab[Bundle]) (*EntityCommands, error) {
	_, err := prefab.InsertPrefab[Bundle](ec, p)
	return ec, err
}

func asEntity(ec prefab.EntityCommands[Bundle]) *EntityCommands {
	if ec == nil {
		return nil
	}
	return ec.(*EntityCommands)
}

// spawnCommands keeps a failed spawn from returning a typed nil.
func spawnCommands(t target, parent donburi.Entity) (prefab.EntityCommands[Bundle], error) {
	ec, err := spawn(t, parent)
	if err != nil {
		return nil, err
	}
	return ec, nil
}

// spawn creates an entity and links it as the last child of parent.
// The parent's Hierarchy is fetched after Create, since creating an entity
// can move component storage.
func spawn(t target, parent donburi.Entity) (*EntityCommands, error) {
	w := t.world
	if parent != donburi.Null && !w.Valid(parent) {
		return nil, fmt.Errorf("spawn child of %v: %w", parent, ErrInvalidEntity)
	}
	e := w.Create(Hierarchy)
	Hierarchy.SetValue(w.Entry(e), HierarchyData{Parent: parent})
	if parent != donburi.Null {
		pe := w.Entry(parent)
		if !pe.HasComponent(Hierarchy) {
			pe.AddComponent(Hierarchy)
			pe = w.Entry(parent)
			Hierarchy.SetValue(pe, HierarchyData{Parent: donburi.Null})
		}
		h := Hierarchy.Get(pe)
		h.Children = append(h.Children, e)
	}
	if t.publish {
		SpawnedEventType.Publish(w, SpawnedEvent{Entity: e, Parent: parent})
	}
	return &EntityCommands{target: t, entity: e}, nil
}

// --- Queries ---

// Parent returns the parent of e, or false for roots and entities without
// a Hierarchy.
func Parent(w donburi.World, e donburi.Entity) (donburi.Entity, bool) {
	if !w.Valid(e) {
		return donburi.Null, false
	}
	entry := w.Entry(e)
	if !entry.HasComponent(Hierarchy) {
		return donburi.Null, false
	}
	p := Hierarchy.Get(entry).Parent
	return p, p != donburi.Null
}

// Children returns the children of e in spawn order. The returned slice MUST
// NOT be mutated.
func Children(w donburi.World, e donburi.Entity) []donburi.Entity {
	if !w.Valid(e) {
		return nil
	}
	entry := w.Entry(e)
	if !entry.HasComponent(Hierarchy) {
		return nil
	}
	return Hierarchy.Get(entry).Children
}

var hierarchyQuery = donburi.NewQuery(filter.Contains(Hierarchy))

// Count returns the number of entities carrying a Hierarchy, which is every
// entity spawned through Commands plus any parent linked by InsertPrefab.
func Count(w donburi.World) int {
	return hierarchyQuery.Count(w)
}

// Roots returns every entity with a Hierarchy and no parent. Order is
// unspecified.
func Roots(w donburi.World) []donburi.Entity {
	var roots []donburi.Entity
	hierarchyQuery.Each(w, func(entry *donburi.Entry) {
		if Hierarchy.Get(entry).Parent == donburi.Null {
			roots = append(roots, entry.Entity())
		}
	})
	return roots
}

package ecs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/prefab"
)

type position struct {
	X, Y float64
}

var (
	nameComponent     = donburi.NewComponentType[string]()
	positionComponent = donburi.NewComponentType[position]()
)

func named(name string) Bundle {
	return NewBundle(With(nameComponent, name))
}

func nameOf(t *testing.T, w donburi.World, e donburi.Entity) string {
	t.Helper()
	entry := w.Entry(e)
	if !entry.HasComponent(nameComponent) {
		t.Fatalf("entity %v has no name", e)
	}
	return *nameComponent.Get(entry)
}

func childNames(t *testing.T, w donburi.World, e donburi.Entity) []string {
	t.Helper()
	var names []string
	for _, c := range Children(w, e) {
		names = append(names, nameOf(t, w, c))
	}
	return names
}

// assertEntityCount checks both the spawned entities and the whole world,
// so an extra entity created behind the scenes is caught.
func assertEntityCount(t *testing.T, w donburi.World, want int) {
	t.Helper()
	if got := Count(w); got != want {
		t.Errorf("Count = %d, want %d", got, want)
	}
	if got := w.Len(); got != want {
		t.Errorf("world.Len = %d, want %d", got, want)
	}
}

func TestSpawnPrefabSiblingOrder(t *testing.T) {
	world := donburi.NewWorld()
	cmds := NewCommands(world)

	tree := prefab.Of(named("base")).
		ChildBundle(named("c1")).
		ChildBundle(named("c2")).
		ChildBundle(named("c3"))
	root, err := cmds.SpawnPrefab(tree)
	if err != nil {
		t.Fatalf("SpawnPrefab: %v", err)
	}

	if got := nameOf(t, world, root.Entity()); got != "base" {
		t.Errorf("root name = %q, want base", got)
	}
	got := childNames(t, world, root.Entity())
	want := []string{"c1", "c2", "c3"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("children = %v, want %v", got, want)
	}
	assertEntityCount(t, world, 4)
}

func TestSpawnPrefabNested(t *testing.T) {
	world := donburi.NewWorld()
	cmds := NewCommands(world)

	tree := prefab.Of(named("a")).Child(prefab.Of(named("b")).ChildBundle(named("c")))
	root, err := cmds.SpawnPrefab(tree)
	if err != nil {
		t.Fatalf("SpawnPrefab: %v", err)
	}

	kids := Children(world, root.Entity())
	if len(kids) != 1 {
		t.Fatalf("root children = %d, want 1", len(kids))
	}
	b := kids[0]
	if nameOf(t, world, b) != "b" {
		t.Errorf("child name = %q, want b", nameOf(t, world, b))
	}
	if p, ok := Parent(world, b); !ok || p != root.Entity() {
		t.Errorf("Parent(b) = %v, %v; want root", p, ok)
	}

	grand := Children(world, b)
	if len(grand) != 1 || nameOf(t, world, grand[0]) != "c" {
		t.Fatalf("grandchildren of b = %v", grand)
	}
	if p, ok := Parent(world, grand[0]); !ok || p != b {
		t.Errorf("Parent(c) = %v, %v; want b", p, ok)
	}
	if _, ok := Parent(world, root.Entity()); ok {
		t.Error("root should have no parent")
	}
	if roots := Roots(world); len(roots) != 1 || roots[0] != root.Entity() {
		t.Errorf("Roots = %v, want [root]", roots)
	}
}

func TestSpawnPrefabLeafHasNoChildren(t *testing.T) {
	world := donburi.NewWorld()
	root, err := NewCommands(world).SpawnPrefab(prefab.Of(named("x")))
	if err != nil {
		t.Fatalf("SpawnPrefab: %v", err)
	}
	if kids := Children(world, root.Entity()); len(kids) != 0 {
		t.Errorf("children = %v, want none", kids)
	}
	assertEntityCount(t, world, 1)
}

func TestSpawnPrefabManyChildren(t *testing.T) {
	const n = 50
	world := donburi.NewWorld()
	tree := prefab.Of(named("root")).ChildBundle(named("c0"))
	for i := 1; i < n; i++ {
		tree = tree.ChildBundle(named(fmt.Sprintf("c%d", i)))
	}
	root, err := NewCommands(world).SpawnPrefab(tree)
	if err != nil {
		t.Fatalf("SpawnPrefab: %v", err)
	}
	names := childNames(t, world, root.Entity())
	if len(names) != n {
		t.Fatalf("children = %d, want %d", len(names), n)
	}
	for i, name := range names {
		if want := fmt.Sprintf("c%d", i); name != want {
			t.Errorf("child %d = %q, want %q", i, name, want)
		}
	}
	assertEntityCount(t, world, n+1)
}

func TestBundleMultipleComponents(t *testing.T) {
	world := donburi.NewWorld()
	b := NewBundle(
		With(nameComponent, "hero"),
		With(positionComponent, position{X: 10, Y: 20}),
		With(positionComponent, position{X: 30, Y: 40}),
	)
	root, err := NewCommands(world).SpawnPrefab(prefab.Of(b))
	if err != nil {
		t.Fatalf("SpawnPrefab: %v", err)
	}
	entry := world.Entry(root.Entity())
	if got := *positionComponent.Get(entry); got != (position{X: 30, Y: 40}) {
		t.Errorf("position = %+v, want later value to win", got)
	}
	if got := b.String(); got != "{hero {10 20} {30 40}}" {
		t.Errorf("Bundle.String = %q", got)
	}
}

func TestChildBuilderSpawnPrefab(t *testing.T) {
	world := donburi.NewWorld()
	cmds := NewCommands(world)
	host, err := cmds.SpawnPrefab(prefab.Of(named("host")))
	if err != nil {
		t.Fatal(err)
	}
	sub, err := host.Children().SpawnPrefab(prefab.Of(named("a")).ChildBundle(named("b")))
	if err != nil {
		t.Fatalf("SpawnPrefab in child scope: %v", err)
	}
	if p, ok := Parent(world, sub.Entity()); !ok || p != host.Entity() {
		t.Errorf("subtree parent = %v, %v; want host", p, ok)
	}
	if got := childNames(t, world, sub.Entity()); len(got) != 1 || got[0] != "b" {
		t.Errorf("subtree children = %v, want [b]", got)
	}
}

func TestInsertPrefabIntoExistingEntity(t *testing.T) {
	world := donburi.NewWorld()
	cmds := NewCommands(world)
	e := world.Create(positionComponent)

	if _, err := cmds.Entity(e).InsertPrefab(prefab.Of(named("p")).ChildBundle(named("c"))); err != nil {
		t.Fatalf("InsertPrefab: %v", err)
	}
	if got := nameOf(t, world, e); got != "p" {
		t.Errorf("name = %q, want p", got)
	}
	if got := childNames(t, world, e); len(got) != 1 || got[0] != "c" {
		t.Errorf("children = %v, want [c]", got)
	}
}

func TestInsertIntoRemovedEntity(t *testing.T) {
	world := donburi.NewWorld()
	cmds := NewCommands(world)
	e := world.Create(positionComponent)
	world.Remove(e)

	_, err := cmds.Entity(e).InsertPrefab(prefab.Of(named("p")))
	if !errors.Is(err, ErrInvalidEntity) {
		t.Errorf("err = %v, want ErrInvalidEntity", err)
	}
}

func TestSpawnedEvents(t *testing.T) {
	world := donburi.NewWorld()
	var received []SpawnedEvent
	SpawnedEventType.Subscribe(world, func(w donburi.World, e SpawnedEvent) {
		received = append(received, e)
	})

	tree := prefab.Of(named("a")).ChildBundle(named("b")).ChildBundle(named("c"))
	root, err := NewCommands(world).PublishEvents(true).SpawnPrefab(tree)
	if err != nil {
		t.Fatal(err)
	}

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	SpawnedEventType.ProcessEvents(world)

	if len(received) != 3 {
		t.Fatalf("expected 3 events, got %d", len(received))
	}
	if received[0].Entity != root.Entity() || received[0].Parent != donburi.Null {
		t.Errorf("event 0 = %+v, want root with no parent", received[0])
	}
	kids := Children(world, root.Entity())
	for i, ev := range received[1:] {
		if ev.Entity != kids[i] || ev.Parent != root.Entity() {
			t.Errorf("event %d = %+v, want child %v of root", i+1, ev, kids[i])
		}
	}
	if got := Count(world); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
}

func TestSpawnedEventsOffByDefault(t *testing.T) {
	world := donburi.NewWorld()
	if _, err := NewCommands(world).SpawnPrefab(prefab.Of(named("a")).ChildBundle(named("b"))); err != nil {
		t.Fatal(err)
	}
	assertEntityCount(t, world, 2)

	var received int
	SpawnedEventType.Subscribe(world, func(w donburi.World, e SpawnedEvent) {
		received++
	})
	SpawnedEventType.ProcessEvents(world)
	if received != 0 {
		t.Errorf("received %d events with publishing off", received)
	}
}

func TestPublishEventsReachesChildScopes(t *testing.T) {
	world := donburi.NewWorld()
	cmds := NewCommands(world).PublishEvents(true)
	host, err := cmds.Spawn()
	if err != nil {
		t.Fatal(err)
	}
	var parents []donburi.Entity
	SpawnedEventType.Subscribe(world, func(w donburi.World, e SpawnedEvent) {
		parents = append(parents, e.Parent)
	})
	hostEntity := host.(*EntityCommands).Entity()
	if _, err := cmds.Entity(hostEntity).Children().SpawnPrefab(prefab.Of(named("kid"))); err != nil {
		t.Fatal(err)
	}
	SpawnedEventType.ProcessEvents(world)
	if len(parents) != 2 || parents[0] != donburi.Null || parents[1] != hostEntity {
		t.Errorf("event parents = %v, want [null %v]", parents, hostEntity)
	}
}

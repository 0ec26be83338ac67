package scene

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phanxgames/prefab"
)

func square(name string, x float64, c Color) Sprite {
	return Sprite{Name: name, X: x, Width: 50, Height: 50, Scale: 0.9, Color: c}
}

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestSpawnPrefabBuildsTree(t *testing.T) {
	s := NewScene()
	red := Color{1, 0, 0, 1}
	tree := prefab.Of(square("red", 0, red)).
		ChildBundle(square("orange-red", 60, red)).
		ChildBundle(square("orange", 120, red)).
		Child(prefab.Of(square("yellow", 180, red)).
			ChildBundle(square("yellow-green", 60, red)).
			ChildBundle(square("green", 120, red)))

	root, err := s.Commands().SpawnPrefab(tree)
	if err != nil {
		t.Fatalf("SpawnPrefab: %v", err)
	}
	n := root.Node()
	if n.Parent != s.Root() {
		t.Error("top-level prefab should hang off the scene root")
	}
	if got, want := fmt.Sprint(names(n.Children())), "[orange-red orange yellow]"; got != want {
		t.Errorf("children = %s, want %s", got, want)
	}
	yellow := n.ChildAt(2)
	if got, want := fmt.Sprint(names(yellow.Children())), "[yellow-green green]"; got != want {
		t.Errorf("yellow children = %s, want %s", got, want)
	}
	if n.Sprite != square("red", 0, red) {
		t.Errorf("sprite = %+v, want the inserted bundle", n.Sprite)
	}

	// Children sit relative to their parent.
	s.UpdateTransforms()
	x, _ := yellow.ChildAt(0).LocalToWorld(0, 0)
	if want := 0.9*180 + 0.9*0.9*60; !approxEqual(x, want) {
		t.Errorf("yellow-green world x = %v, want %v", x, want)
	}
}

func TestSpawnPrefabMatchesManualNesting(t *testing.T) {
	c := Color{0, 0, 1, 1}

	built := NewScene()
	tree := prefab.Of(square("a", 0, c)).
		ChildBundle(square("b", 1, c)).
		Child(prefab.Of(square("c", 2, c)).ChildBundle(square("d", 3, c)))
	if _, err := built.Commands().SpawnPrefab(tree); err != nil {
		t.Fatal(err)
	}

	manual := NewScene()
	a := NewNode("a")
	manual.Root().AddChild(a)
	b := NewNode("b")
	a.AddChild(b)
	cn := NewNode("c")
	a.AddChild(cn)
	cn.AddChild(NewNode("d"))

	var walk func(n *Node) string
	walk = func(n *Node) string {
		out := n.Name + "("
		for _, c := range n.Children() {
			out += walk(c)
		}
		return out + ")"
	}
	if got, want := walk(built.Root()), walk(manual.Root()); got != want {
		t.Errorf("shape = %s, want %s", got, want)
	}
}

func TestSpawnPrefabManyChildren(t *testing.T) {
	const n = 50
	s := NewScene()
	tree := prefab.Of(Sprite{Name: "root"}).ChildBundle(Sprite{Name: "c0"})
	for i := 1; i < n; i++ {
		tree = tree.ChildBundle(Sprite{Name: fmt.Sprintf("c%d", i)})
	}
	root, err := s.Commands().SpawnPrefab(tree)
	if err != nil {
		t.Fatal(err)
	}
	kids := root.Node().Children()
	if len(kids) != n {
		t.Fatalf("children = %d, want %d", len(kids), n)
	}
	for i, k := range kids {
		if want := fmt.Sprintf("c%d", i); k.Name != want {
			t.Errorf("child %d = %q, want %q", i, k.Name, want)
		}
		if k.NumChildren() != 0 {
			t.Errorf("child %d has %d children, want 0", i, k.NumChildren())
		}
	}
}

func TestSpawnIntoDisposedNode(t *testing.T) {
	s := NewScene()
	host := NewNode("host")
	s.Root().AddChild(host)
	ec := Entity(host)
	host.Dispose()

	_, err := ec.Children().SpawnPrefab(prefab.Of(Sprite{Name: "x"}))
	if !errors.Is(err, ErrDisposed) {
		t.Errorf("spawn err = %v, want ErrDisposed", err)
	}
	_, err = ec.InsertPrefab(prefab.Of(Sprite{Name: "x"}))
	if !errors.Is(err, ErrDisposed) {
		t.Errorf("insert err = %v, want ErrDisposed", err)
	}
}

func TestInsertPrefabIntoExistingNode(t *testing.T) {
	s := NewScene()
	host := NewNode("host")
	s.Root().AddChild(host)

	if _, err := Entity(host).InsertPrefab(prefab.Of(Sprite{Name: "p", X: 5}).ChildBundle(Sprite{Name: "c"})); err != nil {
		t.Fatal(err)
	}
	if host.Name != "p" || host.X != 5 {
		t.Errorf("host = %q at %v, want p at 5", host.Name, host.X)
	}
	if host.NumChildren() != 1 || host.ChildAt(0).Name != "c" {
		t.Errorf("host children = %v", names(host.Children()))
	}
}

func TestCollectQuadsOrder(t *testing.T) {
	s := NewScene()
	c := Color{1, 1, 1, 1}
	tree := prefab.Of(Sprite{Name: "p", Width: 10, Height: 10, Color: c}).
		Child(prefab.Of(Sprite{Name: "a", Width: 1, Height: 1, Color: c}).
			ChildBundle(Sprite{Name: "a1", Width: 1, Height: 1, Color: c})).
		ChildBundle(Sprite{Name: "hidden-size", Color: c}).
		ChildBundle(Sprite{Name: "b", Width: 1, Height: 1, Color: c})
	if _, err := s.Commands().SpawnPrefab(tree); err != nil {
		t.Fatal(err)
	}
	s.UpdateTransforms()

	quads := collectQuads(nil, s.Root())
	var got []string
	for _, q := range quads {
		got = append(got, q.node.Name)
	}
	if fmt.Sprint(got) != "[p a a1 b]" {
		t.Errorf("draw order = %v, want [p a a1 b]", got)
	}

	s.Root().ChildAt(0).ChildAt(0).Visible = false
	quads = collectQuads(quads[:0], s.Root())
	if len(quads) != 2 {
		t.Errorf("quads with hidden subtree = %d, want 2", len(quads))
	}
}

func TestSpriteString(t *testing.T) {
	if got := (Sprite{Name: "hero"}).String(); got != "hero" {
		t.Errorf("String = %q", got)
	}
	if got := (Sprite{X: 1, Y: 2, Width: 3, Height: 4}).String(); got != "sprite(1,2 3x4)" {
		t.Errorf("String = %q", got)
	}
}

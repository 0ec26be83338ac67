package prefab

import "fmt"

// --- Host capabilities ---

// Spawner creates new entities. The host's top-level command buffer and a
// child scope both satisfy it: entities spawned through a child scope become
// the last child of the scope's owning entity.
type Spawner[B any] interface {
	Spawn() (EntityCommands[B], error)
}

// EntityCommands issues commands that target a single entity.
type EntityCommands[B any] interface {
	// Insert attaches the bundle's component data to the entity.
	Insert(bundle B) error
	// ChildBuilder opens a scope through which children of this entity
	// are spawned.
	ChildBuilder() Spawner[B]
}

// --- Prefab / Children capabilities ---

// Prefab is a value that knows how to insert itself, and transitively its
// descendants, into one target entity. It returns the commands it was given
// so calls can be chained after realization.
type Prefab[B any] interface {
	InsertInto(ec EntityCommands[B]) (EntityCommands[B], error)
}

// Children is an ordered collection of prefabs that attaches itself as new
// child entities under a scope.
type Children[B any] interface {
	AttachTo(scope Spawner[B]) error
	// Len reports the number of direct children in the collection.
	Len() int
}

// --- Ownership tracking ---

// state records where a tree value is in its single lifetime:
// held by the caller, attached under another node, or spent.
type state uint8

const (
	stateFree state = iota
	stateAttached
	stateSpent
)

func (s state) String() string {
	switch s {
	case stateFree:
		return "free"
	case stateAttached:
		return "attached"
	default:
		return "consumed"
	}
}

type claim struct {
	s state
}

func (c *claim) current() state { return c.s }

// move transitions the claim or panics. Every composition and realization
// step goes through here, so reusing a moved-from value is caught at the
// call that reuses it.
func (c *claim) move(from, to state, op string) {
	if c.s != from {
		panic(fmt.Sprintf("prefab: %s on %s prefab", op, c.s))
	}
	c.s = to
}

// tracked is implemented by the tree values built in this package.
// Prefabs supplied by callers are not tracked.
type tracked[B any] interface {
	Prefab[B]
	current() state
	move(from, to state, op string)
	insert(ec EntityCommands[B]) (EntityCommands[B], error)
}

// checkChild validates a Child call before either operand changes state, so
// a rejected call leaves both usable.
func checkChild[B any](owner tracked[B], child Prefab[B]) {
	if child == nil {
		panic("prefab: cannot add nil child")
	}
	if s := owner.current(); s != stateFree {
		panic(fmt.Sprintf("prefab: Child on %s prefab", s))
	}
	if t, ok := child.(tracked[B]); ok {
		if t == owner {
			panic("prefab: cannot add a prefab as its own child")
		}
		if s := t.current(); s != stateFree {
			panic(fmt.Sprintf("prefab: Child on %s prefab", s))
		}
	}
}

// adopt takes ownership of p as a child of another node. Callers run
// checkChild first.
func adopt[B any](p Prefab[B]) {
	if t, ok := p.(tracked[B]); ok {
		t.move(stateFree, stateAttached, "Child")
	}
}

// realizeChild inserts an attached child. Untracked prefabs go through their
// own InsertInto.
func realizeChild[B any](p Prefab[B], ec EntityCommands[B]) (EntityCommands[B], error) {
	if t, ok := p.(tracked[B]); ok {
		t.move(stateAttached, stateSpent, "InsertInto")
		return t.insert(ec)
	}
	return p.InsertInto(ec)
}

// --- Leaf ---

// Leaf is a prefab made of a bundle alone, with no children.
type Leaf[B any] struct {
	claim
	bundle B
}

// Of wraps a bundle as a leaf prefab.
func Of[B any](bundle B) *Leaf[B] {
	return &Leaf[B]{bundle: bundle}
}

// Bundle returns the leaf's bundle.
func (l *Leaf[B]) Bundle() B {
	return l.bundle
}

// Child turns the leaf into a parent with child as its only child.
// Both the leaf and child are consumed.
func (l *Leaf[B]) Child(child Prefab[B]) *ParentNode[B] {
	checkChild[B](l, child)
	l.move(stateFree, stateSpent, "Child")
	adopt(child)
	return &ParentNode[B]{parent: l.bundle, children: only[B]{child}}
}

// ChildBundle is shorthand for l.Child(Of(bundle)).
func (l *Leaf[B]) ChildBundle(bundle B) *ParentNode[B] {
	return l.Child(Of(bundle))
}

// InsertInto attaches the bundle to ec. No child scope is opened.
func (l *Leaf[B]) InsertInto(ec EntityCommands[B]) (EntityCommands[B], error) {
	l.move(stateFree, stateSpent, "InsertInto")
	return l.insert(ec)
}

func (l *Leaf[B]) insert(ec EntityCommands[B]) (EntityCommands[B], error) {
	return ec, ec.Insert(l.bundle)
}

func (l *Leaf[B]) String() string {
	return Describe[B](l)
}

// --- ParentNode ---

// ParentNode pairs a bundle with a non-empty collection of children.
// It is only produced by Child.
type ParentNode[B any] struct {
	claim
	parent   B
	children Children[B]
}

// Bundle returns the node's own bundle.
func (n *ParentNode[B]) Bundle() B {
	return n.parent
}

// Len returns the number of direct children.
func (n *ParentNode[B]) Len() int {
	return n.children.Len()
}

// Child returns a node with the same bundle and child appended as the last
// (youngest) child. Both n and child are consumed.
func (n *ParentNode[B]) Child(child Prefab[B]) *ParentNode[B] {
	checkChild[B](n, child)
	n.move(stateFree, stateSpent, "Child")
	adopt(child)
	out := &ParentNode[B]{
		parent:   n.parent,
		children: &SiblingsNode[B]{seniors: n.children, youngest: child},
	}
	if globalDebug {
		debugCheckChildCount(out)
	}
	return out
}

// ChildBundle is shorthand for n.Child(Of(bundle)).
func (n *ParentNode[B]) ChildBundle(bundle B) *ParentNode[B] {
	return n.Child(Of(bundle))
}

// InsertInto attaches the node's bundle to ec, then spawns its children
// under ec in declaration order.
func (n *ParentNode[B]) InsertInto(ec EntityCommands[B]) (EntityCommands[B], error) {
	n.move(stateFree, stateSpent, "InsertInto")
	return n.insert(ec)
}

func (n *ParentNode[B]) insert(ec EntityCommands[B]) (EntityCommands[B], error) {
	if err := ec.Insert(n.parent); err != nil {
		return ec, err
	}
	if err := n.children.AttachTo(ec.ChildBuilder()); err != nil {
		return ec, err
	}
	return ec, nil
}

func (n *ParentNode[B]) String() string {
	return Describe[B](n)
}

// --- Children collections ---

// only is the single-child collection.
type only[B any] struct {
	p Prefab[B]
}

func (o only[B]) AttachTo(scope Spawner[B]) error {
	ec, err := scope.Spawn()
	if err != nil {
		return err
	}
	_, err = realizeChild(o.p, ec)
	return err
}

func (o only[B]) Len() int { return 1 }

// SiblingsNode holds every previously added child (seniors) and the most
// recently added one (youngest). Seniors always attach first, so children
// reach the host in the order they were declared. The zero value is not
// usable; SiblingsNode values are built by ParentNode.Child.
type SiblingsNode[B any] struct {
	seniors  Children[B]
	youngest Prefab[B]
}

// AttachTo attaches the seniors, then spawns the youngest.
func (s *SiblingsNode[B]) AttachTo(scope Spawner[B]) error {
	if err := s.seniors.AttachTo(scope); err != nil {
		return err
	}
	return only[B]{s.youngest}.AttachTo(scope)
}

// Len returns the number of siblings in the chain.
func (s *SiblingsNode[B]) Len() int {
	return s.seniors.Len() + 1
}

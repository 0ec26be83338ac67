package prefab

import (
	"fmt"
	"strings"
)

// Describe renders the shape of p, one node per line, children indented by
// two spaces under their parent in declaration order. Bundles are printed
// with %v. Prefabs not built by this package print as their type. p is not
// consumed.
func Describe[B any](p Prefab[B]) string {
	var sb strings.Builder
	describe(&sb, p, 0)
	return strings.TrimSuffix(sb.String(), "\n")
}

// Count returns the number of entities realizing p would create. A prefab not
// built by this package counts as one entity. p is not consumed.
func Count[B any](p Prefab[B]) int {
	switch n := p.(type) {
	case *Leaf[B]:
		return 1
	case *ParentNode[B]:
		total := 1
		eachChild(n.children, func(c Prefab[B]) {
			total += Count(c)
		})
		return total
	default:
		return 1
	}
}

func describe[B any](sb *strings.Builder, p Prefab[B], depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	switch n := p.(type) {
	case *Leaf[B]:
		fmt.Fprintf(sb, "%v\n", n.bundle)
	case *ParentNode[B]:
		fmt.Fprintf(sb, "%v\n", n.parent)
		eachChild(n.children, func(c Prefab[B]) {
			describe(sb, c, depth+1)
		})
	default:
		fmt.Fprintf(sb, "%T\n", p)
	}
}

// eachChild visits the prefabs of c oldest first without attaching them.
func eachChild[B any](c Children[B], fn func(Prefab[B])) {
	switch n := c.(type) {
	case only[B]:
		fn(n.p)
	case *SiblingsNode[B]:
		eachChild(n.seniors, fn)
		fn(n.youngest)
	}
}

package definition

import "github.com/jolespin/keggprofiler/ko"

// Expr is a node of a parsed module definition: a Leaf, a Seq (AND) or an
// Alt (OR). The concrete types are exported so the graph compiler can
// switch on them; the parser builds every node through newSeq/newAlt, so the
// canonical-tree invariants (no unary Seq/Alt, no Alt-under-Alt or
// Seq-under-Seq) hold for every tree Parse returns.
type Expr interface {
	isExpr()
}

// Leaf is a single KO atom.
type Leaf struct {
	KO ko.KO
}

func (Leaf) isExpr() {}

// Seq is a sequential (AND) combination: every child must be satisfied, in
// order, for the group to succeed.
type Seq struct {
	Children []Expr
}

func (Seq) isExpr() {}

// Alt is an alternation (OR) combination: any one child suffices.
type Alt struct {
	Children []Expr
}

func (Alt) isExpr() {}

// newSeq builds a canonical Seq: a single child collapses to that child,
// and any immediate Seq children are flattened into this one.
func newSeq(children []Expr) Expr {
	if len(children) == 1 {
		return children[0]
	}

	flat := make([]Expr, 0, len(children))
	for _, c := range children {
		if s, ok := c.(Seq); ok {
			flat = append(flat, s.Children...)
			continue
		}
		flat = append(flat, c)
	}

	return Seq{Children: flat}
}

// newAlt builds a canonical Alt: a single child collapses to that child,
// and any immediate Alt children are flattened into this one.
func newAlt(children []Expr) Expr {
	if len(children) == 1 {
		return children[0]
	}

	flat := make([]Expr, 0, len(children))
	for _, c := range children {
		if a, ok := c.(Alt); ok {
			flat = append(flat, a.Children...)
			continue
		}
		flat = append(flat, c)
	}

	return Alt{Children: flat}
}

// collectLeaves walks expr and appends every KO leaf it finds into out.
func collectLeaves(expr Expr, out ko.Set) {
	switch n := expr.(type) {
	case Leaf:
		out[n.KO] = struct{}{}
	case Seq:
		for _, c := range n.Children {
			collectLeaves(c, out)
		}
	case Alt:
		for _, c := range n.Children {
			collectLeaves(c, out)
		}
	}
}

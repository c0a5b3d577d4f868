package pathway

import (
	"fmt"

	"github.com/jolespin/keggprofiler/internal/definition"
	"github.com/jolespin/keggprofiler/ko"
)

/*
Compile — module definition → weighted DAG multigraph

Algorithm (recursive, state = next free interior node id, starting at 2):

  - compile(Leaf(k), src, dst): add one edge src->dst labeled k.
  - compile(Seq([c1..cn]), src, dst): allocate n-1 fresh interior nodes and
    chain src -c1-> m1 -c2-> m2 ... -cn-> dst.
  - compile(Alt([c1..cn]), src, dst): recurse every ci between the same
    (src, dst), producing parallel edges when ci is a leaf.

Entry point is compile(root, 0, 1) after reserving node ids 0 (start) and
1 (end). Child iteration order is the parser's left-to-right order and
interior ids are allocated depth-first, left-to-right, so two compiles of
the same definition are structurally identical.
*/
func Compile(expr definition.Expr, moduleID string) (*Graph, KOToEdges, error) {
	b := &builder{
		out:  make(map[int][]int),
		in:   make(map[int][]int),
		next: 2,
	}
	b.compile(expr, StartNode, EndNode)

	g := &Graph{edges: b.edges, out: b.out, in: b.in, nodes: b.next}
	if err := checkInvariants(g); err != nil {
		return nil, nil, fmt.Errorf("%w: module %s: %v", ErrGraphInvariantViolated, moduleID, err)
	}

	return g, buildKOToEdges(g), nil
}

// builder accumulates edges and adjacency while walking the expression
// tree; next is the id the next freshly allocated interior node receives.
type builder struct {
	edges []Edge
	out   map[int][]int
	in    map[int][]int
	next  int
}

func (b *builder) newNode() int {
	id := b.next
	b.next++
	return id
}

func (b *builder) addEdge(src, dst int, label ko.KO) {
	id := len(b.edges)
	b.edges = append(b.edges, Edge{
		ID: id, From: src, To: dst, Label: label,
		BaseWeight: 1, CurrentWeight: 1,
	})
	b.out[src] = append(b.out[src], id)
	b.in[dst] = append(b.in[dst], id)
}

func (b *builder) compile(expr definition.Expr, src, dst int) {
	switch n := expr.(type) {
	case definition.Leaf:
		b.addEdge(src, dst, n.KO)
	case definition.Seq:
		cur := src
		last := len(n.Children) - 1
		for i, c := range n.Children {
			next := dst
			if i != last {
				next = b.newNode()
			}
			b.compile(c, cur, next)
			cur = next
		}
	case definition.Alt:
		for _, c := range n.Children {
			b.compile(c, src, dst)
		}
	}
}

// buildKOToEdges scans edges in build order, recording the first edge that
// realizes each (label, from, to) triple — this is also the edge Evaluate
// zeros when that KO is observed.
func buildKOToEdges(g *Graph) KOToEdges {
	kte := make(KOToEdges)
	seen := make(map[[2]int]map[ko.KO]bool)
	for _, e := range g.edges {
		if e.Synthetic {
			continue
		}
		key := [2]int{e.From, e.To}
		if seen[key] == nil {
			seen[key] = make(map[ko.KO]bool)
		}
		if seen[key][e.Label] {
			continue
		}
		seen[key][e.Label] = true
		kte[e.Label] = append(kte[e.Label], EdgeRef{From: e.From, To: e.To, EdgeID: e.ID})
	}

	return kte
}

// checkInvariants asserts the graph is acyclic with a well-defined
// topological order, and that every non-sink node has an out-edge while
// every non-source node has an in-edge. Every edge's BaseWeight is 1 by
// construction above, so that invariant needs no separate check here.
func checkInvariants(g *Graph) error {
	if _, err := topoOrder(g); err != nil {
		return err
	}
	for n := 0; n < g.nodes; n++ {
		if n != EndNode && len(g.out[n]) == 0 {
			return fmt.Errorf("node %d has no out-edge", n)
		}
		if n != StartNode && len(g.in[n]) == 0 {
			return fmt.Errorf("node %d has no in-edge", n)
		}
	}

	return nil
}

// topoOrder computes a topological order of g's nodes via Kahn's algorithm,
// returning an error if the graph contains a cycle.
func topoOrder(g *Graph) ([]int, error) {
	indeg := make([]int, g.nodes)
	for n := 0; n < g.nodes; n++ {
		indeg[n] = len(g.in[n])
	}

	queue := make([]int, 0, g.nodes)
	for n := 0; n < g.nodes; n++ {
		if indeg[n] == 0 {
			queue = append(queue, n)
		}
	}

	order := make([]int, 0, g.nodes)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, eid := range g.out[n] {
			v := g.edges[eid].To
			indeg[v]--
			if indeg[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	if len(order) != g.nodes {
		return nil, fmt.Errorf("cycle detected: only %d/%d nodes ordered", len(order), g.nodes)
	}

	return order, nil
}

package pathway

import "github.com/jolespin/keggprofiler/ko"

// StartNode and EndNode are the graph's fixed source and sink node IDs.
// Every other node ID (>= 2) is an interior node allocated by the compiler.
const (
	StartNode = 0
	EndNode   = 1
)

// Edge is one (possibly parallel) labeled step of a module's graph.
// BaseWeight is always 1 at build time; CurrentWeight mirrors it until
// an evaluation overrides it through a per-call weight map (never by
// mutating the Edge itself).
type Edge struct {
	ID            int
	From, To      int
	Label         ko.KO
	Synthetic     bool // true only for the unlabeled 0->1 edge of Trivial()
	BaseWeight    float64
	CurrentWeight float64
}

// EdgeRef names one (u,v) pair carrying a given KO label, plus the id of
// the first edge (in build order) realizing it — the edge Evaluate zeros
// when that KO is observed. Only that first parallel edge is zeroed, never
// every edge sharing the label, so two alternative edges between the same
// pair of nodes stay independently scoreable.
type EdgeRef struct {
	From, To int
	EdgeID   int
}

// KOToEdges indexes, for each KO, every (u,v) pair one of its parallel
// edges labels.
type KOToEdges map[ko.KO][]EdgeRef

// Graph is the compiled DAG multigraph for one module definition.
type Graph struct {
	edges []Edge
	out   map[int][]int // node -> outgoing edge IDs, in build order
	in    map[int][]int // node -> incoming edge IDs, in build order
	nodes int           // number of allocated node IDs (0..nodes-1)
}

// NodeCount returns the number of nodes allocated in the graph, including
// the fixed start/end nodes.
func (g *Graph) NodeCount() int { return g.nodes }

// Edges returns every edge of the graph, indexed by Edge.ID.
func (g *Graph) Edges() []Edge { return g.edges }

// Edge returns the edge with the given id.
func (g *Graph) Edge(id int) Edge { return g.edges[id] }

// OutEdges returns the IDs of edges leaving node, in build order.
func (g *Graph) OutEdges(node int) []int { return g.out[node] }

// InEdges returns the IDs of edges entering node, in build order.
func (g *Graph) InEdges(node int) []int { return g.in[node] }

// Trivial returns the degenerate graph for an empty/trivial module
// definition: a single unlabeled edge from StartNode to EndNode.
// Evaluating it against any KO set yields coverage 0 and an empty path.
func Trivial() (*Graph, KOToEdges) {
	g := &Graph{
		edges: []Edge{{ID: 0, From: StartNode, To: EndNode, Synthetic: true, BaseWeight: 1, CurrentWeight: 1}},
		out:   map[int][]int{StartNode: {0}},
		in:    map[int][]int{EndNode: {0}},
		nodes: 2,
	}

	return g, KOToEdges{}
}

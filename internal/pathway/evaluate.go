package pathway

import (
	"sort"

	"github.com/jolespin/keggprofiler/ko"
)

// Result is the outcome of evaluating one module's graph against one KO set.
type Result struct {
	Coverage                 float64
	MostCompletePath         []ko.KO
	NumberOfBestPaths        int
	RequiredKOsInPath        ko.Set
	RequiredKOsMissingInPath ko.Set
	StepCoverage             []int
}

// empty returns the zero result shared by both edge cases that short-circuit
// scoring entirely: a trivial (label-free) module, and an evaluation KO set
// with no overlap at all with the module's indexed KOs.
func empty() *Result {
	return &Result{
		MostCompletePath:         []ko.KO{},
		RequiredKOsInPath:        ko.Set{},
		RequiredKOsMissingInPath: ko.Set{},
		StepCoverage:             []int{},
	}
}

// Evaluate scores g against evalKOs: it zeros the weight of the first edge
// realizing each observed KO on each (u,v) pair it labels (step 1), enumerates every source-to-sink path
// (step 2), scores each path (step 3), selects the most-complete path with
// a deterministic tie-break (step 4), and derives coverage outputs (step 5).
func Evaluate(g *Graph, kte KOToEdges, optional ko.Set, evalKOs ko.Set) *Result {
	if !anyObserved(kte, evalKOs) {
		return empty()
	}

	override := weightOverride(kte, evalKOs)

	candidates := enumeratePaths(g)

	type scored struct {
		path  []int // edge IDs
		m     float64
		label []ko.KO
	}
	best := make([]scored, 0, len(candidates))
	bestM := 1.0
	for _, p := range candidates {
		var base, cur float64
		for _, eid := range p {
			e := g.edges[eid]
			base += e.BaseWeight
			cur += currentWeight(e, override)
		}
		m := 1.0
		if base > 0 {
			m = cur / base
		}
		labels := pathLabels(g, p)
		s := scored{path: p, m: m, label: labels}
		switch {
		case m < bestM:
			bestM = m
			best = []scored{s}
		case m == bestM:
			best = append(best, s)
		}
	}

	// Tie-break: lexicographically smallest KO-label sequence.
	sort.Slice(best, func(i, j int) bool { return lessLabels(best[i].label, best[j].label) })
	winner := best[0]

	stepCoverage := make([]int, len(winner.path))
	labelPath := make([]ko.KO, 0, len(winner.path))
	for i, eid := range winner.path {
		e := g.edges[eid]
		if e.Synthetic {
			continue
		}
		labelPath = append(labelPath, e.Label)
		if currentWeight(e, override) == 0 {
			stepCoverage[i] = 1
		}
	}
	stepCoverage = stepCoverage[:len(labelPath)]

	pathSet := ko.NewSet(labelPath...)
	required := evalKOs.Intersect(pathSet).Minus(optional)
	missing := pathSet.Minus(evalKOs).Minus(optional)

	return &Result{
		Coverage:                 1 - bestM,
		MostCompletePath:         labelPath,
		NumberOfBestPaths:        len(best),
		RequiredKOsInPath:        required,
		RequiredKOsMissingInPath: missing,
		StepCoverage:             stepCoverage,
	}
}

// anyObserved reports whether evalKOs intersects kte's key set at all.
func anyObserved(kte KOToEdges, evalKOs ko.Set) bool {
	for k := range evalKOs {
		if _, ok := kte[k]; ok {
			return true
		}
	}

	return false
}

// weightOverride zeros exactly the first parallel edge (in build order)
// realizing each observed KO between each (u,v) pair it labels.
func weightOverride(kte KOToEdges, evalKOs ko.Set) map[int]float64 {
	override := make(map[int]float64)
	for k := range evalKOs {
		for _, ref := range kte[k] {
			override[ref.EdgeID] = 0
		}
	}

	return override
}

func currentWeight(e Edge, override map[int]float64) float64 {
	if w, ok := override[e.ID]; ok {
		return w
	}

	return e.CurrentWeight
}

// enumeratePaths returns every source(0)->sink(1) path as an ordered list
// of edge IDs, computed in reverse topological order so that parallel
// alternatives and sequential chains both enumerate exhaustively.
func enumeratePaths(g *Graph) [][]int {
	order, err := topoOrder(g)
	if err != nil {
		// checkInvariants already guarantees acyclicity at compile time.
		panic(err)
	}

	pathsFrom := make(map[int][][]int, g.nodes)
	pathsFrom[EndNode] = [][]int{{}}

	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		if node == EndNode {
			continue
		}
		var list [][]int
		for _, eid := range g.out[node] {
			e := g.edges[eid]
			for _, suffix := range pathsFrom[e.To] {
				p := make([]int, 0, 1+len(suffix))
				p = append(p, eid)
				p = append(p, suffix...)
				list = append(list, p)
			}
		}
		pathsFrom[node] = list
	}

	return pathsFrom[StartNode]
}

// pathLabels returns the non-synthetic KO labels along an edge-id path.
func pathLabels(g *Graph, path []int) []ko.KO {
	labels := make([]ko.KO, 0, len(path))
	for _, eid := range path {
		e := g.edges[eid]
		if e.Synthetic {
			continue
		}
		labels = append(labels, e.Label)
	}

	return labels
}

// lessLabels orders two KO-label sequences lexicographically.
func lessLabels(a, b []ko.KO) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

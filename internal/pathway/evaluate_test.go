package pathway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jolespin/keggprofiler/internal/definition"
	"github.com/jolespin/keggprofiler/internal/pathway"
	"github.com/jolespin/keggprofiler/ko"
)

func parseCompile(t *testing.T, def string) (*pathway.Graph, pathway.KOToEdges, ko.Set) {
	t.Helper()
	expr, optional, err := definition.Parse(def)
	require.NoError(t, err)
	g, kte, err := pathway.Compile(expr, "test")
	require.NoError(t, err)
	return g, kte, optional
}

func kset(kos ...string) ko.Set {
	s := make(ko.Set, len(kos))
	for _, k := range kos {
		s[ko.KO(k)] = struct{}{}
	}
	return s
}

// Sequential module, both KOs observed, full coverage.
func TestEvaluate_SequentialFullCoverage(t *testing.T) {
	g, kte, optional := parseCompile(t, "K00001 K00002")

	res := pathway.Evaluate(g, kte, optional, kset("K00001", "K00002"))

	assert.Equal(t, 1.0, res.Coverage)
	assert.Equal(t, []ko.KO{"K00001", "K00002"}, res.MostCompletePath)
	assert.Equal(t, []int{1, 1}, res.StepCoverage)
}

// Alternative module with both branches observed ties every path at full
// coverage; the tie-break picks the lexicographically smallest KO-label
// sequence, so the K00001 branch wins over K00002.
func TestEvaluate_AlternativeTieBreak(t *testing.T) {
	g, kte, optional := parseCompile(t, "K00001,K00002")

	res := pathway.Evaluate(g, kte, optional, kset("K00001", "K00002"))

	assert.Equal(t, 1.0, res.Coverage)
	assert.Equal(t, 2, res.NumberOfBestPaths)
	assert.Equal(t, []ko.KO{"K00001"}, res.MostCompletePath)
	assert.Equal(t, []int{1}, res.StepCoverage)
}

// A grouped alternative followed by a required step reaches full coverage
// when one branch of the group plus the trailing step are both observed.
func TestEvaluate_GroupThenSeqFullCoverage(t *testing.T) {
	g, kte, optional := parseCompile(t, "(K00001,K00002) K00003")

	res := pathway.Evaluate(g, kte, optional, kset("K00002", "K00003"))

	assert.Equal(t, 1.0, res.Coverage)
	assert.Equal(t, []ko.KO{"K00002", "K00003"}, res.MostCompletePath)
	assert.Equal(t, []int{1, 1}, res.StepCoverage)
}

// The same grouped-alternative-then-required-step module drops to half
// coverage when only the trailing step is observed and neither branch of
// the group is.
func TestEvaluate_GroupThenSeqPartialCoverage(t *testing.T) {
	g, kte, optional := parseCompile(t, "(K00001,K00002) K00003")

	res := pathway.Evaluate(g, kte, optional, kset("K00003"))

	assert.Equal(t, 0.5, res.Coverage)
	require.Len(t, res.MostCompletePath, 2)
	assert.Equal(t, ko.KO("K00003"), res.MostCompletePath[1])
	assert.Equal(t, []int{0, 1}, res.StepCoverage)
}

// An empty evaluation KO set yields coverage 0 and an empty path.
func TestEvaluate_EmptyInput(t *testing.T) {
	g, kte, optional := parseCompile(t, "K00001 K00002")

	res := pathway.Evaluate(g, kte, optional, ko.Set{})

	assert.Equal(t, 0.0, res.Coverage)
	assert.Empty(t, res.MostCompletePath)
	assert.Empty(t, res.StepCoverage)
}

// Trivial module definition: coverage 0, empty path, regardless of input.
func TestEvaluate_TrivialModule(t *testing.T) {
	g, kte := pathway.Trivial()

	res := pathway.Evaluate(g, kte, ko.Set{}, kset("K00001"))

	assert.Equal(t, 0.0, res.Coverage)
	assert.Empty(t, res.MostCompletePath)
	assert.Empty(t, res.StepCoverage)
}

// An optional KO that the genome lacks never counts as missing.
func TestEvaluate_OptionalKOsNeverMissing(t *testing.T) {
	g, kte, optional := parseCompile(t, "K00001 -K00002")

	res := pathway.Evaluate(g, kte, optional, kset("K00001"))

	assert.False(t, res.RequiredKOsMissingInPath.Has("K00002"))
}

// Coverage stays within [0,1] and is monotone non-decreasing as the
// observed KO set grows by inclusion.
func TestEvaluate_MonotoneAndBounded(t *testing.T) {
	g, kte, optional := parseCompile(t, "K00001 (K00002,K00003) K00004")

	a := pathway.Evaluate(g, kte, optional, kset("K00001"))
	b := pathway.Evaluate(g, kte, optional, kset("K00001", "K00002"))
	c := pathway.Evaluate(g, kte, optional, kset("K00001", "K00002", "K00003", "K00004"))

	for _, r := range []*pathway.Result{a, b, c} {
		assert.GreaterOrEqual(t, r.Coverage, 0.0)
		assert.LessOrEqual(t, r.Coverage, 1.0)
	}
	assert.LessOrEqual(t, a.Coverage, b.Coverage)
	assert.LessOrEqual(t, b.Coverage, c.Coverage)
	assert.Equal(t, 1.0, c.Coverage)
}

// StepCoverage always has exactly one entry per step of MostCompletePath.
func TestEvaluate_StepLengthMatchesPathLength(t *testing.T) {
	g, kte, optional := parseCompile(t, "K00001 (K00002,K00003) K00004")

	for _, kos := range []ko.Set{
		kset("K00001"),
		kset("K00001", "K00002"),
		kset("K00001", "K00002", "K00003", "K00004"),
		{},
	} {
		res := pathway.Evaluate(g, kte, optional, kos)
		assert.Len(t, res.StepCoverage, len(res.MostCompletePath))
	}
}

// Zeroing affects only one of two parallel edges sharing a KO label: a
// second edge carrying the same label between the same pair of nodes is
// still scored independently.
func TestEvaluate_OnlyFirstParallelEdgeZeroed(t *testing.T) {
	// "K00001,K00001" is a degenerate module with two parallel edges
	// carrying the same label between 0 and 1.
	g, kte, optional := parseCompile(t, "K00001,K00001")
	require.Len(t, kte[ko.KO("K00001")], 1, "ko_to_edges dedupes by (from,to) pair")

	res := pathway.Evaluate(g, kte, optional, kset("K00001"))
	assert.Equal(t, 1.0, res.Coverage)
	assert.Equal(t, 1, res.NumberOfBestPaths)
}

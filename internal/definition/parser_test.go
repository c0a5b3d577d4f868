package definition_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jolespin/keggprofiler/internal/definition"
	"github.com/jolespin/keggprofiler/ko"
)

func k(s string) ko.KO { return ko.KO(s) }

func TestParse_Seq(t *testing.T) {
	expr, optional, err := definition.Parse("K00001 K00002")
	require.NoError(t, err)
	assert.Empty(t, optional)

	seq, ok := expr.(definition.Seq)
	require.True(t, ok)
	require.Len(t, seq.Children, 2)
	assert.Equal(t, definition.Leaf{KO: k("K00001")}, seq.Children[0])
	assert.Equal(t, definition.Leaf{KO: k("K00002")}, seq.Children[1])
}

func TestParse_Alt(t *testing.T) {
	expr, _, err := definition.Parse("K00001,K00002")
	require.NoError(t, err)

	alt, ok := expr.(definition.Alt)
	require.True(t, ok)
	require.Len(t, alt.Children, 2)
}

func TestParse_GroupedAltThenSeq(t *testing.T) {
	expr, _, err := definition.Parse("(K00001,K00002) K00003")
	require.NoError(t, err)

	seq, ok := expr.(definition.Seq)
	require.True(t, ok)
	require.Len(t, seq.Children, 2)
	_, ok = seq.Children[0].(definition.Alt)
	assert.True(t, ok)
	assert.Equal(t, definition.Leaf{KO: k("K00003")}, seq.Children[1])
}

func TestParse_FlattensRedundantGrouping(t *testing.T) {
	expr, _, err := definition.Parse("(K00001 K00002)")
	require.NoError(t, err)
	assert.Equal(t, definition.Seq{Children: []definition.Expr{
		definition.Leaf{KO: k("K00001")},
		definition.Leaf{KO: k("K00002")},
	}}, expr)
}

func TestParse_FlattensNestedAlt(t *testing.T) {
	expr, _, err := definition.Parse("K00001,(K00002,K00003)")
	require.NoError(t, err)
	alt, ok := expr.(definition.Alt)
	require.True(t, ok)
	assert.Len(t, alt.Children, 3)
}

func TestParse_OptionalMarksLeaf(t *testing.T) {
	expr, optional, err := definition.Parse("K00001 -K00002")
	require.NoError(t, err)
	assert.True(t, optional.Has(k("K00002")))
	assert.False(t, optional.Has(k("K00001")))

	seq := expr.(definition.Seq)
	assert.Equal(t, definition.Leaf{KO: k("K00002")}, seq.Children[1])
}

func TestParse_OptionalGroupMarksEveryLeaf(t *testing.T) {
	_, optional, err := definition.Parse("-(K00001,K00002)")
	require.NoError(t, err)
	assert.True(t, optional.Has(k("K00001")))
	assert.True(t, optional.Has(k("K00002")))
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		def  string
		want error
	}{
		{"unbalanced open", "(K00001", definition.ErrUnbalancedParen},
		{"unbalanced close", "K00001)", definition.ErrUnbalancedParen},
		{"empty group", "()", definition.ErrEmptyGroup},
		{"empty alternative", "K00001,,K00002", definition.ErrEmptyGroup},
		{"lexical error", "K00001 & K00002", definition.ErrLexical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := definition.Parse(tc.def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	defs := []string{
		"K00001 K00002",
		"K00001,K00002",
		"(K00001,K00002) K00003",
		"K00001 (K00002,K00003) K00004",
	}
	for _, d := range defs {
		t.Run(d, func(t *testing.T) {
			expr, optional, err := definition.Parse(d)
			require.NoError(t, err)

			out := definition.Serialize(expr, optional)
			expr2, optional2, err := definition.Parse(out)
			require.NoError(t, err)

			assert.Equal(t, expr, expr2)
			assert.Equal(t, optional, optional2)
		})
	}
}

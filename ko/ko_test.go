package ko_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jolespin/keggprofiler/ko"
)

func TestNew_ValidatesPattern(t *testing.T) {
	k, err := ko.New("K00001")
	require.NoError(t, err)
	assert.Equal(t, ko.KO("K00001"), k)
	assert.Equal(t, "K00001", k.String())
}

func TestNew_RejectsMalformed(t *testing.T) {
	cases := []string{"K0001", "K000011", "k00001", "K0000a", ""}
	for _, c := range cases {
		_, err := ko.New(c)
		require.Error(t, err, c)
		assert.True(t, errors.Is(err, ko.ErrInvalidKO))
	}
}

func TestSet_UnionIntersectMinus(t *testing.T) {
	a := ko.NewSet("K00001", "K00002")
	b := ko.NewSet("K00002", "K00003")

	assert.Equal(t, ko.NewSet("K00001", "K00002", "K00003"), a.Union(b))
	assert.Equal(t, ko.NewSet("K00002"), a.Intersect(b))
	assert.Equal(t, ko.NewSet("K00001"), a.Minus(b))
}

func TestSet_Has(t *testing.T) {
	var nilSet ko.Set
	assert.False(t, nilSet.Has("K00001"))

	s := ko.NewSet("K00001")
	assert.True(t, s.Has("K00001"))
	assert.False(t, s.Has("K00002"))
}

func TestSet_Slice(t *testing.T) {
	s := ko.NewSet("K00001", "K00002")
	slice := s.Slice()
	assert.ElementsMatch(t, []ko.KO{"K00001", "K00002"}, slice)
}

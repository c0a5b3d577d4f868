package batch_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jolespin/keggprofiler/batch"
	"github.com/jolespin/keggprofiler/catalog"
	"github.com/jolespin/keggprofiler/ko"
)

func testCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	cat, failures := catalog.Build(map[string]string{
		"M00001": "K00001 K00002",
		"M00002": "K00003,K00004",
	}, nil, nil)
	require.Empty(t, failures)

	return cat
}

func TestRun_EvaluatesEveryGenomeModulePair(t *testing.T) {
	cat := testCatalog(t)
	genomes := map[string]ko.Set{
		"gA": ko.NewSet("K00001", "K00002"),
		"gB": ko.NewSet("K00003"),
	}

	res, err := batch.Run(context.Background(), genomes, cat, batch.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"gA", "gB"}, res.Genomes)
	assert.Equal(t, []string{"M00001", "M00002"}, res.Modules)

	assert.Equal(t, 1.0, res.Data["gA"]["M00001"].Coverage)
	assert.Equal(t, 0.0, res.Data["gA"]["M00002"].Coverage)
	assert.Equal(t, 1.0, res.Data["gB"]["M00002"].Coverage)
}

func TestRun_NoOverlapShortCircuitsToZero(t *testing.T) {
	cat := testCatalog(t)
	genomes := map[string]ko.Set{"gA": ko.NewSet("K99999")}

	res, err := batch.Run(context.Background(), genomes, cat, batch.Options{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Data["gA"]["M00001"].Coverage)
	assert.Empty(t, res.Data["gA"]["M00001"].StepCoverage)
}

func TestRun_DeterministicRegardlessOfNJobs(t *testing.T) {
	cat := testCatalog(t)
	genomes := map[string]ko.Set{
		"gA": ko.NewSet("K00001", "K00002"),
		"gB": ko.NewSet("K00003"),
		"gC": ko.NewSet("K00004"),
	}

	unbounded, err := batch.Run(context.Background(), genomes, cat, batch.Options{})
	require.NoError(t, err)

	bounded, err := batch.Run(context.Background(), genomes, cat, batch.Options{NJobs: 1})
	require.NoError(t, err)

	assert.Equal(t, unbounded.Genomes, bounded.Genomes)
	assert.Equal(t, unbounded.Data, bounded.Data)
}

func TestRun_CancellationNeverReturnsIncompleteGenomes(t *testing.T) {
	cat := testCatalog(t)
	genomes := map[string]ko.Set{
		"gA": ko.NewSet("K00001"),
		"gB": ko.NewSet("K00002"),
		"gC": ko.NewSet("K00003"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already canceled before Run starts

	res, err := batch.Run(ctx, genomes, cat, batch.Options{})

	if err != nil {
		assert.Empty(t, res.Genomes)
	}
	for _, g := range res.Genomes {
		assert.Contains(t, []string{"gA", "gB", "gC"}, g)
		_, ok := res.Data[g]
		assert.True(t, ok, "genome %s present in Genomes but missing from Data", g)
	}
}

func TestRun_ProgressCalledOncePerGenome(t *testing.T) {
	cat := testCatalog(t)
	genomes := map[string]ko.Set{
		"gA": ko.NewSet("K00001"),
		"gB": ko.NewSet("K00002"),
	}

	var mu sync.Mutex
	calls := 0
	_, err := batch.Run(context.Background(), genomes, cat, batch.Options{
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			assert.Equal(t, 2, total)
			assert.GreaterOrEqual(t, done, 1)
			assert.LessOrEqual(t, done, 2)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

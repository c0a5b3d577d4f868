// Package batch evaluates many (genome, module) pairs against a Catalog,
// one goroutine per genome, and assembles the coverage and step-coverage
// tables.
package batch

import (
	"context"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jolespin/keggprofiler/catalog"
	"github.com/jolespin/keggprofiler/internal/obslog"
	"github.com/jolespin/keggprofiler/internal/pathway"
	"github.com/jolespin/keggprofiler/ko"
)

var log = obslog.For("batch")

// Options configures a batch Run.
type Options struct {
	// NJobs bounds the number of genomes processed concurrently. <= 0
	// means unbounded (one goroutine per genome).
	NJobs int

	// Progress, if set, is called after each genome finishes. It may be
	// called concurrently from multiple goroutines and carries no
	// ordering guarantee.
	Progress func(done, total int)
}

// GenomeModuleResult is one (genome, module) evaluation outcome.
type GenomeModuleResult struct {
	Coverage     float64
	StepCoverage []int // 0/1 per step along this genome's most-complete path
}

// Result collects every completed genome's per-module results. Genomes is
// the ordered (sorted) list of genomes that completed before any
// cancellation; an incomplete genome never appears here.
type Result struct {
	Genomes []string
	Modules []string
	Data    map[string]map[string]GenomeModuleResult // genome -> module -> result
}

// Run evaluates every (genome, module) pair in genomes x cat. Evaluation
// is pure CPU-bound work with no I/O suspension points, so it is safe to
// fan out one goroutine per genome sharing the read-only catalog by
// reference. ctx is checked at genome boundaries; genomes not yet started
// when ctx is canceled are dropped from the result, while a genome whose
// evaluation has begun runs to completion and is kept, never partially
// written.
func Run(ctx context.Context, genomes map[string]ko.Set, cat catalog.Catalog, opts Options) (*Result, error) {
	genomeIDs := make([]string, 0, len(genomes))
	for id := range genomes {
		genomeIDs = append(genomeIDs, id)
	}
	sort.Strings(genomeIDs)
	moduleIDs := cat.IDs()

	type outcome struct {
		genome string
		data   map[string]GenomeModuleResult
	}
	outcomes := make([]*outcome, len(genomeIDs))

	sem := make(chan struct{}, jobLimit(opts.NJobs, len(genomeIDs)))
	g, gctx := errgroup.WithContext(ctx)
	var done int32
	total := len(genomeIDs)

	for i, id := range genomeIDs {
		i, id := i, id
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			if err := gctx.Err(); err != nil {
				return err
			}

			outcomes[i] = &outcome{genome: id, data: evaluateGenome(cat, moduleIDs, genomes[id])}
			log.Debugf("genome %s: evaluated %d modules", id, len(moduleIDs))
			if opts.Progress != nil {
				opts.Progress(int(atomic.AddInt32(&done, 1)), total)
			}

			return nil
		})
	}

	runErr := g.Wait()

	res := &Result{Modules: moduleIDs, Data: make(map[string]map[string]GenomeModuleResult)}
	for _, o := range outcomes {
		if o == nil {
			continue // dropped by cancellation, per contract
		}
		res.Genomes = append(res.Genomes, o.genome)
		res.Data[o.genome] = o.data
	}
	sort.Strings(res.Genomes)

	log.Infof("batch complete: %d/%d genomes", len(res.Genomes), total)

	if runErr != nil && len(res.Genomes) == 0 {
		return res, runErr
	}

	return res, nil
}

// evaluateGenome runs every module's evaluator against one genome's KO set.
// Modules with no overlap at all against the genome are short-circuited to
// coverage 0 without invoking the evaluator.
func evaluateGenome(cat catalog.Catalog, moduleIDs []string, genomeKOs ko.Set) map[string]GenomeModuleResult {
	out := make(map[string]GenomeModuleResult, len(moduleIDs))
	for _, mid := range moduleIDs {
		entry, err := cat.Get(mid)
		if err != nil {
			continue
		}
		if !intersects(genomeKOs, entry.KOToEdges) {
			out[mid] = GenomeModuleResult{}
			continue
		}
		result, _ := cat.Evaluate(mid, genomeKOs)
		out[mid] = GenomeModuleResult{Coverage: result.Coverage, StepCoverage: result.StepCoverage}
	}

	return out
}

func intersects(genomeKOs ko.Set, kte pathway.KOToEdges) bool {
	for k := range genomeKOs {
		if _, ok := kte[k]; ok {
			return true
		}
	}

	return false
}

func jobLimit(nJobs, nGenomes int) int {
	if nGenomes == 0 {
		return 1
	}
	if nJobs <= 0 || nJobs > nGenomes {
		return nGenomes
	}

	return nJobs
}

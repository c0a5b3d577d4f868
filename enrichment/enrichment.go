package enrichment

import (
	"fmt"

	"github.com/jolespin/keggprofiler/catalog"
	"github.com/jolespin/keggprofiler/internal/obslog"
	"github.com/jolespin/keggprofiler/ko"
)

var log = obslog.For("enrichment")

// Options configures a Test run.
type Options struct {
	// Background, if nil, defaults to the union of every KO indexed by any
	// catalog module plus the query KOs.
	Background ko.Set

	// Method selects the FDR correction (default MethodBH).
	Method Method

	// Tolerance, if > 0, populates Result.Significant (fdr <= Tolerance).
	Tolerance float64
}

// Result is one module's enrichment outcome.
type Result struct {
	ModuleID             string
	Method               string
	M, N, Size, K         int // background size, query size, pathway size, overlap
	IntersectingFeatures ko.Set
	ExtraFeatures        ko.Set
	PValue               float64
	FDR                  float64
	Significant          bool
}

// Test scores query against every module in cat: for each module, it takes
// the most-complete-path KO set realized by query (not the module's full
// KO set) and tests its over-representation of query via the
// hypergeometric survival function, then FDR-corrects across all modules.
func Test(query ko.Set, cat catalog.Catalog, opts Options) ([]Result, error) {
	background := opts.Background
	if background == nil {
		background = cat.AllKOs().Union(query)
	}
	for q := range query {
		if !background.Has(q) {
			err := fmt.Errorf("%w: %s", ErrBackgroundMismatch, q)
			log.WithError(err).Error("background validation failed")
			return nil, err
		}
	}

	moduleIDs := cat.IDs()
	results := make([]Result, 0, len(moduleIDs))
	pvals := make([]float64, 0, len(moduleIDs))

	M := len(background)
	N := len(query)

	for _, mid := range moduleIDs {
		ev, err := cat.Evaluate(mid, query)
		if err != nil {
			continue
		}
		pathwayKOs := ko.NewSet(ev.MostCompletePath...)
		intersecting := pathwayKOs.Intersect(query)
		extra := pathwayKOs.Minus(query)

		n := len(pathwayKOs)
		k := len(intersecting)
		p := hypergeomSF(k, M, n, N)

		results = append(results, Result{
			ModuleID: mid, Method: opts.Method.String(),
			M: M, N: N, Size: n, K: k,
			IntersectingFeatures: intersecting,
			ExtraFeatures:        extra,
			PValue:               p,
		})
		pvals = append(pvals, p)
	}

	fdrs := adjustPValues(pvals, opts.Method)
	for i := range results {
		results[i].FDR = fdrs[i]
		if opts.Tolerance > 0 {
			results[i].Significant = fdrs[i] <= opts.Tolerance
		}
	}

	log.Infof("enrichment: tested %d modules against %d query KOs", len(results), N)

	return results, nil
}

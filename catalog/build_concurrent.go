package catalog

import (
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BuildConcurrent is Build with per-module parsing/compilation fanned out
// across njobs goroutines, following the same errgroup-plus-semaphore
// shape as the batch driver. <= 0 means unbounded (one goroutine per
// module). Module order in the returned failures slice is sorted by id,
// matching Build's deterministic output regardless of njobs.
func BuildConcurrent(defs, names, classes map[string]string, njobs int) (Catalog, []BuildFailure) {
	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if njobs <= 0 || njobs > len(ids) {
		njobs = len(ids)
	}
	if njobs == 0 {
		njobs = 1
	}

	cat := make(Catalog, len(defs))
	var mu sync.Mutex
	var failures []BuildFailure

	sem := make(chan struct{}, njobs)
	var g errgroup.Group

	for _, id := range ids {
		id := id
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			entry, err := buildEntry(id, defs[id], names[id], classes[id])

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.WithError(err).Warnf("skipping module %s", id)
				failures = append(failures, BuildFailure{ModuleID: id, Err: err})
				return nil
			}
			cat[id] = entry

			return nil
		})
	}
	_ = g.Wait() // buildEntry never returns a non-nil group error; failures are collected, not propagated

	sort.Slice(failures, func(i, j int) bool { return failures[i].ModuleID < failures[j].ModuleID })

	log.Infof("built catalog: %d modules, %d failures", len(cat), len(failures))

	return cat, failures
}

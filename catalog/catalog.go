package catalog

import (
	"fmt"
	"sort"

	"github.com/jolespin/keggprofiler/internal/definition"
	"github.com/jolespin/keggprofiler/internal/pathway"
	"github.com/jolespin/keggprofiler/internal/obslog"
	"github.com/jolespin/keggprofiler/ko"
)

var log = obslog.For("catalog")

// Entry is one compiled, immutable catalog record. It is safe to read
// Entry and all of its fields concurrently from any number of goroutines
// once Build has returned; nothing in this package mutates an Entry after
// construction.
type Entry struct {
	ID          string
	Name        string
	Classes     []string
	Definition  string
	Graph       *pathway.Graph
	KOToEdges   pathway.KOToEdges
	OptionalKOs ko.Set
}

// Catalog maps module id to its compiled Entry. It is read-only after
// Build, BuildConcurrent or catalogio.Decode returns: a build phase populates it, then any number of
// goroutines may call Evaluate concurrently.
type Catalog map[string]*Entry

// BuildFailure records a module that failed to parse/compile during Build.
// A bad module definition is fatal for that module alone and does not
// abort the rest of the build.
type BuildFailure struct {
	ModuleID string
	Err      error
}

// Build parses and compiles every module named in defs, skipping (and
// reporting) any module whose definition fails to parse. names and classes
// are optional metadata keyed by the same module ids; classes values are
// split on ';' following the KEGG CLASS line convention.
func Build(defs, names, classes map[string]string) (Catalog, []BuildFailure) {
	cat := make(Catalog, len(defs))
	var failures []BuildFailure

	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic build order

	for _, id := range ids {
		entry, err := buildEntry(id, defs[id], names[id], classes[id])
		if err != nil {
			log.WithError(err).Warnf("skipping module %s", id)
			failures = append(failures, BuildFailure{ModuleID: id, Err: err})
			continue
		}
		cat[id] = entry
	}

	log.Infof("built catalog: %d modules, %d failures", len(cat), len(failures))

	return cat, failures
}

func buildEntry(id, def, name, classLine string) (*Entry, error) {
	if def == "" {
		g, kte := pathway.Trivial()
		return &Entry{
			ID: id, Name: name, Classes: splitClasses(classLine),
			Definition: def, Graph: g, KOToEdges: kte, OptionalKOs: ko.Set{},
		}, nil
	}

	expr, optional, err := definition.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("parse module %s: %w", id, err)
	}

	g, kte, err := pathway.Compile(expr, id)
	if err != nil {
		return nil, err
	}

	return &Entry{
		ID: id, Name: name, Classes: splitClasses(classLine),
		Definition: def, Graph: g, KOToEdges: kte, OptionalKOs: optional,
	}, nil
}

func splitClasses(classLine string) []string {
	if classLine == "" {
		return nil
	}

	var out []string
	start := 0
	for i := 0; i <= len(classLine); i++ {
		if i == len(classLine) || classLine[i] == ';' {
			out = append(out, classLine[start:i])
			start = i + 1
		}
	}

	return out
}

// Get returns the entry for id, or ErrUnknownModule.
func (c Catalog) Get(id string) (*Entry, error) {
	e, ok := c[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, id)
	}

	return e, nil
}

// Evaluate looks up moduleID and evaluates its graph against evalKOs.
func (c Catalog) Evaluate(moduleID string, evalKOs ko.Set) (*pathway.Result, error) {
	e, err := c.Get(moduleID)
	if err != nil {
		return nil, err
	}

	return pathway.Evaluate(e.Graph, e.KOToEdges, e.OptionalKOs, evalKOs), nil
}

// IDs returns every module id in the catalog, sorted.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// AllKOs returns the union of every KO appearing in any module's index —
// the default enrichment background before the query KOs are added to it.
func (c Catalog) AllKOs() ko.Set {
	all := make(ko.Set)
	for _, e := range c {
		for k := range e.KOToEdges {
			all[k] = struct{}{}
		}
	}

	return all
}

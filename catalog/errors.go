// Package catalog builds and serves the module_id -> Entry mapping: each
// entry's compiled graph, KO index and optional-KO set, built once from
// parsed definitions and read by every subsequent evaluation.
package catalog

import "errors"

// ErrUnknownModule is returned by Catalog.Get/Evaluate for a module id not
// present in the catalog.
var ErrUnknownModule = errors.New("catalog: unknown module")

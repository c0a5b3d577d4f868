// Package enrichment scores over-representation of a query KO set in each
// module's most-complete-path KO set via a hypergeometric test, with FDR
// correction across modules.
package enrichment

import "errors"

// ErrBackgroundMismatch indicates the query KO set is not a subset of the
// background universe.
var ErrBackgroundMismatch = errors.New("enrichment: query is not a subset of background")

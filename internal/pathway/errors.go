// Package pathway compiles a parsed module definition.Expr into a weighted
// directed acyclic multigraph and evaluates it against an observed KO set.
package pathway

import "errors"

// ErrGraphInvariantViolated indicates the compiler produced a graph that
// fails one of its structural invariants (acyclicity, every non-sink node
// reachable forward, every non-source node reachable backward). This is
// a bug, never a user-facing condition: callers should treat it as fatal
// for the offending module, not attempt recovery.
var ErrGraphInvariantViolated = errors.New("pathway: graph invariant violated")

// Package definition lexes and parses a KEGG module definition string into
// an expression tree of Seq (sequential/AND) and Alt (alternation/OR) nodes
// over ko.KO leaves.
//
// Error policy (mirrors lvlath's builder package):
//   - Only sentinel variables are exposed.
//   - Callers MUST use errors.Is to branch on semantics.
//   - Sentinels are never stringified at their definition site; call sites
//     wrap them with %w to attach position/context.
package definition

import "errors"

// ErrLexical indicates an unrecognized character in the definition string.
var ErrLexical = errors.New("definition: lexical error")

// ErrUnbalancedParen indicates a '(' with no matching ')' or vice versa.
var ErrUnbalancedParen = errors.New("definition: unbalanced parenthesis")

// ErrUnexpectedToken indicates a token appeared where the grammar forbids it.
var ErrUnexpectedToken = errors.New("definition: unexpected token")

// ErrEmptyGroup indicates an empty group "()" or empty alternative ",,".
var ErrEmptyGroup = errors.New("definition: empty group")

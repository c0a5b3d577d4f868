package definition

import (
	"strings"

	"github.com/jolespin/keggprofiler/ko"
)

// Serialize renders expr back into KEGG module definition syntax. It is the
// inverse of Parse up to whitespace canonicalization and redundant
// parentheses (P1 in the testable-properties list): Parse(Serialize(e))
// yields a tree structurally equal to e. optional, if non-nil, prefixes
// each optional leaf with '-'; it does not attempt to reconstruct which
// original group carried the MINUS marker, only which leaves were marked.
func Serialize(expr Expr, optional ko.Set) string {
	var b strings.Builder
	writeExpr(&b, expr, optional, false)

	return b.String()
}

// writeExpr writes expr into b. parenIfSeq requests parentheses around a
// top-level Seq, needed when expr is a child of an Alt (whose grammar slot
// is "unary", i.e. a single atom or a parenthesized group).
func writeExpr(b *strings.Builder, expr Expr, optional ko.Set, parenIfSeq bool) {
	switch n := expr.(type) {
	case Leaf:
		if optional.Has(n.KO) {
			b.WriteByte('-')
		}
		b.WriteString(n.KO.String())
	case Alt:
		for i, c := range n.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeExpr(b, c, optional, true)
		}
	case Seq:
		if parenIfSeq {
			b.WriteByte('(')
		}
		for i, c := range n.Children {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeExpr(b, c, optional, false)
		}
		if parenIfSeq {
			b.WriteByte(')')
		}
	}
}

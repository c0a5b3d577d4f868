package definition

import (
	"fmt"

	"github.com/jolespin/keggprofiler/ko"
)

/*
Parse — KEGG module definition parser

Grammar (Alt binds tighter than Seq):

	expr    := seq
	seq     := alt (SPACE alt)*
	alt     := unary (COMMA unary)*
	unary   := MINUS? atom_or_group
	group   := '(' expr ')'
	atom_or_group := group | ATOM

Semantics:
  - MINUS flags every KO reachable inside the marked subtree as optional;
    the subtree is still compiled into the graph.
  - Redundant grouping has no semantic effect: single-child Seq/Alt are
    flattened, and Alt-under-Alt / Seq-under-Seq are flattened, immediately
    after parsing (see newSeq/newAlt in tree.go).
  - Empty groups "()" and empty alternatives ",," are parse errors.
*/
func Parse(definition string) (Expr, ko.Set, error) {
	toks, err := lex(definition)
	if err != nil {
		return nil, nil, err
	}

	p := &parser{toks: toks, optional: make(ko.Set)}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	if p.pos != len(p.toks) {
		if t := p.toks[p.pos]; t.kind == tokRParen {
			return nil, nil, fmt.Errorf("%w: stray ')' at offset %d", ErrUnbalancedParen, t.pos)
		}
		return nil, nil, fmt.Errorf("%w: trailing input at offset %d", ErrUnexpectedToken, p.toks[p.pos].pos)
	}

	return expr, p.optional, nil
}

// parser holds the token stream and parse position, plus the optional-KO
// accumulator populated as MINUS-marked subtrees are parsed.
type parser struct {
	toks     []token
	pos      int
	optional ko.Set
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}

	return p.toks[p.pos], true
}

func (p *parser) peekKind() (tokenKind, bool) {
	t, ok := p.peek()
	return t.kind, ok
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

// parseExpr := seq
func (p *parser) parseExpr() (Expr, error) {
	return p.parseSeq()
}

// parseSeq := alt (SPACE alt)*
func (p *parser) parseSeq() (Expr, error) {
	first, err := p.parseAlt()
	if err != nil {
		return nil, err
	}

	children := []Expr{first}
	for {
		kind, ok := p.peekKind()
		if !ok || kind != tokSpace {
			break
		}
		p.advance() // consume SPACE
		next, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}

	return newSeq(children), nil
}

// parseAlt := unary (COMMA unary)*
func (p *parser) parseAlt() (Expr, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	children := []Expr{first}
	for {
		kind, ok := p.peekKind()
		if !ok || kind != tokComma {
			break
		}
		commaTok := p.advance() // consume COMMA
		if k, ok := p.peekKind(); !ok || k == tokComma || k == tokRParen {
			return nil, fmt.Errorf("%w: empty alternative at offset %d", ErrEmptyGroup, commaTok.pos)
		}
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}

	return newAlt(children), nil
}

// parseUnary := MINUS? atom_or_group
func (p *parser) parseUnary() (Expr, error) {
	optional := false
	if kind, ok := p.peekKind(); ok && kind == tokMinus {
		p.advance()
		optional = true
	}

	node, err := p.parseAtomOrGroup()
	if err != nil {
		return nil, err
	}

	if optional {
		collectLeaves(node, p.optional)
	}

	return node, nil
}

// parseAtomOrGroup := group | ATOM
func (p *parser) parseAtomOrGroup() (Expr, error) {
	kind, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrUnexpectedToken)
	}

	switch kind.kind {
	case tokAtom:
		p.advance()
		k, err := ko.New(kind.text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedToken, err)
		}
		return Leaf{KO: k}, nil
	case tokLParen:
		return p.parseGroup()
	case tokRParen:
		return nil, fmt.Errorf("%w: stray ')' at offset %d", ErrUnbalancedParen, kind.pos)
	default:
		return nil, fmt.Errorf("%w: at offset %d", ErrUnexpectedToken, kind.pos)
	}
}

// parseGroup := '(' expr ')'
func (p *parser) parseGroup() (Expr, error) {
	open := p.advance() // consume '('

	if kind, ok := p.peekKind(); ok && kind == tokRParen {
		return nil, fmt.Errorf("%w: empty group at offset %d", ErrEmptyGroup, open.pos)
	}

	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	kind, ok := p.peek()
	if !ok || kind.kind != tokRParen {
		return nil, fmt.Errorf("%w: missing ')' opened at offset %d", ErrUnbalancedParen, open.pos)
	}
	p.advance() // consume ')'

	return inner, nil
}

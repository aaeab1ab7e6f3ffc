package ast

import (
	"io"
	"newt/internal/printer"
	"newt/internal/token"
)

// SequenceKind tags a sequence display as a list or a tuple.
type SequenceKind int

const (
	ListKind SequenceKind = iota
	TupleKind
)

func (k SequenceKind) String() string {
	if k == TupleKind {
		return "tuple"
	}
	return "list"
}

// SequenceLiteral is the syntax node for list and tuple displays. Both kinds
// share one shape: the Kind tag, fixed at construction, decides whether
// evaluation produces a mutable list or an immutable tuple. Element order is
// preserved verbatim from parse through evaluation through printing.
type SequenceLiteral struct {
	Token    token.Token // the '[' or '(' token
	Kind     SequenceKind
	Elements []Expression
}

func NewListLiteral(tok token.Token, elements []Expression) *SequenceLiteral {
	return &SequenceLiteral{Token: tok, Kind: ListKind, Elements: elements}
}

func NewTupleLiteral(tok token.Token, elements []Expression) *SequenceLiteral {
	return &SequenceLiteral{Token: tok, Kind: TupleKind, Elements: elements}
}

// EmptyListLiteral synthesizes an empty list display for callers that need a
// literal without having parsed one. The caller is expected to attach a
// token with a real position afterwards.
func EmptyListLiteral() *SequenceLiteral {
	return NewListLiteral(token.Token{Type: token.LBRACKET, Literal: "["}, nil)
}

// IsTuple reports whether this display produces an immutable tuple.
func (sl *SequenceLiteral) IsTuple() bool { return sl.Kind == TupleKind }

func (sl *SequenceLiteral) expressionNode()      {}
func (sl *SequenceLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *SequenceLiteral) Pos() int             { return sl.Token.Position }

// PrettyPrint writes the full display form: `[a, b]` or `(a, b)`. A tuple of
// exactly one element gets a trailing comma so it cannot be read back as a
// parenthesized value.
func (sl *SequenceLiteral) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	if sl.IsTuple() {
		p.str("(")
	} else {
		p.str("[")
	}
	for i, el := range sl.Elements {
		if i > 0 {
			p.str(", ")
		}
		p.node(el)
	}
	if sl.IsTuple() && len(sl.Elements) == 1 {
		p.str(",")
	}
	if sl.IsTuple() {
		p.str(")")
	} else {
		p.str("]")
	}
	return p.err
}

// String returns the abbreviated diagnostic form, truncated by the shared
// printer limits. Use PrettyPrint for the faithful rendering.
func (sl *SequenceLiteral) String() string {
	elements := make([]string, len(sl.Elements))
	for i, el := range sl.Elements {
		if el == nil {
			elements[i] = "<missing>"
			continue
		}
		elements[i] = el.String()
	}
	maxCount, maxLen := printer.Limits()
	return printer.Abbreviated(elements, sl.IsTuple(), maxCount, maxLen)
}

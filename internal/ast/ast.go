package ast

import (
	"bytes"
	"io"
	"newt/internal/token"
	"strconv"
)

// The base Node interface. Every syntax node can render itself to a sink
// (PrettyPrint), summarise itself for diagnostics (String), report its
// source offset (Pos) and receive a Visitor (Accept, see walk.go).
type Node interface {
	TokenLiteral() string
	String() string
	PrettyPrint(w io.Writer) error
	Pos() int
	Accept(v Visitor)
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// pp threads a sink and its first write error through a sequence of appends,
// so PrettyPrint bodies stay linear.
type pp struct {
	w   io.Writer
	err error
}

func (p *pp) str(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *pp) node(n Node) {
	if p.err != nil {
		return
	}
	if n == nil {
		_, p.err = io.WriteString(p.w, "<missing>")
		return
	}
	p.err = n.PrettyPrint(p.w)
}

// render gives the full (unabbreviated) textual form of a node.
func render(n Node) string {
	var out bytes.Buffer
	_ = n.PrettyPrint(&out)
	return out.String()
}

type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() int {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 0
}

func (p *Program) PrettyPrint(w io.Writer) error {
	pr := &pp{w: w}
	for _, s := range p.Statements {
		pr.node(s)
	}
	return pr.err
}

func (p *Program) String() string { return render(p) }

type VarStatement struct {
	Token token.Token // the token.VAR token
	Name  *Identifier
	Value Expression
}

func (vs *VarStatement) statementNode()       {}
func (vs *VarStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VarStatement) Pos() int             { return vs.Token.Position }
func (vs *VarStatement) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	p.str(vs.TokenLiteral() + " ")
	p.node(vs.Name)
	p.str(" = ")
	p.node(vs.Value)
	p.str(";")
	return p.err
}
func (vs *VarStatement) String() string { return render(vs) }

type ValStatement struct {
	Token token.Token // the token.VAL token
	Name  *Identifier
	Value Expression
}

func (vs *ValStatement) statementNode()       {}
func (vs *ValStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *ValStatement) Pos() int             { return vs.Token.Position }
func (vs *ValStatement) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	p.str(vs.TokenLiteral() + " ")
	p.node(vs.Name)
	p.str(" = ")
	p.node(vs.Value)
	p.str(";")
	return p.err
}
func (vs *ValStatement) String() string { return render(vs) }

type ReturnStatement struct {
	Token       token.Token // the 'return' token
	ReturnValue Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() int             { return rs.Token.Position }
func (rs *ReturnStatement) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	p.str(rs.TokenLiteral())
	if rs.ReturnValue != nil {
		p.str(" ")
		p.node(rs.ReturnValue)
	}
	p.str(";")
	return p.err
}
func (rs *ReturnStatement) String() string { return render(rs) }

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) Pos() int             { return es.Token.Position }
func (es *ExpressionStatement) PrettyPrint(w io.Writer) error {
	if es.Expression == nil {
		return nil
	}
	return es.Expression.PrettyPrint(w)
}
func (es *ExpressionStatement) String() string { return render(es) }

type BlockStatement struct {
	Token      token.Token // the { token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() int             { return bs.Token.Position }
func (bs *BlockStatement) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	p.str("{")
	for _, s := range bs.Statements {
		p.node(s)
	}
	p.str("}")
	return p.err
}
func (bs *BlockStatement) String() string { return render(bs) }

// Expressions
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() int             { return i.Token.Position }
func (i *Identifier) PrettyPrint(w io.Writer) error {
	_, err := io.WriteString(w, i.Value)
	return err
}
func (i *Identifier) String() string { return i.Value }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) Pos() int             { return b.Token.Position }
func (b *BooleanLiteral) PrettyPrint(w io.Writer) error {
	_, err := io.WriteString(w, b.Token.Literal)
	return err
}
func (b *BooleanLiteral) String() string { return b.Token.Literal }

type NoneLiteral struct {
	Token token.Token
}

func (n *NoneLiteral) expressionNode()      {}
func (n *NoneLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NoneLiteral) Pos() int             { return n.Token.Position }
func (n *NoneLiteral) PrettyPrint(w io.Writer) error {
	_, err := io.WriteString(w, n.Token.Literal)
	return err
}
func (n *NoneLiteral) String() string { return n.Token.Literal }

type NumberLiteral struct {
	Token token.Token
	Value int64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() int             { return n.Token.Position }
func (n *NumberLiteral) PrettyPrint(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(n.Value, 10))
	return err
}
func (n *NumberLiteral) String() string { return strconv.FormatInt(n.Value, 10) }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) Pos() int             { return sl.Token.Position }
func (sl *StringLiteral) PrettyPrint(w io.Writer) error {
	_, err := io.WriteString(w, strconv.Quote(sl.Value))
	return err
}
func (sl *StringLiteral) String() string { return render(sl) }

type PrefixExpression struct {
	Token    token.Token // the prefix token, e.g. !
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) Pos() int             { return pe.Token.Position }
func (pe *PrefixExpression) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	p.str("(")
	p.str(pe.Operator)
	if pe.Operator == "not" {
		p.str(" ")
	}
	p.node(pe.Right)
	p.str(")")
	return p.err
}
func (pe *PrefixExpression) String() string { return render(pe) }

type InfixExpression struct {
	Token    token.Token // the operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) Pos() int             { return ie.Token.Position }
func (ie *InfixExpression) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	p.str("(")
	p.node(ie.Left)
	p.str(" " + ie.Operator + " ")
	p.node(ie.Right)
	p.str(")")
	return p.err
}
func (ie *InfixExpression) String() string { return render(ie) }

type IfExpression struct {
	Token      token.Token // the 'if' token
	Condition  Expression
	ThenBranch *BlockStatement
	ElseBranch *BlockStatement
}

func (ie *IfExpression) expressionNode()      {}
func (ie *IfExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IfExpression) Pos() int             { return ie.Token.Position }
func (ie *IfExpression) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	p.str("if ")
	p.node(ie.Condition)
	p.str(" ")
	p.node(ie.ThenBranch)
	if ie.ElseBranch != nil {
		p.str(" else ")
		p.node(ie.ElseBranch)
	}
	return p.err
}
func (ie *IfExpression) String() string { return render(ie) }

type FunctionLiteral struct {
	Token      token.Token // the 'fn' token
	Parameters []*Identifier
	Body       *BlockStatement
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FunctionLiteral) Pos() int             { return fl.Token.Position }
func (fl *FunctionLiteral) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	p.str(fl.TokenLiteral())
	p.str("(")
	for i, param := range fl.Parameters {
		if i > 0 {
			p.str(", ")
		}
		p.node(param)
	}
	p.str(") ")
	p.node(fl.Body)
	return p.err
}
func (fl *FunctionLiteral) String() string { return render(fl) }

type CallExpression struct {
	Token     token.Token // the '(' token
	Function  Expression  // Identifier or FunctionLiteral
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() int             { return ce.Token.Position }
func (ce *CallExpression) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	p.node(ce.Function)
	p.str("(")
	for i, a := range ce.Arguments {
		if i > 0 {
			p.str(", ")
		}
		p.node(a)
	}
	p.str(")")
	return p.err
}
func (ce *CallExpression) String() string { return render(ce) }

type IndexExpression struct {
	Token token.Token // the '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) Pos() int             { return ie.Token.Position }
func (ie *IndexExpression) PrettyPrint(w io.Writer) error {
	p := &pp{w: w}
	p.str("(")
	p.node(ie.Left)
	p.str("[")
	p.node(ie.Index)
	p.str("])")
	return p.err
}
func (ie *IndexExpression) String() string { return render(ie) }

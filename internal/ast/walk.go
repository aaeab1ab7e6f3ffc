package ast

// Visitor handles every concrete node of the closed syntax tree. External
// passes (linters, compilers, instrumentation) implement this interface and
// let the nodes dispatch to the right method via Accept, so the nodes never
// learn about the passes.
type Visitor interface {
	VisitProgram(*Program)
	VisitExpressionStatement(*ExpressionStatement)
	VisitVarStatement(*VarStatement)
	VisitValStatement(*ValStatement)
	VisitReturnStatement(*ReturnStatement)
	VisitBlockStatement(*BlockStatement)
	VisitIdentifier(*Identifier)
	VisitNumberLiteral(*NumberLiteral)
	VisitStringLiteral(*StringLiteral)
	VisitBooleanLiteral(*BooleanLiteral)
	VisitNoneLiteral(*NoneLiteral)
	VisitPrefixExpression(*PrefixExpression)
	VisitInfixExpression(*InfixExpression)
	VisitIfExpression(*IfExpression)
	VisitFunctionLiteral(*FunctionLiteral)
	VisitCallExpression(*CallExpression)
	VisitIndexExpression(*IndexExpression)
	VisitSequenceLiteral(*SequenceLiteral)
}

func (p *Program) Accept(v Visitor)             { v.VisitProgram(p) }
func (es *ExpressionStatement) Accept(v Visitor) { v.VisitExpressionStatement(es) }
func (vs *VarStatement) Accept(v Visitor)        { v.VisitVarStatement(vs) }
func (vs *ValStatement) Accept(v Visitor)        { v.VisitValStatement(vs) }
func (rs *ReturnStatement) Accept(v Visitor)     { v.VisitReturnStatement(rs) }
func (bs *BlockStatement) Accept(v Visitor)      { v.VisitBlockStatement(bs) }
func (i *Identifier) Accept(v Visitor)           { v.VisitIdentifier(i) }
func (n *NumberLiteral) Accept(v Visitor)        { v.VisitNumberLiteral(n) }
func (sl *StringLiteral) Accept(v Visitor)       { v.VisitStringLiteral(sl) }
func (b *BooleanLiteral) Accept(v Visitor)       { v.VisitBooleanLiteral(b) }
func (n *NoneLiteral) Accept(v Visitor)          { v.VisitNoneLiteral(n) }
func (pe *PrefixExpression) Accept(v Visitor)    { v.VisitPrefixExpression(pe) }
func (ie *InfixExpression) Accept(v Visitor)     { v.VisitInfixExpression(ie) }
func (ie *IfExpression) Accept(v Visitor)        { v.VisitIfExpression(ie) }
func (fl *FunctionLiteral) Accept(v Visitor)     { v.VisitFunctionLiteral(fl) }
func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ie *IndexExpression) Accept(v Visitor)     { v.VisitIndexExpression(ie) }
func (sl *SequenceLiteral) Accept(v Visitor)     { v.VisitSequenceLiteral(sl) }

// Walk dispatches n to the visitor and then walks its children in source
// order. Nil child slots are skipped; passes that need to reject them do so
// themselves (the validator does).
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	n.Accept(v)

	switch n := n.(type) {
	case *Program:
		for _, s := range n.Statements {
			Walk(v, s)
		}
	case *ExpressionStatement:
		walkChild(v, n.Expression)
	case *VarStatement:
		walkChild(v, n.Name)
		walkChild(v, n.Value)
	case *ValStatement:
		walkChild(v, n.Name)
		walkChild(v, n.Value)
	case *ReturnStatement:
		walkChild(v, n.ReturnValue)
	case *BlockStatement:
		for _, s := range n.Statements {
			Walk(v, s)
		}
	case *PrefixExpression:
		walkChild(v, n.Right)
	case *InfixExpression:
		walkChild(v, n.Left)
		walkChild(v, n.Right)
	case *IfExpression:
		walkChild(v, n.Condition)
		walkChild(v, n.ThenBranch)
		walkChild(v, n.ElseBranch)
	case *FunctionLiteral:
		for _, param := range n.Parameters {
			Walk(v, param)
		}
		walkChild(v, n.Body)
	case *CallExpression:
		walkChild(v, n.Function)
		for _, a := range n.Arguments {
			walkChild(v, a)
		}
	case *IndexExpression:
		walkChild(v, n.Left)
		walkChild(v, n.Index)
	case *SequenceLiteral:
		for _, el := range n.Elements {
			walkChild(v, el)
		}
	}
}

func walkChild(v Visitor, n Node) {
	switch n := n.(type) {
	case nil:
		return
	case *BlockStatement:
		if n == nil {
			return
		}
		Walk(v, n)
	default:
		Walk(v, n)
	}
}

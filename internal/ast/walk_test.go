package ast

import (
	"newt/internal/token"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// numberCollector records every number literal it is shown, in visit order.
type numberCollector struct {
	seen []string
}

func (c *numberCollector) VisitNumberLiteral(n *NumberLiteral) {
	c.seen = append(c.seen, strconv.FormatInt(n.Value, 10))
}

func (c *numberCollector) VisitProgram(*Program)                         {}
func (c *numberCollector) VisitExpressionStatement(*ExpressionStatement) {}
func (c *numberCollector) VisitVarStatement(*VarStatement)               {}
func (c *numberCollector) VisitValStatement(*ValStatement)               {}
func (c *numberCollector) VisitReturnStatement(*ReturnStatement)         {}
func (c *numberCollector) VisitBlockStatement(*BlockStatement)           {}
func (c *numberCollector) VisitIdentifier(*Identifier)                   {}
func (c *numberCollector) VisitStringLiteral(*StringLiteral)             {}
func (c *numberCollector) VisitBooleanLiteral(*BooleanLiteral)           {}
func (c *numberCollector) VisitNoneLiteral(*NoneLiteral)                 {}
func (c *numberCollector) VisitPrefixExpression(*PrefixExpression)       {}
func (c *numberCollector) VisitInfixExpression(*InfixExpression)         {}
func (c *numberCollector) VisitIfExpression(*IfExpression)               {}
func (c *numberCollector) VisitFunctionLiteral(*FunctionLiteral)         {}
func (c *numberCollector) VisitCallExpression(*CallExpression)           {}
func (c *numberCollector) VisitIndexExpression(*IndexExpression)         {}
func (c *numberCollector) VisitSequenceLiteral(*SequenceLiteral)         {}

func TestWalkVisitsSequenceElementsInSourceOrder(t *testing.T) {
	// [1, (2, 3), 4]
	node := NewListLiteral(token.Token{Literal: "["}, []Expression{
		num(1),
		NewTupleLiteral(token.Token{Literal: "("}, nums(2, 3)),
		num(4),
	})

	c := &numberCollector{}
	Walk(c, node)

	assert.Equal(t, []string{"1", "2", "3", "4"}, c.seen)
}

func TestWalkSkipsNilChildren(t *testing.T) {
	node := NewListLiteral(token.Token{Literal: "["}, []Expression{num(1), nil, num(2)})

	c := &numberCollector{}
	Walk(c, node)

	assert.Equal(t, []string{"1", "2"}, c.seen)
}

func TestWalkNilNode(t *testing.T) {
	c := &numberCollector{}
	Walk(c, nil)
	assert.Empty(t, c.seen)
}

package parser

import (
	"newt/internal/ast"
	"newt/internal/lexer"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New(input)
	p := New(l)
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "parser errors for %q", input)
	require.NotNil(t, program)
	return program
}

func firstExpression(t *testing.T, input string) ast.Expression {
	t.Helper()
	program := parseProgram(t, input)
	require.Len(t, program.Statements, 1)
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok, "statement is %T, not *ast.ExpressionStatement", program.Statements[0])
	return stmt.Expression
}

func TestParsingListLiterals(t *testing.T) {
	expr := firstExpression(t, "[1, 2 * 2, 3 + 3]")

	list, ok := expr.(*ast.SequenceLiteral)
	require.True(t, ok, "expression is %T", expr)
	assert.Equal(t, ast.ListKind, list.Kind)
	require.Len(t, list.Elements, 3)
	assert.Equal(t, "1", list.Elements[0].String())
	assert.Equal(t, "(2 * 2)", list.Elements[1].String())
	assert.Equal(t, "(3 + 3)", list.Elements[2].String())
}

func TestParsingEmptyListLiteral(t *testing.T) {
	expr := firstExpression(t, "[]")

	list, ok := expr.(*ast.SequenceLiteral)
	require.True(t, ok, "expression is %T", expr)
	assert.Equal(t, ast.ListKind, list.Kind)
	assert.Empty(t, list.Elements)
}

func TestParsingListTrailingComma(t *testing.T) {
	expr := firstExpression(t, "[1, 2,]")

	list, ok := expr.(*ast.SequenceLiteral)
	require.True(t, ok, "expression is %T", expr)
	require.Len(t, list.Elements, 2)
}

func TestParsingTupleLiterals(t *testing.T) {
	tests := []struct {
		input    string
		elements int
	}{
		{"()", 0},
		{"(1,)", 1},
		{"(1, 2)", 2},
		{"(1, 2,)", 2},
		{"(1, 2 * 2, 3)", 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := firstExpression(t, tt.input)
			tuple, ok := expr.(*ast.SequenceLiteral)
			require.True(t, ok, "expression is %T", expr)
			assert.Equal(t, ast.TupleKind, tuple.Kind)
			assert.True(t, tuple.IsTuple())
			assert.Len(t, tuple.Elements, tt.elements)
		})
	}
}

func TestParenthesizedExpressionIsNotATuple(t *testing.T) {
	expr := firstExpression(t, "(5)")

	num, ok := expr.(*ast.NumberLiteral)
	require.True(t, ok, "expression is %T, not a grouped number", expr)
	assert.Equal(t, int64(5), num.Value)
}

func TestParsingNestedSequences(t *testing.T) {
	expr := firstExpression(t, "[[1], (2,), ()]")

	list, ok := expr.(*ast.SequenceLiteral)
	require.True(t, ok, "expression is %T", expr)
	require.Len(t, list.Elements, 3)

	inner, ok := list.Elements[0].(*ast.SequenceLiteral)
	require.True(t, ok)
	assert.Equal(t, ast.ListKind, inner.Kind)

	single, ok := list.Elements[1].(*ast.SequenceLiteral)
	require.True(t, ok)
	assert.Equal(t, ast.TupleKind, single.Kind)
	assert.Len(t, single.Elements, 1)

	empty, ok := list.Elements[2].(*ast.SequenceLiteral)
	require.True(t, ok)
	assert.Equal(t, ast.TupleKind, empty.Kind)
	assert.Empty(t, empty.Elements)
}

func TestSequenceLiteralPosition(t *testing.T) {
	expr := firstExpression(t, "  [1, 2]")
	require.Equal(t, 2, expr.Pos())

	expr = firstExpression(t, " (1, 2)")
	require.Equal(t, 1, expr.Pos())
}

func TestParsingIndexExpressions(t *testing.T) {
	expr := firstExpression(t, "myList[1 + 1]")

	indexExp, ok := expr.(*ast.IndexExpression)
	require.True(t, ok, "expression is %T", expr)
	assert.Equal(t, "myList", indexExp.Left.String())
	assert.Equal(t, "(1 + 1)", indexExp.Index.String())
}

func TestVarAndValStatements(t *testing.T) {
	program := parseProgram(t, `
var x = 5;
val y = [1, 2];
`)
	require.Len(t, program.Statements, 2)

	varStmt, ok := program.Statements[0].(*ast.VarStatement)
	require.True(t, ok)
	assert.Equal(t, "x", varStmt.Name.Value)

	valStmt, ok := program.Statements[1].(*ast.ValStatement)
	require.True(t, ok)
	assert.Equal(t, "y", valStmt.Name.Value)
	_, ok = valStmt.Value.(*ast.SequenceLiteral)
	assert.True(t, ok)
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"a + b * c", "(a + (b * c))"},
		{"a * [1, 2, 3][1]", "(a * ([1, 2, 3][1]))"},
		{"add(a, b)[0]", "(add(a, b)[0])"},
		{"1 < 2 == true", "((1 < 2) == true)"},
		{"not a and b", "((not a) and b)"},
		{"a and b or c", "((a and b) or c)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := firstExpression(t, tt.input)
			assert.Equal(t, tt.expected, expr.String())
		})
	}
}

func TestParserErrors(t *testing.T) {
	tests := []string{
		"[1, 2",
		"(1,",
		"var = 5;",
		"val x 5;",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			l := lexer.New(input)
			p := New(l)
			p.ParseProgram()
			assert.NotEmpty(t, p.Errors())
		})
	}
}

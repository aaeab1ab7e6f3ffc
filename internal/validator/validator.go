package validator

import (
	"fmt"
	"log/slog"
	"newt/internal/ast"
)

// scope is a lexical name table. It only tracks which names exist; values and
// mutability are the evaluator's business.
type scope struct {
	names map[string]struct{}
	outer *scope
}

func newScope(outer *scope) *scope {
	return &scope{names: make(map[string]struct{}), outer: outer}
}

func (s *scope) declare(name string) {
	s.names[name] = struct{}{}
}

func (s *scope) resolves(name string) bool {
	for sc := s; sc != nil; sc = sc.outer {
		if _, ok := sc.names[name]; ok {
			return true
		}
	}
	return false
}

// Validator checks a parsed program before evaluation: every identifier must
// resolve to a declaration or a predeclared name, and every node must be
// structurally complete. The first problem found stops the pass.
type Validator struct {
	predeclared *scope
}

func New(predeclared []string) *Validator {
	root := newScope(nil)
	for _, name := range predeclared {
		root.declare(name)
	}
	return &Validator{predeclared: root}
}

func (v *Validator) Validate(program *ast.Program) error {
	sc := newScope(v.predeclared)
	for _, stmt := range program.Statements {
		if err := v.statement(stmt, sc); err != nil {
			return err
		}
	}
	slog.Debug("program validated", slog.Int("statements", len(program.Statements)))
	return nil
}

func (v *Validator) statement(stmt ast.Statement, sc *scope) error {
	switch stmt := stmt.(type) {
	case *ast.VarStatement:
		if err := v.expression(stmt.Value, sc, stmt.Pos()); err != nil {
			return err
		}
		sc.declare(stmt.Name.Value)
		return nil

	case *ast.ValStatement:
		if err := v.expression(stmt.Value, sc, stmt.Pos()); err != nil {
			return err
		}
		sc.declare(stmt.Name.Value)
		return nil

	case *ast.ReturnStatement:
		return v.expression(stmt.ReturnValue, sc, stmt.Pos())

	case *ast.ExpressionStatement:
		return v.expression(stmt.Expression, sc, stmt.Pos())

	case *ast.BlockStatement:
		inner := newScope(sc)
		for _, s := range stmt.Statements {
			if err := v.statement(s, inner); err != nil {
				return err
			}
		}
		return nil

	case nil:
		return fmt.Errorf("incomplete program: missing statement")

	default:
		return fmt.Errorf("unknown statement %T at offset %d", stmt, stmt.Pos())
	}
}

// expression validates one expression subtree. parentPos attributes a missing
// child to the node that should have provided it.
func (v *Validator) expression(expr ast.Expression, sc *scope, parentPos int) error {
	switch expr := expr.(type) {
	case *ast.Identifier:
		if !sc.resolves(expr.Value) {
			return fmt.Errorf("identifier not found: %s (at offset %d)", expr.Value, expr.Pos())
		}
		return nil

	case *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NoneLiteral:
		return nil

	case *ast.SequenceLiteral:
		for i, el := range expr.Elements {
			if el == nil {
				return fmt.Errorf("%s literal %s has a missing element at position %d (at offset %d)",
					expr.Kind, expr.String(), i, expr.Pos())
			}
			if err := v.expression(el, sc, expr.Pos()); err != nil {
				return err
			}
		}
		return nil

	case *ast.PrefixExpression:
		return v.expression(expr.Right, sc, expr.Pos())

	case *ast.InfixExpression:
		if expr.Operator == "=" {
			return v.assignment(expr, sc)
		}
		if err := v.expression(expr.Left, sc, expr.Pos()); err != nil {
			return err
		}
		return v.expression(expr.Right, sc, expr.Pos())

	case *ast.IfExpression:
		if err := v.expression(expr.Condition, sc, expr.Pos()); err != nil {
			return err
		}
		if err := v.statement(expr.ThenBranch, sc); err != nil {
			return err
		}
		if expr.ElseBranch != nil {
			return v.statement(expr.ElseBranch, sc)
		}
		return nil

	case *ast.FunctionLiteral:
		inner := newScope(sc)
		for _, param := range expr.Parameters {
			inner.declare(param.Value)
		}
		return v.statement(expr.Body, inner)

	case *ast.CallExpression:
		if err := v.expression(expr.Function, sc, expr.Pos()); err != nil {
			return err
		}
		for _, arg := range expr.Arguments {
			if err := v.expression(arg, sc, expr.Pos()); err != nil {
				return err
			}
		}
		return nil

	case *ast.IndexExpression:
		if err := v.expression(expr.Left, sc, expr.Pos()); err != nil {
			return err
		}
		return v.expression(expr.Index, sc, expr.Pos())

	case nil:
		return fmt.Errorf("incomplete expression: missing operand (at offset %d)", parentPos)

	default:
		return fmt.Errorf("unknown expression %T at offset %d", expr, expr.Pos())
	}
}

// assignment allows only an identifier on the left-hand side and requires the
// name to already exist; `=` never declares.
func (v *Validator) assignment(expr *ast.InfixExpression, sc *scope) error {
	name, ok := expr.Left.(*ast.Identifier)
	if !ok {
		return fmt.Errorf("cannot assign to %s (at offset %d)", describe(expr.Left), expr.Pos())
	}
	if !sc.resolves(name.Value) {
		return fmt.Errorf("cannot assign to undeclared name: %s (at offset %d)", name.Value, name.Pos())
	}
	return v.expression(expr.Right, sc, expr.Pos())
}

func describe(expr ast.Expression) string {
	if expr == nil {
		return "a missing expression"
	}
	return expr.String()
}

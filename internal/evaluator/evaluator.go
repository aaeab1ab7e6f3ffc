package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"newt/internal/ast"
	"newt/internal/object"
)

// Evaluator walks a validated syntax tree and produces runtime values. It
// carries the host context so a long recursion can be cancelled between
// element evaluations; cancellation surfaces as an Interrupt object that
// propagates unmodified through every enclosing evaluation.
type Evaluator struct {
	ctx context.Context
}

func New(ctx context.Context) *Evaluator {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Evaluator{ctx: ctx}
}

func (ev *Evaluator) Eval(node ast.Node, env *object.Environment) object.Object {
	switch node := node.(type) {

	// Statements
	case *ast.Program:
		return ev.evalProgram(node, env)

	case *ast.ExpressionStatement:
		return ev.Eval(node.Expression, env)

	case *ast.VarStatement:
		val := ev.Eval(node.Value, env)
		if halts(val) {
			return val
		}
		if _, err := env.Define(node.Name.Value, val); err != nil {
			return newError(node.Pos(), "%s", err)
		}
		return object.NONE

	case *ast.ValStatement:
		val := ev.Eval(node.Value, env)
		if halts(val) {
			return val
		}
		if _, err := env.DefineConstant(node.Name.Value, val); err != nil {
			return newError(node.Pos(), "%s", err)
		}
		return object.NONE

	case *ast.ReturnStatement:
		val := ev.Eval(node.ReturnValue, env)
		if halts(val) {
			return val
		}
		return &object.ReturnValue{Value: val}

	case *ast.BlockStatement:
		return ev.evalBlockStatement(node, env)

	// Expressions
	case *ast.NumberLiteral:
		return &object.Number{Value: node.Value}

	case *ast.StringLiteral:
		return &object.String{Value: node.Value}

	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)

	case *ast.NoneLiteral:
		return object.NONE

	case *ast.Identifier:
		return ev.evalIdentifier(node, env)

	case *ast.SequenceLiteral:
		return ev.evalSequenceLiteral(node, env)

	case *ast.PrefixExpression:
		right := ev.Eval(node.Right, env)
		if halts(right) {
			return right
		}
		return evalPrefixExpression(node, right)

	case *ast.InfixExpression:
		if node.Operator == "=" {
			return ev.evalAssignment(node, env)
		}
		return ev.evalInfixExpression(node, env)

	case *ast.IfExpression:
		return ev.evalIfExpression(node, env)

	case *ast.FunctionLiteral:
		return &object.Function{Parameters: node.Parameters, Body: node.Body, Env: env}

	case *ast.CallExpression:
		function := ev.Eval(node.Function, env)
		if halts(function) {
			return function
		}
		args := ev.evalExpressions(node.Arguments, env, node.Pos())
		if len(args) == 1 && halts(args[0]) {
			return args[0]
		}
		return ev.applyFunction(node, function, args)

	case *ast.IndexExpression:
		left := ev.Eval(node.Left, env)
		if halts(left) {
			return left
		}
		index := ev.Eval(node.Index, env)
		if halts(index) {
			return index
		}
		return evalIndexExpression(node, left, index)

	case nil:
		return newError(-1, "incomplete syntax tree: missing node")
	}

	return newError(node.Pos(), "unknown node type %T", node)
}

func (ev *Evaluator) evalProgram(program *ast.Program, env *object.Environment) object.Object {
	var result object.Object = object.NONE

	for _, statement := range program.Statements {
		if interrupt := ev.interrupted(); interrupt != nil {
			return interrupt
		}

		result = ev.Eval(statement, env)

		switch result := result.(type) {
		case *object.ReturnValue:
			return result.Value
		case *object.Error:
			return result
		case *object.Interrupt:
			return result
		}
	}

	return result
}

func (ev *Evaluator) evalBlockStatement(block *ast.BlockStatement, env *object.Environment) object.Object {
	var result object.Object = object.NONE

	for _, statement := range block.Statements {
		if interrupt := ev.interrupted(); interrupt != nil {
			return interrupt
		}

		result = ev.Eval(statement, env)

		if result != nil {
			rt := result.Type()
			if rt == object.RETURN_VALUE_OBJ || rt == object.ERROR_OBJ || rt == object.INTERRUPT_OBJ {
				return result
			}
		}
	}

	return result
}

// evalSequenceLiteral evaluates every element in source order into a buffer
// sized up front, then seals the buffer into the value the kind tag dictates.
// A halting element outcome is returned as-is; elements after it are never
// evaluated. The buffer never escapes on failure, so a sequence value either
// holds every element outcome or does not exist at all.
func (ev *Evaluator) evalSequenceLiteral(node *ast.SequenceLiteral, env *object.Environment) object.Object {
	elements := make([]object.Object, 0, len(node.Elements))

	for i, el := range node.Elements {
		if interrupt := ev.interrupted(); interrupt != nil {
			return interrupt
		}
		if el == nil {
			return newError(node.Pos(), "%s literal %s has a missing element at position %d",
				node.Kind, node.String(), i)
		}
		value := ev.Eval(el, env)
		if halts(value) {
			return value
		}
		elements = append(elements, value)
	}

	if node.IsTuple() {
		return &object.Tuple{Elements: elements}
	}
	return &object.List{Elements: elements, Owner: env}
}

func (ev *Evaluator) evalExpressions(exps []ast.Expression, env *object.Environment, pos int) []object.Object {
	result := make([]object.Object, 0, len(exps))

	for i, e := range exps {
		if interrupt := ev.interrupted(); interrupt != nil {
			return []object.Object{interrupt}
		}
		if e == nil {
			return []object.Object{newError(pos, "missing argument at position %d", i)}
		}
		evaluated := ev.Eval(e, env)
		if halts(evaluated) {
			return []object.Object{evaluated}
		}
		result = append(result, evaluated)
	}

	return result
}

func (ev *Evaluator) evalIdentifier(node *ast.Identifier, env *object.Environment) object.Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	if builtin, ok := builtins[node.Value]; ok {
		return builtin
	}
	return newError(node.Pos(), "identifier not found: %s", node.Value)
}

func (ev *Evaluator) evalAssignment(node *ast.InfixExpression, env *object.Environment) object.Object {
	name, ok := node.Left.(*ast.Identifier)
	if !ok {
		return newError(node.Pos(), "cannot assign to %s", node.Left.String())
	}

	val := ev.Eval(node.Right, env)
	if halts(val) {
		return val
	}

	if _, err := env.Assign(name.Value, val); err != nil {
		return newError(node.Pos(), "%s", err)
	}
	return val
}

func (ev *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *object.Environment) object.Object {
	left := ev.Eval(node.Left, env)
	if halts(left) {
		return left
	}

	// `and` and `or` short-circuit on the left operand's truthiness.
	switch node.Operator {
	case "and":
		if !isTruthy(left) {
			return left
		}
		return ev.Eval(node.Right, env)
	case "or":
		if isTruthy(left) {
			return left
		}
		return ev.Eval(node.Right, env)
	}

	right := ev.Eval(node.Right, env)
	if halts(right) {
		return right
	}

	operator := node.Operator
	switch {
	case left.Type() == object.NUMBER_OBJ && right.Type() == object.NUMBER_OBJ:
		return evalNumberInfixExpression(node, operator, left, right)
	case left.Type() == object.STRING_OBJ && right.Type() == object.STRING_OBJ:
		return evalStringInfixExpression(node, operator, left, right)
	case operator == "==":
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case operator == "!=":
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	case left.Type() != right.Type():
		return newError(node.Pos(), "type mismatch: %s %s %s", left.Type(), operator, right.Type())
	default:
		return newError(node.Pos(), "unknown operator: %s %s %s", left.Type(), operator, right.Type())
	}
}

func evalNumberInfixExpression(node *ast.InfixExpression, operator string, left, right object.Object) object.Object {
	leftVal := left.(*object.Number).Value
	rightVal := right.(*object.Number).Value

	switch operator {
	case "+":
		return &object.Number{Value: leftVal + rightVal}
	case "-":
		return &object.Number{Value: leftVal - rightVal}
	case "*":
		return &object.Number{Value: leftVal * rightVal}
	case "/":
		if rightVal == 0 {
			return newError(node.Pos(), "division by zero")
		}
		return &object.Number{Value: leftVal / rightVal}
	case "%":
		if rightVal == 0 {
			return newError(node.Pos(), "division by zero")
		}
		return &object.Number{Value: leftVal % rightVal}
	case "<":
		return nativeBoolToBooleanObject(leftVal < rightVal)
	case "<=":
		return nativeBoolToBooleanObject(leftVal <= rightVal)
	case ">":
		return nativeBoolToBooleanObject(leftVal > rightVal)
	case ">=":
		return nativeBoolToBooleanObject(leftVal >= rightVal)
	case "==":
		return nativeBoolToBooleanObject(leftVal == rightVal)
	case "!=":
		return nativeBoolToBooleanObject(leftVal != rightVal)
	default:
		return newError(node.Pos(), "unknown operator: %s %s %s", left.Type(), operator, right.Type())
	}
}

func evalStringInfixExpression(node *ast.InfixExpression, operator string, left, right object.Object) object.Object {
	leftVal := left.(*object.String).Value
	rightVal := right.(*object.String).Value

	switch operator {
	case "+":
		return &object.String{Value: leftVal + rightVal}
	case "==":
		return nativeBoolToBooleanObject(leftVal == rightVal)
	case "!=":
		return nativeBoolToBooleanObject(leftVal != rightVal)
	case "<":
		return nativeBoolToBooleanObject(leftVal < rightVal)
	case ">":
		return nativeBoolToBooleanObject(leftVal > rightVal)
	default:
		return newError(node.Pos(), "unknown operator: %s %s %s", left.Type(), operator, right.Type())
	}
}

func evalPrefixExpression(node *ast.PrefixExpression, right object.Object) object.Object {
	switch node.Operator {
	case "!", "not":
		return nativeBoolToBooleanObject(!isTruthy(right))
	case "-":
		if right.Type() != object.NUMBER_OBJ {
			return newError(node.Pos(), "unknown operator: -%s", right.Type())
		}
		value := right.(*object.Number).Value
		return &object.Number{Value: -value}
	default:
		return newError(node.Pos(), "unknown operator: %s%s", node.Operator, right.Type())
	}
}

func (ev *Evaluator) evalIfExpression(ie *ast.IfExpression, env *object.Environment) object.Object {
	condition := ev.Eval(ie.Condition, env)
	if halts(condition) {
		return condition
	}

	if isTruthy(condition) {
		return ev.Eval(ie.ThenBranch, env)
	} else if ie.ElseBranch != nil {
		return ev.Eval(ie.ElseBranch, env)
	}
	return object.NONE
}

func (ev *Evaluator) applyFunction(node *ast.CallExpression, fn object.Object, args []object.Object) object.Object {
	switch fn := fn.(type) {
	case *object.Function:
		if len(args) != len(fn.Parameters) {
			return newError(node.Pos(), "wrong number of arguments: expected %d, got %d",
				len(fn.Parameters), len(args))
		}
		extendedEnv := extendFunctionEnv(fn, args)
		evaluated := ev.Eval(fn.Body, extendedEnv)
		return unwrapReturnValue(evaluated)

	case *object.Builtin:
		result := fn.Fn(args...)
		if err, ok := result.(*object.Error); ok && err.Position < 0 {
			// Builtins do not know where they were called from.
			err.Position = node.Pos()
		}
		return result

	default:
		return newError(node.Pos(), "not a function: %s", fn.Type())
	}
}

func extendFunctionEnv(fn *object.Function, args []object.Object) *object.Environment {
	env := object.NewEnclosedEnvironment(fn.Env)
	for paramIdx, param := range fn.Parameters {
		env.Define(param.Value, args[paramIdx])
	}
	return env
}

func unwrapReturnValue(obj object.Object) object.Object {
	if returnValue, ok := obj.(*object.ReturnValue); ok {
		return returnValue.Value
	}
	return obj
}

// evalIndexExpression indexes any Sequence value. Negative indices count from
// the end, python-style.
func evalIndexExpression(node *ast.IndexExpression, left, index object.Object) object.Object {
	seq, ok := left.(object.Sequence)
	if !ok {
		return newError(node.Pos(), "index operator not supported: %s", left.Type())
	}
	idx, ok := index.(*object.Number)
	if !ok {
		return newError(node.Pos(), "index must be a number, got %s", index.Type())
	}

	i := idx.Value
	length := int64(seq.Len())
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return newError(node.Pos(), "index %d out of range (len %d)", idx.Value, length)
	}
	return seq.Item(int(i))
}

// interrupted converts a cancelled host context into the Interrupt object,
// once. Callers return it immediately without touching it again.
func (ev *Evaluator) interrupted() object.Object {
	if err := ev.ctx.Err(); err != nil {
		slog.Debug("evaluation interrupted", slog.Any("cause", err))
		return &object.Interrupt{Err: err}
	}
	return nil
}

// halts reports whether obj stops the enclosing evaluation: a runtime error
// or a host interrupt. Both propagate unmodified to the outermost caller.
func halts(obj object.Object) bool {
	if obj == nil {
		return false
	}
	t := obj.Type()
	return t == object.ERROR_OBJ || t == object.INTERRUPT_OBJ
}

func isTruthy(obj object.Object) bool {
	switch obj {
	case object.NONE:
		return false
	case object.TRUE:
		return true
	case object.FALSE:
		return false
	default:
		return true
	}
}

func nativeBoolToBooleanObject(input bool) *object.Boolean {
	if input {
		return object.TRUE
	}
	return object.FALSE
}

func newError(pos int, format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...), Position: pos}
}

package object

import (
	"bytes"
	"fmt"
	"newt/internal/ast"
	"strconv"
	"strings"
)

const (
	NONE_OBJ    = "NONE"
	BOOLEAN_OBJ = "BOOLEAN"
	NUMBER_OBJ  = "NUMBER"
	STRING_OBJ  = "STRING"

	LIST_OBJ  = "LIST"
	TUPLE_OBJ = "TUPLE"

	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
	ERROR_OBJ    = "ERROR"

	RETURN_VALUE_OBJ = "RETURN_VALUE"
	INTERRUPT_OBJ    = "INTERRUPT"
)

var (
	NONE  = &None{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type ObjectType string

type Object interface {
	Type() ObjectType
	Inspect() string
}

// Sequence is the capability shared by the two sequence value kinds: ordered
// indexable access and a length query. Mutation is not part of the contract;
// only List exposes it.
type Sequence interface {
	Object
	Len() int
	Item(i int) Object
}

type Number struct {
	Value int64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return strconv.FormatInt(n.Value, 10) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type None struct{}

func (n *None) Type() ObjectType { return NONE_OBJ }
func (n *None) Inspect() string  { return "none" }

// List is the mutable, resizable sequence value. Owner is a non-owning
// back-reference to the environment that evaluated the display; once that
// environment is frozen the list refuses further mutation. Aliases share the
// underlying storage, so a mutation through one alias is seen by all.
type List struct {
	Elements []Object
	Owner    *Environment
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Len() int         { return len(l.Elements) }
func (l *List) Item(i int) Object {
	return l.Elements[i]
}
func (l *List) Inspect() string {
	var out bytes.Buffer

	elements := []string{}
	for _, e := range l.Elements {
		elements = append(elements, e.Inspect())
	}

	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")

	return out.String()
}

func (l *List) Append(items ...Object) error {
	if err := l.checkMutable(); err != nil {
		return err
	}
	l.Elements = append(l.Elements, items...)
	return nil
}

func (l *List) Set(i int, item Object) error {
	if err := l.checkMutable(); err != nil {
		return err
	}
	if i < 0 || i >= len(l.Elements) {
		return fmt.Errorf("list index %d out of range (len %d)", i, len(l.Elements))
	}
	l.Elements[i] = item
	return nil
}

func (l *List) checkMutable() error {
	if l.Owner != nil && l.Owner.Frozen() {
		return fmt.Errorf("cannot mutate a list owned by a frozen environment")
	}
	return nil
}

// Tuple is the immutable, fixed-size sequence value. It is safe to share
// without copying; nothing can change it after construction.
type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Len() int         { return len(t.Elements) }
func (t *Tuple) Item(i int) Object {
	return t.Elements[i]
}

// Inspect renders `(a, b)`; a one-element tuple keeps the trailing comma so
// the rendering cannot be mistaken for a parenthesized value.
func (t *Tuple) Inspect() string {
	var out bytes.Buffer

	elements := []string{}
	for _, e := range t.Elements {
		elements = append(elements, e.Inspect())
	}

	out.WriteString("(")
	out.WriteString(strings.Join(elements, ", "))
	if len(t.Elements) == 1 {
		out.WriteString(",")
	}
	out.WriteString(")")

	return out.String()
}

type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Error is a programmer-visible evaluation failure. Position is the source
// offset of the node that raised it, -1 when unknown.
type Error struct {
	Message  string
	Position int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	if e.Position >= 0 {
		return fmt.Sprintf("error at offset %d: %s", e.Position, e.Message)
	}
	return "error: " + e.Message
}

// Interrupt carries a host cancellation signal up through every enclosing
// evaluation. It is never wrapped, retried or logged on the way out.
type Interrupt struct {
	Err error
}

func (i *Interrupt) Type() ObjectType { return INTERRUPT_OBJ }
func (i *Interrupt) Inspect() string  { return fmt.Sprintf("interrupted: %v", i.Err) }

type Function struct {
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	var out bytes.Buffer

	params := []string{}
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}

	out.WriteString("fn")
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(f.Body.String())

	return out.String()
}

type BuiltinFunction func(args ...Object) Object

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin " + b.Name + "() { <native fn> }" }

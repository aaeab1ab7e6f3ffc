package evaluator

import (
	"fmt"
	"newt/internal/object"
	"sort"
)

var builtins = map[string]*object.Builtin{
	"len": {
		Name: "len",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return newError(-1, "wrong number of arguments: expected 1, got %d", len(args))
			}
			switch arg := args[0].(type) {
			case *object.String:
				return &object.Number{Value: int64(len(arg.Value))}
			case object.Sequence:
				return &object.Number{Value: int64(arg.Len())}
			default:
				return newError(-1, "argument to `len` not supported, got %s", args[0].Type())
			}
		},
	},
	"type": {
		Name: "type",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return newError(-1, "wrong number of arguments: expected 1, got %d", len(args))
			}
			return &object.String{Value: string(args[0].Type())}
		},
	},
	"str": {
		Name: "str",
		Fn: func(args ...object.Object) object.Object {
			if len(args) != 1 {
				return newError(-1, "wrong number of arguments: expected 1, got %d", len(args))
			}
			return &object.String{Value: args[0].Inspect()}
		},
	},
	"print": {
		Name: "print",
		Fn: func(args ...object.Object) object.Object {
			for i, arg := range args {
				if i > 0 {
					fmt.Print(" ")
				}
				fmt.Print(arg.Inspect())
			}
			fmt.Println()
			return object.NONE
		},
	},
	"append": {
		Name: "append",
		Fn: func(args ...object.Object) object.Object {
			if len(args) < 2 {
				return newError(-1, "wrong number of arguments: expected at least 2, got %d", len(args))
			}
			list, ok := args[0].(*object.List)
			if !ok {
				return newError(-1, "argument to `append` must be LIST, got %s", args[0].Type())
			}
			if err := list.Append(args[1:]...); err != nil {
				return newError(-1, "%s", err)
			}
			return list
		},
	},
	// list copies any sequence (or builds an empty one) into a fresh mutable
	// list. The copy is unowned, so it stays mutable even after module load.
	"list": {
		Name: "list",
		Fn: func(args ...object.Object) object.Object {
			switch len(args) {
			case 0:
				return &object.List{Elements: []object.Object{}}
			case 1:
				seq, ok := args[0].(object.Sequence)
				if !ok {
					return newError(-1, "argument to `list` must be a sequence, got %s", args[0].Type())
				}
				elements := make([]object.Object, seq.Len())
				for i := range elements {
					elements[i] = seq.Item(i)
				}
				return &object.List{Elements: elements}
			default:
				return newError(-1, "wrong number of arguments: expected at most 1, got %d", len(args))
			}
		},
	},
	// tuple snapshots a sequence into an immutable tuple. Later mutations of
	// the source list are not visible through the tuple.
	"tuple": {
		Name: "tuple",
		Fn: func(args ...object.Object) object.Object {
			switch len(args) {
			case 0:
				return &object.Tuple{Elements: []object.Object{}}
			case 1:
				seq, ok := args[0].(object.Sequence)
				if !ok {
					return newError(-1, "argument to `tuple` must be a sequence, got %s", args[0].Type())
				}
				elements := make([]object.Object, seq.Len())
				for i := range elements {
					elements[i] = seq.Item(i)
				}
				return &object.Tuple{Elements: elements}
			default:
				return newError(-1, "wrong number of arguments: expected at most 1, got %d", len(args))
			}
		},
	},
}

// BuiltinNames returns every predeclared name, sorted, for passes that need
// to know the ambient vocabulary without depending on the implementations.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterBuiltin installs a host-provided builtin, overwriting any existing
// binding with the same name. Foreign function packages use this at init.
func RegisterBuiltin(b *object.Builtin) {
	builtins[b.Name] = b
}

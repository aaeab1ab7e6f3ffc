package evaluator

import "newt/internal/object"

// objectsEqual implements `==` across value kinds. Scalars compare by value,
// sequences element-wise and in order; a list never equals a tuple even when
// the elements match. Everything else compares by identity.
func objectsEqual(left, right object.Object) bool {
	switch left := left.(type) {
	case *object.Number:
		right, ok := right.(*object.Number)
		return ok && left.Value == right.Value
	case *object.String:
		right, ok := right.(*object.String)
		return ok && left.Value == right.Value
	case *object.Boolean:
		right, ok := right.(*object.Boolean)
		return ok && left.Value == right.Value
	case *object.None:
		_, ok := right.(*object.None)
		return ok
	case *object.List:
		right, ok := right.(*object.List)
		return ok && sequencesEqual(left, right)
	case *object.Tuple:
		right, ok := right.(*object.Tuple)
		return ok && sequencesEqual(left, right)
	default:
		return left == right
	}
}

func sequencesEqual(left, right object.Sequence) bool {
	if left.Len() != right.Len() {
		return false
	}
	for i := 0; i < left.Len(); i++ {
		if !objectsEqual(left.Item(i), right.Item(i)) {
			return false
		}
	}
	return true
}

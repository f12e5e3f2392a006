package jsonproc

import "encoding/json"

// Kind is the closed set of value tags a walk dispatches on. It covers the
// JSON value universe as produced by encoding/json plus two extras: Bytes
// for []byte leaves in programmatically built trees, and Opaque for any
// other Go value carried inside a tree.
type Kind uint8

const (
	// Invalid is the zero Kind. It never matches anything.
	Invalid Kind = iota
	// Null is a nil value.
	Null
	// Bool is a bool value.
	Bool
	// Int covers all Go integer types.
	Int
	// Float covers float32 and float64.
	Float
	// Number is a json.Number, and the widening parent of Int and Float.
	Number
	// String is a string value.
	String
	// Bytes is a []byte value.
	Bytes
	// Object is a map[string]any container.
	Object
	// Array is a []any container.
	Array
	// Opaque is any other Go value.
	Opaque
	// Any is the widening root: every valid kind is an Any.
	Any
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Number:
		return "number"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case Object:
		return "object"
	case Array:
		return "array"
	case Opaque:
		return "opaque"
	case Any:
		return "any"
	default:
		return "invalid"
	}
}

// Parent returns the kind one step up the widening chain: Number for Int
// and Float, Any for everything else, Invalid at the top.
func (k Kind) Parent() Kind {
	switch k {
	case Int, Float:
		return Number
	case Null, Bool, Number, String, Bytes, Object, Array, Opaque:
		return Any
	default:
		return Invalid
	}
}

// Is reports whether k is target or a descendant of target in the
// widening chain. Int.Is(Number) and Float.Is(Any) are true;
// Number.Is(Int) is not.
func (k Kind) Is(target Kind) bool {
	if k == Invalid || target == Invalid {
		return false
	}
	for cur := k; cur != Invalid; cur = cur.Parent() {
		if cur == target {
			return true
		}
	}
	return false
}

// KindOf maps a runtime value to its Kind. Containers are exactly
// map[string]any and []any, the shapes encoding/json produces; any other
// map or slice type is an Opaque leaf.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case string:
		return String
	case []byte:
		return Bytes
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int
	case float32, float64:
		return Float
	case json.Number:
		return Number
	case map[string]any:
		return Object
	case []any:
		return Array
	default:
		return Opaque
	}
}

// Target is the set of kinds a walk matches values against. Matching
// widens through the kind hierarchy, so Target{Number} matches Int and
// Float values and Target{Any} matches everything. An empty Target
// matches nothing.
type Target []Kind

// Matches reports whether a value of kind k is covered by the set,
// widening included.
func (t Target) Matches(k Kind) bool {
	for _, want := range t {
		if k.Is(want) {
			return true
		}
	}
	return false
}

// MatchesExact is Matches without widening: k itself must be in the set.
func (t Target) MatchesExact(k Kind) bool {
	for _, want := range t {
		if k == want && k != Invalid {
			return true
		}
	}
	return false
}

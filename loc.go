package jsonproc

import "fmt"

// Loc identifies a node's position in its enclosing container: the key
// when the container is an object, the index when it is an array. The
// zero Loc means "no enclosing container".
type Loc struct {
	key string
	idx int
	in  Kind
}

// KeyLoc returns the location of key k in an object.
func KeyLoc(k string) Loc {
	return Loc{key: k, in: Object}
}

// IndexLoc returns the location of index i in an array.
func IndexLoc(i int) Loc {
	return Loc{idx: i, in: Array}
}

// Key returns the object key and whether the location is inside an object.
func (l Loc) Key() (string, bool) {
	return l.key, l.in == Object
}

// Index returns the array index and whether the location is inside an array.
func (l Loc) Index() (int, bool) {
	return l.idx, l.in == Array
}

// Container returns the kind of the enclosing container, Object or Array,
// or Invalid for the zero Loc.
func (l Loc) Container() Kind {
	return l.in
}

// String renders the location for error and log text.
func (l Loc) String() string {
	switch l.in {
	case Object:
		return fmt.Sprintf("key %q", l.key)
	case Array:
		return fmt.Sprintf("index %d", l.idx)
	default:
		return "root"
	}
}

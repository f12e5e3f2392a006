package jsonproc

// FlattenOption configures [Flatten].
type FlattenOption func(*flattenOptions)

type flattenOptions struct {
	sep       string
	keepKeys  map[string]bool
	keepPaths map[string]bool
}

// JoinWith sets the separator between nested keys. Default ".".
func JoinWith(sep string) FlattenOption {
	return func(o *flattenOptions) {
		o.sep = sep
	}
}

// KeepKeys stops descent at any entry with one of the given keys; the
// nested value is kept whole under its joined path.
func KeepKeys(keys ...string) FlattenOption {
	return func(o *flattenOptions) {
		if o.keepKeys == nil {
			o.keepKeys = make(map[string]bool, len(keys))
		}
		for _, k := range keys {
			o.keepKeys[k] = true
		}
	}
}

// KeepPaths is [KeepKeys] matched against the full joined path instead of
// the bare key.
func KeepPaths(paths ...string) FlattenOption {
	return func(o *flattenOptions) {
		if o.keepPaths == nil {
			o.keepPaths = make(map[string]bool, len(paths))
		}
		for _, p := range paths {
			o.keepPaths[p] = true
		}
	}
}

// Flatten returns a new single-level object mapping joined key paths to
// leaf values. Arrays are treated as leaves; empty nested objects
// contribute nothing. The input is not modified.
func Flatten(obj map[string]any, opts ...FlattenOption) map[string]any {
	o := &flattenOptions{sep: "."}
	for _, opt := range opts {
		opt(o)
	}
	out := make(map[string]any)
	flattenInto(out, obj, "", o)
	return out
}

func flattenInto(out, obj map[string]any, prefix string, o *flattenOptions) {
	for k, v := range obj {
		path := k
		if prefix != "" {
			path = prefix + o.sep + k
		}
		m, isObject := v.(map[string]any)
		if !isObject || o.keepKeys[k] || o.keepPaths[path] {
			out[path] = v
			continue
		}
		flattenInto(out, m, path, o)
	}
}

// SetNested sets value at the given key path in obj, creating
// intermediate objects as needed. An existing non-object intermediate is
// overwritten. An empty path is a no-op.
func SetNested(obj map[string]any, path []string, value any) {
	if len(path) == 0 {
		return
	}
	cur := obj
	for _, k := range path[:len(path)-1] {
		next, ok := cur[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[k] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}

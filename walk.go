package jsonproc

import (
	"errors"
	"fmt"
)

// Func transforms a matched value during a walk. loc is the value's
// position in its enclosing container. The returned value replaces the
// original; returning an error leaves the node unchanged and defers to
// the walk's failure policy. Returning [Break] stops the current
// container.
type Func func(value any, loc Loc) (any, error)

// Traverse walks obj depth-first and in place. Every value whose kind is
// covered by target is replaced with the result of fn; when the
// replacement is itself an object or array it is walked exactly once,
// immediately. Non-matching objects and arrays are descended into, and
// every other value is left untouched.
//
// By default callback errors are swallowed and the walk continues; see
// [FailFast], [LogFailures] and [Collapse] for the knobs.
func Traverse(obj map[string]any, target Target, fn Func, opts ...Option) error {
	return traverseMap(obj, target, fn, buildOptions(opts))
}

// TraverseSlice is [Traverse] for a top-level array. Elements are visited
// in index order.
func TraverseSlice(list []any, target Target, fn Func, opts ...Option) error {
	return traverseSlice(list, target, fn, buildOptions(opts))
}

// TraverseAny dispatches on the dynamic type of root: objects go to
// [Traverse], arrays to [TraverseSlice], and anything else is rejected
// with an *InvalidRootError.
func TraverseAny(root any, target Target, fn Func, opts ...Option) error {
	switch v := root.(type) {
	case map[string]any:
		return Traverse(v, target, fn, opts...)
	case []any:
		return TraverseSlice(v, target, fn, opts...)
	default:
		return &InvalidRootError{Value: root}
	}
}

func traverseMap(obj map[string]any, target Target, fn Func, o *walkOptions) error {
	for k, v := range obj {
		if target.Matches(KindOf(v)) {
			out, err := fn(v, KeyLoc(k))
			if err != nil {
				if errors.Is(err, Break) {
					return nil
				}
				if ferr := o.report(KeyLoc(k), err); ferr != nil {
					return ferr
				}
				continue
			}
			obj[k] = out
			if err := descend(out, target, fn, o); err != nil {
				return err
			}
			continue
		}
		switch child := v.(type) {
		case map[string]any:
			if _, ok := o.collapseTarget(child); ok {
				if err := collapseChain(obj, k, child, target, fn, o); err != nil {
					if errors.Is(err, Break) {
						return nil
					}
					return err
				}
				continue
			}
			if err := traverseMap(child, target, fn, o); err != nil {
				return err
			}
		case []any:
			if err := traverseSlice(child, target, fn, o); err != nil {
				return err
			}
		}
	}
	return nil
}

func traverseSlice(list []any, target Target, fn Func, o *walkOptions) error {
	for i, v := range list {
		if target.Matches(KindOf(v)) {
			out, err := fn(v, IndexLoc(i))
			if err != nil {
				if errors.Is(err, Break) {
					return nil
				}
				if ferr := o.report(IndexLoc(i), err); ferr != nil {
					return ferr
				}
				continue
			}
			list[i] = out
			if err := descend(out, target, fn, o); err != nil {
				return err
			}
			continue
		}
		switch child := v.(type) {
		case map[string]any:
			// An array element is never collapsed itself, there is no
			// parent key to collapse under, but its children are.
			if err := traverseMap(child, target, fn, o); err != nil {
				return err
			}
		case []any:
			if err := traverseSlice(child, target, fn, o); err != nil {
				return err
			}
		}
	}
	return nil
}

// descend walks a replacement value that is itself a container. Injected
// substructure is processed once, immediately; the walk never revisits it.
func descend(v any, target Target, fn Func, o *walkOptions) error {
	switch child := v.(type) {
	case map[string]any:
		return traverseMap(child, target, fn, o)
	case []any:
		return traverseSlice(child, target, fn, o)
	}
	return nil
}

// collapseTarget reports whether m is a single-entry object whose sole
// key is in the collapse set, returning the inner value.
func (o *walkOptions) collapseTarget(m map[string]any) (any, bool) {
	if len(o.collapse) == 0 || len(m) != 1 {
		return nil, false
	}
	for k, v := range m {
		if o.collapse[k] {
			return v, true
		}
	}
	return nil, false
}

// collapseChain unwraps a chain of collapsible wrappers below obj[k] and
// commits the final value. Each pulled-up value is independently tested
// against target and processed under the parent key k. In fail-fast mode
// a callback error returns before anything is committed, leaving the
// original wrapper in place.
func collapseChain(obj map[string]any, k string, wrapper map[string]any, target Target, fn Func, o *walkOptions) error {
	val := any(wrapper)
	for {
		m, ok := val.(map[string]any)
		if !ok {
			break
		}
		inner, ok := o.collapseTarget(m)
		if !ok {
			break
		}
		if target.Matches(KindOf(inner)) {
			out, err := fn(inner, KeyLoc(k))
			switch {
			case errors.Is(err, Break):
				// Propagated so the enclosing loop stops too; nothing is
				// committed.
				return Break
			case err != nil:
				if ferr := o.report(KeyLoc(k), err); ferr != nil {
					return ferr
				}
				// Pass on fail: the value surfaces unprocessed.
			default:
				inner = out
			}
		}
		val = inner
	}
	obj[k] = val
	return descend(val, target, fn, o)
}

// report applies the failure policy for a failed callback at loc: log
// when a sink is configured, then either swallow or propagate.
func (o *walkOptions) report(loc Loc, err error) error {
	if o.logger != nil {
		o.logger.Error(failMessage(loc), err)
	}
	if o.failFast {
		return err
	}
	return nil
}

func failMessage(loc Loc) string {
	if k, ok := loc.Key(); ok {
		return fmt.Sprintf("unable to process item with key %q", k)
	}
	if i, ok := loc.Index(); ok {
		return fmt.Sprintf("unable to process item at index %d", i)
	}
	return "unable to process item"
}

package jsonproc

// Args carries caller-supplied named arguments from [Processor.ProcessArgs]
// to callbacks that declared them with [RequireArgs]. Arguments a callback
// did not declare are simply ignored.
type Args map[string]any

// Invocation is the context handed to a processor callback. Value is
// re-fetched from the container before every callback, so a replacement
// made by an earlier callback at the same location is what the next one
// sees.
type Invocation struct {
	Value any
	Loc   Loc
	Depth int // 0 for locations in the root container
	Args  Args
}

// CallbackFunc is the function a [Callback] wraps. The returned value
// replaces the one at the invocation's location unless the callback was
// built with [Observe]. Returning [Break] stops the current container.
type CallbackFunc func(inv Invocation) (any, error)

// ItemFilter gates a callback: returning false skips the callback for
// that node without affecting later callbacks. The filter package has
// constructors for common cases.
type ItemFilter func(value any, loc Loc) bool

// Callback is a registrable unit of work: a function plus its dispatch
// metadata. The zero value is rejected by [Processor.Register]; build one
// with [NewCallback].
type Callback struct {
	fn            CallbackFunc
	filter        ItemFilter
	filterSet     bool
	name          string
	requiredArgs  []string
	allowFailures bool
	observe       bool
	marked        bool
}

// CallbackOption configures a Callback at construction.
type CallbackOption func(*Callback)

// NewCallback builds a registrable Callback around fn. Structural
// problems (nil fn, nil filter) are reported later, by
// [Processor.Register], so construction itself never fails.
func NewCallback(fn CallbackFunc, opts ...CallbackOption) Callback {
	cb := Callback{fn: fn, marked: true}
	for _, opt := range opts {
		opt(&cb)
	}
	return cb
}

// Named attaches a display name, used in argument errors and debug logs.
func Named(name string) CallbackOption {
	return func(cb *Callback) {
		cb.name = name
	}
}

// WithFilter attaches an ItemFilter deciding per node whether the
// callback runs.
func WithFilter(f ItemFilter) CallbackOption {
	return func(cb *Callback) {
		cb.filter = f
		cb.filterSet = true
	}
}

// AllowFailures tolerates errors from this callback: they are swallowed,
// the node keeps its value, and later callbacks still run. Argument
// errors are never swallowed.
func AllowFailures() CallbackOption {
	return func(cb *Callback) {
		cb.allowFailures = true
	}
}

// Observe makes the callback read-only: its return value is discarded and
// the tree is never modified by it.
func Observe() CallbackOption {
	return func(cb *Callback) {
		cb.observe = true
	}
}

// RequireArgs declares named arguments the callback needs from
// [Processor.ProcessArgs]. A Process call that omits one fails with a
// *MissingArgsError naming it.
func RequireArgs(names ...string) CallbackOption {
	return func(cb *Callback) {
		cb.requiredArgs = append(cb.requiredArgs, names...)
	}
}

// validate is the registration-time check: callbacks must come from
// NewCallback with a usable function and, when a filter was supplied, a
// non-nil one.
func (cb Callback) validate() error {
	if !cb.marked {
		return ErrUnmarkedCallback
	}
	if cb.fn == nil {
		return ErrNilCallbackFunc
	}
	if cb.filterSet && cb.filter == nil {
		return ErrNilItemFilter
	}
	return nil
}

// missingArgs returns the declared argument names absent from args.
func (cb Callback) missingArgs(args Args) []string {
	var missing []string
	for _, name := range cb.requiredArgs {
		if _, ok := args[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

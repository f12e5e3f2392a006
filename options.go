package jsonproc

import "github.com/Gobd/jsonproc/logging"

// Option configures a single walk started by [Traverse], [TraverseSlice]
// or [TraverseAny].
type Option func(*walkOptions)

type walkOptions struct {
	failFast bool
	logger   logging.Logger
	collapse map[string]bool
}

func buildOptions(opts []Option) *walkOptions {
	o := &walkOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FailFast makes the walk return the first callback error instead of
// swallowing it. Mutations made before the failure are kept; the failing
// node keeps its original value.
func FailFast() Option {
	return func(o *walkOptions) {
		o.failFast = true
	}
}

// LogFailures emits one error-severity record through l for every
// callback failure. Logging never changes outcomes: in the default
// pass-on-fail mode the walk continues, under [FailFast] the failing node
// is logged before the error is returned.
func LogFailures(l logging.Logger) Option {
	return func(o *walkOptions) {
		o.logger = l
	}
}

// Collapse unwraps sub-objects that hold exactly one entry under one of
// the given keys, replacing the wrapper with the entry's value. Chains of
// such wrappers unwrap fully. A pulled-up value that matches the walk's
// target is processed by the callback as it surfaces; under [FailFast] a
// callback error aborts before the collapse is committed.
func Collapse(keys ...string) Option {
	return func(o *walkOptions) {
		if o.collapse == nil {
			o.collapse = make(map[string]bool, len(keys))
		}
		for _, k := range keys {
			o.collapse[k] = true
		}
	}
}

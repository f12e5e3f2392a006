package jsonproc

import (
	"errors"
	"fmt"
	"strings"
)

// Break stops processing of the current container when returned by a
// callback, the way [io/fs.SkipDir] stops a directory walk. The walkers
// consume it; it is never surfaced to callers.
var Break = errors.New("jsonproc: break")

// Registration failures reported by [Processor.Register].
var (
	// ErrUnmarkedCallback means the Callback was not built with NewCallback.
	ErrUnmarkedCallback = errors.New("jsonproc: callback must be built with NewCallback")
	// ErrNilCallbackFunc means NewCallback was given a nil function.
	ErrNilCallbackFunc = errors.New("jsonproc: callback func is nil")
	// ErrNilItemFilter means WithFilter was given a nil filter.
	ErrNilItemFilter = errors.New("jsonproc: item filter is nil")
	// ErrNoIdentifier means Registry.Add was given a processor built
	// without WithIdentifier.
	ErrNoIdentifier = errors.New("jsonproc: processor has no identifier")
)

// InvalidRootError reports a top-level value that is neither an object
// nor an array.
type InvalidRootError struct {
	Value any
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("jsonproc: root must be an object or array, got %T", e.Value)
}

// InvalidTargetError reports a callback registration against a kind that
// can never be dispatched.
type InvalidTargetError struct {
	Kind Kind
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("jsonproc: cannot register callback for kind %q", e.Kind.String())
}

// MissingArgsError reports named arguments a callback declared with
// RequireArgs that were absent from the Process call. It is always
// propagated, even for callbacks registered with AllowFailures.
type MissingArgsError struct {
	Callback string // callback name from Named, may be empty
	Missing  []string
}

func (e *MissingArgsError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		quoted[i] = "`" + m + "`"
	}
	if e.Callback != "" {
		return fmt.Sprintf("jsonproc: callback %s missing required argument(s): %s",
			e.Callback, strings.Join(quoted, ", "))
	}
	return fmt.Sprintf("jsonproc: missing required argument(s): %s", strings.Join(quoted, ", "))
}

// ConvergenceError reports a location whose value kept changing kind
// until the re-dispatch limit was reached.
type ConvergenceError struct {
	Loc   Loc
	Limit int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("jsonproc: value at %s did not settle on a kind after %d re-dispatches",
		e.Loc, e.Limit)
}

// DuplicateIdentifierError reports a Registry.Add whose identifier is
// already taken.
type DuplicateIdentifierError struct {
	Identifier string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("jsonproc: processor %q is already registered", e.Identifier)
}

// UnknownIdentifierError reports a Registry.Lookup of an identifier that
// was never added.
type UnknownIdentifierError struct {
	Identifier string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("jsonproc: no processor registered as %q", e.Identifier)
}

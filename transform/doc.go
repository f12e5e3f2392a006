// Package transform provides tree transformation utilities for mutating
// string values recursively within JSON trees. These are shorthand for
// the common single-purpose [jsonproc.Traverse] walks.
package transform

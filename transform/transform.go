package transform

import (
	"strings"

	"github.com/Gobd/jsonproc"
)

// TrimSpace runs [strings.TrimSpace] on every string in the tree,
// including strings nested in objects and arrays at any depth.
func TrimSpace(root any) error {
	return StringFunc(root, strings.TrimSpace)
}

// ToLower runs [strings.ToLower] on every string in the tree.
func ToLower(root any) error {
	return StringFunc(root, strings.ToLower)
}

// StringFunc applies f to every string in the tree.
func StringFunc(root any, f func(string) string) error {
	return jsonproc.TraverseAny(root, jsonproc.Target{jsonproc.String},
		func(v any, _ jsonproc.Loc) (any, error) {
			return f(v.(string)), nil
		})
}

// Multi runs all given tree functions sequentially, stopping at the
// first error.
func Multi(root any, fns ...func(any) error) error {
	for _, f := range fns {
		if err := f(root); err != nil {
			return err
		}
	}
	return nil
}

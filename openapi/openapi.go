package openapi

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/jsonproc"
	"github.com/Gobd/jsonproc/filter"
)

// Load reads and parses an OpenAPI 3 document from path. References are
// resolved relative to the file.
func Load(path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	return loader.LoadFromFile(path)
}

// LoadData parses an OpenAPI 3 document from raw JSON or YAML bytes.
func LoadData(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	return loader.LoadFromData(data)
}

// DocTree converts doc to the dynamic JSON tree shape the jsonproc
// walkers operate on. Numbers arrive as json.Number, so round-tripping a
// document does not lose precision.
func DocTree(doc *openapi3.T) (map[string]any, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	tree, err := jsonproc.ParseTree(data)
	if err != nil {
		return nil, err
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, &jsonproc.InvalidRootError{Value: tree}
	}
	return obj, nil
}

// Outline collapses sole-key wrapper objects in tree under the given
// keys, by default "schema", "content" and "$ref". A media type holding
// only a schema becomes the schema itself and a lone $ref becomes its
// target string, producing the compact shape used when diffing or
// summarizing documents. The result is no longer a valid OpenAPI
// document.
func Outline(tree map[string]any, keys ...string) error {
	if len(keys) == 0 {
		keys = []string{"schema", "content", "$ref"}
	}
	// No value matching, the walk only collapses.
	keep := func(v any, _ jsonproc.Loc) (any, error) { return v, nil }
	return jsonproc.Traverse(tree, jsonproc.Target{}, keep, jsonproc.Collapse(keys...))
}

// Scrub blanks string values stored under the given keys everywhere in
// tree, by default "description" and "example". Non-string values under
// those keys are left alone.
func Scrub(tree map[string]any, keys ...string) error {
	if len(keys) == 0 {
		keys = []string{"description", "example"}
	}
	p := jsonproc.MustNew()
	p.MustRegister(jsonproc.String, jsonproc.NewCallback(
		func(_ jsonproc.Invocation) (any, error) { return "", nil },
		jsonproc.WithFilter(filter.Keys(keys...)),
		jsonproc.Named("scrub"),
	))
	return p.Process(tree)
}

// StripExtensions deletes x-* vendor extension entries from every object
// in tree, including the root.
func StripExtensions(tree map[string]any) error {
	stripObject(tree)
	p := jsonproc.MustNew()
	p.MustRegister(jsonproc.Object, jsonproc.NewCallback(
		func(inv jsonproc.Invocation) (any, error) {
			if obj, ok := inv.Value.(map[string]any); ok {
				stripObject(obj)
			}
			return inv.Value, nil
		},
		jsonproc.Named("strip-extensions"),
	))
	return p.Process(tree)
}

func stripObject(obj map[string]any) {
	for k := range obj {
		if strings.HasPrefix(k, "x-") {
			delete(obj, k)
		}
	}
}

// Package openapi applies jsonproc walks to OpenAPI 3 documents: loading
// a document into the dynamic tree shape, collapsing single-key wrapper
// objects into a compact outline, blanking descriptions and examples, and
// stripping vendor extensions.
//
// The usual pipeline loads a document, converts it, and runs one or more
// cleanups on the tree:
//
//	doc, _ := openapi.Load("api.yaml")
//	tree, _ := openapi.DocTree(doc)
//	_ = openapi.StripExtensions(tree)
//	_ = openapi.Outline(tree)
package openapi

package jsonproc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeTree decodes a single JSON value from r into the dynamic tree
// shape the walkers operate on: map[string]any, []any, string, bool, nil,
// and json.Number for numbers, so numeric precision survives a
// decode-walk-encode round trip. Trailing non-whitespace data after the
// value is an error.
func DecodeTree(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("jsonproc: decode tree: %w", err)
	}
	if dec.More() {
		return nil, errors.New("jsonproc: decode tree: trailing data after JSON value")
	}
	return v, nil
}

// ParseTree is [DecodeTree] over a byte slice.
func ParseTree(data []byte) (any, error) {
	return DecodeTree(bytes.NewReader(data))
}

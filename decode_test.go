package jsonproc_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jp "github.com/Gobd/jsonproc"
)

func TestParseTree_Object(t *testing.T) {
	tree, err := jp.ParseTree([]byte(`{"n": 1.00, "s": "x", "b": true, "z": null}`))

	require.NoError(t, err)
	obj := tree.(map[string]any)
	// Numbers keep their literal form.
	assert.Equal(t, json.Number("1.00"), obj["n"])
	assert.Equal(t, jp.Number, jp.KindOf(obj["n"]))
	assert.Equal(t, "x", obj["s"])
	assert.Equal(t, true, obj["b"])
	assert.Nil(t, obj["z"])
}

func TestParseTree_Array(t *testing.T) {
	tree, err := jp.ParseTree([]byte(`[1, "two", {"three": 3}]`))

	require.NoError(t, err)
	list := tree.([]any)
	require.Len(t, list, 3)
	assert.Equal(t, json.Number("1"), list[0])
	assert.Equal(t, "two", list[1])
	assert.Equal(t, map[string]any{"three": json.Number("3")}, list[2])
}

func TestParseTree_Scalar(t *testing.T) {
	tree, err := jp.ParseTree([]byte(`42`))

	require.NoError(t, err)
	assert.Equal(t, json.Number("42"), tree)
}

func TestParseTree_Invalid(t *testing.T) {
	_, err := jp.ParseTree([]byte(`{`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode tree")
}

func TestParseTree_TrailingData(t *testing.T) {
	_, err := jp.ParseTree([]byte(`{"a": 1} extra`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing data")
}

func TestDecodeTree_Reader(t *testing.T) {
	tree, err := jp.DecodeTree(strings.NewReader(`{"a": 1}`))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": json.Number("1")}, tree)
}

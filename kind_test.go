package jsonproc_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	jp "github.com/Gobd/jsonproc"
)

// ============ KindOf ============

func TestKindOf_Scalars(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want jp.Kind
	}{
		{"nil", nil, jp.Null},
		{"bool", true, jp.Bool},
		{"string", "x", jp.String},
		{"bytes", []byte("x"), jp.Bytes},
		{"int", 42, jp.Int},
		{"int64", int64(42), jp.Int},
		{"uint", uint(42), jp.Int},
		{"float64", 4.2, jp.Float},
		{"float32", float32(4.2), jp.Float},
		{"json.Number", json.Number("42"), jp.Number},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, jp.KindOf(tc.in))
		})
	}
}

func TestKindOf_Containers(t *testing.T) {
	assert.Equal(t, jp.Object, jp.KindOf(map[string]any{}))
	assert.Equal(t, jp.Array, jp.KindOf([]any{}))
}

func TestKindOf_OpaqueLeaves(t *testing.T) {
	// Only the shapes encoding/json produces count as containers.
	assert.Equal(t, jp.Opaque, jp.KindOf(map[string]string{"a": "b"}))
	assert.Equal(t, jp.Opaque, jp.KindOf([]int{1, 2}))
	assert.Equal(t, jp.Opaque, jp.KindOf(struct{}{}))
}

// ============ Kind hierarchy ============

func TestKind_String(t *testing.T) {
	assert.Equal(t, "object", jp.Object.String())
	assert.Equal(t, "int", jp.Int.String())
	assert.Equal(t, "invalid", jp.Invalid.String())
}

func TestKind_Parent(t *testing.T) {
	assert.Equal(t, jp.Number, jp.Int.Parent())
	assert.Equal(t, jp.Number, jp.Float.Parent())
	assert.Equal(t, jp.Any, jp.Number.Parent())
	assert.Equal(t, jp.Any, jp.String.Parent())
	assert.Equal(t, jp.Invalid, jp.Any.Parent())
}

func TestKind_Is_Widening(t *testing.T) {
	assert.True(t, jp.Int.Is(jp.Int))
	assert.True(t, jp.Int.Is(jp.Number))
	assert.True(t, jp.Int.Is(jp.Any))
	assert.True(t, jp.Object.Is(jp.Any))

	// Widening is one-directional.
	assert.False(t, jp.Number.Is(jp.Int))
	assert.False(t, jp.Any.Is(jp.String))
	assert.False(t, jp.String.Is(jp.Number))
}

func TestKind_Is_InvalidNeverMatches(t *testing.T) {
	assert.False(t, jp.Invalid.Is(jp.Any))
	assert.False(t, jp.String.Is(jp.Invalid))
}

// ============ Target ============

func TestTarget_Matches(t *testing.T) {
	tgt := jp.Target{jp.String, jp.Bytes}
	assert.True(t, tgt.Matches(jp.String))
	assert.True(t, tgt.Matches(jp.Bytes))
	assert.False(t, tgt.Matches(jp.Int))
}

func TestTarget_Matches_Widens(t *testing.T) {
	tgt := jp.Target{jp.Number}
	assert.True(t, tgt.Matches(jp.Int))
	assert.True(t, tgt.Matches(jp.Float))
	assert.True(t, tgt.Matches(jp.Number))
	assert.False(t, tgt.Matches(jp.String))
}

func TestTarget_MatchesExact(t *testing.T) {
	tgt := jp.Target{jp.Number}
	assert.True(t, tgt.MatchesExact(jp.Number))
	assert.False(t, tgt.MatchesExact(jp.Int))
	assert.False(t, tgt.MatchesExact(jp.Float))
}

func TestTarget_Empty_MatchesNothing(t *testing.T) {
	tgt := jp.Target{}
	assert.False(t, tgt.Matches(jp.String))
	assert.False(t, tgt.Matches(jp.Any))
}

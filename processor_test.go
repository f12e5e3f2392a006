package jsonproc_test

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jp "github.com/Gobd/jsonproc"
	"github.com/Gobd/jsonproc/logging"
)

// ============ Helpers ============

func upperCb(inv jp.Invocation) (any, error) {
	return strings.ToUpper(inv.Value.(string)), nil
}

func failCb(jp.Invocation) (any, error) {
	return nil, errBoom
}

// ============ Construction ============

func TestNew_Defaults(t *testing.T) {
	p, err := jp.New()

	require.NoError(t, err)
	assert.Equal(t, "", p.Identifier())
}

func TestNew_Identifier(t *testing.T) {
	p := jp.MustNew(jp.WithIdentifier("cleaner"))

	assert.Equal(t, "cleaner", p.Identifier())
}

func TestNew_NegativeReprocessLimit(t *testing.T) {
	_, err := jp.New(jp.ReprocessLimit(-1))

	require.Error(t, err)
	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs, "ReprocessLimit")
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		jp.MustNew(jp.ReprocessLimit(-1))
	})
}

// ============ Registration ============

func TestRegister_ZeroCallback(t *testing.T) {
	p := jp.MustNew()
	var cb jp.Callback

	err := p.Register(jp.String, cb)

	assert.ErrorIs(t, err, jp.ErrUnmarkedCallback)
}

func TestRegister_NilFunc(t *testing.T) {
	p := jp.MustNew()

	err := p.Register(jp.String, jp.NewCallback(nil))

	assert.ErrorIs(t, err, jp.ErrNilCallbackFunc)
}

func TestRegister_NilFilter(t *testing.T) {
	p := jp.MustNew()

	err := p.Register(jp.String, jp.NewCallback(upperCb, jp.WithFilter(nil)))

	assert.ErrorIs(t, err, jp.ErrNilItemFilter)
}

func TestRegister_InvalidTarget(t *testing.T) {
	p := jp.MustNew()

	err := p.Register(jp.Invalid, jp.NewCallback(upperCb))

	require.Error(t, err)
	var ite *jp.InvalidTargetError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, jp.Invalid, ite.Kind)
}

func TestMustRegister_Panics(t *testing.T) {
	p := jp.MustNew()

	assert.Panics(t, func() {
		p.MustRegister(jp.String, jp.Callback{})
	})
}

// ============ Dispatch ============

func TestProcess_InvalidRoot(t *testing.T) {
	p := jp.MustNew()

	err := p.Process("scalar")

	require.Error(t, err)
	var ire *jp.InvalidRootError
	assert.True(t, errors.As(err, &ire))
}

func TestProcess_SingleCallback(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.String, jp.NewCallback(upperCb))
	obj := map[string]any{
		"a": "one",
		"b": map[string]any{"c": "two"},
		"l": []any{"three", 4},
	}

	err := p.Process(obj)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": "ONE",
		"b": map[string]any{"c": "TWO"},
		"l": []any{"THREE", 4},
	}, obj)
}

func TestProcess_SameKind_RegistrationOrder(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.String, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		return inv.Value.(string) + "-1", nil
	}))
	p.MustRegister(jp.String, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		return inv.Value.(string) + "-2", nil
	}))
	obj := map[string]any{"a": "v"}

	err := p.Process(obj)

	require.NoError(t, err)
	// The second callback sees the first one's replacement.
	assert.Equal(t, "v-1-2", obj["a"])
}

func TestProcess_AcrossKinds_RegistrationOrder(t *testing.T) {
	var ran []string
	mark := func(name string) jp.Callback {
		return jp.NewCallback(func(jp.Invocation) (any, error) {
			ran = append(ran, name)
			return nil, nil
		}, jp.Observe())
	}
	p := jp.MustNew()
	p.MustRegister(jp.Int, mark("int"))
	p.MustRegister(jp.Any, mark("any"))
	p.MustRegister(jp.Bool, mark("bool"))
	obj := map[string]any{"flag": true}

	err := p.Process(obj)

	require.NoError(t, err)
	assert.Equal(t, []string{"any", "bool"}, ran)
}

func TestProcess_WideningDispatch(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.Number, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		switch x := inv.Value.(type) {
		case int:
			return x * 2, nil
		case float64:
			return x * 2, nil
		}
		return inv.Value, nil
	}))
	obj := map[string]any{"i": 3, "f": 1.5, "s": "x"}

	err := p.Process(obj)

	require.NoError(t, err)
	assert.Equal(t, 6, obj["i"])
	assert.Equal(t, 3.0, obj["f"])
	assert.Equal(t, "x", obj["s"])
}

func TestProcess_ExactKinds(t *testing.T) {
	p := jp.MustNew(jp.ExactKinds())
	p.MustRegister(jp.Number, jp.NewCallback(func(jp.Invocation) (any, error) {
		return "number", nil
	}))
	obj := map[string]any{"i": 3, "n": json.Number("2")}

	err := p.Process(obj)

	require.NoError(t, err)
	assert.Equal(t, 3, obj["i"])
	assert.Equal(t, "number", obj["n"])
}

func TestProcess_Filter(t *testing.T) {
	onlyKeep := func(_ any, loc jp.Loc) bool {
		k, _ := loc.Key()
		return k == "keep"
	}
	p := jp.MustNew()
	p.MustRegister(jp.String, jp.NewCallback(upperCb, jp.WithFilter(onlyKeep)))
	p.MustRegister(jp.String, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		return inv.Value.(string) + "!", nil
	}))
	obj := map[string]any{"keep": "a", "skip": "b"}

	err := p.Process(obj)

	require.NoError(t, err)
	// The filter gates only its own callback.
	assert.Equal(t, "A!", obj["keep"])
	assert.Equal(t, "b!", obj["skip"])
}

// ============ Failure handling ============

func TestProcess_FailurePropagates(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.String, jp.NewCallback(failCb))
	obj := map[string]any{"a": "v"}

	err := p.Process(obj)

	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "v", obj["a"])
}

func TestProcess_AllowFailures(t *testing.T) {
	log := logging.NewCapture()
	p := jp.MustNew(jp.WithLogger(log))
	p.MustRegister(jp.String, jp.NewCallback(failCb, jp.AllowFailures(), jp.Named("flaky")))
	p.MustRegister(jp.String, jp.NewCallback(upperCb))
	obj := map[string]any{"a": "v"}

	err := p.Process(obj)

	require.NoError(t, err)
	assert.Equal(t, "V", obj["a"])

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, logging.DebugLevel, entries[0].Level)
	assert.Equal(t, "callback failure allowed", entries[0].Message)
	var name any
	for _, f := range entries[0].Fields {
		if f.Key == "callback" {
			name = f.Value
		}
	}
	assert.Equal(t, "flaky", name)
}

func TestProcess_Observe(t *testing.T) {
	var seen []string
	p := jp.MustNew()
	p.MustRegister(jp.String, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		seen = append(seen, inv.Value.(string))
		return "ignored", nil
	}, jp.Observe()))
	obj := map[string]any{"a": "v"}

	err := p.Process(obj)

	require.NoError(t, err)
	assert.Equal(t, "v", obj["a"])
	assert.Equal(t, []string{"v"}, seen)
}

// ============ Depth and arguments ============

func TestProcess_Depth(t *testing.T) {
	keyDepth := map[string]int{}
	idxDepth := map[int]int{}
	p := jp.MustNew()
	p.MustRegister(jp.Any, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		if k, ok := inv.Loc.Key(); ok {
			keyDepth[k] = inv.Depth
		}
		if i, ok := inv.Loc.Index(); ok {
			idxDepth[i] = inv.Depth
		}
		return nil, nil
	}, jp.Observe()))
	obj := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
		},
		"l": []any{"x"},
	}

	err := p.Process(obj)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2, "l": 0}, keyDepth)
	assert.Equal(t, map[int]int{0: 1}, idxDepth)
}

func TestProcessArgs_Passthrough(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.Int, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		return inv.Value.(int) * inv.Args["factor"].(int), nil
	}, jp.RequireArgs("factor")))
	obj := map[string]any{"n": 3}

	err := p.ProcessArgs(obj, jp.Args{"factor": 4})

	require.NoError(t, err)
	assert.Equal(t, 12, obj["n"])
}

func TestProcessArgs_Missing(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.Int, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		return inv.Value, nil
	}, jp.RequireArgs("factor", "offset"), jp.Named("scale")))
	obj := map[string]any{"n": 3}

	err := p.ProcessArgs(obj, jp.Args{"factor": 4})

	require.Error(t, err)
	var mae *jp.MissingArgsError
	require.True(t, errors.As(err, &mae))
	assert.Equal(t, "scale", mae.Callback)
	assert.Equal(t, []string{"offset"}, mae.Missing)
	assert.Contains(t, err.Error(), "callback scale")
	assert.Contains(t, err.Error(), "`offset`")
}

func TestProcessArgs_Missing_NotSwallowed(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.Int, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		return inv.Value, nil
	}, jp.RequireArgs("factor"), jp.AllowFailures()))
	obj := map[string]any{"n": 3}

	err := p.ProcessArgs(obj, nil)

	require.Error(t, err)
	var mae *jp.MissingArgsError
	assert.True(t, errors.As(err, &mae))
}

// ============ Re-dispatch on kind change ============

func TestProcess_TypeChange_Redispatch(t *testing.T) {
	p := jp.MustNew(jp.ReprocessTypeChanges())
	p.MustRegister(jp.Int, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		return inv.Value.(int) * 2, nil
	}))
	p.MustRegister(jp.String, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		return strconv.Atoi(inv.Value.(string))
	}))
	list := []any{"2", 3}

	err := p.Process(list)

	require.NoError(t, err)
	// "2" parses to 2, the kind change re-dispatches, the int callback
	// doubles it.
	assert.Equal(t, []any{4, 6}, list)
}

func TestProcess_TypeChange_NoRedispatchByDefault(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.Int, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		return inv.Value.(int) * 2, nil
	}))
	p.MustRegister(jp.String, jp.NewCallback(func(jp.Invocation) (any, error) {
		return 2, nil
	}))
	list := []any{"2"}

	err := p.Process(list)

	require.NoError(t, err)
	assert.Equal(t, []any{2}, list)
}

func TestProcess_TypeChange_Convergence(t *testing.T) {
	p := jp.MustNew(jp.ReprocessTypeChanges(), jp.ReprocessLimit(5))
	p.MustRegister(jp.String, jp.NewCallback(func(jp.Invocation) (any, error) {
		return 1, nil
	}))
	p.MustRegister(jp.Int, jp.NewCallback(func(jp.Invocation) (any, error) {
		return "x", nil
	}))
	obj := map[string]any{"a": "start"}

	err := p.Process(obj)

	require.Error(t, err)
	var ce *jp.ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 5, ce.Limit)
	k, ok := ce.Loc.Key()
	require.True(t, ok)
	assert.Equal(t, "a", k)
	assert.Contains(t, err.Error(), "did not settle")
}

// ============ Break and mutation during a walk ============

func TestProcess_Break(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.Int, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		if inv.Value.(int) == 2 {
			return nil, jp.Break
		}
		return inv.Value.(int) * 10, nil
	}))
	list := []any{1, 2, 3}

	err := p.Process(list)

	require.NoError(t, err)
	assert.Equal(t, []any{10, 2, 3}, list)
}

func TestProcess_DeletedLocationSkipped(t *testing.T) {
	obj := map[string]any{"s": "x", "doomed": 5}
	p := jp.MustNew()
	p.MustRegister(jp.String, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		delete(obj, "doomed")
		return strings.ToUpper(inv.Value.(string)), nil
	}))

	err := p.Process(obj)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"s": "X"}, obj)
}

func TestProcess_AddedKeysNotVisited(t *testing.T) {
	child := map[string]any{"a": "x"}
	obj := map[string]any{"m": child}
	p := jp.MustNew()
	p.MustRegister(jp.String, jp.NewCallback(func(inv jp.Invocation) (any, error) {
		if inv.Value == "x" {
			child["added"] = "y"
		}
		return strings.ToUpper(inv.Value.(string)), nil
	}))

	err := p.Process(obj)

	require.NoError(t, err)
	// The sibling added mid-walk is kept but never dispatched.
	assert.Equal(t, map[string]any{"a": "X", "added": "y"}, child)
}

func TestProcess_ContainerCallback_ReplacesChild(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.Object, jp.NewCallback(func(jp.Invocation) (any, error) {
		return map[string]any{"fresh": "v"}, nil
	}))
	p.MustRegister(jp.String, jp.NewCallback(upperCb))
	obj := map[string]any{"m": map[string]any{"old": 1}}

	err := p.Process(obj)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"fresh": "V"}, obj["m"])
}

func TestProcess_NilReplacement(t *testing.T) {
	p := jp.MustNew()
	p.MustRegister(jp.String, jp.NewCallback(func(jp.Invocation) (any, error) {
		return nil, nil
	}))
	obj := map[string]any{"a": "x"}

	err := p.Process(obj)

	require.NoError(t, err)
	v, ok := obj["a"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

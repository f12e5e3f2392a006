// Package jsonproc transforms dynamic JSON trees in place, walking them
// depth-first and applying callbacks to values of selected kinds.
//
// [Traverse] is the function form: one callback, one target set:
//
//	obj := map[string]any{"a": "x", "b": map[string]any{"c": "y"}}
//	err := jsonproc.Traverse(obj, jsonproc.Target{jsonproc.String},
//	    func(v any, loc jsonproc.Loc) (any, error) {
//	        return strings.ToUpper(v.(string)), nil
//	    })
//
// [Processor] is the registry form: multiple callbacks keyed by kind,
// dispatched in registration order with widening (a Number callback sees
// Int and Float values), plus per-callback filters, failure tolerance,
// and named-argument passing:
//
//	p := jsonproc.MustNew()
//	err := p.Register(jsonproc.String, jsonproc.NewCallback(parse,
//	    jsonproc.WithFilter(filter.JSONString())))
//	err = p.Process(obj)
//
// Both forms mutate the given containers and walk each one at most once
// per call; substructure injected by a callback is walked immediately,
// exactly once.
//
// Sub-packages:
//   - filter – common item-filter constructors (keys, string formats, rules)
//   - logging – the structured logging seam used by LogFailures
//   - openapi – walker-powered OpenAPI 3 document cleanup
//   - transform – one-call string transforms over whole trees
package jsonproc

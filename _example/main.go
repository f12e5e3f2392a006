// Command example demonstrates jsonproc by cleaning a webhook payload:
// stringified JSON is inflated back into the tree, email addresses are
// masked, timestamps are normalized to UTC and single-key wrappers are
// collapsed.
//
// Run:
//
//	go run ./_example
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	jp "github.com/Gobd/jsonproc"
	"github.com/Gobd/jsonproc/filter"
	"github.com/Gobd/jsonproc/logging"
)

const payload = `{
  "event": "user.updated",
  "user": {
    "name": "Ada Lovelace",
    "email": "ada@example.com",
    "joined": "2024-03-01T12:00:00+02:00",
    "last_seen": "unknown",
    "settings": "{\"theme\": \"dark\", \"contact\": \"ada@example.com\"}"
  },
  "meta": {"value": {"value": "trace-1234"}}
}`

func main() {
	logger := logging.NewZap(logging.Config{Level: logging.DebugLevel, Name: "example"})

	tree, err := jp.ParseTree([]byte(payload))
	if err != nil {
		log.Fatal(err)
	}
	doc := tree.(map[string]any)

	// Embedded JSON documents become real substructure; the walk then
	// processes what they contained.
	inflate := jp.NewCallback(func(inv jp.Invocation) (any, error) {
		var out any
		if err := json.Unmarshal([]byte(inv.Value.(string)), &out); err != nil {
			return nil, err
		}
		return out, nil
	}, jp.WithFilter(filter.JSONString()), jp.Named("inflate"))

	mask := jp.NewCallback(func(inv jp.Invocation) (any, error) {
		s := inv.Value.(string)
		return s[:1] + "***" + s[strings.Index(s, "@"):], nil
	}, jp.WithFilter(filter.Email()), jp.Named("mask-email"))

	// last_seen holds "unknown" and fails to parse; AllowFailures keeps
	// the walk going and the failure shows up as a debug record.
	normalize := jp.NewCallback(func(inv jp.Invocation) (any, error) {
		ts, err := time.Parse(time.RFC3339, inv.Value.(string))
		if err != nil {
			return nil, err
		}
		return ts.UTC().Format(time.RFC3339), nil
	}, jp.WithFilter(filter.Keys("joined", "last_seen")), jp.AllowFailures(), jp.Named("normalize-time"))

	p := jp.MustNew(jp.WithLogger(logger))
	p.MustRegister(jp.String, inflate)
	p.MustRegister(jp.String, mask)
	p.MustRegister(jp.String, normalize)

	if err := p.Process(doc); err != nil {
		log.Fatal(err)
	}

	// The tracing id sits under a double "value" wrapper.
	keep := func(v any, _ jp.Loc) (any, error) { return v, nil }
	if err := jp.Traverse(doc, jp.Target{}, keep, jp.Collapse("value")); err != nil {
		log.Fatal(err)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

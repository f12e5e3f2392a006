// Command openapi demonstrates the jsonproc openapi helpers: a document
// is loaded, vendor extensions and prose are stripped and the wrapper
// objects are collapsed into a compact outline.
//
// Run:
//
//	cd _example/openapi && go run .
//
// Pass a path to outline your own document instead of the built-in one.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/Gobd/jsonproc/openapi"
)

const sample = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Orders API",
    "version": "1.0.0",
    "description": "Internal order service.",
    "x-owner": "platform"
  },
  "paths": {
    "/orders": {
      "get": {
        "summary": "List orders",
        "description": "Returns every order.",
        "x-rate-limit": 100,
        "responses": {
          "200": {
            "description": "OK",
            "content": {
              "application/json": {
                "schema": {"type": "array", "items": {"type": "string"}}
              }
            }
          }
        }
      }
    }
  }
}`

func main() {
	data := []byte(sample)
	if len(os.Args) > 1 {
		var err error
		if data, err = os.ReadFile(os.Args[1]); err != nil {
			log.Fatal(err)
		}
	}

	doc, err := openapi.LoadData(data)
	if err != nil {
		log.Fatal(err)
	}
	tree, err := openapi.DocTree(doc)
	if err != nil {
		log.Fatal(err)
	}

	if err := openapi.StripExtensions(tree); err != nil {
		log.Fatal(err)
	}
	if err := openapi.Scrub(tree); err != nil {
		log.Fatal(err)
	}
	if err := openapi.Outline(tree); err != nil {
		log.Fatal(err)
	}

	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

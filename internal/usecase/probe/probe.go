// Package probe inspects JSON data payloads cut out of benchmark prompts.
// It answers one question: how many records does this payload carry? The
// figure gives validation tables a size column that is independent of any
// tokenizer.
package probe

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// collectionPaths are tried in order against object payloads. The benchmark
// generators wrap their record arrays under one of these keys.
var collectionPaths = []string{
	"$.records",
	"$.rows",
	"$.items",
	"$.data",
}

// Records counts the records in a JSON payload.
//
// A top-level array counts directly. For an object, the known collection
// paths are probed and the first array found wins; an object with no
// collection key counts as a single record. Invalid JSON is an error: the
// caller decides whether that is worth a warning (payloads in non-JSON
// formats are not probeable and should not be passed here).
func Records(payload string) (int, error) {
	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return 0, fmt.Errorf("payload is not valid JSON: %w", err)
	}

	switch t := doc.(type) {
	case []any:
		return len(t), nil
	case map[string]any:
		for _, path := range collectionPaths {
			val, err := jsonpath.Get(path, doc)
			if err != nil {
				continue
			}
			if arr, ok := val.([]any); ok {
				return len(arr), nil
			}
		}
		return 1, nil
	default:
		// Scalar payloads are a single datum.
		return 1, nil
	}
}

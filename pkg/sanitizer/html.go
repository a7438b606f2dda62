// Package sanitizer strips markup from user-supplied task content before it
// is stored and served publicly.
package sanitizer

import (
	"encoding/json"
	"errors"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// ErrInvalidJSON is returned by JSON for input that does not parse.
var ErrInvalidJSON = errors.New("sanitizer: invalid JSON")

var strictPolicy = sync.OnceValue(bluemonday.StrictPolicy)

// Text removes every HTML element, unescapes entities left by the policy
// and collapses runs of whitespace.
func Text(s string) string {
	if s == "" {
		return ""
	}
	clean := html.UnescapeString(strictPolicy().Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

// JSON applies Text to every string in raw, keys included, and returns the
// re-encoded document. Empty input is returned unchanged.
func JSON(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return raw, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Join(ErrInvalidJSON, err)
	}

	out, err := json.Marshal(walk(v))
	if err != nil {
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	return out, nil
}

func walk(v any) any {
	switch x := v.(type) {
	case string:
		return Text(x)
	case []any:
		for i := range x {
			x[i] = walk(x[i])
		}
		return x
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[Text(k)] = walk(val)
		}
		return out
	default:
		return v
	}
}

package diff

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wI2L/jsondiff"
)

// Change is one json patch operation with its path in dotted form
type Change struct {
	Op       string      `json:"op"`
	Path     string      `json:"path"`
	NewValue interface{} `json:"new_value,omitempty"`
	OldValue interface{} `json:"old_value,omitempty"`
}

// Changelog lists what turns before into after once both are serialized to json.
// Changes under an ignored dotted path are left out. It returns nil when nothing differs.
func Changelog(before, after interface{}, ignored ...string) ([]*Change, error) {
	src, err := json.Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("encoding before: %w", err)
	}
	dst, err := json.Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("encoding after: %w", err)
	}

	patch, err := jsondiff.CompareJSON(src, dst)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return nil, nil
	}

	var original interface{}
	if err := json.Unmarshal(src, &original); err != nil {
		return nil, err
	}

	var changes []*Change
	for _, op := range patch {
		segments := splitPointer(op.Path)
		path := strings.Join(segments, ".")
		if isIgnored(path, ignored) {
			continue
		}

		c := &Change{Op: op.Type, Path: path, NewValue: op.Value}
		if op.Type == "replace" || op.Type == "remove" {
			if c.OldValue, err = valueAt(original, segments); err != nil {
				return nil, fmt.Errorf("resolving %q: %w", path, err)
			}
		}
		changes = append(changes, c)
	}
	return changes, nil
}

func isIgnored(path string, ignored []string) bool {
	for _, p := range ignored {
		if path == p || strings.HasPrefix(path, p+".") {
			return true
		}
	}
	return false
}

func valueAt(doc interface{}, segments []string) (interface{}, error) {
	current := doc
	for _, s := range segments {
		switch node := current.(type) {
		case map[string]interface{}:
			current = node[s]
		case []interface{}:
			i, err := strconv.Atoi(s)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("no element %q", s)
			}
			current = node[i]
		default:
			return nil, fmt.Errorf("cannot descend into %T at %q", current, s)
		}
	}
	return current, nil
}

// splitPointer decodes an RFC 6901 pointer into its reference tokens
func splitPointer(pointer string) []string {
	if pointer == "" {
		return nil
	}
	tokens := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	r := strings.NewReplacer("~1", "/", "~0", "~")
	for i, t := range tokens {
		tokens[i] = r.Replace(t)
	}
	return tokens
}

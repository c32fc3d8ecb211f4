package lookup

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// extractJSONPath pulls a string value out of a JSON document by
// dot-path, e.g. "product.product_name" or "items.0.title". Numeric path
// segments index into arrays.
//
// The path language is deliberately tiny: provider responses differ only
// in where the name field sits, so field navigation is all the
// configuration needs to express.
func extractJSONPath(body []byte, path string) (string, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("malformed JSON response: %w", err)
	}

	current := doc
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return "", fmt.Errorf("field %q not present in response", segment)
			}
			current = value
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return "", fmt.Errorf("path segment %q indexes an array but is not a number", segment)
			}
			if idx < 0 || idx >= len(node) {
				return "", fmt.Errorf("array index %d out of range (length %d)", idx, len(node))
			}
			current = node[idx]
		default:
			return "", fmt.Errorf("path segment %q descends into a non-container value", segment)
		}
	}

	name, ok := current.(string)
	if !ok {
		return "", fmt.Errorf("value at path %q is not a string", path)
	}
	return name, nil
}

package outfmt

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// normalizeJSONOutput wraps lists as {"items": [...]} so every list command
// has the same top-level shape. Raw JSON arrays are wrapped as well.
func normalizeJSONOutput(v any) any {
	switch val := v.(type) {
	case nil:
		return v
	case json.RawMessage:
		trimmed := bytes.TrimSpace(val)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			return map[string]any{"items": json.RawMessage(trimmed)}
		}
		return v
	case []byte:
		return v
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return v
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return v
	}
	items := rv.Interface()
	// A nil slice would encode as null.
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		items = []any{}
	}
	return map[string]any{"items": items}
}

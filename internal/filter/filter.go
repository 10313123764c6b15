// Package filter applies jq expressions to command output.
package filter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/itchyny/gojq"
)

// fieldNamePattern limits --fields entries to plain keys and dotted paths.
var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// NormalizeExpression undoes shell escaping of "!" (zsh turns != into \!=).
func NormalizeExpression(expr string) string {
	return strings.ReplaceAll(expr, `\!`, `!`)
}

// compilerOptions adds helpers for Paystack payloads:
//
//	major   converts a subunit amount (kobo, pesewas, cents) to the major unit.
//	minor   converts a major-unit amount back to the subunit.
func compilerOptions() []gojq.CompilerOption {
	return []gojq.CompilerOption{
		gojq.WithFunction("major", 0, 0, func(v any, _ []any) any {
			n, ok := toFloat(v)
			if !ok {
				return fmt.Errorf("major: expected a number, got %T", v)
			}
			return n / 100
		}),
		gojq.WithFunction("minor", 0, 0, func(v any, _ []any) any {
			n, ok := toFloat(v)
			if !ok {
				return fmt.Errorf("minor: expected a number, got %T", v)
			}
			return int(n*100 + 0.5)
		}),
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Apply runs expression over data. An empty expression returns data unchanged.
// A single result is returned as-is; several results are returned as a slice.
func Apply(data any, expression string) (any, error) {
	if expression == "" {
		return data, nil
	}

	expression = NormalizeExpression(expression)
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	code, err := gojq.Compile(query, compilerOptions()...)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	results, err := run(code, data)
	if err != nil {
		// List output is wrapped as {"items": [...]}; let ".[]" queries reach the items.
		if items, ok := itemsFallback(data, expression); ok {
			if retry, retryErr := run(code, items); retryErr == nil {
				results, err = retry, nil
			}
		}
	}
	if err != nil {
		return nil, err
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}

func run(code *gojq.Code, data any) ([]any, error) {
	iter := code.Run(data)
	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("filter error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

func itemsFallback(data any, expression string) (any, bool) {
	expr := strings.TrimSpace(expression)
	if !strings.HasPrefix(expr, ".[]") && !strings.HasPrefix(expr, "[.[]") && !strings.HasPrefix(expr, "(.[]") {
		return nil, false
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	items, ok := m["items"].([]any)
	return items, ok
}

// ApplyFromJSON decodes jsonData and applies expression to it.
func ApplyFromJSON(jsonData []byte, expression string) (any, error) {
	var data any
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return Apply(data, expression)
}

// ApplyToJSON applies expression and returns the result as indented JSON.
func ApplyToJSON(jsonData []byte, expression string) ([]byte, error) {
	if expression == "" {
		return jsonData, nil
	}
	result, err := ApplyFromJSON(jsonData, expression)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(result, "", "  ")
}

// FieldsQuery builds a projection for --fields. Objects are projected
// directly; lists wrapped as {"items": [...]} are projected per item.
//
//	FieldsQuery([]string{"id", "customer.email"})
//	  => if type == "object" and has("items") then .items | map({...}) else {...} end
func FieldsQuery(fields []string) (string, error) {
	var parts []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if !fieldNamePattern.MatchString(f) {
			return "", fmt.Errorf("invalid field %q: use names like id or customer.email", f)
		}
		key := f
		if i := strings.LastIndex(f, "."); i >= 0 {
			key = f[i+1:]
		}
		parts = append(parts, fmt.Sprintf("%s: .%s", key, f))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no fields given")
	}
	obj := "{" + strings.Join(parts, ", ") + "}"
	return fmt.Sprintf(`if type == "object" and has("items") then .items | map(%s) elif type == "array" then map(%s) else %s end`, obj, obj, obj), nil
}

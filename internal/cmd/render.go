package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/outfmt"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

// view describes how a response renders in text mode. Structured modes
// always print the full data.
type view struct {
	noun    string
	columns []column
	fields  []column
	model   *modelView
}

// modelView renders text output through a typed model. row fills one table
// row, detail fills the field list of a single object. Payloads that do not
// decode fall back to the generic columns.
type modelView struct {
	headers []string
	row     func(json.RawMessage) ([]string, error)
	detail  func(json.RawMessage) ([][2]string, error)
}

func typedView[T any](headers []string, row func(T) []string, detail func(T) [][2]string) *modelView {
	mv := &modelView{headers: headers}
	if row != nil {
		mv.row = func(raw json.RawMessage) ([]string, error) {
			var m T
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			return row(m), nil
		}
	}
	if detail != nil {
		mv.detail = func(raw json.RawMessage) ([][2]string, error) {
			var m T
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			return detail(m), nil
		}
	}
	return mv
}

// modelRows decodes every item of a list through the model's row function.
func (mv *modelView) modelRows(raw json.RawMessage) ([][]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row, err := mv.row(item)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type column struct {
	header string
	path   string
	amount bool
}

func col(header, path string) column { return column{header: header, path: path} }

// amountCol renders a subunit amount using the row's currency.
func amountCol(header, path string) column { return column{header: header, path: path, amount: true} }

// printResponse writes resp in the active output mode.
func printResponse(cmd *cobra.Command, resp *paystack.Response, v view) error {
	data, err := decodeGeneric(resp.Data)
	if err != nil {
		return err
	}
	f := newFormatter(cmd)
	if f.Structured() {
		return f.Output(structuredPayload(resp, data))
	}

	switch d := data.(type) {
	case []any:
		if v.model != nil && v.model.row != nil && len(d) > 0 {
			rows, err := v.model.modelRows(resp.Data)
			if err == nil {
				return writeTable(f, v.model.headers, rows, resp.Meta)
			}
			slog.Debug("typed render failed, using generic columns", "noun", v.noun, "error", err)
		}
		return renderList(f, d, resp.Meta, v)
	case map[string]any:
		if v.model != nil && v.model.detail != nil {
			pairs, err := v.model.detail(resp.Data)
			if err == nil {
				return f.Fields(pairs...)
			}
			slog.Debug("typed render failed, using generic fields", "noun", v.noun, "error", err)
		}
		return renderObject(f, d, v)
	case nil:
		printAction(cmd, "%s", resp.Message)
	default:
		printAction(cmd, "%s: %s", resp.Message, formatValue(d))
	}
	return nil
}

// structuredPayload is what JSON, JSONL and YAML modes print: lists as
// {"items": [...], "meta": {...}}, objects as-is, and the message when
// there is no data.
func structuredPayload(resp *paystack.Response, data any) any {
	switch d := data.(type) {
	case nil:
		return map[string]any{"status": resp.Status, "message": resp.Message}
	case []any:
		out := map[string]any{"items": d}
		if resp.Meta != nil {
			out["meta"] = resp.Meta
		}
		return out
	default:
		return d
	}
}

func decodeGeneric(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response data: %w", err)
	}
	return out, nil
}

func renderList(f *outfmt.Formatter, items []any, meta *paystack.Meta, v view) error {
	if len(items) == 0 {
		noun := v.noun
		if noun == "" {
			noun = "results"
		}
		f.Empty(fmt.Sprintf("No %s found", noun))
		return nil
	}

	cols := v.columns
	if len(cols) == 0 {
		first, _ := items[0].(map[string]any)
		cols = scalarColumns(first, 6)
	}
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			rows = append(rows, []string{formatValue(item)})
			continue
		}
		values := make([]string, len(cols))
		for i, c := range cols {
			values[i] = c.render(row)
		}
		rows = append(rows, values)
	}
	return writeTable(f, headers, rows, meta)
}

func writeTable(f *outfmt.Formatter, headers []string, rows [][]string, meta *paystack.Meta) error {
	f.StartTable(headers)
	for _, row := range rows {
		f.Row(row...)
	}
	if err := f.EndTable(); err != nil {
		return err
	}
	if meta.HasMore() {
		f.Empty(fmt.Sprintf("Page %d of %d (%d total). Use --page %d for more.", meta.Page, meta.PageCount, meta.Total, meta.Page+1))
	}
	return nil
}

func renderObject(f *outfmt.Formatter, obj map[string]any, v view) error {
	cols := v.fields
	if len(cols) == 0 {
		cols = scalarColumns(obj, 0)
	}
	pairs := make([][2]string, 0, len(cols))
	for _, c := range cols {
		pairs = append(pairs, [2]string{c.header, c.render(obj)})
	}
	return f.Fields(pairs...)
}

// scalarColumns lists the scalar keys of obj, id first, then alphabetically.
// limit <= 0 means no limit.
func scalarColumns(obj map[string]any, limit int) []column {
	var keys []string
	for k, val := range obj {
		switch val.(type) {
		case map[string]any, []any:
			continue
		}
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := obj["id"]; ok {
		keys = append([]string{"id"}, keys...)
	}
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	cols := make([]column, len(keys))
	for i, k := range keys {
		cols[i] = col(strings.ToUpper(strings.ReplaceAll(k, "_", " ")), k)
	}
	return cols
}

func (c column) render(row map[string]any) string {
	val := lookupPath(row, c.path)
	if c.amount {
		if n, ok := asInt64(val); ok {
			currency, _ := row["currency"].(string)
			return outfmt.Amount(n, currency)
		}
	}
	return formatValue(val)
}

// lookupPath walks a dotted path through nested objects.
func lookupPath(obj map[string]any, path string) any {
	var cur any = obj
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			return int64(f), ferr == nil
		}
		return i, true
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

func money(amount paystack.Subunits, currency paystack.Currency) string {
	return outfmt.Amount(int64(amount), string(currency))
}

func idString(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func timeString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func timePtrString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timeString(*t)
}

// nestedString reads key from a field Paystack sends either as an ID or as
// an expanded object.
func nestedString(v any, key string) string {
	if m, ok := v.(map[string]any); ok {
		return formatValue(m[key])
	}
	return ""
}

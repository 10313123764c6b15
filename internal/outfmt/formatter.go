package outfmt

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Formatter handles output formatting for commands.
type Formatter struct {
	ctx       context.Context
	out       io.Writer
	errOut    io.Writer
	tabWriter *tabwriter.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(ctx context.Context, out, errOut io.Writer) *Formatter {
	return &Formatter{
		ctx:       ctx,
		out:       out,
		errOut:    errOut,
		tabWriter: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0),
	}
}

// Output writes data in the context's structured mode, applying any query
// and template. It writes nothing in text mode unless a template is set.
func (f *Formatter) Output(data any) error {
	tmpl := GetTemplate(f.ctx)
	if !IsJSON(f.ctx) && tmpl == "" {
		return nil
	}

	filtered, err := ApplyQuery(data, GetQuery(f.ctx))
	if err != nil {
		return err
	}
	if tmpl != "" {
		generic, err := toGeneric(filtered)
		if err != nil {
			return err
		}
		return WriteTemplate(f.out, generic, tmpl)
	}

	switch ModeFromContext(f.ctx) {
	case JSONL:
		return WriteJSONLines(f.out, filtered)
	case YAML:
		return WriteYAML(f.out, filtered)
	default:
		return WriteJSONMaybeCompact(f.out, filtered, IsCompact(f.ctx))
	}
}

// Structured reports whether Output will render data.
func (f *Formatter) Structured() bool {
	return IsJSON(f.ctx) || GetTemplate(f.ctx) != ""
}

// StartTable writes table headers. Returns true if in text mode.
func (f *Formatter) StartTable(headers []string) bool {
	if f.Structured() {
		return false
	}
	f.Row(headers...)
	return true
}

// Row writes a single row to the table.
func (f *Formatter) Row(columns ...string) {
	_, _ = fmt.Fprintln(f.tabWriter, strings.Join(columns, "\t"))
}

// EndTable flushes the table output.
func (f *Formatter) EndTable() error {
	return f.tabWriter.Flush()
}

// Fields writes aligned label/value pairs for a single resource.
func (f *Formatter) Fields(pairs ...[2]string) error {
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		_, _ = fmt.Fprintf(f.tabWriter, "%s:\t%s\n", p[0], p[1])
	}
	return f.tabWriter.Flush()
}

// Empty writes a message to stderr indicating no results.
func (f *Formatter) Empty(message string) {
	_, _ = fmt.Fprintln(f.errOut, message)
}

// Amount renders a subunit amount in major units, e.g. 15050 NGN as "NGN 150.50".
func Amount(subunits int64, currency string) string {
	sign := ""
	if subunits < 0 {
		sign = "-"
		subunits = -subunits
	}
	s := sign + strconv.FormatInt(subunits/100, 10) + "." + fmt.Sprintf("%02d", subunits%100)
	if currency == "" {
		return s
	}
	return currency + " " + s
}

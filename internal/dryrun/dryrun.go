// Package dryrun previews Paystack requests without sending them.
package dryrun

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
)

type contextKey string

const dryRunKey contextKey = "dry_run_enabled"

// WithDryRun returns a context with dry-run mode enabled/disabled.
func WithDryRun(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, dryRunKey, enabled)
}

// IsEnabled returns true if dry-run mode is enabled.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(dryRunKey).(bool); ok {
		return v
	}
	return false
}

// Preview describes the request a command would send.
type Preview struct {
	Operation string     `json:"operation"`
	Method    string     `json:"method"`
	Path      string     `json:"path"`
	Query     url.Values `json:"query,omitempty"`
	Body      any        `json:"body,omitempty"`
	Warnings  []string   `json:"warnings,omitempty"`
	DryRun    bool       `json:"dry_run"`
}

// URL returns the path with its query string.
func (p *Preview) URL() string {
	if len(p.Query) == 0 {
		return p.Path
	}
	return p.Path + "?" + p.Query.Encode()
}

// Write prints a human-readable preview.
func (p *Preview) Write(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n[DRY-RUN] %s\n", p.Operation)
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 39))
	_, _ = fmt.Fprintf(w, "%s %s\n", p.Method, p.URL())

	if p.Body != nil {
		data, err := json.MarshalIndent(p.Body, "", "  ")
		if err == nil {
			_, _ = fmt.Fprintf(w, "\n%s\n", data)
		}
	}

	if len(p.Warnings) > 0 {
		_, _ = fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range p.Warnings {
			_, _ = fmt.Fprintf(w, "  ! %s\n", warning)
		}
	}

	_, _ = fmt.Fprintln(w, strings.Repeat("─", 39))
	_, _ = fmt.Fprintln(w, "No request sent (dry-run mode)")
}

// WriteJSON prints the preview as a JSON object.
func (p *Preview) WriteJSON(w io.Writer) error {
	out := *p
	out.DryRun = true
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Package debug carries the debug flag through contexts and configures slog.
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
)

type contextKey string

const debugKey contextKey = "debug_enabled"

// secretKeyPattern matches Paystack secret keys in either mode.
var secretKeyPattern = regexp.MustCompile(`sk_(test|live)_[A-Za-z0-9]+`)

// WithDebug returns a context with debug mode enabled/disabled.
func WithDebug(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, debugKey, enabled)
}

// IsEnabled returns true if debug mode is enabled in the context.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(debugKey).(bool); ok {
		return v
	}
	return false
}

// SetupLogger installs a stderr text logger at Debug or Warn level.
func SetupLogger(debugEnabled bool) {
	slog.SetDefault(NewLogger(os.Stderr, debugEnabled))
}

// NewLogger returns a text logger writing to w that masks secret keys.
func NewLogger(w io.Writer, debugEnabled bool) *slog.Logger {
	level := slog.LevelWarn
	if debugEnabled {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	}))
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		if s := a.Value.String(); secretKeyPattern.MatchString(s) {
			return slog.String(a.Key, Redact(s))
		}
	}
	return a
}

// Redact masks every secret key in s, keeping the mode prefix.
func Redact(s string) string {
	return secretKeyPattern.ReplaceAllString(s, "sk_${1}_****")
}

package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/paystack/paystack-cli/internal/dryrun"
	"github.com/paystack/paystack-cli/internal/iocontext"
	"github.com/paystack/paystack-cli/internal/outfmt"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

// getJQQuery returns the jq query from --jq or --query; --jq wins.
func getJQQuery() string {
	if flags.JQ != "" {
		return flags.JQ
	}
	return flags.Query
}

func newFormatter(cmd *cobra.Command) *outfmt.Formatter {
	streams := iocontext.GetIO(cmd.Context())
	return outfmt.NewFormatter(cmd.Context(), streams.Out, streams.ErrOut)
}

// isJSON checks if the command context wants structured output
func isJSON(cmd *cobra.Command) bool {
	return outfmt.IsJSON(cmd.Context())
}

// printJSON writes v in the structured output mode, applying query and template.
func printJSON(cmd *cobra.Command, v any) error {
	return newFormatter(cmd).Output(v)
}

// printJSONErr writes a JSON value to stderr.
func printJSONErr(cmd *cobra.Command, v any) error {
	return outfmt.WriteJSON(iocontext.GetIO(cmd.Context()).ErrOut, v)
}

// printAction reports a completed action in text mode.
func printAction(cmd *cobra.Command, format string, args ...any) {
	if flags.Quiet || isJSON(cmd) {
		return
	}
	_, _ = fmt.Fprintf(iocontext.GetIO(cmd.Context()).Out, format+"\n", args...)
}

func registerStaticCompletions(cmd *cobra.Command, flagName string, values []string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}

// maybeDryRun prints preview and reports true when dry-run mode is on.
func maybeDryRun(cmd *cobra.Command, preview *dryrun.Preview) (bool, error) {
	if !dryrun.IsEnabled(cmd.Context()) {
		return false, nil
	}
	if preview == nil {
		preview = &dryrun.Preview{}
	}
	preview.DryRun = true
	if isJSON(cmd) {
		return true, printJSON(cmd, preview)
	}
	preview.Write(iocontext.GetIO(cmd.Context()).Out)
	return true, nil
}

// confirmAction asks before a destructive request. --yes skips the prompt;
// structured output modes require it.
func confirmAction(cmd *cobra.Command, prompt string) (bool, error) {
	if flags.Yes || dryrun.IsEnabled(cmd.Context()) {
		return true, nil
	}
	if isJSON(cmd) {
		return false, fmt.Errorf("--yes is required when using --output %s", outfmt.ModeFromContext(cmd.Context()))
	}
	streams := iocontext.GetIO(cmd.Context())
	_, _ = fmt.Fprintf(streams.ErrOut, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(streams.In).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// aliasBridgeValue wraps a pflag.Value so that Set() on an alias also marks
// the canonical flag as changed.
type aliasBridgeValue struct {
	pflag.Value
	canonical *pflag.Flag
}

func (v *aliasBridgeValue) Set(s string) error {
	if err := v.Value.Set(s); err != nil {
		return err
	}
	v.canonical.Changed = true
	return nil
}

// flagAlias registers a hidden alias sharing the Value of an existing flag.
func flagAlias(fs *pflag.FlagSet, name, alias string) {
	f := fs.Lookup(name)
	if f == nil {
		panic(fmt.Sprintf("flagAlias: flag %q not found", name))
	}
	a := *f
	a.Name = alias
	a.Shorthand = ""
	a.Usage = ""
	a.Hidden = true
	a.Value = &aliasBridgeValue{Value: f.Value, canonical: f}
	a.Annotations = map[string][]string{"alias-of": {name}}
	fs.AddFlag(&a)
}

// flagOrAliasChanged returns true if the named flag or any of its hidden
// aliases was explicitly set.
func flagOrAliasChanged(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Changed(name) || cmd.InheritedFlags().Changed(name) {
		return true
	}
	aliasChanged := func(fs *pflag.FlagSet) bool {
		found := false
		fs.VisitAll(func(f *pflag.Flag) {
			if ann, ok := f.Annotations["alias-of"]; ok && len(ann) > 0 && ann[0] == name && f.Changed {
				found = true
			}
		})
		return found
	}
	return aliasChanged(cmd.Flags()) || aliasChanged(cmd.InheritedFlags())
}

// loadAtValue resolves "@path" to the file's contents and "@-" to stdin.
func loadAtValue(cmd *cobra.Command, value string) (string, error) {
	value = strings.TrimSpace(value)
	target, ok := strings.CutPrefix(value, "@")
	if !ok {
		return value, nil
	}
	if target == "" {
		return "", fmt.Errorf("invalid @ value: missing path (use @- for stdin)")
	}
	if target == "-" {
		data, err := io.ReadAll(iocontext.GetIO(cmd.Context()).In)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", target, err)
	}
	return string(data), nil
}

// ParseStringListFlag parses a comma, whitespace or newline separated value,
// or a JSON array of strings, into a list.
func ParseStringListFlag(value string) ([]string, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil, fmt.Errorf("no values provided")
	}

	if strings.HasPrefix(raw, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(raw), &arr); err != nil {
			return nil, fmt.Errorf("invalid JSON array: %w", err)
		}
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("no valid values provided")
		}
		return out, nil
	}

	out := strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid values provided")
	}
	return out, nil
}

// errAlreadyHandled marks an error that RunE has already printed.
var errAlreadyHandled = errors.New("error already handled")

type handledError struct {
	err      error
	exitCode int
}

func (e *handledError) Error() string {
	return e.err.Error()
}

func (e *handledError) Unwrap() error {
	return errAlreadyHandled
}

func (e *handledError) ExitCode() int {
	return e.exitCode
}

// RunE wraps a command function with enhanced error handling
func RunE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		if isJSON(cmd) {
			structured := paystack.StructuredErrorFromError(err)
			_ = printJSONErr(cmd, map[string]any{"error": structured})
		} else {
			_, _ = fmt.Fprint(iocontext.GetIO(cmd.Context()).ErrOut, HandleError(err))
		}
		return &handledError{err: err, exitCode: ExitCode(err)}
	}
}

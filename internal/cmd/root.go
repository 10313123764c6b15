package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/paystack/paystack-cli/internal/debug"
	"github.com/paystack/paystack-cli/internal/dryrun"
	"github.com/paystack/paystack-cli/internal/filter"
	"github.com/paystack/paystack-cli/internal/iocontext"
	"github.com/paystack/paystack-cli/internal/outfmt"
	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

// rootFlags holds global CLI flags
type rootFlags struct {
	Output                  string
	Debug                   bool
	DryRun                  bool
	Quiet                   bool
	Silent                  bool
	Yes                     bool
	JSON                    bool
	AllowPrivate            bool
	Query                   string
	JQ                      string
	Fields                  string
	Template                string
	Timeout                 time.Duration
	IdempotencyKey          string
	EnvFile                 string
	Profile                 string
	SecretKey               string
	BaseURL                 string
	MaxRateLimitRetries     int
	Max5xxRetries           int
	RateLimitDelay          time.Duration
	ServerErrorDelay        time.Duration
	CircuitBreakerThreshold int
	CircuitBreakerResetTime time.Duration

	Compact bool

	MaxRateLimitRetriesSet     bool
	Max5xxRetriesSet           bool
	RateLimitDelaySet          bool
	ServerErrorDelaySet        bool
	CircuitBreakerThresholdSet bool
	CircuitBreakerResetTimeSet bool
}

// flags holds the global command flags. It is reset at the start of every
// Execute call; tests rely on that for isolation.
var flags = defaultFlags()

func defaultFlags() rootFlags {
	return rootFlags{
		Output:       defaultOutput(),
		AllowPrivate: parseBoolEnv("PAYSTACK_ALLOW_PRIVATE"),
		Timeout:      paystack.DefaultTimeout,
	}
}

func defaultOutput() string {
	if value := strings.TrimSpace(os.Getenv("PAYSTACK_OUTPUT")); value != "" {
		return value
	}
	return "text"
}

func parseBoolEnv(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

// envFileFromArgs finds --env-file before cobra parses flags, so the file can
// feed env-driven defaults such as PAYSTACK_OUTPUT.
func envFileFromArgs(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		if v, ok := strings.CutPrefix(a, "--env-file="); ok {
			return v
		}
		if a == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// loadEnvFiles loads an explicit env file, then ./.env when present. Values
// already in the environment are never overwritten.
func loadEnvFiles(explicit string) error {
	if explicit != "" {
		if err := godotenv.Load(explicit); err != nil {
			return fmt.Errorf("failed to load --env-file %q: %w", explicit, err)
		}
	}
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
	return nil
}

// Execute runs the root command
func Execute(ctx context.Context, args []string) error {
	if err := loadEnvFiles(envFileFromArgs(args)); err != nil {
		_, _ = fmt.Fprintln(iocontext.GetIO(ctx).ErrOut, err)
		return err
	}

	flags = defaultFlags()

	root := newRootCmd()
	root.SetContext(ctx)
	root.SetArgs(args)
	streams := iocontext.GetIO(ctx)
	root.SetOut(streams.Out)
	root.SetErr(streams.ErrOut)

	targetCmd, err := root.ExecuteC()
	if err != nil {
		if !errors.Is(err, errAlreadyHandled) {
			_, _ = fmt.Fprintln(root.ErrOrStderr(), enhanceUnknownError(err, root, targetCmd))
		}
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:                "paystack",
		Short:              "Command-line client for the Paystack API",
		Long:               "Manage transactions, customers, transfers and the rest of a Paystack integration from the terminal.",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		PersistentPreRunE:  setupContext,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", flags.Output, "Output format: text|json|jsonl|yaml (env PAYSTACK_OUTPUT)")
	pf.BoolVar(&flags.JSON, "json", false, "Shorthand for --output json")
	pf.StringVarP(&flags.Query, "query", "q", "", "JQ expression to filter JSON output")
	pf.StringVar(&flags.JQ, "jq", "", "Alias for --query")
	pf.StringVar(&flags.Fields, "fields", "", "Fields to select in JSON output (comma separated, dotted paths allowed)")
	pf.StringVar(&flags.Template, "template", "", "Go template string (or @path) to render output")
	pf.BoolVar(&flags.Compact, "compact-json", false, "Compact JSON output (no indentation)")
	pf.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	pf.BoolVar(&flags.DryRun, "dry-run", false, "Show the request that would be sent without sending it")
	pf.BoolVarP(&flags.Quiet, "quiet", "Q", false, "Suppress non-essential output")
	pf.BoolVar(&flags.Silent, "silent", false, "Suppress non-error output to stderr")
	pf.BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation prompts")
	pf.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP request timeout (e.g., 30s, 2m)")
	pf.StringVar(&flags.IdempotencyKey, "idempotency-key", "", "Idempotency key for write requests (use 'auto' for per-request keys)")
	pf.StringVar(&flags.EnvFile, "env-file", "", "Load environment variables from a dotenv file")
	pf.StringVar(&flags.Profile, "profile", "", "Credential profile to use (env PAYSTACK_PROFILE)")
	pf.StringVar(&flags.SecretKey, "secret-key", "", "Secret key to use instead of the stored profile")
	pf.StringVar(&flags.BaseURL, "base-url", "", "API base URL (env PAYSTACK_BASE_URL)")
	pf.BoolVar(&flags.AllowPrivate, "allow-private", flags.AllowPrivate, "Allow private/localhost base URLs (unsafe)")
	pf.IntVar(&flags.MaxRateLimitRetries, "max-rate-limit-retries", 0, "Max retries for 429 responses (overrides env)")
	pf.IntVar(&flags.Max5xxRetries, "max-5xx-retries", 0, "Max retries for 5xx responses (overrides env)")
	pf.DurationVar(&flags.RateLimitDelay, "rate-limit-delay", 0, "Base delay for 429 retries (e.g., 1s; overrides env)")
	pf.DurationVar(&flags.ServerErrorDelay, "server-error-delay", 0, "Delay between 5xx retries (e.g., 1s; overrides env)")
	pf.IntVar(&flags.CircuitBreakerThreshold, "circuit-breaker-threshold", 0, "Failures before circuit opens (overrides env)")
	pf.DurationVar(&flags.CircuitBreakerResetTime, "circuit-breaker-reset-time", 0, "Circuit breaker reset time (e.g., 30s; overrides env)")
	_ = pf.MarkHidden("secret-key")

	flagAlias(pf, "jq", "jq-query")
	flagAlias(pf, "dry-run", "dr")
	flagAlias(pf, "compact-json", "cj")
	flagAlias(pf, "idempotency-key", "idem")
	flagAlias(pf, "template", "tpl")
	flagAlias(pf, "output", "out")
	registerStaticCompletions(root, "output", []string{"text", "json", "jsonl", "yaml"})

	root.AddCommand(
		newAuthCmd(),
		newBalanceCmd(),
		newBanksCmd(),
		newTransactionsCmd(),
		newSplitsCmd(),
		newCustomersCmd(),
		newRefundsCmd(),
		newSubaccountsCmd(),
		newDedicatedAccountsCmd(),
		newPlansCmd(),
		newSubscriptionsCmd(),
		newProductsCmd(),
		newPagesCmd(),
		newInvoicesCmd(),
		newSettlementsCmd(),
		newRecipientsCmd(),
		newTransfersCmd(),
		newTransferControlCmd(),
		newBulkChargesCmd(),
		newIntegrationCmd(),
		newChargesCmd(),
		newDisputesCmd(),
		newVerificationCmd(),
		newMiscCmd(),
		newAPICmd(),
		newWebhooksCmd(),
		newCacheCmd(),
		newVersionCmd(),
	)
	return root
}

// setupContext turns global flags into context values before any command runs.
func setupContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if flags.JSON {
		if flagOrAliasChanged(cmd, "output") && !strings.EqualFold(flags.Output, "json") {
			return fmt.Errorf("--json conflicts with --output %s", flags.Output)
		}
		flags.Output = "json"
	}

	query := getJQQuery()
	if flags.Fields != "" {
		if query != "" {
			return fmt.Errorf("--fields and --query/--jq cannot be used together")
		}
		fields, err := ParseStringListFlag(flags.Fields)
		if err != nil {
			return fmt.Errorf("invalid --fields value: %w", err)
		}
		if query, err = filter.FieldsQuery(fields); err != nil {
			return err
		}
	}
	mode, err := outfmt.Parse(flags.Output)
	if err != nil {
		return err
	}
	if query != "" && mode == outfmt.Text {
		if flagOrAliasChanged(cmd, "output") {
			return fmt.Errorf("--query/--jq/--fields require --output json, jsonl or yaml")
		}
		mode = outfmt.JSON
	}
	ctx = outfmt.WithMode(ctx, mode)
	ctx = outfmt.WithCompact(ctx, flags.Compact)
	if query != "" {
		ctx = outfmt.WithQuery(ctx, query)
	}
	if flags.Template != "" {
		tmpl, err := loadTemplate(flags.Template)
		if err != nil {
			return err
		}
		ctx = outfmt.WithTemplate(ctx, tmpl)
	}

	base := iocontext.GetIO(ctx)
	streams := &iocontext.IO{Out: base.Out, ErrOut: base.ErrOut, In: base.In}
	if flags.Silent || flags.Quiet {
		streams.ErrOut = io.Discard
	}
	if flags.Quiet && mode == outfmt.Text {
		streams.Out = io.Discard
	}
	ctx = iocontext.WithIO(ctx, streams)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	validation.SetAllowPrivate(flags.AllowPrivate)
	if flags.AllowPrivate && flags.BaseURL != "" {
		_, _ = fmt.Fprintln(streams.ErrOut, "Warning: allowing private/localhost URLs (use only with trusted targets).")
	}

	debug.SetupLogger(flags.Debug)
	ctx = debug.WithDebug(ctx, flags.Debug)
	ctx = dryrun.WithDryRun(ctx, flags.DryRun)

	if err := captureRetryOverrides(cmd); err != nil {
		return err
	}

	cmd.SetContext(ctx)
	return nil
}

func captureRetryOverrides(cmd *cobra.Command) error {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	flags.MaxRateLimitRetriesSet = changed("max-rate-limit-retries")
	flags.Max5xxRetriesSet = changed("max-5xx-retries")
	flags.RateLimitDelaySet = changed("rate-limit-delay")
	flags.ServerErrorDelaySet = changed("server-error-delay")
	flags.CircuitBreakerThresholdSet = changed("circuit-breaker-threshold")
	flags.CircuitBreakerResetTimeSet = changed("circuit-breaker-reset-time")

	switch {
	case flags.MaxRateLimitRetries < 0:
		return fmt.Errorf("--max-rate-limit-retries must be >= 0")
	case flags.Max5xxRetries < 0:
		return fmt.Errorf("--max-5xx-retries must be >= 0")
	case flags.RateLimitDelay < 0:
		return fmt.Errorf("--rate-limit-delay must be >= 0")
	case flags.ServerErrorDelay < 0:
		return fmt.Errorf("--server-error-delay must be >= 0")
	case flags.CircuitBreakerThreshold < 0:
		return fmt.Errorf("--circuit-breaker-threshold must be >= 0")
	case flags.CircuitBreakerResetTime < 0:
		return fmt.Errorf("--circuit-breaker-reset-time must be >= 0")
	}
	return nil
}

// enhanceUnknownError adds "did you mean?" suggestions to unknown command/flag errors.
func enhanceUnknownError(err error, root, targetCmd *cobra.Command) string {
	msg := err.Error()

	if strings.Contains(msg, "unknown command") {
		if unknown := extractQuoted(msg); unknown != "" {
			parent := root
			if targetCmd != nil {
				parent = targetCmd
			}
			var names []string
			for _, c := range parent.Commands() {
				if c.IsAvailableCommand() {
					names = append(names, c.Name())
					names = append(names, c.Aliases...)
				}
			}
			if suggestion := suggestCommand(unknown, names); suggestion != "" {
				return fmt.Sprintf("%s\n\nDid you mean %q?", msg, suggestion)
			}
		}
		return msg
	}

	if strings.Contains(msg, "unknown flag") || strings.Contains(msg, "unknown shorthand flag") {
		unknown := extractFlag(msg)
		if unknown == "" {
			return msg
		}
		target := root
		if targetCmd != nil {
			target = targetCmd
		}
		var names []string
		collect := func(fs *pflag.FlagSet) {
			fs.VisitAll(func(f *pflag.Flag) {
				if !f.Hidden {
					names = append(names, "--"+f.Name)
				}
			})
		}
		collect(target.Flags())
		collect(target.InheritedFlags())
		helpCmd := target.CommandPath() + " --help"
		if suggestion := suggestFlag(unknown, names); suggestion != "" {
			return fmt.Sprintf("%s\n\nDid you mean %q?\nRun %q to see supported flags.", msg, suggestion, helpCmd)
		}
		return fmt.Sprintf("%s\n\nRun %q to see supported flags.", msg, helpCmd)
	}

	return msg
}

// extractQuoted extracts the first double-quoted substring from s.
func extractQuoted(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], '"')
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}

// extractFlag extracts a flag name such as "--foo" from an error message.
func extractFlag(s string) string {
	idx := strings.Index(s, "--")
	if idx < 0 {
		return ""
	}
	rest := s[idx:]
	if end := strings.IndexByte(rest, ' '); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimRight(rest, ".,;:!?\"'")
}

func loadTemplate(value string) (string, error) {
	if path, ok := strings.CutPrefix(value, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read template file: %w", err)
		}
		return string(data), nil
	}
	return value, nil
}

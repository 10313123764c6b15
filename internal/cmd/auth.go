package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/config"
	"github.com/paystack/paystack-cli/internal/iocontext"
	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored API keys",
		Long:  "Store Paystack secret keys in your OS keychain, one profile per integration or mode.",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthSwitchCmd())
	cmd.AddCommand(newAuthListCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var profile config.Profile
	var envFile string
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a secret key to the keychain",
		Long: strings.TrimSpace(`
Save a Paystack secret key to your OS keychain. Without --key the key is read
from stdin, so it stays out of shell history.

The key is checked against the API (GET /balance) before it is saved unless
--skip-verify is given. Use the global --profile flag to keep test and live
keys side by side.
`),
		Example: strings.TrimSpace(`
  paystack auth login
  echo "$PAYSTACK_SECRET_KEY" | paystack auth login --profile live
  paystack auth login --env-file .env.staging --profile staging
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				vars, err := godotenv.Read(envFile)
				if err != nil {
					return fmt.Errorf("failed to read --env-file %q: %w", envFile, err)
				}
				fillProfileFromEnv(&profile, vars)
			}
			if profile.SecretKey == "" {
				key, err := promptSecretKey(cmd)
				if err != nil {
					return err
				}
				profile.SecretKey = key
			}
			profile.SecretKey = strings.TrimSpace(profile.SecretKey)
			if err := paystack.ValidateSecretKey(profile.SecretKey); err != nil {
				return err
			}
			if profile.BaseURL != "" {
				profile.BaseURL = strings.TrimSuffix(profile.BaseURL, "/")
				if err := validation.ValidateBaseURL(profile.BaseURL); err != nil {
					return fmt.Errorf("invalid base URL: %w", err)
				}
			}

			if !skipVerify {
				if err := verifyKey(cmd.Context(), profile); err != nil {
					return err
				}
			}

			name := flags.Profile
			if name == "" {
				name = "default"
			}
			if err := config.SaveProfile(name, profile); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			mode := keyMode(profile.SecretKey)
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"profile": name, "mode": mode, "saved": true})
			}
			printAction(cmd, "Saved %s key to profile %q", mode, name)
			return nil
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&profile.SecretKey, "key", "", "Secret key (sk_test_... or sk_live_...); read from stdin when omitted")
	fs.StringVar(&profile.PublicKey, "public-key", "", "Public key, stored for reference")
	fs.StringVar(&profile.WebhookSecret, "webhook-secret", "", "Secret used to verify webhooks, when it differs from the secret key")
	fs.StringVar(&profile.BaseURL, "api-url", "", "API base URL for this profile")
	fs.StringVar(&envFile, "from-env-file", "", "Read PAYSTACK_* values from a dotenv file")
	fs.BoolVar(&skipVerify, "skip-verify", false, "Save without checking the key against the API")

	return cmd
}

// fillProfileFromEnv copies PAYSTACK_* values from a dotenv file into
// fields not already set by flags.
func fillProfileFromEnv(p *config.Profile, vars map[string]string) {
	set := func(dst *string, key string) {
		if *dst == "" {
			*dst = strings.TrimSpace(vars[key])
		}
	}
	set(&p.SecretKey, "PAYSTACK_SECRET_KEY")
	set(&p.PublicKey, "PAYSTACK_PUBLIC_KEY")
	set(&p.BaseURL, "PAYSTACK_BASE_URL")
	set(&p.WebhookSecret, "PAYSTACK_WEBHOOK_SECRET")
}

func promptSecretKey(cmd *cobra.Command) (string, error) {
	streams := iocontext.GetIO(cmd.Context())
	_, _ = fmt.Fprint(streams.ErrOut, "Secret key: ")
	line, err := bufio.NewReader(streams.In).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("--key is required when stdin is empty")
	}
	return strings.TrimSpace(line), nil
}

func verifyKey(ctx context.Context, p config.Profile) error {
	base := p.BaseURL
	if base == "" {
		base = paystack.DefaultBaseURL
	}
	client := newClientFactory().newClient(config.ClientConfig{SecretKey: p.SecretKey, BaseURL: base})
	if _, err := client.TransferControl().Balance(ctx); err != nil {
		var authErr *paystack.AuthError
		if errors.As(err, &authErr) {
			return err
		}
		if structured := paystack.StructuredErrorFromError(err); structured != nil && structured.Code == paystack.ErrUnauthorized {
			return fmt.Errorf("the API rejected this key: %w", err)
		}
		return fmt.Errorf("could not verify key (use --skip-verify to save anyway): %w", err)
	}
	return nil
}

func keyMode(key string) string {
	if paystack.IsLiveKey(key) {
		return "live"
	}
	return "test"
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which key commands will use",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			cfg, err := newClientFactory().resolve()
			if err != nil {
				if errors.Is(err, config.ErrNotConfigured) {
					if isJSON(cmd) {
						return printJSON(cmd, map[string]any{"authenticated": false})
					}
					_, _ = fmt.Fprintln(iocontext.GetIO(cmd.Context()).Out, "Not authenticated. Run 'paystack auth login' or set PAYSTACK_SECRET_KEY.")
					return nil
				}
				return err
			}

			source := "keychain"
			switch {
			case flags.SecretKey != "":
				source = "flag"
			case strings.TrimSpace(os.Getenv("PAYSTACK_SECRET_KEY")) != "" && flags.Profile == "":
				source = "env"
			}
			profile := cfg.Profile
			if source == "keychain" && profile == "" {
				profile, _ = config.CurrentProfile()
			}

			payload := map[string]any{
				"authenticated": true,
				"mode":          keyMode(cfg.SecretKey),
				"secret_key":    maskToken(cfg.SecretKey),
				"base_url":      cfg.BaseURL,
				"source":        source,
			}
			if source == "keychain" {
				payload["profile"] = profile
			}
			if isJSON(cmd) {
				return printJSON(cmd, payload)
			}

			pairs := [][2]string{
				{"Mode", keyMode(cfg.SecretKey)},
				{"Secret key", maskToken(cfg.SecretKey)},
				{"Base URL", cfg.BaseURL},
				{"Source", source},
			}
			if source == "keychain" {
				pairs = append(pairs, [2]string{"Profile", profile})
			}
			return newFormatter(cmd).Fields(pairs...)
		}),
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout [profile]",
		Short: "Remove a stored profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			name := flags.Profile
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" {
				current, err := config.CurrentProfile()
				if err != nil {
					return err
				}
				name = current
			}
			if err := config.DeleteProfile(name); err != nil {
				return fmt.Errorf("failed to remove credentials: %w", err)
			}
			printAction(cmd, "Profile %s removed", name)
			return nil
		}),
	}
}

func newAuthSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <profile>",
		Short: "Make a stored profile the default",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			profiles, _ := config.ListProfiles()
			return profiles, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			profiles, err := config.ListProfiles()
			if err != nil {
				return err
			}
			if !slices.Contains(profiles, args[0]) {
				return fmt.Errorf("profile %q not found; run 'paystack auth list'", args[0])
			}
			if err := config.SetCurrentProfile(args[0]); err != nil {
				return err
			}
			printAction(cmd, "Switched to profile %s", args[0])
			return nil
		}),
	}
}

func newAuthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored profiles",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			profiles, err := config.ListProfiles()
			if err != nil {
				return err
			}
			current, _ := config.CurrentProfile()

			type entry struct {
				Name    string `json:"name"`
				Mode    string `json:"mode,omitempty"`
				Current bool   `json:"current"`
			}
			entries := make([]entry, 0, len(profiles))
			for _, name := range profiles {
				e := entry{Name: name, Current: name == current}
				if p, err := config.LoadProfile(name); err == nil {
					e.Mode = keyMode(p.SecretKey)
				}
				entries = append(entries, e)
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"items": entries})
			}
			f := newFormatter(cmd)
			if len(entries) == 0 {
				f.Empty("No profiles stored. Run 'paystack auth login'.")
				return nil
			}
			f.StartTable([]string{"", "PROFILE", "MODE"})
			for _, e := range entries {
				marker := ""
				if e.Current {
					marker = "*"
				}
				f.Row(marker, e.Name, e.Mode)
			}
			return f.EndTable()
		}),
	}
}

// maskToken shows only the first 8 and last 4 characters of a key.
func maskToken(token string) string {
	if len(token) < 16 {
		return strings.Repeat("*", len(token))
	}
	return token[:8] + strings.Repeat("*", len(token)-12) + token[len(token)-4:]
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/cache"
	"github.com/paystack/paystack-cli/internal/update"
)

// version is set at build time via ldflags
var version = "dev"

// Version returns the build version.
func Version() string { return version }

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			result := checkForUpdate(cmd)
			if isJSON(cmd) {
				payload := map[string]any{"version": version}
				if result != nil {
					payload["update"] = result
				}
				return printJSON(cmd, payload)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "paystack-cli version %s\n", version)
			if result != nil && result.UpdateAvailable {
				errOut := cmd.ErrOrStderr()
				_, _ = fmt.Fprintf(errOut, "\nUpdate available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
				_, _ = fmt.Fprintf(errOut, "Download: %s\n", result.UpdateURL)
			}
			return nil
		}),
	}
}

// checkForUpdate never fails the command; a nil result means no answer.
func checkForUpdate(cmd *cobra.Command) *update.Result {
	var store cache.Cache = cache.Noop{}
	if dir, err := cache.DefaultDir(); err == nil && !cache.Disabled() {
		store = cache.NewFileStore(dir, "update", cache.DefaultTTL)
	}
	return update.NewChecker(store).Check(cmd.Context(), version)
}

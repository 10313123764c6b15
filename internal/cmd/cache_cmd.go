package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local lookup cache",
		Long: strings.TrimSpace(`
Bank lists, countries, states and provider lists are cached for 24 hours.
Set PAYSTACK_NO_CACHE=1 to disable the cache or PAYSTACK_CACHE_REDIS_URL to
share it through Redis.
`),
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached data",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if os.Getenv("PAYSTACK_CACHE_REDIS_URL") != "" {
				return clearCurrentScope(cmd)
			}
			dir, err := cache.DefaultDir()
			if err != nil {
				return fmt.Errorf("could not determine cache directory: %w", err)
			}
			if err := cache.ClearAll(dir); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			printAction(cmd, "Cache cleared: %s", dir)
			return nil
		}),
	}
}

// clearCurrentScope clears the shared cache for the active credentials only.
func clearCurrentScope(cmd *cobra.Command) error {
	client, err := getClient(cmd)
	if err != nil {
		return err
	}
	store, closeStore := openCache(client)
	defer closeStore()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	printAction(cmd, "Cache cleared")
	return nil
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the cache directory and its entries",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return fmt.Errorf("could not determine cache directory: %w", err)
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"path": dir, "disabled": cache.Disabled()})
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, dir)

			scopes, err := os.ReadDir(dir)
			if err != nil {
				return nil // not created yet
			}
			for _, scope := range scopes {
				if !scope.IsDir() {
					continue
				}
				entries, err := os.ReadDir(filepath.Join(dir, scope.Name()))
				if err != nil {
					continue
				}
				for _, e := range entries {
					info, err := e.Info()
					if err != nil || filepath.Ext(e.Name()) != ".json" {
						continue
					}
					_, _ = fmt.Fprintf(out, "  %s/%s (%d bytes)\n", scope.Name(), e.Name(), info.Size())
				}
			}
			return nil
		}),
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/cache"
	"github.com/paystack/paystack-cli/internal/dryrun"
	"github.com/paystack/paystack-cli/internal/resolve"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

var bankView = view{
	noun: "banks",
	columns: []column{
		col("CODE", "code"),
		col("NAME", "name"),
		col("SLUG", "slug"),
		col("TYPE", "type"),
		col("CURRENCY", "currency"),
		col("ACTIVE", "active"),
	},
}

func newBanksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "banks",
		Aliases: []string{"bank"},
		Short:   "List banks and look up bank codes",
	}
	cmd.AddCommand(newBanksListCmd())
	cmd.AddCommand(newBanksResolveCmd())
	return cmd
}

func newBanksListCmd() *cobra.Command {
	var params paystack.ListBanksParams
	var refresh bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List supported banks (cached for 24h)",
		Example: strings.TrimSpace(`
  paystack banks list --country nigeria
  paystack banks list --country ghana --type mobile_money
  paystack banks list --refresh -o json
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			return runCall(cmd, "bank.list", bankView, cachedCall(bankCacheKey(params), refresh || params.Next != "" || params.Previous != "",
				func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
					return c.Misc().ListBanks(ctx, params)
				}))
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&params.Country, "country", "", "Country: nigeria|ghana|kenya|south africa")
	currencyFlag(fs, &params.Currency)
	fs.StringVar(&params.Type, "type", "", "Bank type, e.g. mobile_money or ghipss")
	fs.StringVar(&params.Gateway, "gateway", "", "Gateway type, e.g. emandate or digitalbankmandate")
	optionalBoolFlag(fs, &params.PayWithBankTransfer, "pay-with-bank-transfer", "Only banks usable for pay-with-transfer")
	optionalBoolFlag(fs, &params.PayWithBank, "pay-with-bank", "Only banks usable for pay-with-bank")
	optionalBoolFlag(fs, &params.UseCursor, "use-cursor", "Use cursor pagination")
	fs.IntVar(&params.PerPage, "per-page", 0, "Records per page with --use-cursor")
	fs.StringVar(&params.Next, "next", "", "Cursor for the next page")
	fs.StringVar(&params.Previous, "previous", "", "Cursor for the previous page")
	fs.BoolVar(&refresh, "refresh", false, "Bypass the local cache")

	return cmd
}

func newBanksResolveCmd() *cobra.Command {
	var country string
	var limit int

	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Find the code of a bank by name",
		Example: strings.TrimSpace(`
  paystack banks resolve "guaranty trust"
  paystack banks resolve access --limit 5
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			banks, err := loadBanks(cmd, country)
			if err != nil {
				return err
			}
			f := newFormatter(cmd)
			if limit > 1 {
				matches := resolve.Candidates(args[0], banks, limit)
				if len(matches) == 0 {
					return fmt.Errorf("no bank matches %q", args[0])
				}
				if f.Structured() {
					return f.Output(map[string]any{"items": matches})
				}
				f.StartTable([]string{"CODE", "NAME", "SLUG", "SCORE"})
				for _, m := range matches {
					f.Row(m.Code, m.Name, m.Slug, fmt.Sprint(m.Score))
				}
				return f.EndTable()
			}
			bank, err := resolve.Bank(args[0], banks)
			if err != nil {
				return err
			}
			if f.Structured() {
				return f.Output(bank)
			}
			return f.Fields(
				[2]string{"Code", bank.Code},
				[2]string{"Name", bank.Name},
				[2]string{"Slug", bank.Slug},
				[2]string{"Currency", string(bank.Currency)},
			)
		}),
	}
	cmd.Flags().StringVar(&country, "country", "", "Country to search (default: all the key can see)")
	cmd.Flags().IntVar(&limit, "limit", 1, "Show up to this many candidates")
	return cmd
}

func bankCacheKey(p paystack.ListBanksParams) string {
	parts := []string{"banks", p.Country, string(p.Currency), p.Type, p.Gateway}
	for _, b := range []*bool{p.PayWithBankTransfer, p.PayWithBank, p.UseCursor} {
		switch {
		case b == nil:
			parts = append(parts, "")
		case *b:
			parts = append(parts, "1")
		default:
			parts = append(parts, "0")
		}
	}
	if p.PerPage > 0 {
		parts = append(parts, fmt.Sprint(p.PerPage))
	}
	return strings.Join(parts, ":")
}

// loadBanks returns the banks of country, using the lookup cache. It always
// talks to the API, dry-run included, because it only reads.
func loadBanks(cmd *cobra.Command, country string) ([]paystack.Bank, error) {
	client, err := getClient(cmd)
	if err != nil {
		return nil, err
	}
	params := paystack.ListBanksParams{Country: country}
	ctx := dryrun.WithDryRun(cmd.Context(), false)
	resp, err := cachedCall(bankCacheKey(params), false, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
		return c.Misc().ListBanks(ctx, params)
	})(ctx, client)
	if err != nil {
		return nil, err
	}
	return paystack.DecodeData[[]paystack.Bank](resp)
}

// resolveBankCode turns a --bank value into a bank code. Numeric values are
// taken as codes already.
func resolveBankCode(cmd *cobra.Command, query, country string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}
	if strings.IndexFunc(query, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		return query, nil
	}
	banks, err := loadBanks(cmd, country)
	if err != nil {
		return "", fmt.Errorf("resolving bank %q: %w", query, err)
	}
	bank, err := resolve.Bank(query, banks)
	if err != nil {
		return "", err
	}
	slog.Debug("resolved bank", "query", query, "code", bank.Code, "name", bank.Name)
	return bank.Code, nil
}

// cachedCall serves a read-only lookup from the cache, storing fresh
// responses. Dry-run bypasses the cache so the request is still previewed.
func cachedCall(key string, refresh bool, call callFunc) callFunc {
	return func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
		if dryrun.IsEnabled(ctx) {
			return call(ctx, c)
		}
		store, closeStore := openCache(c)
		defer closeStore()

		var cached paystack.Response
		if !refresh && store.Get(ctx, key, &cached) {
			slog.Debug("cache hit", "key", key)
			return &cached, nil
		}
		resp, err := call(ctx, c)
		if err != nil {
			return nil, err
		}
		store.Put(ctx, key, resp)
		return resp, nil
	}
}

func openCache(c *paystack.Client) (cache.Cache, func()) {
	store, err := cache.Open(cache.Scope(c.BaseURL, paystack.IsLiveKey(c.SecretKey)))
	if err != nil {
		slog.Debug("cache unavailable", "error", err)
		return cache.Noop{}, func() {}
	}
	return store, func() {
		if closer, ok := store.(io.Closer); ok {
			if err := closer.Close(); err != nil && !errors.Is(err, context.Canceled) {
				slog.Debug("closing cache", "error", err)
			}
		}
	}
}

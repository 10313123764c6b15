package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var countryView = view{
	noun: "countries",
	model: typedView(
		[]string{"ID", "CODE", "NAME", "CURRENCY", "CALLING CODE"},
		func(c paystack.Country) []string {
			return []string{idString(c.ID), c.ISOCode, c.Name, string(c.DefaultCurrency), c.CallingCode}
		},
		nil,
	),
}

var stateView = view{
	noun: "states",
	model: typedView(
		[]string{"NAME", "SLUG", "ABBREVIATION"},
		func(s paystack.State) []string {
			return []string{s.Name, s.Slug, s.Abbreviation}
		},
		nil,
	),
}

var providerView = view{
	noun: "providers",
	columns: []column{
		col("ID", "id"),
		col("NAME", "name"),
		col("SLUG", "slug"),
		col("CODE", "code"),
		col("CURRENCY", "currency"),
	},
}

func newMiscCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "misc",
		Short: "Reference data: countries, states and transfer providers",
	}

	var refresh bool
	cmd.PersistentFlags().BoolVar(&refresh, "refresh", false, "Bypass the local cache")

	cmd.AddCommand(plainCmd("countries", "List the countries Paystack supports", "misc.countries", countryView,
		func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
			return cachedCall("countries", refresh, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Misc().ListCountries(ctx)
			})(ctx, c)
		}))

	states := argCmd("states <country>", "List the states of a country for address verification", "misc.states", stateView,
		func(ctx context.Context, c *paystack.Client, country string) (*paystack.Response, error) {
			country = strings.ToUpper(strings.TrimSpace(country))
			return cachedCall("states:"+country, refresh, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Misc().ListStates(ctx, country)
			})(ctx, c)
		})
	cmd.AddCommand(states)

	cmd.AddCommand(plainCmd("providers", "List banks that support pay-with-transfer", "misc.providers", providerView,
		func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
			return cachedCall("providers", refresh, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Misc().ListProviders(ctx)
			})(ctx, c)
		}))

	return cmd
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var accountView = view{model: typedView(nil, nil, func(a paystack.ResolvedAccount) [][2]string {
	return [][2]string{
		{"Account number", a.AccountNumber},
		{"Account name", a.AccountName},
		{"Bank ID", idString(a.BankID)},
	}
})}

var cardBINView = view{fields: []column{
	col("BIN", "bin"),
	col("Brand", "brand"),
	col("Card type", "card_type"),
	col("Bank", "bank"),
	col("Country", "country_name"),
	col("Country code", "country_code"),
}}

func newVerificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "verify",
		Aliases: []string{"verification"},
		Short:   "Confirm account numbers, card BINs and BVNs",
	}

	cmd.AddCommand(newResolveAccountCmd())
	cmd.AddCommand(argCmd("card-bin <bin>", "Look up a card from its first 6 digits", "verification.card_bin", cardBINView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Verification().ResolveCardBIN(ctx, arg)
		}))
	cmd.AddCommand(newMatchBVNCmd())

	return cmd
}

func newResolveAccountCmd() *cobra.Command {
	var bankCode, bank, country string

	cmd := &cobra.Command{
		Use:   "account <account-number>",
		Short: "Resolve an account number to its account name",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if bank != "" {
				code, err := resolveBankCode(cmd, bank, country)
				if err != nil {
					return err
				}
				bankCode = code
			}
			if bankCode == "" {
				return fmt.Errorf("--bank-code or --bank is required")
			}
			return runCall(cmd, "verification.resolve_account", accountView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Verification().ResolveAccount(ctx, args[0], bankCode)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&bankCode, "bank-code", "", "Bank code")
	fs.StringVar(&bank, "bank", "", "Bank name or code, resolved against the bank list")
	fs.StringVar(&country, "country", "", "Country used to resolve --bank")
	cmd.MarkFlagsMutuallyExclusive("bank", "bank-code")

	return cmd
}

func newMatchBVNCmd() *cobra.Command {
	var req paystack.MatchBVNRequest
	var data string

	cmd := &cobra.Command{
		Use:   "bvn",
		Short: "Check that a BVN belongs to an account",
		Long:  "Check that a BVN belongs to an account. Paystack has disabled this endpoint for most integrations.",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.BVN == "" || req.AccountNumber == "" || req.BankCode == "" {
				return fmt.Errorf("--bvn, --account-number and --bank-code are required")
			}
			return runCall(cmd, "verification.match_bvn", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Verification().MatchBVN(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.BVN, "bvn", "", "Bank verification number (required)")
	fs.StringVar(&req.AccountNumber, "account-number", "", "Account number (required)")
	fs.StringVar(&req.BankCode, "bank-code", "", "Bank code (required)")
	fs.StringVar(&req.FirstName, "first-name", "", "First name to match")
	fs.StringVar(&req.MiddleName, "middle-name", "", "Middle name to match")
	fs.StringVar(&req.LastName, "last-name", "", "Last name to match")
	addDataFlag(cmd, &data)

	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var dedicatedAccountView = view{
	noun: "dedicated accounts",
	columns: []column{
		col("ID", "id"),
		col("ACCOUNT", "account_number"),
		col("NAME", "account_name"),
		col("BANK", "bank.name"),
		col("CUSTOMER", "customer.customer_code"),
		col("CURRENCY", "currency"),
		col("ACTIVE", "active"),
	},
	fields: []column{
		col("ID", "id"),
		col("Account number", "account_number"),
		col("Account name", "account_name"),
		col("Bank", "bank.name"),
		col("Bank slug", "bank.slug"),
		col("Customer", "customer.customer_code"),
		col("Email", "customer.email"),
		col("Currency", "currency"),
		col("Split config", "split_config"),
		col("Assigned", "assigned"),
		col("Active", "active"),
	},
}

func newDedicatedAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dedicated-accounts",
		Aliases: []string{"dedicated-account", "dva"},
		Short:   "Manage dedicated virtual accounts",
	}

	cmd.AddCommand(newDedicatedAccountsCreateCmd())
	cmd.AddCommand(newDedicatedAccountsListCmd())
	cmd.AddCommand(argCmd("get <id>", "Fetch a dedicated account", "dedicated_account.fetch", dedicatedAccountView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			id, err := idArg(arg, "dedicated account ID")
			if err != nil {
				return nil, err
			}
			return c.DedicatedAccounts().Fetch(ctx, id)
		}))
	cmd.AddCommand(newDedicatedAccountsDeactivateCmd())
	cmd.AddCommand(newDedicatedAccountsSplitCmd())
	cmd.AddCommand(argCmd("remove-split <account-number>", "Remove the split from a dedicated account", "dedicated_account.remove_split", dedicatedAccountView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.DedicatedAccounts().RemoveSplit(ctx, paystack.RemoveDedicatedAccountSplitRequest{AccountNumber: arg})
		}))
	cmd.AddCommand(plainCmd("providers", "List banks that can issue dedicated accounts", "dedicated_account.providers",
		view{noun: "providers", columns: []column{
			col("ID", "id"),
			col("SLUG", "provider_slug"),
			col("BANK", "bank_name"),
			col("BANK ID", "bank_id"),
		}},
		cachedCall("dedicated-account-providers", false, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
			return c.DedicatedAccounts().Providers(ctx)
		})))
	cmd.AddCommand(newDedicatedAccountsRequeryCmd())

	return cmd
}

func newDedicatedAccountsCreateCmd() *cobra.Command {
	var req paystack.CreateDedicatedAccountRequest
	var data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Assign a dedicated account to a customer",
		Example: strings.TrimSpace(`
  paystack dedicated-accounts create --customer CUS_358xertt55 --preferred-bank wema-bank
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Customer == "" {
				return fmt.Errorf("--customer is required")
			}
			return runCall(cmd, "dedicated_account.create", dedicatedAccountView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.DedicatedAccounts().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Customer, "customer", "", "Customer ID or code (required)")
	fs.StringVar(&req.PreferredBank, "preferred-bank", "", "Provider slug, e.g. wema-bank")
	fs.StringVar(&req.Subaccount, "subaccount", "", "Subaccount code to split into")
	fs.StringVar(&req.SplitCode, "split-code", "", "Split code to apply")
	fs.StringVar(&req.FirstName, "first-name", "", "Customer first name")
	fs.StringVar(&req.LastName, "last-name", "", "Customer last name")
	fs.StringVar(&req.Phone, "phone", "", "Customer phone number")
	addDataFlag(cmd, &data)

	return cmd
}

func newDedicatedAccountsListCmd() *cobra.Command {
	var params paystack.ListDedicatedAccountsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List dedicated accounts",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			return runCall(cmd, "dedicated_account.list", dedicatedAccountView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.DedicatedAccounts().List(ctx, params)
			})
		}),
	}

	fs := cmd.Flags()
	optionalBoolFlag(fs, &params.Active, "active", "Filter by active state")
	currencyFlag(fs, &params.Currency)
	fs.StringVar(&params.ProviderSlug, "provider-slug", "", "Provider slug")
	fs.StringVar(&params.BankID, "bank-id", "", "Provider bank ID")
	fs.StringVar(&params.Customer, "customer", "", "Customer ID")

	return cmd
}

func newDedicatedAccountsDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate a dedicated account",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args[0], "dedicated account ID")
			if err != nil {
				return err
			}
			if ok, err := confirmAction(cmd, fmt.Sprintf("Deactivate dedicated account %d?", id)); err != nil || !ok {
				return err
			}
			return runCall(cmd, "dedicated_account.deactivate", dedicatedAccountView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.DedicatedAccounts().Deactivate(ctx, id)
			})
		}),
	}
}

func newDedicatedAccountsSplitCmd() *cobra.Command {
	var req paystack.SplitDedicatedAccountRequest
	var data string

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split payments into a customer's dedicated account",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Customer == "" {
				return fmt.Errorf("--customer is required")
			}
			if req.Subaccount == "" && req.SplitCode == "" {
				return fmt.Errorf("one of --subaccount or --split-code is required")
			}
			return runCall(cmd, "dedicated_account.split", dedicatedAccountView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.DedicatedAccounts().SplitTransaction(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Customer, "customer", "", "Customer ID or code (required)")
	fs.StringVar(&req.Subaccount, "subaccount", "", "Subaccount code")
	fs.StringVar(&req.SplitCode, "split-code", "", "Split code")
	fs.StringVar(&req.PreferredBank, "preferred-bank", "", "Provider slug")
	addDataFlag(cmd, &data)

	return cmd
}

func newDedicatedAccountsRequeryCmd() *cobra.Command {
	var params paystack.RequeryDedicatedAccountParams

	cmd := &cobra.Command{
		Use:   "requery <account-number>",
		Short: "Ask the provider to recheck an account for missed transfers",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			params.AccountNumber = args[0]
			if params.ProviderSlug == "" {
				return fmt.Errorf("--provider-slug is required")
			}
			return runCall(cmd, "dedicated_account.requery", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.DedicatedAccounts().Requery(ctx, params)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&params.ProviderSlug, "provider-slug", "", "Provider slug (required)")
	dateFlag(fs, &params.Date, "date", "Day of the missed transfer")

	return cmd
}

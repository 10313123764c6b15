package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var pageView = view{
	noun: "payment pages",
	columns: []column{
		col("ID", "id"),
		col("SLUG", "slug"),
		col("NAME", "name"),
		amountCol("AMOUNT", "amount"),
		col("TYPE", "type"),
		col("ACTIVE", "active"),
	},
	fields: []column{
		col("ID", "id"),
		col("Slug", "slug"),
		col("Name", "name"),
		col("Description", "description"),
		amountCol("Amount", "amount"),
		col("Currency", "currency"),
		col("Type", "type"),
		col("Fixed amount", "fixed_amount"),
		col("Redirect URL", "redirect_url"),
		col("Active", "active"),
		col("Created at", "createdAt"),
	},
}

var pageTypes = []string{"payment", "subscription", "product", "plan"}

func newPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pages",
		Aliases: []string{"page"},
		Short:   "Manage payment pages",
	}

	cmd.AddCommand(newPagesCreateCmd())
	cmd.AddCommand(newPagesListCmd())
	cmd.AddCommand(argCmd("get <id-or-slug>", "Fetch a payment page", "page.fetch", pageView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Pages().Fetch(ctx, arg)
		}))
	cmd.AddCommand(newPagesUpdateCmd())
	cmd.AddCommand(argCmd("check-slug <slug>", "Check whether a slug is available", "page.check_slug", view{},
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Pages().CheckSlug(ctx, arg)
		}))
	cmd.AddCommand(newPagesAddProductsCmd())

	return cmd
}

func newPagesCreateCmd() *cobra.Command {
	var req paystack.CreatePageRequest
	var data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment page",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Name == "" {
				return fmt.Errorf("--name is required")
			}
			return runCall(cmd, "page.create", pageView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Pages().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Name, "name", "", "Page name (required)")
	fs.StringVar(&req.Description, "description", "", "Description")
	amountFlag(fs, &req.Amount, "amount", "Fixed amount to collect")
	currencyFlag(fs, &req.Currency)
	fs.StringVar(&req.Slug, "slug", "", "URL slug")
	enumFlag(fs, &req.Type, "type", "Page type", pageTypes...)
	fs.StringVar(&req.Plan, "plan", "", "Plan ID for subscription pages")
	optionalBoolFlag(fs, &req.FixedAmount, "fixed-amount", "Prevent the customer from changing the amount")
	fs.StringVar(&req.SplitCode, "split-code", "", "Split code")
	metadataFlag(fs, &req.Metadata)
	fs.StringVar(&req.RedirectURL, "redirect-url", "", "URL to redirect to after payment")
	fs.StringVar(&req.SuccessMessage, "success-message", "", "Message shown after payment")
	fs.StringVar(&req.NotificationEmail, "notification-email", "", "Email notified of each payment")
	optionalBoolFlag(fs, &req.CollectPhone, "collect-phone", "Ask for the customer's phone number")
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "type", pageTypes)

	return cmd
}

func newPagesListCmd() *cobra.Command {
	var params paystack.ListPagesParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List payment pages",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "page.list", pageView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Pages().List(ctx, params)
			})
		}),
	}
	listFlags(cmd, params.Pagination())
	return cmd
}

func newPagesUpdateCmd() *cobra.Command {
	var req paystack.UpdatePageRequest
	var data string

	cmd := &cobra.Command{
		Use:   "update <id-or-slug>",
		Short: "Update a payment page",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			return runCall(cmd, "page.update", pageView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Pages().Update(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Name, "name", "", "Page name")
	fs.StringVar(&req.Description, "description", "", "Description")
	amountFlag(fs, &req.Amount, "amount", "Fixed amount to collect")
	optionalBoolFlag(fs, &req.Active, "active", "Enable or disable the page")
	addDataFlag(cmd, &data)

	return cmd
}

func newPagesAddProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-products <page-id> <product-id>...",
		Short: "Add products to a product page",
		Args:  cobra.MinimumNArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			pageID, err := idArg(args[0], "page ID")
			if err != nil {
				return err
			}
			var req paystack.AddPageProductsRequest
			for _, a := range args[1:] {
				id, err := strconv.ParseInt(a, 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid product ID %q", a)
				}
				req.Product = append(req.Product, id)
			}
			return runCall(cmd, "page.add_products", pageView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Pages().AddProducts(ctx, pageID, req)
			})
		}),
	}
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var bulkChargeView = view{
	noun: "bulk charge batches",
	columns: []column{
		col("ID", "id"),
		col("CODE", "batch_code"),
		col("STATUS", "status"),
		col("CHARGES", "total_charges"),
		col("PENDING", "pending_charges"),
		col("CREATED AT", "createdAt"),
	},
}

var bulkChargeChargesView = view{
	noun: "charges",
	columns: []column{
		col("ID", "id"),
		col("CUSTOMER", "customer.email"),
		col("AUTHORIZATION", "authorization.authorization_code"),
		amountCol("AMOUNT", "amount"),
		col("STATUS", "status"),
		col("TRANSACTION", "transaction.reference"),
	},
}

func newBulkChargesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bulk-charges",
		Aliases: []string{"bulk-charge", "bc"},
		Short:   "Charge many saved authorizations in one batch",
	}

	cmd.AddCommand(newBulkChargesInitiateCmd())
	cmd.AddCommand(newBulkChargesListCmd())
	cmd.AddCommand(argCmd("get <id-or-code>", "Fetch a bulk charge batch", "bulk_charge.fetch", bulkChargeView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.BulkCharges().Fetch(ctx, arg)
		}))
	cmd.AddCommand(newBulkChargesChargesCmd())
	cmd.AddCommand(argCmd("pause <batch-code>", "Pause processing of a batch", "bulk_charge.pause", view{},
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.BulkCharges().Pause(ctx, arg)
		}))
	cmd.AddCommand(argCmd("resume <batch-code>", "Resume processing of a paused batch", "bulk_charge.resume", view{},
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.BulkCharges().Resume(ctx, arg)
		}))

	return cmd
}

func newBulkChargesInitiateCmd() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "initiate",
		Short: "Queue a batch of authorization charges",
		Long:  "Queue a batch of authorization charges. --data takes an array of {authorization, amount, reference}, amounts in subunits.",
		Example: strings.TrimSpace(`
  paystack bulk-charges initiate --data '[{"authorization":"AUTH_ncx8hews93","amount":2500,"reference":"dam1266638dhhd"}]'
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(data) == "" {
				return fmt.Errorf("--data is required")
			}
			var items []paystack.BulkChargeItem
			if err := decodeData(cmd, data, &items); err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("--data must contain at least one charge")
			}
			if ok, err := confirmAction(cmd, fmt.Sprintf("Queue %d charges?", len(items))); err != nil || !ok {
				return err
			}
			return runCall(cmd, "bulk_charge.initiate", bulkChargeView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.BulkCharges().Initiate(ctx, items)
			})
		}),
	}
	addDataFlag(cmd, &data)
	return cmd
}

func newBulkChargesListCmd() *cobra.Command {
	var params paystack.ListBulkChargesParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bulk charge batches",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "bulk_charge.list", bulkChargeView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.BulkCharges().List(ctx, params)
			})
		}),
	}
	listFlags(cmd, params.Pagination())
	return cmd
}

func newBulkChargesChargesCmd() *cobra.Command {
	var params paystack.BulkChargeChargesParams

	cmd := &cobra.Command{
		Use:   "charges <id-or-code>",
		Short: "List the charges in a batch",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "bulk_charge.charges", bulkChargeChargesView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.BulkCharges().Charges(ctx, args[0], params)
			})
		}),
	}
	listFlags(cmd, params.Pagination())
	statuses := []string{"pending", "success", "failed"}
	enumFlag(cmd.Flags(), &params.Status, "status", "Charge status", statuses...)
	registerStaticCompletions(cmd, "status", statuses)
	return cmd
}

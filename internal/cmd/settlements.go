package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var settlementView = view{
	noun: "settlements",
	columns: []column{
		col("ID", "id"),
		amountCol("AMOUNT", "total_amount"),
		amountCol("EFFECTIVE", "effective_amount"),
		amountCol("FEES", "total_fees"),
		col("STATUS", "status"),
		col("DATE", "settlement_date"),
	},
}

var settlementStatuses = []string{"success", "processing", "pending", "failed"}

func newSettlementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settlements",
		Aliases: []string{"settlement"},
		Short:   "Inspect payouts to your bank account",
	}
	cmd.AddCommand(newSettlementsListCmd())
	cmd.AddCommand(newSettlementsTransactionsCmd())
	return cmd
}

func newSettlementsListCmd() *cobra.Command {
	var params paystack.ListSettlementsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List settlements",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "settlement.list", settlementView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Settlements().List(ctx, params)
			})
		}),
	}

	listFlags(cmd, params.Pagination())
	fs := cmd.Flags()
	enumFlag(fs, &params.Status, "status", "Settlement status", settlementStatuses...)
	fs.StringVar(&params.Subaccount, "subaccount", "", `Subaccount ID, or "none" for main account settlements only`)
	registerStaticCompletions(cmd, "status", settlementStatuses)

	return cmd
}

func newSettlementsTransactionsCmd() *cobra.Command {
	var params paystack.SettlementTransactionsParams

	cmd := &cobra.Command{
		Use:   "transactions <settlement-id>",
		Short: "List the transactions paid out in a settlement",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "settlement.transactions", transactionView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Settlements().Transactions(ctx, args[0], params)
			})
		}),
	}
	listFlags(cmd, params.Pagination())
	return cmd
}

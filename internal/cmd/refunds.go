package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var refundView = view{
	noun: "refunds",
	model: typedView(
		[]string{"ID", "TRANSACTION", "AMOUNT", "STATUS", "REFUNDED BY", "CREATED AT"},
		func(r paystack.Refund) []string {
			return []string{
				idString(r.ID),
				nestedString(r.Transaction, "reference"),
				money(r.Amount, r.Currency),
				r.Status,
				r.RefundedBy,
				timeString(r.CreatedAt),
			}
		},
		func(r paystack.Refund) [][2]string {
			txID := nestedString(r.Transaction, "id")
			if txID == "" {
				txID = formatValue(r.Transaction)
			}
			return [][2]string{
				{"ID", idString(r.ID)},
				{"Transaction", txID},
				{"Reference", nestedString(r.Transaction, "reference")},
				{"Amount", money(r.Amount, r.Currency)},
				{"Deducted", money(r.DeductedAmount, r.Currency)},
				{"Currency", string(r.Currency)},
				{"Status", r.Status},
				{"Customer note", r.CustomerNote},
				{"Merchant note", r.MerchantNote},
				{"Refunded by", r.RefundedBy},
				{"Expected at", timePtrString(r.ExpectedAt)},
			}
		},
	),
}

func newRefundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "refunds",
		Aliases: []string{"refund"},
		Short:   "Refund transactions",
	}

	cmd.AddCommand(newRefundsCreateCmd())
	cmd.AddCommand(newRefundsListCmd())
	cmd.AddCommand(argCmd("get <reference>", "Fetch a refund", "refund.fetch", refundView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Refunds().Fetch(ctx, arg)
		}))

	return cmd
}

func newRefundsCreateCmd() *cobra.Command {
	var req paystack.CreateRefundRequest
	var data string

	cmd := &cobra.Command{
		Use:   "create <transaction>",
		Short: "Refund a transaction fully or partially",
		Long:  "Refund a transaction by ID or reference. Without --amount the full amount is refunded.",
		Args:  cobra.MaximumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Transaction = args[0]
			}
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Transaction == "" {
				return fmt.Errorf("a transaction ID or reference is required")
			}
			prompt := fmt.Sprintf("Refund transaction %s in full?", req.Transaction)
			if req.Amount > 0 {
				prompt = fmt.Sprintf("Refund %s of transaction %s?", formatSubunits(req.Amount, req.Currency), req.Transaction)
			}
			if ok, err := confirmAction(cmd, prompt); err != nil || !ok {
				return err
			}
			return runCall(cmd, "refund.create", refundView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Refunds().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	amountFlag(fs, &req.Amount, "amount", "Partial amount to refund")
	currencyFlag(fs, &req.Currency)
	fs.StringVar(&req.CustomerNote, "customer-note", "", "Reason shown to the customer")
	fs.StringVar(&req.MerchantNote, "merchant-note", "", "Internal reason")
	addDataFlag(cmd, &data)

	return cmd
}

func newRefundsListCmd() *cobra.Command {
	var params paystack.ListRefundsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List refunds",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "refund.list", refundView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Refunds().List(ctx, params)
			})
		}),
	}

	listFlags(cmd, params.Pagination())
	fs := cmd.Flags()
	fs.StringVar(&params.Reference, "reference", "", "Transaction reference")
	currencyFlag(fs, &params.Currency)

	return cmd
}

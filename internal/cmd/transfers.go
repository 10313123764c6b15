package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var transferView = view{
	noun: "transfers",
	model: typedView(
		[]string{"ID", "CODE", "REFERENCE", "AMOUNT", "RECIPIENT", "STATUS", "CREATED AT"},
		func(t paystack.Transfer) []string {
			return []string{
				idString(t.ID),
				t.TransferCode,
				t.Reference,
				money(t.Amount, t.Currency),
				nestedString(t.Recipient, "name"),
				t.Status,
				timeString(t.CreatedAt),
			}
		},
		func(t paystack.Transfer) [][2]string {
			return [][2]string{
				{"ID", idString(t.ID)},
				{"Code", t.TransferCode},
				{"Reference", t.Reference},
				{"Amount", money(t.Amount, t.Currency)},
				{"Currency", string(t.Currency)},
				{"Reason", t.Reason},
				{"Recipient", nestedString(t.Recipient, "recipient_code")},
				{"Recipient name", nestedString(t.Recipient, "name")},
				{"Status", t.Status},
				{"Transferred at", timePtrString(t.TransferredAt)},
				{"Created at", timeString(t.CreatedAt)},
			}
		},
	),
}

var transferStatuses = []string{"pending", "success", "failed", "reversed", "otp", "abandoned", "blocked", "rejected", "received"}

func newTransfersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transfers",
		Aliases: []string{"transfer", "tr"},
		Short:   "Send money to recipients",
	}

	cmd.AddCommand(newTransfersInitiateCmd())
	cmd.AddCommand(newTransfersFinalizeCmd())
	cmd.AddCommand(newTransfersBulkCmd())
	cmd.AddCommand(newTransfersListCmd())
	cmd.AddCommand(argCmd("get <id-or-code>", "Fetch a transfer", "transfer.fetch", transferView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Transfers().Fetch(ctx, arg)
		}))
	cmd.AddCommand(newTransfersVerifyCmd())

	return cmd
}

func newTransfersInitiateCmd() *cobra.Command {
	var req paystack.InitiateTransferRequest
	var data string
	var newRef bool

	cmd := &cobra.Command{
		Use:     "initiate",
		Aliases: []string{"send"},
		Short:   "Send money from your balance to a recipient",
		Example: strings.TrimSpace(`
  paystack transfers initiate --amount 3794.80 --recipient RCP_t0ya41mp35flk40 --reason "Holiday flexing" --new-reference
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Recipient == "" || req.Amount <= 0 {
				return fmt.Errorf("--recipient and --amount are required")
			}
			if newRef && req.Reference == "" {
				req.Reference = paystack.NewReference()
			}
			if ok, err := confirmAction(cmd, fmt.Sprintf("Send %s to %s?", formatSubunits(req.Amount, req.Currency), req.Recipient)); err != nil || !ok {
				return err
			}
			return runCall(cmd, "transfer.initiate", transferView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transfers().Initiate(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Source, "source", "balance", "Where the money comes from")
	amountFlag(fs, &req.Amount, "amount", "Amount to send (required)")
	fs.StringVar(&req.Recipient, "recipient", "", "Recipient code (required)")
	fs.StringVar(&req.Reason, "reason", "", "Narration")
	currencyFlag(fs, &req.Currency)
	fs.StringVar(&req.Reference, "reference", "", "Unique transfer reference")
	fs.BoolVar(&newRef, "new-reference", false, "Generate a reference when none is given")
	addDataFlag(cmd, &data)

	return cmd
}

func newTransfersFinalizeCmd() *cobra.Command {
	var req paystack.FinalizeTransferRequest

	cmd := &cobra.Command{
		Use:   "finalize <transfer-code>",
		Short: "Complete a transfer with the OTP sent to the business phone",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			req.TransferCode = args[0]
			if req.OTP == "" {
				return fmt.Errorf("--otp is required")
			}
			return runCall(cmd, "transfer.finalize", transferView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transfers().Finalize(ctx, req)
			})
		}),
	}
	cmd.Flags().StringVar(&req.OTP, "otp", "", "One-time password (required)")
	return cmd
}

func newTransfersBulkCmd() *cobra.Command {
	var req paystack.BulkTransferRequest
	var data string

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Send many transfers in one request",
		Long:  "Send many transfers in one request. --data takes the transfers array, amounts in subunits.",
		Example: strings.TrimSpace(`
  paystack transfers bulk --data '[{"amount":20000,"recipient":"RCP_db342dvqvz9qcrn","reference":"ref-1"}]'
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(data) == "" {
				return fmt.Errorf("--data is required")
			}
			if err := decodeData(cmd, data, &req.Transfers); err != nil {
				return err
			}
			if len(req.Transfers) == 0 {
				return fmt.Errorf("--data must contain at least one transfer")
			}
			var total int64
			for _, t := range req.Transfers {
				total += t.Amount
			}
			if ok, err := confirmAction(cmd, fmt.Sprintf("Send %d transfers totalling %s?", len(req.Transfers), formatSubunits(total, req.Currency))); err != nil || !ok {
				return err
			}
			return runCall(cmd, "transfer.bulk", transferView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transfers().Bulk(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Source, "source", "balance", "Where the money comes from")
	currencyFlag(fs, &req.Currency)
	addDataFlag(cmd, &data)

	return cmd
}

func newTransfersListCmd() *cobra.Command {
	var params paystack.ListTransfersParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transfers",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "transfer.list", transferView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transfers().List(ctx, params)
			})
		}),
	}

	listFlags(cmd, params.Pagination())
	fs := cmd.Flags()
	fs.StringVar(&params.Customer, "customer", "", "Customer ID")
	enumFlag(fs, &params.Status, "status", "Transfer status", transferStatuses...)
	registerStaticCompletions(cmd, "status", transferStatuses)

	return cmd
}

func newTransfersVerifyCmd() *cobra.Command {
	var concurrency int64

	cmd := &cobra.Command{
		Use:   "verify <reference>...",
		Short: "Check the status of one or more transfers",
		Args:  cobra.MinimumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			return runBulkCalls(cmd, "transfer.verify", args, concurrency, transferView, func(ctx context.Context, c *paystack.Client, ref string) (*paystack.Response, error) {
				return c.Transfers().Verify(ctx, ref)
			})
		}),
	}
	addConcurrencyFlag(cmd, &concurrency)
	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

var disputeView = view{
	noun: "disputes",
	columns: []column{
		col("ID", "id"),
		col("TRANSACTION", "transaction.reference"),
		amountCol("REFUND", "refund_amount"),
		col("STATUS", "status"),
		col("CATEGORY", "category"),
		col("DUE AT", "dueAt"),
		col("CREATED AT", "createdAt"),
	},
	fields: []column{
		col("ID", "id"),
		col("Transaction", "transaction.reference"),
		amountCol("Transaction amount", "transaction.amount"),
		amountCol("Refund amount", "refund_amount"),
		col("Currency", "currency"),
		col("Status", "status"),
		col("Resolution", "resolution"),
		col("Category", "category"),
		col("Customer", "customer.email"),
		col("Evidence", "evidence"),
		col("Due at", "dueAt"),
		col("Resolved at", "resolvedAt"),
		col("Created at", "createdAt"),
	},
}

var disputeStatuses = []string{
	string(paystack.DisputeAwaitingMerchantFeedback),
	string(paystack.DisputeAwaitingBankFeedback),
	string(paystack.DisputePending),
	string(paystack.DisputeResolved),
}

var disputeResolutions = []string{"merchant-accepted", "declined"}

func newDisputesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "disputes",
		Aliases: []string{"dispute"},
		Short:   "Respond to chargebacks and customer disputes",
	}

	cmd.AddCommand(newDisputesListCmd("list", "List disputes", "dispute.list", func(ctx context.Context, c *paystack.Client, p paystack.ListDisputesParams) (*paystack.Response, error) {
		return c.Disputes().List(ctx, p)
	}))
	cmd.AddCommand(argCmd("get <id>", "Fetch a dispute", "dispute.fetch", disputeView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Disputes().Fetch(ctx, arg)
		}))
	cmd.AddCommand(argCmd("transaction <transaction-id>", "List the disputes on a transaction", "dispute.transaction", disputeView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Disputes().ListTransactionDisputes(ctx, arg)
		}))
	cmd.AddCommand(newDisputesUpdateCmd())
	cmd.AddCommand(newDisputesEvidenceCmd())
	cmd.AddCommand(newDisputesUploadURLCmd())
	cmd.AddCommand(newDisputesResolveCmd())
	cmd.AddCommand(newDisputesListCmd("export", "Export disputes to a downloadable file", "dispute.export", func(ctx context.Context, c *paystack.Client, p paystack.ListDisputesParams) (*paystack.Response, error) {
		return c.Disputes().Export(ctx, p)
	}))

	return cmd
}

func newDisputesListCmd(use, short, operation string, call func(ctx context.Context, c *paystack.Client, p paystack.ListDisputesParams) (*paystack.Response, error)) *cobra.Command {
	var params paystack.ListDisputesParams

	v := disputeView
	if use == "export" {
		v = view{fields: []column{col("Path", "path"), col("Expires at", "expiresAt")}}
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, operation, v, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return call(ctx, c, params)
			})
		}),
	}
	if use == "list" {
		cmd.Aliases = []string{"ls"}
	}

	listFlags(cmd, params.Pagination())
	fs := cmd.Flags()
	fs.StringVar(&params.Transaction, "transaction", "", "Transaction ID")
	enumFlag(fs, &params.Status, "status", "Dispute status", disputeStatuses...)
	registerStaticCompletions(cmd, "status", disputeStatuses)

	return cmd
}

func newDisputesUpdateCmd() *cobra.Command {
	var req paystack.UpdateDisputeRequest
	var data string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Set the refund amount on a dispute",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.RefundAmount <= 0 {
				return fmt.Errorf("--refund-amount is required")
			}
			return runCall(cmd, "dispute.update", disputeView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Disputes().Update(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	amountFlag(fs, &req.RefundAmount, "refund-amount", "Amount to refund (required)")
	fs.StringVar(&req.UploadedFilename, "uploaded-filename", "", "Filename returned by upload-url")
	addDataFlag(cmd, &data)

	return cmd
}

func newDisputesEvidenceCmd() *cobra.Command {
	var req paystack.DisputeEvidenceRequest
	var data string

	cmd := &cobra.Command{
		Use:   "add-evidence <id>",
		Short: "Submit evidence for a dispute",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.CustomerEmail == "" || req.CustomerName == "" || req.CustomerPhone == "" || req.ServiceDetails == "" {
				return fmt.Errorf("--customer-email, --customer-name, --customer-phone and --service-details are required")
			}
			if err := validation.ValidateEmail(req.CustomerEmail); err != nil {
				return err
			}
			if err := validation.ValidatePhone(req.CustomerPhone); err != nil {
				return err
			}
			return runCall(cmd, "dispute.add_evidence", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Disputes().AddEvidence(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.CustomerEmail, "customer-email", "", "Customer email (required)")
	fs.StringVar(&req.CustomerName, "customer-name", "", "Customer name (required)")
	fs.StringVar(&req.CustomerPhone, "customer-phone", "", "Customer phone (required)")
	fs.StringVar(&req.ServiceDetails, "service-details", "", "What was delivered (required)")
	fs.StringVar(&req.DeliveryAddress, "delivery-address", "", "Delivery address")
	dateFlag(fs, &req.DeliveryDate, "delivery-date", "Delivery date, YYYY-MM-DD")
	addDataFlag(cmd, &data)

	return cmd
}

func newDisputesUploadURLCmd() *cobra.Command {
	var filename string

	cmd := &cobra.Command{
		Use:   "upload-url <id>",
		Short: "Get a signed URL for uploading dispute evidence",
		Example: strings.TrimSpace(`
  paystack disputes upload-url 2867 --filename receipt.pdf
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(filename) == "" {
				return fmt.Errorf("--filename is required")
			}
			return runCall(cmd, "dispute.upload_url", view{fields: []column{
				col("Upload URL", "signedUrl"),
				col("File name", "fileName"),
			}}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Disputes().UploadURL(ctx, args[0], filename)
			})
		}),
	}
	cmd.Flags().StringVar(&filename, "filename", "", "Name of the file to upload, with extension (required)")
	return cmd
}

func newDisputesResolveCmd() *cobra.Command {
	var req paystack.ResolveDisputeRequest
	var data string

	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Accept or decline a dispute",
		Example: strings.TrimSpace(`
  paystack disputes resolve 2867 --resolution merchant-accepted --message "Refunded" --refund-amount 10 --uploaded-filename qesp8a4df1xejihd9x5q.png
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Resolution == "" || req.Message == "" || req.UploadedFilename == "" {
				return fmt.Errorf("--resolution, --message and --uploaded-filename are required")
			}
			if ok, err := confirmAction(cmd, fmt.Sprintf("Resolve dispute %s as %s?", args[0], req.Resolution)); err != nil || !ok {
				return err
			}
			return runCall(cmd, "dispute.resolve", disputeView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Disputes().Resolve(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	enumFlag(fs, &req.Resolution, "resolution", "Outcome", disputeResolutions...)
	fs.StringVar(&req.Message, "message", "", "Reason for the resolution (required)")
	amountFlag(fs, &req.RefundAmount, "refund-amount", "Amount to refund")
	fs.StringVar(&req.UploadedFilename, "uploaded-filename", "", "Filename returned by upload-url (required)")
	fs.Int64Var(&req.Evidence, "evidence", 0, "Evidence ID from add-evidence, for fraud claims")
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "resolution", disputeResolutions)

	return cmd
}

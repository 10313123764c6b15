package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/outfmt"
	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

var transactionView = view{
	noun: "transactions",
	model: typedView(
		[]string{"ID", "REFERENCE", "AMOUNT", "STATUS", "CHANNEL", "CUSTOMER", "PAID AT"},
		func(t paystack.Transaction) []string {
			return []string{
				idString(t.ID),
				t.Reference,
				money(t.Amount, t.Currency),
				string(t.Status),
				string(t.Channel),
				customerEmail(t.Customer),
				timePtrString(t.PaidAt),
			}
		},
		func(t paystack.Transaction) [][2]string {
			pairs := [][2]string{
				{"ID", idString(t.ID)},
				{"Reference", t.Reference},
				{"Amount", money(t.Amount, t.Currency)},
				{"Currency", string(t.Currency)},
				{"Status", string(t.Status)},
				{"Gateway response", t.GatewayResponse},
				{"Channel", string(t.Channel)},
				{"Customer", customerEmail(t.Customer)},
			}
			if a := t.Authorization; a != nil {
				pairs = append(pairs,
					[2]string{"Authorization", a.AuthorizationCode},
					[2]string{"Card", cardSummary(*a)},
					[2]string{"Reusable", strconv.FormatBool(a.Reusable)},
				)
			}
			return append(pairs,
				[2]string{"Fees", money(t.Fees, t.Currency)},
				[2]string{"Paid at", timePtrString(t.PaidAt)},
				[2]string{"Created at", timeString(t.CreatedAt)},
			)
		},
	),
}

var initializedView = view{model: typedView(nil, nil, func(t paystack.InitializedTransaction) [][2]string {
	return [][2]string{
		{"Authorization URL", t.AuthorizationURL},
		{"Access code", t.AccessCode},
		{"Reference", t.Reference},
	}
})}

func customerEmail(c *paystack.Customer) string {
	if c == nil {
		return ""
	}
	return c.Email
}

// cardSummary describes an authorization as "visa 408408******4081 12/2030".
func cardSummary(a paystack.Authorization) string {
	if a.Last4 == "" {
		return a.Bank
	}
	parts := []string{}
	if a.Brand != "" {
		parts = append(parts, strings.ToLower(a.Brand))
	}
	parts = append(parts, a.Bin+"******"+a.Last4)
	if a.ExpMonth != "" && a.ExpYear != "" {
		parts = append(parts, a.ExpMonth+"/"+a.ExpYear)
	}
	return strings.Join(parts, " ")
}

var transactionStatuses = []string{
	string(paystack.TransactionSuccess),
	string(paystack.TransactionFailed),
	string(paystack.TransactionAbandoned),
}

var bearers = []string{string(paystack.BearerAccount), string(paystack.BearerSubaccount)}

func newTransactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"transaction", "tx"},
		Short:   "Initialize, verify and inspect payments",
	}

	cmd.AddCommand(newTransactionsInitializeCmd())
	cmd.AddCommand(newTransactionsVerifyCmd())
	cmd.AddCommand(newTransactionsListCmd())
	cmd.AddCommand(newTransactionsGetCmd())
	cmd.AddCommand(newTransactionsChargeAuthorizationCmd())
	cmd.AddCommand(newTransactionsCheckAuthorizationCmd())
	cmd.AddCommand(newTransactionsTimelineCmd())
	cmd.AddCommand(newTransactionsTotalsCmd())
	cmd.AddCommand(newTransactionsExportCmd())
	cmd.AddCommand(newTransactionsPartialDebitCmd())

	return cmd
}

func newTransactionsInitializeCmd() *cobra.Command {
	var req paystack.InitializeTransactionRequest
	var data string
	var newRef bool

	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"init"},
		Short:   "Start a checkout and print its authorization URL",
		Example: strings.TrimSpace(`
  # Collect NGN 5,000 from a customer
  paystack transactions initialize --email ada@example.com --amount 5000

  # Restrict channels and generate a reference
  paystack tx init --email ada@example.com --amount 150.50 --channels card,bank --new-reference
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if err := validation.ValidateEmail(req.Email); err != nil {
				return err
			}
			if newRef && req.Reference == "" {
				req.Reference = paystack.NewReference()
			}
			return runCall(cmd, "transaction.initialize", initializedView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transactions().Initialize(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Email, "email", "", "Customer email (required)")
	amountFlag(fs, &req.Amount, "amount", "Amount to charge (required)")
	currencyFlag(fs, &req.Currency)
	fs.StringVar(&req.Reference, "reference", "", "Unique transaction reference")
	fs.BoolVar(&newRef, "new-reference", false, "Generate a reference when none is given")
	fs.StringVar(&req.CallbackURL, "callback-url", "", "URL to redirect to after payment")
	fs.StringVar(&req.Plan, "plan", "", "Plan code to subscribe the customer to")
	fs.IntVar(&req.InvoiceLimit, "invoice-limit", 0, "Number of times to charge for the plan")
	metadataFlag(fs, &req.Metadata)
	channelsFlag(fs, &req.Channels)
	fs.StringVar(&req.SplitCode, "split-code", "", "Split code to share the payment")
	fs.StringVar(&req.Subaccount, "subaccount", "", "Subaccount code that owns the payment")
	amountFlag(fs, &req.TransactionCharge, "transaction-charge", "Flat fee kept by the main account")
	enumFlag(fs, &req.Bearer, "bearer", "Who bears the Paystack fee", bearers...)
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "bearer", bearers)
	registerStaticCompletions(cmd, "channels", paystack.Channels)

	return cmd
}

func newTransactionsVerifyCmd() *cobra.Command {
	var concurrency int64

	cmd := &cobra.Command{
		Use:   "verify <reference>...",
		Short: "Confirm the status of one or more transactions",
		Example: strings.TrimSpace(`
  paystack transactions verify T123456789
  paystack tx verify ref1 ref2 ref3 --concurrency 3
`),
		Args: cobra.MinimumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			return runBulkCalls(cmd, "transaction.verify", args, concurrency, transactionView, func(ctx context.Context, c *paystack.Client, ref string) (*paystack.Response, error) {
				return c.Transactions().Verify(ctx, ref)
			})
		}),
	}
	addConcurrencyFlag(cmd, &concurrency)
	return cmd
}

func newTransactionsListCmd() *cobra.Command {
	var params paystack.ListTransactionsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "transaction.list", transactionView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transactions().List(ctx, params)
			})
		}),
	}

	listFlags(cmd, params.Pagination())
	fs := cmd.Flags()
	fs.StringVar(&params.Customer, "customer", "", "Customer ID")
	enumFlag(fs, &params.Status, "status", "Transaction status", transactionStatuses...)
	amountFlag(fs, &params.Amount, "amount", "Exact amount")
	registerStaticCompletions(cmd, "status", transactionStatuses)

	return cmd
}

func newTransactionsGetCmd() *cobra.Command {
	return argCmd("get <id>", "Fetch a transaction by numeric ID", "transaction.fetch", transactionView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			id, err := idArg(arg, "transaction")
			if err != nil {
				return nil, err
			}
			return c.Transactions().Fetch(ctx, id)
		})
}

func newTransactionsChargeAuthorizationCmd() *cobra.Command {
	var req paystack.ChargeAuthorizationRequest
	var data string

	cmd := &cobra.Command{
		Use:   "charge-authorization",
		Short: "Charge a saved card authorization",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.AuthorizationCode == "" {
				return fmt.Errorf("--authorization-code is required")
			}
			if ok, err := confirmAction(cmd, fmt.Sprintf("Charge %s to %s?", formatSubunits(req.Amount, req.Currency), req.Email)); err != nil || !ok {
				return err
			}
			return runCall(cmd, "transaction.charge_authorization", transactionView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transactions().ChargeAuthorization(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Email, "email", "", "Customer email (required)")
	amountFlag(fs, &req.Amount, "amount", "Amount to charge (required)")
	fs.StringVar(&req.AuthorizationCode, "authorization-code", "", "Authorization code, AUTH_xxx (required)")
	fs.StringVar(&req.Reference, "reference", "", "Unique transaction reference")
	currencyFlag(fs, &req.Currency)
	metadataFlag(fs, &req.Metadata)
	channelsFlag(fs, &req.Channels)
	fs.StringVar(&req.Subaccount, "subaccount", "", "Subaccount code that owns the payment")
	amountFlag(fs, &req.TransactionCharge, "transaction-charge", "Flat fee kept by the main account")
	enumFlag(fs, &req.Bearer, "bearer", "Who bears the Paystack fee", bearers...)
	fs.BoolVar(&req.Queue, "queue", false, "Queue the charge for later processing")
	addDataFlag(cmd, &data)
	flagAlias(fs, "authorization-code", "auth")

	return cmd
}

func newTransactionsCheckAuthorizationCmd() *cobra.Command {
	var req paystack.CheckAuthorizationRequest
	var data string

	cmd := &cobra.Command{
		Use:   "check-authorization",
		Short: "Check that an authorization can be charged an amount",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			return runCall(cmd, "transaction.check_authorization", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transactions().CheckAuthorization(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Email, "email", "", "Customer email (required)")
	amountFlag(fs, &req.Amount, "amount", "Amount to check (required)")
	fs.StringVar(&req.AuthorizationCode, "authorization-code", "", "Authorization code (required)")
	currencyFlag(fs, &req.Currency)
	addDataFlag(cmd, &data)
	flagAlias(fs, "authorization-code", "auth")

	return cmd
}

func newTransactionsTimelineCmd() *cobra.Command {
	return argCmd("timeline <id-or-reference>", "Show the checkout timeline of a transaction", "transaction.timeline",
		view{fields: []column{
			col("Time spent (s)", "time_spent"),
			col("Attempts", "attempts"),
			col("Errors", "errors"),
			col("Success", "success"),
			col("Mobile", "mobile"),
			col("Channel", "channel"),
		}},
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Transactions().Timeline(ctx, arg)
		})
}

func newTransactionsTotalsCmd() *cobra.Command {
	var params paystack.TransactionTotalsParams

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Show the total volume received",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "transaction.totals", view{fields: []column{
				col("Transactions", "total_transactions"),
				col("Unique customers", "unique_customers"),
				col("Total volume", "total_volume_by_currency"),
				col("Pending transfers", "pending_transfers_by_currency"),
			}}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transactions().Totals(ctx, params)
			})
		}),
	}
	listFlags(cmd, params.Pagination())
	return cmd
}

func newTransactionsExportCmd() *cobra.Command {
	var params paystack.ExportTransactionsParams

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Request a CSV export of transactions",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "transaction.export", view{fields: []column{
				col("Path", "path"),
				col("Expires at", "expiresAt"),
			}}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transactions().Export(ctx, params)
			})
		}),
	}

	listFlags(cmd, params.Pagination())
	fs := cmd.Flags()
	fs.StringVar(&params.Customer, "customer", "", "Customer ID")
	fs.StringVar(&params.Status, "status", "", "Transaction status")
	currencyFlag(fs, &params.Currency)
	amountFlag(fs, &params.Amount, "amount", "Exact amount")
	optionalBoolFlag(fs, &params.Settled, "settled", "Only settled (or, with =false, unsettled) transactions")
	fs.StringVar(&params.Settlement, "settlement", "", "Settlement ID")
	fs.StringVar(&params.PaymentPage, "payment-page", "", "Payment page ID")

	return cmd
}

func newTransactionsPartialDebitCmd() *cobra.Command {
	var req paystack.PartialDebitRequest
	var data string

	cmd := &cobra.Command{
		Use:   "partial-debit",
		Short: "Recover part of a payment from an authorization",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Currency == "" {
				return fmt.Errorf("--currency is required")
			}
			if ok, err := confirmAction(cmd, fmt.Sprintf("Debit up to %s from %s?", formatSubunits(req.Amount, req.Currency), req.Email)); err != nil || !ok {
				return err
			}
			return runCall(cmd, "transaction.partial_debit", transactionView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Transactions().PartialDebit(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.AuthorizationCode, "authorization-code", "", "Authorization code (required)")
	currencyFlag(fs, &req.Currency)
	amountFlag(fs, &req.Amount, "amount", "Amount to debit (required)")
	fs.StringVar(&req.Email, "email", "", "Customer email (required)")
	fs.StringVar(&req.Reference, "reference", "", "Unique transaction reference")
	amountFlag(fs, &req.AtLeast, "at-least", "Minimum amount to accept")
	addDataFlag(cmd, &data)
	flagAlias(fs, "authorization-code", "auth")

	return cmd
}

func formatSubunits(amount int64, currency paystack.Currency) string {
	cur := string(currency)
	if cur == "" {
		cur = string(paystack.NGN)
	}
	return outfmt.Amount(amount, cur)
}

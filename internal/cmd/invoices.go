package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

var invoiceView = view{
	noun: "invoices",
	columns: []column{
		col("ID", "id"),
		col("CODE", "request_code"),
		col("CUSTOMER", "customer.email"),
		amountCol("AMOUNT", "amount"),
		col("STATUS", "status"),
		col("PAID", "paid"),
		col("DUE", "due_date"),
	},
	fields: []column{
		col("ID", "id"),
		col("Code", "request_code"),
		col("Invoice number", "invoice_number"),
		col("Customer", "customer.email"),
		amountCol("Amount", "amount"),
		col("Currency", "currency"),
		col("Description", "description"),
		col("Status", "status"),
		col("Paid", "paid"),
		col("Paid at", "paid_at"),
		col("Due date", "due_date"),
		col("Offline reference", "offline_reference"),
		col("Line items", "line_items"),
		col("Tax", "tax"),
	},
}

var invoiceStatuses = []string{"draft", "pending", "success", "failed", "cancelled", "abandoned"}

func newInvoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"invoice", "payment-requests"},
		Short:   "Request payments from customers",
	}

	cmd.AddCommand(newInvoicesCreateCmd())
	cmd.AddCommand(newInvoicesListCmd())
	cmd.AddCommand(argCmd("get <id-or-code>", "Fetch an invoice", "invoice.fetch", invoiceView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Invoices().Fetch(ctx, arg)
		}))
	cmd.AddCommand(argCmd("verify <code>", "Verify an invoice", "invoice.verify", invoiceView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Invoices().Verify(ctx, arg)
		}))
	cmd.AddCommand(argCmd("notify <code>", "Send the invoice to the customer", "invoice.notify", view{},
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Invoices().Notify(ctx, arg)
		}))
	cmd.AddCommand(plainCmd("totals", "Show invoice totals by status", "invoice.totals", view{fields: []column{
		col("Pending", "pending"),
		col("Successful", "successful"),
		col("Total", "total"),
	}}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
		return c.Invoices().Totals(ctx)
	}))
	cmd.AddCommand(argCmd("finalize <code>", "Finalize a draft invoice", "invoice.finalize", invoiceView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Invoices().Finalize(ctx, arg)
		}))
	cmd.AddCommand(newInvoicesUpdateCmd())
	cmd.AddCommand(newInvoicesArchiveCmd())

	return cmd
}

// parseLineItems reads NAME:AMOUNT[:QUANTITY] values, amounts in major units.
func parseLineItems(values []string) ([]paystack.LineItem, error) {
	items := make([]paystack.LineItem, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, ":")
		if len(parts) < 2 || len(parts) > 3 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid line item %q: use NAME:AMOUNT[:QUANTITY]", v)
		}
		amount, err := validation.ParseAmount(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid line item %q: %w", v, err)
		}
		item := paystack.LineItem{Name: strings.TrimSpace(parts[0]), Amount: amount}
		if len(parts) == 3 {
			qty, err := strconv.Atoi(strings.TrimSpace(parts[2]))
			if err != nil || qty <= 0 {
				return nil, fmt.Errorf("invalid quantity in line item %q", v)
			}
			item.Quantity = qty
		}
		items = append(items, item)
	}
	return items, nil
}

// parseTaxes reads NAME:AMOUNT values, amounts in major units.
func parseTaxes(values []string) ([]paystack.Tax, error) {
	taxes := make([]paystack.Tax, 0, len(values))
	for _, v := range values {
		name, raw, ok := strings.Cut(v, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid tax %q: use NAME:AMOUNT", v)
		}
		amount, err := validation.ParseAmount(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid tax %q: %w", v, err)
		}
		taxes = append(taxes, paystack.Tax{Name: strings.TrimSpace(name), Amount: amount})
	}
	return taxes, nil
}

type invoiceItemFlags struct {
	lineItems []string
	taxes     []string
}

func (f *invoiceItemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.lineItems, "line-items", nil, "Line item as NAME:AMOUNT[:QUANTITY] (repeatable)")
	cmd.Flags().StringArrayVar(&f.taxes, "tax", nil, "Tax as NAME:AMOUNT (repeatable)")
}

func (f *invoiceItemFlags) parse() ([]paystack.LineItem, []paystack.Tax, error) {
	items, err := parseLineItems(f.lineItems)
	if err != nil {
		return nil, nil, err
	}
	taxes, err := parseTaxes(f.taxes)
	if err != nil {
		return nil, nil, err
	}
	return items, taxes, nil
}

func newInvoicesCreateCmd() *cobra.Command {
	var req paystack.CreateInvoiceRequest
	var items invoiceItemFlags
	var data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice",
		Example: strings.TrimSpace(`
  paystack invoices create --customer CUS_xwaj0txjryg393b --due-date 2026-12-01 \
    --line-items "Tripod stand:15000" --line-items "Lenses:5000:2" --tax "VAT:2000"
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			var err error
			if req.LineItems, req.Tax, err = items.parse(); err != nil {
				return err
			}
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Customer == "" {
				return fmt.Errorf("--customer is required")
			}
			if req.Amount <= 0 && len(req.LineItems) == 0 {
				return fmt.Errorf("either --amount or --line-items is required")
			}
			return runCall(cmd, "invoice.create", invoiceView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Invoices().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Customer, "customer", "", "Customer ID or code (required)")
	amountFlag(fs, &req.Amount, "amount", "Invoice amount")
	dateFlag(fs, &req.DueDate, "due-date", "Due date")
	fs.StringVar(&req.Description, "description", "", "Description")
	items.register(cmd)
	currencyFlag(fs, &req.Currency)
	optionalBoolFlag(fs, &req.SendNotification, "send-notification", "Email the invoice to the customer")
	optionalBoolFlag(fs, &req.Draft, "draft", "Save as a draft")
	optionalBoolFlag(fs, &req.HasInvoice, "has-invoice", "Generate an invoice number")
	fs.IntVar(&req.InvoiceNumber, "invoice-number", 0, "Override the invoice number")
	fs.StringVar(&req.SplitCode, "split-code", "", "Split code")
	addDataFlag(cmd, &data)

	return cmd
}

func newInvoicesListCmd() *cobra.Command {
	var params paystack.ListInvoicesParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List invoices",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "invoice.list", invoiceView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Invoices().List(ctx, params)
			})
		}),
	}

	listFlags(cmd, params.Pagination())
	fs := cmd.Flags()
	fs.StringVar(&params.Customer, "customer", "", "Customer ID")
	enumFlag(fs, &params.Status, "status", "Invoice status", invoiceStatuses...)
	currencyFlag(fs, &params.Currency)
	optionalBoolFlag(fs, &params.IncludeArchive, "include-archive", "Include archived invoices")
	registerStaticCompletions(cmd, "status", invoiceStatuses)

	return cmd
}

func newInvoicesUpdateCmd() *cobra.Command {
	var req paystack.UpdateInvoiceRequest
	var items invoiceItemFlags
	var data string

	cmd := &cobra.Command{
		Use:   "update <id-or-code>",
		Short: "Update an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			var err error
			if req.LineItems, req.Tax, err = items.parse(); err != nil {
				return err
			}
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			return runCall(cmd, "invoice.update", invoiceView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Invoices().Update(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Customer, "customer", "", "Customer ID or code")
	amountFlag(fs, &req.Amount, "amount", "Invoice amount")
	dateFlag(fs, &req.DueDate, "due-date", "Due date")
	fs.StringVar(&req.Description, "description", "", "Description")
	items.register(cmd)
	currencyFlag(fs, &req.Currency)
	optionalBoolFlag(fs, &req.SendNotification, "send-notification", "Email the invoice to the customer")
	optionalBoolFlag(fs, &req.Draft, "draft", "Keep as a draft")
	fs.IntVar(&req.InvoiceNumber, "invoice-number", 0, "Override the invoice number")
	fs.StringVar(&req.SplitCode, "split-code", "", "Split code")
	addDataFlag(cmd, &data)

	return cmd
}

func newInvoicesArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <code>",
		Short: "Archive an invoice so it no longer shows in lists",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if ok, err := confirmAction(cmd, fmt.Sprintf("Archive invoice %s?", args[0])); err != nil || !ok {
				return err
			}
			return runCall(cmd, "invoice.archive", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Invoices().Archive(ctx, args[0])
			})
		}),
	}
}

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var planView = view{
	noun: "plans",
	model: typedView(
		[]string{"ID", "CODE", "NAME", "AMOUNT", "INTERVAL", "SUBSCRIPTIONS"},
		func(p paystack.Plan) []string {
			return []string{idString(p.ID), p.PlanCode, p.Name, money(p.Amount, p.Currency), string(p.Interval), strconv.Itoa(int(p.TotalSubscriptions))}
		},
		func(p paystack.Plan) [][2]string {
			return [][2]string{
				{"ID", idString(p.ID)},
				{"Code", p.PlanCode},
				{"Name", p.Name},
				{"Description", p.Description},
				{"Amount", money(p.Amount, p.Currency)},
				{"Currency", string(p.Currency)},
				{"Interval", string(p.Interval)},
				{"Send invoices", strconv.FormatBool(p.SendInvoices)},
				{"Send SMS", strconv.FormatBool(p.SendSMS)},
				{"Invoice limit", strconv.Itoa(int(p.InvoiceLimit))},
				{"Created at", timeString(p.CreatedAt)},
			}
		},
	),
}

func newPlansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plans",
		Aliases: []string{"plan"},
		Short:   "Manage subscription plans",
	}

	cmd.AddCommand(newPlansCreateCmd())
	cmd.AddCommand(newPlansListCmd())
	cmd.AddCommand(argCmd("get <id-or-code>", "Fetch a plan", "plan.fetch", planView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Plans().Fetch(ctx, arg)
		}))
	cmd.AddCommand(newPlansUpdateCmd())

	return cmd
}

func newPlansCreateCmd() *cobra.Command {
	var req paystack.CreatePlanRequest
	var data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a plan",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Name == "" || req.Amount <= 0 || req.Interval == "" {
				return fmt.Errorf("--name, --amount and --interval are required")
			}
			return runCall(cmd, "plan.create", planView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Plans().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Name, "name", "", "Plan name (required)")
	amountFlag(fs, &req.Amount, "amount", "Amount per interval (required)")
	enumFlag(fs, &req.Interval, "interval", "Billing interval (required)", paystack.Intervals...)
	fs.StringVar(&req.Description, "description", "", "Description")
	optionalBoolFlag(fs, &req.SendInvoices, "send-invoices", "Email invoices to subscribers")
	optionalBoolFlag(fs, &req.SendSMS, "send-sms", "Text subscribers before charges")
	currencyFlag(fs, &req.Currency)
	fs.IntVar(&req.InvoiceLimit, "invoice-limit", 0, "Number of charges per subscription")
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "interval", paystack.Intervals)

	return cmd
}

func newPlansListCmd() *cobra.Command {
	var params paystack.ListPlansParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List plans",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "plan.list", planView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Plans().List(ctx, params)
			})
		}),
	}

	listFlags(cmd, params.Pagination())
	fs := cmd.Flags()
	fs.StringVar(&params.Status, "status", "", "Plan status")
	enumFlag(fs, &params.Interval, "interval", "Billing interval", paystack.Intervals...)
	amountFlag(fs, &params.Amount, "amount", "Exact amount")
	registerStaticCompletions(cmd, "interval", paystack.Intervals)

	return cmd
}

func newPlansUpdateCmd() *cobra.Command {
	var req paystack.UpdatePlanRequest
	var data string

	cmd := &cobra.Command{
		Use:   "update <id-or-code>",
		Short: "Update a plan",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			return runCall(cmd, "plan.update", planView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Plans().Update(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Name, "name", "", "Plan name")
	amountFlag(fs, &req.Amount, "amount", "Amount per interval")
	enumFlag(fs, &req.Interval, "interval", "Billing interval", paystack.Intervals...)
	fs.StringVar(&req.Description, "description", "", "Description")
	optionalBoolFlag(fs, &req.SendInvoices, "send-invoices", "Email invoices to subscribers")
	optionalBoolFlag(fs, &req.SendSMS, "send-sms", "Text subscribers before charges")
	currencyFlag(fs, &req.Currency)
	fs.IntVar(&req.InvoiceLimit, "invoice-limit", 0, "Number of charges per subscription")
	optionalBoolFlag(fs, &req.UpdateExistingSubscriptions, "update-existing-subscriptions", "Apply the change to current subscribers")
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "interval", paystack.Intervals)

	return cmd
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var subscriptionView = view{
	noun: "subscriptions",
	columns: []column{
		col("ID", "id"),
		col("CODE", "subscription_code"),
		col("CUSTOMER", "customer.email"),
		col("PLAN", "plan.plan_code"),
		amountCol("AMOUNT", "amount"),
		col("STATUS", "status"),
		col("NEXT PAYMENT", "next_payment_date"),
	},
	fields: []column{
		col("ID", "id"),
		col("Code", "subscription_code"),
		col("Email token", "email_token"),
		col("Customer", "customer.email"),
		col("Plan", "plan.plan_code"),
		amountCol("Amount", "amount"),
		col("Status", "status"),
		col("Payments count", "payments_count"),
		col("Next payment", "next_payment_date"),
		col("Created at", "createdAt"),
	},
}

func newSubscriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subscription", "subs"},
		Short:   "Manage recurring subscriptions",
	}

	cmd.AddCommand(newSubscriptionsCreateCmd())
	cmd.AddCommand(newSubscriptionsListCmd())
	cmd.AddCommand(argCmd("get <id-or-code>", "Fetch a subscription", "subscription.fetch", subscriptionView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Subscriptions().Fetch(ctx, arg)
		}))
	cmd.AddCommand(newSubscriptionsToggleCmd("enable", "Enable a subscription", "subscription.enable",
		func(ctx context.Context, c *paystack.Client, req paystack.SubscriptionToggleRequest) (*paystack.Response, error) {
			return c.Subscriptions().Enable(ctx, req)
		}))
	cmd.AddCommand(newSubscriptionsToggleCmd("disable", "Disable a subscription", "subscription.disable",
		func(ctx context.Context, c *paystack.Client, req paystack.SubscriptionToggleRequest) (*paystack.Response, error) {
			return c.Subscriptions().Disable(ctx, req)
		}))
	cmd.AddCommand(argCmd("update-link <code>", "Generate a link for the customer to update their card", "subscription.generate_update_link",
		view{fields: []column{col("Link", "link")}},
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Subscriptions().GenerateUpdateLink(ctx, arg)
		}))
	cmd.AddCommand(argCmd("send-update-link <code>", "Email the customer a card update link", "subscription.send_update_link", view{},
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Subscriptions().SendUpdateLink(ctx, arg)
		}))

	return cmd
}

func newSubscriptionsCreateCmd() *cobra.Command {
	var req paystack.CreateSubscriptionRequest
	var data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Subscribe a customer to a plan",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Customer == "" || req.Plan == "" {
				return fmt.Errorf("--customer and --plan are required")
			}
			return runCall(cmd, "subscription.create", subscriptionView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Subscriptions().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Customer, "customer", "", "Customer email or code (required)")
	fs.StringVar(&req.Plan, "plan", "", "Plan code (required)")
	fs.StringVar(&req.Authorization, "authorization", "", "Authorization code to charge")
	dateFlag(fs, &req.StartDate, "start-date", "First charge date")
	addDataFlag(cmd, &data)

	return cmd
}

func newSubscriptionsListCmd() *cobra.Command {
	var params paystack.ListSubscriptionsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List subscriptions",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "subscription.list", subscriptionView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Subscriptions().List(ctx, params)
			})
		}),
	}

	listFlags(cmd, params.Pagination())
	fs := cmd.Flags()
	fs.Int64Var(&params.Customer, "customer", 0, "Customer ID")
	fs.Int64Var(&params.Plan, "plan", 0, "Plan ID")

	return cmd
}

func newSubscriptionsToggleCmd(use, short, operation string, fn func(context.Context, *paystack.Client, paystack.SubscriptionToggleRequest) (*paystack.Response, error)) *cobra.Command {
	var req paystack.SubscriptionToggleRequest

	cmd := &cobra.Command{
		Use:   use + " <code>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			req.Code = args[0]
			if req.Token == "" {
				return fmt.Errorf("--token is required (the subscription's email_token)")
			}
			return runCall(cmd, operation, view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return fn(ctx, c, req)
			})
		}),
	}
	cmd.Flags().StringVar(&req.Token, "token", "", "Email token of the subscription (required)")
	return cmd
}

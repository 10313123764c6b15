package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var sessionTimeoutView = view{fields: []column{col("Payment session timeout (s)", "payment_session_timeout")}}

func newIntegrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integration",
		Short: "Integration-wide settings",
	}

	timeout := &cobra.Command{
		Use:   "session-timeout [seconds]",
		Short: "Show or set the payment session timeout",
		Long:  "Show the payment session timeout, or set it when a value is given. 0 means sessions never time out.",
		Args:  cobra.MaximumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runCall(cmd, "integration.payment_session_timeout", sessionTimeoutView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
					return c.Integration().PaymentSessionTimeout(ctx)
				})
			}
			seconds, err := strconv.Atoi(args[0])
			if err != nil || seconds < 0 {
				return fmt.Errorf("invalid timeout %q: must be a whole number of seconds", args[0])
			}
			return runCall(cmd, "integration.update_payment_session_timeout", sessionTimeoutView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Integration().UpdatePaymentSessionTimeout(ctx, seconds)
			})
		}),
	}
	cmd.AddCommand(timeout)

	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var balanceView = view{
	noun: "balances",
	model: typedView(
		[]string{"CURRENCY", "BALANCE"},
		func(b paystack.Balance) []string {
			return []string{string(b.Currency), money(b.Balance, b.Currency)}
		},
		nil,
	),
}

var ledgerView = view{
	noun: "ledger entries",
	columns: []column{
		col("ID", "id"),
		col("REASON", "reason"),
		amountCol("DIFFERENCE", "difference"),
		amountCol("BALANCE", "balance"),
		col("MODEL", "model_responsible"),
		col("CREATED AT", "createdAt"),
	},
}

var otpReasons = []string{string(paystack.OTPReasonResend), string(paystack.OTPReasonTransfer)}

func newTransferControlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transfer-control",
		Aliases: []string{"tc"},
		Short:   "Check balances and manage transfer OTP",
	}

	cmd.AddCommand(plainCmd("balance", "Show the available balance per currency", "balance.fetch", balanceView,
		func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
			return c.TransferControl().Balance(ctx)
		}))
	cmd.AddCommand(newLedgerCmd())
	cmd.AddCommand(newResendOTPCmd())
	cmd.AddCommand(newDisableOTPCmd())
	cmd.AddCommand(newFinalizeDisableOTPCmd())
	cmd.AddCommand(plainCmd("enable-otp", "Require an OTP for transfers again", "transfer.enable_otp", view{},
		func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
			return c.TransferControl().EnableOTP(ctx)
		}))

	return cmd
}

// newBalanceCmd is the top-level shortcut for "transfer-control balance".
func newBalanceCmd() *cobra.Command {
	cmd := plainCmd("balance", "Show the available balance per currency", "balance.fetch", balanceView,
		func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
			return c.TransferControl().Balance(ctx)
		})
	cmd.Aliases = []string{"bal"}
	cmd.AddCommand(newLedgerCmd())
	return cmd
}

func newLedgerCmd() *cobra.Command {
	var params paystack.LedgerParams

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show the balance history",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "balance.ledger", ledgerView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.TransferControl().Ledger(ctx, params)
			})
		}),
	}
	listFlags(cmd, params.Pagination())
	return cmd
}

func newResendOTPCmd() *cobra.Command {
	var req paystack.ResendOTPRequest

	cmd := &cobra.Command{
		Use:   "resend-otp <transfer-code>",
		Short: "Send the transfer OTP again",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			req.TransferCode = args[0]
			return runCall(cmd, "transfer.resend_otp", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.TransferControl().ResendOTP(ctx, req)
			})
		}),
	}
	req.Reason = paystack.OTPReasonResend
	enumFlag(cmd.Flags(), &req.Reason, "reason", "Why the OTP is resent", otpReasons...)
	registerStaticCompletions(cmd, "reason", otpReasons)
	return cmd
}

func newDisableOTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable-otp",
		Short: "Stop requiring an OTP for transfers",
		Long: strings.TrimSpace(`
Stop requiring an OTP for transfers. Paystack sends an OTP to the business
phone; confirm with "paystack transfer-control finalize-disable-otp --otp <code>".
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if ok, err := confirmAction(cmd, "Disable OTP for transfers? Transfers will go out without confirmation."); err != nil || !ok {
				return err
			}
			return runCall(cmd, "transfer.disable_otp", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.TransferControl().DisableOTP(ctx)
			})
		}),
	}
}

func newFinalizeDisableOTPCmd() *cobra.Command {
	var req paystack.FinalizeDisableOTPRequest

	cmd := &cobra.Command{
		Use:   "finalize-disable-otp",
		Short: "Confirm disabling transfer OTP",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if req.OTP == "" {
				return fmt.Errorf("--otp is required")
			}
			return runCall(cmd, "transfer.finalize_disable_otp", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.TransferControl().FinalizeDisableOTP(ctx, req)
			})
		}),
	}
	cmd.Flags().StringVar(&req.OTP, "otp", "", "One-time password (required)")
	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

var chargeView = view{
	fields: []column{
		col("Reference", "reference"),
		col("Status", "status"),
		amountCol("Amount", "amount"),
		col("Currency", "currency"),
		col("Channel", "channel"),
		col("Display text", "display_text"),
		col("USSD code", "ussd_code"),
		col("Gateway response", "gateway_response"),
		col("Message", "message"),
	},
}

func newChargesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "charges",
		Aliases: []string{"charge"},
		Short:   "Charge cards, bank accounts, USSD and mobile money directly",
		Long: strings.TrimSpace(`
Charge a customer directly. The response status tells you what to send next:
send_pin, send_otp, send_phone, send_birthday or send_address each map to a
submit-* subcommand. pay_offline means the customer completes the payment on
their device; poll with "check-pending".
`),
	}

	cmd.AddCommand(newChargesCreateCmd())
	cmd.AddCommand(newChargesSubmitPINCmd())
	cmd.AddCommand(newChargesSubmitOTPCmd())
	cmd.AddCommand(newChargesSubmitPhoneCmd())
	cmd.AddCommand(newChargesSubmitBirthdayCmd())
	cmd.AddCommand(newChargesSubmitAddressCmd())
	cmd.AddCommand(argCmd("check-pending <reference>", "Check a charge that is still processing", "charge.check_pending", chargeView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Charges().CheckPending(ctx, arg)
		}))

	return cmd
}

func newChargesCreateCmd() *cobra.Command {
	var req paystack.CreateChargeRequest
	var data, bankCode, accountNumber, ussdType, momoPhone, momoProvider string
	var newRef bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a charge",
		Example: strings.TrimSpace(`
  paystack charges create --email customer@email.com --amount 100 --bank-code 057 --account-number 0000000000
  paystack charges create --email customer@email.com --amount 100 --ussd-type 737
  paystack charges create --email customer@email.com --amount 100 --currency GHS --mobile-money-phone 0551234987 --mobile-money-provider mtn
  paystack charges create --email customer@email.com --amount 100 --authorization-code AUTH_72btv547
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("bank-code") || fs.Changed("account-number") {
				if bankCode == "" || accountNumber == "" {
					return fmt.Errorf("--bank-code and --account-number must be given together")
				}
				req.Bank = &paystack.BankDetails{Code: bankCode, AccountNumber: accountNumber}
			}
			if fs.Changed("ussd-type") {
				req.USSD = &paystack.USSDDetails{Type: ussdType}
			}
			if fs.Changed("mobile-money-phone") || fs.Changed("mobile-money-provider") {
				if momoPhone == "" || momoProvider == "" {
					return fmt.Errorf("--mobile-money-phone and --mobile-money-provider must be given together")
				}
				req.MobileMoney = &paystack.MobileMoneyDetails{Phone: momoPhone, Provider: momoProvider}
			}
			if req.Email == "" || req.Amount <= 0 {
				return fmt.Errorf("--email and --amount are required")
			}
			if err := validation.ValidateEmail(req.Email); err != nil {
				return err
			}
			if newRef && req.Reference == "" {
				req.Reference = paystack.NewReference()
			}
			return runCall(cmd, "charge.create", chargeView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Charges().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Email, "email", "", "Customer email (required)")
	amountFlag(fs, &req.Amount, "amount", "Amount to charge (required)")
	currencyFlag(fs, &req.Currency)
	fs.StringVar(&req.Reference, "reference", "", "Unique transaction reference")
	fs.BoolVar(&newRef, "new-reference", false, "Generate a reference when none is given")
	fs.StringVar(&req.AuthorizationCode, "authorization-code", "", "Charge a saved authorization")
	fs.StringVar(&req.PIN, "pin", "", "Card PIN for a non-reusable authorization")
	fs.StringVar(&req.DeviceID, "device-id", "", "Device identifier used for fraud checks")
	fs.StringVar(&req.Birthday, "birthday", "", "Customer birthday, YYYY-MM-DD")
	fs.StringVar(&bankCode, "bank-code", "", "Bank code for a bank account charge")
	fs.StringVar(&accountNumber, "account-number", "", "Account number for a bank account charge")
	fs.StringVar(&ussdType, "ussd-type", "", "Bank USSD code, e.g. 737")
	fs.StringVar(&momoPhone, "mobile-money-phone", "", "Mobile money wallet number")
	fs.StringVar(&momoProvider, "mobile-money-provider", "", "Mobile money provider: mtn, atl, vod, tgo, mpesa")
	metadataFlag(fs, &req.Metadata)
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "mobile-money-provider", []string{"mtn", "atl", "vod", "tgo", "mpesa"})
	cmd.MarkFlagsMutuallyExclusive("authorization-code", "bank-code")
	cmd.MarkFlagsMutuallyExclusive("authorization-code", "ussd-type")
	cmd.MarkFlagsMutuallyExclusive("authorization-code", "mobile-money-phone")

	return cmd
}

// submitCmd builds a submit-* subcommand that answers one charge prompt.
// value is the flag that carries the answer.
func submitCmd(use, short, operation, flag, usage string, call func(ctx context.Context, c *paystack.Client, reference, value string) (*paystack.Response, error)) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   use + " <reference>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(value) == "" {
				return fmt.Errorf("--%s is required", flag)
			}
			return runCall(cmd, operation, chargeView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return call(ctx, c, args[0], value)
			})
		}),
	}
	cmd.Flags().StringVar(&value, flag, "", usage+" (required)")
	return cmd
}

func newChargesSubmitPINCmd() *cobra.Command {
	return submitCmd("submit-pin", "Send the card PIN", "charge.submit_pin", "pin", "Card PIN",
		func(ctx context.Context, c *paystack.Client, ref, pin string) (*paystack.Response, error) {
			return c.Charges().SubmitPIN(ctx, paystack.SubmitPINRequest{PIN: pin, Reference: ref})
		})
}

func newChargesSubmitOTPCmd() *cobra.Command {
	return submitCmd("submit-otp", "Send the OTP the customer received", "charge.submit_otp", "otp", "One-time password",
		func(ctx context.Context, c *paystack.Client, ref, otp string) (*paystack.Response, error) {
			return c.Charges().SubmitOTP(ctx, paystack.SubmitOTPRequest{OTP: otp, Reference: ref})
		})
}

func newChargesSubmitPhoneCmd() *cobra.Command {
	return submitCmd("submit-phone", "Send the customer's phone number", "charge.submit_phone", "phone", "Phone number",
		func(ctx context.Context, c *paystack.Client, ref, phone string) (*paystack.Response, error) {
			if err := validation.ValidatePhone(phone); err != nil {
				return nil, err
			}
			return c.Charges().SubmitPhone(ctx, paystack.SubmitPhoneRequest{Phone: phone, Reference: ref})
		})
}

func newChargesSubmitBirthdayCmd() *cobra.Command {
	return submitCmd("submit-birthday", "Send the customer's birthday", "charge.submit_birthday", "birthday", "Birthday, YYYY-MM-DD",
		func(ctx context.Context, c *paystack.Client, ref, birthday string) (*paystack.Response, error) {
			t, err := parseDate(birthday)
			if err != nil {
				return nil, fmt.Errorf("invalid --birthday: %w", err)
			}
			return c.Charges().SubmitBirthday(ctx, paystack.SubmitBirthdayRequest{Birthday: t.Format("2006-01-02"), Reference: ref})
		})
}

func newChargesSubmitAddressCmd() *cobra.Command {
	var req paystack.SubmitAddressRequest

	cmd := &cobra.Command{
		Use:   "submit-address <reference>",
		Short: "Send the customer's billing address",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			req.Reference = args[0]
			if req.Address == "" || req.City == "" || req.State == "" || req.ZipCode == "" {
				return fmt.Errorf("--address, --city, --state and --zipcode are required")
			}
			return runCall(cmd, "charge.submit_address", chargeView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Charges().SubmitAddress(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Address, "address", "", "Street address")
	fs.StringVar(&req.City, "city", "", "City")
	fs.StringVar(&req.State, "state", "", "State")
	fs.StringVar(&req.ZipCode, "zipcode", "", "Zip or postal code")

	return cmd
}

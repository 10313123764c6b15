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

var subaccountView = view{
	noun: "subaccounts",
	model: typedView(
		[]string{"ID", "CODE", "BUSINESS", "BANK", "ACCOUNT", "CHARGE %", "ACTIVE"},
		func(s paystack.Subaccount) []string {
			return []string{
				idString(s.ID),
				s.SubaccountCode,
				s.BusinessName,
				s.SettlementBank,
				s.AccountNumber,
				strconv.FormatFloat(s.PercentageCharge, 'f', -1, 64),
				strconv.FormatBool(s.Active),
			}
		},
		func(s paystack.Subaccount) [][2]string {
			return [][2]string{
				{"ID", idString(s.ID)},
				{"Code", s.SubaccountCode},
				{"Business name", s.BusinessName},
				{"Description", s.Description},
				{"Settlement bank", s.SettlementBank},
				{"Account number", s.AccountNumber},
				{"Percentage charge", strconv.FormatFloat(s.PercentageCharge, 'f', -1, 64)},
				{"Settlement schedule", s.SettlementSchedule},
				{"Contact email", s.PrimaryContactEmail},
				{"Active", strconv.FormatBool(s.Active)},
				{"Verified", strconv.FormatBool(s.IsVerified)},
			}
		},
	),
}

var settlementSchedules = []string{"auto", "weekly", "monthly", "manual"}

func newSubaccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subaccounts",
		Aliases: []string{"subaccount", "sub"},
		Short:   "Manage subaccounts that share in payments",
	}

	cmd.AddCommand(newSubaccountsCreateCmd())
	cmd.AddCommand(newSubaccountsListCmd())
	cmd.AddCommand(argCmd("get <id-or-code>", "Fetch a subaccount", "subaccount.fetch", subaccountView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Subaccounts().Fetch(ctx, arg)
		}))
	cmd.AddCommand(newSubaccountsUpdateCmd())

	return cmd
}

func newSubaccountsCreateCmd() *cobra.Command {
	var req paystack.CreateSubaccountRequest
	var bank, country, data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a subaccount",
		Example: strings.TrimSpace(`
  # Settle into a bank found by name
  paystack subaccounts create --business-name "Sunshine Studios" --bank "guaranty trust" \
    --account-number 0123456047 --percentage-charge 18.2
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if bank != "" {
				code, err := resolveBankCode(cmd, bank, country)
				if err != nil {
					return err
				}
				if err := cmd.Flags().Set("settlement-bank", code); err != nil {
					return err
				}
			}
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.BusinessName == "" || req.SettlementBank == "" || req.AccountNumber == "" {
				return fmt.Errorf("--business-name, --settlement-bank (or --bank) and --account-number are required")
			}
			if err := validation.ValidateEmail(req.PrimaryContactEmail); err != nil {
				return err
			}
			return runCall(cmd, "subaccount.create", subaccountView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Subaccounts().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.BusinessName, "business-name", "", "Business name (required)")
	fs.StringVar(&req.SettlementBank, "settlement-bank", "", "Bank code")
	fs.StringVar(&bank, "bank", "", "Bank name or code, resolved against the bank list")
	fs.StringVar(&country, "country", "", "Country used to resolve --bank")
	fs.StringVar(&req.AccountNumber, "account-number", "", "Account number (required)")
	fs.Float64Var(&req.PercentageCharge, "percentage-charge", 0, "Percentage the main account keeps")
	fs.StringVar(&req.Description, "description", "", "Description")
	fs.StringVar(&req.PrimaryContactEmail, "primary-contact-email", "", "Contact email")
	fs.StringVar(&req.PrimaryContactName, "primary-contact-name", "", "Contact name")
	fs.StringVar(&req.PrimaryContactPhone, "primary-contact-phone", "", "Contact phone")
	metadataFlag(fs, &req.Metadata)
	addDataFlag(cmd, &data)
	cmd.MarkFlagsMutuallyExclusive("bank", "settlement-bank")

	return cmd
}

func newSubaccountsListCmd() *cobra.Command {
	var params paystack.ListSubaccountsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List subaccounts",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "subaccount.list", subaccountView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Subaccounts().List(ctx, params)
			})
		}),
	}
	listFlags(cmd, params.Pagination())
	return cmd
}

func newSubaccountsUpdateCmd() *cobra.Command {
	var req paystack.UpdateSubaccountRequest
	var bank, country, data string

	cmd := &cobra.Command{
		Use:   "update <id-or-code>",
		Short: "Update a subaccount",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if bank != "" {
				code, err := resolveBankCode(cmd, bank, country)
				if err != nil {
					return err
				}
				if err := cmd.Flags().Set("settlement-bank", code); err != nil {
					return err
				}
			}
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			return runCall(cmd, "subaccount.update", subaccountView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Subaccounts().Update(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.BusinessName, "business-name", "", "Business name")
	fs.StringVar(&req.SettlementBank, "settlement-bank", "", "Bank code")
	fs.StringVar(&bank, "bank", "", "Bank name or code, resolved against the bank list")
	fs.StringVar(&country, "country", "", "Country used to resolve --bank")
	fs.StringVar(&req.AccountNumber, "account-number", "", "Account number")
	optionalBoolFlag(fs, &req.Active, "active", "Activate or deactivate the subaccount")
	fs.Float64Var(&req.PercentageCharge, "percentage-charge", 0, "Percentage the main account keeps")
	fs.StringVar(&req.Description, "description", "", "Description")
	fs.StringVar(&req.PrimaryContactEmail, "primary-contact-email", "", "Contact email")
	fs.StringVar(&req.PrimaryContactName, "primary-contact-name", "", "Contact name")
	fs.StringVar(&req.PrimaryContactPhone, "primary-contact-phone", "", "Contact phone")
	fs.StringVar(&req.SettlementSchedule, "settlement-schedule", "", "Settlement schedule: "+strings.Join(settlementSchedules, "|"))
	metadataFlag(fs, &req.Metadata)
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "settlement-schedule", settlementSchedules)
	cmd.MarkFlagsMutuallyExclusive("bank", "settlement-bank")

	return cmd
}

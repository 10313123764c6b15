package cmd

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/internal/validation"
	"github.com/paystack/paystack-cli/pkg/paystack"
)

var customerView = view{
	noun: "customers",
	model: typedView(
		[]string{"ID", "CODE", "EMAIL", "FIRST NAME", "LAST NAME", "PHONE", "RISK"},
		func(c paystack.Customer) []string {
			return []string{idString(c.ID), c.CustomerCode, c.Email, c.FirstName, c.LastName, c.Phone, string(c.RiskAction)}
		},
		func(c paystack.Customer) [][2]string {
			pairs := [][2]string{
				{"ID", idString(c.ID)},
				{"Code", c.CustomerCode},
				{"Email", c.Email},
				{"First name", c.FirstName},
				{"Last name", c.LastName},
				{"Phone", c.Phone},
				{"Risk action", string(c.RiskAction)},
				{"Identified", strconv.FormatBool(c.Identified)},
				{"Created at", timeString(c.CreatedAt)},
			}
			for _, a := range c.Authorizations {
				label := a.AuthorizationCode
				if !a.Reusable {
					label += " (single use)"
				}
				pairs = append(pairs, [2]string{"Authorization", label + "  " + cardSummary(a)})
			}
			return pairs
		},
	),
}

var riskActions = []string{
	string(paystack.RiskActionDefault),
	string(paystack.RiskActionAllow),
	string(paystack.RiskActionDeny),
}

func newCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer", "cus"},
		Short:   "Manage customers",
	}

	cmd.AddCommand(newCustomersCreateCmd())
	cmd.AddCommand(newCustomersListCmd())
	cmd.AddCommand(argCmd("get <email-or-code>", "Fetch a customer by email or customer code", "customer.fetch", customerView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Customers().Fetch(ctx, arg)
		}))
	cmd.AddCommand(newCustomersUpdateCmd())
	cmd.AddCommand(newCustomersValidateCmd())
	cmd.AddCommand(newCustomersRiskActionCmd())
	cmd.AddCommand(newCustomersDeactivateAuthorizationCmd())

	return cmd
}

func newCustomersCreateCmd() *cobra.Command {
	var req paystack.CreateCustomerRequest
	var data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Example: strings.TrimSpace(`
  paystack customers create --email ada@example.com --first-name Ada --last-name Obi
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Email == "" {
				return fmt.Errorf("--email is required")
			}
			if err := validation.ValidateEmail(req.Email); err != nil {
				return err
			}
			if err := validation.ValidatePhone(req.Phone); err != nil {
				return err
			}
			return runCall(cmd, "customer.create", customerView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Customers().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Email, "email", "", "Customer email (required)")
	fs.StringVar(&req.FirstName, "first-name", "", "First name")
	fs.StringVar(&req.LastName, "last-name", "", "Last name")
	fs.StringVar(&req.Phone, "phone", "", "Phone number")
	metadataFlag(fs, &req.Metadata)
	addDataFlag(cmd, &data)

	return cmd
}

func newCustomersListCmd() *cobra.Command {
	var params paystack.ListCustomersParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List customers",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "customer.list", customerView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Customers().List(ctx, params)
			})
		}),
	}
	listFlags(cmd, params.Pagination())
	return cmd
}

func newCustomersUpdateCmd() *cobra.Command {
	var req paystack.UpdateCustomerRequest
	var data string

	cmd := &cobra.Command{
		Use:   "update <code>",
		Short: "Update a customer",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if err := validation.ValidatePhone(req.Phone); err != nil {
				return err
			}
			return runCall(cmd, "customer.update", customerView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Customers().Update(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.FirstName, "first-name", "", "First name")
	fs.StringVar(&req.LastName, "last-name", "", "Last name")
	fs.StringVar(&req.Phone, "phone", "", "Phone number")
	metadataFlag(fs, &req.Metadata)
	addDataFlag(cmd, &data)

	return cmd
}

func newCustomersValidateCmd() *cobra.Command {
	var req paystack.ValidateCustomerRequest
	var data string

	cmd := &cobra.Command{
		Use:   "validate <code>",
		Short: "Validate a customer's identity against their bank account",
		Example: strings.TrimSpace(`
  paystack customers validate CUS_xnxdt6s1zg1f4nx --country NG --type bank_account \
    --account-number 0123456789 --bvn 20012345677 --bank-code 007 --first-name Ada --last-name Obi
`),
		Args: cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			return runCall(cmd, "customer.validate", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Customers().Validate(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Country, "country", "NG", "Two-letter country code")
	fs.StringVar(&req.Type, "type", "bank_account", "Identification type")
	fs.StringVar(&req.Value, "value", "", "Identification number")
	fs.StringVar(&req.FirstName, "first-name", "", "First name (required)")
	fs.StringVar(&req.LastName, "last-name", "", "Last name (required)")
	fs.StringVar(&req.MiddleName, "middle-name", "", "Middle name")
	fs.StringVar(&req.BVN, "bvn", "", "Bank verification number")
	fs.StringVar(&req.BankCode, "bank-code", "", "Bank code")
	fs.StringVar(&req.AccountNumber, "account-number", "", "Account number")
	addDataFlag(cmd, &data)

	return cmd
}

func newCustomersRiskActionCmd() *cobra.Command {
	var req paystack.SetRiskActionRequest

	cmd := &cobra.Command{
		Use:   "risk-action <email-or-code> <default|allow|deny>",
		Short: "Whitelist or blacklist a customer",
		Args:  cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			req.Customer = args[0]
			req.RiskAction = paystack.RiskAction(strings.ToLower(args[1]))
			if !slices.Contains(riskActions, string(req.RiskAction)) {
				return paystack.NewValidationError("risk_action", args[1], riskActions)
			}
			return runCall(cmd, "customer.risk_action", customerView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Customers().SetRiskAction(ctx, req)
			})
		}),
	}
	cmd.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return riskActions, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return cmd
}

func newCustomersDeactivateAuthorizationCmd() *cobra.Command {
	return argCmd("deactivate-authorization <authorization-code>", "Deactivate a saved authorization", "customer.deactivate_authorization", view{},
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Customers().DeactivateAuthorization(ctx, paystack.DeactivateAuthorizationRequest{AuthorizationCode: arg})
		})
}

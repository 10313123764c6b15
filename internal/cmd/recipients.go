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

var recipientView = view{
	noun: "recipients",
	model: typedView(
		[]string{"ID", "CODE", "NAME", "TYPE", "BANK", "ACCOUNT", "CURRENCY"},
		func(r paystack.Recipient) []string {
			return []string{idString(r.ID), r.RecipientCode, r.Name, string(r.Type), r.Details.BankName, r.Details.AccountNumber, string(r.Currency)}
		},
		func(r paystack.Recipient) [][2]string {
			return [][2]string{
				{"ID", idString(r.ID)},
				{"Code", r.RecipientCode},
				{"Name", r.Name},
				{"Type", string(r.Type)},
				{"Email", r.Email},
				{"Description", r.Description},
				{"Bank", r.Details.BankName},
				{"Bank code", r.Details.BankCode},
				{"Account number", r.Details.AccountNumber},
				{"Account name", r.Details.AccountName},
				{"Currency", string(r.Currency)},
				{"Active", strconv.FormatBool(r.Active)},
			}
		},
	),
}

var recipientTypes = []string{
	string(paystack.RecipientNUBAN),
	string(paystack.RecipientGhIPSS),
	string(paystack.RecipientMobileMoney),
	string(paystack.RecipientBasa),
	string(paystack.RecipientAuthorization),
}

func newRecipientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipients",
		Aliases: []string{"recipient", "rcp"},
		Short:   "Manage transfer recipients",
	}

	cmd.AddCommand(newRecipientsCreateCmd())
	cmd.AddCommand(newRecipientsBulkCreateCmd())
	cmd.AddCommand(newRecipientsListCmd())
	cmd.AddCommand(argCmd("get <id-or-code>", "Fetch a recipient", "recipient.fetch", recipientView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Recipients().Fetch(ctx, arg)
		}))
	cmd.AddCommand(newRecipientsUpdateCmd())
	cmd.AddCommand(newRecipientsDeleteCmd())

	return cmd
}

func newRecipientsCreateCmd() *cobra.Command {
	var req paystack.CreateRecipientRequest
	var bank, country, data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a transfer recipient",
		Example: strings.TrimSpace(`
  paystack recipients create --type nuban --name "Tolu Robert" --account-number 01000000010 --bank-code 058
  paystack recipients create --name "Tolu Robert" --account-number 01000000010 --bank "gtbank"
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if bank != "" {
				code, err := resolveBankCode(cmd, bank, country)
				if err != nil {
					return err
				}
				if err := cmd.Flags().Set("bank-code", code); err != nil {
					return err
				}
			}
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Name == "" {
				return fmt.Errorf("--name is required")
			}
			if req.Type == paystack.RecipientAuthorization {
				if req.AuthorizationCode == "" {
					return fmt.Errorf("--authorization-code is required for authorization recipients")
				}
			} else if req.AccountNumber == "" || req.BankCode == "" {
				return fmt.Errorf("--account-number and --bank-code (or --bank) are required")
			}
			return runCall(cmd, "recipient.create", recipientView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Recipients().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	req.Type = paystack.RecipientNUBAN
	enumFlag(fs, &req.Type, "type", "Recipient type", recipientTypes...)
	fs.StringVar(&req.Name, "name", "", "Account holder name (required)")
	fs.StringVar(&req.AccountNumber, "account-number", "", "Account number")
	fs.StringVar(&req.BankCode, "bank-code", "", "Bank code")
	fs.StringVar(&bank, "bank", "", "Bank name or code, resolved against the bank list")
	fs.StringVar(&country, "country", "", "Country used to resolve --bank")
	fs.StringVar(&req.Description, "description", "", "Description")
	currencyFlag(fs, &req.Currency)
	fs.StringVar(&req.AuthorizationCode, "authorization-code", "", "Authorization code for authorization recipients")
	metadataFlag(fs, &req.Metadata)
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "type", recipientTypes)
	cmd.MarkFlagsMutuallyExclusive("bank", "bank-code")

	return cmd
}

func newRecipientsBulkCreateCmd() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "bulk-create",
		Short: "Create many recipients from a JSON array",
		Example: strings.TrimSpace(`
  paystack recipients bulk-create --data @recipients.json
  cat recipients.json | paystack recipients bulk-create --data @-
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(data) == "" {
				return fmt.Errorf("--data is required")
			}
			var req paystack.BulkCreateRecipientsRequest
			if err := decodeData(cmd, data, &req.Batch); err != nil {
				return err
			}
			if len(req.Batch) == 0 {
				return fmt.Errorf("--data must contain at least one recipient")
			}
			return runCall(cmd, "recipient.bulk_create", view{fields: []column{
				col("Created", "success"),
				col("Errors", "errors"),
			}}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Recipients().BulkCreate(ctx, req)
			})
		}),
	}
	addDataFlag(cmd, &data)
	return cmd
}

func newRecipientsListCmd() *cobra.Command {
	var params paystack.ListRecipientsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recipients",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "recipient.list", recipientView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Recipients().List(ctx, params)
			})
		}),
	}
	listFlags(cmd, params.Pagination())
	return cmd
}

func newRecipientsUpdateCmd() *cobra.Command {
	var req paystack.UpdateRecipientRequest
	var data string

	cmd := &cobra.Command{
		Use:   "update <id-or-code>",
		Short: "Update a recipient",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Name == "" {
				return fmt.Errorf("--name is required")
			}
			if err := validation.ValidateEmail(req.Email); err != nil {
				return err
			}
			return runCall(cmd, "recipient.update", recipientView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Recipients().Update(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Name, "name", "", "Recipient name (required)")
	fs.StringVar(&req.Email, "email", "", "Recipient email")
	addDataFlag(cmd, &data)

	return cmd
}

func newRecipientsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id-or-code>",
		Aliases: []string{"rm"},
		Short:   "Deactivate a recipient",
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if ok, err := confirmAction(cmd, fmt.Sprintf("Delete recipient %s?", args[0])); err != nil || !ok {
				return err
			}
			return runCall(cmd, "recipient.delete", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Recipients().Delete(ctx, args[0])
			})
		}),
	}
}

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var splitView = view{
	noun: "splits",
	columns: []column{
		col("ID", "id"),
		col("CODE", "split_code"),
		col("NAME", "name"),
		col("TYPE", "type"),
		col("CURRENCY", "currency"),
		col("ACTIVE", "active"),
		col("SUBACCOUNTS", "total_subaccounts"),
	},
	fields: []column{
		col("ID", "id"),
		col("Code", "split_code"),
		col("Name", "name"),
		col("Type", "type"),
		col("Currency", "currency"),
		col("Active", "active"),
		col("Bearer", "bearer_type"),
		col("Bearer subaccount", "bearer_subaccount"),
		col("Subaccounts", "subaccounts"),
	},
}

var (
	splitTypes       = []string{"percentage", "flat"}
	splitBearerTypes = []string{"subaccount", "account", "all-proportional", "all"}
)

func newSplitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "splits",
		Aliases: []string{"split"},
		Short:   "Share payments between the main account and subaccounts",
	}

	cmd.AddCommand(newSplitsCreateCmd())
	cmd.AddCommand(newSplitsListCmd())
	cmd.AddCommand(argCmd("get <id>", "Fetch a split", "split.fetch", splitView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Splits().Fetch(ctx, arg)
		}))
	cmd.AddCommand(newSplitsUpdateCmd())
	cmd.AddCommand(newSplitsAddSubaccountCmd())
	cmd.AddCommand(newSplitsRemoveSubaccountCmd())

	return cmd
}

// parseSplitShares reads CODE:SHARE pairs such as ACCT_abc:20.
func parseSplitShares(values []string) ([]paystack.SplitShare, error) {
	shares := make([]paystack.SplitShare, 0, len(values))
	for _, v := range values {
		code, share, ok := strings.Cut(v, ":")
		if !ok || strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("invalid subaccount share %q: use CODE:SHARE", v)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(share), 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid share in %q: must be a positive integer", v)
		}
		shares = append(shares, paystack.SplitShare{Subaccount: strings.TrimSpace(code), Share: n})
	}
	return shares, nil
}

func newSplitsCreateCmd() *cobra.Command {
	var req paystack.CreateSplitRequest
	var shares []string
	var data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a split",
		Example: strings.TrimSpace(`
  paystack splits create --name "Co-op" --type percentage --currency NGN \
    --subaccounts ACCT_6uujpqtzmnufzkw:20,ACCT_eg4sob4590pq9vb:30 --bearer-type subaccount \
    --bearer-subaccount ACCT_eg4sob4590pq9vb
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			parsed, err := parseSplitShares(shares)
			if err != nil {
				return err
			}
			req.Subaccounts = parsed
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Name == "" {
				return fmt.Errorf("--name is required")
			}
			if len(req.Subaccounts) == 0 {
				return fmt.Errorf("at least one --subaccounts share is required")
			}
			return runCall(cmd, "split.create", splitView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Splits().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Name, "name", "", "Split name (required)")
	fs.StringVar(&req.Type, "type", "percentage", "Split type: "+strings.Join(splitTypes, "|"))
	fs.StringVar((*string)(&req.Currency), "currency", string(paystack.NGN), "Currency code: "+strings.Join(paystack.Currencies, "|"))
	fs.StringSliceVar(&shares, "subaccounts", nil, "Subaccount shares as CODE:SHARE (repeatable)")
	fs.StringVar(&req.BearerType, "bearer-type", "account", "Who bears the fee: "+strings.Join(splitBearerTypes, "|"))
	fs.StringVar(&req.BearerSubaccount, "bearer-subaccount", "", "Subaccount code bearing the fee")
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "type", splitTypes)
	registerStaticCompletions(cmd, "bearer-type", splitBearerTypes)
	registerStaticCompletions(cmd, "currency", paystack.Currencies)

	return cmd
}

func newSplitsListCmd() *cobra.Command {
	var params paystack.ListSplitsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List splits",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "split.list", splitView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Splits().List(ctx, params)
			})
		}),
	}

	listFlags(cmd, params.Pagination())
	fs := cmd.Flags()
	fs.StringVar(&params.Name, "name", "", "Filter by name")
	optionalBoolFlag(fs, &params.Active, "active", "Filter by active state")
	fs.StringVar(&params.SortBy, "sort-by", "", "Field to sort by")

	return cmd
}

func newSplitsUpdateCmd() *cobra.Command {
	var req paystack.UpdateSplitRequest
	var data string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a split",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			return runCall(cmd, "split.update", splitView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Splits().Update(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Name, "name", "", "Split name")
	optionalBoolFlag(fs, &req.Active, "active", "Activate or deactivate the split")
	fs.StringVar(&req.BearerType, "bearer-type", "", "Who bears the fee: "+strings.Join(splitBearerTypes, "|"))
	fs.StringVar(&req.BearerSubaccount, "bearer-subaccount", "", "Subaccount code bearing the fee")
	addDataFlag(cmd, &data)
	registerStaticCompletions(cmd, "bearer-type", splitBearerTypes)

	return cmd
}

func newSplitsAddSubaccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-subaccount <id> <code:share>",
		Short: "Add a subaccount to a split or change its share",
		Args:  cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			shares, err := parseSplitShares(args[1:])
			if err != nil {
				return err
			}
			return runCall(cmd, "split.add_subaccount", splitView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Splits().AddSubaccount(ctx, args[0], shares[0])
			})
		}),
	}
}

func newSplitsRemoveSubaccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-subaccount <id> <code>",
		Short: "Remove a subaccount from a split",
		Args:  cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			req := paystack.RemoveSplitSubaccountRequest{Subaccount: args[1]}
			return runCall(cmd, "split.remove_subaccount", view{}, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Splits().RemoveSubaccount(ctx, args[0], req)
			})
		}),
	}
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

var productView = view{
	noun: "products",
	columns: []column{
		col("ID", "id"),
		col("CODE", "product_code"),
		col("NAME", "name"),
		amountCol("PRICE", "price"),
		col("QUANTITY", "quantity"),
		col("SOLD", "quantity_sold"),
		col("ACTIVE", "active"),
	},
	fields: []column{
		col("ID", "id"),
		col("Code", "product_code"),
		col("Name", "name"),
		col("Description", "description"),
		amountCol("Price", "price"),
		col("Currency", "currency"),
		col("Unlimited", "unlimited"),
		col("Quantity", "quantity"),
		col("Sold", "quantity_sold"),
		col("In stock", "in_stock"),
		col("Active", "active"),
	},
}

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage the product inventory",
	}

	cmd.AddCommand(newProductsCreateCmd())
	cmd.AddCommand(newProductsListCmd())
	cmd.AddCommand(argCmd("get <id>", "Fetch a product", "product.fetch", productView,
		func(ctx context.Context, c *paystack.Client, arg string) (*paystack.Response, error) {
			return c.Products().Fetch(ctx, arg)
		}))
	cmd.AddCommand(newProductsUpdateCmd())

	return cmd
}

func newProductsCreateCmd() *cobra.Command {
	var req paystack.CreateProductRequest
	var data string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			if req.Name == "" || req.Description == "" || req.Price <= 0 || req.Currency == "" {
				return fmt.Errorf("--name, --description, --price and --currency are required")
			}
			if req.Unlimited != nil && *req.Unlimited && req.Quantity > 0 {
				return fmt.Errorf("--quantity cannot be combined with --unlimited")
			}
			return runCall(cmd, "product.create", productView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Products().Create(ctx, req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Name, "name", "", "Product name (required)")
	fs.StringVar(&req.Description, "description", "", "Description (required)")
	amountFlag(fs, &req.Price, "price", "Unit price (required)")
	currencyFlag(fs, &req.Currency)
	optionalBoolFlag(fs, &req.Unlimited, "unlimited", "Stock is unlimited")
	fs.IntVar(&req.Quantity, "quantity", 0, "Units in stock")
	addDataFlag(cmd, &data)

	return cmd
}

func newProductsListCmd() *cobra.Command {
	var params paystack.ListProductsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := checkListOptions(params.Pagination()); err != nil {
				return err
			}
			return runCall(cmd, "product.list", productView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Products().List(ctx, params)
			})
		}),
	}
	listFlags(cmd, params.Pagination())
	return cmd
}

func newProductsUpdateCmd() *cobra.Command {
	var req paystack.UpdateProductRequest
	var data string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if err := buildBody(cmd, data, &req); err != nil {
				return err
			}
			return runCall(cmd, "product.update", productView, func(ctx context.Context, c *paystack.Client) (*paystack.Response, error) {
				return c.Products().Update(ctx, args[0], req)
			})
		}),
	}

	fs := cmd.Flags()
	fs.StringVar(&req.Name, "name", "", "Product name")
	fs.StringVar(&req.Description, "description", "", "Description")
	amountFlag(fs, &req.Price, "price", "Unit price")
	currencyFlag(fs, &req.Currency)
	optionalBoolFlag(fs, &req.Unlimited, "unlimited", "Stock is unlimited")
	fs.IntVar(&req.Quantity, "quantity", 0, "Units in stock")
	addDataFlag(cmd, &data)

	return cmd
}
